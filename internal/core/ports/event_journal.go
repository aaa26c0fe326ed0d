package ports

import (
	"context"

	"AppEvents/internal/core/domain"
)

// EventJournal persists raised application events for later inspection.
type EventJournal interface {
	// Record stores one raised event.
	Record(ctx context.Context, rec *domain.EventRecord) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]domain.EventRecord, error)
}
