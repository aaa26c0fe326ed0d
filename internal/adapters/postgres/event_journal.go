package postgres

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"AppEvents/internal/core/domain"
	"AppEvents/internal/core/ports"
)

// Expected table:
//
//	CREATE TABLE app_events (
//	    id          UUID PRIMARY KEY,
//	    event       TEXT NOT NULL,
//	    application TEXT NOT NULL,
//	    occurred_at TIMESTAMPTZ NOT NULL,
//	    detail      TEXT NOT NULL DEFAULT ''
//	);

type eventJournal struct {
	db  *DB
	log zerolog.Logger
}

var _ ports.EventJournal = (*eventJournal)(nil) // Ensure compliance

// NewEventJournal creates a journal that persists raised events to Postgres.
func NewEventJournal(db *DB, baseLogger *zerolog.Logger) ports.EventJournal {
	return &eventJournal{
		db:  db,
		log: baseLogger.With().Str("component", "event_journal").Logger(),
	}
}

// Record stores one raised event.
func (j *eventJournal) Record(ctx context.Context, rec *domain.EventRecord) error {
	query := `
		INSERT INTO app_events (id, event, application, occurred_at, detail)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := j.db.pool.Exec(ctx, query,
		rec.ID,
		rec.Event,
		rec.Application,
		rec.OccurredAt,
		rec.Detail,
	)
	if err != nil {
		j.log.Error().Err(err).Str("event", rec.Event).Msg("Failed to insert event record")
		return fmt.Errorf("recording event %s: %w", rec.Event, err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (j *eventJournal) Recent(ctx context.Context, limit int) ([]domain.EventRecord, error) {
	query := `
		SELECT id, event, application, occurred_at, detail
		FROM app_events
		ORDER BY occurred_at DESC
		LIMIT $1
	`
	rows, err := j.db.pool.Query(ctx, query, limit)
	if err != nil {
		j.log.Error().Err(err).Msg("Failed to query recent event records")
		return nil, fmt.Errorf("listing recent events: %w", err)
	}
	defer rows.Close()

	var records []domain.EventRecord
	for rows.Next() {
		var rec domain.EventRecord
		if err := rows.Scan(&rec.ID, &rec.Event, &rec.Application, &rec.OccurredAt, &rec.Detail); err != nil {
			j.log.Error().Err(err).Msg("Failed to scan event record")
			return nil, fmt.Errorf("scanning event record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating event records: %w", err)
	}

	return records, nil
}
