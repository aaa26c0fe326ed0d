package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventRecord is the journaled form of a raised application event: what
// happened, in which application, and when. Records exist for observability
// only; the dispatcher never replays them.
type EventRecord struct {
	ID          uuid.UUID
	Event       string
	Application string
	OccurredAt  time.Time
	Detail      string
}

// NewEventRecord stamps a fresh record for a raise that just happened.
// The timestamp is truncated to microseconds, the precision Postgres keeps,
// so a journaled record reads back exactly as written.
func NewEventRecord(event, application, detail string) *EventRecord {
	return &EventRecord{
		ID:          uuid.New(),
		Event:       event,
		Application: application,
		OccurredAt:  time.Now().UTC().Truncate(time.Microsecond),
		Detail:      detail,
	}
}
