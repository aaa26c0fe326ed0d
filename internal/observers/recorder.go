package observers

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"AppEvents/internal/core/domain"
	"AppEvents/internal/core/events"
	"AppEvents/internal/core/ports"
	"AppEvents/internal/lifecycle"
)

// Recorder turns raised lifecycle events into EventRecords and fans them out
// to a journal and any number of bridges. It is deliberately tolerant:
// a failing sink is logged and skipped, because observers must never break
// the lifecycle transition that triggered them.
type Recorder struct {
	journal ports.EventJournal
	bridges []ports.EventBridge
	timeout time.Duration
	log     zerolog.Logger
}

// NewRecorder creates a recorder. journal may be nil (journaling disabled);
// bridges may be empty.
func NewRecorder(journal ports.EventJournal, bridges []ports.EventBridge, baseLogger *zerolog.Logger) *Recorder {
	return &Recorder{
		journal: journal,
		bridges: bridges,
		timeout: 5 * time.Second,
		log:     baseLogger.With().Str("component", "recorder").Logger(),
	}
}

// Attach subscribes the recorder to every lifecycle event of the given
// dispatcher and returns the handles so the caller can detach it again.
func (r *Recorder) Attach(e *events.Events) []*events.Handle {
	return lifecycle.Observe(e, r.handle)
}

// handle runs synchronously inside Raise, so each sink gets its own bounded
// context rather than inheriting one from whoever triggered the transition.
func (r *Recorder) handle(event string, app *lifecycle.Application) {
	rec := domain.NewEventRecord(event, app.Name(), "")

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if r.journal != nil {
		if err := r.journal.Record(ctx, rec); err != nil {
			r.log.Error().Err(err).Str("event", event).Msg("Failed to journal event")
		}
	}

	for _, bridge := range r.bridges {
		if err := bridge.Publish(ctx, rec); err != nil {
			r.log.Error().Err(err).Str("event", event).Msg("Failed to bridge event")
		}
	}
}
