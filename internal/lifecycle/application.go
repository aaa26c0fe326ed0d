package lifecycle

import (
	"github.com/rs/zerolog"

	"AppEvents/internal/core/events"
)

// Application is the shared environment object one running application hands
// to its components. It owns the application's event dispatcher (the
// "monitor" everything subscribes through) so that lifetime and ownership
// stay explicit instead of hiding behind a package-level global.
type Application struct {
	name   string
	events *events.Events
	log    zerolog.Logger
}

// NewApplication creates an application environment with its own dispatcher.
func NewApplication(name string, baseLogger *zerolog.Logger) *Application {
	return &Application{
		name:   name,
		events: events.New(baseLogger),
		log:    baseLogger.With().Str("application", name).Logger(),
	}
}

// Name returns the configured application name.
func (a *Application) Name() string {
	return a.name
}

// Events returns the application's shared dispatcher. Components subscribe
// and raise through this accessor.
func (a *Application) Events() *events.Events {
	return a.events
}

// Logger returns the application-scoped logger. It returns a pointer so the
// zerolog chain can be called straight off the accessor, the same way
// constructors throughout the tree take *zerolog.Logger.
func (a *Application) Logger() *zerolog.Logger {
	return &a.log
}
