package lifecycle

import "AppEvents/internal/core/events"

// The predefined lifecycle events. Each carries the application being
// transitioned as payload. The dispatcher imposes no ordering between them;
// the Controller raises them in the linear sequence
// Starting -> Started -> StopPreparing -> Stopping -> Stopped.
var (
	// Starting is raised when the application begins to start: the
	// environment exists but no component is running yet.
	Starting = events.NewDefinition[*Application]("application.starting")

	// Started is raised once every component is up and serving.
	Started = events.NewDefinition[*Application]("application.started")

	// StopPreparing is raised as the first reaction to a shutdown request,
	// before anything is torn down.
	StopPreparing = events.NewDefinition[*Application]("application.stop_preparing")

	// Stopping is raised right before components are shut down.
	Stopping = events.NewDefinition[*Application]("application.stopping")

	// Stopped is raised after every component has been shut down.
	Stopped = events.NewDefinition[*Application]("application.stopped")
)

// Definitions lists the lifecycle events in the order the controller raises
// them across a full start/stop cycle.
func Definitions() []*events.Definition[*Application] {
	return []*events.Definition[*Application]{
		Starting,
		Started,
		StopPreparing,
		Stopping,
		Stopped,
	}
}

// Raise raises one lifecycle event on app's dispatcher, with app itself as
// the payload.
func Raise(app *Application, def *events.Definition[*Application]) {
	events.Raise(app.Events(), def, app)
}

// Observe subscribes fn to every lifecycle event of the given dispatcher and
// returns the handles, newest last. Disposing all of them detaches fn again.
// This is the hook journal and bridge observers attach through.
func Observe(e *events.Events, fn func(event string, app *Application)) []*events.Handle {
	defs := Definitions()
	handles := make([]*events.Handle, 0, len(defs))
	for _, def := range defs {
		def := def
		handles = append(handles, events.Subscribe(e, def, func(app *Application) {
			fn(def.Name(), app)
		}))
	}
	return handles
}
