package lifecycle

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Runnable is a component whose lifetime the controller manages. Start must
// return quickly once the component is accepting work (spawn your own
// goroutine for the serving loop); Shutdown must stop it gracefully within
// the context deadline.
type Runnable interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// Controller owns the lifecycle of one application: it starts and stops the
// registered runnables and raises the predefined lifecycle events at the
// matching transition points. The linear ordering of those events lives
// here, not in the dispatcher.
type Controller struct {
	app       *Application
	log       zerolog.Logger
	runnables []Runnable
}

// NewController creates a controller for the given application.
func NewController(app *Application, baseLogger *zerolog.Logger) *Controller {
	return &Controller{
		app: app,
		log: baseLogger.With().Str("component", "lifecycle").Logger(),
	}
}

// Add registers a runnable. Runnables start in registration order and shut
// down in reverse. Must be called before Start.
func (c *Controller) Add(r Runnable) {
	c.runnables = append(c.runnables, r)
}

// Start raises Starting, brings up every runnable in order, then raises
// Started. If a runnable fails, the ones already running are shut down and
// the error is returned; Started is not raised.
func (c *Controller) Start(ctx context.Context) error {
	c.log.Info().Str("application", c.app.Name()).Msg("Application starting")
	Raise(c.app, Starting)

	for i, r := range c.runnables {
		if err := r.Start(ctx); err != nil {
			// Unwind whatever already started before reporting failure.
			c.shutdownRunnables(ctx, i)
			return fmt.Errorf("starting component %d: %w", i, err)
		}
	}

	Raise(c.app, Started)
	c.log.Info().Str("application", c.app.Name()).Msg("Application started")
	return nil
}

// Stop raises StopPreparing and Stopping, shuts the runnables down in
// reverse order, then raises Stopped. Shutdown errors are logged and the
// first one is returned, but teardown always runs to completion.
func (c *Controller) Stop(ctx context.Context) error {
	c.log.Info().Str("application", c.app.Name()).Msg("Application stopping")
	Raise(c.app, StopPreparing)
	Raise(c.app, Stopping)

	err := c.shutdownRunnables(ctx, len(c.runnables))

	Raise(c.app, Stopped)
	c.log.Info().Str("application", c.app.Name()).Msg("Application stopped")
	return err
}

// shutdownRunnables stops runnables[0:n] in reverse registration order.
func (c *Controller) shutdownRunnables(ctx context.Context, n int) error {
	var firstErr error
	for i := n - 1; i >= 0; i-- {
		if err := c.runnables[i].Shutdown(ctx); err != nil {
			c.log.Error().Err(err).Int("component", i).Msg("Component shutdown failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
