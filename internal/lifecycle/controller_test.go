package lifecycle

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AppEvents/internal/core/events"
)

// fakeRunnable records its own transitions into a shared trace so tests can
// check interleaving with the lifecycle events.
type fakeRunnable struct {
	name     string
	trace    *[]string
	startErr error
}

func (f *fakeRunnable) Start(ctx context.Context) error {
	if f.startErr != nil {
		return f.startErr
	}
	*f.trace = append(*f.trace, f.name+".start")
	return nil
}

func (f *fakeRunnable) Shutdown(ctx context.Context) error {
	*f.trace = append(*f.trace, f.name+".shutdown")
	return nil
}

func newTestApp(t *testing.T) *Application {
	t.Helper()
	nop := zerolog.Nop()
	return NewApplication("test-app", &nop)
}

func TestControllerRaisesLifecycleEventsInOrder(t *testing.T) {
	app := newTestApp(t)
	nop := zerolog.Nop()
	ctrl := NewController(app, &nop)

	var trace []string
	handles := Observe(app.Events(), func(event string, payload *Application) {
		require.Same(t, app, payload, "lifecycle payload must be the application itself")
		trace = append(trace, event)
	})
	defer func() {
		for _, h := range handles {
			h.Dispose()
		}
	}()

	ctrl.Add(&fakeRunnable{name: "web", trace: &trace})

	require.NoError(t, ctrl.Start(context.Background()))
	require.NoError(t, ctrl.Stop(context.Background()))

	assert.Equal(t, []string{
		"application.starting",
		"web.start",
		"application.started",
		"application.stop_preparing",
		"application.stopping",
		"web.shutdown",
		"application.stopped",
	}, trace)
}

func TestControllerStartFailureUnwindsStartedComponents(t *testing.T) {
	app := newTestApp(t)
	nop := zerolog.Nop()
	ctrl := NewController(app, &nop)

	var trace []string
	var startedRaised bool
	events.Subscribe(app.Events(), Started, func(*Application) { startedRaised = true })

	ctrl.Add(&fakeRunnable{name: "first", trace: &trace})
	ctrl.Add(&fakeRunnable{name: "second", trace: &trace, startErr: errors.New("bind: address already in use")})

	err := ctrl.Start(context.Background())
	require.Error(t, err)

	assert.Equal(t, []string{"first.start", "first.shutdown"}, trace)
	assert.False(t, startedRaised, "Started must not be raised when startup fails")
}

func TestControllerShutsDownInReverseOrder(t *testing.T) {
	app := newTestApp(t)
	nop := zerolog.Nop()
	ctrl := NewController(app, &nop)

	var trace []string
	ctrl.Add(&fakeRunnable{name: "a", trace: &trace})
	ctrl.Add(&fakeRunnable{name: "b", trace: &trace})

	require.NoError(t, ctrl.Start(context.Background()))
	require.NoError(t, ctrl.Stop(context.Background()))

	assert.Equal(t, []string{"a.start", "b.start", "b.shutdown", "a.shutdown"}, trace)
}

func TestObserveHandlesDetach(t *testing.T) {
	app := newTestApp(t)

	var count int
	handles := Observe(app.Events(), func(string, *Application) { count++ })
	require.Len(t, handles, len(Definitions()))

	Raise(app, Starting)
	require.Equal(t, 1, count)

	for _, h := range handles {
		h.Dispose()
	}

	Raise(app, Starting)
	Raise(app, Stopped)
	assert.Equal(t, 1, count, "disposed observers must not hear later raises")
}
