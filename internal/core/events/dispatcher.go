package events

import (
	"reflect"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// subscription is one registered handler for one definition. The handler is
// stored type-erased so that a single registry can serve every payload type;
// the typed Subscribe/Raise functions below are the only way entries get in
// or out, so the erased value is always of the definition's payload type.
type subscription struct {
	id  uint64
	ptr uintptr // handler code pointer, used by Unsubscribe matching
	fn  func(any)
}

// Events is the dispatcher: a registry mapping event definitions to ordered
// subscriber lists. The zero value is not usable; construct with New.
//
// Subscriber lists are copy-on-write: every mutation replaces the slice for
// that definition under the lock, and Raise grabs the current slice under the
// lock but invokes handlers with no lock held. A handler is therefore free to
// subscribe, unsubscribe or raise reentrantly without deadlocking, and a
// Raise already in flight keeps iterating the snapshot it started with.
type Events struct {
	log zerolog.Logger

	mu     sync.Mutex
	nextID uint64
	subs   map[uuid.UUID][]subscription
}

// New creates an empty dispatcher. Handler panics during Raise are reported
// through the given logger and never propagate to the raiser.
func New(baseLogger *zerolog.Logger) *Events {
	return &Events{
		log:  baseLogger.With().Str("component", "events").Logger(),
		subs: make(map[uuid.UUID][]subscription),
	}
}

// Subscribe registers handler for def, after any existing subscribers.
// Subscribing the same handler twice yields two independent entries, each
// removable through its own handle. The returned handle removes exactly this
// registration and nothing else.
func Subscribe[T any](e *Events, def *Definition[T], handler Handler[T]) *Handle {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	sub := subscription{
		id:  e.nextID,
		ptr: reflect.ValueOf(handler).Pointer(),
		fn:  func(v any) { handler(v.(T)) },
	}

	// Copy-on-write append, so an in-flight Raise never sees this entry.
	cur := e.subs[def.key]
	next := make([]subscription, len(cur), len(cur)+1)
	copy(next, cur)
	e.subs[def.key] = append(next, sub)

	return &Handle{events: e, key: def.key, id: sub.id}
}

// Unsubscribe removes the first entry (in subscription order) whose handler
// equals the given one, comparing by function pointer. If the handler was
// subscribed more than once, only that first entry goes; later entries stay.
// Unsubscribing a handler that was never subscribed is a silent no-op, so
// shutdown paths can unsubscribe without bookkeeping.
func Unsubscribe[T any](e *Events, def *Definition[T], handler Handler[T]) {
	ptr := reflect.ValueOf(handler).Pointer()

	e.mu.Lock()
	defer e.mu.Unlock()

	for i, sub := range e.subs[def.key] {
		if sub.ptr == ptr {
			e.removeAt(def.key, i)
			return
		}
	}
}

// Raise invokes every handler currently subscribed to def, in subscription
// order, each with value, synchronously on the calling goroutine. It returns
// once all handlers have run or been attempted. No subscribers is a no-op.
//
// A panicking handler does not stop delivery: the panic is recovered at the
// dispatcher boundary, logged, and the remaining handlers still run. Raise
// itself never fails, so raisers (typically lifecycle code) need no error
// handling for misbehaving observers.
func Raise[T any](e *Events, def *Definition[T], value T) {
	e.mu.Lock()
	snapshot := e.subs[def.key]
	e.mu.Unlock()

	for _, sub := range snapshot {
		e.invoke(def.name, sub, value)
	}
}

// invoke runs one handler with panic isolation.
func (e *Events) invoke(name string, sub subscription, value any) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error().
				Str("event", name).
				Interface("panic", r).
				Msg("Event handler panicked")
		}
	}()
	sub.fn(value)
}

// removeAt drops index i from the list for key, copy-on-write.
// Caller must hold e.mu.
func (e *Events) removeAt(key uuid.UUID, i int) {
	cur := e.subs[key]
	if len(cur) == 1 {
		delete(e.subs, key)
		return
	}
	next := make([]subscription, 0, len(cur)-1)
	next = append(next, cur[:i]...)
	next = append(next, cur[i+1:]...)
	e.subs[key] = next
}

// remove drops the entry with the given id, if still present.
func (e *Events) remove(key uuid.UUID, id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, sub := range e.subs[key] {
		if sub.id == id {
			e.removeAt(key, i)
			return
		}
	}
}
