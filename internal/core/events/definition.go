package events

import "github.com/google/uuid"

// Definition identifies one kind of event and the payload type it carries.
// Two definitions are equal only if they are the same declared instance:
// declaring two definitions with the same name and payload type still yields
// two unrelated events. Declare them once, at package init, and share the
// pointer.
type Definition[T any] struct {
	name string
	key  uuid.UUID
}

// NewDefinition creates a fresh, globally unique event definition.
// The name is used for logging and journaling only; it plays no part
// in identity.
func NewDefinition[T any](name string) *Definition[T] {
	return &Definition[T]{
		name: name,
		key:  uuid.New(),
	}
}

// Name returns the human-readable name the definition was declared with.
func (d *Definition[T]) Name() string {
	return d.name
}

// Handler receives the payload of a raised event. Handlers run synchronously
// on the raising goroutine; anything slow or blocking should hand off to its
// own goroutine.
type Handler[T any] func(T)
