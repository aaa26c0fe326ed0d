package events

import (
	"sync"

	"github.com/google/uuid"
)

// Handle is the capability returned by Subscribe. It references exactly one
// subscription; disposing it removes that subscription if it is still
// present. Disposing twice is safe and does nothing the second time.
type Handle struct {
	once   sync.Once
	events *Events
	key    uuid.UUID
	id     uint64
}

// Dispose removes the subscription this handle was issued for. If the
// subscription was already removed (by Unsubscribe, or by an earlier
// Dispose), this is a no-op. A Raise in flight at the moment of disposal may
// still deliver to the handler one last time; any Raise starting afterwards
// will not.
func (h *Handle) Dispose() {
	h.once.Do(func() {
		h.events.remove(h.key, h.id)
	})
}
