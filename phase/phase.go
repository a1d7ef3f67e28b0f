// Package phase holds the load phase of a single story item and notifies observers when it changes.
package phase

import "sync"

// Phase is the readiness of the current item's media.
type Phase int

const (
	// Loading means the media is still being resolved.
	Loading Phase = iota
	// Ready means the media initialized and can be played.
	Ready
	// Failed means the media could not be initialized.
	Failed
)

// String returns a human-readable label for the phase.
func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Holder keeps the single authoritative phase value.
// The zero value is usable and starts at Loading.
type Holder struct {
	mu        sync.Mutex
	current   Phase
	nextID    int
	observers map[int]func(Phase)
}

// Get returns the current phase.
func (h *Holder) Get() Phase {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Set stores p and notifies observers if it differs from the current value.
// Reports whether the phase changed.
func (h *Holder) Set(p Phase) bool {
	h.mu.Lock()
	if h.current == p {
		h.mu.Unlock()
		return false
	}
	h.current = p

	observers := make([]func(Phase), 0, len(h.observers))
	for id := 0; id < h.nextID; id++ {
		if fn, ok := h.observers[id]; ok {
			observers = append(observers, fn)
		}
	}
	h.mu.Unlock()

	for _, fn := range observers {
		fn(p)
	}
	return true
}

// Observe registers fn to be called on every phase change, in registration order.
// The returned function removes the observer.
func (h *Holder) Observe(fn func(Phase)) (cancel func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.observers == nil {
		h.observers = make(map[int]func(Phase))
	}
	id := h.nextID
	h.nextID++
	h.observers[id] = fn

	return func() {
		h.mu.Lock()
		delete(h.observers, id)
		h.mu.Unlock()
	}
}
