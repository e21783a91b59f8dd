package engine

import "sync"

type subscriber struct {
	id int
	fn func(Event)
}

// Hub fans events out to subscribers in subscription order.
// The zero value is ready to use.
type Hub struct {
	mu   sync.Mutex
	next int
	subs []subscriber
}

// Subscribe registers fn and returns an idempotent cancel.
func (h *Hub) Subscribe(fn func(Event)) (cancel func()) {
	h.mu.Lock()
	h.next++
	id := h.next
	h.subs = append(h.subs, subscriber{id: id, fn: fn})
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			for i, s := range h.subs {
				if s.id == id {
					h.subs = append(h.subs[:i:i], h.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Emit delivers e to every current subscriber on the calling goroutine.
func (h *Hub) Emit(e Event) {
	h.mu.Lock()
	subs := make([]subscriber, len(h.subs))
	copy(subs, h.subs)
	h.mu.Unlock()

	for _, s := range subs {
		s.fn(e)
	}
}

// Len returns the number of registered subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
