package session

import (
	"sort"
	"sync"
)

// hub fans auth events out to subscribers. Handlers run synchronously in
// registration order on the goroutine that publishes the event.
type hub struct {
	mu       sync.Mutex
	next     int
	handlers map[int]AuthHandler
}

func newHub() *hub {
	return &hub{handlers: make(map[int]AuthHandler)}
}

func (h *hub) subscribe(handler AuthHandler) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	h.handlers[id] = handler

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.handlers, id)
	}
}

func (h *hub) publish(event AuthEvent, s *Session) {
	h.mu.Lock()
	ids := make([]int, 0, len(h.handlers))
	for id := range h.handlers {
		ids = append(ids, id)
	}
	// Stable delivery order keeps the controller's last-write-wins
	// semantics deterministic.
	sort.Ints(ids)
	handlers := make([]AuthHandler, 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, h.handlers[id])
	}
	h.mu.Unlock()

	for _, handler := range handlers {
		handler(event, s)
	}
}
