package application

import (
	"sync"

	"github.com/linskybing/projectsign/internal/domain/signing"
)

const subscriberBuffer = 16

// EventHub fans out signing events to the owner's live connections.
type EventHub struct {
	mu   sync.RWMutex
	subs map[uint]map[chan signing.SignedEvent]struct{}
}

func NewEventHub() *EventHub {
	return &EventHub{subs: make(map[uint]map[chan signing.SignedEvent]struct{})}
}

// Subscribe registers a listener for userID. The returned cancel func must be
// called once the listener is done; it closes the channel.
func (h *EventHub) Subscribe(userID uint) (<-chan signing.SignedEvent, func()) {
	ch := make(chan signing.SignedEvent, subscriberBuffer)

	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[chan signing.SignedEvent]struct{})
	}
	h.subs[userID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[userID], ch)
			if len(h.subs[userID]) == 0 {
				delete(h.subs, userID)
			}
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Publish never blocks; slow subscribers drop events.
func (h *EventHub) Publish(userID uint, ev signing.SignedEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[userID] {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (h *EventHub) Subscribers(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}
