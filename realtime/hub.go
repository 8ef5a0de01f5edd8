package realtime

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// subscriberBuffer bounds how far a slow consumer may fall behind before
// events are dropped for it.
const subscriberBuffer = 256

type subscriber struct {
	ch chan []byte
}

// Hub is the process-wide broadcaster for task change events. Resource
// services publish; each connected session subscribes and independently
// receives a copy of every event published after it joined. Delivery is
// best effort: a subscriber whose buffer is full misses events rather
// than slowing the publisher down.
type Hub struct {
	logger *zap.Logger

	mu          sync.RWMutex
	subscribers map[*subscriber]struct{}
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		logger:      logger,
		subscribers: make(map[*subscriber]struct{}),
	}
}

// Subscribe registers a new consumer and returns its event channel along
// with an unsubscribe function. Unsubscribing closes the channel; it is
// safe to call more than once.
func (h *Hub) Subscribe() (<-chan []byte, func()) {
	sub := &subscriber{ch: make(chan []byte, subscriberBuffer)}

	h.mu.Lock()
	h.subscribers[sub] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers, sub)
			h.mu.Unlock()
			close(sub.ch)
		})
	}
	return sub.ch, unsubscribe
}

// Publish serializes the event once and fans it out to every current
// subscriber. It never blocks: subscribers with a full buffer are
// skipped. Failures are logged and swallowed; a broadcast problem must
// never fail the mutation that triggered it.
func (h *Hub) Publish(event TaskEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Warn("failed to encode broadcast event",
			zap.String("event_type", string(event.EventType)),
			zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	dropped := 0
	for sub := range h.subscribers {
		select {
		case sub.ch <- payload:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		h.logger.Warn("dropped broadcast event for slow subscribers",
			zap.String("event_type", string(event.EventType)),
			zap.Int("dropped", dropped))
	}
}

// SubscriberCount reports the number of currently connected sessions.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
