package broadcast

import (
	"sync"

	"go.uber.org/zap"

	"movetrack/internal/metrics"
)

const defaultBufferSize = 16

// Subscriber is one live viewer's feed for a single operator key.
type Subscriber struct {
	key string
	ch  chan []byte
}

// Key returns the operator key the subscriber registered under.
func (s *Subscriber) Key() string {
	return s.key
}

// Messages returns the subscriber's receive channel. It is closed on
// Unsubscribe.
func (s *Subscriber) Messages() <-chan []byte {
	return s.ch
}

// Hub is the subscriber registry for live GPS distribution. Readings are
// partitioned by operator key; a publish reaches only subscribers of
// that key. Delivery is best effort: a subscriber that cannot keep up
// loses messages rather than blocking the pipeline.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[*Subscriber]struct{}
	bufferSize  int
	logger      *zap.Logger
}

// NewHub builds an empty registry. bufferSize is the per-subscriber
// channel depth.
func NewHub(bufferSize int, logger *zap.Logger) *Hub {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	return &Hub{
		subscribers: make(map[string]map[*Subscriber]struct{}),
		bufferSize:  bufferSize,
		logger:      logger,
	}
}

// Subscribe registers a new live feed under the given operator key.
func (h *Hub) Subscribe(key string) *Subscriber {
	sub := &Subscriber{
		key: key,
		ch:  make(chan []byte, h.bufferSize),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subscribers[key] == nil {
		h.subscribers[key] = make(map[*Subscriber]struct{})
	}
	h.subscribers[key][sub] = struct{}{}
	return sub
}

// Unsubscribe removes the feed and closes its channel. Safe to call once
// per subscriber; the channel close is done under the write lock so no
// publish can race it.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.subscribers[sub.key]
	if !ok {
		return
	}
	if _, ok := set[sub]; !ok {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(h.subscribers, sub.key)
	}
	close(sub.ch)
}

// Publish delivers payload to every subscriber of key and returns the
// number of successful deliveries. No subscribers is a silent success.
// A full subscriber buffer drops that delivery only; other subscribers
// still receive the message in publish order.
func (h *Hub) Publish(key string, payload []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for sub := range h.subscribers[key] {
		select {
		case sub.ch <- payload:
			delivered++
			metrics.BroadcastsDelivered.Inc()
		default:
			metrics.BroadcastDrops.Inc()
			h.logger.Warn("dropping live reading, subscriber buffer full",
				zap.String("operator_key", key))
		}
	}
	return delivered
}

// SubscriberCount reports registered feeds for key.
func (h *Hub) SubscriberCount(key string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[key])
}
