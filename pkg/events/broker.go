package events

import (
	"sync"

	"github.com/Gobusters/ectologger"
)

// ProgressEvent is one step of a long-running import.
type ProgressEvent struct {
	Step      string  `json:"step"`
	Message   string  `json:"message"`
	Table     string  `json:"table,omitempty"`
	TotalRows int     `json:"total_rows,omitempty"`
	Progress  float64 `json:"progress,omitempty"`
}

// Broker fans progress events out to subscribers. Publishing never blocks:
// events to a subscriber whose buffer is full are dropped, since progress
// frames are advisory and the next frame supersedes the last.
type Broker struct {
	mu          sync.Mutex
	subscribers map[chan ProgressEvent]struct{}
	logger      ectologger.Logger
}

// NewBroker creates a new progress event broker
func NewBroker(logger ectologger.Logger) *Broker {
	return &Broker{
		subscribers: map[chan ProgressEvent]struct{}{},
		logger:      logger,
	}
}

// Subscribe registers a listener. The returned cancel func must be called to
// release the subscription.
func (b *Broker) Subscribe() (<-chan ProgressEvent, func()) {
	ch := make(chan ProgressEvent, 16)

	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subscribers[ch]; ok {
			delete(b.subscribers, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber that can accept it.
func (b *Broker) Publish(event ProgressEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			// subscriber is behind; drop the frame
		}
	}
}

// SubscriberCount returns the number of active subscribers
func (b *Broker) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}
