// Package notifier fans dashboard events out to open SSE streams.
package notifier

import (
	"sync"
	"time"
)

// Event kinds.
const (
	// KindDatasetChanged is sent when the launch records file changes on disk.
	// The loaded dataset is immutable, so pages are only told to expect a
	// restart.
	KindDatasetChanged = "dataset-changed"
)

// Event is one notification pushed to subscribers.
type Event struct {
	Kind    string
	Message string
	At      time.Time
}

// Notifier broadcasts events to every subscribed stream.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan Event]struct{}
}

// New creates a Notifier with no subscribers.
func New() *Notifier {
	return &Notifier{
		listeners: make(map[chan Event]struct{}),
	}
}

// Subscribe returns a channel that receives events.
// The caller must Unsubscribe when its stream ends.
func (n *Notifier) Subscribe() chan Event {
	ch := make(chan Event, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes a subscriber channel.
func (n *Notifier) Unsubscribe(ch chan Event) {
	n.mu.Lock()
	delete(n.listeners, ch)
	n.mu.Unlock()
	close(ch)
}

// Broadcast delivers ev to every subscriber without blocking. A subscriber
// whose buffer is still full misses the event; it already has one pending.
func (n *Notifier) Broadcast(ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch := range n.listeners {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribers returns the number of open subscriptions.
func (n *Notifier) Subscribers() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}
