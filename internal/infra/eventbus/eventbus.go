// Package eventbus is an in-memory publish/subscribe bus. The relay publishes
// an event per completed invocation and on registry reloads; the journal
// recorder consumes them off the request path.
//
// Design:
//   - Buffered Go channel per subscriber (buffer=64).
//   - Publish is non-blocking: the event is dropped if a subscriber's buffer
//     is full. A slow journal must never stall an invocation.
//   - Subscribe returns a read-only channel; the caller owns the consumption loop.
//   - No persistence; durable history lives in the sqlite journal.
package eventbus

import "sync"

// Topics published by the relay.
const (
	TopicToolInvoked      = "tool.invoked"
	TopicRegistryReloaded = "registry.reloaded"
)

// Event is a single published message.
type Event struct {
	Topic   string
	Payload any
}

// EventBus is the interface for publishing and subscribing to topics.
type EventBus interface {
	Publish(topic string, payload any)
	Subscribe(topic string) <-chan Event
}

const subscriberBuffer = 64

// Bus is the in-memory implementation of EventBus.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]chan Event
}

// New returns a new in-memory Bus.
func New() *Bus {
	return &Bus{subscribers: make(map[string][]chan Event)}
}

// Subscribe registers a new subscriber for topic and returns a read-only
// channel. The caller must drain the channel to avoid dropped events.
func (b *Bus) Subscribe(topic string) <-chan Event {
	ch := make(chan Event, subscriberBuffer)
	b.mu.Lock()
	b.subscribers[topic] = append(b.subscribers[topic], ch)
	b.mu.Unlock()
	return ch
}

// Publish delivers an Event to every subscriber of topic without blocking.
func (b *Bus) Publish(topic string, payload any) {
	evt := Event{Topic: topic, Payload: payload}
	b.mu.RLock()
	subs := b.subscribers[topic]
	b.mu.RUnlock()
	for _, ch := range subs {
		select {
		case ch <- evt:
		default:
			// subscriber buffer full — drop
		}
	}
}
