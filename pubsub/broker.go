// Package pubsub provides a small generic broker used to watch runtime
// events (lifecycle transitions, scope changes) without coupling watchers to
// the controllers that emit them.
package pubsub

import (
	"context"
	"sync"
)

const defaultBufferSize = 16

// Broker fans values out to subscribers. Publishing never blocks: a
// subscriber whose channel is full misses the value.
type Broker[T any] struct {
	mu     sync.RWMutex
	subs   map[chan T]struct{}
	closed bool
	buffer int
}

// NewBroker creates a broker with the default subscriber buffer size.
func NewBroker[T any]() *Broker[T] {
	return NewBrokerWithBuffer[T](defaultBufferSize)
}

// NewBrokerWithBuffer creates a broker with a custom subscriber buffer size.
func NewBrokerWithBuffer[T any](size int) *Broker[T] {
	return &Broker[T]{
		subs:   make(map[chan T]struct{}),
		buffer: size,
	}
}

// Subscribe registers a new subscriber. The returned channel is closed when
// ctx is cancelled or the broker is closed. Subscribing to a closed broker
// returns an already-closed channel.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan T {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		ch := make(chan T)
		close(ch)
		return ch
	}

	sub := make(chan T, b.buffer)
	b.subs[sub] = struct{}{}

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.closed {
			return
		}
		delete(b.subs, sub)
		close(sub)
	}()

	return sub
}

// Publish delivers v to every subscriber that has buffer room.
func (b *Broker[T]) Publish(v T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}
	for sub := range b.subs {
		select {
		case sub <- v:
		default:
			// Subscriber is not keeping up; drop rather than block the
			// publishing cascade.
		}
	}
}

// Close shuts down the broker and closes all subscriber channels.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for sub := range b.subs {
		close(sub)
	}
	b.subs = nil
}

// SubscriberCount returns the number of active subscribers.
func (b *Broker[T]) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
