package broker

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// subscriberBuffer bounds each subscriber channel; a subscriber that falls
// this far behind starts dropping messages rather than blocking publishers.
const subscriberBuffer = 64

// InMemoryBroker is a channel-based Broker for single-process use. Each
// subscriber gets its own buffered channel; publishing fans out to every
// subscriber of the topic.
type InMemoryBroker struct {
	mu      sync.Mutex
	subs    map[string][]chan Message
	offsets map[string]int64
	closed  bool
}

// NewInMemoryBroker creates a new InMemoryBroker instance.
func NewInMemoryBroker() *InMemoryBroker {
	return &InMemoryBroker{
		subs:    make(map[string][]chan Message),
		offsets: make(map[string]int64),
	}
}

// Publish fans the message out to every subscriber of topic.
func (b *InMemoryBroker) Publish(ctx context.Context, topic string, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return fmt.Errorf("broker is closed")
	}

	offset := b.offsets[topic]
	b.offsets[topic] = offset + 1

	msg := Message{
		Topic:     topic,
		Key:       key,
		Value:     value,
		Offset:    offset,
		Timestamp: time.Now().UnixMilli(),
	}

	for _, ch := range b.subs[topic] {
		select {
		case ch <- msg:
		default:
			// Slow subscriber; drop rather than block the publisher.
		}
	}
	return nil
}

// Subscribe registers a consumer channel for topic. groupID is ignored.
// The channel closes when ctx is cancelled or the broker is closed.
func (b *InMemoryBroker) Subscribe(ctx context.Context, topic string, groupID string) (<-chan Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, fmt.Errorf("broker is closed")
	}

	ch := make(chan Message, subscriberBuffer)
	b.subs[topic] = append(b.subs[topic], ch)

	go func() {
		<-ctx.Done()
		b.unsubscribe(topic, ch)
	}()

	return ch, nil
}

func (b *InMemoryBroker) unsubscribe(topic string, ch chan Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[topic]
	for i, c := range subs {
		if c == ch {
			b.subs[topic] = append(subs[:i], subs[i+1:]...)
			close(c)
			return
		}
	}
}

// Close shuts down the broker and closes every subscriber channel.
func (b *InMemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for topic, subs := range b.subs {
		for _, ch := range subs {
			close(ch)
		}
		delete(b.subs, topic)
	}
	return nil
}
