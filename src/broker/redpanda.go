package broker

import (
	"context"
	"fmt"
	"sync"

	"github.com/twmb/franz-go/pkg/kgo"

	"buildwatch/src/logger"
)

// fetchBuffer bounds how many records a subscription can hold before the
// consume loop blocks on the reader.
const fetchBuffer = 100

// RedpandaBroker publishes build records to a Kafka-compatible cluster via
// franz-go. One producer client is shared; each subscription gets its own
// consumer-group client.
type RedpandaBroker struct {
	producer *kgo.Client
	brokers  []string
	log      logger.Logger

	mu        sync.RWMutex
	consumers map[string]*kgo.Client
	closed    bool
}

// NewRedpandaBroker connects a producer to the given seed brokers
// (e.g. ["localhost:19092"]). Topics are auto-created on first publish.
func NewRedpandaBroker(brokers []string, log logger.Logger) (*RedpandaBroker, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker address is required")
	}

	producer, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka client: %w", err)
	}

	return &RedpandaBroker{
		producer:  producer,
		brokers:   brokers,
		log:       log,
		consumers: make(map[string]*kgo.Client),
	}, nil
}

// Publish produces one record synchronously. Record delivery is confirmed
// before Publish returns.
func (b *RedpandaBroker) Publish(ctx context.Context, topic string, key string, value []byte) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return fmt.Errorf("broker is closed")
	}

	record := &kgo.Record{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	}

	results := b.producer.ProduceSync(ctx, record)
	if err := results.FirstErr(); err != nil {
		return fmt.Errorf("failed to produce message: %w", err)
	}

	return nil
}

// Subscribe opens a consumer-group subscription on topic, reading from the
// earliest offset. At most one subscription per (topic, group) pair; the
// returned channel closes when ctx is cancelled.
func (b *RedpandaBroker) Subscribe(ctx context.Context, topic string, groupID string) (<-chan Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, fmt.Errorf("broker is closed")
	}

	subKey := topic + "/" + groupID
	if _, exists := b.consumers[subKey]; exists {
		return nil, fmt.Errorf("consumer already exists for topic %s and group %s", topic, groupID)
	}

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(b.brokers...),
		kgo.ConsumerGroup(groupID),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}

	b.consumers[subKey] = consumer

	out := make(chan Message, fetchBuffer)
	go b.consumeLoop(ctx, consumer, out)

	return out, nil
}

// consumeLoop polls the consumer until ctx is done or the client is closed,
// forwarding each record as a Message. Fetch errors are logged, not fatal.
func (b *RedpandaBroker) consumeLoop(ctx context.Context, consumer *kgo.Client, out chan<- Message) {
	defer close(out)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		fetches := consumer.PollFetches(ctx)
		if fetches.IsClientClosed() {
			return
		}

		if errs := fetches.Errors(); len(errs) > 0 {
			for _, err := range errs {
				b.log.Error("fetch error on %s: %v", err.Topic, err.Err)
			}
			continue
		}

		fetches.EachRecord(func(record *kgo.Record) {
			select {
			case out <- toMessage(record):
			case <-ctx.Done():
			}
		})
	}
}

func toMessage(record *kgo.Record) Message {
	return Message{
		Topic:     record.Topic,
		Key:       string(record.Key),
		Value:     record.Value,
		Offset:    record.Offset,
		Partition: record.Partition,
		Timestamp: record.Timestamp.UnixMilli(),
	}
}

// Close shuts down the producer and every consumer. Idempotent.
func (b *RedpandaBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for _, consumer := range b.consumers {
		consumer.Close()
	}
	b.consumers = make(map[string]*kgo.Client)

	b.producer.Close()
	return nil
}
