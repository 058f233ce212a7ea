package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"fest-registration/logger"
)

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Kafka writes each event as one JSON message keyed by its action.
type Kafka struct {
	writer messageWriter
}

var _ Publisher = (*Kafka)(nil)

// NewKafkaWriter builds an async writer for topic. Delivery failures are
// logged from the completion callback.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		Async:                  true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error.Printf("[Kafka] failed to deliver %d message(s) to %s: %v", len(messages), topic, err)
			}
		},
	}
}

// NewKafka wraps w.
func NewKafka(w messageWriter) *Kafka {
	return &Kafka{writer: w}
}

// Publish encodes e and hands it to the writer.
func (k *Kafka) Publish(ctx context.Context, e Event) error {
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode %s: %w", e.Action, err)
	}
	msg := kafka.Message{
		Key:   []byte(e.Action),
		Value: value,
		Time:  e.At,
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka publish %s: %w", e.Action, err)
	}
	return nil
}

// Close flushes pending messages.
func (k *Kafka) Close() error {
	return k.writer.Close()
}
