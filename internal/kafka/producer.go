// Package kafka wraps segmentio/kafka-go for the tweet event stream.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	skafka "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Writer is the subset of kafka.Writer the producer needs, so tests can
// inject a fake.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

// batchTimeout bounds how long a single synchronous write waits for a
// batch to fill.
const batchTimeout = 10 * time.Millisecond

// Producer publishes JSON values to one topic. It satisfies events.Publisher.
type Producer struct {
	writer Writer
	logger *zap.Logger
}

// NewProducer creates a producer writing to topic on brokerURL.
// The Hash balancer keeps every event of one tweet on one partition.
func NewProducer(brokerURL, topic string, logger *zap.Logger) *Producer {
	return NewProducerWithWriter(newWriter(brokerURL, topic), logger)
}

func newWriter(brokerURL, topic string) *skafka.Writer {
	return &skafka.Writer{
		Addr:                   skafka.TCP(brokerURL),
		Topic:                  topic,
		Balancer:               &skafka.Hash{},
		BatchTimeout:           batchTimeout,
		AllowAutoTopicCreation: true,
	}
}

// NewProducerWithWriter allows injecting a test writer.
func NewProducerWithWriter(w Writer, logger *zap.Logger) *Producer {
	return &Producer{writer: w, logger: logger}
}

// Publish marshals value to JSON and writes it under key.
func (p *Producer) Publish(ctx context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "failed to marshal kafka value")
	}
	if err := p.writer.WriteMessages(ctx, skafka.Message{Key: []byte(key), Value: b}); err != nil {
		return errors.Wrap(err, "kafka write")
	}
	p.logger.Debug("kafka published", zap.String("key", key), zap.Int("bytes", len(b)))
	return nil
}

// Close closes the underlying writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}
