package kafka

import (
	"context"
	"time"

	skafka "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Reader is the subset of kafka.Reader the consumer loop needs.
type Reader interface {
	FetchMessage(ctx context.Context) (skafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

// Handler processes one message. A non-nil error makes the consumer hand
// the same message to the handler again after a delay; later messages wait.
type Handler func(ctx context.Context, key, value []byte) error

// Consumer runs a fetch-handle-commit loop over one topic.
type Consumer struct {
	reader         Reader
	logger         *zap.Logger
	handlerTimeout time.Duration
	retryDelay     time.Duration
}

// NewConsumer joins groupID on topic. Copies of the process sharing a
// group split the partitions between them.
func NewConsumer(brokers []string, topic, groupID string, logger *zap.Logger) *Consumer {
	r := skafka.NewReader(skafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})
	return NewConsumerWithReader(r, logger)
}

// NewConsumerWithReader allows injecting a test reader.
func NewConsumerWithReader(r Reader, logger *zap.Logger) *Consumer {
	return &Consumer{
		reader:         r,
		logger:         logger,
		handlerTimeout: 10 * time.Second,
		retryDelay:     time.Second,
	}
}

// Start blocks until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context, handler Handler) {
	c.logger.Info("kafka consumer started")
	for {
		if ctx.Err() != nil {
			return
		}

		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Warn("kafka fetch failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(c.retryDelay):
			}
			continue
		}

		if !c.process(ctx, handler, m) {
			return
		}
		if err := c.reader.CommitMessages(ctx, m); err != nil {
			c.logger.Error("kafka commit failed", zap.Int64("offset", m.Offset), zap.Error(err))
		}
	}
}

// process runs handler on m until it succeeds. It reports false when ctx
// ends first, in which case m must not be committed.
func (c *Consumer) process(ctx context.Context, handler Handler, m skafka.Message) bool {
	for attempt := 1; ; attempt++ {
		processCtx, cancel := context.WithTimeout(ctx, c.handlerTimeout)
		err := handler(processCtx, m.Key, m.Value)
		cancel()
		if err == nil {
			return true
		}
		c.logger.Error("kafka message processing failed",
			zap.Int64("offset", m.Offset), zap.Int("attempt", attempt), zap.Error(err))
		select {
		case <-ctx.Done():
			return false
		case <-time.After(c.retryDelay):
		}
	}
}

// Close disconnects from the brokers.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
