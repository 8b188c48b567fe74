package relay

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// ErrDeliveriesClosed is returned by Drain when the broker closes the
// delivery channel, usually because the connection dropped.
var ErrDeliveriesClosed = errors.New("feed delivery channel closed")

// JobHandler receives one decoded feed job.
type JobHandler func(ctx context.Context, job Job) error

// Drain reads feed jobs from deliveries until ctx ends. A handled job is
// acked, a failed one is requeued, and a body that is not a Job is
// rejected without requeue.
func Drain(ctx context.Context, deliveries <-chan amqp.Delivery, handle JobHandler, logger *zap.Logger) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return ErrDeliveriesClosed
			}
			if err := drainOne(ctx, d, handle, logger); err != nil {
				return err
			}
		}
	}
}

func drainOne(ctx context.Context, d amqp.Delivery, handle JobHandler, logger *zap.Logger) error {
	var job Job
	if err := json.Unmarshal(d.Body, &job); err != nil || job.Type == "" {
		logger.Warn("feed: rejecting malformed job", zap.Uint64("tag", d.DeliveryTag), zap.Error(err))
		return errors.Wrap(d.Reject(false), "reject feed job")
	}
	if err := handle(ctx, job); err != nil {
		logger.Error("feed: job failed, requeueing",
			zap.String("type", job.Type), zap.String("tweet_id", job.TweetID), zap.Error(err))
		return errors.Wrap(d.Nack(false, true), "nack feed job")
	}
	return errors.Wrap(d.Ack(false), "ack feed job")
}
