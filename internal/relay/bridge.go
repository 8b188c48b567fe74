// Package relay turns tweet events read from Kafka into feed jobs on a
// RabbitMQ queue, and drains those jobs on the other side.
package relay

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/sum529-create/study-graphql/internal/events"
)

const (
	JobFeedFanout  = "feed_fanout"
	JobFeedRetract = "feed_retract"
)

// Job is what feed workers read from the queue.
type Job struct {
	Type     string          `json:"type"`
	EventID  string          `json:"event_id"`
	TweetID  string          `json:"tweet_id"`
	Payload  json.RawMessage `json:"payload"`
	QueuedAt time.Time       `json:"queued_at"`
}

// QueuePublisher is the write side of a queue, e.g. *rabbitmq.Client.
type QueuePublisher interface {
	Publish(ctx context.Context, queue string, body []byte) error
}

// Bridge is a kafka.Handler that forwards tweet events as jobs.
type Bridge struct {
	queue  string
	out    QueuePublisher
	logger *zap.Logger
}

func NewBridge(out QueuePublisher, queue string, logger *zap.Logger) *Bridge {
	return &Bridge{queue: queue, out: out, logger: logger}
}

type inbound struct {
	ID      string          `json:"id"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// Handle translates one Kafka message. Malformed and unknown events are
// logged and skipped, so their offsets still get committed; only a failed
// hand-off to the queue is returned for redelivery.
func (b *Bridge) Handle(ctx context.Context, key, value []byte) error {
	var ev inbound
	if err := json.Unmarshal(value, &ev); err != nil {
		b.logger.Warn("relay: dropping undecodable event", zap.ByteString("key", key), zap.Error(err))
		return nil
	}

	var jobType string
	switch ev.Event {
	case events.TweetPosted:
		jobType = JobFeedFanout
	case events.TweetDeleted:
		jobType = JobFeedRetract
	default:
		b.logger.Debug("relay: ignoring event", zap.String("event", ev.Event))
		return nil
	}

	job := Job{
		Type:     jobType,
		EventID:  ev.ID,
		TweetID:  string(key),
		Payload:  ev.Payload,
		QueuedAt: time.Now().UTC(),
	}
	body, err := json.Marshal(job)
	if err != nil {
		return errors.Wrap(err, "marshal feed job")
	}
	if err := b.out.Publish(ctx, b.queue, body); err != nil {
		return errors.Wrapf(err, "queue %s job for tweet %s", jobType, job.TweetID)
	}
	b.logger.Info("relay: queued feed job",
		zap.String("type", jobType), zap.String("tweet_id", job.TweetID), zap.String("event_id", ev.ID))
	return nil
}
