// Package events defines the tweet events emitted by mutations and the
// Publisher contract the brokers implement.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	TweetPosted  = "tweet.posted"
	TweetDeleted = "tweet.deleted"
)

// Envelope is the JSON document written to the broker.
type Envelope struct {
	ID         string    `json:"id"`
	Event      string    `json:"event"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// New wraps payload in an Envelope with a fresh id.
func New(event string, payload any) Envelope {
	return Envelope{
		ID:         uuid.NewString(),
		Event:      event,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// Publisher sends a value under a partitioning key.
type Publisher interface {
	Publish(ctx context.Context, key string, value any) error
	Close() error
}

// Nop drops every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }
func (Nop) Close() error                               { return nil }
