package rabbitmq

import (
	"context"
	"encoding/json"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	key string
	msg amqp.Publishing
}

type consumed struct {
	queue   string
	autoAck bool
}

type fakeChannel struct {
	declared  []string
	published []published
	consumed  []consumed
	closed    bool
}

func (f *fakeChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	f.declared = append(f.declared, name)
	return amqp.Queue{Name: name}, nil
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.published = append(f.published, published{key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error) {
	f.consumed = append(f.consumed, consumed{queue: queue, autoAck: autoAck})
	return make(chan amqp.Delivery), nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestQueuePublisher(t *testing.T) {
	ch := &fakeChannel{}
	p, err := NewQueuePublisher(NewClientWithChannel(ch), "tweet_feed")
	require.NoError(t, err)
	assert.Equal(t, []string{"tweet_feed"}, ch.declared)

	require.NoError(t, p.Publish(context.Background(), "ignored", map[string]string{"event": "tweet.posted"}))
	require.Len(t, ch.published, 1)

	got := ch.published[0]
	assert.Equal(t, "tweet_feed", got.key)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)

	var body map[string]string
	require.NoError(t, json.Unmarshal(got.msg.Body, &body))
	assert.Equal(t, "tweet.posted", body["event"])

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestConsumeUsesManualAcks(t *testing.T) {
	ch := &fakeChannel{}
	c := NewClientWithChannel(ch)

	deliveries, err := c.Consume("tweet_feed")
	require.NoError(t, err)
	assert.NotNil(t, deliveries)
	assert.Equal(t, []consumed{{queue: "tweet_feed", autoAck: false}}, ch.consumed)
}
