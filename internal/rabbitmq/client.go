// Package rabbitmq wraps amqp091-go for the tweet feed queue.
package rabbitmq

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the subset of *amqp.Channel the client uses.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

// Client holds one connection and one channel on it.
type Client struct {
	conn *amqp.Connection
	chn  Channel
}

// NewClient dials url and opens a channel.
func NewClient(url string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to dial rabbitmq")
	}
	chn, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "failed to open channel")
	}
	return &Client{conn: conn, chn: chn}, nil
}

// NewClientWithChannel allows injecting a test channel.
func NewClientWithChannel(chn Channel) *Client {
	return &Client{chn: chn}
}

// Close closes the channel, then the connection.
func (r *Client) Close() error {
	if err := r.chn.Close(); err != nil {
		return err
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

// CreateQueue declares a durable queue.
func (r *Client) CreateQueue(queueName string) error {
	_, err := r.chn.QueueDeclare(
		queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	return errors.Wrapf(err, "failed to declare queue %s", queueName)
}

// Publish sends body to queueName through the default exchange.
func (r *Client) Publish(ctx context.Context, queueName string, body []byte) error {
	return r.chn.PublishWithContext(
		ctx,
		"",        // exchange
		queueName, // routing key
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// Consume delivers messages from queueName with manual acks.
func (r *Client) Consume(queueName string) (<-chan amqp.Delivery, error) {
	return r.chn.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
}

// QueuePublisher publishes events straight onto one queue.
// It satisfies events.Publisher; the key only matters for Kafka and is dropped.
type QueuePublisher struct {
	client *Client
	queue  string
}

// NewQueuePublisher declares queue and returns a publisher bound to it.
func NewQueuePublisher(client *Client, queue string) (*QueuePublisher, error) {
	if err := client.CreateQueue(queue); err != nil {
		return nil, err
	}
	return &QueuePublisher{client: client, queue: queue}, nil
}

func (p *QueuePublisher) Publish(ctx context.Context, _ string, value any) error {
	body, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "failed to marshal rabbitmq body")
	}
	return errors.Wrapf(p.client.Publish(ctx, p.queue, body), "publish to %s", p.queue)
}

func (p *QueuePublisher) Close() error {
	return p.client.Close()
}
