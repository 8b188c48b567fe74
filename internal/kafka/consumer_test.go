package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	skafka "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeReader hands out msgs in order, then cancels the loop.
type fakeReader struct {
	msgs      []skafka.Message
	next      int
	committed []int64
	stop      context.CancelFunc
}

func (f *fakeReader) FetchMessage(ctx context.Context) (skafka.Message, error) {
	if f.next < len(f.msgs) {
		m := f.msgs[f.next]
		f.next++
		return m, nil
	}
	f.stop()
	<-ctx.Done()
	return skafka.Message{}, ctx.Err()
}

func (f *fakeReader) CommitMessages(ctx context.Context, msgs ...skafka.Message) error {
	for _, m := range msgs {
		f.committed = append(f.committed, m.Offset)
	}
	return nil
}

func (f *fakeReader) Close() error { return nil }

func TestConsumer_RetriesFailedMessageBeforeMovingOn(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := &fakeReader{
		msgs: []skafka.Message{
			{Offset: 1, Key: []byte("a"), Value: []byte("ok")},
			{Offset: 2, Key: []byte("b"), Value: []byte("flaky")},
			{Offset: 3, Key: []byte("c"), Value: []byte("ok")},
		},
		stop: cancel,
	}
	c := NewConsumerWithReader(r, zap.NewNop())
	c.retryDelay = time.Millisecond

	var seen []string
	failures := 2
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Start(ctx, func(ctx context.Context, key, value []byte) error {
			seen = append(seen, string(key))
			if string(value) == "flaky" && failures > 0 {
				failures--
				return errors.New("handler failed")
			}
			return nil
		})
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("consumer did not stop after cancel")
	}
	require.Equal(t, []string{"a", "b", "b", "b", "c"}, seen)
	assert.Equal(t, []int64{1, 2, 3}, r.committed)
}

func TestConsumer_StopsRetryingOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := &fakeReader{
		msgs: []skafka.Message{{Offset: 7, Key: []byte("x"), Value: []byte("broken")}},
		stop: cancel,
	}
	c := NewConsumerWithReader(r, zap.NewNop())
	c.retryDelay = time.Millisecond

	attempts := 0
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Start(ctx, func(context.Context, []byte, []byte) error {
			attempts++
			if attempts == 3 {
				cancel()
			}
			return errors.New("queue down")
		})
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("consumer did not stop after cancel")
	}
	assert.Equal(t, 3, attempts)
	assert.Empty(t, r.committed)
	assert.Equal(t, 1, r.next)
}
