package relay

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sum529-create/study-graphql/internal/events"
	"github.com/sum529-create/study-graphql/internal/models"
)

type published struct {
	queue string
	body  []byte
}

type fakeQueue struct {
	msgs []published
	err  error
}

func (f *fakeQueue) Publish(_ context.Context, queue string, body []byte) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, published{queue: queue, body: body})
	return nil
}

func encode(t *testing.T, env events.Envelope) []byte {
	t.Helper()
	b, err := json.Marshal(env)
	require.NoError(t, err)
	return b
}

func TestHandleMapsEventsToJobs(t *testing.T) {
	q := &fakeQueue{}
	b := NewBridge(q, "tweet_feed", zap.NewNop())
	ctx := context.Background()

	posted := events.New(events.TweetPosted, models.Tweet{ID: "3", Text: "hi", UserID: "1"})
	require.NoError(t, b.Handle(ctx, []byte("3"), encode(t, posted)))

	deleted := events.New(events.TweetDeleted, map[string]string{"id": "1"})
	require.NoError(t, b.Handle(ctx, []byte("1"), encode(t, deleted)))

	require.Len(t, q.msgs, 2)
	var first, second Job
	require.NoError(t, json.Unmarshal(q.msgs[0].body, &first))
	require.NoError(t, json.Unmarshal(q.msgs[1].body, &second))

	assert.Equal(t, "tweet_feed", q.msgs[0].queue)
	assert.Equal(t, JobFeedFanout, first.Type)
	assert.Equal(t, posted.ID, first.EventID)
	assert.Equal(t, "3", first.TweetID)
	assert.JSONEq(t, `{"id":"3","text":"hi","userId":"1"}`, string(first.Payload))

	assert.Equal(t, JobFeedRetract, second.Type)
	assert.Equal(t, "1", second.TweetID)
}

func TestHandleSkipsJunk(t *testing.T) {
	q := &fakeQueue{}
	b := NewBridge(q, "tweet_feed", zap.NewNop())

	assert.NoError(t, b.Handle(context.Background(), nil, []byte("not json")))
	assert.NoError(t, b.Handle(context.Background(), nil, encode(t, events.New("user.created", nil))))
	assert.Empty(t, q.msgs)
}

func TestHandleReturnsQueueFailure(t *testing.T) {
	q := &fakeQueue{err: errors.New("channel closed")}
	b := NewBridge(q, "tweet_feed", zap.NewNop())

	err := b.Handle(context.Background(), []byte("3"), encode(t, events.New(events.TweetPosted, nil)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel closed")
}
