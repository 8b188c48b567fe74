// Package store holds the tweet and user collections behind one contract,
// so the GraphQL layer never mutates shared slices directly.
package store

import (
	"context"
	"strconv"

	"github.com/pkg/errors"

	"github.com/sum529-create/study-graphql/internal/models"
)

// ErrUnknownBackend is returned by Open for a backend name it does not know.
var ErrUnknownBackend = errors.New("unknown store backend")

// TweetStore is the read/write contract for tweets.
// ctx allows cancellation and timeouts for every operation.
type TweetStore interface {
	// ListTweets returns every tweet in insertion order.
	ListTweets(ctx context.Context) ([]models.Tweet, error)

	// FindTweet returns the tweet with the given id. found is false on a miss.
	FindTweet(ctx context.Context, id string) (tweet models.Tweet, found bool, err error)

	// InsertTweet appends a tweet and assigns its id (see NextTweetID).
	InsertTweet(ctx context.Context, text, userID string) (models.Tweet, error)

	// RemoveTweet deletes every tweet carrying id and reports whether one existed.
	RemoveTweet(ctx context.Context, id string) (bool, error)
}

// UserStore is the read contract for users.
type UserStore interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	FindUser(ctx context.Context, id string) (user models.User, found bool, err error)
}

// Store combines both collections with lifecycle hooks.
type Store interface {
	TweetStore
	UserStore

	// Ping reports whether the backend can serve requests.
	Ping(ctx context.Context) error
	Close() error
}

// NextTweetID picks the id for a new tweet. The candidate is count+1, and
// it is advanced until taken reports it free, so ids stay unique even after
// deletions shrink the collection.
func NextTweetID(count int, taken func(id string) (bool, error)) (string, error) {
	for n := count + 1; ; n++ {
		id := strconv.Itoa(n)
		used, err := taken(id)
		if err != nil {
			return "", err
		}
		if !used {
			return id, nil
		}
	}
}

func checkCtx(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
