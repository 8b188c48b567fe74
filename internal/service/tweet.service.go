// Package service holds the tweet and user business logic between the
// GraphQL resolvers and the store.
package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/sum529-create/study-graphql/internal/events"
	"github.com/sum529-create/study-graphql/internal/metrics"
	"github.com/sum529-create/study-graphql/internal/models"
	"github.com/sum529-create/study-graphql/internal/store"
)

const publishTimeout = 5 * time.Second

// TweetService reads and mutates tweets through a store.Store and
// announces every mutation on an events.Publisher.
type TweetService struct {
	store     store.Store
	publisher events.Publisher
	logger    *zap.Logger
}

// NewTweetService wires the service. A nil publisher drops events.
func NewTweetService(s store.Store, publisher events.Publisher, logger *zap.Logger) *TweetService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &TweetService{store: s, publisher: publisher, logger: logger}
}

// AllTweets returns every tweet in insertion order.
func (s *TweetService) AllTweets(ctx context.Context) ([]models.Tweet, error) {
	tweets, err := s.store.ListTweets(ctx)
	return tweets, errors.Wrap(err, "list tweets")
}

// Tweet returns the tweet with id, or nil when there is none.
func (s *TweetService) Tweet(ctx context.Context, id string) (*models.Tweet, error) {
	tweet, found, err := s.store.FindTweet(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "find tweet")
	}
	if !found {
		return nil, nil
	}
	return &tweet, nil
}

// AllUsers returns every user.
func (s *TweetService) AllUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.store.ListUsers(ctx)
	return users, errors.Wrap(err, "list users")
}

// Author returns the user a tweet points at, or nil for a dangling userId.
func (s *TweetService) Author(ctx context.Context, tweet models.Tweet) (*models.User, error) {
	user, found, err := s.store.FindUser(ctx, tweet.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "find author")
	}
	if !found {
		return nil, nil
	}
	return &user, nil
}

// PostTweet appends a tweet. userID is stored as given, unchecked.
func (s *TweetService) PostTweet(ctx context.Context, text, userID string) (models.Tweet, error) {
	created, err := s.store.InsertTweet(ctx, text, userID)
	if err != nil {
		return models.Tweet{}, errors.Wrap(err, "insert tweet")
	}
	s.publish(ctx, created.ID, events.New(events.TweetPosted, created))
	return created, nil
}

// DeleteTweet removes the tweet with id. It reports false, not an error,
// when there was nothing to delete.
func (s *TweetService) DeleteTweet(ctx context.Context, id string) (bool, error) {
	removed, err := s.store.RemoveTweet(ctx, id)
	if err != nil {
		return false, errors.Wrap(err, "remove tweet")
	}
	if removed {
		s.publish(ctx, id, events.New(events.TweetDeleted, map[string]string{"id": id}))
	}
	return removed, nil
}

// publish never fails the mutation; a dropped event is logged and counted.
// The request context's values are kept but not its cancellation, so a
// client hanging up does not abort the hand-off.
func (s *TweetService) publish(ctx context.Context, key string, env events.Envelope) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(ctx, key, env); err != nil {
		metrics.PublishFailed(env.Event)
		s.logger.Warn("event publish failed",
			zap.String("event", env.Event), zap.String("key", key), zap.Error(err))
	}
}
