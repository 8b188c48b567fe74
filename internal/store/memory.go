package store

import (
	"context"
	"sync"

	"github.com/sum529-create/study-graphql/internal/models"
)

// MemoryStore keeps both collections in process memory.
// Nothing survives a restart.
type MemoryStore struct {
	mu     sync.RWMutex
	tweets []models.Tweet
	users  []models.User
}

// NewMemoryStore returns a store preloaded with copies of the given records.
func NewMemoryStore(tweets []models.Tweet, users []models.User) *MemoryStore {
	return &MemoryStore{
		tweets: append([]models.Tweet(nil), tweets...),
		users:  append([]models.User(nil), users...),
	}
}

// NewSeededMemoryStore returns a store holding SeedTweets and SeedUsers.
func NewSeededMemoryStore() *MemoryStore {
	return NewMemoryStore(SeedTweets(), SeedUsers())
}

func (s *MemoryStore) ListTweets(ctx context.Context) ([]models.Tweet, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Tweet{}, s.tweets...), nil
}

func (s *MemoryStore) FindTweet(ctx context.Context, id string) (models.Tweet, bool, error) {
	if err := checkCtx(ctx); err != nil {
		return models.Tweet{}, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, tweet := range s.tweets {
		if tweet.ID == id {
			return tweet, true, nil
		}
	}
	return models.Tweet{}, false, nil
}

func (s *MemoryStore) InsertTweet(ctx context.Context, text, userID string) (models.Tweet, error) {
	if err := checkCtx(ctx); err != nil {
		return models.Tweet{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := NextTweetID(len(s.tweets), func(id string) (bool, error) {
		return s.hasTweetLocked(id), nil
	})
	if err != nil {
		return models.Tweet{}, err
	}
	tweet := models.Tweet{ID: id, Text: text, UserID: userID}
	s.tweets = append(s.tweets, tweet)
	return tweet, nil
}

func (s *MemoryStore) RemoveTweet(ctx context.Context, id string) (bool, error) {
	if err := checkCtx(ctx); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.tweets[:0]
	removed := false
	for _, tweet := range s.tweets {
		if tweet.ID == id {
			removed = true
			continue
		}
		kept = append(kept, tweet)
	}
	// clear the tail so dropped tweets are not pinned by the backing array
	for i := len(kept); i < len(s.tweets); i++ {
		s.tweets[i] = models.Tweet{}
	}
	s.tweets = kept
	return removed, nil
}

func (s *MemoryStore) ListUsers(ctx context.Context) ([]models.User, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.User{}, s.users...), nil
}

func (s *MemoryStore) FindUser(ctx context.Context, id string) (models.User, bool, error) {
	if err := checkCtx(ctx); err != nil {
		return models.User{}, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.ID == id {
			return user, true, nil
		}
	}
	return models.User{}, false, nil
}

// Ping always succeeds while the context is live.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return checkCtx(ctx)
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) hasTweetLocked(id string) bool {
	for _, tweet := range s.tweets {
		if tweet.ID == id {
			return true
		}
	}
	return false
}
