package graph

import (
	"context"

	"github.com/sum529-create/study-graphql/graph/exec"
	"github.com/sum529-create/study-graphql/internal/models"
)

// AllMovies is the resolver for the allMovies field.
func (r *queryResolver) AllMovies(ctx context.Context) ([]*models.Movie, error) {
	movies, err := r.movies.ListMovies(ctx)
	if err != nil {
		return nil, err
	}
	return pointers(movies), nil
}

// AllUsers is the resolver for the allUsers field.
func (r *queryResolver) AllUsers(ctx context.Context) ([]*models.User, error) {
	users, err := r.tweets.AllUsers(ctx)
	if err != nil {
		return nil, err
	}
	return pointers(users), nil
}

// AllTweets is the resolver for the allTweets field.
func (r *queryResolver) AllTweets(ctx context.Context) ([]*models.Tweet, error) {
	tweets, err := r.tweets.AllTweets(ctx)
	if err != nil {
		return nil, err
	}
	return pointers(tweets), nil
}

// Tweet is the resolver for the tweet field.
func (r *queryResolver) Tweet(ctx context.Context, id string) (*models.Tweet, error) {
	return r.tweets.Tweet(ctx, id)
}

// Movie is the resolver for the movie field.
func (r *queryResolver) Movie(ctx context.Context, id string) (*models.Movie, error) {
	return r.movies.GetMovie(ctx, id)
}

// PostTweet is the resolver for the postTweet field.
func (r *mutationResolver) PostTweet(ctx context.Context, text string, userID string) (*models.Tweet, error) {
	tweet, err := r.tweets.PostTweet(ctx, text, userID)
	if err != nil {
		return nil, err
	}
	return &tweet, nil
}

// DeleteTweet is the resolver for the deleteTweet field.
func (r *mutationResolver) DeleteTweet(ctx context.Context, id string) (bool, error) {
	return r.tweets.DeleteTweet(ctx, id)
}

// Author is the resolver for the author field.
func (r *tweetResolver) Author(ctx context.Context, obj *models.Tweet) (*models.User, error) {
	return r.tweets.Author(ctx, *obj)
}

// FullName is the resolver for the fullName field.
func (r *userResolver) FullName(_ context.Context, obj *models.User) (string, error) {
	return obj.FullName(), nil
}

// Mutation returns exec.MutationResolver implementation.
func (r *Resolver) Mutation() exec.MutationResolver { return &mutationResolver{r} }

// Query returns exec.QueryResolver implementation.
func (r *Resolver) Query() exec.QueryResolver { return &queryResolver{r} }

// Tweet returns exec.TweetResolver implementation.
func (r *Resolver) Tweet() exec.TweetResolver { return &tweetResolver{r} }

// User returns exec.UserResolver implementation.
func (r *Resolver) User() exec.UserResolver { return &userResolver{r} }

type mutationResolver struct{ *Resolver }
type queryResolver struct{ *Resolver }
type tweetResolver struct{ *Resolver }
type userResolver struct{ *Resolver }

func pointers[T any](in []T) []*T {
	out := make([]*T, len(in))
	for i := range in {
		out[i] = &in[i]
	}
	return out
}
