package graph

// Resolver serves as dependency injection container for the app.
// graph/resolver.go

import (
	"context"

	"github.com/sum529-create/study-graphql/graph/exec"
	"github.com/sum529-create/study-graphql/internal/models"
	"github.com/sum529-create/study-graphql/internal/service"
)

// MovieSource is the movie gateway as the resolvers see it.
// *client.MovieClient satisfies it.
type MovieSource interface {
	ListMovies(ctx context.Context) ([]models.Movie, error)
	GetMovie(ctx context.Context, id string) (*models.Movie, error)
}

// Resolver holds dependencies for GraphQL resolvers.
type Resolver struct {
	tweets *service.TweetService
	movies MovieSource
}

// NewResolver initializes the resolver with the tweet service and the
// movie gateway.
func NewResolver(tweets *service.TweetService, movies MovieSource) *Resolver {
	return &Resolver{tweets: tweets, movies: movies}
}

var _ exec.ResolverRoot = (*Resolver)(nil)
