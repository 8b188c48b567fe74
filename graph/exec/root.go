// Package exec executes GraphQL operations against schema.graphqls on top
// of the gqlgen runtime. Each object type is marshalled by hand, so the
// resolver contract below is the single place the schema meets Go code.
package exec

import (
	"bytes"
	"context"
	_ "embed"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/sum529-create/study-graphql/internal/models"
)

//go:embed schema.graphqls
var sourceData string

var parsedSchema = gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphqls", Input: sourceData})

// ResolverRoot hands out the resolver set of every type with resolver fields.
type ResolverRoot interface {
	Mutation() MutationResolver
	Query() QueryResolver
	Tweet() TweetResolver
	User() UserResolver
}

type QueryResolver interface {
	AllMovies(ctx context.Context) ([]*models.Movie, error)
	AllUsers(ctx context.Context) ([]*models.User, error)
	AllTweets(ctx context.Context) ([]*models.Tweet, error)
	Tweet(ctx context.Context, id string) (*models.Tweet, error)
	Movie(ctx context.Context, id string) (*models.Movie, error)
}

type MutationResolver interface {
	PostTweet(ctx context.Context, text string, userID string) (*models.Tweet, error)
	DeleteTweet(ctx context.Context, id string) (bool, error)
}

type TweetResolver interface {
	Author(ctx context.Context, obj *models.Tweet) (*models.User, error)
}

type UserResolver interface {
	FullName(ctx context.Context, obj *models.User) (string, error)
}

// Config is passed to NewExecutableSchema.
type Config struct {
	Resolvers ResolverRoot
}

// NewExecutableSchema returns the schema in the form gqlgen's handler serves.
func NewExecutableSchema(cfg Config) graphql.ExecutableSchema {
	return &executableSchema{schema: parsedSchema, resolvers: cfg.Resolvers}
}

type executableSchema struct {
	schema    *ast.Schema
	resolvers ResolverRoot
}

func (e *executableSchema) Schema() *ast.Schema {
	return e.schema
}

// Complexity weighs list fields by their expected fan-out. Fields not
// listed fall back to gqlgen's default of 1 + children.
func (e *executableSchema) Complexity(ctx context.Context, typeName, field string, childComplexity int, rawArgs map[string]any) (int, bool) {
	switch typeName + "." + field {
	case "Query.allTweets", "Query.allUsers":
		return 1 + 10*childComplexity, true
	case "Query.allMovies":
		return 1 + 20*childComplexity, true
	case "Query.movie":
		return 5 + childComplexity, true
	case "Tweet.author":
		return 2 + childComplexity, true
	}
	return 0, false
}

func (e *executableSchema) Exec(ctx context.Context) graphql.ResponseHandler {
	opCtx := graphql.GetOperationContext(ctx)
	ec := &executionContext{OperationContext: opCtx, es: e}

	var root func(ctx context.Context, sel ast.SelectionSet) graphql.Marshaler
	switch opCtx.Operation.Operation {
	case ast.Query:
		root = ec._Query
	case ast.Mutation:
		root = ec._Mutation
	default:
		return graphql.OneShot(graphql.ErrorResponse(ctx, "unsupported GraphQL operation"))
	}

	first := true
	return func(ctx context.Context) *graphql.Response {
		if !first {
			return nil
		}
		first = false
		data := root(ctx, opCtx.Operation.SelectionSet)
		var buf bytes.Buffer
		data.MarshalGQL(&buf)
		return &graphql.Response{Data: buf.Bytes()}
	}
}

type executionContext struct {
	*graphql.OperationContext
	es *executableSchema
}
