package graph

import (
	"context"
	"strings"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/extension"
	"github.com/99designs/gqlgen/graphql/handler/lru"
	"github.com/99designs/gqlgen/graphql/handler/transport"
	"github.com/pkg/errors"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.uber.org/zap"

	"github.com/sum529-create/study-graphql/client"
	"github.com/sum529-create/study-graphql/graph/exec"
	"github.com/sum529-create/study-graphql/internal/metrics"
)

const apqCacheSize = 100

// ServerOptions tunes the GraphQL handler.
type ServerOptions struct {
	Introspection   bool
	QueryCacheSize  int
	ComplexityLimit int // 0 disables the limit
	Logger          *zap.Logger
}

// NewServer builds the /query handler around the resolver.
func NewServer(resolver *Resolver, opts ServerOptions) *handler.Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	srv := handler.New(exec.NewExecutableSchema(exec.Config{Resolvers: resolver}))
	srv.AddTransport(transport.Options{})
	srv.AddTransport(transport.GET{})
	srv.AddTransport(transport.POST{})

	if opts.QueryCacheSize > 0 {
		srv.SetQueryCache(lru.New[*ast.QueryDocument](opts.QueryCacheSize))
	}
	if opts.Introspection {
		srv.Use(extension.Introspection{})
	}
	srv.Use(extension.AutomaticPersistedQuery{Cache: lru.New[string](apqCacheSize)})
	if opts.ComplexityLimit > 0 {
		srv.Use(extension.FixedComplexityLimit(opts.ComplexityLimit))
	}

	srv.SetErrorPresenter(presentError)
	srv.SetRecoverFunc(func(ctx context.Context, err any) error {
		logger.Error("resolver panic",
			zap.String("path", graphql.GetPath(ctx).String()),
			zap.Any("panic", err),
			zap.Stack("stack"))
		return gqlerror.Errorf("internal system error")
	})
	srv.AroundFields(observeFields(logger))

	return srv
}

// presentError hides gateway root causes behind their public message and
// tags the error with its kind.
func presentError(ctx context.Context, err error) *gqlerror.Error {
	gqlErr := graphql.DefaultErrorPresenter(ctx, err)

	var gwErr *client.GatewayError
	if errors.As(err, &gwErr) {
		gqlErr.Message = gwErr.Public()
		if gqlErr.Extensions == nil {
			gqlErr.Extensions = map[string]any{}
		}
		gqlErr.Extensions["code"] = string(gwErr.Kind)
	}
	return gqlErr
}

func observeFields(logger *zap.Logger) graphql.FieldMiddleware {
	return func(ctx context.Context, next graphql.Resolver) (any, error) {
		res, err := next(ctx)

		fc := graphql.GetFieldContext(ctx)
		if fc == nil || !fc.IsResolver || strings.HasPrefix(fc.Object, "__") || strings.HasPrefix(fc.Field.Name, "__") {
			return res, err
		}
		outcome := "ok"
		if err != nil {
			outcome = "error"
			logger.Warn("field resolver failed",
				zap.String("object", fc.Object),
				zap.String("field", fc.Field.Name),
				zap.String("path", fc.Path().String()),
				zap.Error(err))
		}
		metrics.ObserveField(fc.Object, fc.Field.Name, outcome)
		return res, err
	}
}
