// Package httpserver mounts the GraphQL API and the operational endpoints
// on one chi router.
package httpserver

import (
	"net/http"
	"time"

	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Options selects what NewRouter mounts besides /query.
type Options struct {
	Playground bool
	Health     http.Handler // nil leaves /healthz unmounted
	Metrics    http.Handler // nil leaves /metrics unmounted
	Logger     *zap.Logger
}

// NewRouter wires the GraphQL handler and the probes.
func NewRouter(gql http.Handler, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(logger))
	r.Use(middleware.Recoverer)

	r.Handle("/query", gql)
	if opts.Playground {
		r.Handle("/", playground.Handler("GraphQL Playground", "/query"))
	}
	if opts.Health != nil {
		r.Method(http.MethodGet, "/healthz", opts.Health)
	}
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}
	return r
}

// accessLog logs one line per request once the response is written.
func accessLog(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Info("http request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("took", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())),
					zap.String("remote", r.RemoteAddr))
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
