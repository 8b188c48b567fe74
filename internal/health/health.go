// Package health tracks store liveness and reports it over the gRPC
// health protocol and a plain HTTP probe.
package health

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	hapi "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the gRPC health service name of the GraphQL API. The
// empty name reports the same status.
const ServiceName = "study_graphql.Graph"

const pingTimeout = 2 * time.Second

// Pinger is anything whose liveness can be probed, e.g. store.Store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Checker struct {
	pinger   Pinger
	server   *health.Server
	interval time.Duration
	logger   *zap.Logger
	healthy  atomic.Bool
}

// NewChecker returns a checker that reports NOT_SERVING until the first
// successful Check.
func NewChecker(p Pinger, interval time.Duration, logger *zap.Logger) *Checker {
	c := &Checker{
		pinger:   p,
		server:   health.NewServer(),
		interval: interval,
		logger:   logger,
	}
	c.set(false)
	return c
}

// Check pings once and updates the reported status.
func (c *Checker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	err := c.pinger.Ping(ctx)
	if was := c.healthy.Load(); was != (err == nil) {
		if err != nil {
			c.logger.Warn("store ping failed, reporting NOT_SERVING", zap.Error(err))
		} else {
			c.logger.Info("store reachable, reporting SERVING")
		}
	}
	c.set(err == nil)
	return err
}

// Run checks every interval until ctx is done, then marks every service
// NOT_SERVING so load balancers drain the instance.
func (c *Checker) Run(ctx context.Context) {
	_ = c.Check(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			c.healthy.Store(false)
			c.server.Shutdown()
			return
		case <-ticker.C:
			_ = c.Check(ctx)
		}
	}
}

func (c *Checker) Healthy() bool {
	return c.healthy.Load()
}

// Register exposes the checker as grpc.health.v1.Health on s.
func (c *Checker) Register(s *grpc.Server) {
	hapi.RegisterHealthServer(s, c.server)
}

// ServeHTTP answers 200 OK while healthy and 503 otherwise.
func (c *Checker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !c.Healthy() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (c *Checker) set(ok bool) {
	c.healthy.Store(ok)
	status := hapi.HealthCheckResponse_NOT_SERVING
	if ok {
		status = hapi.HealthCheckResponse_SERVING
	}
	c.server.SetServingStatus("", status)
	c.server.SetServingStatus(ServiceName, status)
}
