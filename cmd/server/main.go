// Command study-graphql serves the tweet, user and movie GraphQL API.
package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/sum529-create/study-graphql/client"
	"github.com/sum529-create/study-graphql/config"
	"github.com/sum529-create/study-graphql/graph"
	"github.com/sum529-create/study-graphql/internal/events"
	"github.com/sum529-create/study-graphql/internal/health"
	"github.com/sum529-create/study-graphql/internal/httpserver"
	"github.com/sum529-create/study-graphql/internal/kafka"
	"github.com/sum529-create/study-graphql/internal/logger"
	"github.com/sum529-create/study-graphql/internal/metrics"
	"github.com/sum529-create/study-graphql/internal/rabbitmq"
	"github.com/sum529-create/study-graphql/internal/service"
	"github.com/sum529-create/study-graphql/internal/store"
)

const (
	healthInterval  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

var rootConf = viper.New()

var rootCmd = &cobra.Command{
	Use:   "study-graphql",
	Short: "GraphQL API for tweets, users and YTS movies",
	Long: `
Serves a GraphQL API over an owned tweet and user store, plus a pass-through
to the YTS movie listing API. Tweet mutations are published as events to
Kafka or RabbitMQ when a broker is configured.
`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context())
	},
}

func init() {
	config.BindFlags(rootCmd.Flags())
	if err := rootConf.BindPFlags(rootCmd.Flags()); err != nil {
		panic(err)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if err := config.LoadEnvFile(".env"); err != nil {
		return err
	}
	cfg, err := config.Load(rootConf)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		return err
	}
	defer log.Sync()

	st, err := store.Open(ctx, cfg.StoreBackend, cfg.GetDBURL())
	if err != nil {
		return errors.Wrap(err, "failed to open store")
	}
	defer st.Close()

	publisher, err := newPublisher(cfg, log)
	if err != nil {
		return err
	}
	defer publisher.Close()

	tweets := service.NewTweetService(st, publisher, log)
	movies := client.NewMovieClient(cfg.MovieAPIBaseURL, cfg.MovieAPITimeout, log)
	gql := graph.NewServer(graph.NewResolver(tweets, movies), graph.ServerOptions{
		Introspection:   cfg.Introspection,
		QueryCacheSize:  cfg.QueryCacheSize,
		ComplexityLimit: cfg.ComplexityLimit,
		Logger:          log,
	})

	checker := health.NewChecker(st, healthInterval, log)
	router := httpserver.NewRouter(gql, httpserver.Options{
		Playground: cfg.Playground,
		Health:     checker,
		Metrics:    metrics.Handler(),
		Logger:     log,
	})
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		checker.Run(gctx)
		return nil
	})
	g.Go(func() error {
		log.Info("GraphQL server running", zap.String("addr", cfg.HTTPAddr),
			zap.String("store", cfg.StoreBackend), zap.Bool("playground", cfg.Playground))
		return runServer(gctx, srv)
	})
	if cfg.GRPCHealthAddr != "" {
		g.Go(func() error {
			return serveHealth(gctx, cfg.GRPCHealthAddr, checker, log)
		})
	}
	return g.Wait()
}

// newPublisher picks Kafka when a broker is set, then RabbitMQ, and
// otherwise drops events.
func newPublisher(cfg *config.Config, log *zap.Logger) (events.Publisher, error) {
	switch {
	case cfg.KAFKA_BROKER != "":
		log.Info("publishing tweet events to kafka",
			zap.String("broker", cfg.KAFKA_BROKER), zap.String("topic", cfg.KAFKA_TOPIC))
		return kafka.NewProducer(cfg.KAFKA_BROKER, cfg.KAFKA_TOPIC, log), nil
	case cfg.RabbitMQEnabled():
		rc, err := rabbitmq.NewClient(cfg.GetRabbitMQURL())
		if err != nil {
			return nil, err
		}
		pub, err := rabbitmq.NewQueuePublisher(rc, cfg.RabbitMQQueue)
		if err != nil {
			rc.Close()
			return nil, err
		}
		log.Info("publishing tweet events to rabbitmq", zap.String("queue", cfg.RabbitMQQueue))
		return pub, nil
	default:
		log.Info("no event broker configured, tweet events are dropped")
		return events.Nop{}, nil
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		return errors.Wrap(err, "http server")
	}
}

func serveHealth(ctx context.Context, addr string, checker *health.Checker, log *zap.Logger) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", addr)
	}
	s := grpc.NewServer()
	checker.Register(s)

	go func() {
		<-ctx.Done()
		s.GracefulStop()
	}()

	log.Info("gRPC health service running", zap.String("addr", addr))
	if err := s.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return errors.Wrap(err, "grpc health server")
	}
	return nil
}
