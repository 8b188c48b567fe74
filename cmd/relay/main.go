// Command study-graphql-relay moves tweet events from Kafka onto the
// RabbitMQ feed queue. Its feed subcommand consumes that queue.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/sum529-create/study-graphql/config"
	"github.com/sum529-create/study-graphql/internal/kafka"
	"github.com/sum529-create/study-graphql/internal/logger"
	"github.com/sum529-create/study-graphql/internal/rabbitmq"
	"github.com/sum529-create/study-graphql/internal/relay"
)

var relayConf = viper.New()

var relayCmd = &cobra.Command{
	Use:          "study-graphql-relay",
	Short:        "Relay tweet events from Kafka to the RabbitMQ feed queue",
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context())
	},
}

var feedCmd = &cobra.Command{
	Use:          "feed",
	Short:        "Consume feed jobs from the RabbitMQ feed queue",
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runFeed(cmd.Context())
	},
}

func init() {
	config.BindFlags(relayCmd.PersistentFlags())
	if err := relayConf.BindPFlags(relayCmd.PersistentFlags()); err != nil {
		panic(err)
	}
	relayCmd.AddCommand(feedCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := relayCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup() (*config.Config, *zap.Logger, error) {
	if err := config.LoadEnvFile(".env"); err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(relayConf)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func dialQueue(cfg *config.Config, log *zap.Logger) (*rabbitmq.Client, error) {
	log.Info("connecting to rabbitmq", zap.String("host", cfg.RABBITMQ_HOST))
	rabbitClient, err := rabbitmq.NewClient(cfg.GetRabbitMQURL())
	if err != nil {
		return nil, err
	}
	if err := rabbitClient.CreateQueue(cfg.RabbitMQQueue); err != nil {
		rabbitClient.Close()
		return nil, err
	}
	return rabbitClient, nil
}

func run(ctx context.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()
	if cfg.KAFKA_BROKER == "" || cfg.KAFKA_TOPIC == "" {
		return errors.Wrap(config.ErrInvalidConfig, "relay needs KAFKA_BROKER and KAFKA_TOPIC")
	}

	// connect to RabbitMQ first: without a queue there is nowhere to relay to
	rabbitClient, err := dialQueue(cfg, log)
	if err != nil {
		return err
	}
	defer rabbitClient.Close()

	log.Info("connecting to kafka",
		zap.String("broker", cfg.KAFKA_BROKER), zap.String("topic", cfg.KAFKA_TOPIC),
		zap.String("group", cfg.RelayGroupID))
	consumer := kafka.NewConsumer([]string{cfg.KAFKA_BROKER}, cfg.KAFKA_TOPIC, cfg.RelayGroupID, log)
	defer consumer.Close()

	bridge := relay.NewBridge(rabbitClient, cfg.RabbitMQQueue, log)
	consumer.Start(ctx, bridge.Handle)

	log.Info("relay stopped")
	return nil
}

func runFeed(ctx context.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	rabbitClient, err := dialQueue(cfg, log)
	if err != nil {
		return err
	}
	defer rabbitClient.Close()

	deliveries, err := rabbitClient.Consume(cfg.RabbitMQQueue)
	if err != nil {
		return errors.Wrapf(err, "consume %s", cfg.RabbitMQQueue)
	}
	log.Info("draining feed queue", zap.String("queue", cfg.RabbitMQQueue))
	err = relay.Drain(ctx, deliveries, func(_ context.Context, job relay.Job) error {
		log.Info("feed job",
			zap.String("type", job.Type), zap.String("tweet_id", job.TweetID),
			zap.String("event_id", job.EventID), zap.Time("queued_at", job.QueuedAt))
		return nil
	}, log)
	log.Info("feed consumer stopped")
	return err
}
