// Package config loads the settings shared by the server and the relay.
// Values come from flags, then the environment, then an optional config
// file, then the defaults below.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sum529-create/study-graphql/client"
	"github.com/sum529-create/study-graphql/internal/store"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// CommonConfig holds infrastructure details used by both binaries.
// The field names match the environment variables they are read from.
type CommonConfig struct {
	//Database (PostgreSQL) config
	DB_USER     string
	DB_PASSWORD string
	DB_NAME     string
	DB_HOST     string
	DB_PORT     string
	//Kafka config
	KAFKA_TOPIC  string
	KAFKA_BROKER string
	//RabbitMQ config
	RABBITMQ_USER     string
	RABBITMQ_PASSWORD string
	RABBITMQ_HOST     string
	RABBITMQ_PORT     string
}

// Config is the full server configuration.
type Config struct {
	CommonConfig

	HTTPAddr        string
	GRPCHealthAddr  string // empty disables the gRPC health server
	Playground      bool
	Introspection   bool
	QueryCacheSize  int
	ComplexityLimit int

	LogLevel       string
	LogDevelopment bool

	StoreBackend    string
	MovieAPIBaseURL string
	MovieAPITimeout time.Duration

	RabbitMQQueue string
	RelayGroupID  string
}

var defaults = map[string]any{
	"http_addr":          ":4000",
	"grpc_health_addr":   ":50051",
	"playground":         true,
	"introspection":      true,
	"query_cache_size":   1000,
	"complexity_limit":   0,
	"log_level":          "info",
	"log_development":    false,
	"store_backend":      store.BackendMemory,
	"movie_api_base_url": client.DefaultBaseURL,
	"movie_api_timeout":  10 * time.Second,
	"kafka_broker":       "",
	"kafka_topic":        "tweet_events",
	"rabbitmq_queue":     "tweet_feed",
	"relay_group_id":     "tweet-feed-relay",
	"db_port":            "5432",
}

// SetDefaults registers every key with its default so AutomaticEnv can
// resolve it.
func SetDefaults(v *viper.Viper) {
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	for _, k := range []string{"db_user", "db_password", "db_name", "db_host",
		"rabbitmq_user", "rabbitmq_password", "rabbitmq_host", "rabbitmq_port"} {
		v.SetDefault(k, "")
	}
}

// BindFlags declares the command line flags. Callers bind the flag set
// into viper with BindPFlags.
func BindFlags(fs *pflag.FlagSet) {
	fs.String("config", "",
		"Configuration file. Takes precedence over default values, but is "+
			"overridden to values set with environment variables and flags.")
	fs.String("http_addr", defaults["http_addr"].(string), "Address the GraphQL HTTP server listens on.")
	fs.String("grpc_health_addr", defaults["grpc_health_addr"].(string),
		"Address of the gRPC health service. Empty disables it.")
	fs.Bool("playground", true, "Serve the GraphQL playground at /.")
	fs.Bool("introspection", true, "Allow schema introspection queries.")
	fs.Int("query_cache_size", 1000, "Number of parsed queries kept in the LRU cache.")
	fs.Int("complexity_limit", 0, "Reject operations above this complexity. 0 disables the limit.")
	fs.String("log_level", "info", "Log level, one of [debug, info, warn, error].")
	fs.Bool("log_development", false, "Human readable development logging.")
	fs.String("store_backend", store.BackendMemory, "Tweet store backend, one of [memory, postgres].")
	fs.String("movie_api_base_url", client.DefaultBaseURL, "Base URL of the YTS API.")
	fs.Duration("movie_api_timeout", 10*time.Second, "Timeout of a single YTS request, 0 for none.")
	fs.String("kafka_broker", "", "Kafka broker for tweet events. Empty disables Kafka.")
	fs.String("kafka_topic", "tweet_events", "Kafka topic for tweet events.")
	fs.String("rabbitmq_queue", "tweet_feed", "RabbitMQ queue for feed jobs.")
	fs.String("relay_group_id", "tweet-feed-relay", "Kafka consumer group of the relay.")
}

// LoadEnvFile loads a .env file into the process environment. A missing
// file is not an error; variables already set are left alone.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(errors.Cause(err)) {
		return errors.Wrapf(err, "loading %s", path)
	}
	return nil
}

// Load reads the configuration from v, which should already have its
// flags bound. The "config" key names an optional config file.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "reading config")
		}
	}

	cfg := &Config{
		CommonConfig: CommonConfig{
			DB_USER:           v.GetString("db_user"),
			DB_PASSWORD:       v.GetString("db_password"),
			DB_NAME:           v.GetString("db_name"),
			DB_HOST:           v.GetString("db_host"),
			DB_PORT:           v.GetString("db_port"),
			KAFKA_TOPIC:       v.GetString("kafka_topic"),
			KAFKA_BROKER:      v.GetString("kafka_broker"),
			RABBITMQ_USER:     v.GetString("rabbitmq_user"),
			RABBITMQ_PASSWORD: v.GetString("rabbitmq_password"),
			RABBITMQ_HOST:     v.GetString("rabbitmq_host"),
			RABBITMQ_PORT:     v.GetString("rabbitmq_port"),
		},
		HTTPAddr:        v.GetString("http_addr"),
		GRPCHealthAddr:  v.GetString("grpc_health_addr"),
		Playground:      v.GetBool("playground"),
		Introspection:   v.GetBool("introspection"),
		QueryCacheSize:  v.GetInt("query_cache_size"),
		ComplexityLimit: v.GetInt("complexity_limit"),
		LogLevel:        v.GetString("log_level"),
		LogDevelopment:  v.GetBool("log_development"),
		StoreBackend:    strings.ToLower(v.GetString("store_backend")),
		MovieAPIBaseURL: strings.TrimRight(v.GetString("movie_api_base_url"), "/"),
		MovieAPITimeout: v.GetDuration("movie_api_timeout"),
		RabbitMQQueue:   v.GetString("rabbitmq_queue"),
		RelayGroupID:    v.GetString("relay_group_id"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values Load cannot default away.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case store.BackendMemory:
	case store.BackendPostgres:
		if c.DB_HOST == "" || c.DB_NAME == "" {
			return errors.Wrap(ErrInvalidConfig, "postgres backend needs DB_HOST and DB_NAME")
		}
	default:
		return errors.Wrapf(ErrInvalidConfig, "store_backend %q", c.StoreBackend)
	}
	if c.HTTPAddr == "" {
		return errors.Wrap(ErrInvalidConfig, "http_addr is empty")
	}
	if c.MovieAPITimeout < 0 {
		return errors.Wrapf(ErrInvalidConfig, "movie_api_timeout %s", c.MovieAPITimeout)
	}
	if c.QueryCacheSize < 0 || c.ComplexityLimit < 0 {
		return errors.Wrap(ErrInvalidConfig, "query_cache_size and complexity_limit must not be negative")
	}
	return nil
}

// GetDBURL formats the config into a PostgreSQL connection string
func (c *CommonConfig) GetDBURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", c.DB_USER, c.DB_PASSWORD, c.DB_HOST, c.DB_PORT, c.DB_NAME)
}

// GetRabbitMQURL formats the config into a RabbitMQ connection string.
// Host and port fall back to the standard local broker.
func (c *CommonConfig) GetRabbitMQURL() string {
	host := c.RABBITMQ_HOST
	if host == "" {
		host = "localhost"
	}
	port := c.RABBITMQ_PORT
	if port == "" {
		port = "5672"
	}

	return fmt.Sprintf("amqp://%s:%s@%s:%s/",
		c.RABBITMQ_USER, c.RABBITMQ_PASSWORD, host, port)
}

// RabbitMQEnabled reports whether a RabbitMQ host was configured.
func (c *CommonConfig) RabbitMQEnabled() bool {
	return c.RABBITMQ_HOST != ""
}
