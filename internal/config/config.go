// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/serroba/shorturl-service/internal/shortener"
)

// Logging selects the zap encoder and level.
type Logging struct {
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
	LogLevel  string `envconfig:"LOG_LEVEL"  default:"info"`
}

func (l Logging) validate() error {
	if l.LogFormat != "json" && l.LogFormat != "console" {
		return fmt.Errorf("invalid LOG_FORMAT %q (must be json or console)", l.LogFormat)
	}

	return nil
}

// Config holds all application configuration.
type Config struct {
	Logging

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	Port        int    `envconfig:"PORT"         default:"8080"`

	CodeStrategy string `envconfig:"CODE_STRATEGY" default:"base62"`
	CodeLength   int    `envconfig:"CODE_LENGTH"   default:"8"`

	AutoMigrate     bool   `envconfig:"AUTO_MIGRATE"     default:"true"`
	MongoDatabase   string `envconfig:"MONGO_DATABASE"   default:"url_shortener"`
	MongoCollection string `envconfig:"MONGO_COLLECTION" default:"urls"`

	// AnalyticsRedisAddr switches analytics events to Redis Streams when set.
	AnalyticsRedisAddr string `envconfig:"ANALYTICS_REDIS_ADDR"`
}

// Validate checks values envconfig cannot express.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL cannot be empty")
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}

	if err := c.validate(); err != nil {
		return err
	}

	switch c.CodeStrategy {
	case shortener.GeneratorBase62:
	case shortener.GeneratorNanoid:
		if c.CodeLength <= 0 {
			return fmt.Errorf("CODE_LENGTH must be positive, got %d", c.CodeLength)
		}
	default:
		return fmt.Errorf("invalid CODE_STRATEGY %q (must be base62 or nanoid)", c.CodeStrategy)
	}

	return nil
}

// Load reads an optional .env file from the working directory and then the
// environment. Variables already set in the environment win over the file.
func Load() (*Config, error) {
	return LoadFiles(".env")
}

// LoadFiles is Load with explicit dotenv files. Missing files are ignored.
func LoadFiles(files ...string) (*Config, error) {
	if err := loadDotenv(files); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// ConsumerConfig configures the standalone analytics consumer.
type ConsumerConfig struct {
	Logging

	AnalyticsRedisAddr string `envconfig:"ANALYTICS_REDIS_ADDR"     required:"true"`
	ConsumerGroup      string `envconfig:"ANALYTICS_CONSUMER_GROUP" default:"analytics"`
}

// LoadConsumer reads the consumer configuration the same way Load does.
func LoadConsumer() (*ConsumerConfig, error) {
	return LoadConsumerFiles(".env")
}

// LoadConsumerFiles is LoadConsumer with explicit dotenv files.
func LoadConsumerFiles(files ...string) (*ConsumerConfig, error) {
	if err := loadDotenv(files); err != nil {
		return nil, err
	}

	cfg := &ConsumerConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to load consumer config: %w", err)
	}

	if cfg.AnalyticsRedisAddr == "" {
		return nil, errors.New("invalid consumer config: ANALYTICS_REDIS_ADDR cannot be empty")
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid consumer config: %w", err)
	}

	return cfg, nil
}

func loadDotenv(files []string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	return nil
}
