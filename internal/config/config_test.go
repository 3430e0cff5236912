package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/serroba/shorturl-service/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"DATABASE_URL", "PORT", "LOG_FORMAT", "LOG_LEVEL", "CODE_STRATEGY", "CODE_LENGTH",
	"AUTO_MIGRATE", "MONGO_DATABASE", "MONGO_COLLECTION", "ANALYTICS_REDIS_ADDR", "ANALYTICS_CONSUMER_GROUP",
}

// clearEnv unsets every config variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func noDotenv(t *testing.T) string {
	t.Helper()

	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadFiles(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATABASE_URL", "mongodb://localhost:27017")

		cfg, err := config.LoadFiles(noDotenv(t))

		require.NoError(t, err)
		assert.Equal(t, "mongodb://localhost:27017", cfg.DatabaseURL)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "base62", cfg.CodeStrategy)
		assert.True(t, cfg.AutoMigrate)
		assert.Equal(t, "url_shortener", cfg.MongoDatabase)
		assert.Equal(t, "urls", cfg.MongoCollection)
		assert.Empty(t, cfg.AnalyticsRedisAddr)
	})

	t.Run("reads explicit values", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/db")
		t.Setenv("PORT", "9090")
		t.Setenv("LOG_FORMAT", "console")
		t.Setenv("CODE_STRATEGY", "nanoid")
		t.Setenv("CODE_LENGTH", "10")
		t.Setenv("AUTO_MIGRATE", "false")
		t.Setenv("ANALYTICS_REDIS_ADDR", "localhost:6379")

		cfg, err := config.LoadFiles(noDotenv(t))

		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, "console", cfg.LogFormat)
		assert.Equal(t, "nanoid", cfg.CodeStrategy)
		assert.Equal(t, 10, cfg.CodeLength)
		assert.False(t, cfg.AutoMigrate)
		assert.Equal(t, "localhost:6379", cfg.AnalyticsRedisAddr)
	})

	t.Run("fails when database url is missing", func(t *testing.T) {
		clearEnv(t)

		cfg, err := config.LoadFiles(noDotenv(t))

		assert.Nil(t, cfg)
		assert.ErrorContains(t, err, "DATABASE_URL")
	})

	t.Run("fails when database url is empty", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATABASE_URL", "")

		cfg, err := config.LoadFiles(noDotenv(t))

		assert.Nil(t, cfg)
		assert.Error(t, err)
	})

	t.Run("fails when port is not a number", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATABASE_URL", "memory://")
		t.Setenv("PORT", "eighty")

		cfg, err := config.LoadFiles(noDotenv(t))

		assert.Nil(t, cfg)
		assert.Error(t, err)
	})

	t.Run("fails when port is not positive", func(t *testing.T) {
		for _, port := range []string{"0", "-1", "70000"} {
			clearEnv(t)
			t.Setenv("DATABASE_URL", "memory://")
			t.Setenv("PORT", port)

			cfg, err := config.LoadFiles(noDotenv(t))

			assert.Nil(t, cfg, port)
			assert.ErrorContains(t, err, "PORT", port)
		}
	})

	t.Run("fails on unknown code strategy", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATABASE_URL", "memory://")
		t.Setenv("CODE_STRATEGY", "sequential")

		cfg, err := config.LoadFiles(noDotenv(t))

		assert.Nil(t, cfg)
		assert.ErrorContains(t, err, "CODE_STRATEGY")
	})

	t.Run("fails on unknown log format", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATABASE_URL", "memory://")
		t.Setenv("LOG_FORMAT", "xml")

		cfg, err := config.LoadFiles(noDotenv(t))

		assert.Nil(t, cfg)
		assert.ErrorContains(t, err, "LOG_FORMAT")
	})

	t.Run("reads dotenv file without overriding the environment", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PORT", "7070")

		file := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(file, []byte("DATABASE_URL=redis://localhost:6379/0\nPORT=6060\n"), 0o600))

		cfg, err := config.LoadFiles(file)

		require.NoError(t, err)
		assert.Equal(t, "redis://localhost:6379/0", cfg.DatabaseURL)
		assert.Equal(t, 7070, cfg.Port)
	})
}

func TestLoadConsumerFiles(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ANALYTICS_REDIS_ADDR", "localhost:6379")

		cfg, err := config.LoadConsumerFiles(noDotenv(t))

		require.NoError(t, err)
		assert.Equal(t, "localhost:6379", cfg.AnalyticsRedisAddr)
		assert.Equal(t, "analytics", cfg.ConsumerGroup)
		assert.Equal(t, "json", cfg.LogFormat)
	})

	t.Run("does not need a database url", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ANALYTICS_REDIS_ADDR", "localhost:6379")
		t.Setenv("ANALYTICS_CONSUMER_GROUP", "reports")

		cfg, err := config.LoadConsumerFiles(noDotenv(t))

		require.NoError(t, err)
		assert.Equal(t, "reports", cfg.ConsumerGroup)
	})

	t.Run("fails without a redis address", func(t *testing.T) {
		clearEnv(t)

		cfg, err := config.LoadConsumerFiles(noDotenv(t))

		assert.Nil(t, cfg)
		assert.ErrorContains(t, err, "ANALYTICS_REDIS_ADDR")
	})

	t.Run("fails on unknown log format", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ANALYTICS_REDIS_ADDR", "localhost:6379")
		t.Setenv("LOG_FORMAT", "xml")

		cfg, err := config.LoadConsumerFiles(noDotenv(t))

		assert.Nil(t, cfg)
		assert.ErrorContains(t, err, "LOG_FORMAT")
	})
}
