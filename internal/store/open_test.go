package store_test

import (
	"context"
	"testing"

	"github.com/serroba/shorturl-service/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpen(t *testing.T) {
	t.Run("opens memory backend", func(t *testing.T) {
		backend, err := store.Open(context.Background(), store.Options{DatabaseURL: "memory://"}, zap.NewNop())

		require.NoError(t, err)
		assert.Equal(t, "memory", backend.Kind)
		assert.NoError(t, backend.Ping(context.Background()))
		assert.NoError(t, backend.Shutdown())
	})

	t.Run("rejects unsupported scheme", func(t *testing.T) {
		backend, err := store.Open(context.Background(), store.Options{DatabaseURL: "mysql://localhost/db"}, zap.NewNop())

		assert.Nil(t, backend)
		assert.ErrorContains(t, err, "unsupported database url scheme")
	})

	t.Run("rejects url without scheme", func(t *testing.T) {
		backend, err := store.Open(context.Background(), store.Options{DatabaseURL: "localhost:27017"}, zap.NewNop())

		assert.Nil(t, backend)
		assert.Error(t, err)
	})

	t.Run("rejects malformed redis url", func(t *testing.T) {
		backend, err := store.Open(context.Background(), store.Options{DatabaseURL: "redis://localhost/notadb"}, zap.NewNop())

		assert.Nil(t, backend)
		assert.ErrorContains(t, err, "parse redis url")
	})
}
