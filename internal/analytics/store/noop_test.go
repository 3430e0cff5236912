package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/serroba/shorturl-service/internal/analytics"
	"github.com/serroba/shorturl-service/internal/analytics/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewNoop(t *testing.T) {
	noop := store.NewNoop(zap.NewNop())

	assert.NotNil(t, noop)
}

func TestNoop_SaveURLCreated(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	noop := store.NewNoop(zap.New(core))

	event := &analytics.URLCreatedEvent{
		Code:        "abc123",
		OriginalURL: "https://example.com",
		CreatedAt:   time.Now(),
		ClientIP:    "127.0.0.1",
	}

	err := noop.SaveURLCreated(context.Background(), event)

	require.NoError(t, err)
	require.Equal(t, 1, logs.Len())

	entry := logs.All()[0]
	assert.Equal(t, "short url created", entry.Message)
	assert.Equal(t, "abc123", entry.ContextMap()["code"])
	assert.Equal(t, "https://example.com", entry.ContextMap()["originalUrl"])
}

func TestNoop_SaveURLAccessed(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	noop := store.NewNoop(zap.New(core))

	event := &analytics.URLAccessedEvent{
		Code:       "abc123",
		AccessedAt: time.Now(),
		ClientIP:   "127.0.0.1",
		UserAgent:  "TestAgent/1.0",
		Referrer:   "https://referrer.com",
	}

	err := noop.SaveURLAccessed(context.Background(), event)

	require.NoError(t, err)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "https://referrer.com", logs.All()[0].ContextMap()["referrer"])
}
