//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shorturl-service/internal/shortener"
	"github.com/serroba/shorturl-service/internal/store"
	"github.com/serroba/shorturl-service/internal/store/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

func startPostgres(t *testing.T) string {
	t.Helper()

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("shortener"),
		postgres.WithUsername("shortener"),
		postgres.WithPassword("shortener"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Skipf("PostgreSQL container not available: %v", err)
	}

	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	return connStr
}

func TestPostgresStoreIntegration(t *testing.T) {
	ctx := context.Background()
	databaseURL := startPostgres(t)

	m, err := migrations.New(databaseURL, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up())
	require.NoError(t, m.Close())

	pool, err := pgxpool.New(ctx, databaseURL)
	require.NoError(t, err)
	defer pool.Close()

	s := store.NewPostgresStore(pool)

	t.Run("save and get by code", func(t *testing.T) {
		shortURL := &shortener.ShortURL{
			Code:        shortener.Code("pgtestcode1"),
			OriginalURL: "https://example.com",
			CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
		}

		err := s.Save(ctx, shortURL)
		require.NoError(t, err)

		got, err := s.GetByCode(ctx, shortURL.Code)
		require.NoError(t, err)
		assert.Equal(t, shortURL.OriginalURL, got.OriginalURL)
		assert.Equal(t, shortURL.Code, got.Code)
		assert.True(t, shortURL.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("duplicate codes do not error and the oldest wins", func(t *testing.T) {
		code := shortener.Code("pgconflict1")
		now := time.Now().UTC()

		require.NoError(t, s.Save(ctx, &shortener.ShortURL{Code: code, OriginalURL: "https://old.com", CreatedAt: now}))
		require.NoError(t, s.Save(ctx, &shortener.ShortURL{Code: code, OriginalURL: "https://new.com", CreatedAt: now.Add(time.Second)}))

		got, err := s.GetByCode(ctx, code)
		require.NoError(t, err)
		assert.Equal(t, "https://old.com", got.OriginalURL)
	})

	t.Run("list returns saved records", func(t *testing.T) {
		all, err := s.List(ctx)
		require.NoError(t, err)

		codes := make([]shortener.Code, 0, len(all))
		for _, u := range all {
			codes = append(codes, u.Code)
		}

		assert.Contains(t, codes, shortener.Code("pgtestcode1"))
		assert.Contains(t, codes, shortener.Code("pgconflict1"))
	})

	t.Run("get non-existent returns ErrNotFound", func(t *testing.T) {
		got, err := s.GetByCode(ctx, "pgnonexistent")

		assert.Nil(t, got)
		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})

	t.Run("ping succeeds", func(t *testing.T) {
		assert.NoError(t, s.Ping(ctx))
	})

	t.Run("open runs migrations idempotently", func(t *testing.T) {
		backend, err := store.Open(ctx, store.Options{DatabaseURL: databaseURL, AutoMigrate: true}, zap.NewNop())
		require.NoError(t, err)
		defer func() { _ = backend.Shutdown() }()

		assert.Equal(t, "postgres", backend.Kind)
	})

	t.Run("down drops the schema", func(t *testing.T) {
		m, err := migrations.New(databaseURL, zap.NewNop())
		require.NoError(t, err)
		defer func() { _ = m.Close() }()

		require.NoError(t, m.Down())

		_, err = s.List(ctx)
		assert.Error(t, err)

		require.NoError(t, m.Up())
	})
}
