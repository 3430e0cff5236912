package store

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/serroba/shorturl-service/internal/shortener"
	"github.com/serroba/shorturl-service/internal/store/migrations"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Store is a Repository that can report its connectivity.
type Store interface {
	shortener.Repository
	Ping(ctx context.Context) error
}

// Options selects and configures the backend opened by Open.
type Options struct {
	// DatabaseURL scheme picks the backend: postgres, mongodb, redis or memory.
	DatabaseURL     string
	AutoMigrate     bool
	MongoDatabase   string
	MongoCollection string
}

// Backend is an opened Store together with the connection it owns.
type Backend struct {
	Store
	Kind  string
	close func() error
}

// Shutdown releases the underlying connection.
func (b *Backend) Shutdown() error {
	if b.close == nil {
		return nil
	}

	return b.close()
}

// Open connects to the store named by opts.DatabaseURL and verifies the
// connection with a ping.
func Open(ctx context.Context, opts Options, logger *zap.Logger) (*Backend, error) {
	u, err := url.Parse(opts.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	var backend *Backend

	switch u.Scheme {
	case "postgres", "postgresql":
		backend, err = openPostgres(ctx, opts, logger)
	case "mongodb", "mongodb+srv":
		backend, err = openMongo(ctx, opts)
	case "redis", "rediss":
		backend, err = openRedis(ctx, opts)
	case "memory":
		backend = &Backend{Store: NewMemoryStore(), Kind: "memory"}
	default:
		return nil, fmt.Errorf("unsupported database url scheme %q", u.Scheme)
	}

	if err != nil {
		return nil, err
	}

	logger.Info("store connected", zap.String("backend", backend.Kind), zap.String("host", u.Host))

	return backend, nil
}

func openPostgres(ctx context.Context, opts Options, logger *zap.Logger) (*Backend, error) {
	pool, err := pgxpool.New(ctx, opts.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()

		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if opts.AutoMigrate {
		if err := migrate(opts.DatabaseURL, logger); err != nil {
			pool.Close()

			return nil, err
		}
	}

	return &Backend{
		Store: NewPostgresStore(pool),
		Kind:  "postgres",
		close: func() error {
			pool.Close()

			return nil
		},
	}, nil
}

func migrate(databaseURL string, logger *zap.Logger) error {
	m, err := migrations.New(databaseURL, logger)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()

	return m.Up()
}

func openMongo(ctx context.Context, opts Options) (*Backend, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.DatabaseURL))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	disconnect := func() error {
		return client.Disconnect(context.Background())
	}

	s := NewMongoStore(client, opts.MongoDatabase, opts.MongoCollection)

	if err := s.Ping(ctx); err != nil {
		_ = disconnect()

		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	if err := s.EnsureIndexes(ctx); err != nil {
		_ = disconnect()

		return nil, fmt.Errorf("create mongodb indexes: %w", err)
	}

	return &Backend{Store: s, Kind: "mongodb", close: disconnect}, nil
}

func openRedis(ctx context.Context, opts Options) (*Backend, error) {
	redisOpts, err := redis.ParseURL(opts.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(redisOpts)
	s := NewRedisStore(client)

	if err := s.Ping(ctx); err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Backend{Store: s, Kind: "redis", close: client.Close}, nil
}
