// Package container wires the application with samber/do. Each Package
// function registers the providers for one concern; services implementing
// Shutdown() error are stopped by injector.Shutdown.
package container

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/shorturl-service/internal/analytics"
	analyticsstore "github.com/serroba/shorturl-service/internal/analytics/store"
	"github.com/serroba/shorturl-service/internal/config"
	"github.com/serroba/shorturl-service/internal/handlers"
	"github.com/serroba/shorturl-service/internal/health"
	"github.com/serroba/shorturl-service/internal/messaging"
	"github.com/serroba/shorturl-service/internal/metrics"
	"github.com/serroba/shorturl-service/internal/middleware"
	"github.com/serroba/shorturl-service/internal/shortener"
	"github.com/serroba/shorturl-service/internal/store"
	"go.uber.org/zap"
)

// AnalyticsRedis is the Redis client used by the analytics transport. It is
// separate from the store's connection.
type AnalyticsRedis struct {
	*redis.Client
}

// Shutdown closes the client.
func (r *AnalyticsRedis) Shutdown() error {
	return r.Close()
}

// LoggerPackage provides *zap.Logger built from config.Logging.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		logging := do.MustInvoke[config.Logging](i)

		return NewLogger(logging)
	})
}

// NewLogger builds a production (json) or development (console) logger.
func NewLogger(logging config.Logging) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(logging.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", logging.LogLevel, err)
	}

	var zapConfig zap.Config
	if logging.LogFormat == "console" {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	zapConfig.Level = level

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return logger, nil
}

// StorePackage opens the store selected by DATABASE_URL.
func StorePackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*store.Backend, error) {
		cfg := do.MustInvoke[*config.Config](i)
		logger := do.MustInvoke[*zap.Logger](i)

		backend, err := store.Open(context.Background(), store.Options{
			DatabaseURL:     cfg.DatabaseURL,
			AutoMigrate:     cfg.AutoMigrate,
			MongoDatabase:   cfg.MongoDatabase,
			MongoCollection: cfg.MongoCollection,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open store: %w", err)
		}

		return backend, nil
	})
}

// ServicePackage provides the shortener service with the configured code generator.
func ServicePackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*shortener.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		backend := do.MustInvoke[*store.Backend](i)

		generator, err := shortener.NewCodeGenerator(cfg.CodeStrategy, cfg.CodeLength)
		if err != nil {
			return nil, fmt.Errorf("failed to create code generator: %w", err)
		}

		return shortener.NewService(backend, generator), nil
	})
}

// MetricsPackage provides a started metrics reporter.
func MetricsPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*metrics.Reporter, error) {
		reporter := metrics.NewReporter()
		reporter.Start(context.Background())

		return reporter, nil
	})
}

// AnalyticsRedisPackage provides the Redis client for analytics streams. The
// connection is only made when something invokes it.
func AnalyticsRedisPackage(injector *do.Injector, addr string) {
	do.Provide(injector, func(_ *do.Injector) (*AnalyticsRedis, error) {
		client := redis.NewClient(&redis.Options{Addr: addr})

		if err := client.Ping(context.Background()).Err(); err != nil {
			_ = client.Close()

			return nil, fmt.Errorf("failed to connect to analytics redis at %s: %w", addr, err)
		}

		return &AnalyticsRedis{Client: client}, nil
	})
}

// PublisherGroupPackage provides the analytics publisher. Events go to Redis
// Streams when ANALYTICS_REDIS_ADDR is set and to an in-process channel
// drained by a logging consumer otherwise. The Redis variant needs
// AnalyticsRedisPackage.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		cfg := do.MustInvoke[*config.Config](i)
		logger := do.MustInvoke[*zap.Logger](i)

		if cfg.AnalyticsRedisAddr == "" {
			pubSub := do.MustInvoke[*InProcessAnalytics](i)

			return messaging.NewPublisherGroup(pubSub.publisher), nil
		}

		client, err := do.Invoke[*AnalyticsRedis](i)
		if err != nil {
			return nil, err
		}

		publisher, err := messaging.NewRedisStreamPublisher(client.Client, logger)
		if err != nil {
			return nil, err
		}

		logger.Info("analytics events go to redis streams", zap.String("addr", cfg.AnalyticsRedisAddr))

		return messaging.NewPublisherGroup(publisher), nil
	})

	do.Provide(injector, func(i *do.Injector) (*InProcessAnalytics, error) {
		logger := do.MustInvoke[*zap.Logger](i)

		pubSub := messaging.NewInProcessPubSub(logger)
		group := analytics.NewConsumerGroup(pubSub, analyticsstore.NewNoop(logger), logger)

		if err := group.Start(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to start analytics consumers: %w", err)
		}

		return &InProcessAnalytics{publisher: pubSub, group: group}, nil
	})
}

// InProcessAnalytics couples the in-process publisher with its consumers.
type InProcessAnalytics struct {
	publisher message.Publisher
	group     *messaging.ConsumerGroup
}

// Shutdown stops the consumers and closes the channel.
func (a *InProcessAnalytics) Shutdown() error {
	return a.group.Shutdown()
}

// HTTPPackage provides the router and the huma API with every route registered.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		router := do.MustInvoke[*chi.Mux](i)
		logger := do.MustInvoke[*zap.Logger](i)
		service := do.MustInvoke[*shortener.Service](i)
		backend := do.MustInvoke[*store.Backend](i)
		reporter := do.MustInvoke[*metrics.Reporter](i)
		publisherGroup := do.MustInvoke[*messaging.PublisherGroup](i)

		api := humachi.New(router, handlers.APIConfig("URL Shortener", "1.0.0"))
		api.UseMiddleware(middleware.RequestMeta(api))

		publisher := publisherGroup.Publisher()
		urlHandler := handlers.NewURLHandler(
			service,
			messaging.NewPublishFunc[analytics.URLCreatedEvent](publisher, analytics.TopicURLCreated),
			messaging.NewPublishFunc[analytics.URLAccessedEvent](publisher, analytics.TopicURLAccessed),
			logger,
		)

		handlers.RegisterRoutes(api, urlHandler)
		health.RegisterRoutes(api, health.NewHandler(backend, reporter))

		return api, nil
	})
}

// ConsumerGroupPackage provides the Redis Streams analytics consumer group
// used by the standalone consumer.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		cfg := do.MustInvoke[*config.ConsumerConfig](i)
		logger := do.MustInvoke[*zap.Logger](i)

		client, err := do.Invoke[*AnalyticsRedis](i)
		if err != nil {
			return nil, err
		}

		subscriber, err := messaging.NewRedisStreamSubscriber(client.Client, cfg.ConsumerGroup, logger)
		if err != nil {
			return nil, err
		}

		return analytics.NewConsumerGroup(subscriber, analyticsstore.NewNoop(logger), logger), nil
	})
}
