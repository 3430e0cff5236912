package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
	"github.com/samber/do"
	"github.com/serroba/shorturl-service/internal/config"
	"github.com/serroba/shorturl-service/internal/container"
	"github.com/serroba/shorturl-service/internal/store"
	"go.uber.org/zap"
)

func registerPackages(injector *do.Injector, cfg *config.Config) {
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, cfg.Logging)
	container.LoggerPackage(injector)
	container.StorePackage(injector)
	container.ServicePackage(injector)
	container.MetricsPackage(injector)
	container.AnalyticsRedisPackage(injector, cfg.AnalyticsRedisAddr)
	container.PublisherGroupPackage(injector)
	container.HTTPPackage(injector)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	injector := do.New()
	registerPackages(injector, cfg)

	logger := do.MustInvoke[*zap.Logger](injector)
	defer func() { _ = logger.Sync() }()

	if err := run(injector, cfg, logger); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
		os.Exit(1)
	}
}

func run(injector *do.Injector, cfg *config.Config, logger *zap.Logger) error {
	// Open the store before listening so a bad DATABASE_URL fails fast.
	if _, err := do.Invoke[*store.Backend](injector); err != nil {
		_ = injector.Shutdown()

		return err
	}

	router := do.MustInvoke[*chi.Mux](injector)

	// Invoke API to trigger route registration
	if _, err := do.Invoke[huma.API](injector); err != nil {
		_ = injector.Shutdown()

		return err
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)

	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}

		close(serverErr)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var runErr error

	select {
	case sig := <-sigChan:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		runErr = fmt.Errorf("server failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	if err := injector.Shutdown(); err != nil {
		logger.Error("service shutdown error", zap.Error(err))
	}

	logger.Info("shutdown complete")

	return runErr
}
