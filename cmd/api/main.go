package main

import (
	"context"
	"database/sql"
	"errors"
	"filepress/internal/adapters/auth"
	"filepress/internal/adapters/cache/badger"
	"filepress/internal/adapters/eventbroker"
	"filepress/internal/adapters/eventbroker/nats"
	"filepress/internal/adapters/handlers/http/chi"
	file2 "filepress/internal/adapters/handlers/http/chi/v1/file"
	"filepress/internal/adapters/repository/postgres"
	"filepress/internal/adapters/storage/filesystem"
	"filepress/internal/adapters/storage/minio"
	"filepress/internal/config"
	"filepress/internal/core/port"
	"filepress/internal/core/service/cleanup"
	"filepress/internal/core/service/file"
	"filepress/internal/core/service/token"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/lib/pq"
)

func main() {

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Log, os.Stdout)
	slog.SetDefault(logger)

	db, err := initDB(cfg.Database)
	if err != nil {
		logger.Error("failed to init database", "error", err)
		os.Exit(1)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}(db)
	logger.Info("db connection established")

	//storage
	blobs, err := initStorage(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to init blob storage", "error", err, "backend", cfg.Storage.Backend)
		os.Exit(1)
	}

	//token cache
	tokenCache, err := badger.NewCache(cfg.Token, logger)
	if err != nil {
		logger.Error("failed to init token cache", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := tokenCache.Close(); err != nil {
			logger.Error("failed to close token cache", "error", err)
		}
	}()

	//auth
	authenticator, err := auth.NewAuthenticator(ctx, cfg.Auth, logger)
	if err != nil {
		logger.Error("failed to init authenticator", "error", err)
		os.Exit(1)
	}

	//events
	var publisher port.EventPublisher = eventbroker.NewNoopPublisher(logger)
	if cfg.NATS.URL != "" {
		natsPublisher, err := nats.NewNATSPublisher(ctx, cfg.NATS, logger)
		if err != nil {
			logger.Error("failed to init nats publisher", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := natsPublisher.Close(); err != nil {
				logger.Error("failed to close nats publisher", "error", err)
			}
		}()
		publisher = natsPublisher
	}

	//services
	unitOfWork := postgres.NewUnitOfWork(db)
	tokenBroker := token.NewTokenBroker(tokenCache, cfg.Token, logger)
	fileService := file.NewFileService(unitOfWork, blobs, tokenBroker, authenticator, publisher, logger)
	cleanupService := cleanup.NewCleanupService(unitOfWork, blobs, logger)

	//http
	fileHandler := file2.NewFileHandlerV1(fileService, logger)

	router := chi.NewRouter(logger, cfg.Server, authenticator.Middleware(), fileHandler)
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
		servErr := server.ListenAndServe()
		if servErr != nil && !errors.Is(servErr, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", servErr)
			stop()
		}
	}()

	// expired tokens are evicted by badger, the value log still needs collecting
	wg.Add(1)
	go func() {
		defer wg.Done()
		tokenCache.RunGC(ctx, 5*time.Minute)
	}()

	// init maintenance task
	wg.Add(1)
	go func() {
		defer wg.Done()
		initMaintenanceTask(ctx, cleanupService, cfg.Maintenance, logger)
	}()

	//wait for context cancel
	<-ctx.Done()
	logger.Info("gracefully shutting down app")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", "error", err)
	} else {
		logger.Info("server gracefully shutdown complete")
	}

	wg.Wait()
	logger.Info("app shutdown complete")

}

func initDB(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenCons)
	db.SetMaxIdleConns(cfg.MaxIdleCons)
	db.SetConnMaxLifetime(cfg.ConMaxLifeTime)

	return db, nil
}

func initStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (port.FileBlobStorage, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendMinio:
		return minio.NewAdapter(ctx, cfg.Minio, logger)
	default:
		return filesystem.NewStore(cfg.Storage, logger)
	}
}

func initMaintenanceTask(ctx context.Context, service port.CleanupService, cfg config.MaintenanceConfig, logger *slog.Logger) {
	ticker := time.NewTicker(cfg.Every)
	defer ticker.Stop()

	logger.Info("maintenance task initialized", "interval", cfg.Every, "trash_retention", cfg.TrashRetention)

	for {
		select {
		case <-ticker.C:
			logger.Info("maintenance task starting")
			purged, err := service.PurgeTrashed(ctx, time.Now().Add(-cfg.TrashRetention))
			if err != nil {
				logger.Error("failed to purge trashed records", "error", err)
			}
			orphans, err := service.ReportOrphans(ctx)
			if err != nil {
				logger.Error("failed to report orphaned records", "error", err)
			}
			logger.Info("maintenance task completed", "purged", purged, "orphans", len(orphans))
		case <-ctx.Done():
			logger.Info("maintenance task stopped")
			return
		}
	}

}
