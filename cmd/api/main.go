package main

import (
	"context"
	"database/sql"
	natsbroker "doc-intake/internal/adapters/eventbroker/nats"
	"doc-intake/internal/adapters/handlers/http/chi"
	"doc-intake/internal/adapters/handlers/http/chi/v1/dashboard"
	v1document "doc-intake/internal/adapters/handlers/http/chi/v1/document"
	"doc-intake/internal/adapters/repository/postgres"
	"doc-intake/internal/adapters/storage/minio"
	"doc-intake/internal/config"
	"doc-intake/internal/core/port"
	"doc-intake/internal/core/service/activity"
	"doc-intake/internal/core/service/document"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

func main() {

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

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
	minioAdapter, err := minio.NewAdapter(ctx, cfg.Minio, logger)
	if err != nil {
		logger.Error("failed to init minio", "error", err)
		os.Exit(1)
	}

	//events, optional
	var publisher port.EventPublisher
	if cfg.NATS.Enabled() {
		natsPublisher, err := natsbroker.NewNATSPublisher(ctx, cfg.NATS, "api", logger)
		if err != nil {
			logger.Error("failed to create NATS publisher", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := natsPublisher.Close(); err != nil {
				logger.Error("failed to close NATS publisher", "error", err)
			}
		}()
		publisher = natsPublisher
		logger.Info("NATS publisher initialized", "subject", cfg.NATS.Subject)
	}

	//repositories
	documentRepo := postgres.NewSqlDocumentRepository(db)
	activityRepo := postgres.NewSqlActivityRepository(db)

	documentService := document.NewDocumentService(minioAdapter, documentRepo, publisher, cfg.Document, logger)
	activityService := activity.NewActivityService(activityRepo, documentRepo, logger)

	//http
	documentHandler := v1document.NewDocumentHandlerV1(documentService, logger)
	dashboardHandler := dashboard.NewDashboardHandlerV1(activityService, cfg.Activity.RecentLimit, logger)

	router := chi.NewRouter(logger, documentHandler, dashboardHandler, cfg.Env.Env, cfg.Document.MaxUploadSize)
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
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

	// init activity retention task
	wg.Add(1)
	go func() {
		defer wg.Done()
		initPruneTask(ctx, activityService, cfg.Activity, logger)
	}()

	//wait for context cancel
	<-ctx.Done()
	logger.Info("gracefully shutting down app")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
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

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenCons)
	db.SetMaxIdleConns(cfg.MaxIdleCons)
	db.SetConnMaxLifetime(cfg.ConMaxLifeTime)

	return db, nil
}

func initPruneTask(ctx context.Context, service port.ActivityService, cfg config.ActivityConfig, logger *slog.Logger) {
	ticker := time.NewTicker(cfg.PruneEvery)
	defer ticker.Stop()

	logger.Info("activity prune task initialized", "interval", cfg.PruneEvery, "retention", cfg.Retention)

	for {
		select {
		case <-ticker.C:
			deleted, err := service.PruneBefore(ctx, time.Now().Add(-cfg.Retention))
			if err != nil {
				logger.Error("failed to prune activity", "error", err)
			} else {
				logger.Info("activity prune task completed", "deleted", deleted)
			}
		case <-ctx.Done():
			logger.Info("activity prune task stopped")
			return
		}
	}

}
