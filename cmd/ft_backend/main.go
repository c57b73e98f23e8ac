package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	portsrepo "github.com/SscSPs/finance_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker_app/internal/core/services"
	"github.com/SscSPs/finance_tracker_app/internal/handlers"
	"github.com/SscSPs/finance_tracker_app/internal/middleware"
	"github.com/SscSPs/finance_tracker_app/internal/platform/config"
	"github.com/SscSPs/finance_tracker_app/internal/repositories/database/pgsql"
	pgsqlmigrations "github.com/SscSPs/finance_tracker_app/internal/repositories/database/pgsql/migrations"
	"github.com/SscSPs/finance_tracker_app/internal/repositories/database/sqlite"
	"github.com/SscSPs/finance_tracker_app/internal/utils"
	"github.com/SscSPs/finance_tracker_app/pkg/database"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Finance Tracker API
// @version 1.0
// @description Projects with embedded income/expense transactions, and piano service appointments.

// @host localhost:8080
// @BasePath /api
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	// Amounts are JSON numbers on the wire.
	decimal.MarshalJSONWithoutQuotes = true

	if err := run(cfg, logger); err != nil {
		logger.Error("Server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStorage, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStorage()

	svcContainer := services.NewServiceContainer(repos)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), middleware.CORS(cfg.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	var apiMiddleware []gin.HandlerFunc
	if cfg.RateLimit != "" {
		rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
		if err != nil {
			return err
		}
		apiMiddleware = append(apiMiddleware, middleware.RateLimit(rateLimiter))
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()
	apiMiddleware = append(apiMiddleware, middleware.PosthogMiddleware(posthogClient))

	handlers.RegisterRoutes(r, cfg, svcContainer, apiMiddleware...)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed to run: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server", slog.Duration("timeout", cfg.ShutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// openStorage connects the configured backend, applies migrations when enabled
// and returns the repositories with a function that releases the backend.
func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.StorageDriver {
	case config.DriverSQLite:
		if cfg.RunMigrations {
			applied, err := sqlite.Migrate(cfg.SQLitePath)
			if err != nil {
				return portsrepo.RepositoryProvider{}, nil, err
			}
			logMigrations(logger, applied)
		}
		store, err := sqlite.Open(cfg.SQLitePath, cfg.DBOperationTimeout)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("SQLite store opened", slog.String("path", cfg.SQLitePath))
		return store.Repositories(), func() {
			if err := store.Close(); err != nil {
				logger.Error("Error closing SQLite store", slog.String("error", err.Error()))
			}
		}, nil

	default:
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, database.PoolOptions{
			MaxConns:       cfg.DBMaxConns,
			ConnectTimeout: cfg.DBConnectTimeout,
			MaxElapsed:     cfg.DBConnectMaxWait,
			Logger:         logger,
		})
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		if cfg.RunMigrations {
			// Open a standard sql.DB for migrations, using the same pgx driver as the pool
			migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
			if err != nil {
				dbPool.Close()
				return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to open database connection for migrations: %w", err)
			}
			applied, err := pgsqlmigrations.Up(migrationDB)
			if err != nil {
				dbPool.Close()
				return portsrepo.RepositoryProvider{}, nil, err
			}
			logMigrations(logger, applied)
		}
		return pgsql.NewRepositoryProvider(dbPool, cfg.DBOperationTimeout), func() {
			database.ClosePgxPool(dbPool, logger)
		}, nil
	}
}

func logMigrations(logger *slog.Logger, applied bool) {
	if applied {
		logger.Info("Database migrations applied successfully.")
		return
	}
	logger.Info("No new migrations to apply.")
}
