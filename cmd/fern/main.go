package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	_ "github.com/mattn/go-sqlite3"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"github.com/Ramsey-B/fern/config"
	"github.com/Ramsey-B/fern/internal/handlers"
	"github.com/Ramsey-B/fern/pkg/auth"
	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/events"
	"github.com/Ramsey-B/fern/pkg/health"
	"github.com/Ramsey-B/fern/pkg/importer"
	"github.com/Ramsey-B/fern/pkg/knowledgebase"
	"github.com/Ramsey-B/fern/pkg/middleware"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/repositories"
	"github.com/Ramsey-B/fern/pkg/startup"
	"github.com/Ramsey-B/fern/pkg/tracing"
	"github.com/Ramsey-B/fern/pkg/tracing/exporters"
)

const version = "1.0.0"

// dependency adapts a pair of start/stop funcs to the startup contract
type dependency struct {
	name      string
	dependsOn []string
	start     func(ctx context.Context) error
	stop      func(ctx context.Context) error
}

func (d *dependency) GetName() string     { return d.name }
func (d *dependency) DependsOn() []string { return d.dependsOn }
func (d *dependency) Start(ctx context.Context) error {
	if d.start == nil {
		return nil
	}
	return d.start(ctx)
}
func (d *dependency) Stop(ctx context.Context) error {
	if d.stop == nil {
		return nil
	}
	return d.stop(ctx)
}

func main() {
	// .env is optional; real deployments use the environment directly
	_ = godotenv.Load()

	var cfg config.Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to read config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(&cfg)
	logger.WithField("app", cfg.AppName).Info("Starting up")

	provider := sdktrace.NewTracerProvider(sdktrace.WithBatcher(&exporters.ConsoleExporter{}))
	otel.SetTracerProvider(provider)
	tracing.SetTracer(provider.Tracer(cfg.AppName))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		db          database.DB
		sqlDB       *sqlx.DB
		authService *auth.Service
		kb          *knowledgebase.Service
		checker     *health.Checker
		server      *http.Server
	)

	services := startup.NewStartup(logger, cfg.StartupMaxAttempts)

	services.AddDependency(&dependency{
		name: "database",
		start: func(ctx context.Context) error {
			var err error
			sqlDB, err = sqlx.Connect("sqlite3", cfg.DatabasePath)
			if err != nil {
				return fmt.Errorf("failed to open database %s: %w", cfg.DatabasePath, err)
			}
			// SQLite serializes writers; a single connection avoids
			// SQLITE_BUSY under concurrent imports
			sqlDB.SetMaxOpenConns(1)
			if _, err := sqlDB.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
				return err
			}

			migrations := database.NewMigrationService(logger, &database.MigrationConfig{
				MigrationFolderPath: cfg.DatabaseMigrationFolderPath,
				Version:             uint(cfg.DatabaseMigrationVersion),
				Force:               cfg.DatabaseMigrationForce,
				AutoRollback:        cfg.DatabaseMigrationAutoRollback,
			})
			if err := migrations.Migrate(cfg.DatabasePath, sqlDB); err != nil {
				return err
			}

			db = database.NewDatabaseInstance(sqlDB, logger)
			return nil
		},
		stop: func(ctx context.Context) error {
			if sqlDB != nil {
				return sqlDB.Close()
			}
			return nil
		},
	})

	services.AddDependency(&dependency{
		name:      "auth",
		dependsOn: []string{"database"},
		start: func(ctx context.Context) error {
			users := repositories.NewUserRepository(db, logger)
			issuer := auth.NewTokenIssuer(cfg.AuthSecret, cfg.AuthTokenTTL)
			authService = auth.NewService(users, issuer, logger)
			return authService.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword)
		},
	})

	services.AddDependency(&dependency{
		name: "knowledge-base",
		start: func(ctx context.Context) error {
			kb = knowledgebase.NewService(cfg.KnowledgeBasePath, logger)
			return kb.EnsureRoot()
		},
	})

	services.AddDependency(&dependency{
		name:      "http-server",
		dependsOn: []string{"database", "auth", "knowledge-base"},
		start: func(ctx context.Context) error {
			e := buildServer(&cfg, logger, db, authService, kb)

			checker = health.NewChecker(db, cfg.KnowledgeBasePath, version)
			checker.RegisterRoutes(e)

			server = &http.Server{
				Addr:           fmt.Sprintf(":%d", cfg.Port),
				Handler:        e,
				ReadTimeout:    time.Duration(cfg.HttpServerReadTimeoutSeconds) * time.Second,
				WriteTimeout:   time.Duration(cfg.HttpServerWriteTimeoutSeconds) * time.Second,
				IdleTimeout:    time.Duration(cfg.HttpServerIdleTimeoutSeconds) * time.Second,
				MaxHeaderBytes: cfg.MaxHeaderBytes,
			}

			go func() {
				logger.WithField("port", cfg.Port).Infof("Listening on port %d", cfg.Port)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.WithError(err).Error("HTTP server exited")
					cancel()
				}
			}()

			checker.SetReady(true)
			return nil
		},
		stop: func(ctx context.Context) error {
			if checker != nil {
				checker.SetReady(false)
			}
			if server != nil {
				return server.Shutdown(ctx)
			}
			return nil
		},
	})

	if err := services.Start(ctx); err != nil {
		logger.WithError(err).Error("Startup failed")
		os.Exit(1)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		logger.WithField("signal", sig.String()).Info("Shutting down")
	case <-ctx.Done():
		logger.Info("Shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := services.Stop(shutdownCtx); err != nil {
		logger.WithError(err).Error("Shutdown failed")
		os.Exit(1)
	}

	if err := provider.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Failed to shut down tracer provider")
	}
}

func newLogger(cfg *config.Config) ectologger.Logger {
	var zapLogger *zap.Logger
	var err error
	if cfg.PrettyLogs {
		zapLogger, err = zap.NewDevelopment()
	} else {
		zapLogger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	return zapadapter.NewZapEctoLogger(zapLogger, nil)
}

// buildServer wires the echo instance, middleware and route groups.
func buildServer(cfg *config.Config, logger ectologger.Logger, db database.DB, authService *auth.Service, kb *knowledgebase.Service) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.Error(logger)
	e.Use(middleware.Context())
	e.Use(middleware.Logger(logger))

	broker := events.NewBroker(logger)
	bulk := repositories.NewBulkRepository(db, logger)
	interfaces := repositories.NewInterfaceRepository(db, logger)
	imp := importer.NewImporter(bulk, interfaces, broker, logger, cfg.ImportBatchSize)

	public := e.Group("/api/v1")
	handlers.NewAuthHandler(authService).RegisterPublicRoutes(public)

	api := e.Group("/api/v1", middleware.Authentication(authService))
	handlers.NewAuthHandler(authService).RegisterRoutes(api)
	handlers.NewEmployeeHandler(
		repositories.NewSAPEmployeeRepository(db, logger),
		repositories.NewHilanEmployeeRepository(db, logger),
	).RegisterRoutes(api)
	handlers.NewAttendanceHandler(repositories.NewAttendanceRepository(db, logger)).RegisterRoutes(api)
	handlers.NewInterfaceHandler(interfaces).RegisterRoutes(api)
	handlers.NewTransactionHandler(repositories.NewTransactionRepository(db, logger)).RegisterRoutes(api)
	handlers.NewPermissionHandler(repositories.NewPermissionRepository(db, logger)).RegisterRoutes(api)
	handlers.NewImportHandler(imp, broker).RegisterRoutes(api)
	handlers.NewReportHandler(repositories.NewReportRepository(db, logger)).RegisterRoutes(api)
	handlers.NewKnowledgeBaseHandler(kb).RegisterRoutes(api)

	admin := api.Group("", middleware.RequireRole(models.RoleAdmin))
	handlers.NewUserHandler(repositories.NewUserRepository(db, logger)).RegisterRoutes(admin)

	return e
}
