// Package server wires the EventHub server: store, migrations, administrator
// bootstrap, services and the gRPC endpoint, and runs it until a signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dmitrijs2005/eventhub/internal/logging"
	"github.com/dmitrijs2005/eventhub/internal/server/config"
	"github.com/dmitrijs2005/eventhub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/eventhub/internal/server/services"
	"github.com/dmitrijs2005/eventhub/internal/telemetry"

	gs "github.com/dmitrijs2005/eventhub/internal/server/grpc"
)

const serviceName = "eventhub-server"

// Seams for tests.
var (
	openDB               = func(dsn string) (*sql.DB, error) { return sql.Open("pgx", dsn) }
	newRepositoryManager = repomanager.NewPostgresRepositoryManager
	setupTelemetry       = telemetry.Setup
)

var logOutput io.Writer = os.Stdout

type App struct {
	config *config.Config
	logger logging.Logger
}

func NewApp(c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &App{config: c, logger: logging.NewJSON(logOutput, c.LogLevel)}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// prepare opens the store, applies migrations and bootstraps the
// administrator. Nothing is served until it succeeds.
func (app *App) prepare(ctx context.Context) (*gs.GRPCServer, *sql.DB, error) {
	db, err := openDB(app.config.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}

	deps := services.Deps{
		DB:     db,
		Repos:  rm,
		Config: app.config,
		Logger: app.logger.With("module", "services"),
	}

	if err := services.NewBootstrapper(deps).InitializeAdmin(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("bootstrap: %w", err)
	}
	app.logger.Info(ctx, "Administrator ready", "email", app.config.AdminEmail)

	srv := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, gs.Services{
		Accounts: services.NewAccountService(deps),
		Auth:     services.NewAuthService(deps),
		Events:   services.NewEventService(deps),
		Media:    services.NewMediaService(deps),
	}, app.config.SecretKey)

	return srv, db, nil
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	shutdown, err := setupTelemetry(ctx, serviceName, app.config.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			app.logger.Warn(ctx, "telemetry shutdown", "error", err)
		}
	}()

	srv, db, err := app.prepare(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := srv.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}
