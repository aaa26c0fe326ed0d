package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"AppEvents/internal/adapters/natsbridge"
	"AppEvents/internal/adapters/postgres"
	"AppEvents/internal/adapters/redisbridge"
	"AppEvents/internal/adapters/web"
	"AppEvents/internal/core/events"
	"AppEvents/internal/core/ports"
	"AppEvents/internal/lifecycle"
	"AppEvents/internal/observers"
	"AppEvents/internal/shared/config"
	"AppEvents/internal/shared/logger"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize Logger
	isDevMode := cfg.AppEnv == "dev"
	baseLogger := logger.New(isDevMode)
	baseLogger.Info().
		Str("app_env", cfg.AppEnv).
		Str("app_name", cfg.AppName).
		Str("http_addr", cfg.HTTP.Addr).
		Msg("Configuration loaded")

	// run owns every connection, so its defers all fire before the exit
	// code is decided.
	if err := run(cfg, &baseLogger); err != nil {
		baseLogger.Error().Err(err).Msg("Application exited with error")
		os.Exit(1)
	}
}

func run(cfg *config.Config, baseLogger *zerolog.Logger) error {
	// 3. Create the application environment and its dispatcher
	app := lifecycle.NewApplication(cfg.AppName, baseLogger)

	// 4. Optional event journal (Postgres)
	ctx := context.Background()
	var journal ports.EventJournal
	if cfg.DatabaseURL != "" {
		db, err := postgres.NewDB(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, baseLogger)
		if err != nil {
			return fmt.Errorf("initializing database: %w", err)
		}
		defer db.Close()
		journal = postgres.NewEventJournal(db, baseLogger)
	} else {
		baseLogger.Info().Msg("DATABASE_URL not set; event journal disabled")
	}

	// 5. Optional remote bridges
	var bridges []ports.EventBridge
	if cfg.NATSURL != "" {
		bridge, err := natsbridge.New(cfg.NATSURL, baseLogger)
		if err != nil {
			return fmt.Errorf("initializing NATS bridge: %w", err)
		}
		defer bridge.Close()
		bridges = append(bridges, bridge)
	}
	if cfg.RedisURL != "" {
		bridge, err := redisbridge.New(cfg.RedisURL, baseLogger)
		if err != nil {
			return fmt.Errorf("initializing Redis bridge: %w", err)
		}
		defer bridge.Close()
		bridges = append(bridges, bridge)
	}

	// 6. Attach observers to the lifecycle events
	recorder := observers.NewRecorder(journal, bridges, baseLogger)
	recorder.Attach(app.Events())

	// A plain logging subscriber, the classic consumer of these events.
	events.Subscribe(app.Events(), lifecycle.Started, func(a *lifecycle.Application) {
		a.Logger().Info().Msg("Application is ready to serve")
	})

	// 7. Build the lifecycle controller and its components
	ctrl := lifecycle.NewController(app, baseLogger)
	ctrl.Add(web.NewServer(&cfg.HTTP, journal, baseLogger))

	if err := ctrl.Start(ctx); err != nil {
		return fmt.Errorf("starting application: %w", err)
	}

	// 8. Block until shutdown is requested
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	baseLogger.Info().Str("signal", sig.String()).Msg("Shutdown requested")

	stopCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownGrace)
	defer cancel()
	return ctrl.Stop(stopCtx)
}
