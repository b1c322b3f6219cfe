package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"household/internal/backend"
	"household/internal/cli"
	apphttp "household/internal/http"
	"household/internal/log"
	"household/internal/metrics"
)

func main() {
	cfg, logger := cli.LoadAndValidateConfig("household")

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}

	m := metrics.New()
	factory := backend.NewFactory(logger, m)
	app, err := factory.CreateApp(context.Background(), backendCfg)
	if err != nil {
		logger.Error("Failed to initialize application", log.FieldError, err, "db_path", cfg.SQLiteDBPath)
		os.Exit(1)
	}

	if cfg.SeedDemo {
		g, err := app.Groups.EnsureDemo(context.Background())
		if err != nil {
			logger.Error("Failed to seed demo group", log.FieldError, err)
			_ = app.Cleanup()
			os.Exit(1)
		}
		logger.Info("Demo group ready", log.FieldGroupID, g.ID)
	}

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Deps{
		Groups:   app.Groups,
		Expenses: app.Expenses,
		Reports:  app.Reports,
		Store:    app.Repo,
		Metrics:  app.Metrics,
		Logger:   logger,
	}, apphttp.Options{
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		CORSAllowedOrigin:  cfg.CORSAllowedOrigin,
		EnableH2C:          cfg.EnableH2C,
	})

	ctx, done := cli.GracefulShutdown(logger, cfg.ShutdownTimeout, func(ctx context.Context) {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		if err := app.Cleanup(); err != nil {
			logger.Error("Cleanup error", log.FieldError, err)
		}
	})

	logger.Info("Starting household server",
		"port", cfg.Port,
		"amqp_enabled", cfg.AMQPEnabled(),
		"h2c", cfg.EnableH2C)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		_ = app.Cleanup()
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
