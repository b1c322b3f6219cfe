package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"household/internal/amqp"
	"household/internal/backend"
	"household/internal/cli"
	"household/internal/log"
	"household/internal/metrics"
	"household/internal/worker"
)

func main() {
	cfg, logger := cli.LoadAndValidateConfig("household-worker")

	if !cfg.AMQPEnabled() {
		logger.Error("AMQP_URL is required to run the mirror worker")
		os.Exit(1)
	}

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}
	// The worker consumes events rather than publishing them.
	backendCfg.AMQPURL = ""

	m := metrics.New()
	factory := backend.NewFactory(logger, m)

	startCtx := context.Background()
	app, err := factory.CreateApp(startCtx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize application", log.FieldError, err, "db_path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer app.Cleanup()

	mirror, err := factory.CreateMirror(startCtx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize mirror", log.FieldError, err)
		os.Exit(1)
	}

	consumer, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer consumer.Close()

	mirrorWorker := worker.NewMirrorWorker(app.Repo, mirror.Mirror, m)

	var metricsSrv *http.Server
	if cfg.WorkerMetricsPort != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		metricsSrv = &http.Server{
			Addr:              ":" + cfg.WorkerMetricsPort,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	ctx, done := cli.GracefulShutdown(logger, cfg.ShutdownTimeout, nil)

	logger.Info("Starting household-worker",
		"mirror", mirror.Type,
		"queue", cfg.AMQPQueue,
		"resync", cfg.ResyncOnStart)

	g, gctx := errgroup.WithContext(ctx)

	if cfg.ResyncOnStart {
		if err := mirrorWorker.Resync(gctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Startup resync failed", log.FieldError, err)
		}
	}

	g.Go(func() error {
		err := consumer.ConsumeExpenseEvents(gctx, mirrorWorker.HandleEvent)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	if metricsSrv != nil {
		g.Go(func() error {
			logger.Info("Serving worker metrics", "port", cfg.WorkerMetricsPort)
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			return metricsSrv.Shutdown(shutdownCtx)
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("Worker stopped with error", log.FieldError, err)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker stopped gracefully")
}
