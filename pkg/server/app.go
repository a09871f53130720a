package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"TrainBoard/internal/handler/ws"
	"TrainBoard/internal/usecase"
	"TrainBoard/pkg/config"
	xhttp "TrainBoard/pkg/http"
	applogger "TrainBoard/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	httpServer *xhttp.Server
	training   *usecase.TrainingWidget
	chart      *usecase.StockChart
	hub        *ws.Hub
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	training *usecase.TrainingWidget,
	chart *usecase.StockChart,
	hub *ws.Hub,
) *App {
	srv := xhttp.NewServer(handler, logger,
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORSOrigins(cfg.Server.CORSOrigins),
		xhttp.WithMetrics(metricsPath(cfg), cfg.Metrics.SlowThreshold),
		xhttp.WithRateLimit(cfg.Server.RateLimit.Capacity, cfg.Server.RateLimit.RefillPerSec),
	)
	return &App{
		cfg:        cfg,
		logger:     logger,
		httpServer: srv,
		training:   training,
		chart:      chart,
		hub:        hub,
	}
}

func metricsPath(cfg *config.Config) string {
	if !cfg.Metrics.Enabled {
		return ""
	}
	return cfg.Metrics.Path
}

// Server returns the HTTP server.
func (a *App) Server() *xhttp.Server { return a.httpServer }

// Run starts the application and blocks until interrupted or ctx ends.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting dashboard",
		applogger.String("env", a.cfg.Environment),
		applogger.String("training_backend", a.cfg.Backend.TrainingBaseURL),
		applogger.String("stock_backend", a.cfg.Backend.StockDataBaseURL),
	)

	if a.cfg.Dashboard.MountChart {
		a.chart.Mount(ctx)
	}

	errCh := a.httpServer.Start()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err, ok := <-errCh:
		if ok {
			runErr = err
		}
	}

	a.shutdown(context.WithoutCancel(ctx))
	return runErr
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) {
	a.logger.Info("shutting down...")

	if err := a.httpServer.Stop(ctx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	// Outstanding requests are cancelled; their results are discarded.
	a.training.Close()
	a.chart.Close()
	a.hub.Close()

	a.logger.Info("shutdown complete")
}
