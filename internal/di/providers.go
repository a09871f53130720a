package di

import (
	"fmt"

	"TrainBoard/internal/domain/models"
	"TrainBoard/internal/domain/repository"
	"TrainBoard/internal/handler/api"
	"TrainBoard/internal/handler/ws"
	"TrainBoard/internal/service/backend"
	"TrainBoard/internal/service/stockapi"
	"TrainBoard/internal/service/trainapi"
	"TrainBoard/internal/usecase"
	"TrainBoard/pkg/config"
	xhttp "TrainBoard/pkg/http"
	applogger "TrainBoard/pkg/logger"
	"TrainBoard/pkg/metrics"
	"TrainBoard/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideTrainingClient creates the training backend client.
func ProvideTrainingClient(cfg *config.Config) (*trainapi.Client, error) {
	base, err := backend.NewHTTPServiceBase(cfg.Backend.TrainingBaseURL, cfg.Backend.Timeout)
	if err != nil {
		return nil, fmt.Errorf("training backend: %w", err)
	}
	return trainapi.New(base), nil
}

// ProvideStockClient creates the stock-data backend client.
func ProvideStockClient(cfg *config.Config) (*stockapi.Client, error) {
	base, err := backend.NewHTTPServiceBase(cfg.Backend.StockDataBaseURL, cfg.Backend.Timeout)
	if err != nil {
		return nil, fmt.Errorf("stock data backend: %w", err)
	}
	return stockapi.New(base), nil
}

// ProvideHub creates the websocket hub.
func ProvideHub(l *applogger.Logger) *ws.Hub {
	return ws.NewHub(l, nil)
}

// ProvideNotifier routes alerts to connected dashboards.
func ProvideNotifier(hub *ws.Hub, l *applogger.Logger) repository.Notifier {
	return ws.NewNotifier(hub, l)
}

// ProvideTrainingWidget creates the form state and dispatcher of the training view.
func ProvideTrainingWidget(b repository.TrainingBackend, m repository.Metrics, l *applogger.Logger) *usecase.TrainingWidget {
	d := usecase.NewDispatcher(b, m, l.With(applogger.String("component", "dispatcher")))
	return usecase.NewTrainingWidget(usecase.NewFormState(), d)
}

// ProvideStockChart creates the chart view.
func ProvideStockChart(src repository.StockDataSource, n repository.Notifier, m repository.Metrics, l *applogger.Logger) *usecase.StockChart {
	return usecase.NewStockChart(src, n, m, l.With(applogger.String("component", "stock_chart")))
}

// ProvideDashboardHandler creates the HTTP handler and streams both views
// through the hub.
func ProvideDashboardHandler(
	l *applogger.Logger,
	training *usecase.TrainingWidget,
	chart *usecase.StockChart,
	hub *ws.Hub,
) xhttp.Handler {
	training.Subscribe(func(s models.TrainingSnapshot) {
		hub.Broadcast(ws.Event{Type: ws.EventTrain, Data: s})
	})
	chart.Subscribe(func(s models.ChartSnapshot) {
		hub.Broadcast(ws.Event{Type: ws.EventChart, Data: s})
	})
	hub.SetInitial(func() []ws.Event {
		return []ws.Event{
			{Type: ws.EventTrain, Data: training.Snapshot()},
			{Type: ws.EventChart, Data: chart.Snapshot()},
		}
	})
	return api.NewDashboardEchoHandler(l, training, chart, hub)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	h xhttp.Handler,
	training *usecase.TrainingWidget,
	chart *usecase.StockChart,
	hub *ws.Hub,
) *server.App {
	return server.New(cfg, l, h, training, chart, hub)
}
