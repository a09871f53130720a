//go:build wireinject
// +build wireinject

package di

import (
	"TrainBoard/internal/domain/repository"
	"TrainBoard/internal/service/stockapi"
	"TrainBoard/internal/service/trainapi"
	"TrainBoard/pkg/config"
	"TrainBoard/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Backends
		ProvideTrainingClient,
		ProvideStockClient,
		wire.Bind(new(repository.TrainingBackend), new(*trainapi.Client)),
		wire.Bind(new(repository.StockDataSource), new(*stockapi.Client)),

		// Live push
		ProvideHub,
		ProvideNotifier,

		// Views
		ProvideTrainingWidget,
		ProvideStockChart,
		ProvideDashboardHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
