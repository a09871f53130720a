package repository

import (
	"context"
	"encoding/json"

	"TrainBoard/internal/domain/models"
)

// TrainingBackend accepts a job parameters and returns whatever the backend replied.
type TrainingBackend interface {
	Train(ctx context.Context, req models.TrainingJobRequest) (json.RawMessage, error)
}

// StockDataSource returns the price history for a ticker over a period.
type StockDataSource interface {
	StockData(ctx context.Context, q models.ChartQuery) (*models.PriceSeries, error)
}

// Notifier surfaces obtrusive messages to the user.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification)
}

type Metrics interface {
	RecordDispatch(outcome string)
	RecordFetch(outcome string)
	RecordStaleResult(component string)
	RecordLatency(op string, seconds float64)
}
