package usecase

import (
	"fmt"
	"strings"

	"TrainBoard/internal/domain/models"

	"github.com/creasty/defaults"
)

// DefaultChartQuery returns AAPL over 1mo.
func DefaultChartQuery() models.ChartQuery {
	var q models.ChartQuery
	if err := defaults.Set(&q); err != nil {
		panic(fmt.Sprintf("chart query defaults: %v", err))
	}
	return q
}

func WithChartTicker(q models.ChartQuery, v string) models.ChartQuery { q.Ticker = v; return q }
func WithChartPeriod(q models.ChartQuery, v string) models.ChartQuery { q.Period = v; return q }

// ValidateChartQuery rejects periods the chart view does not offer. The
// ticker is passed through uninterpreted.
func ValidateChartQuery(q models.ChartQuery) error {
	if !models.IsChartPeriod(q.Period) {
		return models.NewValidationError("period", "period must be one of: %s", joinPeriods(models.ChartPeriods))
	}
	return nil
}

const (
	chartBorderColor     = "rgba(75, 192, 192, 1)"
	chartBackgroundColor = "rgba(75, 192, 192, 0.2)"
)

// BuildChartData shapes a series for the line renderer: dates become x-axis
// categories in the given order, prices are copied unmodified.
func BuildChartData(ticker string, s *models.PriceSeries) *models.ChartData {
	labels := make([]string, len(s.Dates))
	copy(labels, s.Dates)
	data := make([]float64, len(s.Prices))
	copy(data, s.Prices)
	return &models.ChartData{
		Labels: labels,
		Datasets: []models.Dataset{{
			Label:           fmt.Sprintf("%s Stock Prices", ticker),
			Data:            data,
			BorderColor:     chartBorderColor,
			BackgroundColor: chartBackgroundColor,
			Fill:            true,
		}},
	}
}

func joinPeriods(ps []models.Period) string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
