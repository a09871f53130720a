package models

import (
	"fmt"
	"time"
)

// ChartQuery selects the series shown by the chart view.
type ChartQuery struct {
	Ticker string `json:"ticker" default:"AAPL"`
	Period string `json:"period" default:"1mo"`
}

// PriceSeries holds index-aligned dates and prices.
type PriceSeries struct {
	Ticker string    `json:"ticker"`
	Period string    `json:"period"`
	Dates  []string  `json:"dates"`
	Prices []float64 `json:"prices"`
}

// Len returns the number of points.
func (s *PriceSeries) Len() int { return len(s.Dates) }

// Validate checks the length invariant.
func (s *PriceSeries) Validate() error {
	if len(s.Dates) != len(s.Prices) {
		return fmt.Errorf("%w: %d dates but %d prices", ErrDecode, len(s.Dates), len(s.Prices))
	}
	return nil
}

// Dataset is one plotted line.
type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BorderColor     string    `json:"borderColor"`
	BackgroundColor string    `json:"backgroundColor"`
	Fill            bool      `json:"fill"`
}

// ChartData is the renderer-ready shape: x-axis categories plus datasets.
type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// ChartStatus is what the view should display.
type ChartStatus string

const (
	ChartLoading ChartStatus = "loading"
	ChartReady   ChartStatus = "ready"
	ChartError   ChartStatus = "error"
)

// ChartSnapshot is a copy of the chart view state at one instant.
type ChartSnapshot struct {
	Generation uint64       `json:"generation"`
	Query      ChartQuery   `json:"query"`
	Status     ChartStatus  `json:"status"`
	Series     *PriceSeries `json:"series,omitempty"`
	Chart      *ChartData   `json:"chart,omitempty"`
	Error      *Failure     `json:"error,omitempty"`
	UpdatedAt  time.Time    `json:"updated_at"`
}
