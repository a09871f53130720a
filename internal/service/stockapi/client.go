package stockapi

import (
	"context"
	"fmt"

	"TrainBoard/internal/domain/models"
	domrepo "TrainBoard/internal/domain/repository"
	"TrainBoard/internal/service/backend"
)

const stockDataPath = "/api/stock-data"

// Client talks to the stock-data backend.
type Client struct {
	base *backend.HTTPServiceBase
}

func New(base *backend.HTTPServiceBase) *Client { return &Client{base: base} }

// stockDataResponse uses pointers so missing arrays and null elements are
// distinguishable from empty arrays, empty strings and zeros.
type stockDataResponse struct {
	Dates  *[]*string  `json:"dates"`
	Prices *[]*float64 `json:"prices"`
}

// StockData fetches the series for q. A reply missing either array, holding
// a null element or with mismatched lengths is a decode failure.
func (c *Client) StockData(ctx context.Context, q models.ChartQuery) (*models.PriceSeries, error) {
	var resp stockDataResponse
	err := c.base.GetJSON(ctx, stockDataPath, map[string][]string{
		"ticker": {q.Ticker},
		"period": {q.Period},
	}, &resp)
	if err != nil {
		return nil, err
	}

	if resp.Dates == nil {
		return nil, fmt.Errorf("%w: response has no dates", models.ErrDecode)
	}
	if resp.Prices == nil {
		return nil, fmt.Errorf("%w: response has no prices", models.ErrDecode)
	}

	dates := make([]string, len(*resp.Dates))
	for i, d := range *resp.Dates {
		if d == nil {
			return nil, fmt.Errorf("%w: null date at index %d", models.ErrDecode, i)
		}
		dates[i] = *d
	}

	prices := make([]float64, len(*resp.Prices))
	for i, p := range *resp.Prices {
		if p == nil {
			return nil, fmt.Errorf("%w: null price at index %d", models.ErrDecode, i)
		}
		prices[i] = *p
	}

	series := &models.PriceSeries{
		Ticker: q.Ticker,
		Period: q.Period,
		Dates:  dates,
		Prices: prices,
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}
	return series, nil
}

var _ domrepo.StockDataSource = (*Client)(nil)
