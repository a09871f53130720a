package stockapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"TrainBoard/internal/domain/models"
	"TrainBoard/internal/service/backend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, body string, status int) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/stock-data", r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	base, err := backend.NewHTTPServiceBase(srv.URL, 0)
	require.NoError(t, err)
	return New(base)
}

func TestStockDataDecodesSeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "MSFT", r.URL.Query().Get("ticker"))
		assert.Equal(t, "1y", r.URL.Query().Get("period"))
		_, _ = w.Write([]byte(`{"dates":["2023-01","2023-02"],"prices":[100,110]}`))
	}))
	defer srv.Close()
	base, err := backend.NewHTTPServiceBase(srv.URL, 0)
	require.NoError(t, err)

	s, err := New(base).StockData(context.Background(), models.ChartQuery{Ticker: "MSFT", Period: "1y"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2023-01", "2023-02"}, s.Dates)
	assert.Equal(t, []float64{100, 110}, s.Prices)
	assert.Equal(t, "MSFT", s.Ticker)
}

func TestStockDataEmptySeriesIsValid(t *testing.T) {
	s, err := newClient(t, `{"dates":[],"prices":[]}`, http.StatusOK).
		StockData(context.Background(), models.ChartQuery{Ticker: "ZZZZ", Period: "1mo"})
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestStockDataRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"length mismatch": `{"dates":["a","b"],"prices":[1]}`,
		"missing dates":   `{"prices":[1]}`,
		"missing prices":  `{"dates":["a"]}`,
		"null price":      `{"dates":["a","b"],"prices":[1,null]}`,
		"null date":       `{"dates":["a",null],"prices":[1,2]}`,
		"wrong types":     `{"dates":"a","prices":[1]}`,
		"not json":        `<html>`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := newClient(t, body, http.StatusOK).
				StockData(context.Background(), models.ChartQuery{Ticker: "AAPL", Period: "1mo"})
			require.Error(t, err)
			assert.True(t, errors.Is(err, models.ErrDecode), "got %v", err)
		})
	}
}

func TestStockDataServerErrorIsTransport(t *testing.T) {
	_, err := newClient(t, `oops`, http.StatusInternalServerError).
		StockData(context.Background(), models.ChartQuery{Ticker: "AAPL", Period: "1mo"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrTransport))
}
