package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"TrainBoard/internal/domain/models"
	drepo "TrainBoard/internal/domain/repository"
	xlogger "TrainBoard/pkg/logger"
)

const fetchFailedTitle = "Failed to fetch stock data. Please try again later."

// StockChart is the chart view. Every query change starts a new fetch at
// once; the previous fetch is cancelled and its result discarded, so the
// displayed series always belongs to the selected query.
type StockChart struct {
	source   drepo.StockDataSource
	notifier drepo.Notifier
	metrics  drepo.Metrics
	logger   *xlogger.Logger
	now      func() time.Time

	mu        sync.Mutex
	query     models.ChartQuery
	gen       uint64
	status    models.ChartStatus
	series    *models.PriceSeries
	chart     *models.ChartData
	failure   *models.Failure
	cancel    context.CancelFunc
	updatedAt time.Time

	emitMu    sync.Mutex
	listeners []func(models.ChartSnapshot)
}

// NewStockChart creates an unmounted chart holding the default query.
func NewStockChart(source drepo.StockDataSource, notifier drepo.Notifier, metrics drepo.Metrics, logger *xlogger.Logger) *StockChart {
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &StockChart{
		source:    source,
		notifier:  notifier,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
		query:     DefaultChartQuery(),
		status:    models.ChartLoading,
		updatedAt: time.Now(),
	}
}

// Subscribe registers fn for every state change. fn must not call back
// into the StockChart.
func (c *StockChart) Subscribe(fn func(models.ChartSnapshot)) {
	c.emitMu.Lock()
	defer c.emitMu.Unlock()
	c.listeners = append(c.listeners, fn)
}

func (c *StockChart) Snapshot() models.ChartSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Mount performs the initial fetch with the current query.
func (c *StockChart) Mount(ctx context.Context) *Task {
	return c.update(ctx, func(q models.ChartQuery) models.ChartQuery { return q })
}

func (c *StockChart) SetTicker(ctx context.Context, v string) *Task {
	return c.update(ctx, func(q models.ChartQuery) models.ChartQuery { return WithChartTicker(q, v) })
}

func (c *StockChart) SetPeriod(ctx context.Context, v string) *Task {
	return c.update(ctx, func(q models.ChartQuery) models.ChartQuery { return WithChartPeriod(q, v) })
}

// SetQuery replaces both parameters with a single fetch.
func (c *StockChart) SetQuery(ctx context.Context, q models.ChartQuery) *Task {
	return c.update(ctx, func(models.ChartQuery) models.ChartQuery { return q })
}

// Close cancels any outstanding fetch and discards its result.
func (c *StockChart) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
		c.gen++
	}
}

func (c *StockChart) update(ctx context.Context, reduce func(models.ChartQuery) models.ChartQuery) *Task {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.query = reduce(c.query)
	c.gen++
	task := newTask(c.gen)
	q := c.query
	c.series = nil
	c.chart = nil
	c.failure = nil
	c.setStatusLocked(models.ChartLoading)

	if err := ValidateChartQuery(q); err != nil {
		c.failLocked(err)
		c.unlockAndEmit()
		c.metrics.RecordFetch(string(models.FailureValidation))
		c.alert(ctx, q, err)
		task.finish(false)
		return task
	}

	fetchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c.cancel = cancel
	c.unlockAndEmit()

	go c.fetch(fetchCtx, cancel, task, q)
	return task
}

func (c *StockChart) fetch(ctx context.Context, cancel context.CancelFunc, task *Task, q models.ChartQuery) {
	defer cancel()

	log := c.logger.With(xlogger.String("ticker", q.Ticker), xlogger.String("period", q.Period), xlogger.Uint64("generation", task.Generation))
	start := time.Now()
	series, err := c.source.StockData(ctx, q)
	c.metrics.RecordLatency("stock_data", time.Since(start).Seconds())
	if err == nil && series.Ticker != "" && series.Ticker != q.Ticker {
		err = fmt.Errorf("%w: series for %q returned for %q", models.ErrDecode, series.Ticker, q.Ticker)
	}

	c.mu.Lock()
	if c.gen != task.Generation {
		c.mu.Unlock()
		c.metrics.RecordStaleResult("stock_chart")
		log.Debug("discarding result of superseded fetch", xlogger.Error(err))
		task.finish(true)
		return
	}
	c.cancel = nil
	if err != nil {
		c.failLocked(err)
	} else {
		series.Ticker = q.Ticker
		series.Period = q.Period
		c.series = series
		c.chart = BuildChartData(q.Ticker, series)
		c.setStatusLocked(models.ChartReady)
	}
	c.unlockAndEmit()

	if err != nil {
		kind := models.FailureTransport
		if errors.Is(err, models.ErrDecode) {
			kind = models.FailureDecode
		}
		c.metrics.RecordFetch(string(kind))
		log.Error("stock data fetch failed", xlogger.Error(err))
		c.alert(ctx, q, err)
	} else {
		c.metrics.RecordFetch("success")
		log.Debug("stock data fetched", xlogger.Int("points", series.Len()), xlogger.Duration("duration_ms", time.Since(start)))
	}
	task.finish(false)
}

// failLocked drops any series and records the failure.
func (c *StockChart) failLocked(err error) {
	c.series = nil
	c.chart = nil
	c.failure = models.FailureResult(err).Failure
	c.setStatusLocked(models.ChartError)
}

func (c *StockChart) alert(ctx context.Context, q models.ChartQuery, err error) {
	if c.notifier == nil {
		return
	}
	c.notifier.Notify(ctx, models.Notification{
		Level:   models.NotifyError,
		Source:  "stock_chart",
		Title:   fetchFailedTitle,
		Message: fmt.Sprintf("%s (%s): %v", q.Ticker, q.Period, err),
		At:      c.now(),
	})
}

func (c *StockChart) setStatusLocked(s models.ChartStatus) {
	c.status = s
	c.updatedAt = c.now()
}

func (c *StockChart) snapshotLocked() models.ChartSnapshot {
	return models.ChartSnapshot{
		Generation: c.gen,
		Query:      c.query,
		Status:     c.status,
		Series:     c.series,
		Chart:      c.chart,
		Error:      c.failure,
		UpdatedAt:  c.updatedAt,
	}
}

func (c *StockChart) unlockAndEmit() {
	s := c.snapshotLocked()
	c.emitMu.Lock()
	c.mu.Unlock()
	defer c.emitMu.Unlock()
	for _, fn := range c.listeners {
		fn(s)
	}
}
