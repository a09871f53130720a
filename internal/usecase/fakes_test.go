package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"TrainBoard/internal/domain/models"

	"github.com/stretchr/testify/require"
)

const waitTimeout = 2 * time.Second

type trainReply struct {
	payload json.RawMessage
	err     error
}

type trainCall struct {
	ctx   context.Context
	req   models.TrainingJobRequest
	reply chan trainReply
}

// blockingBackend hands every call to the test, which decides when and how it completes.
type blockingBackend struct {
	calls chan *trainCall
}

func newBlockingBackend() *blockingBackend {
	return &blockingBackend{calls: make(chan *trainCall, 8)}
}

func (b *blockingBackend) Train(ctx context.Context, req models.TrainingJobRequest) (json.RawMessage, error) {
	c := &trainCall{ctx: ctx, req: req, reply: make(chan trainReply, 1)}
	b.calls <- c
	r := <-c.reply
	return r.payload, r.err
}

func (b *blockingBackend) next(t *testing.T) *trainCall {
	t.Helper()
	select {
	case c := <-b.calls:
		return c
	case <-time.After(waitTimeout):
		t.Fatal("backend was not called")
		return nil
	}
}

type funcBackend func(ctx context.Context, req models.TrainingJobRequest) (json.RawMessage, error)

func (f funcBackend) Train(ctx context.Context, req models.TrainingJobRequest) (json.RawMessage, error) {
	return f(ctx, req)
}

type stockReply struct {
	series *models.PriceSeries
	err    error
}

type stockCall struct {
	ctx   context.Context
	query models.ChartQuery
	reply chan stockReply
}

type blockingSource struct {
	calls chan *stockCall
}

func newBlockingSource() *blockingSource {
	return &blockingSource{calls: make(chan *stockCall, 8)}
}

func (s *blockingSource) StockData(ctx context.Context, q models.ChartQuery) (*models.PriceSeries, error) {
	c := &stockCall{ctx: ctx, query: q, reply: make(chan stockReply, 1)}
	s.calls <- c
	r := <-c.reply
	return r.series, r.err
}

func (s *blockingSource) next(t *testing.T) *stockCall {
	t.Helper()
	select {
	case c := <-s.calls:
		return c
	case <-time.After(waitTimeout):
		t.Fatal("stock source was not called")
		return nil
	}
}

func (c *stockCall) ok(dates []string, prices []float64) {
	c.reply <- stockReply{series: &models.PriceSeries{Ticker: c.query.Ticker, Period: c.query.Period, Dates: dates, Prices: prices}}
}

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []models.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, m models.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, m)
}

func (n *recordingNotifier) all() []models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.Notification(nil), n.msgs...)
}

type countingMetrics struct {
	NoopMetrics
	mu       sync.Mutex
	dispatch map[string]int
	fetch    map[string]int
	stale    map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{dispatch: map[string]int{}, fetch: map[string]int{}, stale: map[string]int{}}
}

func (m *countingMetrics) RecordDispatch(o string) {
	m.mu.Lock()
	m.dispatch[o]++
	m.mu.Unlock()
}

func (m *countingMetrics) RecordFetch(o string) {
	m.mu.Lock()
	m.fetch[o]++
	m.mu.Unlock()
}

func (m *countingMetrics) RecordStaleResult(c string) {
	m.mu.Lock()
	m.stale[c]++
	m.mu.Unlock()
}

func (m *countingMetrics) count(kind, key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch kind {
	case "dispatch":
		return m.dispatch[key]
	case "fetch":
		return m.fetch[key]
	default:
		return m.stale[key]
	}
}

func waitTask(t *testing.T, task *Task) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()
	require.NoError(t, task.Wait(ctx))
}
