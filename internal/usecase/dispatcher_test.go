package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"TrainBoard/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stageRecorder struct {
	mu     sync.Mutex
	stages []models.Stage
}

func (r *stageRecorder) record(st models.DispatchState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages = append(r.stages, st.Stage)
}

func (r *stageRecorder) get() []models.Stage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Stage(nil), r.stages...)
}

func TestDispatcherStartsIdle(t *testing.T) {
	d := NewDispatcher(funcBackend(nil), nil, nil)
	st := d.State()
	assert.Equal(t, models.StageIdle, st.Stage)
	assert.Equal(t, 0, st.Progress)
	assert.False(t, st.ProgressVisible)
	assert.Nil(t, st.Result)
}

func TestSubmitSuccessScenario(t *testing.T) {
	var got models.TrainingJobRequest
	var calls int32
	backend := funcBackend(func(_ context.Context, req models.TrainingJobRequest) (json.RawMessage, error) {
		atomic.AddInt32(&calls, 1)
		got = req
		return json.RawMessage(`{"status":"ok"}`), nil
	})
	metrics := newCountingMetrics()
	d := NewDispatcher(backend, metrics, nil)
	rec := &stageRecorder{}
	d.Subscribe(rec.record)

	sub := d.Submit(context.Background(), models.TrainForm{Ticker: "AAPL", Period: "6mo", Epochs: "10"})
	waitTask(t, sub.Task)

	assert.False(t, sub.Superseded())
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	assert.Equal(t, models.TrainingJobRequest{Ticker: "AAPL", Period: "6mo", Epochs: 10}, got)

	st := d.State()
	assert.Equal(t, sub.ID, st.SubmissionID)
	assert.Equal(t, models.StageSucceeded, st.Stage)
	assert.Equal(t, 100, st.Progress)
	require.True(t, st.Result.Succeeded())
	assert.JSONEq(t, `{"status":"ok"}`, string(st.Result.Payload))
	assert.Equal(t, []models.Stage{models.StageSubmitting, models.StageAwaitingResponse, models.StageSucceeded}, rec.get())
	assert.Equal(t, 1, metrics.count("dispatch", "success"))
}

func TestSubmitEmptyEpochsIsRejectedBeforeSending(t *testing.T) {
	var calls int32
	backend := funcBackend(func(context.Context, models.TrainingJobRequest) (json.RawMessage, error) {
		atomic.AddInt32(&calls, 1)
		return json.RawMessage(`{}`), nil
	})
	metrics := newCountingMetrics()
	d := NewDispatcher(backend, metrics, nil)
	rec := &stageRecorder{}
	d.Subscribe(rec.record)

	sub := d.Submit(context.Background(), models.TrainForm{Ticker: "AAPL", Period: "6mo", Epochs: ""})

	select {
	case <-sub.Done():
	default:
		t.Fatal("validation failure must settle synchronously")
	}
	assert.EqualValues(t, 0, atomic.LoadInt32(&calls))

	st := d.State()
	assert.Equal(t, models.StageFailed, st.Stage)
	assert.Equal(t, 0, st.Progress)
	assert.Nil(t, st.Request)
	require.NotNil(t, st.Result.Failure)
	assert.Equal(t, models.FailureValidation, st.Result.Failure.Kind)
	assert.Equal(t, "epochs", st.Result.Failure.Fields[0].Field)
	assert.Equal(t, []models.Stage{models.StageSubmitting, models.StageFailed}, rec.get())
	assert.Equal(t, 1, metrics.count("dispatch", "validation"))
}

func TestSubmitTransportFailure(t *testing.T) {
	backend := funcBackend(func(context.Context, models.TrainingJobRequest) (json.RawMessage, error) {
		return nil, fmt.Errorf("%w: dial tcp: connection refused", models.ErrTransport)
	})
	d := NewDispatcher(backend, nil, nil)

	sub := d.Submit(context.Background(), DefaultTrainForm())
	waitTask(t, sub.Task)

	st := d.State()
	assert.Equal(t, models.StageFailed, st.Stage)
	assert.Equal(t, 0, st.Progress)
	require.NotNil(t, st.Result.Failure)
	assert.Equal(t, models.FailureTransport, st.Result.Failure.Kind)
	assert.Equal(t, models.GenericFailureMessage, st.Result.Failure.Message)
	assert.Contains(t, st.Result.Failure.Detail, "connection refused")
	assert.Nil(t, st.Result.Payload)
}

func TestSubmitDecodeFailure(t *testing.T) {
	backend := funcBackend(func(context.Context, models.TrainingJobRequest) (json.RawMessage, error) {
		return nil, fmt.Errorf("%w: invalid character", models.ErrDecode)
	})
	d := NewDispatcher(backend, nil, nil)

	sub := d.Submit(context.Background(), DefaultTrainForm())
	waitTask(t, sub.Task)

	st := d.State()
	assert.Equal(t, models.StageFailed, st.Stage)
	assert.Equal(t, models.FailureDecode, st.Result.Failure.Kind)
}

func TestResubmitAfterFailureStartsOver(t *testing.T) {
	fail := true
	backend := funcBackend(func(context.Context, models.TrainingJobRequest) (json.RawMessage, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return json.RawMessage(`{"status":"ok"}`), nil
	})
	d := NewDispatcher(backend, nil, nil)

	waitTask(t, d.Submit(context.Background(), DefaultTrainForm()).Task)
	require.Equal(t, models.StageFailed, d.State().Stage)

	fail = false
	rec := &stageRecorder{}
	d.Subscribe(rec.record)
	waitTask(t, d.Submit(context.Background(), DefaultTrainForm()).Task)

	assert.Equal(t, models.StageSucceeded, d.State().Stage)
	assert.Equal(t, []models.Stage{models.StageSubmitting, models.StageAwaitingResponse, models.StageSucceeded}, rec.get())
}

func TestStaleSubmissionResultIsDiscarded(t *testing.T) {
	for _, lateFirst := range []bool{true, false} {
		t.Run(fmt.Sprintf("first_completes_last=%v", lateFirst), func(t *testing.T) {
			backend := newBlockingBackend()
			metrics := newCountingMetrics()
			d := NewDispatcher(backend, metrics, nil)

			first := d.Submit(context.Background(), models.TrainForm{Ticker: "AAPL", Period: "6mo", Epochs: "10"})
			c1 := backend.next(t)
			second := d.Submit(context.Background(), models.TrainForm{Ticker: "MSFT", Period: "1y", Epochs: "5"})
			c2 := backend.next(t)

			assert.Error(t, c1.ctx.Err(), "superseded call is cancelled")
			assert.NoError(t, c2.ctx.Err())

			if lateFirst {
				c2.reply <- trainReply{payload: json.RawMessage(`{"ticker":"MSFT"}`)}
				waitTask(t, second.Task)
				c1.reply <- trainReply{payload: json.RawMessage(`{"ticker":"AAPL"}`)}
				waitTask(t, first.Task)
			} else {
				c1.reply <- trainReply{payload: json.RawMessage(`{"ticker":"AAPL"}`)}
				waitTask(t, first.Task)
				assert.Equal(t, models.StageAwaitingResponse, d.State().Stage)
				c2.reply <- trainReply{payload: json.RawMessage(`{"ticker":"MSFT"}`)}
				waitTask(t, second.Task)
			}

			assert.True(t, first.Superseded())
			assert.False(t, second.Superseded())

			st := d.State()
			assert.Equal(t, second.ID, st.SubmissionID)
			assert.Equal(t, models.StageSucceeded, st.Stage)
			assert.Equal(t, "MSFT", st.Request.Ticker)
			assert.JSONEq(t, `{"ticker":"MSFT"}`, string(st.Result.Payload))
			assert.Equal(t, 1, metrics.count("stale", "dispatcher"))
		})
	}
}

func TestCloseDiscardsOutstandingSubmission(t *testing.T) {
	backend := newBlockingBackend()
	d := NewDispatcher(backend, nil, nil)

	sub := d.Submit(context.Background(), DefaultTrainForm())
	call := backend.next(t)
	d.Close()
	assert.Error(t, call.ctx.Err())

	call.reply <- trainReply{err: call.ctx.Err()}
	waitTask(t, sub.Task)
	assert.True(t, sub.Superseded())
	assert.Equal(t, models.StageAwaitingResponse, d.State().Stage)
}

func TestSubmitOutlivesCallerContext(t *testing.T) {
	backend := newBlockingBackend()
	d := NewDispatcher(backend, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	sub := d.Submit(ctx, DefaultTrainForm())
	call := backend.next(t)
	cancel()

	assert.NoError(t, call.ctx.Err())
	call.reply <- trainReply{payload: json.RawMessage(`{"status":"ok"}`)}
	waitTask(t, sub.Task)
	assert.Equal(t, models.StageSucceeded, d.State().Stage)
}
