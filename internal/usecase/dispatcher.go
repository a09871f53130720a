package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"TrainBoard/internal/domain/models"
	drepo "TrainBoard/internal/domain/repository"
	xlogger "TrainBoard/pkg/logger"

	"github.com/google/uuid"
)

// Submission is the handle of one training request.
type Submission struct {
	*Task
	ID string
}

// Dispatcher sends training jobs and tracks the lifecycle of the latest one.
// Issuing a new submission cancels the outstanding call and discards its
// result when it arrives.
type Dispatcher struct {
	backend drepo.TrainingBackend
	metrics drepo.Metrics
	logger  *xlogger.Logger
	now     func() time.Time

	mu        sync.Mutex
	gen       uint64
	id        string
	stage     models.Stage
	req       *models.TrainingJobRequest
	result    *models.TrainingJobResult
	cancel    context.CancelFunc
	updatedAt time.Time

	// emitMu keeps listener calls in mutation order.
	emitMu    sync.Mutex
	listeners []func(models.DispatchState)
}

// NewDispatcher creates a Dispatcher in the idle stage.
func NewDispatcher(backend drepo.TrainingBackend, metrics drepo.Metrics, logger *xlogger.Logger) *Dispatcher {
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &Dispatcher{
		backend:   backend,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
		stage:     models.StageIdle,
		updatedAt: time.Now(),
	}
}

// Subscribe registers fn for every state change. fn must not call back
// into mutating Dispatcher methods.
func (d *Dispatcher) Subscribe(fn func(models.DispatchState)) {
	d.emitMu.Lock()
	defer d.emitMu.Unlock()
	d.listeners = append(d.listeners, fn)
}

// State returns a copy of the current state.
func (d *Dispatcher) State() models.DispatchState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stateLocked()
}

// Submit builds a request from form and sends it. ctx provides values only;
// the call outlives it and is cancelled by the next Submit or by Close.
func (d *Dispatcher) Submit(ctx context.Context, form models.TrainForm) *Submission {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.gen++
	sub := &Submission{Task: newTask(d.gen), ID: uuid.NewString()}
	d.id = sub.ID
	d.req = nil
	d.result = nil
	d.setStageLocked(models.StageSubmitting)
	d.unlockAndEmit()

	log := d.logger.With(xlogger.String("submission_id", sub.ID))

	req, err := BuildTrainingJobRequest(form)

	d.mu.Lock()
	if d.gen != sub.Generation {
		d.mu.Unlock()
		sub.finish(true)
		return sub
	}
	if err != nil {
		d.result = models.FailureResult(err)
		d.setStageLocked(models.StageFailed)
		d.unlockAndEmit()
		d.metrics.RecordDispatch(string(models.FailureValidation))
		log.Warn("training request rejected", xlogger.Error(err))
		sub.finish(false)
		return sub
	}
	callCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	d.cancel = cancel
	d.req = &req
	d.setStageLocked(models.StageAwaitingResponse)
	d.unlockAndEmit()

	log.Info("training request sent",
		xlogger.String("ticker", req.Ticker),
		xlogger.String("period", req.Period),
		xlogger.Int("epochs", req.Epochs))

	go d.await(callCtx, cancel, sub, req, log)
	return sub
}

func (d *Dispatcher) await(ctx context.Context, cancel context.CancelFunc, sub *Submission, req models.TrainingJobRequest, log *xlogger.Logger) {
	defer cancel()

	start := time.Now()
	payload, err := d.backend.Train(ctx, req)
	d.metrics.RecordLatency("train", time.Since(start).Seconds())

	d.mu.Lock()
	if d.gen != sub.Generation {
		d.mu.Unlock()
		d.metrics.RecordStaleResult("dispatcher")
		log.Debug("discarding result of superseded submission", xlogger.Error(err))
		sub.finish(true)
		return
	}
	d.cancel = nil
	if err != nil {
		d.result = models.FailureResult(err)
		d.setStageLocked(models.StageFailed)
	} else {
		d.result = models.SuccessResult(json.RawMessage(payload))
		d.setStageLocked(models.StageSucceeded)
	}
	d.unlockAndEmit()

	if err != nil {
		kind := models.FailureTransport
		if errors.Is(err, models.ErrDecode) {
			kind = models.FailureDecode
		}
		d.metrics.RecordDispatch(string(kind))
		log.Error("training request failed", xlogger.Error(err), xlogger.Duration("duration_ms", time.Since(start)))
	} else {
		d.metrics.RecordDispatch("success")
		log.Info("training request succeeded", xlogger.Duration("duration_ms", time.Since(start)))
	}
	sub.finish(false)
}

// Close cancels the outstanding call, if any. Its result is discarded.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
		d.gen++
	}
}

func (d *Dispatcher) setStageLocked(stage models.Stage) {
	d.stage = stage
	d.updatedAt = d.now()
}

func (d *Dispatcher) stateLocked() models.DispatchState {
	return models.DispatchState{
		SubmissionID:    d.id,
		Generation:      d.gen,
		Stage:           d.stage,
		Progress:        Progress(d.stage),
		ProgressVisible: ProgressVisible(d.stage),
		Request:         d.req,
		Result:          d.result,
		UpdatedAt:       d.updatedAt,
	}
}

// unlockAndEmit releases d.mu and delivers the state captured under it.
func (d *Dispatcher) unlockAndEmit() {
	st := d.stateLocked()
	d.emitMu.Lock()
	d.mu.Unlock()
	defer d.emitMu.Unlock()
	for _, fn := range d.listeners {
		fn(st)
	}
}
