package usecase

import (
	"context"
	"slices"
	"sync"

	"TrainBoard/internal/domain/models"
)

// TrainingWidget is the training view: form state plus the dispatcher
// that submits it.
type TrainingWidget struct {
	form       *FormState
	dispatcher *Dispatcher

	mu        sync.Mutex
	listeners []func(models.TrainingSnapshot)
}

func NewTrainingWidget(form *FormState, dispatcher *Dispatcher) *TrainingWidget {
	w := &TrainingWidget{form: form, dispatcher: dispatcher}
	dispatcher.Subscribe(func(st models.DispatchState) {
		w.emit(models.TrainingSnapshot{Form: w.form.Current(), DispatchState: st})
	})
	return w
}

// Subscribe registers fn for form edits and dispatcher transitions.
func (w *TrainingWidget) Subscribe(fn func(models.TrainingSnapshot)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, fn)
}

func (w *TrainingWidget) Snapshot() models.TrainingSnapshot {
	return models.TrainingSnapshot{Form: w.form.Current(), DispatchState: w.dispatcher.State()}
}

func (w *TrainingWidget) SetTicker(v string) models.TrainingSnapshot {
	w.form.SetTicker(v)
	return w.changed()
}

func (w *TrainingWidget) SetPeriod(v string) models.TrainingSnapshot {
	w.form.SetPeriod(v)
	return w.changed()
}

func (w *TrainingWidget) SetEpochs(v string) models.TrainingSnapshot {
	w.form.SetEpochs(v)
	return w.changed()
}

// Submit sends the current form.
func (w *TrainingWidget) Submit(ctx context.Context) *Submission {
	return w.dispatcher.Submit(ctx, w.form.Current())
}

func (w *TrainingWidget) Close() { w.dispatcher.Close() }

func (w *TrainingWidget) changed() models.TrainingSnapshot {
	s := w.Snapshot()
	w.emit(s)
	return s
}

func (w *TrainingWidget) emit(s models.TrainingSnapshot) {
	w.mu.Lock()
	fns := slices.Clone(w.listeners)
	w.mu.Unlock()
	for _, fn := range fns {
		fn(s)
	}
}
