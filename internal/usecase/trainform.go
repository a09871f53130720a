package usecase

import (
	"fmt"
	"sync"

	"TrainBoard/internal/domain/models"
	xutil "TrainBoard/pkg/util"

	"github.com/creasty/defaults"
)

// DefaultTrainForm returns the form as first shown: AAPL, 6mo, 10 epochs.
func DefaultTrainForm() models.TrainForm {
	var f models.TrainForm
	if err := defaults.Set(&f); err != nil {
		panic(fmt.Sprintf("train form defaults: %v", err))
	}
	return f
}

// Reducers. Input is stored verbatim; nothing is validated here.

func WithTicker(f models.TrainForm, v string) models.TrainForm { f.Ticker = v; return f }
func WithPeriod(f models.TrainForm, v string) models.TrainForm { f.Period = v; return f }
func WithEpochs(f models.TrainForm, v string) models.TrainForm { f.Epochs = v; return f }

// ParseEpochs converts the textual epochs field. Empty, non-numeric and
// non-positive values are validation failures.
func ParseEpochs(raw string) (int, error) {
	n, err := xutil.ParsePositiveInt(raw)
	if err != nil {
		return 0, models.NewValidationError("epochs", "epochs must be a positive integer: %v", err)
	}
	return n, nil
}

// BuildTrainingJobRequest turns the current form into a request, or a
// *models.ValidationError describing why it cannot be sent.
func BuildTrainingJobRequest(f models.TrainForm) (models.TrainingJobRequest, error) {
	epochs, err := ParseEpochs(f.Epochs)
	if err != nil {
		return models.TrainingJobRequest{}, err
	}
	req := models.TrainingJobRequest{Ticker: f.Ticker, Period: f.Period, Epochs: epochs}
	if err := validateStruct(req); err != nil {
		return models.TrainingJobRequest{}, err
	}
	return req, nil
}

// FormState owns the training form. It is the single source of truth for
// the next submission.
type FormState struct {
	mu   sync.RWMutex
	form models.TrainForm
}

func NewFormState() *FormState {
	return &FormState{form: DefaultTrainForm()}
}

// Current returns a copy of the form.
func (s *FormState) Current() models.TrainForm {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.form
}

// Apply runs a reducer and returns the new form.
func (s *FormState) Apply(fn func(models.TrainForm) models.TrainForm) models.TrainForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = fn(s.form)
	return s.form
}

func (s *FormState) SetTicker(v string) models.TrainForm {
	return s.Apply(func(f models.TrainForm) models.TrainForm { return WithTicker(f, v) })
}

func (s *FormState) SetPeriod(v string) models.TrainForm {
	return s.Apply(func(f models.TrainForm) models.TrainForm { return WithPeriod(f, v) })
}

func (s *FormState) SetEpochs(v string) models.TrainForm {
	return s.Apply(func(f models.TrainForm) models.TrainForm { return WithEpochs(f, v) })
}
