package models

import (
	"encoding/json"
	"errors"
	"time"
)

// TrainForm is the raw, user-edited state of the training form.
// Epochs stays textual until submission.
type TrainForm struct {
	Ticker string `json:"ticker" default:"AAPL"`
	Period string `json:"period" default:"6mo"`
	Epochs string `json:"epochs" default:"10"`
}

// TrainingJobRequest is the body sent to POST /train.
type TrainingJobRequest struct {
	Ticker string `json:"ticker" validate:"required"`
	Period string `json:"period" validate:"required,oneof=1mo 3mo 6mo 1y 2y 5y"`
	Epochs int    `json:"epochs" validate:"gt=0"`
}

// Stage is the lifecycle phase of one submission:
// idle -> submitting -> awaiting_response -> succeeded | failed.
// A validation failure settles straight from submitting.
type Stage string

const (
	StageIdle             Stage = "idle"
	StageSubmitting       Stage = "submitting"
	StageAwaitingResponse Stage = "awaiting_response"
	StageSucceeded        Stage = "succeeded"
	StageFailed           Stage = "failed"
)

// Settled reports whether s is terminal.
func (s Stage) Settled() bool { return s == StageSucceeded || s == StageFailed }

// FailureKind classifies a failed submission or fetch.
type FailureKind string

const (
	FailureValidation FailureKind = "validation"
	FailureTransport  FailureKind = "transport"
	FailureDecode     FailureKind = "decode"
)

// GenericFailureMessage is shown for transport and decode failures.
const GenericFailureMessage = "Request failed."

// Failure is the terminal error of a submission.
type Failure struct {
	Kind    FailureKind  `json:"kind"`
	Message string       `json:"message"`
	Detail  string       `json:"detail,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// TrainingJobResult is either a Success payload or a Failure, never both.
type TrainingJobResult struct {
	Payload json.RawMessage `json:"payload,omitempty"`
	Failure *Failure        `json:"failure,omitempty"`
}

// Succeeded reports whether the result carries a payload.
func (r *TrainingJobResult) Succeeded() bool { return r != nil && r.Failure == nil }

// SuccessResult wraps a backend payload verbatim.
func SuccessResult(payload json.RawMessage) *TrainingJobResult {
	return &TrainingJobResult{Payload: payload}
}

// FailureResult converts err into a Failure, classifying it by domain sentinel.
func FailureResult(err error) *TrainingJobResult {
	f := &Failure{Message: GenericFailureMessage, Detail: err.Error()}
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		f.Kind = FailureValidation
		f.Message = verr.Error()
		f.Detail = ""
		f.Fields = verr.Fields
	case errors.Is(err, ErrDecode):
		f.Kind = FailureDecode
	default:
		f.Kind = FailureTransport
	}
	return &TrainingJobResult{Failure: f}
}

// DispatchState is a copy of the dispatcher state at one instant.
type DispatchState struct {
	SubmissionID    string              `json:"submission_id,omitempty"`
	Generation      uint64              `json:"generation"`
	Stage           Stage               `json:"stage"`
	Progress        int                 `json:"progress"`
	ProgressVisible bool                `json:"progress_visible"`
	Request         *TrainingJobRequest `json:"request,omitempty"`
	Result          *TrainingJobResult  `json:"result,omitempty"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// TrainingSnapshot is what the training view renders: the form plus the
// state of the latest submission.
type TrainingSnapshot struct {
	Form TrainForm `json:"form"`
	DispatchState
}
