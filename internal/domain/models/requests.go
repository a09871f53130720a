package models

// Requests for the dashboard HTTP shell. Values are raw user input; semantic
// checks happen in the widgets, only transport-level size limits apply here.

type TrainFormPatch struct {
	Ticker *string `json:"ticker" validate:"omitempty,max=32"`
	Period *string `json:"period" validate:"omitempty,max=8"`
	Epochs *string `json:"epochs" validate:"omitempty,max=16"`
}

type ChartQueryPatch struct {
	Ticker *string `json:"ticker" validate:"omitempty,max=32"`
	Period *string `json:"period" validate:"omitempty,max=8"`
}

// PeriodsResponse lists both period enumerations.
type PeriodsResponse struct {
	Training []Period `json:"training"`
	Chart    []Period `json:"chart"`
}
