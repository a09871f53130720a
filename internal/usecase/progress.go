package usecase

import "TrainBoard/internal/domain/models"

// Heartbeat values. The training backend reports no incremental progress,
// so these only distinguish sent, pending and done.
const (
	ProgressIdle       = 0
	ProgressSubmitting = 10
	ProgressAwaiting   = 50
	ProgressSucceeded  = 100
	ProgressFailed     = 0
)

// Progress maps a lifecycle stage to a completion percentage.
func Progress(stage models.Stage) int {
	switch stage {
	case models.StageSubmitting:
		return ProgressSubmitting
	case models.StageAwaitingResponse:
		return ProgressAwaiting
	case models.StageSucceeded:
		return ProgressSucceeded
	case models.StageFailed:
		return ProgressFailed
	default:
		return ProgressIdle
	}
}

// ProgressVisible reports whether the indicator is shown at all.
func ProgressVisible(stage models.Stage) bool {
	return stage != models.StageIdle && stage != ""
}
