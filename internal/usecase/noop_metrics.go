package usecase

import drepo "TrainBoard/internal/domain/repository"

// NoopMetrics discards all measurements.
type NoopMetrics struct{}

func (NoopMetrics) RecordDispatch(string) {}
func (NoopMetrics) RecordFetch(string) {}
func (NoopMetrics) RecordStaleResult(string) {}
func (NoopMetrics) RecordLatency(string, float64) {}

var _ drepo.Metrics = NoopMetrics{}
