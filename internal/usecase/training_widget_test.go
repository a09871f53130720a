package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"TrainBoard/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrainingWidgetSubmitsCurrentForm(t *testing.T) {
	backend := newBlockingBackend()
	w := NewTrainingWidget(NewFormState(), NewDispatcher(backend, nil, nil))

	var mu sync.Mutex
	var snaps []models.TrainingSnapshot
	w.Subscribe(func(s models.TrainingSnapshot) {
		mu.Lock()
		snaps = append(snaps, s)
		mu.Unlock()
	})

	s := w.SetTicker("TSLA")
	assert.Equal(t, "TSLA", s.Form.Ticker)
	assert.Equal(t, models.StageIdle, s.Stage)
	w.SetPeriod("1y")
	w.SetEpochs("3")

	sub := w.Submit(context.Background())
	call := backend.next(t)
	assert.Equal(t, models.TrainingJobRequest{Ticker: "TSLA", Period: "1y", Epochs: 3}, call.req)

	// Editing while in flight does not alter the sent request.
	w.SetEpochs("7")
	assert.Equal(t, 3, w.Snapshot().Request.Epochs)

	call.reply <- trainReply{payload: json.RawMessage(`{"status":"ok"}`)}
	waitTask(t, sub.Task)

	final := w.Snapshot()
	assert.Equal(t, "7", final.Form.Epochs)
	assert.Equal(t, models.StageSucceeded, final.Stage)
	assert.Equal(t, 100, final.Progress)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, snaps)
	assert.Equal(t, models.StageSucceeded, snaps[len(snaps)-1].Stage)
}
