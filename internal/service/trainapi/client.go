package trainapi

import (
	"context"
	"encoding/json"

	"TrainBoard/internal/domain/models"
	domrepo "TrainBoard/internal/domain/repository"
	"TrainBoard/internal/service/backend"
)

const trainPath = "/train"

// Client talks to the training backend.
type Client struct {
	base *backend.HTTPServiceBase
}

func New(base *backend.HTTPServiceBase) *Client { return &Client{base: base} }

// Train posts the job parameters and returns the reply body verbatim. The payload
// is not schema-checked beyond being valid JSON.
func (c *Client) Train(ctx context.Context, req models.TrainingJobRequest) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.base.PostJSON(ctx, trainPath, req, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

var _ domrepo.TrainingBackend = (*Client)(nil)
