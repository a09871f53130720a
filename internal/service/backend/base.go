package backend

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"TrainBoard/internal/domain/models"
	xhttp "TrainBoard/pkg/http"
)

// HTTPServiceBase centralizes client construction and JSON request handling
// for the dashboard's backends. Errors come back classified by domain sentinel.
type HTTPServiceBase struct {
	baseURL string
	client  *xhttp.Client
}

// NewHTTPServiceBase builds a client for baseURL. A zero timeout waits
// indefinitely on the backend.
func NewHTTPServiceBase(baseURL string, timeout time.Duration, opts ...xhttp.ClientOption) (*HTTPServiceBase, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend base url %q", baseURL)
	}
	opts = append([]xhttp.ClientOption{xhttp.WithTimeout(timeout)}, opts...)
	return &HTTPServiceBase{
		baseURL: baseURL,
		client:  xhttp.NewClient(opts...),
	}, nil
}

// BaseURL returns the configured base URL.
func (b *HTTPServiceBase) BaseURL() string { return b.baseURL }

// PostJSON posts payload to path under baseURL and decodes JSON into dest.
func (b *HTTPServiceBase) PostJSON(ctx context.Context, path string, payload interface{}, dest interface{}) error {
	err := b.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    xhttp.JoinURL(b.baseURL, path),
		Headers: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
		Body: payload,
	}, dest)
	if err != nil {
		return classify(fmt.Errorf("post %s: %w", path, err))
	}
	return nil
}

// GetJSON issues a GET with query parameters and decodes JSON into dest.
func (b *HTTPServiceBase) GetJSON(ctx context.Context, path string, query map[string][]string, dest interface{}) error {
	err := b.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         xhttp.JoinURL(b.baseURL, path),
		Headers:     map[string]string{"Accept": "application/json"},
		QueryParams: query,
	}, dest)
	if err != nil {
		return classify(fmt.Errorf("get %s: %w", path, err))
	}
	return nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, xhttp.ErrDecode):
		return fmt.Errorf("%w: %w", models.ErrDecode, err)
	default:
		return fmt.Errorf("%w: %w", models.ErrTransport, err)
	}
}
