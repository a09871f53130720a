package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"TrainBoard/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPServiceBaseRejectsBadURL(t *testing.T) {
	for _, u := range []string{"", "localhost:8000", "://x"} {
		_, err := NewHTTPServiceBase(u, 0)
		assert.Error(t, err, u)
	}
}

func TestErrorsAreClassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bad-json":
			_, _ = w.Write([]byte(`{not json`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	b, err := NewHTTPServiceBase(srv.URL+"/", 0)
	require.NoError(t, err)

	var out map[string]interface{}
	err = b.GetJSON(context.Background(), "/bad-json", nil, &out)
	assert.ErrorIs(t, err, models.ErrDecode)

	err = b.PostJSON(context.Background(), "/fail", map[string]string{"a": "b"}, &out)
	assert.ErrorIs(t, err, models.ErrTransport)
	assert.NotErrorIs(t, err, models.ErrDecode)
}
