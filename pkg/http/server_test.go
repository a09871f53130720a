package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nameRequest struct {
	Name string `json:"name" default:"abc" validate:"required,max=3"`
}

type namesHandler struct{}

func (namesHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/names", func(c echo.Context) error {
		var req nameRequest
		if verr := ReadAndValidateRequest(c, &req); verr != nil {
			return BadRequestResponse(c, verr)
		}
		return SuccessResponse(c, req)
	})
}

type errorEnvelope struct {
	Status int        `json:"status"`
	Data   []AppError `json:"data"`
}

func newTestServer(opts ...ServerOption) *echo.Echo {
	opts = append([]ServerOption{WithMetrics("", 0)}, opts...)
	return NewServer(namesHandler{}, nil, opts...).Echo()
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func postJSON(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/names", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestHealthz(t *testing.T) {
	rec := serve(newTestServer(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	rec := serve(newTestServer(), httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var env errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, http.StatusNotFound, env.Status)
	require.Len(t, env.Data, 1)
	assert.Equal(t, "ERR_NOT_FOUND", env.Data[0].Code)
}

func TestRateLimitedReplyUsesEnvelope(t *testing.T) {
	e := newTestServer(WithRateLimit(1, 0))

	assert.Equal(t, http.StatusOK, serve(e, postJSON(`{"name":"ab"}`)).Code)

	rec := serve(e, postJSON(`{"name":"ab"}`))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	var env errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, http.StatusTooManyRequests, env.Status)
	require.Len(t, env.Data, 1)
	assert.Equal(t, "ERR_RATE_LIMITED", env.Data[0].Code)

	assert.Equal(t, http.StatusOK, serve(e, httptest.NewRequest(http.MethodGet, "/healthz", nil)).Code)
}

func TestCORSPreflightAllowsConfiguredOrigin(t *testing.T) {
	e := newTestServer(WithCORSOrigins([]string{"http://dash.local"}))

	req := httptest.NewRequest(http.MethodOptions, "/names", nil)
	req.Header.Set(echo.HeaderOrigin, "http://dash.local")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPatch)
	rec := serve(e, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://dash.local", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowMethods), http.MethodPatch)
}

func TestCORSRejectsOtherOrigin(t *testing.T) {
	e := newTestServer(WithCORSOrigins([]string{"http://dash.local"}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(echo.HeaderOrigin, "http://evil.example")
	rec := serve(e, req)

	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestReadAndValidateRequest(t *testing.T) {
	e := newTestServer()

	t.Run("empty body takes defaults", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/names", nil)
		rec := serve(e, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"name":"abc"`)
	})

	t.Run("field error uses json name", func(t *testing.T) {
		rec := serve(e, postJSON(`{"name":"toolong"}`))
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var env struct {
			Data []ValidationError `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		require.Len(t, env.Data, 1)
		assert.Equal(t, "ERR_MAX", env.Data[0].Code)
		assert.Equal(t, "name", env.Data[0].Field)
		assert.Equal(t, "name must be at most 3 characters", env.Data[0].Message)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := serve(e, postJSON(`{"name":`))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "ERR_BODY")
	})
}
