package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/domaincomb/domaincomb/internal/config"
	"github.com/domaincomb/domaincomb/internal/server/handlers"
)

func newTestServer() *Server {
	cfg := &config.Config{
		Registry: config.RegistryConfig{
			BaseURL:    "http://unused.test",
			Timeout:    time.Second,
			MaxRetries: 1,
		},
		Batch: config.BatchConfig{Workers: 1},
	}
	return New(cfg, "1.2.3-test")
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer()

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "healthy", resp.Status)
	require.Equal(t, "1.2.3-test", resp.Version)
	require.NotEmpty(t, resp.Timestamp)
}

func TestRequestIDEchoed(t *testing.T) {
	srv := newTestServer()

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "trace-42")
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, "trace-42", rec.Header().Get("X-Request-ID"))
}

func TestBatchRouteRejectsEmptyBody(t *testing.T) {
	srv := newTestServer()

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v0/batch", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer()

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
