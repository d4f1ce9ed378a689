package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordBackendRequest(t *testing.T) {
	r := New()

	r.RecordBackendRequest(http.MethodGet, "/juegos", http.StatusOK, 20*time.Millisecond)
	r.RecordBackendRequest(http.MethodGet, "/juegos", http.StatusOK, 10*time.Millisecond)
	r.RecordBackendRequest(http.MethodGet, "/auth/status", 0, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.BackendRequests.WithLabelValues("GET", "/juegos", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.BackendRequests.WithLabelValues("GET", "/auth/status", "error")))
}

func TestRecordGuardDecision(t *testing.T) {
	r := New()

	r.RecordGuardDecision("Games", "redirected")
	r.RecordGuardDecision("Games", "allowed")
	r.RecordGuardDecision("Games", "redirected")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.GuardDecisions.WithLabelValues("Games", "redirected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.GuardDecisions.WithLabelValues("Games", "allowed")))
}

func TestRecordHTTPRequest(t *testing.T) {
	r := New()

	r.RecordHTTPRequest("backend", http.MethodPut, "/juegos/{id:[0-9]+}", http.StatusOK, time.Millisecond)
	r.RecordHTTPRequest("backend", http.MethodPut, "/juegos/{id:[0-9]+}", http.StatusNotFound, time.Millisecond)
	r.RecordHTTPRequest("web", http.MethodGet, "/games", http.StatusOK, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.HTTPRequests.WithLabelValues("backend", "PUT", "/juegos/{id:[0-9]+}", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.HTTPRequests.WithLabelValues("web", "GET", "/games", "200")))
}

func TestNilRegistryIsNoop(t *testing.T) {
	var r *Registry
	assert.NotPanics(t, func() {
		r.RecordBackendRequest("GET", "/juegos", 200, time.Millisecond)
		r.RecordGuardDecision("Games", "allowed")
		r.RecordHangmanFinished("won")
		r.RecordHTTPRequest("web", "GET", "/games", 200, time.Millisecond)
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	r := New()
	r.RecordHangmanFinished("won")

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `portal_hangman_games_finished_total{status="won"} 1`)
}
