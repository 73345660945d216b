package middlewarex_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"nycschools/pkg/contextx"
	"nycschools/pkg/middlewarex"
)

func TestTraceID(t *testing.T) {
	testCases := []struct {
		name    string
		traceID string
	}{
		{name: "Inbound trace id is kept", traceID: "abc123"},
		{name: "Missing trace id is generated"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			var seen contextx.TraceID

			h := middlewarex.TraceID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				traceID, err := contextx.TraceIDFromContext(r.Context())
				rq.NoError(err)

				seen = traceID
			}))

			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			if tc.traceID != "" {
				req.Header.Set("X-Trace-Id", tc.traceID)
			}

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			rq.NotEmpty(seen)
			rq.Equal(seen.String(), rec.Header().Get("X-Trace-Id"))

			if tc.traceID != "" {
				rq.Equal(tc.traceID, seen.String())
			}
		})
	}
}

func TestRecovery(t *testing.T) {
	rq := require.New(t)

	h := middlewarex.Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	rq.Equal(http.StatusInternalServerError, rec.Code)
}

func TestMetrics(t *testing.T) {
	rq := require.New(t)

	registry := prometheus.NewRegistry()

	r := chi.NewRouter()
	r.Use(middlewarex.Metrics(registry))
	r.Get("/v1/schools/{id}/sat", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, path := range []string{"/v1/schools/a/sat", "/v1/schools/b/sat"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, http.NoBody))
	}

	expected := `
# HELP nycschools_http_requests_total HTTP requests by method, route and status.
# TYPE nycschools_http_requests_total counter
nycschools_http_requests_total{method="GET",route="/v1/schools/{id}/sat",status="418"} 2
`

	rq.NoError(testutil.GatherAndCompare(registry, strings.NewReader(expected), "nycschools_http_requests_total"))
}
