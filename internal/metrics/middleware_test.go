package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/search", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"count":0}`))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	r.Post("/dataset/reload", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	return r
}

func TestMiddleware_RecordsByRouteAndStatus(t *testing.T) {
	r := newRouter()

	tests := []struct {
		method string
		target string
		route  string
		status string
	}{
		{"GET", "/search?q=miami", "/search", "200"},
		{"GET", "/health", "/health", "503"},
		{"POST", "/dataset/reload", "/dataset/reload", "401"},
	}

	for _, tc := range tests {
		t.Run(tc.route, func(t *testing.T) {
			before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(tc.method, tc.route, tc.status))

			req := httptest.NewRequest(tc.method, tc.target, http.NoBody)
			r.ServeHTTP(httptest.NewRecorder(), req)

			after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(tc.method, tc.route, tc.status))
			if after != before+1 {
				t.Errorf("requests_total{%s %s %s}: got %f, want %f", tc.method, tc.route, tc.status, after, before+1)
			}
		})
	}

	if testutil.CollectAndCount(httpRequestDuration) == 0 {
		t.Error("expected http_request_duration_seconds to have observations")
	}
	if testutil.CollectAndCount(httpResponseBytes) == 0 {
		t.Error("expected http_response_bytes to have observations")
	}
}

func TestMiddleware_UnmatchedRoutesShareOneLabel(t *testing.T) {
	r := newRouter()

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", unmatchedRoute, "404"))
	for _, path := range []string{"/wp-login.php", "/.env", "/search/extra"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", path, http.NoBody))
	}
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", unmatchedRoute, "404"))
	if after != before+3 {
		t.Errorf("unmatched requests: got %f, want %f", after, before+3)
	}
}

func TestMiddleware_ImplicitOK(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/silent", func(w http.ResponseWriter, r *http.Request) {})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/silent", "200"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/silent", http.NoBody))
	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/silent", "200")); got != before+1 {
		t.Errorf("handler without WriteHeader should count as 200, got delta %f", got-before)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", unmatchedRoute},
		{"/search", "/search"},
		{"/dataset/reload", "/dataset/reload"},
	}

	for _, tc := range tests {
		if got := normalizePath(tc.input); got != tc.expected {
			t.Errorf("normalizePath(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestRegisterSearchMetrics_Idempotent(t *testing.T) {
	RegisterSearchMetrics()
	RegisterSearchMetrics()
	RegisterHTTPMetrics()

	SearchRequestsTotal.WithLabelValues(OutcomeHit).Inc()
	if v := testutil.ToFloat64(SearchRequestsTotal.WithLabelValues(OutcomeHit)); v < 1 {
		t.Errorf("expected search_requests_total{outcome=hit} >= 1, got %f", v)
	}
}
