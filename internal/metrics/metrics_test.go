package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T) string {
	t.Helper()

	rr := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	return rr.Body.String()
}

func TestMiddleware(t *testing.T) {
	// Arrange
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	handler := metrics.Middleware(mux)

	// Act
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/products/123", nil))

	// Assert
	assert.Equal(t, http.StatusTeapot, rr.Code)

	body := scrape(t)
	assert.Contains(t, body, `http_requests_total{code="418",method="GET",path="GET /api/v1/products/{id}"}`)
}

func TestUpstreamMetrics(t *testing.T) {
	metrics.ObserveUpstream("cart", http.MethodGet, "200", 15*time.Millisecond)
	metrics.IncUpstreamRetry("cart")
	metrics.ObserveCacheLookup("product", true)
	metrics.ObserveEvent("order.placed", errors.New("broker down"))

	body := scrape(t)

	for _, want := range []string{
		`storefront_upstream_requests_total{code="200",method="GET",service="cart"}`,
		`storefront_upstream_retries_total{service="cart"}`,
		`storefront_cache_lookups_total{prefix="product",result="hit"}`,
		`storefront_events_published_total{result="error",type="order.placed"}`,
	} {
		assert.True(t, strings.Contains(body, want), "missing metric %s", want)
	}
}
