package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"seatime-backend/internal/infrastructure/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_LabelsByRoutePattern(t *testing.T) {
	e := echo.New()
	e.Use(Metrics())
	e.GET("/vessels/:id", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/vessels/abc", nil))
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/vessels/def", nil))

	expected := `
# HELP seatime_http_requests_total Total number of HTTP requests handled.
# TYPE seatime_http_requests_total counter
seatime_http_requests_total{method="GET",route="/vessels/:id",status="204"} 2
`
	if err := testutil.GatherAndCompare(metrics.Registry, strings.NewReader(expected), "seatime_http_requests_total"); err != nil {
		t.Fatalf("unexpected metrics: %v", err)
	}
}
