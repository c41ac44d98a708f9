package middleware

import (
	"errors"
	"net/http"
	"time"

	"seatime-backend/internal/infrastructure/metrics"

	"github.com/labstack/echo/v4"
)

// Metrics records request count and latency per registered route. /metrics itself is skipped.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Path() == "/metrics" {
				return next(c)
			}
			done := metrics.TrackInFlight()
			defer done()
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			if err != nil {
				var he *echo.HTTPError
				if errors.As(err, &he) {
					status = he.Code
				} else {
					status = http.StatusInternalServerError
				}
			}
			metrics.ObserveHTTP(c.Request().Method, c.Path(), status, time.Since(start))
			return err
		}
	}
}
