package http

import (
	"net/http"
	"strings"
	"time"

	"seatime-backend/internal/adapter/middleware"
	"seatime-backend/internal/infrastructure/metrics"
	"seatime-backend/pkg/id"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type RouterConfig struct {
	Log         *logrus.Logger
	CORSOrigins []string
	// per-IP limit on /testimonials/*; <= 0 disables it
	RateLimit float64
	RateBurst int
	// nil disables idempotency replay
	Redis          *redis.Client
	IdempotencyTTL time.Duration
}

// NewRouter wires the echo instance: middleware chain, validator and routes.
func NewRouter(cfg RouterConfig, health *Handler, signoff *SignoffHandler) *echo.Echo {
	log := cfg.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	e.Use(
		echomw.Recover(),
		echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: id.NewID32}),
		middleware.RequestLogger(log),
		middleware.Metrics(),
		echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins: origins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{
				echo.HeaderContentType,
				middleware.HeaderIdempotencyKey,
				middleware.HeaderRequestAt,
			},
		}),
	)

	e.GET("/health", health.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	var group []echo.MiddlewareFunc
	if cfg.RateLimit > 0 {
		group = append(group, echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
			Skipper: func(c echo.Context) bool { return c.Request().Method == http.MethodOptions },
			Store: echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(cfg.RateLimit),
				Burst:     cfg.RateBurst,
				ExpiresIn: 3 * time.Minute,
			}),
			IdentifierExtractor: func(c echo.Context) (string, error) { return c.RealIP(), nil },
			ErrorHandler: func(c echo.Context, err error) error {
				return c.JSON(http.StatusForbidden, ErrorResponse{Error: "unable to identify client"})
			},
			DenyHandler: func(c echo.Context, _ string, _ error) error {
				return c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "too many requests"})
			},
		}))
	}
	if cfg.Redis != nil {
		group = append(group, middleware.IdempotencyMiddleware(cfg.Redis, cfg.IdempotencyTTL, log))
	}

	g := e.Group("/testimonials", group...)
	g.GET("/validate-token", signoff.ValidateToken)
	g.POST("/signoff", signoff.Signoff)

	return e
}

// ParseOrigins splits a comma-separated CORS_ORIGINS value.
func ParseOrigins(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
