// Package webapi exposes the ledger over HTTP with Fiber.
// Route groups live in sub-packages:
// - account: bank account operations and statements
// - common: problem responses, error mapping and request binding
package webapi

import (
	"strings"
	"time"

	"github.com/amirasaad/bankaccount/pkg/app"
	"github.com/amirasaad/bankaccount/pkg/config"
	accountweb "github.com/amirasaad/bankaccount/webapi/account"
	"github.com/amirasaad/bankaccount/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/gofiber/swagger"
)

type options struct {
	limiterStorage fiber.Storage
	disableLogger  bool
}

// Option customizes SetupApp.
type Option func(*options)

// WithLimiterStorage keeps rate limiter counters in s instead of process memory.
func WithLimiterStorage(s fiber.Storage) Option {
	return func(o *options) { o.limiterStorage = s }
}

// WithoutRequestLogger disables the access log middleware.
func WithoutRequestLogger() Option {
	return func(o *options) { o.disableLogger = true }
}

// SetupApp Initialize Fiber with custom configuration
func SetupApp(a *app.App, opts ...Option) *fiber.App {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	cfg := a.Config

	fiberApp := fiber.New(fiber.Config{
		AppName: "bankaccount",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Request failed", err)
		},
	})
	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled: true,
	}))

	fiberApp.Use(recover.New())
	fiberApp.Use(cors.New(corsConfig(cfg.Cors)))
	if !o.disableLogger {
		fiberApp.Use(logger.New())
	}
	fiberApp.Use(metricsMiddleware(a))
	fiberApp.Use(limiter.New(limiterConfig(cfg.RateLimit, o.limiterStorage)))

	fiberApp.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "UP"})
	})
	if a.Deps.Metrics != nil {
		fiberApp.Get("/metrics", adaptor.HTTPHandler(a.Deps.Metrics.Handler()))
	}

	accountweb.Routes(fiberApp, a.LedgerService)
	return fiberApp
}

func corsConfig(c *config.Cors) cors.Config {
	if c == nil {
		return cors.ConfigDefault
	}
	return cors.Config{
		AllowOrigins: c.AllowedOrigins,
		AllowMethods: c.AllowedMethods,
		MaxAge:       c.MaxAge,
	}
}

func limiterConfig(rl *config.RateLimit, storage fiber.Storage) limiter.Config {
	maxRequests, window := 100, time.Minute
	if rl != nil {
		if rl.MaxRequests > 0 {
			maxRequests = rl.MaxRequests
		}
		if rl.Window > 0 {
			window = rl.Window
		}
	}
	return limiter.Config{
		Max:        maxRequests,
		Expiration: window,
		Storage:    storage,
		// Probes and scrapes are not rate limited.
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
		KeyGenerator: clientKey,
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(c, "Too Many Requests", fiber.ErrTooManyRequests)
		},
	}
}

// clientKey uses X-Forwarded-For when behind a proxy and falls back to
// X-Real-IP, then to the direct IP.
func clientKey(c *fiber.Ctx) string {
	if forwardedFor := c.Get(fiber.HeaderXForwardedFor); forwardedFor != "" {
		if first, _, found := strings.Cut(forwardedFor, ","); found {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(forwardedFor)
	}
	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.IP()
}

func metricsMiddleware(a *app.App) fiber.Handler {
	m := a.Deps.Metrics
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		m.ObserveHTTP(c.Method(), c.Route().Path, status, time.Since(start))
		return err
	}
}
