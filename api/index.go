// Package handler exposes the HTTP API as a single serverless function.
package handler

import (
	"net/http"
	"sync"

	_ "github.com/amirasaad/bankaccount/docs"
	"github.com/amirasaad/bankaccount/infra/initializer"
	"github.com/amirasaad/bankaccount/pkg/app"
	"github.com/amirasaad/bankaccount/pkg/config"
	"github.com/amirasaad/bankaccount/webapi"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

var (
	once    sync.Once
	handle  http.HandlerFunc
	initErr error
)

// Handler is the main entry point of the application.
// Think of it like the main() method
func Handler(w http.ResponseWriter, r *http.Request) {
	// This is needed to set the proper request path in `*fiber.Ctx`
	r.RequestURI = r.URL.String()

	once.Do(func() { handle, initErr = build() })
	if initErr != nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	handle.ServeHTTP(w, r)
}

// build wires the fiber application once per function instance. Warm
// invocations reuse the database pool and the limiter storage.
func build() (http.HandlerFunc, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return nil, err
	}
	var opts []webapi.Option
	storage, err := initializer.NewLimiterStorage(cfg.Redis, deps.Logger)
	if err != nil {
		deps.Logger.Warn("Rate limiter falls back to in-memory storage", "error", err)
	} else if storage != nil {
		opts = append(opts, webapi.WithLimiterStorage(storage))
	}
	return adaptor.FiberApp(webapi.SetupApp(app.New(deps.Deps), opts...)), nil
}
