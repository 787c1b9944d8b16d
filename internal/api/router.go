// Package api hosts the client's local debug listener: liveness/readiness
// probes and the Prometheus metrics endpoint. It serves nothing from the
// consultation domain; the consultation service itself is external.
package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/consultation-platform/intake-client/internal/api/handler"
)

// NewRouter builds the Echo instance for the debug listener. rdb is nil when
// the credential store uses the file backend.
func NewRouter(serviceURL string, rdb *redis.Client) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echoprometheus.NewMiddleware("intake_debug"))

	// --- Probes and metrics ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(serviceURL, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – is the service reachable?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
