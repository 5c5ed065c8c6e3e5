// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/feierapp/feierapp-api/internal/handler"
)

// RegisterRoutes registers the routes that need no handler wiring. At
// the moment that is only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}
