package router

import (
	"github.com/labstack/echo/v4"

	"github.com/feierapp/feierapp-api/internal/handler"
)

// RegisterDirectory registers the event, guest and contribution routes.
// There is no login anywhere: events are public via their short code
// and each guest route is authorized by the token embedded in the path.
// The cache middleware fronts the hot single-event read; the rate
// limiter fronts every /events route.
func RegisterDirectory(e *echo.Echo, eh *handler.EventHandler, gh *handler.GuestHandler, ch *handler.ContributionHandler, cache, limit echo.MiddlewareFunc) {
	events := e.Group("/events", limit)
	events.GET("", eh.List)
	events.POST("", eh.Create)
	events.GET("/:code", eh.Get, cache)
	events.PUT("/:code", eh.Update)
	events.DELETE("/:code", eh.Delete)
	events.GET("/:code/guests", gh.ListByEvent)
	events.POST("/:code/guests", gh.Create)

	guests := e.Group("/guests")
	guests.GET("/:token", gh.Get)
	guests.PUT("/:token", gh.Update)
	guests.GET("/:token/contributions", ch.List)
	guests.POST("/:token/contributions", ch.Create)

	e.PUT("/contributions/:id", ch.Update)
	e.DELETE("/contributions/:id", ch.Delete)
}
