package router

import (
	"github.com/labstack/echo/v4"

	"github.com/feierapp/feierapp-api/internal/handler"
)

// RegisterRides registers the ride board, inventory and match engine
// routes. The board read is cached; everything ride-related is rate
// limited because match creation and confirmation hit row locks on the
// hot offer rows.
func RegisterRides(e *echo.Echo, rh *handler.RideHandler, mh *handler.MatchHandler, cache, limit echo.MiddlewareFunc) {
	e.GET("/events/:code/rides", rh.Board, limit, cache)
	e.POST("/events/:code/ride-offers", rh.CreateOffer, limit)
	e.POST("/events/:code/ride-requests", rh.CreateRequest, limit)

	e.GET("/guests/:token/rides", rh.GuestRides)

	e.PUT("/ride-offers/:id", rh.UpdateOffer, limit)
	e.PUT("/ride-requests/:id", rh.UpdateRequest, limit)

	e.POST("/ride-matches", mh.Create, limit)
	e.PUT("/ride-matches/:id/confirm", mh.Confirm, limit)
	e.PUT("/ride-matches/:id/decline", mh.Decline, limit)
}
