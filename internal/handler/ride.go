package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/feierapp/feierapp-api/internal/service"
)

// RideHandler serves the ride inventory routes: the per-event board,
// offer and request creation under an event, the per-guest rides view
// and owner-only updates.
type RideHandler struct {
	Rides *service.RideService
	Log   zerolog.Logger
}

// NewRideHandler constructs a RideHandler.
func NewRideHandler(rides *service.RideService, log zerolog.Logger) *RideHandler {
	return &RideHandler{Rides: rides, Log: log}
}

// Board handles GET /events/:code/rides.
func (h *RideHandler) Board(c echo.Context) error {
	board, err := h.Rides.EventBoard(c.Request().Context(), c.Param("code"))
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, board)
}

// GuestRides handles GET /guests/:token/rides.
func (h *RideHandler) GuestRides(c echo.Context) error {
	rides, err := h.Rides.GuestRides(c.Request().Context(), c.Param("token"))
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, rides)
}

// CreateOffer handles POST /events/:code/ride-offers. The guest token
// travels in the request body and identifies the driver.
func (h *RideHandler) CreateOffer(c echo.Context) error {
	var in service.OfferInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(in.GuestToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Guest token is required"})
	}
	offer, err := h.Rides.CreateOffer(c.Request().Context(), c.Param("code"), in)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, offer)
}

// CreateRequest handles POST /events/:code/ride-requests.
func (h *RideHandler) CreateRequest(c echo.Context) error {
	var in service.RequestInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(in.GuestToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Guest token is required"})
	}
	request, err := h.Rides.CreateRequest(c.Request().Context(), c.Param("code"), in)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, request)
}

// UpdateOffer handles PUT /ride-offers/:id. Only the owning driver's
// token is accepted.
func (h *RideHandler) UpdateOffer(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ride offer id"})
	}
	var in service.OfferUpdateInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(in.GuestToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Guest token is required"})
	}
	offer, err := h.Rides.UpdateOffer(c.Request().Context(), id, in)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, offer)
}

// UpdateRequest handles PUT /ride-requests/:id. Only the owning
// passenger's token is accepted.
func (h *RideHandler) UpdateRequest(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ride request id"})
	}
	var in service.RequestUpdateInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(in.GuestToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Guest token is required"})
	}
	request, err := h.Rides.UpdateRequest(c.Request().Context(), id, in)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, request)
}
