package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/feierapp/feierapp-api/internal/service"
)

// GuestHandler serves the guest directory routes. Individual guests are
// addressed only by their secret token.
type GuestHandler struct {
	Guests *service.GuestService
	Log    zerolog.Logger
}

// NewGuestHandler constructs a GuestHandler.
func NewGuestHandler(guests *service.GuestService, log zerolog.Logger) *GuestHandler {
	return &GuestHandler{Guests: guests, Log: log}
}

// ListByEvent handles GET /events/:code/guests.
func (h *GuestHandler) ListByEvent(c echo.Context) error {
	guests, err := h.Guests.ListByEventCode(c.Request().Context(), c.Param("code"))
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, guests)
}

// Create handles POST /events/:code/guests. The response carries the
// freshly issued token exactly once; the planner is expected to deliver
// it to the guest.
func (h *GuestHandler) Create(c echo.Context) error {
	var in service.GuestInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	g, err := h.Guests.Create(c.Request().Context(), c.Param("code"), in)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, g)
}

// Get handles GET /guests/:token. The payload embeds the event, the
// guest's contributions and the invitation lifecycle; viewing stamps
// the invitation as opened.
func (h *GuestHandler) Get(c echo.Context) error {
	detail, err := h.Guests.GetByToken(c.Request().Context(), c.Param("token"))
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, detail)
}

// Update handles PUT /guests/:token (the RSVP update). A successful
// update stamps the invitation as responded.
func (h *GuestHandler) Update(c echo.Context) error {
	var in service.GuestUpdateInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	g, err := h.Guests.Update(c.Request().Context(), c.Param("token"), in)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, g)
}
