package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/feierapp/feierapp-api/internal/service"
)

// EventHandler serves the event directory routes. Events are addressed
// by their public short code, never by numeric id.
type EventHandler struct {
	Events *service.EventService
	Log    zerolog.Logger
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(events *service.EventService, log zerolog.Logger) *EventHandler {
	return &EventHandler{Events: events, Log: log}
}

// List handles GET /events.
func (h *EventHandler) List(c echo.Context) error {
	events, err := h.Events.List(c.Request().Context())
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, events)
}

// Create handles POST /events.
func (h *EventHandler) Create(c echo.Context) error {
	var in service.EventInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	e, err := h.Events.Create(c.Request().Context(), in)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, e)
}

// Get handles GET /events/:code. The payload embeds the guest list and
// RSVP statistics.
func (h *EventHandler) Get(c echo.Context) error {
	detail, err := h.Events.GetByCode(c.Request().Context(), c.Param("code"))
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, detail)
}

// Update handles PUT /events/:code.
func (h *EventHandler) Update(c echo.Context) error {
	var in service.EventUpdateInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	e, err := h.Events.Update(c.Request().Context(), c.Param("code"), in)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, e)
}

// Delete handles DELETE /events/:code. Guests, contributions,
// invitations and ride records cascade.
func (h *EventHandler) Delete(c echo.Context) error {
	if err := h.Events.Delete(c.Request().Context(), c.Param("code")); err != nil {
		return respondError(c, h.Log, err)
	}
	return c.NoContent(http.StatusNoContent)
}
