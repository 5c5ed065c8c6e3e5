package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/feierapp/feierapp-api/internal/repository"
	"github.com/feierapp/feierapp-api/internal/service"
)

// MatchHandler serves the match engine routes: proposing a match and
// the per-party confirm and decline actions.
type MatchHandler struct {
	Matches *service.MatchService
	Log     zerolog.Logger
}

// NewMatchHandler constructs a MatchHandler.
func NewMatchHandler(matches *service.MatchService, log zerolog.Logger) *MatchHandler {
	return &MatchHandler{Matches: matches, Log: log}
}

// Create handles POST /ride-matches. Anyone who knows an offer id and a
// request id of the same event may propose the link; it only becomes
// binding once both parties confirm.
func (h *MatchHandler) Create(c echo.Context) error {
	var in service.MatchInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	match, err := h.Matches.CreateMatch(c.Request().Context(), in)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, match)
}

// confirmBody is the shared body of the confirm and decline actions.
// The token travels in the body, not a header, and confirm_type names
// the role the caller claims.
type confirmBody struct {
	GuestToken  string `json:"guest_token"`
	ConfirmType string `json:"confirm_type"`
}

// Confirm handles PUT /ride-matches/:id/confirm.
func (h *MatchHandler) Confirm(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ride match id"})
	}
	var body confirmBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.GuestToken) == "" || strings.TrimSpace(body.ConfirmType) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Guest token and confirm_type are required"})
	}
	match, err := h.Matches.Confirm(c.Request().Context(), id, body.GuestToken, body.ConfirmType)
	if err != nil {
		// An unknown token on a confirmation is a bad request; the
		// match itself was found.
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Guest not found"})
		}
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, match)
}

// Decline handles PUT /ride-matches/:id/decline. Either party may
// decline; declining is the only client path into the declined status.
func (h *MatchHandler) Decline(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ride match id"})
	}
	var body confirmBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.GuestToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Guest token is required"})
	}
	match, err := h.Matches.Decline(c.Request().Context(), id, body.GuestToken)
	if err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Guest not found"})
		}
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, match)
}
