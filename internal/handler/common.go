// Package handler contains the HTTP handlers. Handlers bind and
// pre-check request input, delegate to the services and translate
// service errors into the API's response vocabulary.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/feierapp/feierapp-api/internal/repository"
	"github.com/feierapp/feierapp-api/internal/service"
)

// respondError maps service and repository errors onto the API's error
// vocabulary. Authorization failures are deliberately 400, never 401 or
// 403, so an attacker probing with foreign tokens learns nothing from
// the status code alone.
func respondError(c echo.Context, log zerolog.Logger, err error) error {
	var ve service.ValidationErrors
	if errors.As(err, &ve) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"errors": ve})
	}
	switch {
	case errors.Is(err, repository.ErrEventNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Event not found"})
	case errors.Is(err, repository.ErrGuestNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Guest not found"})
	case errors.Is(err, repository.ErrContributionNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Contribution not found"})
	case errors.Is(err, repository.ErrOfferNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Ride offer not found"})
	case errors.Is(err, repository.ErrRequestNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Ride request not found"})
	case errors.Is(err, repository.ErrMatchNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Ride match not found"})
	case errors.Is(err, repository.ErrDuplicateMatch):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Match already exists"})
	case errors.Is(err, service.ErrNotEnoughSeats):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Not enough seats available"})
	case errors.Is(err, service.ErrUnauthorized):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Unauthorized"})
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
}
