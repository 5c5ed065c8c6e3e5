package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/feierapp/feierapp-api/internal/service"
)

// ContributionHandler serves the potluck routes: listing and creation
// go through the owning guest's token, updates and deletion by id.
type ContributionHandler struct {
	Contributions *service.ContributionService
	Log           zerolog.Logger
}

// NewContributionHandler constructs a ContributionHandler.
func NewContributionHandler(contributions *service.ContributionService, log zerolog.Logger) *ContributionHandler {
	return &ContributionHandler{Contributions: contributions, Log: log}
}

// List handles GET /guests/:token/contributions.
func (h *ContributionHandler) List(c echo.Context) error {
	contribs, err := h.Contributions.ListByToken(c.Request().Context(), c.Param("token"))
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, contribs)
}

// Create handles POST /guests/:token/contributions.
func (h *ContributionHandler) Create(c echo.Context) error {
	var in service.ContributionInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	contrib, err := h.Contributions.Create(c.Request().Context(), c.Param("token"), in)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, contrib)
}

// Update handles PUT /contributions/:id.
func (h *ContributionHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contribution id"})
	}
	var in service.ContributionUpdateInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	contrib, err := h.Contributions.Update(c.Request().Context(), id, in)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, contrib)
}

// Delete handles DELETE /contributions/:id.
func (h *ContributionHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contribution id"})
	}
	if err := h.Contributions.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, h.Log, err)
	}
	return c.NoContent(http.StatusNoContent)
}
