package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/beatbridge/beatbridge-api/internal/core/ports"
)

type JamHandler struct {
	jams ports.JamSessionService
}

func NewJamHandler(jams ports.JamSessionService) *JamHandler {
	return &JamHandler{jams: jams}
}

type jamSessionRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Tempo       int    `json:"tempo" validate:"required,gt=0"`
	Pattern     string `json:"pattern" validate:"required"`
	Genre       string `json:"genre"`
	IsPublic    bool   `json:"is_public"`
}

func (r jamSessionRequest) toInput() ports.JamSessionInput {
	return ports.JamSessionInput{
		Title:       r.Title,
		Description: r.Description,
		Tempo:       r.Tempo,
		Pattern:     r.Pattern,
		Genre:       r.Genre,
		IsPublic:    r.IsPublic,
	}
}

// Create saves a new jam session for the caller.
//
// @Summary      Create a jam session
// @Tags         jam-sessions
// @Accept       json
// @Produce      json
// @Param        body  body      jamSessionRequest  true  "Session details"
// @Success      201   {object}  domain.JamSession
// @Failure      409   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/jam-sessions [post]
func (h *JamHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	var req jamSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	jam, err := h.jams.Create(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, jam)
}

// ListMine returns the caller's own sessions.
//
// @Summary      List my jam sessions
// @Tags         jam-sessions
// @Produce      json
// @Success      200  {array}  domain.JamSession
// @Security     BearerAuth
// @Router       /api/jam-sessions [get]
func (h *JamHandler) ListMine(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	jams, err := h.jams.ListMine(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jams)
}

// Explore returns every public session.
//
// @Summary      Explore public jam sessions
// @Tags         jam-sessions
// @Produce      json
// @Success      200  {array}  domain.JamSession
// @Security     BearerAuth
// @Router       /api/jam-sessions/explore [get]
func (h *JamHandler) Explore(c echo.Context) error {
	jams, err := h.jams.Explore(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jams)
}

// Get returns a single session by id.
//
// @Summary      Get a jam session
// @Tags         jam-sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  domain.JamSession
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/jam-sessions/{id} [get]
func (h *JamHandler) Get(c echo.Context) error {
	jam, err := h.jams.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jam)
}

// Update replaces an existing session owned by the caller.
//
// @Summary      Update a jam session
// @Tags         jam-sessions
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Session ID"
// @Param        body  body      jamSessionRequest  true  "Session details"
// @Success      200   {object}  domain.JamSession
// @Failure      404   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/jam-sessions/{id} [put]
func (h *JamHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	var req jamSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	jam, err := h.jams.Update(c.Request().Context(), userID, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jam)
}

// Delete removes a session owned by the caller.
//
// @Summary      Delete a jam session
// @Tags         jam-sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/jam-sessions/{id} [delete]
func (h *JamHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	if err := h.jams.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "jam session deleted"})
}
