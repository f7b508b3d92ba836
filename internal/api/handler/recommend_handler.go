package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/beatbridge/beatbridge-api/internal/core/ports"
)

// genres is the fixed list the frontend offers during onboarding.
var genres = []string{
	"rock", "pop", "hip-hop", "jazz", "classical",
	"electronic", "metal", "indie", "folk", "blues",
}

type RecommendHandler struct {
	recommender ports.RecommendService
}

func NewRecommendHandler(recommender ports.RecommendService) *RecommendHandler {
	return &RecommendHandler{recommender: recommender}
}

type recommendRequest struct {
	Genres []string `json:"genres"`
}

// Genres lists the selectable genres.
//
// @Summary      List available genres
// @Tags         recommendations
// @Produce      json
// @Success      200  {object}  map[string][]string
// @Router       /api/genres [get]
func (h *RecommendHandler) Genres(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{"genres": genres})
}

// Recommend picks one song for the caller; saved customization genres win
// over the ones in the request body.
//
// @Summary      Recommend a song
// @Tags         recommendations
// @Accept       json
// @Produce      json
// @Param        body  body      recommendRequest  true  "Fallback genres"
// @Success      200   {object}  ports.Track
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/recommend-song [post]
func (h *RecommendHandler) Recommend(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	var req recommendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	track, err := h.recommender.Recommend(c.Request().Context(), userID, req.Genres)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, track)
}
