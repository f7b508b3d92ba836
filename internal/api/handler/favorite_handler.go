package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/beatbridge/beatbridge-api/internal/core/ports"
)

type FavoriteHandler struct {
	favorites ports.FavoriteService
}

func NewFavoriteHandler(favorites ports.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

type addFavoriteRequest struct {
	SongName         string   `json:"song_name" validate:"required"`
	ArtistName       string   `json:"artist_name" validate:"required"`
	AlbumName        string   `json:"album_name"`
	SongURL          string   `json:"song_url"`
	Duration         int      `json:"duration"`
	AlbumImage       string   `json:"album_image"`
	RhythmComplexity int      `json:"rhythm_complexity"`
	TempoRating      int      `json:"tempo_rating"`
	SkillLevel       string   `json:"skill_level"`
	Tags             []string `json:"tags"`
}

// Add saves a song to the caller's favorites.
//
// @Summary      Add a favorite song
// @Tags         favorites
// @Accept       json
// @Produce      json
// @Param        body  body      addFavoriteRequest  true  "Song details"
// @Success      201   {object}  domain.Favorite
// @Failure      400   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/favorites [post]
func (h *FavoriteHandler) Add(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	var req addFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	fav, err := h.favorites.Add(c.Request().Context(), userID, ports.AddFavoriteInput{
		SongName:         req.SongName,
		ArtistName:       req.ArtistName,
		AlbumName:        req.AlbumName,
		SongURL:          req.SongURL,
		Duration:         req.Duration,
		AlbumImage:       req.AlbumImage,
		RhythmComplexity: req.RhythmComplexity,
		TempoRating:      req.TempoRating,
		SkillLevel:       req.SkillLevel,
		Tags:             req.Tags,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, fav)
}

// List returns the caller's favorites, newest first.
//
// @Summary      List favorite songs
// @Tags         favorites
// @Produce      json
// @Success      200  {array}  domain.Favorite
// @Security     BearerAuth
// @Router       /api/favorites [get]
func (h *FavoriteHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	favs, err := h.favorites.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, favs)
}

// Remove deletes one of the caller's favorites.
//
// @Summary      Remove a favorite song
// @Tags         favorites
// @Produce      json
// @Param        id   path      string  true  "Favorite ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/favorites/{id} [delete]
func (h *FavoriteHandler) Remove(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	if err := h.favorites.Remove(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "favorite removed"})
}
