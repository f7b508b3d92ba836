package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/beatbridge/beatbridge-api/internal/core/domain"
	"github.com/beatbridge/beatbridge-api/internal/core/ports"
)

type CustomizationHandler struct {
	customizations ports.CustomizationService
}

func NewCustomizationHandler(customizations ports.CustomizationService) *CustomizationHandler {
	return &CustomizationHandler{customizations: customizations}
}

type customizationRequest struct {
	SkillLevel        string   `json:"skill_level" validate:"required"`
	PracticeFrequency string   `json:"practice_frequency" validate:"required"`
	FavoriteGenres    []string `json:"favorite_genres"`
}

// Save stores the caller's practice profile, replacing any previous one.
//
// @Summary      Save practice customization
// @Tags         customization
// @Accept       json
// @Produce      json
// @Param        body  body      customizationRequest  true  "Practice profile"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/save-customization [post]
func (h *CustomizationHandler) Save(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	var req customizationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	err = h.customizations.Save(c.Request().Context(), userID, ports.CustomizationInput{
		SkillLevel:        req.SkillLevel,
		PracticeFrequency: req.PracticeFrequency,
		FavoriteGenres:    req.FavoriteGenres,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "customization saved"})
}

// Get returns the caller's stored practice profile.
//
// @Summary      Get practice customization
// @Tags         customization
// @Produce      json
// @Success      200  {object}  domain.Customization
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/get-customization [get]
func (h *CustomizationHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	custom, err := h.customizations.Get(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, custom)
}

type chapterProgressRequest struct {
	ChapterProgress      int `json:"chapter_progress"`
	Chapter0PageProgress int `json:"chapter0_page_progress"`
	Chapter1PageProgress int `json:"chapter1_page_progress"`
}

type chapterProgressResponse struct {
	Success              bool `json:"success,omitempty"`
	ChapterProgress      int  `json:"chapter_progress"`
	Chapter0PageProgress int  `json:"chapter0_page_progress"`
	Chapter1PageProgress int  `json:"chapter1_page_progress"`
}

// Progress returns the caller's rhythm-trainer chapter progress.
//
// @Summary      Get chapter progress
// @Tags         customization
// @Produce      json
// @Success      200  {object}  chapterProgressResponse
// @Security     BearerAuth
// @Router       /api/chapter-progress [get]
func (h *CustomizationHandler) Progress(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	p, err := h.customizations.Progress(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chapterProgressResponse{
		ChapterProgress:      p.Chapter,
		Chapter0PageProgress: p.Chapter0Page,
		Chapter1PageProgress: p.Chapter1Page,
	})
}

// AdvanceProgress records rhythm-trainer progress. Fields may be omitted,
// and a value lower than the stored one leaves it unchanged; the response
// carries whatever is stored afterwards.
//
// @Summary      Update chapter progress
// @Tags         customization
// @Accept       json
// @Produce      json
// @Param        body  body      chapterProgressRequest  true  "Progress positions"
// @Success      200   {object}  chapterProgressResponse
// @Failure      400   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/chapter-progress [post]
func (h *CustomizationHandler) AdvanceProgress(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	var req chapterProgressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	p, err := h.customizations.AdvanceProgress(c.Request().Context(), userID, domain.ChapterProgress{
		Chapter:      req.ChapterProgress,
		Chapter0Page: req.Chapter0PageProgress,
		Chapter1Page: req.Chapter1PageProgress,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chapterProgressResponse{
		Success:              true,
		ChapterProgress:      p.Chapter,
		Chapter0PageProgress: p.Chapter0Page,
		Chapter1PageProgress: p.Chapter1Page,
	})
}
