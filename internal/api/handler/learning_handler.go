package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vasaworks/vasa-api/internal/core/ports"
)

// LearningHandler serves the skills library catalog and tracks progress.
type LearningHandler struct {
	service ports.LearningService
}

func NewLearningHandler(service ports.LearningService) *LearningHandler {
	return &LearningHandler{service: service}
}

// List handles GET /v1/learning/modules.
//
// @Summary      List learning modules with own progress
// @Tags         learning
// @Produce      json
// @Security     BearerAuth
// @Param        language  query     string  false  "Catalog language (e.g. en, hi)"
// @Success      200       {object}  listModulesResponse
// @Failure      401       {object}  errorResponse
// @Router       /v1/learning/modules [get]
func (h *LearningHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	modules, progress, err := h.service.List(c.Request().Context(), userID, c.QueryParam("language"))
	if err != nil {
		return err
	}

	items := make([]moduleResponse, 0, len(modules))
	for _, m := range modules {
		items = append(items, moduleResponse{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Type:        string(m.Type),
			Duration:    m.Duration,
			Language:    m.Language,
			VideoID:     m.VideoID,
			Progress:    progress[m.ID],
		})
	}
	return c.JSON(http.StatusOK, listModulesResponse{Data: items})
}

// RecordProgress handles POST /v1/learning/modules/:id/progress.
//
// @Summary      Record progress through a module
// @Tags         learning
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Module id"
// @Param        body  body      progressRequest  true  "Progress percentage (0-100)"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/learning/modules/{id}/progress [post]
func (h *LearningHandler) RecordProgress(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req progressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.RecordProgress(c.Request().Context(), userID, c.Param("id"), req.Progress); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "progress recorded"})
}
