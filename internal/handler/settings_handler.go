package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pmory/pmory-api/internal/models"
	appErrors "github.com/pmory/pmory-api/pkg/errors"
	"github.com/pmory/pmory-api/pkg/response"
)

type settingsService interface {
	Links(ctx context.Context) (map[string]string, error)
	Get(ctx context.Context) (*models.Settings, error)
	UpdateLinks(ctx context.Context, req models.LinkUpdateRequest) (map[string]string, error)
}

// SettingsHandler exposes the external link endpoints.
type SettingsHandler struct {
	service settingsService
}

// NewSettingsHandler builds a new handler.
func NewSettingsHandler(service settingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// Links godoc
// @Summary Get the public external link map
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /links [get]
func (h *SettingsHandler) Links(c *gin.Context) {
	links, err := h.service.Links(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, links)
}

// Get godoc
// @Summary Get the full settings value
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/links [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.service.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings)
}

// UpdateLinks godoc
// @Summary Repoint external link keys
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.LinkUpdateRequest true "Links payload"
// @Success 200 {object} response.Envelope
// @Router /admin/links [put]
func (h *SettingsHandler) UpdateLinks(c *gin.Context) {
	var req models.LinkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid links payload"))
		return
	}

	links, err := h.service.UpdateLinks(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, links)
}
