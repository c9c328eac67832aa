package handler

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pmory/pmory-api/internal/models"
	appErrors "github.com/pmory/pmory-api/pkg/errors"
	"github.com/pmory/pmory-api/pkg/response"
)

type exportService interface {
	Snapshot(ctx context.Context) (*models.Snapshot, string, error)
	SerializeForPromotion(ctx context.Context, collection string) (*models.PromotionExport, error)
	GenerateReport(ctx context.Context, req models.ReportRequest) (*models.ReportResponse, error)
	OpenDownload(ctx context.Context, token string) (*os.File, string, error)
}

// ExportHandler exposes snapshot, promotion, and report endpoints.
type ExportHandler struct {
	service exportService
}

// NewExportHandler builds a new handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Snapshot godoc
// @Summary Download the full-site JSON snapshot
// @Tags Exports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Snapshot
// @Router /admin/export [get]
func (h *ExportHandler) Snapshot(c *gin.Context) {
	snapshot, filename, err := h.service.Snapshot(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.JSON(http.StatusOK, snapshot)
}

// Promote godoc
// @Summary Serialize one collection for manual promotion
// @Tags Exports
// @Produce json
// @Security BearerAuth
// @Param collection path string true "Collection name" Enums(mentors, jobs, settings)
// @Success 200 {object} response.Envelope
// @Router /admin/export/{collection} [get]
func (h *ExportHandler) Promote(c *gin.Context) {
	promo, err := h.service.SerializeForPromotion(c.Request.Context(), c.Param("collection"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, promo)
}

// Report godoc
// @Summary Generate a CSV or PDF report
// @Tags Exports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.ReportRequest true "Report payload"
// @Success 201 {object} response.Envelope
// @Router /admin/export/report [post]
func (h *ExportHandler) Report(c *gin.Context) {
	var req models.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid report payload"))
		return
	}

	resp, err := h.service.GenerateReport(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resp)
}

// Download godoc
// @Summary Download a report through its signed token
// @Tags Exports
// @Produce octet-stream
// @Param token path string true "Signed download token"
// @Success 200
// @Router /export/{token} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	file, name, err := h.service.OpenDownload(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		contentType = "text/csv"
	case ".pdf":
		contentType = "application/pdf"
	case ".json":
		contentType = "application/json"
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(name)))
	c.Header("Content-Type", contentType)

	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read export file"))
		return
	}

	c.DataFromReader(http.StatusOK, info.Size(), contentType, file, nil)
}
