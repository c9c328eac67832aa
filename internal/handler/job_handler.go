package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pmory/pmory-api/internal/models"
	appErrors "github.com/pmory/pmory-api/pkg/errors"
	"github.com/pmory/pmory-api/pkg/response"
)

type jobService interface {
	List(ctx context.Context) ([]models.Job, error)
	ListPublic(ctx context.Context) ([]models.JobView, error)
	Get(ctx context.Context, id int) (*models.Job, error)
	NewDraft(ctx context.Context) (*models.Job, error)
	Create(ctx context.Context, input models.JobInput) (*models.Job, error)
	Update(ctx context.Context, id int, input models.JobInput) (*models.Job, error)
	Delete(ctx context.Context, id int) error
	SetStatus(ctx context.Context, id int, update models.JobStatusUpdate) (*models.Job, error)
}

// JobHandler exposes the job posting endpoints.
type JobHandler struct {
	service jobService
}

// NewJobHandler builds a new handler.
func NewJobHandler(service jobService) *JobHandler {
	return &JobHandler{service: service}
}

// ListPublic godoc
// @Summary List postings with derived deadline info
// @Tags Jobs
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /jobs [get]
func (h *JobHandler) ListPublic(c *gin.Context) {
	jobs, err := h.service.ListPublic(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, jobs)
}

// List godoc
// @Summary List postings as stored
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, jobs)
}

// Get godoc
// @Summary Get one posting
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job id"
// @Success 200 {object} response.Envelope
// @Router /admin/jobs/{id} [get]
func (h *JobHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	job, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job)
}

// Draft godoc
// @Summary Open a prefilled job draft
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/jobs/draft [post]
func (h *JobHandler) Draft(c *gin.Context) {
	draft, err := h.service.NewDraft(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, draft)
}

// Create godoc
// @Summary Commit a new posting
// @Tags Jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.JobInput true "Job payload"
// @Success 201 {object} response.Envelope
// @Router /admin/jobs [post]
func (h *JobHandler) Create(c *gin.Context) {
	var input models.JobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid job payload"))
		return
	}

	job, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, job)
}

// Update godoc
// @Summary Replace a posting
// @Tags Jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job id"
// @Param payload body models.JobInput true "Job payload"
// @Success 200 {object} response.Envelope
// @Router /admin/jobs/{id} [put]
func (h *JobHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input models.JobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid job payload"))
		return
	}

	job, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job)
}

// Delete godoc
// @Summary Remove a posting
// @Tags Jobs
// @Security BearerAuth
// @Param id path int true "Job id"
// @Success 204
// @Router /admin/jobs/{id} [delete]
func (h *JobHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SetStatus godoc
// @Summary Change a posting's status
// @Tags Jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job id"
// @Param payload body models.JobStatusUpdate true "Status payload"
// @Success 200 {object} response.Envelope
// @Router /admin/jobs/{id}/status [patch]
func (h *JobHandler) SetStatus(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var update models.JobStatusUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid status payload"))
		return
	}

	job, err := h.service.SetStatus(c.Request.Context(), id, update)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job)
}
