package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pmory/pmory-api/internal/models"
	appErrors "github.com/pmory/pmory-api/pkg/errors"
	"github.com/pmory/pmory-api/pkg/response"
)

type mentorService interface {
	List(ctx context.Context) ([]models.Mentor, error)
	ListPublic(ctx context.Context) ([]models.PublicMentor, error)
	Get(ctx context.Context, id int) (*models.Mentor, error)
	Create(ctx context.Context, input models.MentorInput) (*models.Mentor, error)
	Update(ctx context.Context, id int, input models.MentorInput) (*models.Mentor, error)
	Delete(ctx context.Context, id int) error
	ContactLink(ctx context.Context, id int, req models.ContactRequest) (*models.ContactLink, error)
}

// MentorHandler exposes the mentorship directory endpoints.
type MentorHandler struct {
	service mentorService
}

// NewMentorHandler builds a new handler.
func NewMentorHandler(service mentorService) *MentorHandler {
	return &MentorHandler{service: service}
}

func pathID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "id must be a positive integer")
	}
	return id, nil
}

// ListPublic godoc
// @Summary List mentors without contact addresses
// @Tags Mentors
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /mentors [get]
func (h *MentorHandler) ListPublic(c *gin.Context) {
	mentors, err := h.service.ListPublic(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, mentors)
}

// Contact godoc
// @Summary Prepare a mailto link for reaching a mentor
// @Tags Mentors
// @Accept json
// @Produce json
// @Param id path int true "Mentor id"
// @Param payload body models.ContactRequest true "Contact payload"
// @Success 200 {object} response.Envelope
// @Router /mentors/{id}/contact [post]
func (h *MentorHandler) Contact(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid contact payload"))
		return
	}

	link, err := h.service.ContactLink(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, link)
}

// List godoc
// @Summary List mentors with contact addresses
// @Tags Mentors
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/mentors [get]
func (h *MentorHandler) List(c *gin.Context) {
	mentors, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, mentors)
}

// Get godoc
// @Summary Get one mentor
// @Tags Mentors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Mentor id"
// @Success 200 {object} response.Envelope
// @Router /admin/mentors/{id} [get]
func (h *MentorHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	mentor, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, mentor)
}

// Create godoc
// @Summary Add a mentor
// @Tags Mentors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.MentorInput true "Mentor payload"
// @Success 201 {object} response.Envelope
// @Router /admin/mentors [post]
func (h *MentorHandler) Create(c *gin.Context) {
	var input models.MentorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid mentor payload"))
		return
	}

	mentor, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, mentor)
}

// Update godoc
// @Summary Update a mentor
// @Tags Mentors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Mentor id"
// @Param payload body models.MentorInput true "Mentor payload"
// @Success 200 {object} response.Envelope
// @Router /admin/mentors/{id} [put]
func (h *MentorHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input models.MentorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid mentor payload"))
		return
	}

	mentor, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, mentor)
}

// Delete godoc
// @Summary Delete a mentor
// @Tags Mentors
// @Security BearerAuth
// @Param id path int true "Mentor id"
// @Success 204
// @Router /admin/mentors/{id} [delete]
func (h *MentorHandler) Delete(c *gin.Context) {
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
