package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pmory/pmory-api/internal/models"
	appErrors "github.com/pmory/pmory-api/pkg/errors"
	"github.com/pmory/pmory-api/pkg/response"
)

type subscriptionService interface {
	Subscribe(ctx context.Context, req models.SubscribeRequest) (*models.SubscribeResponse, error)
	Status(ctx context.Context, email string) (*models.SubscriptionStatus, error)
	List(ctx context.Context, reveal bool) (*models.SubscriberList, error)
}

// SubscriptionHandler exposes the job-alert roster endpoints.
type SubscriptionHandler struct {
	service subscriptionService
}

// NewSubscriptionHandler builds a new handler.
func NewSubscriptionHandler(service subscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

// Subscribe godoc
// @Summary Subscribe to job alerts
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param payload body models.SubscribeRequest true "Subscription payload"
// @Success 201 {object} response.Envelope
// @Router /subscriptions [post]
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req models.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid subscription payload"))
		return
	}

	resp, err := h.service.Subscribe(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	if resp.AlreadySubscribed {
		response.JSON(c, http.StatusOK, resp)
		return
	}
	response.Created(c, resp)
}

// Status godoc
// @Summary Check whether an address is subscribed
// @Tags Subscriptions
// @Produce json
// @Param email query string true "Address to check"
// @Success 200 {object} response.Envelope
// @Router /subscriptions/status [get]
func (h *SubscriptionHandler) Status(c *gin.Context) {
	status, err := h.service.Status(c.Request.Context(), c.Query("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status)
}

// List godoc
// @Summary List the subscriber roster
// @Tags Subscriptions
// @Produce json
// @Security BearerAuth
// @Param reveal query bool false "Show unmasked addresses"
// @Success 200 {object} response.Envelope
// @Router /admin/subscribers [get]
func (h *SubscriptionHandler) List(c *gin.Context) {
	reveal := c.Query("reveal") == "true"

	list, err := h.service.List(c.Request.Context(), reveal)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}
