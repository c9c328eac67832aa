package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pmory/pmory-api/internal/models"
	appErrors "github.com/pmory/pmory-api/pkg/errors"
	"github.com/pmory/pmory-api/pkg/response"
)

type chatService interface {
	Ask(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
}

// ChatHandler exposes the assistant proxy endpoint.
type ChatHandler struct {
	service chatService
}

// NewChatHandler builds a new handler.
func NewChatHandler(service chatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// Ask godoc
// @Summary Ask the assistant a question
// @Tags Chat
// @Accept json
// @Produce json
// @Param payload body models.ChatRequest true "Chat payload"
// @Success 200 {object} response.Envelope
// @Router /chat [post]
func (h *ChatHandler) Ask(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid chat payload"))
		return
	}

	resp, err := h.service.Ask(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}
