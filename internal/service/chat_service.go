package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/pmory/pmory-api/internal/chat"
	"github.com/pmory/pmory-api/internal/models"
	appErrors "github.com/pmory/pmory-api/pkg/errors"
)

// ChatService proxies visitor questions to the external assistant.
type ChatService struct {
	client    chat.Asker
	validator *validator.Validate
	logger    *zap.Logger
}

// NewChatService constructs a ChatService instance.
func NewChatService(client chat.Asker, validate *validator.Validate, logger *zap.Logger) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}

	svc := &ChatService{client: client, validator: validate, logger: logger}
	svc.validator.RegisterValidation("chatmode", func(fl validator.FieldLevel) bool {
		switch models.ChatMode(fl.Field().String()) {
		case models.ChatModeGeneral, models.ChatModeCareer, models.ChatModeSkills, models.ChatModeJobs:
			return true
		default:
			return false
		}
	})
	return svc
}

// Ask forwards one question. A missing endpoint comes back as an inline
// warning in the response rather than a failed request.
func (s *ChatService) Ask(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid chat payload")
	}

	mode := req.Mode
	if mode == "" {
		mode = models.ChatModeGeneral
	}

	answer, err := s.client.Ask(ctx, req.Message, mode)
	if err != nil {
		if errors.Is(err, appErrors.ErrNotConfigured) {
			s.logger.Warn("chat endpoint not configured")
			return &models.ChatResponse{
				Mode:    mode,
				Warning: "The chat assistant is not configured yet. Please check back later.",
			}, nil
		}
		s.logger.Error("chat request failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "chat request failed")
	}

	return &models.ChatResponse{Answer: answer, Mode: mode}, nil
}
