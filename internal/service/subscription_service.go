package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/pmory/pmory-api/internal/mailer"
	"github.com/pmory/pmory-api/internal/models"
	"github.com/pmory/pmory-api/pkg/config"
	appErrors "github.com/pmory/pmory-api/pkg/errors"
)

type subscriptionStore interface {
	Subscribers() []string
	SaveSubscribers(ctx context.Context, subscribers []string) error
	SaveUserEmail(ctx context.Context, email string) error
	Settings() models.Settings
}

// SubscriptionService manages the job-alert roster. Registration is gated
// on the welcome message actually going out: a failed welcome send leaves
// the roster untouched.
type SubscriptionService struct {
	store     subscriptionStore
	sender    mailer.Sender
	validator *validator.Validate
	logger    *zap.Logger
	mail      config.MailConfig
	metrics   *MetricsService
}

// NewSubscriptionService constructs a SubscriptionService instance.
func NewSubscriptionService(store subscriptionStore, sender mailer.Sender, mail config.MailConfig, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *SubscriptionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &SubscriptionService{store: store, sender: sender, validator: validate, logger: logger, mail: mail, metrics: metrics}
}

const welcomeMessage = `Thank you for subscribing to PMory job alerts!

You'll now receive weekly updates about:
- New APM and RPM program openings
- Entry-level PM positions
- Application deadlines and tips
- Exclusive opportunities for Emory students

We're excited to help you on your PM journey!

Best regards,
The PMory Team

---
To unsubscribe, simply reply to any of our emails with "UNSUBSCRIBE" in the subject line.`

// Subscribe sends the welcome message and, only on delivery success,
// registers the address. Re-subscribing an existing address succeeds
// without duplicating it.
func (s *SubscriptionService) Subscribe(ctx context.Context, req models.SubscribeRequest) (*models.SubscribeResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subscription payload")
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))

	settings := s.store.Settings().EmailJS
	serviceID := settings.ServiceID
	if serviceID == "" {
		serviceID = s.mail.ServiceID
	}
	publicKey := settings.PublicKey
	if publicKey == "" {
		publicKey = s.mail.PublicKey
	}
	templateID := settings.TemplateIDs.WelcomeJobAlert
	if templateID == "" {
		templateID = s.mail.WelcomeTemplate
	}

	err := s.sender.Send(ctx, mailer.SendRequest{
		ServiceID:  serviceID,
		TemplateID: templateID,
		PublicKey:  publicKey,
		Params: map[string]string{
			"to_email":  email,
			"from_name": s.mail.FromName,
			"subject":   "Welcome to PMory Job Alerts!",
			"message":   welcomeMessage,
		},
	})
	if err != nil {
		s.logger.Warn("welcome send failed, subscription not registered",
			zap.String("email", email), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrSendFailed.Code, appErrors.ErrSendFailed.Status, appErrors.ErrSendFailed.Message)
	}

	subscribers := s.store.Subscribers()
	already := contains(subscribers, email)
	if !already {
		subscribers = append(subscribers, email)
		if err := s.store.SaveSubscribers(ctx, subscribers); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist subscribers")
		}
		s.metrics.SetSubscriberCount(len(subscribers))
	}

	if err := s.store.SaveUserEmail(ctx, email); err != nil {
		s.logger.Warn("failed to record last-subscribed address", zap.Error(err))
	}

	s.logger.Info("subscriber registered",
		zap.String("email", maskEmail(email)), zap.Bool("already_subscribed", already))

	return &models.SubscribeResponse{
		Email:             email,
		Subscribed:        true,
		AlreadySubscribed: already,
	}, nil
}

// Status answers whether an address is on the roster.
func (s *SubscriptionService) Status(ctx context.Context, email string) (*models.SubscriptionStatus, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "email is required")
	}

	return &models.SubscriptionStatus{
		Email:      email,
		Subscribed: contains(s.store.Subscribers(), email),
	}, nil
}

// List returns the roster for admins, masked unless reveal is set.
func (s *SubscriptionService) List(ctx context.Context, reveal bool) (*models.SubscriberList, error) {
	subscribers := s.store.Subscribers()

	emails := make([]string, 0, len(subscribers))
	for _, email := range subscribers {
		if reveal {
			emails = append(emails, email)
		} else {
			emails = append(emails, maskEmail(email))
		}
	}

	return &models.SubscriberList{
		Total:    len(subscribers),
		Revealed: reveal,
		Emails:   emails,
	}, nil
}

func contains(list []string, target string) bool {
	for _, item := range list {
		if item == target {
			return true
		}
	}
	return false
}

// maskEmail keeps the first two characters of the local part and the full
// domain: "ab***@domain".
func maskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return "***"
	}

	local := email[:at]
	if len(local) > 2 {
		local = local[:2]
	}
	return local + "***" + email[at:]
}
