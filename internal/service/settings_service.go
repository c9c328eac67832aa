package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/pmory/pmory-api/internal/models"
	appErrors "github.com/pmory/pmory-api/pkg/errors"
)

type settingsStore interface {
	Settings() models.Settings
	SaveSettings(ctx context.Context, settings models.Settings) error
}

// SettingsService manages the external link map. The key set is fixed:
// values can be repointed, keys never added or removed.
type SettingsService struct {
	store     settingsStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSettingsService constructs a SettingsService instance.
func NewSettingsService(store settingsStore, validate *validator.Validate, logger *zap.Logger) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &SettingsService{store: store, validator: validate, logger: logger}
}

// Links returns the external link map served to the public site.
func (s *SettingsService) Links(ctx context.Context) (map[string]string, error) {
	return s.store.Settings().ExternalLinks, nil
}

// Get returns the full settings value, send credentials included. Admin
// only.
func (s *SettingsService) Get(ctx context.Context) (*models.Settings, error) {
	settings := s.store.Settings()
	return &settings, nil
}

// UpdateLinks repoints existing link keys. Unknown keys are rejected with
// the allowed set named in the error.
func (s *SettingsService) UpdateLinks(ctx context.Context, req models.LinkUpdateRequest) (map[string]string, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid links payload")
	}

	settings := s.store.Settings()

	for key, value := range req.Links {
		if _, ok := settings.ExternalLinks[key]; !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("unknown link key %q, allowed: %s", key, strings.Join(allowedKeys(settings.ExternalLinks), ", ")))
		}
		if err := s.validator.Var(value, "required,url|startswith=mailto:"); err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("link %q must be a URL or mailto address", key))
		}
	}

	for key, value := range req.Links {
		settings.ExternalLinks[key] = value
	}

	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist settings")
	}

	s.logger.Info("external links updated", zap.Int("changed", len(req.Links)))
	return settings.ExternalLinks, nil
}

func allowedKeys(links map[string]string) []string {
	keys := make([]string, 0, len(links))
	for key := range links {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
