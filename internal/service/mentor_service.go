package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/pmory/pmory-api/internal/models"
	appErrors "github.com/pmory/pmory-api/pkg/errors"
)

type mentorStore interface {
	Mentors() []models.Mentor
	SaveMentors(ctx context.Context, mentors []models.Mentor) error
}

// MentorService manages the mentorship directory.
type MentorService struct {
	store     mentorStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMentorService constructs a MentorService instance.
func NewMentorService(store mentorStore, validate *validator.Validate, logger *zap.Logger) *MentorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}

	svc := &MentorService{store: store, validator: validate, logger: logger}
	svc.validator.RegisterValidation("mentortype", func(fl validator.FieldLevel) bool {
		switch models.MentorType(fl.Field().String()) {
		case models.MentorTypeAlumni, models.MentorTypeStudent, models.MentorTypeProfessor:
			return true
		default:
			return false
		}
	})
	return svc
}

// List returns the full directory, contact addresses included. Admin only.
func (s *MentorService) List(ctx context.Context) ([]models.Mentor, error) {
	return s.store.Mentors(), nil
}

// ListPublic returns the directory with contact addresses withheld.
func (s *MentorService) ListPublic(ctx context.Context) ([]models.PublicMentor, error) {
	mentors := s.store.Mentors()
	out := make([]models.PublicMentor, 0, len(mentors))
	for _, m := range mentors {
		out = append(out, m.Public())
	}
	return out, nil
}

// Get returns one mentor by id, contact address included.
func (s *MentorService) Get(ctx context.Context, id int) (*models.Mentor, error) {
	for _, m := range s.store.Mentors() {
		if m.ID == id {
			return &m, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "mentor not found")
}

// Create appends a mentor with a synthesized id: one greater than the
// current maximum, or 1 when the directory is empty.
func (s *MentorService) Create(ctx context.Context, input models.MentorInput) (*models.Mentor, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid mentor payload")
	}

	mentors := s.store.Mentors()
	mentor := mentorFromInput(nextID(mentorIDs(mentors)), input)

	mentors = append(mentors, mentor)
	if err := s.store.SaveMentors(ctx, mentors); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist mentors")
	}

	s.logger.Info("mentor created", zap.Int("id", mentor.ID), zap.String("name", mentor.Name))
	return &mentor, nil
}

// Update replaces the mentor record with the given id.
func (s *MentorService) Update(ctx context.Context, id int, input models.MentorInput) (*models.Mentor, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid mentor payload")
	}

	mentors := s.store.Mentors()
	for i, m := range mentors {
		if m.ID != id {
			continue
		}

		mentors[i] = mentorFromInput(id, input)
		if err := s.store.SaveMentors(ctx, mentors); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist mentors")
		}

		s.logger.Info("mentor updated", zap.Int("id", id))
		updated := mentors[i]
		return &updated, nil
	}

	return nil, appErrors.Clone(appErrors.ErrNotFound, "mentor not found")
}

// Delete removes the mentor with the given id.
func (s *MentorService) Delete(ctx context.Context, id int) error {
	mentors := s.store.Mentors()
	filtered := make([]models.Mentor, 0, len(mentors))
	for _, m := range mentors {
		if m.ID != id {
			filtered = append(filtered, m)
		}
	}

	if len(filtered) == len(mentors) {
		return appErrors.Clone(appErrors.ErrNotFound, "mentor not found")
	}

	if err := s.store.SaveMentors(ctx, filtered); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist mentors")
	}

	s.logger.Info("mentor deleted", zap.Int("id", id))
	return nil
}

// ContactLink prepares a mailto URL for reaching a mentor without ever
// exposing the mentor's address in listing responses.
func (s *MentorService) ContactLink(ctx context.Context, id int, req models.ContactRequest) (*models.ContactLink, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid contact payload")
	}

	mentor, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	subject := fmt.Sprintf("PMory Connection Request from %s", req.Name)
	body := fmt.Sprintf("Hi %s,\n\n%s\n\nBest regards,\n%s\n%s",
		mentor.Name, req.Message, req.Name, req.Email)

	mailto := fmt.Sprintf("mailto:%s?subject=%s&body=%s",
		mentor.Email, url.QueryEscape(subject), url.QueryEscape(body))

	return &models.ContactLink{
		MentorID:   mentor.ID,
		MentorName: mentor.Name,
		MailtoURL:  mailto,
	}, nil
}

func mentorFromInput(id int, input models.MentorInput) models.Mentor {
	image := input.Image
	if image == "" {
		image = models.DefaultMentorImage
	}

	expertise := input.Expertise
	if expertise == nil {
		expertise = []string{}
	}

	return models.Mentor{
		ID:           id,
		Name:         input.Name,
		Role:         input.Role,
		Company:      input.Company,
		Location:     input.Location,
		GradYear:     input.GradYear,
		Expertise:    expertise,
		Image:        image,
		Type:         input.Type,
		Email:        input.Email,
		Bio:          input.Bio,
		LinkedIn:     input.LinkedIn,
		Availability: input.Availability,
	}
}

func mentorIDs(mentors []models.Mentor) []int {
	ids := make([]int, 0, len(mentors))
	for _, m := range mentors {
		ids = append(ids, m.ID)
	}
	return ids
}

// nextID synthesizes the next record id: max+1, or 1 for an empty
// collection.
func nextID(ids []int) int {
	max := 0
	for _, id := range ids {
		if id > max {
			max = id
		}
	}
	return max + 1
}
