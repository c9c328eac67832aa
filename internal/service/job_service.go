package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/pmory/pmory-api/internal/models"
	appErrors "github.com/pmory/pmory-api/pkg/errors"
)

type jobStore interface {
	Jobs() []models.Job
	SaveJobs(ctx context.Context, jobs []models.Job) error
	Subscribers() []string
}

// jobNotifier receives committed job changes for subscriber fan-out. The
// job is already persisted when Notify fires; delivery failures never roll
// the change back.
type jobNotifier interface {
	Notify(job models.Job, kind models.NotificationKind)
}

// JobService manages job postings and their workflow.
type JobService struct {
	store     jobStore
	notifier  jobNotifier
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewJobService constructs a JobService instance.
func NewJobService(store jobStore, notifier jobNotifier, validate *validator.Validate, logger *zap.Logger) *JobService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}

	svc := &JobService{
		store:     store,
		notifier:  notifier,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
	svc.validator.RegisterValidation("jobtype", func(fl validator.FieldLevel) bool {
		switch models.JobType(fl.Field().String()) {
		case models.JobTypeAPMProgram, models.JobTypeRPMProgram, models.JobTypeEntryLevel, models.JobTypeInternship:
			return true
		default:
			return false
		}
	})
	svc.validator.RegisterValidation("jobstatus", func(fl validator.FieldLevel) bool {
		switch models.JobStatus(fl.Field().String()) {
		case models.JobStatusOpen, models.JobStatusClosingSoon, models.JobStatusClosed, models.JobStatusPaused:
			return true
		default:
			return false
		}
	})
	return svc
}

// List returns the committed collection as-is. Admin only.
func (s *JobService) List(ctx context.Context) ([]models.Job, error) {
	return s.store.Jobs(), nil
}

// ListPublic returns postings annotated with their derived deadline info.
// The annotation is recomputed on every read and never stored.
func (s *JobService) ListPublic(ctx context.Context) ([]models.JobView, error) {
	jobs := s.store.Jobs()
	now := s.now()

	out := make([]models.JobView, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, models.JobView{Job: j, DeadlineInfo: DeadlineStatus(now, j.Deadline)})
	}
	return out, nil
}

// Get returns one posting by id.
func (s *JobService) Get(ctx context.Context, id int) (*models.Job, error) {
	for _, j := range s.store.Jobs() {
		if j.ID == id {
			return &j, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "job not found")
}

// NewDraft opens a prefilled draft: next id, Entry Level, Open, posted
// today, deadline in thirty days. The draft lives outside the committed
// collection until saved.
func (s *JobService) NewDraft(ctx context.Context) (*models.Job, error) {
	today := models.DateOf(s.now())
	draft := models.Job{
		ID:           nextID(jobIDs(s.store.Jobs())),
		Type:         models.JobTypeEntryLevel,
		Status:       models.JobStatusOpen,
		Posted:       today,
		Deadline:     today.AddDays(models.DraftDeadlineDays),
		Requirements: []string{},
	}
	return &draft, nil
}

// Create commits a new posting and notifies subscribers with kind "new".
func (s *JobService) Create(ctx context.Context, input models.JobInput) (*models.Job, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid job payload")
	}

	jobs := s.store.Jobs()
	job := s.jobFromInput(nextID(jobIDs(jobs)), input)

	jobs = append(jobs, job)
	if err := s.store.SaveJobs(ctx, jobs); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist jobs")
	}

	s.logger.Info("job created", zap.Int("id", job.ID), zap.String("title", job.Title))
	s.notifyIfSubscribed(job, models.NotificationNew)
	return &job, nil
}

// Update replaces the posting with the given id and notifies subscribers
// with kind "updated".
func (s *JobService) Update(ctx context.Context, id int, input models.JobInput) (*models.Job, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid job payload")
	}

	jobs := s.store.Jobs()
	for i, j := range jobs {
		if j.ID != id {
			continue
		}

		jobs[i] = s.jobFromInput(id, input)
		if err := s.store.SaveJobs(ctx, jobs); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist jobs")
		}

		s.logger.Info("job updated", zap.Int("id", id))
		updated := jobs[i]
		s.notifyIfSubscribed(updated, models.NotificationUpdated)
		return &updated, nil
	}

	return nil, appErrors.Clone(appErrors.ErrNotFound, "job not found")
}

// Delete removes the posting with the given id. No notification fires on
// delete.
func (s *JobService) Delete(ctx context.Context, id int) error {
	jobs := s.store.Jobs()
	filtered := make([]models.Job, 0, len(jobs))
	for _, j := range jobs {
		if j.ID != id {
			filtered = append(filtered, j)
		}
	}

	if len(filtered) == len(jobs) {
		return appErrors.Clone(appErrors.ErrNotFound, "job not found")
	}

	if err := s.store.SaveJobs(ctx, filtered); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist jobs")
	}

	s.logger.Info("job deleted", zap.Int("id", id))
	return nil
}

// SetStatus replaces only the status field and notifies subscribers with
// kind "status_change". An unknown id leaves the collection untouched and
// fires no notification.
func (s *JobService) SetStatus(ctx context.Context, id int, update models.JobStatusUpdate) (*models.Job, error) {
	if err := s.validator.Struct(update); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status payload")
	}

	jobs := s.store.Jobs()
	for i, j := range jobs {
		if j.ID != id {
			continue
		}

		jobs[i].Status = update.Status
		if err := s.store.SaveJobs(ctx, jobs); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist jobs")
		}

		s.logger.Info("job status changed",
			zap.Int("id", id), zap.String("status", string(update.Status)))
		updated := jobs[i]
		s.notifyIfSubscribed(updated, models.NotificationStatusChange)
		return &updated, nil
	}

	return nil, appErrors.Clone(appErrors.ErrNotFound, "job not found")
}

func (s *JobService) notifyIfSubscribed(job models.Job, kind models.NotificationKind) {
	if s.notifier == nil || len(s.store.Subscribers()) == 0 {
		return
	}
	s.notifier.Notify(job, kind)
}

func (s *JobService) jobFromInput(id int, input models.JobInput) models.Job {
	posted := input.Posted
	if posted.IsZero() {
		posted = models.DateOf(s.now())
	}

	return models.Job{
		ID:              id,
		Title:           input.Title,
		Company:         input.Company,
		Location:        input.Location,
		Type:            input.Type,
		Posted:          posted,
		Deadline:        input.Deadline,
		Status:          input.Status,
		Description:     input.Description,
		Requirements:    SplitRequirements(input.Requirements),
		ApplicationLink: input.ApplicationLink,
	}
}

func jobIDs(jobs []models.Job) []int {
	ids := make([]int, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	return ids
}

// SplitRequirements turns the free-text requirement editor contents into
// the stored list: split on line breaks, blank lines discarded. This is
// the only normalization applied to admin input.
func SplitRequirements(raw string) []string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// DeadlineStatus derives the urgency classification: days remaining is
// ceiling((deadline - today) in days); expired below zero, urgent through
// seven days, active beyond.
func DeadlineStatus(now time.Time, deadline models.Date) models.DeadlineInfo {
	days := deadline.DaysUntil(now)

	switch {
	case days < 0:
		return models.DeadlineInfo{State: models.DeadlineExpired, DaysLeft: days, Text: "Expired"}
	case days <= 7:
		return models.DeadlineInfo{State: models.DeadlineUrgent, DaysLeft: days, Text: fmt.Sprintf("%d days left", days)}
	default:
		return models.DeadlineInfo{State: models.DeadlineActive, DaysLeft: days, Text: fmt.Sprintf("%d days left", days)}
	}
}
