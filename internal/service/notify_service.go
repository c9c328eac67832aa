package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pmory/pmory-api/internal/mailer"
	"github.com/pmory/pmory-api/internal/models"
	"github.com/pmory/pmory-api/pkg/config"
	"github.com/pmory/pmory-api/pkg/jobs"
)

type notifyStore interface {
	Subscribers() []string
	Settings() models.Settings
}

// NotifyService fans committed job changes out to subscribers through a
// single-worker queue, so alerts dispatch in the order the mutations
// committed. Sends within one alert run sequentially; a failed send is
// logged and the rest of the roster still gets its copy.
type NotifyService struct {
	store   notifyStore
	sender  mailer.Sender
	queue   *jobs.Queue
	logger  *zap.Logger
	mail    config.MailConfig
	metrics *MetricsService
}

// NewNotifyService constructs the dispatcher. Call Start before enqueuing.
func NewNotifyService(store notifyStore, sender mailer.Sender, mail config.MailConfig, notify config.NotifyConfig, metrics *MetricsService, logger *zap.Logger) *NotifyService {
	if logger == nil {
		logger = zap.NewNop()
	}

	svc := &NotifyService{
		store:   store,
		sender:  sender,
		logger:  logger,
		mail:    mail,
		metrics: metrics,
	}

	svc.queue = jobs.NewQueue("job-alerts", svc.handle, jobs.QueueConfig{
		Workers:    1,
		BufferSize: notify.BufferSize,
		MaxRetries: notify.MaxRetries,
		RetryDelay: notify.RetryDelay,
		Logger:     logger,
	})

	return svc
}

// Start launches the dispatch worker.
func (s *NotifyService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop halts the worker. Alerts still buffered are dropped; delivery is
// best-effort.
func (s *NotifyService) Stop() {
	s.queue.Stop()
}

// Notify snapshots the current roster and queues one alert. The job and
// recipient list are captured here so edits made while the alert waits in
// the queue don't change what gets sent.
func (s *NotifyService) Notify(job models.Job, kind models.NotificationKind) {
	recipients := s.store.Subscribers()
	if len(recipients) == 0 {
		return
	}

	notification := models.JobNotification{Kind: kind, Job: job, Recipients: recipients}
	err := s.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    string(kind),
		Payload: notification,
	})
	if err != nil {
		s.logger.Error("failed to queue job alert",
			zap.String("kind", string(kind)), zap.Int("job_id", job.ID), zap.Error(err))
	}
}

func (s *NotifyService) handle(ctx context.Context, queued jobs.Job) error {
	notification, ok := queued.Payload.(models.JobNotification)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", queued.Payload)
	}

	subject, message := buildAlert(notification.Job, notification.Kind)
	settings := s.store.Settings().EmailJS

	serviceID := settings.ServiceID
	if serviceID == "" {
		serviceID = s.mail.ServiceID
	}
	publicKey := settings.PublicKey
	if publicKey == "" {
		publicKey = s.mail.PublicKey
	}
	templateID := settings.TemplateIDs.JobAlert
	if templateID == "" {
		templateID = s.mail.JobAlertTemplate
	}

	sent := 0
	for _, email := range notification.Recipients {
		err := s.sender.Send(ctx, mailer.SendRequest{
			ServiceID:  serviceID,
			TemplateID: templateID,
			PublicKey:  publicKey,
			Params: map[string]string{
				"to_email":  email,
				"subject":   subject,
				"message":   message,
				"job_title": notification.Job.Title,
				"company":   notification.Job.Company,
			},
		})
		s.metrics.RecordAlertSend(string(notification.Kind), err == nil)
		if err != nil {
			s.logger.Warn("job alert send failed",
				zap.String("to", email), zap.String("kind", string(notification.Kind)), zap.Error(err))
			continue
		}
		sent++
	}

	s.logger.Info("job alert dispatched",
		zap.String("kind", string(notification.Kind)),
		zap.Int("job_id", notification.Job.ID),
		zap.Int("sent", sent),
		zap.Int("recipients", len(notification.Recipients)))

	return nil
}

// buildAlert renders the per-kind subject and body templates.
func buildAlert(job models.Job, kind models.NotificationKind) (subject, message string) {
	deadline := job.Deadline.String()

	switch kind {
	case models.NotificationNew:
		subject = fmt.Sprintf("New PM Job Alert: %s at %s", job.Title, job.Company)
		message = fmt.Sprintf(
			"A new Product Manager position has been posted!\n\n%s at %s\nLocation: %s\nDeadline: %s\n\n%s\n\nApply now: %s",
			job.Title, job.Company, job.Location, deadline, job.Description, job.ApplicationLink)
	case models.NotificationStatusChange:
		subject = fmt.Sprintf("Job Status Update: %s at %s", job.Title, job.Company)
		message = fmt.Sprintf(
			"The status for %s at %s has been updated to: %s\n\nDeadline: %s\n\nApply now: %s",
			job.Title, job.Company, job.Status, deadline, job.ApplicationLink)
	case models.NotificationUpdated:
		subject = fmt.Sprintf("Job Updated: %s at %s", job.Title, job.Company)
		message = fmt.Sprintf(
			"The job posting for %s at %s has been updated.\n\nCheck out the latest details and apply: %s",
			job.Title, job.Company, job.ApplicationLink)
	}

	return subject, message
}
