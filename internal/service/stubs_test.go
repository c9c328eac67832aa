package service

import (
	"context"
	"errors"
	"sync"

	"github.com/pmory/pmory-api/internal/mailer"
	"github.com/pmory/pmory-api/internal/models"
)

// stubContentStore is an in-memory stand-in for the content store shared
// by the service tests.
type stubContentStore struct {
	mentors     []models.Mentor
	jobs        []models.Job
	settings    models.Settings
	subscribers []string
	userEmail   string

	saveErr        error
	mentorSaves    int
	jobSaves       int
	settingsSaves  int
	subscriberSave int
}

func (s *stubContentStore) Mentors() []models.Mentor {
	out := make([]models.Mentor, len(s.mentors))
	copy(out, s.mentors)
	return out
}

func (s *stubContentStore) SaveMentors(_ context.Context, mentors []models.Mentor) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.mentors = mentors
	s.mentorSaves++
	return nil
}

func (s *stubContentStore) Jobs() []models.Job {
	out := make([]models.Job, len(s.jobs))
	copy(out, s.jobs)
	return out
}

func (s *stubContentStore) SaveJobs(_ context.Context, jobs []models.Job) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.jobs = jobs
	s.jobSaves++
	return nil
}

func (s *stubContentStore) Settings() models.Settings {
	out := s.settings
	out.ExternalLinks = make(map[string]string, len(s.settings.ExternalLinks))
	for k, v := range s.settings.ExternalLinks {
		out.ExternalLinks[k] = v
	}
	return out
}

func (s *stubContentStore) SaveSettings(_ context.Context, settings models.Settings) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.settings = settings
	s.settingsSaves++
	return nil
}

func (s *stubContentStore) Subscribers() []string {
	out := make([]string, len(s.subscribers))
	copy(out, s.subscribers)
	return out
}

func (s *stubContentStore) SaveSubscribers(_ context.Context, subscribers []string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.subscribers = subscribers
	s.subscriberSave++
	return nil
}

func (s *stubContentStore) SaveUserEmail(_ context.Context, email string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.userEmail = email
	return nil
}

// stubSender records sends and can be told to fail. Safe for use from the
// dispatch worker goroutine.
type stubSender struct {
	mu      sync.Mutex
	sent    []mailer.SendRequest
	failAll bool
	failTo  map[string]bool
}

func (s *stubSender) Send(_ context.Context, req mailer.SendRequest) error {
	if s.failAll || s.failTo[req.Params["to_email"]] {
		return errors.New("send rejected")
	}
	s.mu.Lock()
	s.sent = append(s.sent, req)
	s.mu.Unlock()
	return nil
}

func (s *stubSender) sentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

// stubNotifier records notifications triggered by the job workflow.
type stubNotifier struct {
	calls []struct {
		job  models.Job
		kind models.NotificationKind
	}
}

func (s *stubNotifier) Notify(job models.Job, kind models.NotificationKind) {
	s.calls = append(s.calls, struct {
		job  models.Job
		kind models.NotificationKind
	}{job, kind})
}
