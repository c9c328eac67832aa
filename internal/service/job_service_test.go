package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pmory/pmory-api/internal/models"
	appErrors "github.com/pmory/pmory-api/pkg/errors"
)

func newJobService(store *stubContentStore, notifier *stubNotifier) *JobService {
	return NewJobService(store, notifier, validator.New(), zap.NewNop())
}

func validJobInput() models.JobInput {
	return models.JobInput{
		Title:           "APM Intern",
		Company:         "Acme",
		Location:        "Atlanta, GA",
		Type:            models.JobTypeInternship,
		Deadline:        models.Today().AddDays(10),
		Status:          models.JobStatusOpen,
		Description:     "Summer internship",
		Requirements:    "Bachelor's degree\n\nCuriosity",
		ApplicationLink: "https://acme.example.com/apply",
	}
}

func TestJobCreateSynthesizesNextID(t *testing.T) {
	store := &stubContentStore{jobs: []models.Job{{ID: 3}, {ID: 7}}, subscribers: []string{"a@x.com"}}
	notifier := &stubNotifier{}
	svc := newJobService(store, notifier)

	job, err := svc.Create(context.Background(), validJobInput())
	require.NoError(t, err)
	assert.Equal(t, 8, job.ID)

	store2 := &stubContentStore{}
	job2, err := newJobService(store2, nil).Create(context.Background(), validJobInput())
	require.NoError(t, err)
	assert.Equal(t, 1, job2.ID, "empty collection starts at 1")
}

func TestJobCreateNotifiesOnceWithKindNew(t *testing.T) {
	store := &stubContentStore{subscribers: []string{"sub@x.com"}}
	notifier := &stubNotifier{}
	svc := newJobService(store, notifier)

	job, err := svc.Create(context.Background(), validJobInput())
	require.NoError(t, err)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, models.NotificationNew, notifier.calls[0].kind)
	assert.Equal(t, job.ID, notifier.calls[0].job.ID)
}

func TestJobCreateSkipsNotifyWithoutSubscribers(t *testing.T) {
	store := &stubContentStore{}
	notifier := &stubNotifier{}
	svc := newJobService(store, notifier)

	_, err := svc.Create(context.Background(), validJobInput())
	require.NoError(t, err)
	assert.Empty(t, notifier.calls)
}

func TestJobUpdateNotifiesWithKindUpdated(t *testing.T) {
	store := &stubContentStore{
		jobs:        []models.Job{{ID: 4, Title: "Old", Status: models.JobStatusOpen}},
		subscribers: []string{"sub@x.com"},
	}
	notifier := &stubNotifier{}
	svc := newJobService(store, notifier)

	updated, err := svc.Update(context.Background(), 4, validJobInput())
	require.NoError(t, err)
	assert.Equal(t, "APM Intern", updated.Title)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, models.NotificationUpdated, notifier.calls[0].kind)
}

func TestJobSetStatusUnknownIDLeavesCollectionUntouched(t *testing.T) {
	store := &stubContentStore{
		jobs:        []models.Job{{ID: 1, Status: models.JobStatusOpen}},
		subscribers: []string{"sub@x.com"},
	}
	notifier := &stubNotifier{}
	svc := newJobService(store, notifier)

	_, err := svc.SetStatus(context.Background(), 3, models.JobStatusUpdate{Status: models.JobStatusClosed})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	assert.Equal(t, 0, store.jobSaves, "collection must not be re-persisted")
	assert.Empty(t, notifier.calls, "no notification may fire")
	assert.Equal(t, models.JobStatusOpen, store.jobs[0].Status)
}

func TestJobSetStatusNotifiesStatusChange(t *testing.T) {
	store := &stubContentStore{
		jobs:        []models.Job{{ID: 2, Status: models.JobStatusOpen}},
		subscribers: []string{"sub@x.com"},
	}
	notifier := &stubNotifier{}
	svc := newJobService(store, notifier)

	job, err := svc.SetStatus(context.Background(), 2, models.JobStatusUpdate{Status: models.JobStatusPaused})
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusPaused, job.Status)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, models.NotificationStatusChange, notifier.calls[0].kind)
	assert.Equal(t, models.JobStatusPaused, notifier.calls[0].job.Status)
}

func TestJobNewDraftDefaults(t *testing.T) {
	store := &stubContentStore{jobs: []models.Job{{ID: 5}}}
	svc := newJobService(store, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC) }

	draft, err := svc.NewDraft(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 6, draft.ID)
	assert.Equal(t, models.JobTypeEntryLevel, draft.Type)
	assert.Equal(t, models.JobStatusOpen, draft.Status)
	assert.Equal(t, "2026-03-01", draft.Posted.String())
	assert.Equal(t, "2026-03-31", draft.Deadline.String())
	assert.Empty(t, draft.Requirements)

	assert.Equal(t, 0, store.jobSaves, "draft must not touch the committed collection")
}

func TestJobDeleteUnknownID(t *testing.T) {
	store := &stubContentStore{jobs: []models.Job{{ID: 1}}}
	svc := newJobService(store, nil)

	err := svc.Delete(context.Background(), 9)
	require.Error(t, err)
	assert.Len(t, store.jobs, 1)
}

func TestDeadlineStatusClassification(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		deadline models.Date
		state    models.DeadlineState
		days     int
	}{
		{"yesterday is expired", models.NewDate(2026, 5, 9), models.DeadlineExpired, -1},
		{"today is urgent", models.NewDate(2026, 5, 10), models.DeadlineUrgent, 0},
		{"seven days out is urgent", models.NewDate(2026, 5, 17), models.DeadlineUrgent, 7},
		{"eight days out is active", models.NewDate(2026, 5, 18), models.DeadlineActive, 8},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			info := DeadlineStatus(now, tc.deadline)
			assert.Equal(t, tc.state, info.State)
			assert.Equal(t, tc.days, info.DaysLeft)
		})
	}
}

func TestSplitRequirementsDropsBlankLines(t *testing.T) {
	got := SplitRequirements("Bachelor's degree\r\n\r\nStrong analytical skills\n   \nLeadership experience\n")
	assert.Equal(t, []string{"Bachelor's degree", "Strong analytical skills", "Leadership experience"}, got)

	assert.Empty(t, SplitRequirements(""))
	assert.Empty(t, SplitRequirements("\n\n"))
}

func TestJobListPublicDerivesDeadlineInfo(t *testing.T) {
	store := &stubContentStore{jobs: []models.Job{
		{ID: 1, Deadline: models.NewDate(2026, 5, 12), Status: models.JobStatusOpen},
	}}
	svc := newJobService(store, nil)
	svc.now = func() time.Time { return time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC) }

	views, err := svc.ListPublic(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, models.DeadlineUrgent, views[0].DeadlineInfo.State)
	assert.Equal(t, 2, views[0].DeadlineInfo.DaysLeft)
	// Status is untouched by the deadline.
	assert.Equal(t, models.JobStatusOpen, views[0].Status)
}
