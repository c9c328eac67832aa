package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pmory/pmory-api/internal/kv"
	"github.com/pmory/pmory-api/internal/models"
)

type recordingObserver struct {
	collections []string
}

func (o *recordingObserver) ObservePersist(collection string, duration time.Duration) {
	o.collections = append(o.collections, collection)
}

func newTestStore(t *testing.T) (*ContentStore, kv.Store) {
	t.Helper()
	fileKV, err := kv.NewFileStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { fileKV.Close() })

	return New(fileKV, nil, zap.NewNop()), fileKV
}

func TestLoadFallsBackToDefaultsWhenAbsent(t *testing.T) {
	cs, _ := newTestStore(t)

	report, err := cs.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, LoadStateAbsent, report[KeyMentors])
	assert.Equal(t, LoadStateAbsent, report[KeyJobs])
	assert.Equal(t, LoadStateAbsent, report[KeySettings])

	assert.NotEmpty(t, cs.Mentors())
	assert.NotEmpty(t, cs.Jobs())
	assert.NotEmpty(t, cs.Settings().ExternalLinks)
	assert.Empty(t, cs.Subscribers())
}

func TestLoadPrefersShadowCopy(t *testing.T) {
	cs, raw := newTestStore(t)
	ctx := context.Background()

	shadow := `[{"id":9,"name":"Shadow Mentor","role":"PM","type":"alumni","email":"s@x.com","expertise":[]}]`
	require.NoError(t, raw.Set(ctx, KeyMentors, []byte(shadow)))

	report, err := cs.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, LoadStateLoaded, report[KeyMentors])
	mentors := cs.Mentors()
	require.Len(t, mentors, 1)
	assert.Equal(t, 9, mentors[0].ID)
	assert.Equal(t, "Shadow Mentor", mentors[0].Name)
}

func TestLoadCorruptShadowFallsBackToDefaults(t *testing.T) {
	cs, raw := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, raw.Set(ctx, KeyMentors, []byte(`{definitely not json`)))

	report, err := cs.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, LoadStateCorrupt, report[KeyMentors])
	assert.NotEmpty(t, cs.Mentors(), "defaults must replace the corrupt shadow")
}

func TestSaveMentorsPersistsFullCollection(t *testing.T) {
	cs, raw := newTestStore(t)
	ctx := context.Background()
	_, err := cs.Load(ctx)
	require.NoError(t, err)

	mentors := []models.Mentor{{ID: 1, Name: "Only One", Type: models.MentorTypeStudent}}
	require.NoError(t, cs.SaveMentors(ctx, mentors))

	// A second store over the same substrate sees the saved collection.
	cs2 := New(raw, nil, zap.NewNop())
	_, err = cs2.Load(ctx)
	require.NoError(t, err)
	got := cs2.Mentors()
	require.Len(t, got, 1)
	assert.Equal(t, "Only One", got[0].Name)
}

func TestSaveObservesPersistDuration(t *testing.T) {
	fileKV, err := kv.NewFileStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { fileKV.Close() })

	observer := &recordingObserver{}
	cs := New(fileKV, observer, zap.NewNop())
	ctx := context.Background()
	_, err = cs.Load(ctx)
	require.NoError(t, err)

	require.NoError(t, cs.SaveJobs(ctx, cs.Jobs()))
	require.NoError(t, cs.SaveSubscribers(ctx, []string{"a@x.com"}))

	assert.Equal(t, []string{KeyJobs, KeySubscribers}, observer.collections)
}

func TestAccessorsReturnCopies(t *testing.T) {
	cs, _ := newTestStore(t)
	ctx := context.Background()
	_, err := cs.Load(ctx)
	require.NoError(t, err)

	mentors := cs.Mentors()
	mentors[0].Name = "mutated"
	assert.NotEqual(t, "mutated", cs.Mentors()[0].Name)

	links := cs.Settings()
	links.ExternalLinks["linkedin"] = "mutated"
	assert.NotEqual(t, "mutated", cs.Settings().ExternalLinks["linkedin"])
}

func TestUserEmailRoundTrip(t *testing.T) {
	cs, _ := newTestStore(t)
	ctx := context.Background()
	_, err := cs.Load(ctx)
	require.NoError(t, err)

	assert.Empty(t, cs.UserEmail())
	require.NoError(t, cs.SaveUserEmail(ctx, "a@x.com"))
	assert.Equal(t, "a@x.com", cs.UserEmail())
}
