// Package store holds the active content collections in memory, shadowed
// into the kv substrate. On startup each collection is loaded from its
// shadow key; a missing or corrupt shadow falls back to the bundled
// defaults without failing the boot.
package store

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pmory/pmory-api/internal/kv"
	"github.com/pmory/pmory-api/internal/models"
)

type persistObserver interface {
	ObservePersist(collection string, duration time.Duration)
}

// Shadow keys, one per collection.
const (
	KeyMentors     = "pmory_mentors"
	KeyJobs        = "pmory_jobs"
	KeySettings    = "pmory_settings"
	KeySubscribers = "pmory_subscribers"
	KeyUserEmail   = "user_email"
)

//go:embed defaults/*.json
var defaultsFS embed.FS

// LoadState tags how a collection was resolved at load time.
type LoadState string

const (
	// LoadStateLoaded means the shadow copy was present and well-formed.
	LoadStateLoaded LoadState = "loaded"
	// LoadStateAbsent means no shadow existed; defaults are active.
	LoadStateAbsent LoadState = "absent"
	// LoadStateCorrupt means the shadow failed to parse; defaults are
	// active and the bad blob was left in place for inspection.
	LoadStateCorrupt LoadState = "corrupt"
)

// LoadReport maps each shadow key to how it resolved.
type LoadReport map[string]LoadState

// ContentStore is the single in-process owner of the collections. All
// reads hand out copies; all mutations re-persist the full collection.
type ContentStore struct {
	kv      kv.Store
	metrics persistObserver
	logger  *zap.Logger

	mu          sync.RWMutex
	mentors     []models.Mentor
	jobs        []models.Job
	settings    models.Settings
	subscribers []string
	userEmail   string
}

// New constructs an unloaded store. Call Load before serving. A nil
// metrics observer disables persist timing.
func New(store kv.Store, metrics persistObserver, logger *zap.Logger) *ContentStore {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ContentStore{kv: store, metrics: metrics, logger: logger}
}

// Load resolves every collection from its shadow, falling back to the
// bundled defaults per collection. Only infrastructure failures (a kv
// driver error other than not-found) abort the load; parse failures are
// logged and absorbed.
func (s *ContentStore) Load(ctx context.Context) (LoadReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := LoadReport{}

	var mentors []models.Mentor
	state, err := s.loadCollection(ctx, KeyMentors, "defaults/mentors.json", &mentors)
	if err != nil {
		return nil, err
	}
	s.mentors = mentors
	report[KeyMentors] = state

	var jobs []models.Job
	state, err = s.loadCollection(ctx, KeyJobs, "defaults/jobs.json", &jobs)
	if err != nil {
		return nil, err
	}
	s.jobs = jobs
	report[KeyJobs] = state

	var settings models.Settings
	state, err = s.loadCollection(ctx, KeySettings, "defaults/settings.json", &settings)
	if err != nil {
		return nil, err
	}
	s.settings = settings
	report[KeySettings] = state

	subscribers := []string{}
	state, err = s.loadOptional(ctx, KeySubscribers, &subscribers)
	if err != nil {
		return nil, err
	}
	s.subscribers = subscribers
	report[KeySubscribers] = state

	userEmail := ""
	state, err = s.loadOptional(ctx, KeyUserEmail, &userEmail)
	if err != nil {
		return nil, err
	}
	s.userEmail = userEmail
	report[KeyUserEmail] = state

	return report, nil
}

// loadCollection resolves a collection that has bundled defaults.
func (s *ContentStore) loadCollection(ctx context.Context, key, defaultsPath string, dst any) (LoadState, error) {
	raw, err := s.kv.Get(ctx, key)
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(raw, dst); jsonErr != nil {
			s.logger.Warn("shadow collection corrupt, using defaults",
				zap.String("key", key), zap.Error(jsonErr))
			if err := s.loadDefaults(defaultsPath, dst); err != nil {
				return "", err
			}
			return LoadStateCorrupt, nil
		}
		return LoadStateLoaded, nil
	case errors.Is(err, kv.ErrNotFound):
		if err := s.loadDefaults(defaultsPath, dst); err != nil {
			return "", err
		}
		return LoadStateAbsent, nil
	default:
		return "", fmt.Errorf("store: load %s: %w", key, err)
	}
}

// loadOptional resolves a collection with no bundled defaults: absent or
// corrupt means empty.
func (s *ContentStore) loadOptional(ctx context.Context, key string, dst any) (LoadState, error) {
	raw, err := s.kv.Get(ctx, key)
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(raw, dst); jsonErr != nil {
			s.logger.Warn("shadow collection corrupt, starting empty",
				zap.String("key", key), zap.Error(jsonErr))
			return LoadStateCorrupt, nil
		}
		return LoadStateLoaded, nil
	case errors.Is(err, kv.ErrNotFound):
		return LoadStateAbsent, nil
	default:
		return "", fmt.Errorf("store: load %s: %w", key, err)
	}
}

func (s *ContentStore) loadDefaults(path string, dst any) error {
	raw, err := defaultsFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("store: read bundled defaults %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("store: parse bundled defaults %s: %w", path, err)
	}

	return nil
}

func (s *ContentStore) persist(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}

	start := time.Now()
	if err := s.kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("store: persist %s: %w", key, err)
	}
	if s.metrics != nil {
		s.metrics.ObservePersist(key, time.Since(start))
	}

	return nil
}

// Mentors returns a copy of the mentor collection.
func (s *ContentStore) Mentors() []models.Mentor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Mentor, len(s.mentors))
	copy(out, s.mentors)
	return out
}

// SaveMentors replaces and re-persists the whole mentor collection.
func (s *ContentStore) SaveMentors(ctx context.Context, mentors []models.Mentor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, KeyMentors, mentors); err != nil {
		return err
	}
	s.mentors = mentors
	return nil
}

// Jobs returns a copy of the job collection.
func (s *ContentStore) Jobs() []models.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Job, len(s.jobs))
	copy(out, s.jobs)
	return out
}

// SaveJobs replaces and re-persists the whole job collection.
func (s *ContentStore) SaveJobs(ctx context.Context, jobs []models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, KeyJobs, jobs); err != nil {
		return err
	}
	s.jobs = jobs
	return nil
}

// Settings returns the current settings value.
func (s *ContentStore) Settings() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.settings
	out.ExternalLinks = make(map[string]string, len(s.settings.ExternalLinks))
	for k, v := range s.settings.ExternalLinks {
		out.ExternalLinks[k] = v
	}
	return out
}

// SaveSettings replaces and re-persists the settings value.
func (s *ContentStore) SaveSettings(ctx context.Context, settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, KeySettings, settings); err != nil {
		return err
	}
	s.settings = settings
	return nil
}

// Subscribers returns a copy of the subscriber roster.
func (s *ContentStore) Subscribers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.subscribers))
	copy(out, s.subscribers)
	return out
}

// SaveSubscribers replaces and re-persists the subscriber roster.
func (s *ContentStore) SaveSubscribers(ctx context.Context, subscribers []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, KeySubscribers, subscribers); err != nil {
		return err
	}
	s.subscribers = subscribers
	return nil
}

// UserEmail returns the last-subscribed address, if any.
func (s *ContentStore) UserEmail() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userEmail
}

// SaveUserEmail records the last-subscribed address.
func (s *ContentStore) SaveUserEmail(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, KeyUserEmail, email); err != nil {
		return err
	}
	s.userEmail = email
	return nil
}
