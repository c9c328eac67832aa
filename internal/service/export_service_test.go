package service

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pmory/pmory-api/internal/models"
	"github.com/pmory/pmory-api/pkg/config"
	"github.com/pmory/pmory-api/pkg/storage"
)

func newExportService(t *testing.T, store *stubContentStore) *ExportService {
	t.Helper()
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)

	cfg := config.ExportsConfig{SignedURLTTL: time.Hour, CleanupInterval: time.Hour}
	return NewExportService(store, files, signer, validator.New(), zap.NewNop(), cfg)
}

func exportFixtureStore() *stubContentStore {
	return &stubContentStore{
		mentors: []models.Mentor{{ID: 1, Name: "Jordan Lee", Email: "j@x.com", Type: models.MentorTypeAlumni}},
		jobs: []models.Job{{
			ID:       4,
			Title:    "APM Intern",
			Company:  "Acme",
			Type:     models.JobTypeInternship,
			Posted:   models.NewDate(2026, 8, 1),
			Deadline: models.NewDate(2026, 9, 1),
			Status:   models.JobStatusOpen,
		}},
		settings:    models.Settings{ExternalLinks: map[string]string{"linkedin": "https://x"}},
		subscribers: []string{"sub@x.com"},
	}
}

func TestSnapshotBundlesAllCollections(t *testing.T) {
	svc := newExportService(t, exportFixtureStore())
	svc.now = func() time.Time { return time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC) }

	snapshot, filename, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "pmory-data-2026-08-31.json", filename)
	assert.Len(t, snapshot.Mentors, 1)
	assert.Len(t, snapshot.Jobs, 1)
	assert.Len(t, snapshot.Subscribers, 1)
	assert.False(t, snapshot.ExportDate.IsZero())
}

func TestSerializeForPromotionRoundTrips(t *testing.T) {
	store := exportFixtureStore()
	svc := newExportService(t, store)

	promo, err := svc.SerializeForPromotion(context.Background(), "jobs")
	require.NoError(t, err)
	assert.Equal(t, "internal/store/defaults/jobs.json", promo.TargetPath)

	var parsed []models.Job
	require.NoError(t, json.Unmarshal([]byte(promo.JSON), &parsed))
	assert.Equal(t, store.jobs, parsed, "promotion text must round-trip to the committed collection")
}

func TestSerializeForPromotionRejectsUnknownCollection(t *testing.T) {
	svc := newExportService(t, exportFixtureStore())

	_, err := svc.SerializeForPromotion(context.Background(), "subscribers")
	require.Error(t, err)
}

func TestGenerateReportCSVDownloadRoundTrip(t *testing.T) {
	svc := newExportService(t, exportFixtureStore())
	ctx := context.Background()

	resp, err := svc.GenerateReport(ctx, models.ReportRequest{Dataset: "jobs", Format: models.ReportFormatCSV})
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(resp.FileName, ".csv"))
	require.True(t, strings.HasPrefix(resp.DownloadURL, "/export/"))

	token := strings.TrimPrefix(resp.DownloadURL, "/export/")
	file, name, err := svc.OpenDownload(ctx, token)
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t, resp.FileName, name)
	content, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Contains(t, string(content), "APM Intern")
	assert.Contains(t, string(content), "Acme")
}

func TestGenerateReportPDF(t *testing.T) {
	svc := newExportService(t, exportFixtureStore())

	resp, err := svc.GenerateReport(context.Background(), models.ReportRequest{Dataset: "subscribers", Format: models.ReportFormatPDF})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(resp.FileName, ".pdf"))
}

func TestGenerateReportRejectsUnknownDataset(t *testing.T) {
	svc := newExportService(t, exportFixtureStore())

	_, err := svc.GenerateReport(context.Background(), models.ReportRequest{Dataset: "mentors", Format: models.ReportFormatCSV})
	require.Error(t, err)
}

func TestOpenDownloadRejectsTamperedToken(t *testing.T) {
	svc := newExportService(t, exportFixtureStore())

	_, _, err := svc.OpenDownload(context.Background(), "forged.token.value.sig")
	require.Error(t, err)
}
