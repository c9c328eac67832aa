package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pmory/pmory-api/internal/models"
	"github.com/pmory/pmory-api/pkg/config"
	appErrors "github.com/pmory/pmory-api/pkg/errors"
	"github.com/pmory/pmory-api/pkg/export"
	"github.com/pmory/pmory-api/pkg/storage"
)

type exportStore interface {
	Mentors() []models.Mentor
	Jobs() []models.Job
	Settings() models.Settings
	Subscribers() []string
}

// Bundled defaults paths, where promoted collections get pasted to make
// admin edits permanent.
var promotionTargets = map[string]string{
	"mentors":  "internal/store/defaults/mentors.json",
	"jobs":     "internal/store/defaults/jobs.json",
	"settings": "internal/store/defaults/settings.json",
}

// ExportService produces downloads: the full-site JSON snapshot, the
// per-collection promotion text, and rendered CSV/PDF reports served
// through signed URLs.
type ExportService struct {
	store     exportStore
	files     *storage.LocalStorage
	signer    *storage.SignedURLSigner
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	validator *validator.Validate
	logger    *zap.Logger
	cfg       config.ExportsConfig
	now       func() time.Time
}

// NewExportService constructs an ExportService instance.
func NewExportService(store exportStore, files *storage.LocalStorage, signer *storage.SignedURLSigner, validate *validator.Validate, logger *zap.Logger, cfg config.ExportsConfig) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}

	return &ExportService{
		store:     store,
		files:     files,
		signer:    signer,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Snapshot bundles every collection with a timestamp. The suggested
// download filename is date-stamped.
func (s *ExportService) Snapshot(ctx context.Context) (*models.Snapshot, string, error) {
	now := s.now().UTC()
	snapshot := &models.Snapshot{
		Mentors:     s.store.Mentors(),
		Jobs:        s.store.Jobs(),
		Settings:    s.store.Settings(),
		Subscribers: s.store.Subscribers(),
		ExportDate:  now,
	}

	filename := fmt.Sprintf("pmory-data-%s.json", now.Format("2006-01-02"))
	return snapshot, filename, nil
}

// SerializeForPromotion renders one collection as pretty-printed JSON,
// paired with the bundled defaults file it belongs in. Pasting the text
// there is the only way admin edits outlive the shadow store.
func (s *ExportService) SerializeForPromotion(ctx context.Context, collection string) (*models.PromotionExport, error) {
	target, ok := promotionTargets[collection]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation,
			"unknown collection, allowed: mentors, jobs, settings")
	}

	var value any
	switch collection {
	case "mentors":
		value = s.store.Mentors()
	case "jobs":
		value = s.store.Jobs()
	case "settings":
		value = s.store.Settings()
	}

	pretty, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to serialize collection")
	}

	return &models.PromotionExport{
		Collection: collection,
		TargetPath: target,
		JSON:       string(pretty),
	}, nil
}

// GenerateReport renders a jobs digest or subscriber roster to the
// exports dir and returns a signed download URL.
func (s *ExportService) GenerateReport(ctx context.Context, req models.ReportRequest) (*models.ReportResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid report payload")
	}

	var dataset export.Dataset
	switch req.Dataset {
	case "jobs":
		dataset = s.jobsDataset()
	case "subscribers":
		dataset = s.subscribersDataset()
	}

	var (
		rendered []byte
		err      error
	)
	switch req.Format {
	case models.ReportFormatCSV:
		rendered, err = s.csv.Render(dataset)
	case models.ReportFormatPDF:
		rendered, err = s.pdf.Render(dataset, fmt.Sprintf("PMory %s report", req.Dataset))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
	}

	exportID := uuid.NewString()
	filename := fmt.Sprintf("%s-%s-%s.%s",
		req.Dataset, s.now().UTC().Format("2006-01-02"), exportID[:8], req.Format)

	if _, err := s.files.Save(filename, rendered); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store report")
	}

	token, expiresAt, err := s.signer.Generate(exportID, filename)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download url")
	}

	s.logger.Info("report generated",
		zap.String("dataset", req.Dataset),
		zap.String("format", string(req.Format)),
		zap.String("file", filename))

	return &models.ReportResponse{
		Dataset:     req.Dataset,
		Format:      string(req.Format),
		FileName:    filename,
		DownloadURL: "/export/" + token,
		ExpiresAt:   expiresAt,
	}, nil
}

// OpenDownload validates a signed token and opens the referenced file.
func (s *ExportService) OpenDownload(ctx context.Context, token string) (*os.File, string, error) {
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired download link")
	}

	file, err := s.files.Open(relPath)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "export file no longer available")
	}

	return file, relPath, nil
}

// StartCleanup periodically removes export files older than the signed
// URL TTL. It returns when ctx is cancelled.
func (s *ExportService) StartCleanup(ctx context.Context) {
	interval := s.cfg.CleanupInterval
	if interval <= 0 {
		interval = time.Hour
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				deleted, err := s.files.CleanupOlderThan(s.cfg.SignedURLTTL)
				if err != nil {
					s.logger.Warn("export cleanup failed", zap.Error(err))
					continue
				}
				if len(deleted) > 0 {
					s.logger.Info("expired exports removed", zap.Int("count", len(deleted)))
				}
			}
		}
	}()
}

func (s *ExportService) jobsDataset() export.Dataset {
	headers := []string{"ID", "Title", "Company", "Location", "Type", "Status", "Posted", "Deadline", "Application Link"}
	rows := make([]map[string]string, 0)
	for _, j := range s.store.Jobs() {
		rows = append(rows, map[string]string{
			"ID":               strconv.Itoa(j.ID),
			"Title":            j.Title,
			"Company":          j.Company,
			"Location":         j.Location,
			"Type":             string(j.Type),
			"Status":           string(j.Status),
			"Posted":           j.Posted.String(),
			"Deadline":         j.Deadline.String(),
			"Application Link": j.ApplicationLink,
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

func (s *ExportService) subscribersDataset() export.Dataset {
	headers := []string{"Email"}
	rows := make([]map[string]string, 0)
	for _, email := range s.store.Subscribers() {
		rows = append(rows, map[string]string{"Email": email})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
