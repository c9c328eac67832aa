package models

import "time"

// Snapshot bundles every collection for a full-site download.
type Snapshot struct {
	Mentors     []Mentor  `json:"mentors"`
	Jobs        []Job     `json:"jobs"`
	Settings    Settings  `json:"settings"`
	Subscribers []string  `json:"subscribers"`
	ExportDate  time.Time `json:"exportDate"`
}

// PromotionExport is a single pretty-printed collection plus the bundled
// defaults file it should be pasted into to make edits permanent.
type PromotionExport struct {
	Collection string `json:"collection"`
	TargetPath string `json:"target_path"`
	JSON       string `json:"json"`
}

// ReportFormat selects the rendered report type.
type ReportFormat string

const (
	ReportFormatCSV ReportFormat = "csv"
	ReportFormatPDF ReportFormat = "pdf"
)

// ReportRequest asks for a rendered report written to the exports dir.
type ReportRequest struct {
	Dataset string       `json:"dataset" validate:"required,oneof=jobs subscribers"`
	Format  ReportFormat `json:"format" validate:"required,oneof=csv pdf"`
}

// ReportResponse points at the generated file via a signed download URL.
type ReportResponse struct {
	Dataset     string    `json:"dataset"`
	Format      string    `json:"format"`
	FileName    string    `json:"file_name"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}
