package models

// JobType is the posting category.
type JobType string

const (
	JobTypeAPMProgram JobType = "APM Program"
	JobTypeRPMProgram JobType = "RPM Program"
	JobTypeEntryLevel JobType = "Entry Level"
	JobTypeInternship JobType = "Internship"
)

// JobStatus is the admin-controlled lifecycle state. The deadline never
// transitions status on its own.
type JobStatus string

const (
	JobStatusOpen        JobStatus = "Open"
	JobStatusClosingSoon JobStatus = "Closing Soon"
	JobStatusClosed      JobStatus = "Closed"
	JobStatusPaused      JobStatus = "Paused"
)

// DeadlineState is derived from the deadline relative to the current day.
type DeadlineState string

const (
	DeadlineExpired DeadlineState = "expired"
	DeadlineUrgent  DeadlineState = "urgent"
	DeadlineActive  DeadlineState = "active"
)

// DraftDeadlineDays is how far out a fresh draft's deadline is placed.
const DraftDeadlineDays = 30

// Job is a committed posting.
type Job struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	Location        string    `json:"location"`
	Type            JobType   `json:"type"`
	Posted          Date      `json:"posted"`
	Deadline        Date      `json:"deadline"`
	Status          JobStatus `json:"status"`
	Description     string    `json:"description"`
	Requirements    []string  `json:"requirements"`
	ApplicationLink string    `json:"applicationLink"`
}

// JobInput is the admin save payload. Requirements arrive as one free-text
// block, one requirement per line.
type JobInput struct {
	Title           string    `json:"title" validate:"required"`
	Company         string    `json:"company" validate:"required"`
	Location        string    `json:"location"`
	Type            JobType   `json:"type" validate:"required,jobtype"`
	Posted          Date      `json:"posted"`
	Deadline        Date      `json:"deadline" validate:"required"`
	Status          JobStatus `json:"status" validate:"required,jobstatus"`
	Description     string    `json:"description"`
	Requirements    string    `json:"requirements"`
	ApplicationLink string    `json:"application_link" validate:"omitempty,url"`
}

// JobStatusUpdate changes only the lifecycle state of a posting.
type JobStatusUpdate struct {
	Status JobStatus `json:"status" validate:"required,jobstatus"`
}

// DeadlineInfo is the derived urgency annotation attached to public
// job listings.
type DeadlineInfo struct {
	State    DeadlineState `json:"state"`
	DaysLeft int           `json:"days_left"`
	Text     string        `json:"text"`
}

// JobView is a posting enriched with its derived deadline info.
type JobView struct {
	Job
	DeadlineInfo DeadlineInfo `json:"deadline_info"`
}

// NotificationKind distinguishes the three subscriber alerts.
type NotificationKind string

const (
	NotificationNew          NotificationKind = "new"
	NotificationUpdated      NotificationKind = "updated"
	NotificationStatusChange NotificationKind = "status_change"
)

// JobNotification is a queued alert: the job snapshot and recipient list
// are captured at enqueue time so later edits don't leak into in-flight
// sends.
type JobNotification struct {
	Kind       NotificationKind `json:"kind"`
	Job        Job              `json:"job"`
	Recipients []string         `json:"recipients"`
}
