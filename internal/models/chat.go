package models

// ChatMode steers the external assistant toward a topic area.
type ChatMode string

const (
	ChatModeGeneral ChatMode = "general"
	ChatModeCareer  ChatMode = "career"
	ChatModeSkills  ChatMode = "skills"
	ChatModeJobs    ChatMode = "jobs"
)

// ChatRequest is a single question for the assistant.
type ChatRequest struct {
	Message string   `json:"message" validate:"required"`
	Mode    ChatMode `json:"mode" validate:"omitempty,chatmode"`
}

// ChatResponse carries the assistant's answer, or a configuration warning
// when no endpoint is wired up.
type ChatResponse struct {
	Answer  string   `json:"answer,omitempty"`
	Mode    ChatMode `json:"mode"`
	Warning string   `json:"warning,omitempty"`
}
