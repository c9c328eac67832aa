package models

// External link keys editable through the admin panel. The set is fixed:
// keys can be repointed but never added or removed.
const (
	LinkLinkedIn  = "linkedin"
	LinkInstagram = "instagram"
	LinkSlack     = "slack"
	LinkEmail     = "email"
	LinkJoinForm  = "joinForm"
)

// Settings is the persisted site configuration: the external link map plus
// the mail-sending credentials used by the dispatcher.
type Settings struct {
	ExternalLinks map[string]string `json:"externalLinks"`
	EmailJS       EmailJSSettings   `json:"emailjs"`
}

// EmailJSSettings identifies the template-send account and templates.
type EmailJSSettings struct {
	ServiceID   string             `json:"serviceId"`
	PublicKey   string             `json:"publicKey"`
	TemplateIDs EmailJSTemplateIDs `json:"templateIds"`
}

// EmailJSTemplateIDs names the two templates the site sends with.
type EmailJSTemplateIDs struct {
	JobAlert        string `json:"jobAlert"`
	WelcomeJobAlert string `json:"welcomeJobAlert"`
}

// LinkUpdateRequest replaces values for existing link keys.
type LinkUpdateRequest struct {
	Links map[string]string `json:"links" validate:"required"`
}
