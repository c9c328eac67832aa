package models

// MentorType categorizes a mentor within the directory.
type MentorType string

const (
	MentorTypeAlumni    MentorType = "alumni"
	MentorTypeStudent   MentorType = "student"
	MentorTypeProfessor MentorType = "professor"
)

// DefaultMentorImage is used when a new mentor has no portrait yet.
const DefaultMentorImage = "https://images.pexels.com/photos/3184339/pexels-photo-3184339.jpeg?auto=compress&cs=tinysrgb&w=300"

// Mentor is a directory entry. Email is admin-only and must never reach
// public responses verbatim.
type Mentor struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Role         string     `json:"role"`
	Company      string     `json:"company"`
	Location     string     `json:"location"`
	GradYear     string     `json:"gradYear"`
	Expertise    []string   `json:"expertise"`
	Image        string     `json:"image"`
	Type         MentorType `json:"type"`
	Email        string     `json:"email"`
	Bio          string     `json:"bio,omitempty"`
	LinkedIn     string     `json:"linkedIn,omitempty"`
	Availability string     `json:"availability,omitempty"`
}

// MentorInput is the admin create/update payload.
type MentorInput struct {
	Name         string     `json:"name" validate:"required"`
	Role         string     `json:"role" validate:"required"`
	Company      string     `json:"company"`
	Location     string     `json:"location"`
	GradYear     string     `json:"grad_year"`
	Expertise    []string   `json:"expertise"`
	Image        string     `json:"image" validate:"omitempty,url"`
	Type         MentorType `json:"type" validate:"required,mentortype"`
	Email        string     `json:"email" validate:"required,email"`
	Bio          string     `json:"bio"`
	LinkedIn     string     `json:"linked_in" validate:"omitempty,url"`
	Availability string     `json:"availability"`
}

// PublicMentor is the sanitized view served to unauthenticated callers.
// The contact address is withheld; reaching out goes through the contact
// endpoint instead.
type PublicMentor struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Role         string     `json:"role"`
	Company      string     `json:"company"`
	Location     string     `json:"location"`
	GradYear     string     `json:"grad_year"`
	Expertise    []string   `json:"expertise"`
	Image        string     `json:"image"`
	Type         MentorType `json:"type"`
	Bio          string     `json:"bio,omitempty"`
	LinkedIn     string     `json:"linked_in,omitempty"`
	Availability string     `json:"availability,omitempty"`
}

// Public strips the contact address from a mentor record.
func (m Mentor) Public() PublicMentor {
	return PublicMentor{
		ID:           m.ID,
		Name:         m.Name,
		Role:         m.Role,
		Company:      m.Company,
		Location:     m.Location,
		GradYear:     m.GradYear,
		Expertise:    m.Expertise,
		Image:        m.Image,
		Type:         m.Type,
		Bio:          m.Bio,
		LinkedIn:     m.LinkedIn,
		Availability: m.Availability,
	}
}

// ContactRequest is the public reach-out payload for a mentor. The sender
// identifies themselves; the subject line is derived from their name.
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

// ContactLink carries the prepared mailto URL back to the caller.
type ContactLink struct {
	MentorID   int    `json:"mentor_id"`
	MentorName string `json:"mentor_name"`
	MailtoURL  string `json:"mailto_url"`
}
