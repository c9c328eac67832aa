package service

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pmory/pmory-api/internal/models"
)

func newMentorService(store *stubContentStore) *MentorService {
	return NewMentorService(store, validator.New(), zap.NewNop())
}

func validMentorInput() models.MentorInput {
	return models.MentorInput{
		Name:  "Jordan Lee",
		Role:  "Product Manager",
		Type:  models.MentorTypeAlumni,
		Email: "jordan@example.com",
	}
}

func TestMentorCreateSynthesizesNextID(t *testing.T) {
	store := &stubContentStore{mentors: []models.Mentor{{ID: 2}, {ID: 5}}}
	svc := newMentorService(store)

	mentor, err := svc.Create(context.Background(), validMentorInput())
	require.NoError(t, err)
	assert.Equal(t, 6, mentor.ID)
	assert.Equal(t, models.DefaultMentorImage, mentor.Image, "missing image gets the default portrait")

	empty := &stubContentStore{}
	mentor2, err := newMentorService(empty).Create(context.Background(), validMentorInput())
	require.NoError(t, err)
	assert.Equal(t, 1, mentor2.ID)
}

func TestMentorCreateRejectsUnknownType(t *testing.T) {
	store := &stubContentStore{}
	svc := newMentorService(store)

	input := validMentorInput()
	input.Type = "recruiter"

	_, err := svc.Create(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, 0, store.mentorSaves)
}

func TestMentorListPublicWithholdsEmail(t *testing.T) {
	store := &stubContentStore{mentors: []models.Mentor{
		{ID: 1, Name: "Jordan Lee", Email: "jordan@example.com", Type: models.MentorTypeAlumni},
	}}
	svc := newMentorService(store)

	public, err := svc.ListPublic(context.Background())
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "Jordan Lee", public[0].Name)
	assert.NotContains(t, publicMentorFields(public[0]), "jordan@example.com")
}

func TestMentorUpdateUnknownID(t *testing.T) {
	store := &stubContentStore{mentors: []models.Mentor{{ID: 1}}}
	svc := newMentorService(store)

	_, err := svc.Update(context.Background(), 9, validMentorInput())
	require.Error(t, err)
	assert.Equal(t, 0, store.mentorSaves)
}

func TestMentorDelete(t *testing.T) {
	store := &stubContentStore{mentors: []models.Mentor{{ID: 1}, {ID: 2}}}
	svc := newMentorService(store)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Len(t, store.mentors, 1)
	assert.Equal(t, 2, store.mentors[0].ID)

	require.Error(t, svc.Delete(context.Background(), 1))
}

func TestMentorContactLinkBuildsMailto(t *testing.T) {
	store := &stubContentStore{mentors: []models.Mentor{
		{ID: 3, Name: "Jordan Lee", Email: "jordan@example.com"},
	}}
	svc := newMentorService(store)

	link, err := svc.ContactLink(context.Background(), 3, models.ContactRequest{
		Name:    "Sam Student",
		Email:   "sam@emory.edu",
		Message: "I'd love to chat about APM recruiting.",
	})
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(link.MailtoURL, "mailto:jordan@example.com?"))

	parsed, err := url.Parse(link.MailtoURL)
	require.NoError(t, err)
	query := parsed.Query()
	assert.Equal(t, "PMory Connection Request from Sam Student", query.Get("subject"))
	assert.Contains(t, query.Get("body"), "Hi Jordan Lee,")
	assert.Contains(t, query.Get("body"), "sam@emory.edu")
}

func TestMentorContactLinkUnknownMentor(t *testing.T) {
	svc := newMentorService(&stubContentStore{})

	_, err := svc.ContactLink(context.Background(), 1, models.ContactRequest{
		Name:    "Sam",
		Email:   "sam@emory.edu",
		Message: "hello",
	})
	require.Error(t, err)
}

// publicMentorFields flattens the string fields of a public view for
// leak assertions.
func publicMentorFields(m models.PublicMentor) string {
	return strings.Join([]string{
		m.Name, m.Role, m.Company, m.Location, m.GradYear,
		m.Image, string(m.Type), m.Bio, m.LinkedIn, m.Availability,
	}, "|")
}
