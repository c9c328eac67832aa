package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmory/pmory-api/internal/models"
	appErrors "github.com/pmory/pmory-api/pkg/errors"
)

type mentorServiceMock struct {
	listResp   []models.Mentor
	publicResp []models.PublicMentor
	getResp    *models.Mentor
	getErr     error
	createErr  error
	deleteErr  error
	linkResp   *models.ContactLink
	linkErr    error
}

func (m *mentorServiceMock) List(ctx context.Context) ([]models.Mentor, error) {
	return m.listResp, nil
}

func (m *mentorServiceMock) ListPublic(ctx context.Context) ([]models.PublicMentor, error) {
	return m.publicResp, nil
}

func (m *mentorServiceMock) Get(ctx context.Context, id int) (*models.Mentor, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.getResp, nil
}

func (m *mentorServiceMock) Create(ctx context.Context, input models.MentorInput) (*models.Mentor, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &models.Mentor{ID: 1, Name: input.Name, Type: input.Type, Email: input.Email}, nil
}

func (m *mentorServiceMock) Update(ctx context.Context, id int, input models.MentorInput) (*models.Mentor, error) {
	return &models.Mentor{ID: id, Name: input.Name, Type: input.Type, Email: input.Email}, nil
}

func (m *mentorServiceMock) Delete(ctx context.Context, id int) error {
	return m.deleteErr
}

func (m *mentorServiceMock) ContactLink(ctx context.Context, id int, req models.ContactRequest) (*models.ContactLink, error) {
	if m.linkErr != nil {
		return nil, m.linkErr
	}
	return m.linkResp, nil
}

func TestMentorHandlerListPublic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &mentorServiceMock{publicResp: []models.PublicMentor{{ID: 1, Name: "Sarah Chen"}}}
	h := NewMentorHandler(mock)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/mentors", nil)
	c.Request = req

	h.ListPublic(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sarah Chen")
	assert.NotContains(t, w.Body.String(), "\"email\"")
}

func TestMentorHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewMentorHandler(&mentorServiceMock{getErr: appErrors.ErrNotFound})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/admin/mentors/42", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "42"}}

	h.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMentorHandlerGetBadID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewMentorHandler(&mentorServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/admin/mentors/abc", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	h.Get(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMentorHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewMentorHandler(&mentorServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(models.MentorInput{
		Name:  "Sarah Chen",
		Role:  "Senior PM",
		Type:  models.MentorTypeAlumni,
		Email: "sarah@example.com",
	})
	req, _ := http.NewRequest(http.MethodPost, "/admin/mentors", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	h.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Sarah Chen")
}

func TestMentorHandlerCreateInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewMentorHandler(&mentorServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/admin/mentors", bytes.NewReader([]byte(`{`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	h.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMentorHandlerContact(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &mentorServiceMock{linkResp: &models.ContactLink{
		MentorID:   3,
		MentorName: "Sarah Chen",
		MailtoURL:  "mailto:sarah@example.com?subject=PMory%20Connection%20Request%20from%20Alex",
	}}
	h := NewMentorHandler(mock)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(models.ContactRequest{Name: "Alex", Email: "alex@emory.edu", Message: "Hi!"})
	req, _ := http.NewRequest(http.MethodPost, "/mentors/3/contact", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "3"}}

	h.Contact(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mailto:sarah@example.com")
}

func TestMentorHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewMentorHandler(&mentorServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/admin/mentors/1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	h.Delete(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
}
