package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/pmory/pmory-api/internal/kv"
	"github.com/pmory/pmory-api/internal/models"
	"github.com/pmory/pmory-api/pkg/config"
	appErrors "github.com/pmory/pmory-api/pkg/errors"
)

func sessionConfig() config.SessionConfig {
	return config.SessionConfig{
		AdminSecret:   "club-secret",
		SigningSecret: "signing-secret",
		TTL:           time.Hour,
		Issuer:        "pmory-api",
	}
}

func newAuthService(t *testing.T, cfg config.SessionConfig) *AuthService {
	t.Helper()
	verifier, err := NewSharedSecretVerifier(cfg)
	require.NoError(t, err)

	revoked, err := kv.NewFileStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { revoked.Close() })

	return NewAuthService(verifier, revoked, validator.New(), zap.NewNop(), cfg)
}

func TestLoginIssuesValidSession(t *testing.T) {
	svc := newAuthService(t, sessionConfig())

	resp, err := svc.Login(context.Background(), models.LoginRequest{Password: "club-secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	claims, err := svc.ValidateToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestLoginRejectsWrongSecret(t *testing.T) {
	svc := newAuthService(t, sessionConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Password: "guess"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidPassword.Code, appErrors.FromError(err).Code)
}

func TestLoginRejectsEmptyPayload(t *testing.T) {
	svc := newAuthService(t, sessionConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc := newAuthService(t, sessionConfig())
	ctx := context.Background()

	resp, err := svc.Login(ctx, models.LoginRequest{Password: "club-secret"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(ctx, resp.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims))

	_, err = svc.ValidateToken(ctx, resp.Token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newAuthService(t, sessionConfig())

	_, err := svc.ValidateToken(context.Background(), "not-a-token")
	require.Error(t, err)
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	issuer := newAuthService(t, sessionConfig())

	other := sessionConfig()
	other.SigningSecret = "different-secret"
	validatorSvc := newAuthService(t, other)

	resp, err := issuer.Login(context.Background(), models.LoginRequest{Password: "club-secret"})
	require.NoError(t, err)

	_, err = validatorSvc.ValidateToken(context.Background(), resp.Token)
	require.Error(t, err)
}

func TestBcryptHashTakesPrecedence(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed-secret"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := sessionConfig()
	cfg.AdminSecretHash = string(hash)
	svc := newAuthService(t, cfg)

	_, err = svc.Login(context.Background(), models.LoginRequest{Password: "club-secret"})
	require.Error(t, err, "plaintext secret must be ignored when a hash is configured")

	_, err = svc.Login(context.Background(), models.LoginRequest{Password: "hashed-secret"})
	require.NoError(t, err)
}

func TestVerifierRequiresSomeSecret(t *testing.T) {
	_, err := NewSharedSecretVerifier(config.SessionConfig{})
	require.Error(t, err)
}
