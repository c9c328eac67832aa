package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/pmory/pmory-api/internal/kv"
	"github.com/pmory/pmory-api/internal/models"
	"github.com/pmory/pmory-api/pkg/config"
	appErrors "github.com/pmory/pmory-api/pkg/errors"
)

// CredentialVerifier checks an admin login attempt against the configured
// secret. Single-secret is the only production implementation; the
// interface exists so tests can stub the check.
type CredentialVerifier interface {
	Verify(password string) error
}

// SharedSecretVerifier verifies against one shared admin secret. A bcrypt
// hash takes precedence over the plaintext secret when both are set.
type SharedSecretVerifier struct {
	secret string
	hash   string
}

// NewSharedSecretVerifier builds a verifier from session config.
func NewSharedSecretVerifier(cfg config.SessionConfig) (*SharedSecretVerifier, error) {
	if cfg.AdminSecret == "" && cfg.AdminSecretHash == "" {
		return nil, fmt.Errorf("auth: admin secret or secret hash must be configured")
	}

	return &SharedSecretVerifier{secret: cfg.AdminSecret, hash: cfg.AdminSecretHash}, nil
}

// Verify checks the supplied password.
func (v *SharedSecretVerifier) Verify(password string) error {
	if v.hash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(v.hash), []byte(password)); err != nil {
			return appErrors.ErrInvalidPassword
		}
		return nil
	}

	if subtle.ConstantTimeCompare([]byte(v.secret), []byte(password)) != 1 {
		return appErrors.ErrInvalidPassword
	}

	return nil
}

const revokedSessionPrefix = "revoked_session:"

// AuthService issues and revokes admin session tokens.
type AuthService struct {
	verifier  CredentialVerifier
	revoked   kv.Store
	validator *validator.Validate
	logger    *zap.Logger
	config    config.SessionConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(verifier CredentialVerifier, revoked kv.Store, validate *validator.Validate, logger *zap.Logger, cfg config.SessionConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{verifier: verifier, revoked: revoked, validator: validate, logger: logger, config: cfg}
}

// Login verifies the shared secret and issues a session token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	if err := s.verifier.Verify(req.Password); err != nil {
		s.logger.Warn("admin login rejected")
		return nil, err
	}

	now := time.Now().UTC()
	claims := models.SessionClaims{
		Role: models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.config.Issuer,
			Subject:   models.RoleAdmin,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SigningSecret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign session token")
	}

	s.logger.Info("admin session issued", zap.String("session_id", claims.ID))

	return &models.LoginResponse{
		Token:     signed,
		ExpiresIn: int64(s.config.TTL.Seconds()),
		IssuedAt:  now,
	}, nil
}

// Logout revokes the session so the token stops working before expiry.
func (s *AuthService) Logout(ctx context.Context, claims *models.SessionClaims) error {
	if claims == nil || claims.ID == "" {
		return appErrors.Clone(appErrors.ErrUnauthorized, "no active session")
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}

	key := revokedSessionPrefix + claims.ID
	if err := kv.SetWithTTL(ctx, s.revoked, key, []byte("1"), ttl); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to revoke session")
	}

	s.logger.Info("admin session revoked", zap.String("session_id", claims.ID))
	return nil
}

// ValidateToken parses and verifies a session token, rejecting revoked
// sessions.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*models.SessionClaims, error) {
	claims := &models.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.config.SigningSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired session token")
	}

	if claims.ID != "" {
		_, err := s.revoked.Get(ctx, revokedSessionPrefix+claims.ID)
		switch {
		case err == nil:
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session has been revoked")
		case errors.Is(err, kv.ErrNotFound):
			// Still live.
		default:
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check session revocation")
		}
	}

	return claims, nil
}
