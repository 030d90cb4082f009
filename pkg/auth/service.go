package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"golang.org/x/crypto/bcrypt"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/repositories"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// Service handles login, logout and token verification.
type Service struct {
	users   *repositories.UserRepository
	issuer  *TokenIssuer
	revoked *RevocationList
	logger  ectologger.Logger
}

// NewService creates a new auth service
func NewService(users *repositories.UserRepository, issuer *TokenIssuer, logger ectologger.Logger) *Service {
	return &Service{
		users:   users,
		issuer:  issuer,
		revoked: NewRevocationList(),
		logger:  logger,
	}
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Login checks the credentials and returns a signed token with the user.
// Unknown usernames and wrong passwords produce the same error so callers
// cannot probe for accounts.
func (s *Service) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	ctx, span := tracing.StartSpan(ctx, "AuthService.Login")
	defer span.End()

	invalidCredentials := httperror.NewHTTPError(http.StatusUnauthorized, "invalid username or password")

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if httperror.IsHTTPError(err) && httperror.GetStatusCode(err) == http.StatusNotFound {
			return "", nil, invalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", nil, invalidCredentials
		}
		s.logger.WithContext(ctx).WithError(err).Error("failed to compare password hash")
		return "", nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to log in")
	}

	token, _, err := s.issuer.Issue(user)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("failed to issue token")
		return "", nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to log in")
	}

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"username": username,
	}).Info("User logged in")
	return token, user, nil
}

// VerifyToken parses a bearer token and rejects revoked tokens.
func (s *Service) VerifyToken(tokenString string) (*Claims, error) {
	claims, err := s.issuer.Parse(tokenString)
	if err != nil {
		return nil, err
	}
	if s.revoked.IsRevoked(claims.ID) {
		return nil, fmt.Errorf("token has been revoked")
	}
	return claims, nil
}

// Logout revokes the token until its natural expiry. Already-invalid tokens
// are a no-op since they cannot be used anyway.
func (s *Service) Logout(ctx context.Context, tokenString string) {
	_, span := tracing.StartSpan(ctx, "AuthService.Logout")
	defer span.End()

	claims, err := s.issuer.Parse(tokenString)
	if err != nil {
		return
	}
	if claims.ExpiresAt != nil {
		s.revoked.Revoke(claims.ID, claims.ExpiresAt.Time)
	}

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"username": claims.Username,
	}).Info("User logged out")
}

// EnsureAdmin creates the bootstrap admin account if it does not exist.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) error {
	ctx, span := tracing.StartSpan(ctx, "AuthService.EnsureAdmin")
	defer span.End()

	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !httperror.IsHTTPError(err) || httperror.GetStatusCode(err) != http.StatusNotFound {
		return err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	user := &models.User{
		Username: username,
		Password: hash,
		Role:     models.RoleAdmin,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// another instance may have created it first
		if httperror.IsHTTPError(err) && httperror.GetStatusCode(err) == http.StatusConflict {
			return nil
		}
		return err
	}

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"username": username,
	}).Info("Created bootstrap admin user")
	return nil
}
