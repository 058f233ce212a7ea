// File: services/auth_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"fest-registration/logger"
	"fest-registration/models"
)

// AuthServiceInterface checks admin credentials.
type AuthServiceInterface interface {
	Authenticate(ctx context.Context, username, password string) (*models.Admin, error)
}

// AuthService verifies passwords against bcrypt hashes in the admin table.
type AuthService struct {
	admins AdminServiceInterface
	// dummyHash is compared against when the username is unknown so both
	// failure paths cost one bcrypt comparison.
	dummyHash []byte
}

var _ AuthServiceInterface = (*AuthService)(nil)

// NewAuthService creates an AuthService over admins.
func NewAuthService(admins AdminServiceInterface) *AuthService {
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	if err != nil {
		panic("failed to prepare dummy hash: " + err.Error())
	}
	return &AuthService{admins: admins, dummyHash: dummy}
}

// ------------------ authentication utilities ------------------

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPasswordHash verifies if the provided plain-text password matches the stored hashed password.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Authenticate returns the admin when username and password match, and
// ErrInvalidCredentials for any mismatch. Other errors are lookup failures.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.Admin, error) {
	admin, err := s.admins.FindByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		logger.Warn.Printf("AuthService.Authenticate: unknown admin %q", username)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !CheckPasswordHash(password, admin.Password) {
		logger.Warn.Printf("AuthService.Authenticate: wrong password for admin %q", username)
		return nil, ErrInvalidCredentials
	}
	return admin, nil
}
