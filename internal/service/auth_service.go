package service

import (
	"context"
	"strings"
	"time"

	"catalog/config"
	"catalog/internal/apperror"
	"catalog/internal/auth"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	cfg *config.Config
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Email     string    `json:"email"`
}

// Login checks the configured admin credentials and issues an access token.
func (s *AuthService) Login(_ context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperror.Validation("Email and password are required")
	}
	if s.cfg.Admin.PasswordHash == "" || email != s.cfg.Admin.Email {
		return nil, apperror.Unauthorized("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.Admin.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.Unauthorized("Invalid email or password")
	}
	token, expires, err := auth.GenerateAccessToken(&s.cfg.JWT, email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &LoginResult{Token: token, ExpiresAt: expires, Email: email}, nil
}

// HashPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}
