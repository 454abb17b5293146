package model

import (
	"errors"
	"net/mail"
)

const minPasswordLength = 8

var (
	ErrInvalidEmail         = errors.New("a valid email address is required")
	ErrPasswordTooShort     = errors.New("password must be at least 8 characters")
	ErrNameRequired         = errors.New("name is required")
	ErrRefreshTokenRequired = errors.New("refresh_token is required")
)

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Validate rejects malformed registration input before it reaches the service.
func (r RegisterRequest) Validate() error {
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return ErrInvalidEmail
	}
	if len(r.Password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if r.Name == "" {
		return ErrNameRequired
	}
	return nil
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return ErrInvalidEmail
	}
	if r.Password == "" {
		return ErrPasswordTooShort
	}
	return nil
}

// RefreshRequest carries the refresh token to trade for a new pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r RefreshRequest) Validate() error {
	if r.RefreshToken == "" {
		return ErrRefreshTokenRequired
	}
	return nil
}

// UserResponse represents user data safe for API responses.
type UserResponse struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	SubscriptionTier string `json:"subscription_tier"`
	CreatedAt        string `json:"created_at"`
	EmailVerified    bool   `json:"email_verified"`
}

// TokenResponse is returned on register, login and refresh: a fresh token
// pair plus a snapshot of the user it belongs to.
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
	User         UserResponse `json:"user"`
}
