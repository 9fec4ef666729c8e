package auth

import (
	"context"

	"github.com/matthews-wong/setaside-be/internal/modules/user"
)

// Service defines the interface for authentication-related business logic.
type Service interface {
	// Register creates a customer account and returns it with a signed token.
	Register(ctx context.Context, req RegisterRequest) (*user.User, string, error)

	// Login verifies credentials and returns the account with a signed token.
	// Unknown emails and wrong passwords fail identically so callers cannot
	// probe which emails are registered.
	Login(ctx context.Context, email, password string) (*user.User, string, error)
}

// RegisterRequest is the payload for creating a new customer account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
}

// LoginRequest is the payload for logging in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the body returned by register and login.
type TokenResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}
