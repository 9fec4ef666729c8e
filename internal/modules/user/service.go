package user

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for user-related business logic.
type Service interface {
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*User, error)
	ListUsers(ctx context.Context, f ListFilter) ([]*User, int, error)
	AdminUpdateUser(ctx context.Context, id uuid.UUID, req AdminUpdateRequest) (*User, error)
}

// UpdateProfileRequest is a self-service profile edit: name and phone only.
type UpdateProfileRequest struct {
	FullName *string `json:"full_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}

// AdminUpdateRequest is an admin edit of another account.
type AdminUpdateRequest struct {
	FullName *string `json:"full_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}
