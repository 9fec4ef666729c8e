package user

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows and pages an admin user listing.
type ListFilter struct {
	Role   string
	Search string
	Limit  int
	Offset int
}

// Repository defines data access for users.
type Repository interface {
	// CreateUser persists a new user. A duplicate email fails with CONFLICT.
	CreateUser(ctx context.Context, u *User) error

	// GetUserByEmail retrieves a user by email, case-insensitively.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// GetUserByID retrieves a user by id.
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)

	// UpdateUser persists profile, role, and active-flag changes.
	UpdateUser(ctx context.Context, u *User) error

	// ListUsers returns one page of users plus the unpaged total count.
	ListUsers(ctx context.Context, f ListFilter) ([]*User, int, error)

	// IsActive reports whether the account exists and is active.
	IsActive(ctx context.Context, id uuid.UUID) (bool, error)
}
