package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/matthews-wong/setaside-be/internal/authn"
)

// User represents an account in the system. Accounts are never hard-deleted;
// deactivation flips IsActive.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FullName     string     `json:"full_name"`
	Phone        string     `json:"phone,omitempty"`
	Role         authn.Role `json:"role"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
