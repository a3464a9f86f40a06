package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/workflow"
)

// RegisterRequest payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Profile   ProfileResponse `json:"profile"`
}

// ProfileResponse represents an account, with the role's permission flags
// for UI gating.
type ProfileResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Email       string               `json:"email"`
	Role        domain.UserRole      `json:"role"`
	Active      bool                 `json:"active"`
	Permissions workflow.Permissions `json:"permissions"`
	CreatedAt   time.Time            `json:"created_at"`
}

// AdminUpdateProfileRequest payload; omitted fields are unchanged.
type AdminUpdateProfileRequest struct {
	Role   *domain.UserRole `json:"role"`
	Active *bool            `json:"active"`
}
