package domain

import "time"

// UserRole enumerates the roles a profile can hold.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAgent UserRole = "agent"
	RoleAdmin UserRole = "admin"
)

// Valid reports whether the role belongs to the closed enumeration.
func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleAgent, RoleAdmin:
		return true
	}
	return false
}

// Staff reports whether the role may work tickets (be assigned to them).
func (r UserRole) Staff() bool {
	return r == RoleAgent || r == RoleAdmin
}

// RoleOrDefault resolves a raw role string, falling back to RoleUser for
// missing or unrecognized values. All defaulting goes through here.
func RoleOrDefault(raw string) UserRole {
	role := UserRole(raw)
	if !role.Valid() {
		return RoleUser
	}
	return role
}

// Profile is the domain model for an account: end-users, agents and admins.
type Profile struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
