package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// Full matrix, spelled out literally so any policy change shows up in review.
func TestPermissionsFor(t *testing.T) {
	assert.Equal(t, Permissions{
		CanCloseTickets: true,
	}, PermissionsFor(domain.RoleUser))

	assert.Equal(t, Permissions{
		CanAssignTickets:  true,
		CanViewAllTickets: true,
		CanViewAnalytics:  true,
		CanCloseTickets:   true,
	}, PermissionsFor(domain.RoleAgent))

	assert.Equal(t, Permissions{
		CanManageUsers:      true,
		CanManageAllTickets: true,
		CanAssignTickets:    true,
		CanViewAllTickets:   true,
		CanDeleteTickets:    true,
		CanManageSettings:   true,
		CanViewAnalytics:    true,
		CanCloseTickets:     true,
		CanEditAnyTicket:    true,
	}, PermissionsFor(domain.RoleAdmin))

	// Unknown role gets everything denied.
	assert.Equal(t, Permissions{}, PermissionsFor(domain.UserRole("root")))
}

func TestPermissionsFor_KeyFlags(t *testing.T) {
	assert.False(t, PermissionsFor(domain.RoleUser).CanDeleteTickets)
	assert.True(t, PermissionsFor(domain.RoleAdmin).CanDeleteTickets)
	assert.False(t, PermissionsFor(domain.RoleAgent).CanManageUsers)
}

func TestCanAccessTicket(t *testing.T) {
	ticket := domain.TicketRef{CreatedBy: "u1", AssignedTo: strptr("a1")}

	tests := []struct {
		name   string
		role   domain.UserRole
		userID string
		want   bool
	}{
		{"creator", domain.RoleUser, "u1", true},
		{"assignee", domain.RoleAgent, "a1", true},
		{"unrelated user", domain.RoleUser, "u2", false},
		{"unrelated agent sees all", domain.RoleAgent, "a2", true},
		{"admin sees all", domain.RoleAdmin, "adm", true},
		{"unknown role unrelated", domain.UserRole("ghost"), "u2", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAccessTicket(tt.role, tt.userID, ticket))
		})
	}

	unassigned := domain.TicketRef{CreatedBy: "u1"}
	assert.False(t, CanAccessTicket(domain.RoleUser, "u2", unassigned))
	assert.True(t, CanAccessTicket(domain.RoleUser, "u1", unassigned))
}
