package workflow

import "github.com/spec-kit/helpdesk-service/internal/domain"

// Permissions is the static flag set attached to a role. It gates actions
// outside the status workflow: deletion, assignment, admin screens.
type Permissions struct {
	CanManageUsers      bool `json:"can_manage_users"`
	CanManageAllTickets bool `json:"can_manage_all_tickets"`
	CanAssignTickets    bool `json:"can_assign_tickets"`
	CanViewAllTickets   bool `json:"can_view_all_tickets"`
	CanDeleteTickets    bool `json:"can_delete_tickets"`
	CanManageSettings   bool `json:"can_manage_settings"`
	CanViewAnalytics    bool `json:"can_view_analytics"`
	CanCloseTickets     bool `json:"can_close_tickets"`
	CanEditAnyTicket    bool `json:"can_edit_any_ticket"`
}

// permissionMatrix is the declarative policy: one row per role.
var permissionMatrix = map[domain.UserRole]Permissions{
	domain.RoleUser: {
		CanCloseTickets: true,
	},
	domain.RoleAgent: {
		CanAssignTickets:  true,
		CanViewAllTickets: true,
		CanViewAnalytics:  true,
		CanCloseTickets:   true,
	},
	domain.RoleAdmin: {
		CanManageUsers:      true,
		CanManageAllTickets: true,
		CanAssignTickets:    true,
		CanViewAllTickets:   true,
		CanDeleteTickets:    true,
		CanManageSettings:   true,
		CanViewAnalytics:    true,
		CanCloseTickets:     true,
		CanEditAnyTicket:    true,
	},
}

// PermissionsFor looks up the flag set for a role. Unknown roles get the
// zero set (everything denied).
func PermissionsFor(role domain.UserRole) Permissions {
	return permissionMatrix[role]
}

// CanAccessTicket reports whether the caller may view a ticket: anyone with
// the view-all flag, the creator, or the assignee.
func CanAccessTicket(role domain.UserRole, userID string, ticket domain.TicketRef) bool {
	if PermissionsFor(role).CanViewAllTickets {
		return true
	}
	if ticket.CreatedBy == userID {
		return true
	}
	return ticket.AssignedTo != nil && *ticket.AssignedTo == userID
}
