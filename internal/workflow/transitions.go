package workflow

import "github.com/spec-kit/helpdesk-service/internal/domain"

// StatusTransition is one row of the workflow policy: a permitted move
// between statuses, the roles that may perform it, and the action label
// shown to the caller. Rows are immutable; the table below is the single
// source of truth for the workflow.
type StatusTransition struct {
	From         domain.TicketStatus
	To           domain.TicketStatus
	AllowedRoles []domain.UserRole
	Label        string
	Description  string
}

// Allows reports whether the row's role set contains role.
func (t StatusTransition) Allows(role domain.UserRole) bool {
	for _, r := range t.AllowedRoles {
		if r == role {
			return true
		}
	}
	return false
}

// transitionTable defines every permitted status move. Order matters: the
// resolver returns surviving rows in this relative order.
var transitionTable = []StatusTransition{
	{
		From:         domain.TicketStatusOpen,
		To:           domain.TicketStatusInProgress,
		AllowedRoles: []domain.UserRole{domain.RoleAgent, domain.RoleAdmin},
		Label:        "Start Working",
		Description:  "Pick up the ticket and begin work",
	},
	{
		From:         domain.TicketStatusOpen,
		To:           domain.TicketStatusClosed,
		AllowedRoles: []domain.UserRole{domain.RoleUser},
		Label:        "Close as Trivial",
		Description:  "Close your own ticket, no work needed",
	},
	{
		From:         domain.TicketStatusInProgress,
		To:           domain.TicketStatusResolved,
		AllowedRoles: []domain.UserRole{domain.RoleAgent, domain.RoleAdmin},
		Label:        "Mark Resolved",
		Description:  "Work is done, ask the creator to confirm",
	},
	{
		From:         domain.TicketStatusResolved,
		To:           domain.TicketStatusClosed,
		AllowedRoles: []domain.UserRole{domain.RoleUser},
		Label:        "Confirm & Close",
		Description:  "Accept the resolution and close the ticket",
	},
	{
		From:         domain.TicketStatusResolved,
		To:           domain.TicketStatusReopened,
		AllowedRoles: []domain.UserRole{domain.RoleUser},
		Label:        "Reopen",
		Description:  "Reject the resolution, the issue persists",
	},
	{
		From:         domain.TicketStatusReopened,
		To:           domain.TicketStatusInProgress,
		AllowedRoles: []domain.UserRole{domain.RoleAgent, domain.RoleAdmin},
		Label:        "Resume Working",
		Description:  "Resume work on the reopened ticket",
	},
	{
		From:         domain.TicketStatusClosed,
		To:           domain.TicketStatusOpen,
		AllowedRoles: []domain.UserRole{domain.RoleAdmin},
		Label:        "Reopen Ticket",
		Description:  "Admin override: return a closed ticket to the queue",
	},
	{
		From:         domain.TicketStatusClosed,
		To:           domain.TicketStatusInProgress,
		AllowedRoles: []domain.UserRole{domain.RoleAdmin},
		Label:        "Reopen & Start",
		Description:  "Admin override: resume work on a closed ticket directly",
	},
}

// Transitions returns a copy of the full policy table.
func Transitions() []StatusTransition {
	out := make([]StatusTransition, len(transitionTable))
	copy(out, transitionTable)
	return out
}
