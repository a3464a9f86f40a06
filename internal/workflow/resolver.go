package workflow

import "github.com/spec-kit/helpdesk-service/internal/domain"

// ValidTransitions computes the transitions the caller may perform on a
// ticket in the given status. Rows are filtered from the policy table by
// current status and role, then refined by ownership:
//
//   - user: must be the ticket's creator, and only acts from open or
//     resolved (the two states where the creator has a pending decision)
//   - agent: the ticket must be unassigned or assigned to the caller
//   - admin: no refinement
//
// Surviving rows keep the table's relative order. An unknown status or role
// yields an empty slice, never an error.
func ValidTransitions(current domain.TicketStatus, role domain.UserRole, userID string, ticket domain.TicketRef) []StatusTransition {
	switch role {
	case domain.RoleUser:
		if ticket.CreatedBy != userID {
			return nil
		}
		if current != domain.TicketStatusOpen && current != domain.TicketStatusResolved {
			return nil
		}
	case domain.RoleAgent:
		if ticket.AssignedTo != nil && *ticket.AssignedTo != userID {
			return nil
		}
	case domain.RoleAdmin:
	default:
		return nil
	}

	var out []StatusTransition
	for _, t := range transitionTable {
		if t.From != current {
			continue
		}
		if !t.Allows(role) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// CanTransition reports whether the caller may move the ticket from one
// status to another.
func CanTransition(from, to domain.TicketStatus, role domain.UserRole, userID string, ticket domain.TicketRef) bool {
	for _, t := range ValidTransitions(from, role, userID, ticket) {
		if t.To == to {
			return true
		}
	}
	return false
}

// FindTransition returns the surviving row targeting to, if any.
func FindTransition(from, to domain.TicketStatus, role domain.UserRole, userID string, ticket domain.TicketRef) (StatusTransition, bool) {
	for _, t := range ValidTransitions(from, role, userID, ticket) {
		if t.To == to {
			return t, true
		}
	}
	return StatusTransition{}, false
}
