package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func strptr(s string) *string { return &s }

func TestValidTransitions_Scenarios(t *testing.T) {
	tests := []struct {
		name       string
		status     domain.TicketStatus
		role       domain.UserRole
		userID     string
		ticket     domain.TicketRef
		wantTo     []domain.TicketStatus
		wantLabels []string
	}{
		{
			name:       "agent picks up open unassigned ticket",
			status:     domain.TicketStatusOpen,
			role:       domain.RoleAgent,
			userID:     "a1",
			ticket:     domain.TicketRef{CreatedBy: "u1"},
			wantTo:     []domain.TicketStatus{domain.TicketStatusInProgress},
			wantLabels: []string{"Start Working"},
		},
		{
			name:       "creator closes trivial open ticket",
			status:     domain.TicketStatusOpen,
			role:       domain.RoleUser,
			userID:     "u1",
			ticket:     domain.TicketRef{CreatedBy: "u1"},
			wantTo:     []domain.TicketStatus{domain.TicketStatusClosed},
			wantLabels: []string{"Close as Trivial"},
		},
		{
			name:   "non-creator user sees nothing on resolved ticket",
			status: domain.TicketStatusResolved,
			role:   domain.RoleUser,
			userID: "u2",
			ticket: domain.TicketRef{CreatedBy: "u1"},
		},
		{
			name:   "agent blocked by foreign assignment",
			status: domain.TicketStatusInProgress,
			role:   domain.RoleAgent,
			userID: "a1",
			ticket: domain.TicketRef{CreatedBy: "u1", AssignedTo: strptr("a2")},
		},
		{
			name:       "admin overrides out of closed",
			status:     domain.TicketStatusClosed,
			role:       domain.RoleAdmin,
			userID:     "adm",
			ticket:     domain.TicketRef{CreatedBy: "u1", AssignedTo: strptr("a2")},
			wantTo:     []domain.TicketStatus{domain.TicketStatusOpen, domain.TicketStatusInProgress},
			wantLabels: []string{"Reopen Ticket", "Reopen & Start"},
		},
		{
			name:       "creator decides on resolved ticket",
			status:     domain.TicketStatusResolved,
			role:       domain.RoleUser,
			userID:     "u1",
			ticket:     domain.TicketRef{CreatedBy: "u1", AssignedTo: strptr("a1")},
			wantTo:     []domain.TicketStatus{domain.TicketStatusClosed, domain.TicketStatusReopened},
			wantLabels: []string{"Confirm & Close", "Reopen"},
		},
		{
			name:       "self-assigned agent works like unassigned",
			status:     domain.TicketStatusReopened,
			role:       domain.RoleAgent,
			userID:     "a1",
			ticket:     domain.TicketRef{CreatedBy: "u1", AssignedTo: strptr("a1")},
			wantTo:     []domain.TicketStatus{domain.TicketStatusInProgress},
			wantLabels: []string{"Resume Working"},
		},
		{
			name:   "creator has no move from in_progress",
			status: domain.TicketStatusInProgress,
			role:   domain.RoleUser,
			userID: "u1",
			ticket: domain.TicketRef{CreatedBy: "u1"},
		},
		{
			name:   "agent cannot use admin override from closed",
			status: domain.TicketStatusClosed,
			role:   domain.RoleAgent,
			userID: "a1",
			ticket: domain.TicketRef{CreatedBy: "u1"},
		},
		{
			name:   "creator cannot reopen closed ticket",
			status: domain.TicketStatusClosed,
			role:   domain.RoleUser,
			userID: "u1",
			ticket: domain.TicketRef{CreatedBy: "u1"},
		},
		{
			name:   "unknown status yields nothing",
			status: domain.TicketStatus("archived"),
			role:   domain.RoleAdmin,
			userID: "adm",
			ticket: domain.TicketRef{CreatedBy: "u1"},
		},
		{
			name:   "unknown role yields nothing",
			status: domain.TicketStatusOpen,
			role:   domain.UserRole("superuser"),
			userID: "x",
			ticket: domain.TicketRef{CreatedBy: "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidTransitions(tt.status, tt.role, tt.userID, tt.ticket)
			require.Len(t, got, len(tt.wantTo))
			for i, tr := range got {
				assert.Equal(t, tt.status, tr.From)
				assert.Equal(t, tt.wantTo[i], tr.To)
				assert.Equal(t, tt.wantLabels[i], tr.Label)
			}
		})
	}
}

func TestValidTransitions_Deterministic(t *testing.T) {
	ticket := domain.TicketRef{CreatedBy: "u1", AssignedTo: strptr("a1")}
	for _, role := range []domain.UserRole{domain.RoleUser, domain.RoleAgent, domain.RoleAdmin} {
		for _, status := range allStatuses() {
			first := ValidTransitions(status, role, "a1", ticket)
			for i := 0; i < 5; i++ {
				assert.Equal(t, first, ValidTransitions(status, role, "a1", ticket),
					"status=%s role=%s", status, role)
			}
		}
	}
}

// Admins reach every (from, to) pair a user or agent can reach under any
// ownership configuration, while the closed-* override rows stay admin-only.
func TestValidTransitions_AdminSuperset(t *testing.T) {
	owned := domain.TicketRef{CreatedBy: "me"}
	for _, status := range allStatuses() {
		adminTo := map[domain.TicketStatus]bool{}
		for _, tr := range ValidTransitions(status, domain.RoleAdmin, "me", owned) {
			adminTo[tr.To] = true
		}
		for _, role := range []domain.UserRole{domain.RoleUser, domain.RoleAgent} {
			for _, tr := range ValidTransitions(status, role, "me", owned) {
				assert.True(t, adminTo[tr.To],
					"%s->%s reachable by %s but not admin", status, tr.To, role)
			}
		}
	}

	for _, role := range []domain.UserRole{domain.RoleUser, domain.RoleAgent} {
		assert.False(t, CanTransition(domain.TicketStatusClosed, domain.TicketStatusOpen, role, "me", owned))
		assert.False(t, CanTransition(domain.TicketStatusClosed, domain.TicketStatusInProgress, role, "me", owned))
	}
}

func TestValidTransitions_OwnershipGate(t *testing.T) {
	foreign := domain.TicketRef{CreatedBy: "someone-else"}
	for _, status := range allStatuses() {
		assert.Empty(t, ValidTransitions(status, domain.RoleUser, "me", foreign), "status=%s", status)
	}
}

func TestValidTransitions_AssignmentGate(t *testing.T) {
	taken := domain.TicketRef{CreatedBy: "u1", AssignedTo: strptr("other-agent")}
	for _, status := range allStatuses() {
		assert.Empty(t, ValidTransitions(status, domain.RoleAgent, "me", taken), "status=%s", status)
	}
}

func TestCanTransition(t *testing.T) {
	ticket := domain.TicketRef{CreatedBy: "u1"}

	assert.True(t, CanTransition(domain.TicketStatusOpen, domain.TicketStatusInProgress, domain.RoleAgent, "a1", ticket))
	assert.True(t, CanTransition(domain.TicketStatusOpen, domain.TicketStatusClosed, domain.RoleUser, "u1", ticket))
	assert.False(t, CanTransition(domain.TicketStatusOpen, domain.TicketStatusResolved, domain.RoleAgent, "a1", ticket))
	assert.False(t, CanTransition(domain.TicketStatusOpen, domain.TicketStatusClosed, domain.RoleUser, "u2", ticket))
	assert.False(t, CanTransition(domain.TicketStatusOpen, domain.TicketStatusInProgress, domain.RoleUser, "u1", ticket))
}

func TestFindTransition(t *testing.T) {
	ticket := domain.TicketRef{CreatedBy: "u1"}

	tr, ok := FindTransition(domain.TicketStatusInProgress, domain.TicketStatusResolved, domain.RoleAgent, "a1", ticket)
	require.True(t, ok)
	assert.Equal(t, "Mark Resolved", tr.Label)

	_, ok = FindTransition(domain.TicketStatusInProgress, domain.TicketStatusClosed, domain.RoleAgent, "a1", ticket)
	assert.False(t, ok)
}

func allStatuses() []domain.TicketStatus {
	return []domain.TicketStatus{
		domain.TicketStatusOpen,
		domain.TicketStatusInProgress,
		domain.TicketStatusResolved,
		domain.TicketStatusReopened,
		domain.TicketStatusClosed,
	}
}
