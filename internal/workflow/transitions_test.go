package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func TestTransitionTable(t *testing.T) {
	table := Transitions()
	require.Len(t, table, 8)

	for _, tr := range table {
		assert.True(t, tr.From.Valid(), "from=%s", tr.From)
		assert.True(t, tr.To.Valid(), "to=%s", tr.To)
		assert.NotEqual(t, tr.From, tr.To)
		assert.NotEmpty(t, tr.AllowedRoles)
		assert.NotEmpty(t, tr.Label)
		assert.NotEmpty(t, tr.Description)
		for _, role := range tr.AllowedRoles {
			assert.True(t, role.Valid(), "role=%s", role)
		}
	}

	// No duplicate (from, to) pairs.
	seen := map[[2]domain.TicketStatus]bool{}
	for _, tr := range table {
		key := [2]domain.TicketStatus{tr.From, tr.To}
		assert.False(t, seen[key], "duplicate row %s->%s", tr.From, tr.To)
		seen[key] = true
	}

	// Override rows out of closed are admin-only.
	for _, tr := range table {
		if tr.From == domain.TicketStatusClosed {
			assert.Equal(t, []domain.UserRole{domain.RoleAdmin}, tr.AllowedRoles,
				"closed->%s must be admin-only", tr.To)
		}
	}
}

func TestTransitionsReturnsCopy(t *testing.T) {
	table := Transitions()
	table[0].Label = "mutated"
	assert.NotEqual(t, "mutated", Transitions()[0].Label)
}
