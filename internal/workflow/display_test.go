package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func TestStatusDisplay(t *testing.T) {
	for _, status := range allStatuses() {
		info := StatusDisplay(status)
		assert.NotEmpty(t, info.Label, "status=%s", status)
		assert.NotEmpty(t, info.ColorToken, "status=%s", status)
		assert.NotEmpty(t, info.Description, "status=%s", status)
		assert.NotEqual(t, "Unknown", info.Label, "status=%s", status)
	}

	assert.Equal(t, "In Progress", StatusDisplay(domain.TicketStatusInProgress).Label)
	assert.Equal(t, "Unknown", StatusDisplay(domain.TicketStatus("corrupt")).Label)
}

func TestPriorityDisplay(t *testing.T) {
	priorities := []domain.TicketPriority{
		domain.TicketPriorityLow,
		domain.TicketPriorityMedium,
		domain.TicketPriorityHigh,
		domain.TicketPriorityCritical,
	}

	// Weights strictly increase from low to critical.
	prev := 0
	for _, p := range priorities {
		info := PriorityDisplay(p)
		assert.NotEmpty(t, info.Label)
		assert.Greater(t, info.Weight, prev, "priority=%s", p)
		prev = info.Weight
	}

	unknown := PriorityDisplay(domain.TicketPriority("blocker"))
	assert.Equal(t, "Unknown", unknown.Label)
	assert.Zero(t, unknown.Weight)
}
