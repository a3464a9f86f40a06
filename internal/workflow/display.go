// Package workflow implements the ticket status workflow engine: display
// metadata for statuses and priorities, the transition policy table, the
// transition resolver and the role permission matrix. Everything here is pure
// computation over immutable tables and is safe for concurrent use.
package workflow

import "github.com/spec-kit/helpdesk-service/internal/domain"

// StatusInfo carries render metadata for a ticket status.
type StatusInfo struct {
	Label       string `json:"label"`
	ColorToken  string `json:"color"`
	Description string `json:"description"`
}

// PriorityInfo carries render metadata for a ticket priority. Weight orders
// priorities for sorting, critical highest.
type PriorityInfo struct {
	Label       string `json:"label"`
	ColorToken  string `json:"color"`
	Description string `json:"description"`
	Weight      int    `json:"weight"`
}

var statusRegistry = map[domain.TicketStatus]StatusInfo{
	domain.TicketStatusOpen: {
		Label:       "Open",
		ColorToken:  "blue",
		Description: "Awaiting triage by the support team",
	},
	domain.TicketStatusInProgress: {
		Label:       "In Progress",
		ColorToken:  "yellow",
		Description: "An agent is actively working on this ticket",
	},
	domain.TicketStatusResolved: {
		Label:       "Resolved",
		ColorToken:  "green",
		Description: "Work is done, awaiting confirmation from the creator",
	},
	domain.TicketStatusReopened: {
		Label:       "Reopened",
		ColorToken:  "orange",
		Description: "The creator rejected the resolution",
	},
	domain.TicketStatusClosed: {
		Label:       "Closed",
		ColorToken:  "gray",
		Description: "No further work is expected",
	},
}

var priorityRegistry = map[domain.TicketPriority]PriorityInfo{
	domain.TicketPriorityLow: {
		Label:       "Low",
		ColorToken:  "gray",
		Description: "Minor issue, no urgency",
		Weight:      1,
	},
	domain.TicketPriorityMedium: {
		Label:       "Medium",
		ColorToken:  "blue",
		Description: "Standard priority",
		Weight:      2,
	},
	domain.TicketPriorityHigh: {
		Label:       "High",
		ColorToken:  "orange",
		Description: "Significant impact, handle soon",
		Weight:      3,
	},
	domain.TicketPriorityCritical: {
		Label:       "Critical",
		ColorToken:  "red",
		Description: "Severe impact, handle immediately",
		Weight:      4,
	},
}

// StatusDisplay returns render metadata for a status. Unrecognized values
// (corrupted rows) fall back to an Unknown record so rendering never fails.
func StatusDisplay(status domain.TicketStatus) StatusInfo {
	if info, ok := statusRegistry[status]; ok {
		return info
	}
	return StatusInfo{Label: "Unknown", ColorToken: "gray", Description: "Unrecognized status"}
}

// PriorityDisplay returns render metadata for a priority, with the same
// Unknown fallback as StatusDisplay. Unknown priorities sort last (weight 0).
func PriorityDisplay(priority domain.TicketPriority) PriorityInfo {
	if info, ok := priorityRegistry[priority]; ok {
		return info
	}
	return PriorityInfo{Label: "Unknown", ColorToken: "gray", Description: "Unrecognized priority"}
}
