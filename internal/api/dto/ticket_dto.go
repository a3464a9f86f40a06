package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/workflow"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Priority    domain.TicketPriority `json:"priority"`
}

// UpdateTicketRequest payload; omitted fields are unchanged.
type UpdateTicketRequest struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Priority    *domain.TicketPriority `json:"priority"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// AssignTicketRequest payload; null assignee unassigns.
type AssignTicketRequest struct {
	AssigneeID *string `json:"assignee_id"`
}

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Body string `json:"body"`
}

// TransitionOption is one action the caller may take, ready to render as a
// button.
type TransitionOption struct {
	To          domain.TicketStatus `json:"to"`
	Label       string              `json:"label"`
	Description string              `json:"description"`
}

// TicketSummary response.
type TicketSummary struct {
	ID           string                `json:"id"`
	ExternalKey  string                `json:"external_key"`
	Title        string                `json:"title"`
	Status       domain.TicketStatus   `json:"status"`
	StatusInfo   workflow.StatusInfo   `json:"status_info"`
	Priority     domain.TicketPriority `json:"priority"`
	PriorityInfo workflow.PriorityInfo `json:"priority_info"`
	CreatedBy    string                `json:"created_by"`
	AssignedTo   *string               `json:"assigned_to"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// TicketDetailResponse provides full ticket info plus the caller's available
// actions.
type TicketDetailResponse struct {
	TicketSummary
	Description string             `json:"description"`
	ClosedAt    *time.Time         `json:"closed_at"`
	Transitions []TransitionOption `json:"transitions"`
	Comments    []CommentResponse  `json:"comments"`
}

// CommentResponse represents a thread entry.
type CommentResponse struct {
	ID        string    `json:"id"`
	AuthorID  *string   `json:"author_id"`
	Body      string    `json:"body"`
	System    bool      `json:"system"`
	CreatedAt time.Time `json:"created_at"`
}
