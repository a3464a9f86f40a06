package service

import (
	"context"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/workflow"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// AnalyticsService aggregates ticket counts for dashboard views.
type AnalyticsService struct {
	analytics repository.AnalyticsRepository
}

// NewAnalyticsService constructs the service.
func NewAnalyticsService(analytics repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{analytics: analytics}
}

// StatusCount pairs a status with its count and display label.
type StatusCount struct {
	Status domain.TicketStatus `json:"status"`
	Label  string              `json:"label"`
	Count  int                 `json:"count"`
}

// PriorityCount pairs a priority with its count and display metadata.
type PriorityCount struct {
	Priority domain.TicketPriority `json:"priority"`
	Label    string                `json:"label"`
	Weight   int                   `json:"weight"`
	Count    int                   `json:"count"`
}

// Summary is the dashboard aggregate.
type Summary struct {
	Total      int             `json:"total"`
	Assigned   int             `json:"assigned"`
	Unassigned int             `json:"unassigned"`
	ByStatus   []StatusCount   `json:"by_status"`
	ByPriority []PriorityCount `json:"by_priority"`
}

// Summarize builds the dashboard aggregate; requires the analytics flag.
// Statuses follow lifecycle order, priorities descend by weight.
func (s *AnalyticsService) Summarize(ctx context.Context, actor Actor) (*Summary, error) {
	if !workflow.PermissionsFor(actor.Role).CanViewAnalytics {
		return nil, apperrors.NewForbidden("analytics denied")
	}

	byStatus, err := s.analytics.CountByStatus(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	byPriority, err := s.analytics.CountByPriority(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	assigned, unassigned, err := s.analytics.CountAssigned(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	summary := &Summary{Assigned: assigned, Unassigned: unassigned}
	for _, status := range []domain.TicketStatus{
		domain.TicketStatusOpen,
		domain.TicketStatusInProgress,
		domain.TicketStatusResolved,
		domain.TicketStatusReopened,
		domain.TicketStatusClosed,
	} {
		count := byStatus[status]
		summary.Total += count
		summary.ByStatus = append(summary.ByStatus, StatusCount{
			Status: status,
			Label:  workflow.StatusDisplay(status).Label,
			Count:  count,
		})
	}
	for _, priority := range []domain.TicketPriority{
		domain.TicketPriorityCritical,
		domain.TicketPriorityHigh,
		domain.TicketPriorityMedium,
		domain.TicketPriorityLow,
	} {
		info := workflow.PriorityDisplay(priority)
		summary.ByPriority = append(summary.ByPriority, PriorityCount{
			Priority: priority,
			Label:    info.Label,
			Weight:   info.Weight,
			Count:    byPriority[priority],
		})
	}
	return summary, nil
}
