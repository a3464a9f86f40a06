package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/workflow"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// TicketService coordinates ticket workflows. All status mutations pass
// through the workflow resolver; this is the authoritative enforcement
// point, not a convenience check.
type TicketService struct {
	tickets    repository.TicketRepository
	comments   repository.CommentRepository
	profiles   repository.ProfileRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for ticket service.
type TicketDependencies struct {
	TicketRepo  repository.TicketRepository
	CommentRepo repository.CommentRepository
	ProfileRepo repository.ProfileRepository
	Dispatcher  events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
}

// TicketUpdateInput describes editable fields; nil leaves a field unchanged.
type TicketUpdateInput struct {
	Title       *string
	Description *string
	Priority    *domain.TicketPriority
}

// TicketListInput describes listing filters.
type TicketListInput struct {
	Statuses    []domain.TicketStatus
	Priorities  []domain.TicketPriority
	SearchTerm  *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		comments:   deps.CommentRepo,
		profiles:   deps.ProfileRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTicket creates a ticket. Status is pinned to open; the only way out
// is a validated transition.
func (s *TicketService) CreateTicket(ctx context.Context, actor Actor, input TicketCreateInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}
	if !priority.Valid() {
		return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": priority})
	}

	ticket := &domain.Ticket{
		ExternalKey: generateTicketKey(),
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Status:      domain.TicketStatusOpen,
		Priority:    priority,
		CreatedBy:   actor.UserID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    actor.eventActor(),
		Payload: events.TicketCreatedPayload{
			Priority: ticket.Priority,
			Title:    ticket.Title,
		},
	})
	return ticket, nil
}

// ListTickets returns tickets visible to the actor: everything for roles
// with the view-all flag, otherwise tickets the actor created or holds.
func (s *TicketService) ListTickets(ctx context.Context, actor Actor, input TicketListInput) ([]domain.Ticket, error) {
	filter := repository.TicketFilter{
		Statuses:    input.Statuses,
		Priorities:  input.Priorities,
		SearchTerm:  input.SearchTerm,
		CreatedFrom: input.CreatedFrom,
		CreatedTo:   input.CreatedTo,
		Limit:       input.Limit,
		Offset:      input.Offset,
	}
	if !workflow.PermissionsFor(actor.Role).CanViewAllTickets {
		viewerID := actor.UserID
		filter.ViewerID = &viewerID
	}
	tickets, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// GetTicket fetches a ticket the actor may access.
func (s *TicketService) GetTicket(ctx context.Context, actor Actor, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	if !workflow.CanAccessTicket(actor.Role, actor.UserID, ticket.Ref()) {
		return nil, apperrors.NewForbidden("access denied")
	}
	return ticket, nil
}

// AvailableTransitions returns the actor's currently valid moves.
func (s *TicketService) AvailableTransitions(ctx context.Context, actor Actor, ticketID string) ([]workflow.StatusTransition, error) {
	ticket, err := s.GetTicket(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}
	return workflow.ValidTransitions(ticket.Status, actor.Role, actor.UserID, ticket.Ref()), nil
}

// UpdateStatus performs a validated status transition. A move the resolver
// does not offer is rejected with an authorization failure, distinguishable
// from not-found and validation errors. On success an immutable audit
// comment is appended and an event published.
func (s *TicketService) UpdateStatus(ctx context.Context, actor Actor, ticketID string, newStatus domain.TicketStatus) (*domain.Ticket, error) {
	if !newStatus.Valid() {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": newStatus})
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	transition, ok := workflow.FindTransition(ticket.Status, newStatus, actor.Role, actor.UserID, ticket.Ref())
	if !ok {
		return nil, apperrors.NewForbidden("status transition not permitted")
	}

	oldStatus := ticket.Status
	ticket.Status = newStatus
	if newStatus == domain.TicketStatusClosed {
		now := time.Now()
		ticket.ClosedAt = &now
	} else {
		ticket.ClosedAt = nil
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	if err := s.recordAudit(ctx, ticket.ID, "Status changed to "+workflow.StatusDisplay(newStatus).Label); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		Actor:    actor.eventActor(),
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
			Label:     transition.Label,
		},
	})
	return ticket, nil
}

// UpdateTicket edits title, description or priority. Allowed for the
// creator, the assignee, or roles holding the edit-any flag.
func (s *TicketService) UpdateTicket(ctx context.Context, actor Actor, ticketID string, input TicketUpdateInput) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	if !s.canEdit(actor, ticket) {
		return nil, apperrors.NewForbidden("edit denied")
	}

	oldPriority := ticket.Priority
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, apperrors.NewValidationError("title required", nil)
		}
		ticket.Title = title
	}
	if input.Description != nil {
		ticket.Description = strings.TrimSpace(*input.Description)
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": *input.Priority})
		}
		ticket.Priority = *input.Priority
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	if ticket.Priority != oldPriority {
		if err := s.recordAudit(ctx, ticket.ID, "Priority changed to "+workflow.PriorityDisplay(ticket.Priority).Label); err != nil {
			return nil, apperrors.MapError(err)
		}
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketPriorityChanged,
			TicketID: ticket.ID,
			Actor:    actor.eventActor(),
			Payload: events.TicketPriorityChangedPayload{
				OldPriority: oldPriority,
				NewPriority: ticket.Priority,
			},
		})
	}
	return ticket, nil
}

// AssignTicket sets or clears the assignee. Requires the assign flag; the
// assignee must be an active agent or admin profile.
func (s *TicketService) AssignTicket(ctx context.Context, actor Actor, ticketID string, assigneeID *string) (*domain.Ticket, error) {
	if !workflow.PermissionsFor(actor.Role).CanAssignTickets {
		return nil, apperrors.NewForbidden("assignment denied")
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	audit := "Ticket unassigned"
	if assigneeID != nil {
		assignee, err := s.profiles.GetByID(ctx, *assigneeID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("profile", map[string]any{"profile_id": *assigneeID})
			}
			return nil, apperrors.MapError(err)
		}
		if !assignee.Role.Staff() {
			return nil, apperrors.NewConflict("assignee must be an agent or admin", map[string]any{"profile_id": assignee.ID})
		}
		if !assignee.Active {
			return nil, apperrors.NewConflict("assignee inactive", map[string]any{"profile_id": assignee.ID})
		}
		audit = "Assigned to " + assignee.Name
	}

	ticket.AssignedTo = assigneeID
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.recordAudit(ctx, ticket.ID, audit); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		Actor:    actor.eventActor(),
		Payload:  events.TicketAssignedPayload{AssigneeID: assigneeID},
	})
	return ticket, nil
}

// DeleteTicket removes a ticket and its comments. Admin-only via the
// delete flag.
func (s *TicketService) DeleteTicket(ctx context.Context, actor Actor, ticketID string) error {
	if !workflow.PermissionsFor(actor.Role).CanDeleteTickets {
		return apperrors.NewForbidden("deletion denied")
	}
	if err := s.tickets.Delete(ctx, ticketID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// AddComment appends a thread comment to a ticket the actor may access.
func (s *TicketService) AddComment(ctx context.Context, actor Actor, ticketID, body string) (*domain.TicketComment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.NewValidationError("body required", nil)
	}
	ticket, err := s.GetTicket(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}

	authorID := actor.UserID
	comment := &domain.TicketComment{
		TicketID: ticket.ID,
		AuthorID: &authorID,
		Body:     body,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCommentAdded,
		TicketID: ticket.ID,
		Actor:    actor.eventActor(),
		Payload: events.TicketCommentAddedPayload{
			CommentID:   comment.ID,
			BodyPreview: stringPreview(comment.Body, 120),
		},
	})
	return comment, nil
}

// ListComments returns the ticket thread, audit entries included.
func (s *TicketService) ListComments(ctx context.Context, actor Actor, ticketID string) ([]domain.TicketComment, error) {
	ticket, err := s.GetTicket(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return comments, nil
}

func (s *TicketService) canEdit(actor Actor, ticket *domain.Ticket) bool {
	if workflow.PermissionsFor(actor.Role).CanEditAnyTicket {
		return true
	}
	if ticket.CreatedBy == actor.UserID {
		return true
	}
	return ticket.AssignedTo != nil && *ticket.AssignedTo == actor.UserID
}

// recordAudit appends a system comment; these entries are the audit trail.
func (s *TicketService) recordAudit(ctx context.Context, ticketID, body string) error {
	if s.comments == nil {
		return nil
	}
	return s.comments.Create(ctx, &domain.TicketComment{
		TicketID: ticketID,
		Body:     body,
		System:   true,
	})
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func generateTicketKey() string {
	return "HD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
