package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

type fakeTicketRepo struct {
	tickets map[string]*domain.Ticket
	nextID  int
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[string]*domain.Ticket{}}
}

func (f *fakeTicketRepo) Create(_ context.Context, t *domain.Ticket) error {
	f.nextID++
	t.ID = "t" + strconv.Itoa(f.nextID)
	cp := *t
	f.tickets[t.ID] = &cp
	return nil
}

func (f *fakeTicketRepo) Update(_ context.Context, t *domain.Ticket) error {
	if _, ok := f.tickets[t.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *t
	f.tickets[t.ID] = &cp
	return nil
}

func (f *fakeTicketRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.tickets, id)
	return nil
}

func (f *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	t, ok := f.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTicketRepo) GetByExternalKey(_ context.Context, key string) (*domain.Ticket, error) {
	for _, t := range f.tickets {
		if t.ExternalKey == key {
			cp := *t
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	var out []domain.Ticket
	for _, t := range f.tickets {
		if filter.ViewerID != nil {
			if t.CreatedBy != *filter.ViewerID && (t.AssignedTo == nil || *t.AssignedTo != *filter.ViewerID) {
				continue
			}
		}
		out = append(out, *t)
	}
	return out, nil
}

type fakeCommentRepo struct {
	comments []domain.TicketComment
}

func (f *fakeCommentRepo) Create(_ context.Context, c *domain.TicketComment) error {
	c.ID = "c" + strconv.Itoa(len(f.comments)+1)
	f.comments = append(f.comments, *c)
	return nil
}

func (f *fakeCommentRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.TicketComment, error) {
	var out []domain.TicketComment
	for _, c := range f.comments {
		if c.TicketID == ticketID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeProfileRepo struct {
	profiles map[string]*domain.Profile
}

func (f *fakeProfileRepo) Create(_ context.Context, p *domain.Profile) error {
	p.ID = "p" + strconv.Itoa(len(f.profiles)+1)
	f.profiles[p.ID] = p
	return nil
}

func (f *fakeProfileRepo) Update(_ context.Context, p *domain.Profile) error {
	if _, ok := f.profiles[p.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.profiles[p.ID] = p
	return nil
}

func (f *fakeProfileRepo) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return p, nil
}

func (f *fakeProfileRepo) GetByEmail(_ context.Context, email string) (*domain.Profile, error) {
	for _, p := range f.profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeProfileRepo) List(_ context.Context, _ repository.ProfileFilter) ([]domain.Profile, error) {
	var out []domain.Profile
	for _, p := range f.profiles {
		out = append(out, *p)
	}
	return out, nil
}

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, e events.Event) error {
	d.published = append(d.published, e)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

type fixture struct {
	svc        *TicketService
	tickets    *fakeTicketRepo
	comments   *fakeCommentRepo
	profiles   *fakeProfileRepo
	dispatcher *recordingDispatcher
}

func newFixture() *fixture {
	tickets := newFakeTicketRepo()
	comments := &fakeCommentRepo{}
	profiles := &fakeProfileRepo{profiles: map[string]*domain.Profile{
		"u1":  {ID: "u1", Name: "Uma User", Role: domain.RoleUser, Active: true},
		"a1":  {ID: "a1", Name: "Avery Agent", Role: domain.RoleAgent, Active: true},
		"a2":  {ID: "a2", Name: "Alex Agent", Role: domain.RoleAgent, Active: true},
		"adm": {ID: "adm", Name: "Admin", Role: domain.RoleAdmin, Active: true},
	}}
	dispatcher := &recordingDispatcher{}
	svc := NewTicketService(TicketDependencies{
		TicketRepo:  tickets,
		CommentRepo: comments,
		ProfileRepo: profiles,
		Dispatcher:  dispatcher,
	})
	return &fixture{svc: svc, tickets: tickets, comments: comments, profiles: profiles, dispatcher: dispatcher}
}

func (f *fixture) seedTicket(t *testing.T, status domain.TicketStatus, createdBy string, assignedTo *string) *domain.Ticket {
	t.Helper()
	ticket := &domain.Ticket{
		ExternalKey: "HD-TEST",
		Title:       "printer on fire",
		Status:      status,
		Priority:    domain.TicketPriorityMedium,
		CreatedBy:   createdBy,
		AssignedTo:  assignedTo,
	}
	require.NoError(t, f.tickets.Create(context.Background(), ticket))
	return ticket
}

func userActor(id string) Actor  { return Actor{UserID: id, Role: domain.RoleUser} }
func agentActor(id string) Actor { return Actor{UserID: id, Role: domain.RoleAgent} }
func adminActor(id string) Actor { return Actor{UserID: id, Role: domain.RoleAdmin} }

func forbidden(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "FORBIDDEN", de.Code)
}

func TestCreateTicketPinsOpenStatus(t *testing.T) {
	f := newFixture()
	ticket, err := f.svc.CreateTicket(context.Background(), userActor("u1"), TicketCreateInput{
		Title: "  vpn broken  ",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Equal(t, domain.TicketPriorityMedium, ticket.Priority)
	assert.Equal(t, "vpn broken", ticket.Title)
	assert.Equal(t, "u1", ticket.CreatedBy)

	require.Len(t, f.dispatcher.published, 1)
	assert.Equal(t, events.EventTicketCreated, f.dispatcher.published[0].Type)
}

func TestUpdateStatusAgentPickup(t *testing.T) {
	f := newFixture()
	ticket := f.seedTicket(t, domain.TicketStatusOpen, "u1", nil)

	updated, err := f.svc.UpdateStatus(context.Background(), agentActor("a1"), ticket.ID, domain.TicketStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusInProgress, updated.Status)
	assert.Nil(t, updated.ClosedAt)

	// Audit comment appended.
	comments, err := f.comments.ListByTicket(context.Background(), ticket.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.True(t, comments[0].System)
	assert.Equal(t, "Status changed to In Progress", comments[0].Body)
	assert.Nil(t, comments[0].AuthorID)

	require.Len(t, f.dispatcher.published, 1)
	assert.Equal(t, events.EventTicketStatusChanged, f.dispatcher.published[0].Type)
}

func TestUpdateStatusRejectsForgedTransition(t *testing.T) {
	f := newFixture()
	ticket := f.seedTicket(t, domain.TicketStatusOpen, "u1", nil)

	// An agent may not close an open ticket; that row belongs to the creator.
	_, err := f.svc.UpdateStatus(context.Background(), agentActor("a1"), ticket.ID, domain.TicketStatusClosed)
	forbidden(t, err)

	// State and audit trail untouched.
	stored, _ := f.tickets.GetByID(context.Background(), ticket.ID)
	assert.Equal(t, domain.TicketStatusOpen, stored.Status)
	assert.Empty(t, f.comments.comments)
	assert.Empty(t, f.dispatcher.published)
}

func TestUpdateStatusAssignmentGate(t *testing.T) {
	f := newFixture()
	other := "a2"
	ticket := f.seedTicket(t, domain.TicketStatusInProgress, "u1", &other)

	_, err := f.svc.UpdateStatus(context.Background(), agentActor("a1"), ticket.ID, domain.TicketStatusResolved)
	forbidden(t, err)

	// The assignee themselves may resolve.
	updated, err := f.svc.UpdateStatus(context.Background(), agentActor("a2"), ticket.ID, domain.TicketStatusResolved)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusResolved, updated.Status)
}

func TestUpdateStatusUserCloseSetsClosedAt(t *testing.T) {
	f := newFixture()
	ticket := f.seedTicket(t, domain.TicketStatusResolved, "u1", nil)

	updated, err := f.svc.UpdateStatus(context.Background(), userActor("u1"), ticket.ID, domain.TicketStatusClosed)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusClosed, updated.Status)
	require.NotNil(t, updated.ClosedAt)

	// Admin override reopens and clears the timestamp.
	reopened, err := f.svc.UpdateStatus(context.Background(), adminActor("adm"), ticket.ID, domain.TicketStatusOpen)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusOpen, reopened.Status)
	assert.Nil(t, reopened.ClosedAt)
}

func TestUpdateStatusNotFound(t *testing.T) {
	f := newFixture()
	_, err := f.svc.UpdateStatus(context.Background(), adminActor("adm"), "missing", domain.TicketStatusOpen)
	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "NOT_FOUND", de.Code)
}

func TestAvailableTransitions(t *testing.T) {
	f := newFixture()
	ticket := f.seedTicket(t, domain.TicketStatusResolved, "u1", nil)

	got, err := f.svc.AvailableTransitions(context.Background(), userActor("u1"), ticket.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Confirm & Close", got[0].Label)
	assert.Equal(t, "Reopen", got[1].Label)

	// A non-creator user cannot even view the ticket.
	_, err = f.svc.AvailableTransitions(context.Background(), userActor("u2"), ticket.ID)
	forbidden(t, err)
}

func TestAssignTicket(t *testing.T) {
	f := newFixture()
	ticket := f.seedTicket(t, domain.TicketStatusOpen, "u1", nil)

	updated, err := f.svc.AssignTicket(context.Background(), agentActor("a1"), ticket.ID, strp("a2"))
	require.NoError(t, err)
	require.NotNil(t, updated.AssignedTo)
	assert.Equal(t, "a2", *updated.AssignedTo)

	// End-user profiles cannot hold tickets.
	_, err = f.svc.AssignTicket(context.Background(), agentActor("a1"), ticket.ID, strp("u1"))
	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "CONFLICT", de.Code)

	// Users lack the assign flag entirely.
	_, err = f.svc.AssignTicket(context.Background(), userActor("u1"), ticket.ID, strp("a1"))
	forbidden(t, err)

	// Unassign.
	updated, err = f.svc.AssignTicket(context.Background(), adminActor("adm"), ticket.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, updated.AssignedTo)
}

func TestDeleteTicketAdminOnly(t *testing.T) {
	f := newFixture()
	ticket := f.seedTicket(t, domain.TicketStatusClosed, "u1", nil)

	forbidden(t, f.svc.DeleteTicket(context.Background(), agentActor("a1"), ticket.ID))
	forbidden(t, f.svc.DeleteTicket(context.Background(), userActor("u1"), ticket.ID))

	require.NoError(t, f.svc.DeleteTicket(context.Background(), adminActor("adm"), ticket.ID))
	_, err := f.tickets.GetByID(context.Background(), ticket.ID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestListTicketsScoping(t *testing.T) {
	f := newFixture()
	f.seedTicket(t, domain.TicketStatusOpen, "u1", nil)
	f.seedTicket(t, domain.TicketStatusOpen, "u2", nil)
	assignee := "u1"
	f.seedTicket(t, domain.TicketStatusOpen, "u3", &assignee)

	mine, err := f.svc.ListTickets(context.Background(), userActor("u1"), TicketListInput{})
	require.NoError(t, err)
	assert.Len(t, mine, 2) // created + assigned

	all, err := f.svc.ListTickets(context.Background(), agentActor("a1"), TicketListInput{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUpdateTicketEditRights(t *testing.T) {
	f := newFixture()
	ticket := f.seedTicket(t, domain.TicketStatusOpen, "u1", nil)

	critical := domain.TicketPriorityCritical
	updated, err := f.svc.UpdateTicket(context.Background(), userActor("u1"), ticket.ID, TicketUpdateInput{Priority: &critical})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketPriorityCritical, updated.Priority)

	// Priority change leaves an audit entry.
	comments, _ := f.comments.ListByTicket(context.Background(), ticket.ID)
	require.Len(t, comments, 1)
	assert.Equal(t, "Priority changed to Critical", comments[0].Body)

	// Unrelated user may not edit; admin may.
	title := "new title"
	_, err = f.svc.UpdateTicket(context.Background(), userActor("u2"), ticket.ID, TicketUpdateInput{Title: &title})
	forbidden(t, err)

	updated, err = f.svc.UpdateTicket(context.Background(), adminActor("adm"), ticket.ID, TicketUpdateInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "new title", updated.Title)
}

func TestComments(t *testing.T) {
	f := newFixture()
	ticket := f.seedTicket(t, domain.TicketStatusOpen, "u1", nil)

	comment, err := f.svc.AddComment(context.Background(), userActor("u1"), ticket.ID, "any update?")
	require.NoError(t, err)
	assert.False(t, comment.System)
	require.NotNil(t, comment.AuthorID)
	assert.Equal(t, "u1", *comment.AuthorID)

	_, err = f.svc.AddComment(context.Background(), userActor("u2"), ticket.ID, "me too")
	forbidden(t, err)

	listed, err := f.svc.ListComments(context.Background(), agentActor("a1"), ticket.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func strp(s string) *string { return &s }
