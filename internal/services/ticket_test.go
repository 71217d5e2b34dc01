package services

import (
	"context"
	"testing"
	"time"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/entities"
	"helpdesk-system/internal/events"
	"helpdesk-system/pkg/constants"
	"helpdesk-system/pkg/contextkeys"
	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/eventbus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTicketRepo struct {
	tickets map[uint64]*entities.Ticket
	nextID  uint64
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[uint64]*entities.Ticket), nextID: 1}
}

func (r *fakeTicketRepo) CreateTicket(ctx context.Context, ticket entities.Ticket) (uint64, error) {
	ticket.ID = r.nextID
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	r.tickets[ticket.ID] = &ticket
	r.nextID++
	return ticket.ID, nil
}

func (r *fakeTicketRepo) FindTicketByID(ctx context.Context, id uint64) (*entities.Ticket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *ticket
	return &copied, nil
}

func (r *fakeTicketRepo) UpdateTicket(ctx context.Context, ticket *entities.Ticket) error {
	if _, ok := r.tickets[ticket.ID]; !ok {
		return apperrors.ErrNotFound
	}
	copied := *ticket
	r.tickets[ticket.ID] = &copied
	return nil
}

func (r *fakeTicketRepo) DeleteTicket(ctx context.Context, id uint64) error {
	if _, ok := r.tickets[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.tickets, id)
	return nil
}

func (r *fakeTicketRepo) GetTickets(ctx context.Context, filter dto.TicketFilterDTO, limit, offset uint64) ([]entities.Ticket, uint64, error) {
	var out []entities.Ticket
	for _, t := range r.tickets {
		if filter.ReportedByID != 0 && t.ReportedByID != filter.ReportedByID {
			continue
		}
		out = append(out, *t)
	}
	return out, uint64(len(out)), nil
}

type fakeCommentRepo struct {
	comments []entities.TicketComment
	nextID   uint64
}

func (r *fakeCommentRepo) CreateComment(ctx context.Context, ticketID, authorID uint64, message string) (uint64, error) {
	r.nextID++
	r.comments = append(r.comments, entities.TicketComment{
		ID: r.nextID, TicketID: ticketID, AuthorID: authorID, Message: message, CreatedAt: time.Now(),
	})
	return r.nextID, nil
}

func (r *fakeCommentRepo) GetCommentsByTicket(ctx context.Context, ticketID uint64) ([]entities.TicketComment, error) {
	var out []entities.TicketComment
	for _, c := range r.comments {
		if c.TicketID == ticketID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeViewRepo struct {
	viewed map[[2]uint64]bool
}

func newFakeViewRepo() *fakeViewRepo {
	return &fakeViewRepo{viewed: make(map[[2]uint64]bool)}
}

func (r *fakeViewRepo) UpsertView(ctx context.Context, ticketID, userID uint64) error {
	r.viewed[[2]uint64{ticketID, userID}] = true
	return nil
}

func (r *fakeViewRepo) HasViewed(ctx context.Context, ticketID, userID uint64) (bool, error) {
	return r.viewed[[2]uint64{ticketID, userID}], nil
}

type fakeUserRepo struct {
	users map[uint64]*entities.User
}

func (r *fakeUserRepo) FindUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

type auditCall struct {
	Action   string
	EntityID string
}

type fakeAuditSink struct {
	calls []auditCall
}

func (s *fakeAuditSink) Append(ctx context.Context, action, entityType, entityID string, details map[string]interface{}) {
	s.calls = append(s.calls, auditCall{Action: action, EntityID: entityID})
}

type ticketFixture struct {
	service TicketServiceInterface
	tickets *fakeTicketRepo
	views   *fakeViewRepo
	audit   *fakeAuditSink
	bus     *eventbus.Bus
}

func newTicketFixture() *ticketFixture {
	tickets := newFakeTicketRepo()
	views := newFakeViewRepo()
	audit := &fakeAuditSink{}
	bus := eventbus.New(zap.NewNop())
	users := &fakeUserRepo{users: map[uint64]*entities.User{
		10: {ID: 10, Email: "somchai@example.com", DisplayName: "Somchai", Role: constants.RoleUser, Active: true},
		99: {ID: 99, Email: "admin@example.com", DisplayName: "Admin", Role: constants.RoleAdmin, Active: true},
	}}

	return &ticketFixture{
		service: NewTicketService(tickets, &fakeCommentRepo{}, views, users, audit, bus, zap.NewNop()),
		tickets: tickets,
		views:   views,
		audit:   audit,
		bus:     bus,
	}
}

func actorCtx(userID uint64, role string) context.Context {
	ctx := context.WithValue(context.Background(), contextkeys.UserIDKey, userID)
	return context.WithValue(ctx, contextkeys.UserRoleKey, role)
}

func TestCreateTicketStartsOpen(t *testing.T) {
	f := newTicketFixture()

	published := make(chan eventbus.Event, 1)
	f.bus.Subscribe(events.TicketCreatedEventName, func(ctx context.Context, e eventbus.Event) error {
		published <- e
		return nil
	})

	ticket, err := f.service.CreateTicket(actorCtx(10, constants.RoleUser), dto.CreateTicketDTO{
		Title:       "VPN down",
		Description: "Cannot connect from home",
		Category:    constants.CategoryNetwork,
		Priority:    constants.PriorityHigh,
	})
	require.NoError(t, err)

	assert.Equal(t, constants.StatusOpen, ticket.Status)
	assert.Equal(t, uint64(10), ticket.ReportedByID)
	require.Len(t, f.audit.calls, 1)
	assert.Equal(t, "TICKET_CREATE", f.audit.calls[0].Action)

	select {
	case e := <-published:
		created, ok := e.(events.TicketCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, ticket.ID, created.Ticket.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("creation event was not published")
	}
}

func TestUpdateTicketDeniedForStranger(t *testing.T) {
	f := newTicketFixture()
	ticket, err := f.service.CreateTicket(actorCtx(10, constants.RoleUser), dto.CreateTicketDTO{
		Title: "x", Description: "y", Category: constants.CategoryOther, Priority: constants.PriorityLow,
	})
	require.NoError(t, err)

	before, err := f.tickets.FindTicketByID(context.Background(), ticket.ID)
	require.NoError(t, err)

	_, err = f.service.UpdateTicket(actorCtx(55, constants.RoleUser), ticket.ID, dto.UpdateTicketDTO{
		Title: strPtr("hijacked"),
	})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// The stored ticket is untouched by the denied attempt.
	after, err := f.tickets.FindTicketByID(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUpdateTicketStatusChangePublishesEvent(t *testing.T) {
	f := newTicketFixture()
	ticket, err := f.service.CreateTicket(actorCtx(10, constants.RoleUser), dto.CreateTicketDTO{
		Title: "x", Description: "y", Category: constants.CategoryOther, Priority: constants.PriorityLow,
	})
	require.NoError(t, err)

	published := make(chan eventbus.Event, 1)
	f.bus.Subscribe(events.TicketUpdatedEventName, func(ctx context.Context, e eventbus.Event) error {
		published <- e
		return nil
	})

	updated, err := f.service.UpdateTicket(actorCtx(99, constants.RoleAdmin), ticket.ID, dto.UpdateTicketDTO{
		Status: strPtr(constants.StatusInProgress),
	})
	require.NoError(t, err)
	assert.Equal(t, constants.StatusInProgress, updated.Status)

	select {
	case e := <-published:
		event, ok := e.(events.TicketUpdatedEvent)
		require.True(t, ok)
		assert.Equal(t, constants.StatusOpen, event.OldStatus)
		assert.Equal(t, constants.StatusInProgress, event.Ticket.Status)
	case <-time.After(2 * time.Second):
		t.Fatal("update event was not published")
	}
}

func TestUpdateTicketReResolvePersistsRefreshedTimestamp(t *testing.T) {
	f := newTicketFixture()
	ticket, err := f.service.CreateTicket(actorCtx(10, constants.RoleUser), dto.CreateTicketDTO{
		Title: "x", Description: "y", Category: constants.CategoryOther, Priority: constants.PriorityLow,
	})
	require.NoError(t, err)

	first, err := f.service.UpdateTicket(actorCtx(99, constants.RoleAdmin), ticket.ID, dto.UpdateTicketDTO{
		Status: strPtr(constants.StatusResolved),
	})
	require.NoError(t, err)
	require.True(t, first.ResolvedAt.Valid)

	time.Sleep(5 * time.Millisecond)
	second, err := f.service.UpdateTicket(actorCtx(99, constants.RoleAdmin), ticket.ID, dto.UpdateTicketDTO{
		Status: strPtr(constants.StatusResolved),
	})
	require.NoError(t, err)

	// The refreshed timestamp is both returned and stored.
	assert.True(t, second.ResolvedAt.Time.After(first.ResolvedAt.Time))
	stored, err := f.tickets.FindTicketByID(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ResolvedAt, stored.ResolvedAt)
}

func TestUpdateTicketDroppedFieldsAreNotAnError(t *testing.T) {
	f := newTicketFixture()
	ticket, err := f.service.CreateTicket(actorCtx(10, constants.RoleUser), dto.CreateTicketDTO{
		Title: "x", Description: "y", Category: constants.CategoryOther, Priority: constants.PriorityLow,
	})
	require.NoError(t, err)
	auditBefore := len(f.audit.calls)

	// Owner tries an admin-only field: the patch is a no-op, not a failure.
	updated, err := f.service.UpdateTicket(actorCtx(10, constants.RoleUser), ticket.ID, dto.UpdateTicketDTO{
		Status: strPtr(constants.StatusClosed),
	})
	require.NoError(t, err)
	assert.Equal(t, constants.StatusOpen, updated.Status)
	assert.Len(t, f.audit.calls, auditBefore)
}

func TestDeleteTicketAdminOnly(t *testing.T) {
	f := newTicketFixture()
	ticket, err := f.service.CreateTicket(actorCtx(10, constants.RoleUser), dto.CreateTicketDTO{
		Title: "x", Description: "y", Category: constants.CategoryOther, Priority: constants.PriorityLow,
	})
	require.NoError(t, err)

	err = f.service.DeleteTicket(actorCtx(10, constants.RoleUser), ticket.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	require.NoError(t, f.service.DeleteTicket(actorCtx(99, constants.RoleAdmin), ticket.ID))
	_, err = f.tickets.FindTicketByID(context.Background(), ticket.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteMissingTicketIsNotFound(t *testing.T) {
	f := newTicketFixture()
	err := f.service.DeleteTicket(actorCtx(99, constants.RoleAdmin), 12345)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFindTicketMarksViewAndUnreadFlag(t *testing.T) {
	f := newTicketFixture()
	created, err := f.service.CreateTicket(actorCtx(10, constants.RoleUser), dto.CreateTicketDTO{
		Title: "x", Description: "y", Category: constants.CategoryOther, Priority: constants.PriorityLow,
	})
	require.NoError(t, err)

	first, err := f.service.FindTicket(actorCtx(10, constants.RoleUser), created.ID)
	require.NoError(t, err)
	assert.True(t, first.IsNew, "fresh unseen ticket must be flagged new")

	second, err := f.service.FindTicket(actorCtx(10, constants.RoleUser), created.ID)
	require.NoError(t, err)
	assert.False(t, second.IsNew, "a viewed ticket is no longer new")
}

func TestFindTicketOldTicketIsNotNew(t *testing.T) {
	f := newTicketFixture()
	created, err := f.service.CreateTicket(actorCtx(10, constants.RoleUser), dto.CreateTicketDTO{
		Title: "x", Description: "y", Category: constants.CategoryOther, Priority: constants.PriorityLow,
	})
	require.NoError(t, err)
	f.tickets.tickets[created.ID].CreatedAt = time.Now().Add(-48 * time.Hour)

	got, err := f.service.FindTicket(actorCtx(10, constants.RoleUser), created.ID)
	require.NoError(t, err)
	assert.False(t, got.IsNew)
}

func TestGetTicketsScopedToOwnerForUsers(t *testing.T) {
	f := newTicketFixture()
	_, err := f.service.CreateTicket(actorCtx(10, constants.RoleUser), dto.CreateTicketDTO{
		Title: "mine", Description: "y", Category: constants.CategoryOther, Priority: constants.PriorityLow,
	})
	require.NoError(t, err)
	_, err = f.service.CreateTicket(actorCtx(99, constants.RoleAdmin), dto.CreateTicketDTO{
		Title: "theirs", Description: "y", Category: constants.CategoryOther, Priority: constants.PriorityLow,
	})
	require.NoError(t, err)

	mine, total, err := f.service.GetTickets(actorCtx(10, constants.RoleUser), dto.TicketFilterDTO{}, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	require.Len(t, mine, 1)
	assert.Equal(t, "mine", mine[0].Title)

	all, total, err := f.service.GetTickets(actorCtx(99, constants.RoleAdmin), dto.TicketFilterDTO{}, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	assert.Len(t, all, 2)
}

func TestCommentsRequireAccess(t *testing.T) {
	f := newTicketFixture()
	ticket, err := f.service.CreateTicket(actorCtx(10, constants.RoleUser), dto.CreateTicketDTO{
		Title: "x", Description: "y", Category: constants.CategoryOther, Priority: constants.PriorityLow,
	})
	require.NoError(t, err)

	_, err = f.service.AddComment(actorCtx(55, constants.RoleUser), ticket.ID, dto.CreateTicketCommentDTO{Message: "hi"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	comments, err := f.service.AddComment(actorCtx(10, constants.RoleUser), ticket.ID, dto.CreateTicketCommentDTO{Message: "any update?"})
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "any update?", comments[0].Message)
}
