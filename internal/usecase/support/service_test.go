package support

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainSupport "ewaste-tracker/internal/domain/support"
	appErrors "ewaste-tracker/pkg/errors"
)

type fakeTicketRepo struct {
	tickets map[uuid.UUID]*domainSupport.Ticket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[uuid.UUID]*domainSupport.Ticket)}
}

func (f *fakeTicketRepo) Create(_ context.Context, ticket *domainSupport.Ticket) error {
	if ticket.ID == uuid.Nil {
		ticket.ID = uuid.New()
	}
	clone := *ticket
	f.tickets[ticket.ID] = &clone
	return nil
}

func (f *fakeTicketRepo) GetByID(_ context.Context, ticketID uuid.UUID) (*domainSupport.Ticket, error) {
	ticket, ok := f.tickets[ticketID]
	if !ok {
		return nil, domainSupport.ErrTicketNotFound
	}
	clone := *ticket
	return &clone, nil
}

func (f *fakeTicketRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*domainSupport.Ticket, error) {
	var out []*domainSupport.Ticket
	for _, ticket := range f.tickets {
		if ticket.UserID == userID {
			clone := *ticket
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeTicketRepo) ListAll(_ context.Context) ([]*domainSupport.Ticket, error) {
	var out []*domainSupport.Ticket
	for _, ticket := range f.tickets {
		clone := *ticket
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeTicketRepo) Update(_ context.Context, ticket *domainSupport.Ticket) error {
	if _, ok := f.tickets[ticket.ID]; !ok {
		return domainSupport.ErrTicketNotFound
	}
	clone := *ticket
	f.tickets[ticket.ID] = &clone
	return nil
}

func TestCreate_OpensTicket(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewService(repo)
	userID := uuid.New()

	resp, err := svc.Create(context.Background(), userID, &CreateTicketRequest{
		Subject:     "Pickup delayed",
		Description: "My scheduled pickup did not arrive yesterday.",
	})
	require.NoError(t, err)

	assert.Equal(t, "Open", resp.Status)
	assert.Equal(t, userID, resp.UserID)
	assert.Nil(t, resp.ResolvedAt)
}

func TestCreate_RejectsShortDescription(t *testing.T) {
	svc := NewService(newFakeTicketRepo())

	_, err := svc.Create(context.Background(), uuid.New(), &CreateTicketRequest{
		Subject:     "Help",
		Description: "short",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeValidation, appErrors.CodeOf(err))
}

func TestReply_ResolvesTicket(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewService(repo)
	userID := uuid.New()

	created, err := svc.Create(context.Background(), userID, &CreateTicketRequest{
		Subject:     "Pickup delayed",
		Description: "My scheduled pickup did not arrive yesterday.",
	})
	require.NoError(t, err)

	resp, err := svc.Reply(context.Background(), created.ID, &ReplyRequest{
		Reply:   "A new pickup has been scheduled for tomorrow.",
		Resolve: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Resolved", resp.Status)
	require.NotNil(t, resp.AdminReply)
	assert.NotNil(t, resp.ResolvedAt)

	stored := repo.tickets[created.ID]
	assert.Equal(t, domainSupport.TicketResolved, stored.Status)
}

func TestReply_UnknownTicket(t *testing.T) {
	svc := NewService(newFakeTicketRepo())

	_, err := svc.Reply(context.Background(), uuid.New(), &ReplyRequest{Reply: "Hello"})
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeNotFound, appErrors.CodeOf(err))
}

func TestMyTickets_ScopedToUser(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewService(repo)
	first, second := uuid.New(), uuid.New()

	_, err := svc.Create(context.Background(), first, &CreateTicketRequest{
		Subject:     "Pickup delayed",
		Description: "My scheduled pickup did not arrive yesterday.",
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), second, &CreateTicketRequest{
		Subject:     "Wrong address",
		Description: "The pickup address on my request is outdated.",
	})
	require.NoError(t, err)

	mine, err := svc.MyTickets(context.Background(), first)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first, mine[0].UserID)

	all, err := svc.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
