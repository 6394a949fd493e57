package crm

import (
	"context"
	"testing"

	"github.com/crm/backend/internal/domain/authz"
	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockServiceTicketRepository is a mock implementation of ServiceTicketRepository
type MockServiceTicketRepository struct {
	mock.Mock
}

func (m *MockServiceTicketRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.ServiceTicket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.ServiceTicket), args.Error(1)
}

func (m *MockServiceTicketRepository) FindByTicketNumber(ctx context.Context, ticketNumber string) (*crm.ServiceTicket, error) {
	args := m.Called(ctx, ticketNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.ServiceTicket), args.Error(1)
}

func (m *MockServiceTicketRepository) FindAll(ctx context.Context, filter crm.ServiceTicketFilter) ([]crm.ServiceTicket, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]crm.ServiceTicket), args.Error(1)
}

func (m *MockServiceTicketRepository) Save(ctx context.Context, ticket *crm.ServiceTicket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockServiceTicketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockServiceTicketRepository) Count(ctx context.Context, filter crm.ServiceTicketFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockServiceTicketRepository) CountByStatus(ctx context.Context, status crm.TicketStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockServiceTicketRepository) NextTicketNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

var _ crm.ServiceTicketRepository = (*MockServiceTicketRepository)(nil)

func engineerActor() authz.Actor {
	return authz.Actor{
		UserID: uuid.MustParse("44444444-4444-4444-4444-444444444444"),
		Role:   identity.RoleEngineer,
	}
}

func createTestClient(t *testing.T) *crm.Client {
	t.Helper()
	client, err := crm.NewClient("Globex Ltd", "Hank Scorpio")
	require.NoError(t, err)
	return client
}

func createTestTicket(t *testing.T, clientID uuid.UUID) *crm.ServiceTicket {
	t.Helper()
	ticket, err := crm.NewServiceTicket("TKT-2026-00001", clientID, "Printer on fire",
		"It has been on fire for a while", crm.TicketPriorityHigh, uuid.New())
	require.NoError(t, err)
	return ticket
}

// =============================================================================
// TicketService Tests
// =============================================================================

func TestTicketService_Create_Success(t *testing.T) {
	ticketRepo := new(MockServiceTicketRepository)
	clientRepo := new(MockClientRepository)
	service := NewTicketService(ticketRepo, clientRepo)

	ctx := context.Background()
	client := createTestClient(t)

	clientRepo.On("FindByID", ctx, client.ID).Return(client, nil)
	ticketRepo.On("NextTicketNumber", ctx).Return("TKT-2026-00009", nil)
	ticketRepo.On("Save", ctx, mock.AnythingOfType("*crm.ServiceTicket")).Return(nil)

	result, err := service.Create(ctx, engineerActor(), CreateTicketRequest{
		ClientID: client.ID,
		Title:    "Printer on fire",
		Priority: "high",
	})

	require.NoError(t, err)
	assert.Equal(t, "TKT-2026-00009", result.TicketNumber)
	assert.Equal(t, "open", result.Status)
	assert.Equal(t, "high", result.Priority)
	ticketRepo.AssertExpectations(t)
}

func TestTicketService_Create_DefaultsPriorityToMedium(t *testing.T) {
	ticketRepo := new(MockServiceTicketRepository)
	clientRepo := new(MockClientRepository)
	service := NewTicketService(ticketRepo, clientRepo)

	ctx := context.Background()
	client := createTestClient(t)

	clientRepo.On("FindByID", ctx, client.ID).Return(client, nil)
	ticketRepo.On("NextTicketNumber", ctx).Return("TKT-2026-00010", nil)
	ticketRepo.On("Save", ctx, mock.AnythingOfType("*crm.ServiceTicket")).Return(nil)

	result, err := service.Create(ctx, engineerActor(), CreateTicketRequest{
		ClientID: client.ID,
		Title:    "Slow database",
	})

	require.NoError(t, err)
	assert.Equal(t, "medium", result.Priority)
}

func TestTicketService_Create_UnknownClient(t *testing.T) {
	ticketRepo := new(MockServiceTicketRepository)
	clientRepo := new(MockClientRepository)
	service := NewTicketService(ticketRepo, clientRepo)

	ctx := context.Background()
	clientID := uuid.New()

	clientRepo.On("FindByID", ctx, clientID).Return(nil, shared.ErrNotFound)

	result, err := service.Create(ctx, engineerActor(), CreateTicketRequest{
		ClientID: clientID,
		Title:    "Printer on fire",
	})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CLIENT", domainErr.Code)
	ticketRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestTicketService_GetByID_EngineerScopeHidesUnassigned(t *testing.T) {
	ticketRepo := new(MockServiceTicketRepository)
	service := NewTicketService(ticketRepo, new(MockClientRepository))

	ctx := context.Background()
	ticket := createTestTicket(t, uuid.New())

	ticketRepo.On("FindByID", ctx, ticket.ID).Return(ticket, nil)

	result, err := service.GetByID(ctx, engineerActor(), ticket.ID)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestTicketService_List_EngineerScopeOverridesFilter(t *testing.T) {
	ticketRepo := new(MockServiceTicketRepository)
	service := NewTicketService(ticketRepo, new(MockClientRepository))

	ctx := context.Background()
	actor := engineerActor()
	other := uuid.New()

	ticketRepo.On("FindAll", ctx, mock.MatchedBy(func(f crm.ServiceTicketFilter) bool {
		return f.AssignedTo != nil && *f.AssignedTo == actor.UserID
	})).Return([]crm.ServiceTicket{}, nil)
	ticketRepo.On("Count", ctx, mock.MatchedBy(func(f crm.ServiceTicketFilter) bool {
		return f.AssignedTo != nil && *f.AssignedTo == actor.UserID
	})).Return(int64(0), nil)

	_, _, err := service.List(ctx, actor, TicketListFilter{AssignedTo: &other})

	require.NoError(t, err)
	ticketRepo.AssertExpectations(t)
}

func TestTicketService_Lifecycle(t *testing.T) {
	ticketRepo := new(MockServiceTicketRepository)
	service := NewTicketService(ticketRepo, new(MockClientRepository))

	ctx := context.Background()
	actor := adminActor()
	ticket := createTestTicket(t, uuid.New())
	engineer := uuid.New()

	ticketRepo.On("FindByID", ctx, ticket.ID).Return(ticket, nil)
	ticketRepo.On("Save", ctx, ticket).Return(nil)

	assigned, err := service.Assign(ctx, actor, ticket.ID, AssignTicketRequest{AssignedTo: engineer})
	require.NoError(t, err)
	assert.Equal(t, "assigned", assigned.Status)
	require.NotNil(t, assigned.AssignedTo)
	assert.Equal(t, engineer, *assigned.AssignedTo)

	started, err := service.Start(ctx, actor, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "in_progress", started.Status)

	resolved, err := service.Resolve(ctx, actor, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "resolved", resolved.Status)
	assert.NotNil(t, resolved.ResolvedAt)

	closed, err := service.Close(ctx, actor, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "closed", closed.Status)
}

func TestTicketService_Close_AlreadyClosed(t *testing.T) {
	ticketRepo := new(MockServiceTicketRepository)
	service := NewTicketService(ticketRepo, new(MockClientRepository))

	ctx := context.Background()
	ticket := createTestTicket(t, uuid.New())
	require.NoError(t, ticket.Close())

	ticketRepo.On("FindByID", ctx, ticket.ID).Return(ticket, nil)

	result, err := service.Close(ctx, adminActor(), ticket.ID)

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

func TestTicketService_Delete_ForbiddenForEngineer(t *testing.T) {
	ticketRepo := new(MockServiceTicketRepository)
	service := NewTicketService(ticketRepo, new(MockClientRepository))

	err := service.Delete(context.Background(), engineerActor(), uuid.New())

	assert.ErrorIs(t, err, shared.ErrForbidden)
	ticketRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
