package crm

import (
	"context"
	"testing"

	"github.com/crm/backend/internal/domain/authz"
	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockLeadRepository is a mock implementation of LeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindAll(ctx context.Context, filter crm.LeadFilter) ([]crm.Lead, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]crm.Lead), args.Error(1)
}

func (m *MockLeadRepository) Save(ctx context.Context, lead *crm.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeadRepository) Count(ctx context.Context, filter crm.LeadFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeadRepository) CountByStatus(ctx context.Context, status crm.LeadStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

var _ crm.LeadRepository = (*MockLeadRepository)(nil)

// MockClientRepository is a mock implementation of ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Client), args.Error(1)
}

func (m *MockClientRepository) FindAll(ctx context.Context, filter crm.ClientFilter) ([]crm.Client, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]crm.Client), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, client *crm.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClientRepository) Count(ctx context.Context, filter crm.ClientFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientRepository) ExistsByCompanyName(ctx context.Context, companyName string) (bool, error) {
	args := m.Called(ctx, companyName)
	return args.Bool(0), args.Error(1)
}

var _ crm.ClientRepository = (*MockClientRepository)(nil)

// =============================================================================
// Test Helpers
// =============================================================================

func adminActor() authz.Actor {
	return authz.Actor{
		UserID: uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Role:   identity.RoleAdmin,
	}
}

func salesExecutiveActor() authz.Actor {
	return authz.Actor{
		UserID: uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		Role:   identity.RoleSalesExecutive,
	}
}

func createTestLead(t *testing.T) *crm.Lead {
	t.Helper()
	lead, err := crm.NewLead("Acme Corp", "Jane Smith", crm.LeadSourceWebsite)
	require.NoError(t, err)
	return lead
}

// =============================================================================
// LeadService Tests
// =============================================================================

func TestLeadService_Create_Success(t *testing.T) {
	leadRepo := new(MockLeadRepository)
	service := NewLeadService(leadRepo)

	ctx := context.Background()
	leadRepo.On("Save", ctx, mock.AnythingOfType("*crm.Lead")).Return(nil)

	value := decimal.RequireFromString("12000.00")
	result, err := service.Create(ctx, adminActor(), CreateLeadRequest{
		CompanyName:    "Acme Corp",
		ContactPerson:  "Jane Smith",
		Source:         "website",
		EstimatedValue: &value,
	})

	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", result.CompanyName)
	assert.Equal(t, "new", result.Status)
	assert.Equal(t, "website", result.Source)
	assert.True(t, result.EstimatedValue.Equal(value))
	assert.Nil(t, result.AssignedTo)
	leadRepo.AssertExpectations(t)
}

func TestLeadService_Create_SalesExecutiveAutoAssigned(t *testing.T) {
	leadRepo := new(MockLeadRepository)
	service := NewLeadService(leadRepo)

	ctx := context.Background()
	actor := salesExecutiveActor()
	other := uuid.New()

	leadRepo.On("Save", ctx, mock.AnythingOfType("*crm.Lead")).Return(nil)

	// The requested assignee is ignored; the lead always belongs to its creator
	result, err := service.Create(ctx, actor, CreateLeadRequest{
		CompanyName:   "Acme Corp",
		ContactPerson: "Jane Smith",
		Source:        "referral",
		AssignedTo:    &other,
	})

	require.NoError(t, err)
	require.NotNil(t, result.AssignedTo)
	assert.Equal(t, actor.UserID, *result.AssignedTo)
}

func TestLeadService_GetByID_ScopeHidesOthersLeads(t *testing.T) {
	leadRepo := new(MockLeadRepository)
	service := NewLeadService(leadRepo)

	ctx := context.Background()
	actor := salesExecutiveActor()
	lead := createTestLead(t)
	require.NoError(t, lead.Assign(uuid.New()))

	leadRepo.On("FindByID", ctx, lead.ID).Return(lead, nil)

	result, err := service.GetByID(ctx, actor, lead.ID)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestLeadService_GetByID_OwnLeadVisible(t *testing.T) {
	leadRepo := new(MockLeadRepository)
	service := NewLeadService(leadRepo)

	ctx := context.Background()
	actor := salesExecutiveActor()
	lead := createTestLead(t)
	require.NoError(t, lead.Assign(actor.UserID))

	leadRepo.On("FindByID", ctx, lead.ID).Return(lead, nil)

	result, err := service.GetByID(ctx, actor, lead.ID)

	require.NoError(t, err)
	assert.Equal(t, lead.ID, result.ID)
}

func TestLeadService_List_ScopeOverridesAssigneeFilter(t *testing.T) {
	leadRepo := new(MockLeadRepository)
	service := NewLeadService(leadRepo)

	ctx := context.Background()
	actor := salesExecutiveActor()
	other := uuid.New()

	leadRepo.On("FindAll", ctx, mock.MatchedBy(func(f crm.LeadFilter) bool {
		return f.AssignedTo != nil && *f.AssignedTo == actor.UserID
	})).Return([]crm.Lead{}, nil)
	leadRepo.On("Count", ctx, mock.MatchedBy(func(f crm.LeadFilter) bool {
		return f.AssignedTo != nil && *f.AssignedTo == actor.UserID
	})).Return(int64(0), nil)

	_, _, err := service.List(ctx, actor, LeadListFilter{AssignedTo: &other})

	require.NoError(t, err)
	leadRepo.AssertExpectations(t)
}

func TestLeadService_Update_StatusTransition(t *testing.T) {
	leadRepo := new(MockLeadRepository)
	service := NewLeadService(leadRepo)

	ctx := context.Background()
	lead := createTestLead(t)

	leadRepo.On("FindByID", ctx, lead.ID).Return(lead, nil)
	leadRepo.On("Save", ctx, lead).Return(nil)

	status := "converted"
	result, err := service.Update(ctx, adminActor(), lead.ID, UpdateLeadRequest{Status: &status})

	require.NoError(t, err)
	assert.Equal(t, "converted", result.Status)
	leadRepo.AssertExpectations(t)
}

func TestLeadService_Delete_ForbiddenForSalesExecutive(t *testing.T) {
	leadRepo := new(MockLeadRepository)
	service := NewLeadService(leadRepo)

	err := service.Delete(context.Background(), salesExecutiveActor(), uuid.New())

	assert.ErrorIs(t, err, shared.ErrForbidden)
	leadRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// =============================================================================
// ClientService Tests
// =============================================================================

func TestClientService_Create_Success(t *testing.T) {
	clientRepo := new(MockClientRepository)
	service := NewClientService(clientRepo)

	ctx := context.Background()
	clientRepo.On("ExistsByCompanyName", ctx, "Globex Ltd").Return(false, nil)
	clientRepo.On("Save", ctx, mock.AnythingOfType("*crm.Client")).Return(nil)

	result, err := service.Create(ctx, adminActor(), CreateClientRequest{
		CompanyName:   "Globex Ltd",
		ContactPerson: "Hank Scorpio",
		Country:       "Germany",
	})

	require.NoError(t, err)
	assert.Equal(t, "Globex Ltd", result.CompanyName)
	assert.Equal(t, "Germany", result.Country)
	clientRepo.AssertExpectations(t)
}

func TestClientService_Create_DuplicateCompanyName(t *testing.T) {
	clientRepo := new(MockClientRepository)
	service := NewClientService(clientRepo)

	ctx := context.Background()
	clientRepo.On("ExistsByCompanyName", ctx, "Globex Ltd").Return(true, nil)

	result, err := service.Create(ctx, adminActor(), CreateClientRequest{
		CompanyName:   "Globex Ltd",
		ContactPerson: "Hank Scorpio",
	})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	clientRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestClientService_Create_ForbiddenForSalesExecutive(t *testing.T) {
	service := NewClientService(new(MockClientRepository))

	result, err := service.Create(context.Background(), salesExecutiveActor(), CreateClientRequest{
		CompanyName:   "Globex Ltd",
		ContactPerson: "Hank Scorpio",
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrForbidden)
}
