package crm

import (
	"context"
	"testing"
	"time"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCallLogRepository is a mock implementation of CallLogRepository
type MockCallLogRepository struct {
	mock.Mock
}

func (m *MockCallLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.CallLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.CallLog), args.Error(1)
}

func (m *MockCallLogRepository) FindAll(ctx context.Context, filter crm.CallLogFilter) ([]crm.CallLog, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]crm.CallLog), args.Error(1)
}

func (m *MockCallLogRepository) Save(ctx context.Context, log *crm.CallLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockCallLogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCallLogRepository) Count(ctx context.Context, filter crm.CallLogFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

var _ crm.CallLogRepository = (*MockCallLogRepository)(nil)

func TestCallLogService_Create_ForLead(t *testing.T) {
	callLogRepo := new(MockCallLogRepository)
	service := NewCallLogService(callLogRepo)

	ctx := context.Background()
	actor := salesExecutiveActor()
	leadID := uuid.New()
	scheduled := time.Now().Add(48 * time.Hour)

	callLogRepo.On("Save", ctx, mock.AnythingOfType("*crm.CallLog")).Return(nil)

	result, err := service.Create(ctx, actor, CreateCallLogRequest{
		LeadID:       &leadID,
		Type:         "call",
		Subject:      "Intro call",
		Notes:        "Asked for a demo",
		ScheduledFor: &scheduled,
	})

	require.NoError(t, err)
	require.NotNil(t, result.LeadID)
	assert.Equal(t, leadID, *result.LeadID)
	assert.Nil(t, result.ClientID)
	assert.Equal(t, "Asked for a demo", result.Notes)
	assert.Equal(t, actor.UserID, result.CreatedBy)
	assert.False(t, result.Completed)
	callLogRepo.AssertExpectations(t)
}

func TestCallLogService_Create_RequiresExactlyOneTarget(t *testing.T) {
	callLogRepo := new(MockCallLogRepository)
	service := NewCallLogService(callLogRepo)

	ctx := context.Background()
	leadID := uuid.New()
	clientID := uuid.New()

	// Both set
	result, err := service.Create(ctx, salesExecutiveActor(), CreateCallLogRequest{
		LeadID:   &leadID,
		ClientID: &clientID,
		Type:     "email",
		Subject:  "Follow-up",
	})
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CALL_LOG_TARGET", domainErr.Code)

	// Neither set
	result, err = service.Create(ctx, salesExecutiveActor(), CreateCallLogRequest{
		Type:    "email",
		Subject: "Follow-up",
	})
	assert.Nil(t, result)
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CALL_LOG_TARGET", domainErr.Code)

	callLogRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCallLogService_Create_ForbiddenForEngineer(t *testing.T) {
	service := NewCallLogService(new(MockCallLogRepository))

	leadID := uuid.New()
	result, err := service.Create(context.Background(), engineerActor(), CreateCallLogRequest{
		LeadID:  &leadID,
		Type:    "call",
		Subject: "Intro call",
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestCallLogService_Update_MarkCompleted(t *testing.T) {
	callLogRepo := new(MockCallLogRepository)
	service := NewCallLogService(callLogRepo)

	ctx := context.Background()
	leadID := uuid.New()
	log, err := crm.NewCallLog(&leadID, nil, crm.CallTypeCall, "Intro call", uuid.New())
	require.NoError(t, err)

	callLogRepo.On("FindByID", ctx, log.ID).Return(log, nil)
	callLogRepo.On("Save", ctx, log).Return(nil)

	completed := true
	result, err := service.Update(ctx, salesExecutiveActor(), log.ID, UpdateCallLogRequest{Completed: &completed})

	require.NoError(t, err)
	assert.True(t, result.Completed)
	callLogRepo.AssertExpectations(t)
}

func TestCallLogService_Update_CannotRescheduleCompleted(t *testing.T) {
	callLogRepo := new(MockCallLogRepository)
	service := NewCallLogService(callLogRepo)

	ctx := context.Background()
	leadID := uuid.New()
	log, err := crm.NewCallLog(&leadID, nil, crm.CallTypeMeeting, "Demo", uuid.New())
	require.NoError(t, err)
	require.NoError(t, log.MarkCompleted())

	callLogRepo.On("FindByID", ctx, log.ID).Return(log, nil)

	scheduled := time.Now().Add(24 * time.Hour)
	result, err := service.Update(ctx, salesExecutiveActor(), log.ID, UpdateCallLogRequest{ScheduledFor: &scheduled})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}
