package crm

import (
	"context"

	"github.com/crm/backend/internal/domain/authz"
	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CallLogService handles interaction history operations
type CallLogService struct {
	callLogRepo crm.CallLogRepository
}

// NewCallLogService creates a new CallLogService
func NewCallLogService(callLogRepo crm.CallLogRepository) *CallLogService {
	return &CallLogService{callLogRepo: callLogRepo}
}

// Create records a new interaction against a lead or a client
func (s *CallLogService) Create(ctx context.Context, actor authz.Actor, req CreateCallLogRequest) (*CallLogResponse, error) {
	if !actor.Can(authz.ResourceCallLogs, authz.ActionCreate) {
		return nil, shared.ErrForbidden
	}

	log, err := crm.NewCallLog(req.LeadID, req.ClientID, crm.CallType(req.Type), req.Subject, actor.UserID)
	if err != nil {
		return nil, err
	}

	if req.Notes != "" {
		if err := log.Update(log.Type, log.Subject, req.Notes); err != nil {
			return nil, err
		}
	}
	if req.ScheduledFor != nil {
		if err := log.Reschedule(*req.ScheduledFor); err != nil {
			return nil, err
		}
	}

	if err := s.callLogRepo.Save(ctx, log); err != nil {
		return nil, err
	}

	response := ToCallLogResponse(log)
	return &response, nil
}

// GetByID retrieves a call log by ID
func (s *CallLogService) GetByID(ctx context.Context, actor authz.Actor, logID uuid.UUID) (*CallLogResponse, error) {
	if !actor.Can(authz.ResourceCallLogs, authz.ActionRead) {
		return nil, shared.ErrForbidden
	}

	log, err := s.callLogRepo.FindByID(ctx, logID)
	if err != nil {
		return nil, err
	}

	response := ToCallLogResponse(log)
	return &response, nil
}

// List retrieves call logs matching the filter
func (s *CallLogService) List(ctx context.Context, actor authz.Actor, filter CallLogListFilter) ([]CallLogResponse, int64, error) {
	if !actor.Can(authz.ResourceCallLogs, authz.ActionRead) {
		return nil, 0, shared.ErrForbidden
	}

	f := crm.CallLogFilter{Filter: shared.DefaultFilter()}
	f.Search = filter.Search
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		f.OrderBy = filter.OrderBy
		f.OrderDir = filter.OrderDir
	}
	if filter.LeadID != nil {
		f.LeadID = filter.LeadID
	}
	if filter.ClientID != nil {
		f.ClientID = filter.ClientID
	}
	if filter.Type != "" {
		callType := crm.CallType(filter.Type)
		f.Type = &callType
	}
	if filter.Completed != nil {
		f.Completed = filter.Completed
	}

	logs, err := s.callLogRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.callLogRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CallLogResponse, len(logs))
	for i := range logs {
		responses[i] = ToCallLogResponse(&logs[i])
	}
	return responses, total, nil
}

// Update updates a call log's details, schedule or completion
func (s *CallLogService) Update(ctx context.Context, actor authz.Actor, logID uuid.UUID, req UpdateCallLogRequest) (*CallLogResponse, error) {
	if !actor.Can(authz.ResourceCallLogs, authz.ActionUpdate) {
		return nil, shared.ErrForbidden
	}

	log, err := s.callLogRepo.FindByID(ctx, logID)
	if err != nil {
		return nil, err
	}

	callType := log.Type
	subject := log.Subject
	notes := log.Notes
	if req.Type != nil {
		callType = crm.CallType(*req.Type)
	}
	if req.Subject != nil {
		subject = *req.Subject
	}
	if req.Notes != nil {
		notes = *req.Notes
	}
	if err := log.Update(callType, subject, notes); err != nil {
		return nil, err
	}

	if req.ScheduledFor != nil {
		if err := log.Reschedule(*req.ScheduledFor); err != nil {
			return nil, err
		}
	}

	if req.Completed != nil && *req.Completed && !log.Completed {
		if err := log.MarkCompleted(); err != nil {
			return nil, err
		}
	}

	if err := s.callLogRepo.Save(ctx, log); err != nil {
		return nil, err
	}

	response := ToCallLogResponse(log)
	return &response, nil
}

// Delete deletes a call log
func (s *CallLogService) Delete(ctx context.Context, actor authz.Actor, logID uuid.UUID) error {
	if !actor.Can(authz.ResourceCallLogs, authz.ActionDelete) {
		return shared.ErrForbidden
	}
	return s.callLogRepo.Delete(ctx, logID)
}
