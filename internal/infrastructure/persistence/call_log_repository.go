package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCallLogRepository implements CallLogRepository using GORM
type GormCallLogRepository struct {
	db *gorm.DB
}

// NewGormCallLogRepository creates a new GormCallLogRepository
func NewGormCallLogRepository(db *gorm.DB) *GormCallLogRepository {
	return &GormCallLogRepository{db: db}
}

// FindByID finds a call log by its ID
func (r *GormCallLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.CallLog, error) {
	var model models.CallLogModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all call logs matching the filter
func (r *GormCallLogRepository) FindAll(ctx context.Context, filter crm.CallLogFilter) ([]crm.CallLog, error) {
	var logModels []models.CallLogModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CallLogModel{}), filter)

	if err := query.Find(&logModels).Error; err != nil {
		return nil, err
	}

	logs := make([]crm.CallLog, len(logModels))
	for i, model := range logModels {
		logs[i] = *model.ToDomain()
	}
	return logs, nil
}

// Save creates or updates a call log
func (r *GormCallLogRepository) Save(ctx context.Context, log *crm.CallLog) error {
	model := models.CallLogModelFromDomain(log)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a call log
func (r *GormCallLogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CallLogModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts call logs matching the filter
func (r *GormCallLogRepository) Count(ctx context.Context, filter crm.CallLogFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.CallLogModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormCallLogRepository) applyFilter(query *gorm.DB, filter crm.CallLogFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormCallLogRepository) applyFilterWithoutPagination(query *gorm.DB, filter crm.CallLogFilter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("subject ILIKE ? OR notes ILIKE ?", pattern, pattern)
	}

	if filter.LeadID != nil {
		query = query.Where("lead_id = ?", *filter.LeadID)
	}
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Completed != nil {
		query = query.Where("completed = ?", *filter.Completed)
	}

	return query
}

// Ensure GormCallLogRepository implements CallLogRepository
var _ crm.CallLogRepository = (*GormCallLogRepository)(nil)
