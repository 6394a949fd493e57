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

// GormLeadRepository implements LeadRepository using GORM
type GormLeadRepository struct {
	db *gorm.DB
}

// NewGormLeadRepository creates a new GormLeadRepository
func NewGormLeadRepository(db *gorm.DB) *GormLeadRepository {
	return &GormLeadRepository{db: db}
}

// FindByID finds a lead by its ID
func (r *GormLeadRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Lead, error) {
	var model models.LeadModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all leads matching the filter
func (r *GormLeadRepository) FindAll(ctx context.Context, filter crm.LeadFilter) ([]crm.Lead, error) {
	var leadModels []models.LeadModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.LeadModel{}), filter)

	if err := query.Find(&leadModels).Error; err != nil {
		return nil, err
	}

	leads := make([]crm.Lead, len(leadModels))
	for i, model := range leadModels {
		leads[i] = *model.ToDomain()
	}
	return leads, nil
}

// Save creates or updates a lead
func (r *GormLeadRepository) Save(ctx context.Context, lead *crm.Lead) error {
	model := models.LeadModelFromDomain(lead)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a lead
func (r *GormLeadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.LeadModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts leads matching the filter
func (r *GormLeadRepository) Count(ctx context.Context, filter crm.LeadFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.LeadModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts leads in a given status
func (r *GormLeadRepository) CountByStatus(ctx context.Context, status crm.LeadStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.LeadModel{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormLeadRepository) applyFilter(query *gorm.DB, filter crm.LeadFilter) *gorm.DB {
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
func (r *GormLeadRepository) applyFilterWithoutPagination(query *gorm.DB, filter crm.LeadFilter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("company_name ILIKE ? OR contact_person ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			pattern, pattern, pattern, pattern)
	}

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Source != nil {
		query = query.Where("source = ?", *filter.Source)
	}
	if filter.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *filter.AssignedTo)
	}

	return query
}

// Ensure GormLeadRepository implements LeadRepository
var _ crm.LeadRepository = (*GormLeadRepository)(nil)
