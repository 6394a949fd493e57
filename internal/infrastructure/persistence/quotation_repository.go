package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/crm/backend/internal/domain/billing"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormQuotationRepository implements QuotationRepository using GORM
type GormQuotationRepository struct {
	db *gorm.DB
}

// NewGormQuotationRepository creates a new GormQuotationRepository
func NewGormQuotationRepository(db *gorm.DB) *GormQuotationRepository {
	return &GormQuotationRepository{db: db}
}

// FindByID finds a quotation by its ID
func (r *GormQuotationRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Quotation, error) {
	var model models.QuotationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByQuotationNumber finds a quotation by its document number
func (r *GormQuotationRepository) FindByQuotationNumber(ctx context.Context, quotationNumber string) (*billing.Quotation, error) {
	var model models.QuotationModel
	if err := r.db.WithContext(ctx).
		Where("quotation_number = ?", quotationNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all quotations matching the filter
func (r *GormQuotationRepository) FindAll(ctx context.Context, filter billing.QuotationFilter) ([]billing.Quotation, error) {
	var quotationModels []models.QuotationModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.QuotationModel{}), filter)

	if err := query.Find(&quotationModels).Error; err != nil {
		return nil, err
	}

	quotations := make([]billing.Quotation, len(quotationModels))
	for i, model := range quotationModels {
		quotations[i] = *model.ToDomain()
	}
	return quotations, nil
}

// Save creates or updates a quotation
func (r *GormQuotationRepository) Save(ctx context.Context, quotation *billing.Quotation) error {
	model := models.QuotationModelFromDomain(quotation)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a quotation
func (r *GormQuotationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.QuotationModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts quotations matching the filter
func (r *GormQuotationRepository) Count(ctx context.Context, filter billing.QuotationFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.QuotationModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts quotations in a given status
func (r *GormQuotationRepository) CountByStatus(ctx context.Context, status billing.QuotationStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.QuotationModel{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// NextQuotationNumber generates the next quotation number.
// Format: QT-YYYY-NNNNN (e.g., QT-2026-00001)
func (r *GormQuotationRepository) NextQuotationNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("QT-%d-", year)

	var last models.QuotationModel
	err := r.db.WithContext(ctx).
		Where("quotation_number LIKE ?", prefix+"%").
		Order("quotation_number DESC").
		First(&last).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && last.QuotationNumber != "" {
		parts := strings.Split(last.QuotationNumber, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	return fmt.Sprintf("%s%05d", prefix, nextNum), nil
}

// applyFilter applies filter options to the query
func (r *GormQuotationRepository) applyFilter(query *gorm.DB, filter billing.QuotationFilter) *gorm.DB {
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
func (r *GormQuotationRepository) applyFilterWithoutPagination(query *gorm.DB, filter billing.QuotationFilter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("quotation_number ILIKE ? OR notes ILIKE ?", pattern, pattern)
	}

	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.LeadID != nil {
		query = query.Where("lead_id = ?", *filter.LeadID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CreatedBy != nil {
		query = query.Where("created_by = ?", *filter.CreatedBy)
	}

	return query
}

// Ensure GormQuotationRepository implements QuotationRepository
var _ billing.QuotationRepository = (*GormQuotationRepository)(nil)
