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

// GormClientRepository implements ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByID finds a client by its ID
func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all clients matching the filter
func (r *GormClientRepository) FindAll(ctx context.Context, filter crm.ClientFilter) ([]crm.Client, error) {
	var clientModels []models.ClientModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ClientModel{}), filter)

	if err := query.Find(&clientModels).Error; err != nil {
		return nil, err
	}

	clients := make([]crm.Client, len(clientModels))
	for i, model := range clientModels {
		clients[i] = *model.ToDomain()
	}
	return clients, nil
}

// Save creates or updates a client
func (r *GormClientRepository) Save(ctx context.Context, client *crm.Client) error {
	model := models.ClientModelFromDomain(client)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a client
func (r *GormClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ClientModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts clients matching the filter
func (r *GormClientRepository) Count(ctx context.Context, filter crm.ClientFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ClientModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCompanyName checks if a client with the given company name exists
func (r *GormClientRepository) ExistsByCompanyName(ctx context.Context, companyName string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ClientModel{}).
		Where("company_name = ?", companyName).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormClientRepository) applyFilter(query *gorm.DB, filter crm.ClientFilter) *gorm.DB {
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
		query = query.Order("company_name ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormClientRepository) applyFilterWithoutPagination(query *gorm.DB, filter crm.ClientFilter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("company_name ILIKE ? OR contact_person ILIKE ? OR email ILIKE ? OR city ILIKE ?",
			pattern, pattern, pattern, pattern)
	}

	if filter.AccountManager != nil {
		query = query.Where("account_manager = ?", *filter.AccountManager)
	}
	if filter.Country != nil {
		query = query.Where("country = ?", *filter.Country)
	}

	return query
}

// Ensure GormClientRepository implements ClientRepository
var _ crm.ClientRepository = (*GormClientRepository)(nil)
