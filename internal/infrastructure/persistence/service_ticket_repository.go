package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormServiceTicketRepository implements ServiceTicketRepository using GORM
type GormServiceTicketRepository struct {
	db *gorm.DB
}

// NewGormServiceTicketRepository creates a new GormServiceTicketRepository
func NewGormServiceTicketRepository(db *gorm.DB) *GormServiceTicketRepository {
	return &GormServiceTicketRepository{db: db}
}

// FindByID finds a service ticket by its ID
func (r *GormServiceTicketRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.ServiceTicket, error) {
	var model models.ServiceTicketModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTicketNumber finds a service ticket by its ticket number
func (r *GormServiceTicketRepository) FindByTicketNumber(ctx context.Context, ticketNumber string) (*crm.ServiceTicket, error) {
	var model models.ServiceTicketModel
	if err := r.db.WithContext(ctx).
		Where("ticket_number = ?", ticketNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all service tickets matching the filter
func (r *GormServiceTicketRepository) FindAll(ctx context.Context, filter crm.ServiceTicketFilter) ([]crm.ServiceTicket, error) {
	var ticketModels []models.ServiceTicketModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ServiceTicketModel{}), filter)

	if err := query.Find(&ticketModels).Error; err != nil {
		return nil, err
	}

	tickets := make([]crm.ServiceTicket, len(ticketModels))
	for i, model := range ticketModels {
		tickets[i] = *model.ToDomain()
	}
	return tickets, nil
}

// Save creates or updates a service ticket
func (r *GormServiceTicketRepository) Save(ctx context.Context, ticket *crm.ServiceTicket) error {
	model := models.ServiceTicketModelFromDomain(ticket)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a service ticket
func (r *GormServiceTicketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ServiceTicketModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts service tickets matching the filter
func (r *GormServiceTicketRepository) Count(ctx context.Context, filter crm.ServiceTicketFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ServiceTicketModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts tickets in a given status
func (r *GormServiceTicketRepository) CountByStatus(ctx context.Context, status crm.TicketStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ServiceTicketModel{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// NextTicketNumber generates the next ticket number.
// Format: TKT-YYYY-NNNNN (e.g., TKT-2026-00001)
func (r *GormServiceTicketRepository) NextTicketNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("TKT-%d-", year)

	var last models.ServiceTicketModel
	err := r.db.WithContext(ctx).
		Where("ticket_number LIKE ?", prefix+"%").
		Order("ticket_number DESC").
		First(&last).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && last.TicketNumber != "" {
		parts := strings.Split(last.TicketNumber, "-")
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
func (r *GormServiceTicketRepository) applyFilter(query *gorm.DB, filter crm.ServiceTicketFilter) *gorm.DB {
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
func (r *GormServiceTicketRepository) applyFilterWithoutPagination(query *gorm.DB, filter crm.ServiceTicketFilter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("ticket_number ILIKE ? OR title ILIKE ? OR description ILIKE ?",
			pattern, pattern, pattern)
	}

	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *filter.AssignedTo)
	}

	return query
}

// Ensure GormServiceTicketRepository implements ServiceTicketRepository
var _ crm.ServiceTicketRepository = (*GormServiceTicketRepository)(nil)
