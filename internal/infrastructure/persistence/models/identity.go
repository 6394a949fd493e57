package models

import (
	"time"

	"github.com/crm/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User aggregate root.
type UserModel struct {
	AggregateModel
	Username     string              `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email        string              `gorm:"type:varchar(255);index"`
	Phone        string              `gorm:"type:varchar(50)"`
	FullName     string              `gorm:"type:varchar(200)"`
	PasswordHash string              `gorm:"type:varchar(255);not null"`
	Role         identity.Role       `gorm:"type:varchar(30);not null;index"`
	Status       identity.UserStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.aggregateRoot(),
		Username:          m.Username,
		Email:             m.Email,
		Phone:             m.Phone,
		FullName:          m.FullName,
		PasswordHash:      m.PasswordHash,
		Role:              m.Role,
		Status:            m.Status,
		LastLoginAt:       m.LastLoginAt,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Username = u.Username
	m.Email = u.Email
	m.Phone = u.Phone
	m.FullName = u.FullName
	m.PasswordHash = u.PasswordHash
	m.Role = u.Role
	m.Status = u.Status
	m.LastLoginAt = u.LastLoginAt
}

// UserModelFromDomain creates a new persistence model from a domain User.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
