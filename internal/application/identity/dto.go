package identity

import (
	"time"

	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
)

// LoginRequest represents a login attempt
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// LoginResponse carries the issued token pair and the authenticated user
type LoginResponse struct {
	User   UserResponse    `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// RefreshRequest represents a token refresh attempt
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// CreateUserRequest represents a request to create a new user
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	Role     string `json:"role" binding:"required,oneof=admin sales_manager sales_executive accountant engineer client"`
	Email    string `json:"email" binding:"omitempty,email,max=255"`
	Phone    string `json:"phone" binding:"max=50"`
	FullName string `json:"full_name" binding:"max=200"`
}

// UpdateUserRequest represents a request to update a user's profile
type UpdateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Phone    *string `json:"phone" binding:"omitempty,max=50"`
	FullName *string `json:"full_name" binding:"omitempty,max=200"`
	Role     *string `json:"role" binding:"omitempty,oneof=admin sales_manager sales_executive accountant engineer client"`
	Status   *string `json:"status" binding:"omitempty,oneof=active deactivated"`
}

// ChangePasswordRequest represents a password change for the current user
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// UserListFilter contains list parameters for users
type UserListFilter struct {
	Keyword   string `form:"keyword"`
	Role      string `form:"role"`
	Status    string `form:"status"`
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	FullName    string     `json:"full_name"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToUserResponse converts a domain User to a UserResponse
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Phone:       u.Phone,
		FullName:    u.FullName,
		Role:        string(u.Role),
		Status:      string(u.Status),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
