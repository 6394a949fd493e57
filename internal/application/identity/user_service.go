package identity

import (
	"context"
	"time"

	"github.com/crm/backend/internal/domain/authz"
	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
)

// userTokenRevocationTTL is how long a blanket token invalidation is kept.
// It must cover the longest refresh token lifetime.
const userTokenRevocationTTL = 14 * 24 * time.Hour

// UserService handles user management operations
type UserService struct {
	userRepo  identity.UserRepository
	blacklist auth.TokenBlacklist
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, blacklist auth.TokenBlacklist) *UserService {
	return &UserService{
		userRepo:  userRepo,
		blacklist: blacklist,
	}
}

// Create creates a new user account
func (s *UserService) Create(ctx context.Context, actor authz.Actor, req CreateUserRequest) (*UserResponse, error) {
	if !actor.Can(authz.ResourceUsers, authz.ActionCreate) {
		return nil, shared.ErrForbidden
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A user with this username already exists")
	}

	if req.Email != "" {
		exists, err = s.userRepo.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A user with this email already exists")
		}
	}

	user, err := identity.NewUser(req.Username, req.Password, identity.Role(req.Role))
	if err != nil {
		return nil, err
	}

	if req.Email != "" {
		if err := user.SetEmail(req.Email); err != nil {
			return nil, err
		}
	}
	if req.Phone != "" {
		if err := user.SetPhone(req.Phone); err != nil {
			return nil, err
		}
	}
	if req.FullName != "" {
		if err := user.SetFullName(req.FullName); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, actor authz.Actor, userID uuid.UUID) (*UserResponse, error) {
	if !actor.Can(authz.ResourceUsers, authz.ActionRead) {
		return nil, shared.ErrForbidden
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// List retrieves users matching the filter
func (s *UserService) List(ctx context.Context, actor authz.Actor, filter UserListFilter) ([]UserResponse, int64, error) {
	if !actor.Can(authz.ResourceUsers, authz.ActionRead) {
		return nil, 0, shared.ErrForbidden
	}

	f := identity.NewUserFilter()
	if filter.Keyword != "" {
		f = f.WithKeyword(filter.Keyword)
	}
	if filter.Role != "" {
		f = f.WithRole(identity.Role(filter.Role))
	}
	if filter.Status != "" {
		f = f.WithStatus(identity.UserStatus(filter.Status))
	}
	if filter.Page > 0 || filter.PageSize > 0 {
		f = f.WithPagination(filter.Page, filter.PageSize)
	}
	if filter.SortBy != "" {
		f.SortBy = filter.SortBy
	}
	if filter.SortOrder != "" {
		f.SortOrder = filter.SortOrder
	}

	users, total, err := s.userRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]UserResponse, len(users))
	for i, u := range users {
		responses[i] = ToUserResponse(u)
	}
	return responses, total, nil
}

// Update updates a user's profile, role or status
func (s *UserService) Update(ctx context.Context, actor authz.Actor, userID uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	if !actor.Can(authz.ResourceUsers, authz.ActionUpdate) {
		return nil, shared.ErrForbidden
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		if err := user.SetEmail(*req.Email); err != nil {
			return nil, err
		}
	}
	if req.Phone != nil {
		if err := user.SetPhone(*req.Phone); err != nil {
			return nil, err
		}
	}
	if req.FullName != nil {
		if err := user.SetFullName(*req.FullName); err != nil {
			return nil, err
		}
	}

	roleChanged := false
	if req.Role != nil {
		newRole := identity.Role(*req.Role)
		if newRole != user.Role {
			if err := user.ChangeRole(newRole); err != nil {
				return nil, err
			}
			roleChanged = true
		}
	}

	deactivated := false
	if req.Status != nil {
		switch identity.UserStatus(*req.Status) {
		case identity.UserStatusActive:
			if !user.IsActive() {
				if err := user.Activate(); err != nil {
					return nil, err
				}
			}
		case identity.UserStatusDeactivated:
			if user.IsActive() {
				if actor.UserID == user.ID {
					return nil, shared.NewDomainError("INVALID_INPUT", "You cannot deactivate your own account")
				}
				if err := user.Deactivate(); err != nil {
					return nil, err
				}
				deactivated = true
			}
		default:
			return nil, shared.NewDomainError("INVALID_INPUT", "Unknown user status")
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	// Role changes and deactivation revoke any tokens issued before now
	if roleChanged || deactivated {
		_ = s.blacklist.AddUserTokensToBlacklist(ctx, user.ID.String(), userTokenRevocationTTL)
	}

	response := ToUserResponse(user)
	return &response, nil
}

// Delete deletes a user account
func (s *UserService) Delete(ctx context.Context, actor authz.Actor, userID uuid.UUID) error {
	if !actor.Can(authz.ResourceUsers, authz.ActionDelete) {
		return shared.ErrForbidden
	}
	if actor.UserID == userID {
		return shared.NewDomainError("INVALID_INPUT", "You cannot delete your own account")
	}

	return s.userRepo.Delete(ctx, userID)
}
