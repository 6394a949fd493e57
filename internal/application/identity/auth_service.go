package identity

import (
	"context"

	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/auth"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService handles authentication: login, logout and token refresh
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, jwtService *auth.JWTService, blacklist auth.TokenBlacklist) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
	}
}

// Login authenticates a user and issues a token pair.
// Failed lookups and bad passwords return the same error so usernames
// cannot be probed.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
		}
		return nil, err
	}

	if !user.CanLogin() {
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "This account has been deactivated")
	}

	if !user.VerifyPassword(req.Password) {
		logger.L(ctx).Warn("Login failed: bad password", zap.String("username", req.Username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	tokens, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
	if err != nil {
		return nil, err
	}

	user.RecordLoginSuccess()
	if err := s.userRepo.Update(ctx, user); err != nil {
		// Login still succeeds; the timestamp is best-effort
		logger.L(ctx).Warn("Failed to record login time", zap.Error(err))
	}

	logger.L(ctx).Info("User logged in",
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
	)

	return &LoginResponse{
		User:   ToUserResponse(user),
		Tokens: tokens,
	}, nil
}

// Logout revokes the presented access token by blacklisting its JTI
// until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil {
		return shared.ErrUnauthorized
	}

	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		return err
	}

	logger.L(ctx).Info("User logged out", zap.String("username", claims.Username))
	return nil
}

// RefreshToken exchanges a valid refresh token for a new token pair.
// The user's current role is read from the database, so role changes
// and deactivation take effect here.
func (s *AuthService) RefreshToken(ctx context.Context, req RefreshRequest) (*auth.TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, err
	}

	blacklisted, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		return nil, auth.ErrTokenBlacklisted
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, auth.ErrInvalidClaims
	}

	invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, userID.String(), claims.GetIssuedAtTime())
	if err != nil {
		return nil, err
	}
	if invalidated {
		return nil, auth.ErrTokenBlacklisted
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, auth.ErrInvalidToken
		}
		return nil, err
	}

	if !user.CanLogin() {
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "This account has been deactivated")
	}

	tokens, err := s.jwtService.RefreshTokenPair(req.RefreshToken, user.Username, string(user.Role))
	if err != nil {
		return nil, err
	}

	// The old refresh token is single-use
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		logger.L(ctx).Warn("Failed to blacklist consumed refresh token", zap.Error(err))
	}

	return tokens, nil
}

// GetCurrentUser returns the authenticated user's profile
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// ChangePassword changes the current user's password after verifying the
// old one, then invalidates all previously issued tokens for the user.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := user.ChangePassword(req.OldPassword, req.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	if err := s.blacklist.AddUserTokensToBlacklist(ctx, userID.String(), s.jwtService.GetRefreshTokenExpiration()); err != nil {
		logger.L(ctx).Warn("Failed to invalidate existing tokens after password change", zap.Error(err))
	}

	return nil
}
