package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/entities"
	"helpdesk-system/internal/repositories"
	"helpdesk-system/pkg/config"
	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/service"
	"helpdesk-system/pkg/utils"

	"go.uber.org/zap"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error)
	Me(ctx context.Context) (*entities.User, error)
}

type AuthService struct {
	userRepo   repositories.UserRepositoryInterface
	cache      repositories.CacheRepositoryInterface
	jwtService service.JWTService
	audit      AuditSinkInterface
	authCfg    config.AuthConfig
	logger     *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	audit AuditSinkInterface,
	authCfg config.AuthConfig,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:   userRepo,
		cache:      cache,
		jwtService: jwtService,
		audit:      audit,
		authCfg:    authCfg,
		logger:     logger,
	}
}

func loginAttemptsKey(email string) string {
	return fmt.Sprintf("login_attempts:%s", email)
}

// Login verifies credentials under a redis-backed lockout counter. The
// counter resets on success and on window expiry.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.Active {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(payload.Password, user.PasswordHash) {
		attempts, cacheErr := s.cache.IncrementWithTTL(ctx, loginAttemptsKey(payload.Email), s.authCfg.LockoutDuration)
		if cacheErr != nil {
			s.logger.Warn("failed to track login attempt", zap.Error(cacheErr))
		} else if attempts >= int64(s.authCfg.MaxLoginAttempts) {
			s.logger.Warn("account locked after repeated failures", zap.String("email", payload.Email))
			return nil, apperrors.ErrAccountLocked
		}
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.cache.Delete(ctx, loginAttemptsKey(payload.Email)); err != nil {
		s.logger.Warn("failed to reset login attempts", zap.Error(err))
	}

	accessToken, refreshToken, err := s.jwtService.GenerateTokens(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	s.audit.Append(ctx, "USER_LOGIN", "user", strconv.FormatUint(user.ID, 10), map[string]interface{}{
		"email": user.Email,
	})

	return &dto.TokenPairDTO{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	// Re-check the account so a deactivated user cannot keep rotating.
	user, err := s.userRepo.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if !user.Active {
		return nil, apperrors.ErrUnauthorized
	}

	accessToken, newRefreshToken, err := s.jwtService.GenerateTokens(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPairDTO{AccessToken: accessToken, RefreshToken: newRefreshToken}, nil
}

func (s *AuthService) Me(ctx context.Context) (*entities.User, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	return s.userRepo.FindUserByID(ctx, userID)
}
