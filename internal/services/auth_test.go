package services

import (
	"context"
	"testing"
	"time"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/entities"
	"helpdesk-system/pkg/config"
	"helpdesk-system/pkg/constants"
	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/service"
	"helpdesk-system/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCacheRepo struct {
	counters map[string]int64
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{counters: make(map[string]int64)}
}

func (r *fakeCacheRepo) IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	r.counters[key]++
	return r.counters[key], nil
}

func (r *fakeCacheRepo) Delete(ctx context.Context, key string) error {
	delete(r.counters, key)
	return nil
}

func newAuthFixture(t *testing.T) (AuthServiceInterface, *fakeCacheRepo, service.JWTService) {
	t.Helper()

	hash, err := utils.HashPassword("correct-horse")
	require.NoError(t, err)

	users := &fakeUserRepo{users: map[uint64]*entities.User{
		1: {ID: 1, Email: "somchai@example.com", PasswordHash: hash, Role: constants.RoleUser, Active: true},
		2: {ID: 2, Email: "gone@example.com", PasswordHash: hash, Role: constants.RoleUser, Active: false},
	}}
	cache := newFakeCacheRepo()
	jwtService := service.NewJWTService("test-secret", time.Hour, 24*time.Hour, zap.NewNop())
	authCfg := config.AuthConfig{MaxLoginAttempts: 3, LockoutDuration: 15 * time.Minute}

	return NewAuthService(users, cache, jwtService, &fakeAuditSink{}, authCfg, zap.NewNop()), cache, jwtService
}

func TestLoginSuccessResetsAttempts(t *testing.T) {
	authService, cache, jwtService := newAuthFixture(t)
	ctx := context.Background()

	_, err := authService.Login(ctx, dto.LoginDTO{Email: "somchai@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	tokens, err := authService.Login(ctx, dto.LoginDTO{Email: "somchai@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Empty(t, cache.counters, "successful login clears the attempt counter")

	claims, err := jwtService.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), claims.UserID)
	assert.False(t, claims.IsRefreshToken)
}

func TestLoginLocksAfterRepeatedFailures(t *testing.T) {
	authService, _, _ := newAuthFixture(t)
	ctx := context.Background()
	payload := dto.LoginDTO{Email: "somchai@example.com", Password: "wrong"}

	_, err := authService.Login(ctx, payload)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = authService.Login(ctx, payload)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	// The third failure within the window trips the lock.
	_, err = authService.Login(ctx, payload)
	assert.ErrorIs(t, err, apperrors.ErrAccountLocked)
}

func TestLoginUnknownEmailLooksLikeBadCredentials(t *testing.T) {
	authService, _, _ := newAuthFixture(t)

	_, err := authService.Login(context.Background(), dto.LoginDTO{Email: "nobody@example.com", Password: "x"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginInactiveAccountRejected(t *testing.T) {
	authService, _, _ := newAuthFixture(t)

	_, err := authService.Login(context.Background(), dto.LoginDTO{Email: "gone@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	authService, _, jwtService := newAuthFixture(t)

	accessToken, _, err := jwtService.GenerateTokens(1, constants.RoleUser)
	require.NoError(t, err)

	_, err = authService.Refresh(context.Background(), accessToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenIsNotRefresh)
}

func TestRefreshRotatesTokenPair(t *testing.T) {
	authService, _, jwtService := newAuthFixture(t)

	_, refreshToken, err := jwtService.GenerateTokens(1, constants.RoleUser)
	require.NoError(t, err)

	tokens, err := authService.Refresh(context.Background(), refreshToken)
	require.NoError(t, err)

	claims, err := jwtService.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), claims.UserID)
}

func TestRefreshDeniedForDeactivatedUser(t *testing.T) {
	authService, _, jwtService := newAuthFixture(t)

	_, refreshToken, err := jwtService.GenerateTokens(2, constants.RoleUser)
	require.NoError(t, err)

	_, err = authService.Refresh(context.Background(), refreshToken)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
