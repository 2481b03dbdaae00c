package service

import (
	"context"
	"testing"
	"time"

	"github.com/petrodesk/station-api/internal/domain/enum"
	"github.com/petrodesk/station-api/internal/infrastructure/repository"
	"github.com/petrodesk/station-api/pkg/apperror"
	"github.com/petrodesk/station-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(repository.NewUserRepository(db), jwtManager)
}

func TestLoginAndRefresh(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, &CreateUserInput{
		FirstName: "Grace",
		Email:     "grace@station.test",
		Password:  "s3cret-pass",
		Role:      enum.RoleManager,
	})
	require.NoError(t, err)

	result, err := svc.Login(ctx, "grace@station.test", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)
	assert.NotNil(t, result.User.LastLogin)

	pair, err := svc.RefreshTokens(ctx, result.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, &CreateUserInput{
		FirstName: "Grace",
		Email:     "grace@station.test",
		Password:  "s3cret-pass",
		Role:      enum.RoleAttendant,
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "grace@station.test", "wrong")
	require.Error(t, err)
	assert.Equal(t, 401, apperror.GetAppError(err).Code)

	_, err = svc.Login(ctx, "nobody@station.test", "whatever")
	require.Error(t, err)
	assert.Equal(t, 401, apperror.GetAppError(err).Code)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, &CreateUserInput{
		FirstName: "Former",
		Email:     "former@station.test",
		Password:  "s3cret-pass",
		Role:      enum.RoleAttendant,
	})
	require.NoError(t, err)
	require.NoError(t, db.Model(user).Update("active", false).Error)

	_, err = svc.Login(ctx, "former@station.test", "s3cret-pass")
	require.Error(t, err)
	assert.Equal(t, 403, apperror.GetAppError(err).Code)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	input := &CreateUserInput{
		FirstName: "Grace",
		Email:     "grace@station.test",
		Password:  "s3cret-pass",
		Role:      enum.RoleAdmin,
	}
	_, err := svc.CreateUser(ctx, input)
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, input)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestChangePassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, &CreateUserInput{
		FirstName: "Grace",
		Email:     "grace@station.test",
		Password:  "old-pass",
		Role:      enum.RoleManager,
	})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, user.ID, "wrong-pass", "new-pass")
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "old-pass", "new-pass"))

	_, err = svc.Login(ctx, "grace@station.test", "new-pass")
	require.NoError(t, err)
}
