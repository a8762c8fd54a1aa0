package service

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"devlavka/internal/app/store/entity"
	"devlavka/internal/app/store/repository"
	"devlavka/internal/app/store/repository/mocks"
	"devlavka/internal/app/store/util"
	"devlavka/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	logger.InitWithWriter("store-api-test", "error", io.Discard)
	os.Exit(m.Run())
}

func newTestJWTManager() *util.JWTManager {
	return util.NewJWTManager("test-secret", time.Hour)
}

func activeAdmin(password string) *entity.User {
	hash, _ := util.HashPassword(password)
	return &entity.User{
		ID:           uuid.New(),
		Username:     "admin",
		PasswordHash: hash,
		IsActive:     true,
		Role:         "admin",
	}
}

// ===================== Login Tests =====================

func TestLogin_Success(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	service := NewAuthService(userRepo, newTestJWTManager())

	ctx := context.Background()
	user := activeAdmin("secret-password")

	userRepo.On("GetByUsername", ctx, "admin").Return(user, nil)

	resp, err := service.Login(ctx, &entity.LoginRequest{
		Username: "admin",
		Password: "secret-password",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.Equal(t, "admin", resp.User.Username)
	userRepo.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	service := NewAuthService(userRepo, newTestJWTManager())

	ctx := context.Background()
	user := activeAdmin("secret-password")

	userRepo.On("GetByUsername", ctx, "admin").Return(user, nil)

	resp, err := service.Login(ctx, &entity.LoginRequest{
		Username: "admin",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, resp)
}

func TestLogin_UserNotFound(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	service := NewAuthService(userRepo, newTestJWTManager())

	ctx := context.Background()
	userRepo.On("GetByUsername", ctx, "ghost").Return(nil, repository.ErrUserNotFound)

	resp, err := service.Login(ctx, &entity.LoginRequest{
		Username: "ghost",
		Password: "whatever",
	})

	// Несуществующий пользователь неотличим от неверного пароля
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, resp)
}

func TestLogin_InactiveUser(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	service := NewAuthService(userRepo, newTestJWTManager())

	ctx := context.Background()
	user := activeAdmin("secret-password")
	user.IsActive = false

	userRepo.On("GetByUsername", ctx, "admin").Return(user, nil)

	resp, err := service.Login(ctx, &entity.LoginRequest{
		Username: "admin",
		Password: "secret-password",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, resp)
}

// ===================== ValidateToken Tests =====================

func TestValidateToken_Success(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	jwtManager := newTestJWTManager()
	service := NewAuthService(userRepo, jwtManager)

	ctx := context.Background()
	user := activeAdmin("secret-password")

	token, err := jwtManager.GenerateToken(user)
	assert.NoError(t, err)

	userRepo.On("GetByID", ctx, user.ID).Return(user, nil)

	got, err := service.ValidateToken(ctx, token)

	assert.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	userRepo.AssertExpectations(t)
}

func TestValidateToken_DeletedUser(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	jwtManager := newTestJWTManager()
	service := NewAuthService(userRepo, jwtManager)

	ctx := context.Background()
	user := activeAdmin("secret-password")

	token, err := jwtManager.GenerateToken(user)
	assert.NoError(t, err)

	// Пользователь удален после выпуска токена
	userRepo.On("GetByID", ctx, user.ID).Return(nil, repository.ErrUserNotFound)

	got, err := service.ValidateToken(ctx, token)

	assert.ErrorIs(t, err, util.ErrInvalidToken)
	assert.Nil(t, got)
}

func TestValidateToken_InactiveUser(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	jwtManager := newTestJWTManager()
	service := NewAuthService(userRepo, jwtManager)

	ctx := context.Background()
	user := activeAdmin("secret-password")

	token, err := jwtManager.GenerateToken(user)
	assert.NoError(t, err)

	// Учетная запись деактивирована после выпуска токена
	deactivated := *user
	deactivated.IsActive = false
	userRepo.On("GetByID", ctx, user.ID).Return(&deactivated, nil)

	got, err := service.ValidateToken(ctx, token)

	assert.ErrorIs(t, err, util.ErrInvalidToken)
	assert.Nil(t, got)
}

func TestValidateToken_MalformedToken(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	service := NewAuthService(userRepo, newTestJWTManager())

	got, err := service.ValidateToken(context.Background(), "not-a-jwt")

	assert.ErrorIs(t, err, util.ErrInvalidToken)
	assert.Nil(t, got)
	userRepo.AssertNotCalled(t, "GetByID")
}

// ===================== ChangePassword Tests =====================

func TestChangePassword_Success(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	service := NewAuthService(userRepo, newTestJWTManager())

	ctx := context.Background()
	user := activeAdmin("old-password")

	userRepo.On("GetByID", ctx, user.ID).Return(user, nil)
	userRepo.On("UpdatePassword", ctx, user.ID, mock.AnythingOfType("string")).Return(nil)

	err := service.ChangePassword(ctx, user.ID, &entity.ChangePasswordRequest{
		CurrentPassword: "old-password",
		NewPassword:     "new-password-123",
	})

	assert.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestChangePassword_WrongCurrentPassword(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	service := NewAuthService(userRepo, newTestJWTManager())

	ctx := context.Background()
	user := activeAdmin("old-password")

	userRepo.On("GetByID", ctx, user.ID).Return(user, nil)

	err := service.ChangePassword(ctx, user.ID, &entity.ChangePasswordRequest{
		CurrentPassword: "not-the-old-password",
		NewPassword:     "new-password-123",
	})

	assert.ErrorIs(t, err, ErrWrongPassword)
	userRepo.AssertNotCalled(t, "UpdatePassword")
}
