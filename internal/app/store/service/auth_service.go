package service

import (
	"context"
	"errors"
	"fmt"

	"devlavka/internal/app/store/entity"
	"devlavka/internal/app/store/repository"
	"devlavka/internal/app/store/util"

	"github.com/google/uuid"
)

// AuthService обрабатывает бизнес-логику аутентификации:
// вход по логину/паролю, проверку токенов, смену пароля
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *util.JWTManager
}

// NewAuthService создает новый сервис аутентификации с внедрением зависимостей
func NewAuthService(userRepo repository.UserRepository, jwtManager *util.JWTManager) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// Login проверяет учетные данные и выпускает access токен.
// Несуществующий пользователь, неверный пароль и деактивированная
// учетная запись дают одинаковую ошибку, чтобы не раскрывать причину.
func (s *AuthService) Login(ctx context.Context, req *entity.LoginRequest) (*entity.LoginResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if !util.CheckPassword(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &entity.LoginResponse{
		AccessToken: token,
		User: entity.PublicUser{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Role,
		},
	}, nil
}

// ValidateToken проверяет подпись токена и перечитывает пользователя из БД.
// Удаленный или деактивированный пользователь теряет доступ немедленно,
// не дожидаясь истечения срока токена.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*entity.User, error) {
	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, util.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.IsActive {
		return nil, util.ErrInvalidToken
	}

	return user, nil
}

// ChangePassword меняет пароль после проверки текущего
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req *entity.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if !util.CheckPassword(req.CurrentPassword, user.PasswordHash) {
		return ErrWrongPassword
	}

	hash, err := util.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
