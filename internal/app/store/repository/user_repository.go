package repository

import (
	"context"
	"errors"
	"fmt"

	"devlavka/internal/app/store/entity"
	"devlavka/pkg/metrics"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository создает новый репозиторий пользователей
func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &userRepository{db: db}
}

// Create создает нового пользователя
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, "users")
	defer timer.ObserveDuration()

	query := `
		INSERT INTO users (id, username, password_hash, is_active, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(
		ctx, query,
		user.ID, user.Username, user.PasswordHash, user.IsActive, user.Role, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpInsert)
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID получает пользователя по ID.
// Используется на каждом аутентифицированном запросе для live-проверки аккаунта.
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "users")
	defer timer.ObserveDuration()

	query := `SELECT id, username, password_hash, is_active, role, created_at, updated_at FROM users WHERE id = $1`

	var user entity.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.IsActive,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &user, nil
}

// GetByUsername получает пользователя по имени
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "users")
	defer timer.ObserveDuration()

	query := `SELECT id, username, password_hash, is_active, role, created_at, updated_at FROM users WHERE username = $1`

	var user entity.User
	err := r.db.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.IsActive,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return &user, nil
}

// UpdatePassword обновляет хэш пароля пользователя
func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, "users")
	defer timer.ObserveDuration()

	query := `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.db.Exec(ctx, query, passwordHash, id)
	if err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpUpdate)
		return fmt.Errorf("failed to update password: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}
