package repository

import (
	"context"
	"errors"

	"devlavka/internal/app/store/entity"

	"github.com/google/uuid"
)

// serviceName - метка сервиса для метрик слоя БД
const serviceName = "store-api"

// Единая конвенция "не найдено": каждый lookup возвращает тегированную
// ошибку, nil-результатов без ошибки не бывает.
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrUserNotFound     = errors.New("user not found")
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Category, error)
	GetAll(ctx context.Context) ([]entity.Category, error)
	GetActive(ctx context.Context) ([]entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetActiveByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetAll(ctx context.Context) ([]entity.Product, error)
	GetActive(ctx context.Context) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product, categories *[]entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetAll(ctx context.Context) ([]entity.Order, error)
	GetByStatus(ctx context.Context, status entity.OrderStatus) ([]entity.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}
