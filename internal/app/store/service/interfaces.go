package service

import (
	"context"

	"devlavka/internal/app/store/entity"

	"github.com/google/uuid"
)

// AuthServiceInterface интерфейс сервиса аутентификации.
// Используется для dependency injection и упрощения тестирования.
type AuthServiceInterface interface {
	Login(ctx context.Context, req *entity.LoginRequest) (*entity.LoginResponse, error)
	ValidateToken(ctx context.Context, token string) (*entity.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req *entity.ChangePasswordRequest) error
}

// CatalogServiceInterface интерфейс сервиса каталога (категории и товары)
type CatalogServiceInterface interface {
	CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetAllCategories(ctx context.Context) ([]entity.Category, error)
	GetActiveCategories(ctx context.Context) ([]entity.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *entity.UpdateCategoryRequest) (*entity.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetActiveProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetAllProducts(ctx context.Context) ([]entity.Product, error)
	GetActiveProducts(ctx context.Context) ([]entity.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *entity.UpdateProductRequest) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// OrderServiceInterface интерфейс сервиса заказов
type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, req *entity.CreateOrderRequest) (*entity.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetAllOrders(ctx context.Context) ([]entity.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) (*entity.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}
