package util

import (
	"context"
	"time"

	"devlavka/internal/app/store/entity"
)

// CatalogCache интерфейс кеша публичного каталога.
// Используется для dependency injection и упрощения тестирования.
type CatalogCache interface {
	SetPublicCategories(ctx context.Context, categories []entity.Category, ttl time.Duration) error
	GetPublicCategories(ctx context.Context) ([]entity.Category, error)
	SetPublicProducts(ctx context.Context, products []entity.Product, ttl time.Duration) error
	GetPublicProducts(ctx context.Context) ([]entity.Product, error)
	InvalidateCatalog(ctx context.Context) error
	Close() error
}
