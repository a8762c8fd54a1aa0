package repository

import (
	"context"
	"errors"
	"fmt"

	"devlavka/internal/app/store/entity"
	"devlavka/pkg/metrics"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository создает новый репозиторий товаров
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create создает товар вместе со связями many-to-many в одной транзакции:
// либо записываются и строка, и связи, либо ничего
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, "products")
	defer timer.ObserveDuration()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(product).Error
	})
	if err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpInsert)
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// GetByID получает товар по ID со связанными категориями
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "products")
	defer timer.ObserveDuration()

	var product entity.Product
	result := r.db.WithContext(ctx).Preload("Categories").First(&product, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get product by id: %w", result.Error)
	}

	return &product, nil
}

// GetActiveByID получает активный товар для публичной карточки.
// Неактивный товар для этого запроса не существует.
func (r *productRepository) GetActiveByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "products")
	defer timer.ObserveDuration()

	var product entity.Product
	result := r.db.WithContext(ctx).
		Preload("Categories").
		Where("is_active = ?", true).
		First(&product, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get active product by id: %w", result.Error)
	}

	return &product, nil
}

// GetAll получает все товары, новые первыми (админская выдача)
func (r *productRepository) GetAll(ctx context.Context) ([]entity.Product, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "products")
	defer timer.ObserveDuration()

	var products []entity.Product
	err := r.db.WithContext(ctx).
		Preload("Categories").
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	return products, nil
}

// GetActive получает только активные товары для публичного каталога
func (r *productRepository) GetActive(ctx context.Context) ([]entity.Product, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "products")
	defer timer.ObserveDuration()

	var products []entity.Product
	err := r.db.WithContext(ctx).
		Preload("Categories").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get active products: %w", err)
	}

	return products, nil
}

// Update сохраняет поля товара и, если передан список категорий,
// заменяет связи many-to-many целиком. Оба шага - одна транзакция.
func (r *productRepository) Update(ctx context.Context, product *entity.Product, categories *[]entity.Category) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, "products")
	defer timer.ObserveDuration()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(product).
			Where("id = ?", product.ID).
			Updates(map[string]interface{}{
				"name":                            product.Name,
				"name_translations":               product.NameTranslations,
				"short_description":               product.ShortDescription,
				"short_description_translations":  product.ShortDescriptionTranslations,
				"description":                     product.Description,
				"description_translations":        product.DescriptionTranslations,
				"description_blocks":              product.DescriptionBlocks,
				"description_blocks_translations": product.DescriptionBlocksTranslations,
				"price":                           product.Price,
				"image_url":                       product.ImageURL,
				"is_active":                       product.IsActive,
				"category_id":                     product.CategoryID,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProductNotFound
		}

		if categories != nil {
			if err := tx.Model(product).Association("Categories").Replace(*categories); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return ErrProductNotFound
		}
		metrics.RecordDbError(serviceName, metrics.DbOpUpdate)
		return fmt.Errorf("failed to update product: %w", err)
	}

	return nil
}

// Delete удаляет товар по id, no-op для отсутствующего id
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpDelete, "products")
	defer timer.ObserveDuration()

	if err := r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id).Error; err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpDelete)
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}
