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

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository создает новый репозиторий категорий
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create создает новую категорию
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, "categories")
	defer timer.ObserveDuration()

	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpInsert)
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GetByID получает категорию по ID вместе с блобами переводов
func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "categories")
	defer timer.ObserveDuration()

	var category entity.Category
	result := r.db.WithContext(ctx).First(&category, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get category by id: %w", result.Error)
	}

	return &category, nil
}

// GetByIDs возвращает только существующие категории из переданного списка.
// Неизвестные id молча пропускаются.
func (r *categoryRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "categories")
	defer timer.ObserveDuration()

	var categories []entity.Category
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error; err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get categories by ids: %w", err)
	}

	return categories, nil
}

// GetAll получает все категории, новые первыми (админская выдача)
func (r *categoryRepository) GetAll(ctx context.Context) ([]entity.Category, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "categories")
	defer timer.ObserveDuration()

	var categories []entity.Category
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&categories).Error; err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	return categories, nil
}

// GetActive получает только активные категории для публичной выдачи
func (r *categoryRepository) GetActive(ctx context.Context) ([]entity.Category, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "categories")
	defer timer.ObserveDuration()

	var categories []entity.Category
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&categories).Error
	if err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get active categories: %w", err)
	}

	return categories, nil
}

// Update сохраняет все поля категории
func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, "categories")
	defer timer.ObserveDuration()

	result := r.db.WithContext(ctx).Model(category).
		Where("id = ?", category.ID).
		Updates(map[string]interface{}{
			"name":                     category.Name,
			"name_translations":        category.NameTranslations,
			"description":              category.Description,
			"description_translations": category.DescriptionTranslations,
			"color":                    category.Color,
			"is_active":                category.IsActive,
		})

	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpUpdate)
		return fmt.Errorf("failed to update category: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

// Delete удаляет категорию по id.
// Удаление отсутствующей категории - no-op: повторный DELETE не ошибка.
func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpDelete, "categories")
	defer timer.ObserveDuration()

	if err := r.db.WithContext(ctx).Delete(&entity.Category{}, "id = ?", id).Error; err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpDelete)
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}
