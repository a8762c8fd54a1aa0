package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"devlavka/internal/app/store/entity"
	"devlavka/internal/app/store/repository"
	"devlavka/internal/app/store/util"
	"devlavka/pkg/logger"

	"github.com/google/uuid"
)

// publicCacheTTL - срок жизни кеша публичных выдач каталога
const publicCacheTTL = 10 * time.Minute

// CatalogService обрабатывает бизнес-логику каталога: категории и товары.
// Публичные выдачи кешируются в Redis, любая запись инвалидирует кеш.
type CatalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	cache        util.CatalogCache
}

// NewCatalogService создает новый сервис каталога с внедрением зависимостей
func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	cache util.CatalogCache,
) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		cache:        cache,
	}
}

// CreateCategory создает новую категорию
func (s *CatalogService) CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error) {
	category := &entity.Category{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		IsActive:    true,
	}
	if req.NameTranslations != nil {
		category.NameTranslations = *req.NameTranslations
	}
	if req.DescriptionTranslations != nil {
		category.DescriptionTranslations = *req.DescriptionTranslations
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.invalidateCache(ctx)
	return category, nil
}

// GetCategory получает категорию по ID
func (s *CatalogService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

// GetAllCategories получает все категории для админ-панели
func (s *CatalogService) GetAllCategories(ctx context.Context) ([]entity.Category, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

// GetActiveCategories получает активные категории для публичной витрины.
// Сначала проверяет кеш, при промахе читает БД и наполняет кеш.
func (s *CatalogService) GetActiveCategories(ctx context.Context) ([]entity.Category, error) {
	if cached, err := s.cache.GetPublicCategories(ctx); err == nil && cached != nil {
		return cached, nil
	}

	categories, err := s.categoryRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active categories: %w", err)
	}

	if err := s.cache.SetPublicCategories(ctx, categories, publicCacheTTL); err != nil {
		logger.Warn().Err(err).Msg("failed to cache public categories")
	}

	return categories, nil
}

// UpdateCategory частично обновляет категорию: заполненные поля
// запроса перезаписывают поля сущности
func (s *CatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, req *entity.UpdateCategoryRequest) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.NameTranslations != nil {
		category.NameTranslations = *req.NameTranslations
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.DescriptionTranslations != nil {
		category.DescriptionTranslations = *req.DescriptionTranslations
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.invalidateCache(ctx)
	return category, nil
}

// DeleteCategory удаляет категорию. Удаление отсутствующей категории
// не является ошибкой: операция идемпотентна.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	s.invalidateCache(ctx)
	return nil
}

// CreateProduct создает новый товар вместе со связями категорий.
// Несуществующие category_ids молча игнорируются.
func (s *CatalogService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error) {
	product := &entity.Product{
		ID:               uuid.New(),
		Name:             req.Name,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		Price:            req.Price,
		ImageURL:         req.ImageURL,
		IsActive:         true,
		CategoryID:       req.CategoryID,
	}
	if req.NameTranslations != nil {
		product.NameTranslations = *req.NameTranslations
	}
	if req.ShortDescriptionTranslations != nil {
		product.ShortDescriptionTranslations = *req.ShortDescriptionTranslations
	}
	if req.DescriptionTranslations != nil {
		product.DescriptionTranslations = *req.DescriptionTranslations
	}
	if req.DescriptionBlocks != nil {
		product.DescriptionBlocks = req.DescriptionBlocks
	}
	if req.DescriptionBlocksTranslations != nil {
		product.DescriptionBlocksTranslations = *req.DescriptionBlocksTranslations
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if len(req.CategoryIDs) > 0 {
		categories, err := s.categoryRepo.GetByIDs(ctx, req.CategoryIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve categories: %w", err)
		}
		product.Categories = categories
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.invalidateCache(ctx)
	return product, nil
}

// GetProduct получает товар по ID вместе с категориями
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// GetActiveProduct получает активный товар для публичной витрины.
// Скрытый товар для публичного запроса неотличим от несуществующего.
func (s *CatalogService) GetActiveProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// GetAllProducts получает все товары для админ-панели
func (s *CatalogService) GetAllProducts(ctx context.Context) ([]entity.Product, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

// GetActiveProducts получает активные товары для публичной витрины с кешированием
func (s *CatalogService) GetActiveProducts(ctx context.Context) ([]entity.Product, error) {
	if cached, err := s.cache.GetPublicProducts(ctx); err == nil && cached != nil {
		return cached, nil
	}

	products, err := s.productRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active products: %w", err)
	}

	if err := s.cache.SetPublicProducts(ctx, products, publicCacheTTL); err != nil {
		logger.Warn().Err(err).Msg("failed to cache public products")
	}

	return products, nil
}

// UpdateProduct частично обновляет товар. Переданный category_ids
// заменяет прежние связи many-to-many целиком.
func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req *entity.UpdateProductRequest) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.NameTranslations != nil {
		product.NameTranslations = *req.NameTranslations
	}
	if req.ShortDescription != nil {
		product.ShortDescription = *req.ShortDescription
	}
	if req.ShortDescriptionTranslations != nil {
		product.ShortDescriptionTranslations = *req.ShortDescriptionTranslations
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.DescriptionTranslations != nil {
		product.DescriptionTranslations = *req.DescriptionTranslations
	}
	if req.DescriptionBlocks != nil {
		product.DescriptionBlocks = *req.DescriptionBlocks
	}
	if req.DescriptionBlocksTranslations != nil {
		product.DescriptionBlocksTranslations = *req.DescriptionBlocksTranslations
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.CategoryID != nil {
		product.CategoryID = req.CategoryID
	}

	var categories *[]entity.Category
	if req.CategoryIDs != nil {
		resolved, err := s.categoryRepo.GetByIDs(ctx, req.CategoryIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve categories: %w", err)
		}
		categories = &resolved
	}

	if err := s.productRepo.Update(ctx, product, categories); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	// Перечитываем, чтобы вернуть актуальные связи категорий
	updated, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload product: %w", err)
	}

	s.invalidateCache(ctx)
	return updated, nil
}

// DeleteProduct удаляет товар. Операция идемпотентна.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	s.invalidateCache(ctx)
	return nil
}

// invalidateCache сбрасывает кеш публичных выдач.
// Ошибки Redis логируются и не прерывают операцию записи.
func (s *CatalogService) invalidateCache(ctx context.Context) {
	if err := s.cache.InvalidateCatalog(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate catalog cache")
	}
}
