package handler

import (
	"errors"
	"net/http"

	"devlavka/internal/app/store/entity"
	"devlavka/internal/app/store/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// CatalogHandler обрабатывает HTTP запросы каталога: категории и товары
type CatalogHandler struct {
	catalogService service.CatalogServiceInterface
	validator      *validator.Validate
}

// NewCatalogHandler создает новый обработчик каталога
func NewCatalogHandler(catalogService service.CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		validator:      validator.New(),
	}
}

// === CATEGORIES HANDLERS ===

// CreateCategory обрабатывает POST /categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req entity.CreateCategoryRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to create category")
		return
	}

	respondSuccess(c, http.StatusCreated, category, "Category created successfully")
}

// GetCategory обрабатывает GET /categories/:id
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	category, err := h.catalogService.GetCategory(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, "Category not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to get category")
		return
	}

	respondSuccess(c, http.StatusOK, category, "")
}

// GetAllCategories обрабатывает GET /categories (админ-панель, без кеша)
func (h *CatalogHandler) GetAllCategories(c *gin.Context) {
	categories, err := h.catalogService.GetAllCategories(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to get categories")
		return
	}

	respondSuccess(c, http.StatusOK, categories, "")
}

// GetPublicCategories обрабатывает GET /categories/public (витрина, кеш Redis)
func (h *CatalogHandler) GetPublicCategories(c *gin.Context) {
	categories, err := h.catalogService.GetActiveCategories(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to get categories")
		return
	}

	respondSuccess(c, http.StatusOK, categories, "")
}

// UpdateCategory обрабатывает PATCH /categories/:id
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	category, err := h.catalogService.UpdateCategory(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, "Category not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to update category")
		return
	}

	respondSuccess(c, http.StatusOK, category, "Category updated successfully")
}

// DeleteCategory обрабатывает DELETE /categories/:id.
// Удаление отсутствующей категории также отвечает 200: операция идемпотентна.
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to delete category")
		return
	}

	respondSuccess(c, http.StatusOK, nil, "Category deleted successfully")
}

// === PRODUCTS HANDLERS ===

// CreateProduct обрабатывает POST /products
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req entity.CreateProductRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to create product")
		return
	}

	respondSuccess(c, http.StatusCreated, product, "Product created successfully")
}

// GetProduct обрабатывает GET /products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to get product")
		return
	}

	respondSuccess(c, http.StatusOK, product, "")
}

// GetPublicProduct обрабатывает GET /products/public/:id.
// Скрытый товар неотличим от несуществующего: в обоих случаях 404.
func (h *CatalogHandler) GetPublicProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := h.catalogService.GetActiveProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to get product")
		return
	}

	respondSuccess(c, http.StatusOK, product, "")
}

// GetAllProducts обрабатывает GET /products (админ-панель, без кеша)
func (h *CatalogHandler) GetAllProducts(c *gin.Context) {
	products, err := h.catalogService.GetAllProducts(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to get products")
		return
	}

	respondSuccess(c, http.StatusOK, products, "")
}

// GetPublicProducts обрабатывает GET /products/public (витрина, кеш Redis)
func (h *CatalogHandler) GetPublicProducts(c *gin.Context) {
	products, err := h.catalogService.GetActiveProducts(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to get products")
		return
	}

	respondSuccess(c, http.StatusOK, products, "")
}

// UpdateProduct обрабатывает PATCH /products/:id и PUT /products/:id
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to update product")
		return
	}

	respondSuccess(c, http.StatusOK, product, "Product updated successfully")
}

// DeleteProduct обрабатывает DELETE /products/:id. Операция идемпотентна.
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	respondSuccess(c, http.StatusOK, nil, "Product deleted successfully")
}
