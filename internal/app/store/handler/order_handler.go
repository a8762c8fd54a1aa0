package handler

import (
	"errors"
	"net/http"

	"devlavka/internal/app/store/entity"
	"devlavka/internal/app/store/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// OrderHandler обрабатывает HTTP запросы заказов
type OrderHandler struct {
	orderService service.OrderServiceInterface
	validator    *validator.Validate
}

func NewOrderHandler(orderService service.OrderServiceInterface) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		validator:    validator.New(),
	}
}

// CreateOrder обрабатывает POST /orders - публичный эндпоинт оформления заказа
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req entity.CreateOrderRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to create order")
		return
	}

	respondSuccess(c, http.StatusCreated, order, "Order created successfully")
}

// GetOrder обрабатывает GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, http.StatusNotFound, "Order not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to get order")
		return
	}

	respondSuccess(c, http.StatusOK, order, "")
}

// GetAllOrders обрабатывает GET /orders
func (h *OrderHandler) GetAllOrders(c *gin.Context) {
	orders, err := h.orderService.GetAllOrders(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to get orders")
		return
	}

	respondSuccess(c, http.StatusOK, orders, "")
}

// UpdateOrderStatus обрабатывает PATCH /orders/:id/status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, http.StatusNotFound, "Order not found")
		case errors.Is(err, service.ErrInvalidOrderStatus):
			respondError(c, http.StatusBadRequest, "Invalid order status")
		default:
			respondError(c, http.StatusInternalServerError, "Failed to update order status")
		}
		return
	}

	respondSuccess(c, http.StatusOK, order, "Order status updated successfully")
}

// DeleteOrder обрабатывает DELETE /orders/:id.
// В отличие от каталога, удаление отсутствующего заказа отвечает 404.
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, http.StatusNotFound, "Order not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to delete order")
		return
	}

	respondSuccess(c, http.StatusOK, nil, "Order deleted successfully")
}
