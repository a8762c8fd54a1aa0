package handler

import (
	"net/http"
	"testing"

	"devlavka/internal/app/store/entity"
	"devlavka/internal/app/store/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreateOrder_Handler_PublicEndpoint(t *testing.T) {
	authSvc := new(MockAuthService)
	orderSvc := new(MockOrderService)
	router := setupRouter(authSvc, new(MockCatalogService), orderSvc)

	order := &entity.Order{
		ID:        uuid.New(),
		Telegram:  "@client",
		OrderType: entity.OrderTypePersonal,
		Status:    entity.OrderStatusPending,
	}
	orderSvc.On("CreateOrder", mock.Anything, mock.AnythingOfType("*entity.CreateOrderRequest")).
		Return(order, nil)

	w := doJSON(router, http.MethodPost, "/orders", entity.CreateOrderRequest{
		ProjectName: "Интернет-магазин",
		Telegram:    "@client",
		OrderType:   entity.OrderTypePersonal,
	}, "")

	// Оформление заказа не требует токена
	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeEnvelope(t, w)
	assert.True(t, resp.Success)
	authSvc.AssertNotCalled(t, "ValidateToken")
}

func TestCreateOrder_Handler_TelegramRequired(t *testing.T) {
	orderSvc := new(MockOrderService)
	router := setupRouter(new(MockAuthService), new(MockCatalogService), orderSvc)

	w := doJSON(router, http.MethodPost, "/orders", entity.CreateOrderRequest{
		ProjectName: "Интернет-магазин",
		OrderType:   entity.OrderTypePersonal,
	}, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w)
	assert.False(t, resp.Success)
	orderSvc.AssertNotCalled(t, "CreateOrder")
}

func TestCreateOrder_Handler_BadOrderType(t *testing.T) {
	orderSvc := new(MockOrderService)
	router := setupRouter(new(MockAuthService), new(MockCatalogService), orderSvc)

	w := doJSON(router, http.MethodPost, "/orders", map[string]interface{}{
		"telegram":   "@client",
		"order_type": "wholesale",
	}, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	orderSvc.AssertNotCalled(t, "CreateOrder")
}

func TestGetAllOrders_Handler_RequiresToken(t *testing.T) {
	orderSvc := new(MockOrderService)
	router := setupRouter(new(MockAuthService), new(MockCatalogService), orderSvc)

	w := doJSON(router, http.MethodGet, "/orders", nil, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	orderSvc.AssertNotCalled(t, "GetAllOrders")
}

func TestUpdateOrderStatus_Handler_Success(t *testing.T) {
	authSvc := new(MockAuthService)
	orderSvc := new(MockOrderService)
	router := setupRouter(authSvc, new(MockCatalogService), orderSvc)
	allowToken(authSvc)

	id := uuid.New()
	updated := &entity.Order{ID: id, Telegram: "@client", Status: entity.OrderStatusInProgress}
	orderSvc.On("UpdateOrderStatus", mock.Anything, id, entity.OrderStatusInProgress).
		Return(updated, nil)

	w := doJSON(router, http.MethodPatch, "/orders/"+id.String()+"/status",
		entity.UpdateOrderStatusRequest{Status: entity.OrderStatusInProgress}, testToken)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	assert.True(t, resp.Success)
	orderSvc.AssertExpectations(t)
}

func TestUpdateOrderStatus_Handler_InvalidStatusRejected(t *testing.T) {
	authSvc := new(MockAuthService)
	orderSvc := new(MockOrderService)
	router := setupRouter(authSvc, new(MockCatalogService), orderSvc)
	allowToken(authSvc)

	id := uuid.New()
	w := doJSON(router, http.MethodPatch, "/orders/"+id.String()+"/status",
		map[string]string{"status": "shipped"}, testToken)

	// Невалидный статус отсекается валидатором до вызова сервиса
	assert.Equal(t, http.StatusBadRequest, w.Code)
	orderSvc.AssertNotCalled(t, "UpdateOrderStatus")
}

func TestDeleteOrder_Handler_NotFound(t *testing.T) {
	authSvc := new(MockAuthService)
	orderSvc := new(MockOrderService)
	router := setupRouter(authSvc, new(MockCatalogService), orderSvc)
	allowToken(authSvc)

	id := uuid.New()
	orderSvc.On("DeleteOrder", mock.Anything, id).Return(service.ErrOrderNotFound)

	w := doJSON(router, http.MethodDelete, "/orders/"+id.String(), nil, testToken)

	// Удаление отсутствующего заказа - 404, в отличие от каталога
	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeEnvelope(t, w)
	assert.False(t, resp.Success)
}
