package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"devlavka/internal/app/store/entity"
	"devlavka/internal/app/store/infrastructure"
	"devlavka/internal/app/store/repository"
	"devlavka/pkg/logger"
	"devlavka/pkg/metrics"

	"github.com/google/uuid"
)

// dispatchTimeout ограничивает фоновую доставку уведомлений о заказе
const dispatchTimeout = 15 * time.Second

// OrderService обрабатывает бизнес-логику заказов.
// Координирует репозиторий, webhook-уведомления и события Kafka.
type OrderService struct {
	orderRepo repository.OrderRepository
	notifier  infrastructure.OrderNotifier
	publisher infrastructure.MessagePublisher
}

// NewOrderService создает новый сервис заказов с внедрением зависимостей.
// publisher может быть nil, если Kafka не настроена.
func NewOrderService(
	orderRepo repository.OrderRepository,
	notifier infrastructure.OrderNotifier,
	publisher infrastructure.MessagePublisher,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		notifier:  notifier,
		publisher: publisher,
	}
}

// CreateOrder создает новый заказ со статусом pending.
// 1. Сохраняет заказ в БД
// 2. В фоне отправляет webhook-уведомление и событие в Kafka
// Сбой доставки уведомления не влияет на результат создания заказа.
func (s *OrderService) CreateOrder(ctx context.Context, req *entity.CreateOrderRequest) (*entity.Order, error) {
	order := &entity.Order{
		ID:               uuid.New(),
		ProjectName:      req.ProjectName,
		Name:             req.Name,
		ShortDescription: req.ShortDescription,
		TechnicalSpec:    req.TechnicalSpec,
		Timeline:         req.Timeline,
		Message:          req.Message,
		Email:            req.Email,
		Telegram:         req.Telegram,
		PromoCode:        req.PromoCode,
		TotalPrice:       req.TotalPrice,
		Products:         req.Products,
		OrderType:        req.OrderType,
		Status:           entity.OrderStatusPending,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	metrics.OrdersCreated.WithLabelValues(string(order.OrderType)).Inc()

	// Уведомления уходят в фоне: клиент не ждет внешние сервисы
	go s.dispatchOrderCreated(order)

	return order, nil
}

// dispatchOrderCreated доставляет уведомления о созданном заказе.
// Выполняется в отдельной горутине с собственным контекстом,
// чтобы завершение HTTP-запроса не обрывало доставку.
func (s *OrderService) dispatchOrderCreated(order *entity.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	if err := s.notifier.NotifyOrderCreated(ctx, order); err != nil {
		logger.Error().Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to deliver order created webhook")
	}

	if s.publisher != nil {
		event := entity.OrderCreatedEvent{
			Event:     "order.created",
			Timestamp: time.Now(),
			Order:     order,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			logger.Error().Err(err).Msg("failed to marshal order created event")
			return
		}
		if err := s.publisher.PublishMessage(ctx, order.ID.String(), payload); err != nil {
			logger.Error().Err(err).
				Str("order_id", order.ID.String()).
				Msg("failed to publish order created event")
		}
	}
}

// GetOrder получает заказ по ID
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

// GetAllOrders получает все заказы для админ-панели
func (s *OrderService) GetAllOrders(ctx context.Context) ([]entity.Order, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, nil
}

// UpdateOrderStatus устанавливает заказу любой из допустимых статусов.
// Переходы между статусами не ограничены.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	switch status {
	case entity.OrderStatusPending, entity.OrderStatusInProgress,
		entity.OrderStatusCompleted, entity.OrderStatusCancelled:
	default:
		return nil, ErrInvalidOrderStatus
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	metrics.OrderStatusChanges.WithLabelValues(string(status)).Inc()

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

// DeleteOrder удаляет заказ. В отличие от каталога, удаление
// отсутствующего заказа возвращает ошибку "не найден".
func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

// SendPendingDigest отправляет webhook-дайджест заказов в статусе pending.
// Пустой список и выключенный webhook пропускаются без отправки.
func (s *OrderService) SendPendingDigest(ctx context.Context) error {
	if !s.notifier.Enabled() {
		return nil
	}

	orders, err := s.orderRepo.GetByStatus(ctx, entity.OrderStatusPending)
	if err != nil {
		return fmt.Errorf("failed to get pending orders: %w", err)
	}
	if len(orders) == 0 {
		return nil
	}

	if err := s.notifier.NotifyPendingDigest(ctx, orders); err != nil {
		return fmt.Errorf("failed to deliver pending digest: %w", err)
	}

	logger.Info().Int("pending_count", len(orders)).Msg("pending orders digest delivered")
	return nil
}
