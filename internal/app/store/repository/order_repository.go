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

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository создает новый репозиторий заказов
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create создает новый заказ
func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, "orders")
	defer timer.ObserveDuration()

	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpInsert)
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetByID получает заказ по ID
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "orders")
	defer timer.ObserveDuration()

	var order entity.Order
	result := r.db.WithContext(ctx).First(&order, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get order by id: %w", result.Error)
	}

	return &order, nil
}

// GetAll получает все заказы, новые первыми
func (r *orderRepository) GetAll(ctx context.Context) ([]entity.Order, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "orders")
	defer timer.ObserveDuration()

	var orders []entity.Order
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&orders).Error; err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}

	return orders, nil
}

// GetByStatus получает заказы с заданным статусом, новые первыми
func (r *orderRepository) GetByStatus(ctx context.Context, status entity.OrderStatus) ([]entity.Order, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "orders")
	defer timer.ObserveDuration()

	var orders []entity.Order
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get orders by status: %w", err)
	}

	return orders, nil
}

// UpdateStatus пишет только колонку status
func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, "orders")
	defer timer.ObserveDuration()

	result := r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ?", id).
		Update("status", status)

	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpUpdate)
		return fmt.Errorf("failed to update order status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// Delete удаляет заказ по id
func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpDelete, "orders")
	defer timer.ObserveDuration()

	result := r.db.WithContext(ctx).Delete(&entity.Order{}, "id = ?", id)

	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpDelete)
		return fmt.Errorf("failed to delete order: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}
