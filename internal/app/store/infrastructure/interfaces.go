package infrastructure

import (
	"context"

	"devlavka/internal/app/store/entity"
)

// OrderNotifier отправляет уведомления о событиях заказов во внешний webhook.
// Все методы best-effort: вызывающая сторона отбрасывает ошибку после логирования.
type OrderNotifier interface {
	// Enabled сообщает, настроен ли webhook URL
	Enabled() bool
	NotifyOrderCreated(ctx context.Context, order *entity.Order) error
	NotifyPendingDigest(ctx context.Context, orders []entity.Order) error
}

// MessagePublisher интерфейс для отправки событий в очередь (Kafka)
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
