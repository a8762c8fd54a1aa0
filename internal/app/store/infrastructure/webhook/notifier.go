package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"devlavka/internal/app/store/entity"
	"devlavka/pkg/metrics"
)

const (
	serviceName = "store-api"

	// notifyTimeout ограничивает ожидание ответа получателя webhook
	notifyTimeout = 10 * time.Second

	EventOrderCreated  = "order.created"
	EventPendingDigest = "orders.digest"
)

// Notifier доставляет JSON-уведомления на настроенный webhook URL.
// Пустой URL делает нотификатор инертным: все вызовы - no-op без ошибки.
type Notifier struct {
	url        string
	httpClient *http.Client
}

// NewNotifier создает новый webhook нотификатор
func NewNotifier(url string) *Notifier {
	return &Notifier{
		url: url,
		httpClient: &http.Client{
			Timeout: notifyTimeout,
		},
	}
}

// Enabled сообщает, настроен ли webhook URL
func (n *Notifier) Enabled() bool {
	return n.url != ""
}

// NotifyOrderCreated отправляет envelope {event:"order.created", timestamp, order}
func (n *Notifier) NotifyOrderCreated(ctx context.Context, order *entity.Order) error {
	event := entity.OrderCreatedEvent{
		Event:     EventOrderCreated,
		Timestamp: time.Now(),
		Order:     order,
	}
	return n.post(ctx, EventOrderCreated, event)
}

// NotifyPendingDigest отправляет сводку ожидающих заказов
func (n *Notifier) NotifyPendingDigest(ctx context.Context, orders []entity.Order) error {
	event := entity.PendingDigestEvent{
		Event:        EventPendingDigest,
		Timestamp:    time.Now(),
		PendingCount: len(orders),
		Orders:       orders,
	}
	return n.post(ctx, EventPendingDigest, event)
}

// post выполняет единственную попытку доставки, без повторов
func (n *Notifier) post(ctx context.Context, eventName string, payload interface{}) error {
	if n.url == "" {
		metrics.RecordWebhookNotification(serviceName, eventName, "skipped", 0)
		return nil
	}

	start := time.Now()

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		metrics.RecordWebhookNotification(serviceName, eventName, "error", time.Since(start))
		return fmt.Errorf("failed to deliver webhook: %w", err)
	}
	defer resp.Body.Close()

	// Тело ответа не интересует, но соединение должно вернуться в пул
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.RecordWebhookNotification(serviceName, eventName, "error", time.Since(start))
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	metrics.RecordWebhookNotification(serviceName, eventName, "ok", time.Since(start))
	return nil
}
