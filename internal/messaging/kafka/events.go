package kafka

import (
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// EventType определяет тип события
type EventType string

const (
	EventTypeOrderRecorded EventType = "order.recorded"
)

// Topics для Kafka
const (
	TopicOrderEvents = "storefront.order.events"
)

// Kafka headers
const (
	HeaderEventType = "x-event-type"
	HeaderEventID   = "x-event-id"
)

// LineEvent — строка чека в событии. Суммы передаются строками без потери точности.
type LineEvent struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Qty       int    `json:"qty"`
	Subtotal  string `json:"subtotal"`
}

// OrderEvent представляет событие оформленного заказа
type OrderEvent struct {
	EventID   string      `json:"event_id"`
	EventType EventType   `json:"event_type"`
	OrderID   int64       `json:"order_id"`
	ReceiptID string      `json:"receipt_id"`
	Lines     []LineEvent `json:"lines"`
	Total     string      `json:"total"`
	Tendered  string      `json:"tendered"`
	Change    string      `json:"change"`
	Currency  string      `json:"currency,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewOrderRecordedEvent создает событие по сохранённому чеку
func NewOrderRecordedEvent(receipt domain.Receipt, currency string) *OrderEvent {
	lines := make([]LineEvent, 0, len(receipt.Lines))
	for _, line := range receipt.Lines {
		lines = append(lines, LineEvent{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			UnitPrice: line.Product.UnitPrice.StringFixed(2),
			Qty:       line.Qty,
			Subtotal:  line.Subtotal().StringFixed(2),
		})
	}

	return &OrderEvent{
		EventID:   uuid.NewString(),
		EventType: EventTypeOrderRecorded,
		OrderID:   receipt.OrderID,
		ReceiptID: receipt.ID,
		Lines:     lines,
		Total:     receipt.Total.StringFixed(2),
		Tendered:  receipt.Tendered.StringFixed(2),
		Change:    receipt.Change.StringFixed(2),
		Currency:  currency,
		CreatedAt: receipt.CreatedAt,
		Timestamp: time.Now().UTC(),
	}
}
