package payment

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// MockCollector — конфигурируемая заглушка PaymentCollector для тестов.
type MockCollector struct {
	// Paid — сумма, которую «вносит» покупатель. Нулевое значение означает оплату без сдачи.
	Paid decimal.Decimal
	Err  error

	Calls []decimal.Decimal
}

// NewMockCollector возвращает mock, который оплачивает заказ ровно на сумму к оплате.
func NewMockCollector() *MockCollector {
	return &MockCollector{}
}

// Collect возвращает заранее настроенный результат и запоминает суммы вызовов.
func (m *MockCollector) Collect(_ context.Context, due decimal.Decimal) (domain.Tender, error) {
	m.Calls = append(m.Calls, due)
	if m.Err != nil {
		return domain.Tender{}, m.Err
	}
	paid := m.Paid
	if paid.IsZero() {
		paid = due
	}
	return domain.NewTender(due, paid)
}

var _ domain.PaymentCollector = (*MockCollector)(nil)
