package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// PaymentCollector принимает оплату заказа у покупателя.
type PaymentCollector interface {
	// Collect блокируется, пока не будет внесена достаточная сумма.
	Collect(ctx context.Context, due decimal.Decimal) (Tender, error)
}

// ReceiptPublisher публикует оформленные чеки наружу.
type ReceiptPublisher interface {
	// PublishReceipt передаёт чек внешним подписчикам; ошибки не должны ломать оформление.
	PublishReceipt(ctx context.Context, receipt Receipt) error
}
