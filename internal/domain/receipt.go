package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Receipt — неизменяемый снимок оформленного заказа.
type Receipt struct {
	// ID — технический идентификатор чека для логов и событий.
	ID string
	// OrderID — порядковый номер заказа, выданный при оформлении.
	OrderID int64
	// Lines — копия строк корзины на момент оформления.
	Lines []CartLine
	// Total фиксируется один раз и больше не пересчитывается.
	Total     decimal.Decimal
	Tendered  decimal.Decimal
	Change    decimal.Decimal
	CreatedAt time.Time
}

// NewReceipt формирует чек из строк заказа и принятой оплаты.
func NewReceipt(orderID int64, lines []CartLine, tender Tender, createdAt time.Time) Receipt {
	frozen := CopyLines(lines)
	return Receipt{
		ID:        uuid.NewString(),
		OrderID:   orderID,
		Lines:     frozen,
		Total:     LinesTotal(frozen),
		Tendered:  tender.Paid,
		Change:    tender.Change,
		CreatedAt: createdAt,
	}
}

// RecomputedTotal заново суммирует сохранённые строки чека.
func (r Receipt) RecomputedTotal() decimal.Decimal {
	return LinesTotal(r.Lines)
}

// ValidateInvariants проверяет базовые инварианты чека и возвращает список замечаний.
func (r Receipt) ValidateInvariants() []error {
	var errs []error

	if r.OrderID <= 0 {
		errs = append(errs, ErrOrderIDInvalid)
	}
	if len(r.Lines) == 0 {
		errs = append(errs, ErrNothingToProcess)
	}

	seen := make(map[int]struct{}, len(r.Lines))
	for _, line := range r.Lines {
		if line.Qty <= 0 {
			errs = append(errs, ErrLineQtyInvalid)
		}
		if line.Product.UnitPrice.IsNegative() {
			errs = append(errs, ErrProductPriceNegative)
		}
		if _, dup := seen[line.Product.ID]; dup {
			errs = append(errs, ErrDuplicateLine)
		}
		seen[line.Product.ID] = struct{}{}
	}

	// Сверяем зафиксированную сумму с суммой строк.
	if !r.Total.Equal(r.RecomputedTotal()) {
		errs = append(errs, ErrAmountMismatch)
	}
	if r.Tendered.LessThan(r.Total) {
		errs = append(errs, ErrPaymentInsufficient)
	}
	if !r.Change.Equal(r.Tendered.Sub(r.Total)) {
		errs = append(errs, ErrChangeMismatch)
	}

	return errs
}
