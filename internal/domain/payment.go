package domain

import "github.com/shopspring/decimal"

// Tender описывает принятую наличную оплату заказа.
type Tender struct {
	// Due — сумма к оплате.
	Due decimal.Decimal
	// Paid — внесённая покупателем сумма.
	Paid decimal.Decimal
	// Change — сдача, Paid - Due. Может быть ровно нулём.
	Change decimal.Decimal
}

// NewTender считает сдачу. Возвращает ErrPaymentInsufficient, если денег не хватает.
func NewTender(due, paid decimal.Decimal) (Tender, error) {
	if paid.LessThan(due) {
		return Tender{}, ErrPaymentInsufficient
	}
	return Tender{Due: due, Paid: paid, Change: paid.Sub(due)}, nil
}

// Validate проверяет согласованность полей оплаты.
func (t Tender) Validate() []error {
	var errs []error

	switch {
	case t.Due.IsNegative():
		errs = append(errs, ErrPaymentAmountNegative)
	case t.Paid.LessThan(t.Due):
		errs = append(errs, ErrPaymentInsufficient)
	case !t.Change.Equal(t.Paid.Sub(t.Due)):
		errs = append(errs, ErrChangeMismatch)
	}

	return errs
}
