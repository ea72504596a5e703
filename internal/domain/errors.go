package domain

import "errors"

var (
	// Ошибка некорректного идентификатора товара (<= 0).
	ErrProductIDInvalid = errors.New("product id must be greater than zero")
	// Ошибка отсутствующего названия товара.
	ErrProductNameRequired = errors.New("product name is required")
	// Ошибка отрицательной цены товара.
	ErrProductPriceNegative = errors.New("product price must be non-negative")
	// ErrProductNotFound возвращается, если товара нет в каталоге.
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicateProduct — в каталоге два товара с одним ID.
	ErrDuplicateProduct = errors.New("duplicate product id")
	// Ошибка некорректного количества в строке (<= 0).
	ErrLineQtyInvalid = errors.New("line qty must be greater than zero")
	// Ошибка повторяющейся строки одного и того же товара.
	ErrDuplicateLine = errors.New("line for product is duplicated")
	// ErrNothingToProcess — попытка оформить пустой заказ.
	ErrNothingToProcess = errors.New("no items to checkout")
	// Ошибка некорректного номера заказа.
	ErrOrderIDInvalid = errors.New("order id must be greater than zero")
	// Ошибка несоответствия суммы чека и сумм строк.
	ErrAmountMismatch = errors.New("receipt total does not match lines sum")
	// Ошибка отрицательной суммы к оплате.
	ErrPaymentAmountNegative = errors.New("payment amount must be non-negative")
	// ErrPaymentInvalid — введённая сумма не является числом.
	ErrPaymentInvalid = errors.New("payment amount is not a valid number")
	// ErrPaymentInsufficient — внесённой суммы не хватает для оплаты.
	ErrPaymentInsufficient = errors.New("payment amount is insufficient")
	// Ошибка несоответствия сдачи и разницы сумм.
	ErrChangeMismatch = errors.New("change does not match tendered minus total")
	// ErrReceiptInvalid — чек нарушает инварианты и не может попасть в историю.
	ErrReceiptInvalid = errors.New("receipt violates invariants")
)

// IsPaymentRejection проверяет, является ли ошибка отказом в приёме оплаты.
func IsPaymentRejection(err error) bool {
	return errors.Is(err, ErrPaymentInvalid) || errors.Is(err, ErrPaymentInsufficient)
}
