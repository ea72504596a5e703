package domain

import "github.com/shopspring/decimal"

// Product — позиция каталога магазина. Значение неизменяемо после создания.
type Product struct {
	// ID уникален в пределах каталога.
	ID int
	// Name — отображаемое название товара.
	Name string
	// UnitPrice — цена за единицу, не может быть отрицательной.
	UnitPrice decimal.Decimal
}

// NewProduct собирает товар и проверяет его поля.
func NewProduct(id int, name string, unitPrice decimal.Decimal) (Product, error) {
	p := Product{ID: id, Name: name, UnitPrice: unitPrice}
	if errs := p.Validate(); len(errs) > 0 {
		return Product{}, errs[0]
	}
	return p, nil
}

// Validate проверяет инварианты товара и возвращает список замечаний.
func (p Product) Validate() []error {
	var errs []error

	if p.ID <= 0 {
		errs = append(errs, ErrProductIDInvalid)
	}
	if p.Name == "" {
		errs = append(errs, ErrProductNameRequired)
	}
	if p.UnitPrice.IsNegative() {
		errs = append(errs, ErrProductPriceNegative)
	}

	return errs
}
