package domain

import "github.com/shopspring/decimal"

// CartLine — строка корзины или чека: товар и его количество.
type CartLine struct {
	// Product хранится копией, а не ссылкой на живой каталог.
	Product Product
	// Qty — количество единиц, всегда больше нуля.
	Qty int
}

// Subtotal возвращает стоимость строки: цена * количество.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Product.UnitPrice.Mul(decimal.NewFromInt(int64(l.Qty)))
}

// LinesTotal суммирует стоимость всех строк.
func LinesTotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// CopyLines возвращает независимую копию набора строк.
func CopyLines(lines []CartLine) []CartLine {
	if lines == nil {
		return nil
	}
	result := make([]CartLine, len(lines))
	copy(result, lines)
	return result
}
