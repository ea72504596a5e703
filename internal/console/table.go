package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const (
	lineRule    = "----------------------------------------"
	catalogRule = "--------------------------------"
)

// Money форматирует сумму с символом валюты и двумя знаками после точки.
func Money(symbol string, amount decimal.Decimal) string {
	return symbol + amount.StringFixed(2)
}

// RenderLines печатает строки корзины или чека таблицей ID | Name | Price | Qty.
func RenderLines(w io.Writer, currency string, lines []domain.CartLine) {
	_, _ = fmt.Fprintln(w, lineRule)
	_, _ = fmt.Fprintln(w, "ID   | Name             | Price   | Qty")
	_, _ = fmt.Fprintln(w, lineRule)
	for _, line := range lines {
		_, _ = fmt.Fprintf(w, "%4d | %16s | %s%6s | %3d\n",
			line.Product.ID, line.Product.Name, currency, line.Product.UnitPrice.StringFixed(2), line.Qty)
	}
	_, _ = fmt.Fprintln(w, lineRule)
}

// RenderCatalog печатает каталог товаров.
func RenderCatalog(w io.Writer, currency string, products []domain.Product) {
	_, _ = fmt.Fprintln(w, "\nAvailable Products:")
	_, _ = fmt.Fprintln(w, catalogRule)
	_, _ = fmt.Fprintln(w, "ID   | Name             | Price")
	_, _ = fmt.Fprintln(w, catalogRule)
	for _, p := range products {
		_, _ = fmt.Fprintf(w, "%4d | %16s | %s%s\n", p.ID, p.Name, currency, p.UnitPrice.StringFixed(2))
	}
	_, _ = fmt.Fprintln(w, catalogRule)
}

// Banner возвращает заголовок главного меню.
func Banner(storeName string) string {
	return fmt.Sprintf("\n --- %s --- ", strings.ToUpper(storeName))
}
