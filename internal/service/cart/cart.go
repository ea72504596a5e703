// Package cart хранит корзину текущей сессии и запускает оформление заказа.
package cart

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/console"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
	"github.com/vladislavdragonenkov/storefront/internal/validate"
)

const checkoutPrompt = "Do you want to check out all the products? (Y/N): "

// OrderProcessor оформляет заказ из строк корзины.
type OrderProcessor interface {
	ProcessOrder(ctx context.Context, lines []domain.CartLine) (domain.Receipt, error)
}

// Cart — упорядоченный набор строк, по одной строке на товар.
type Cart struct {
	lines    []domain.CartLine
	prompter *console.Prompter
	orders   OrderProcessor
	currency string
	metrics  *metrics.CheckoutMetrics
	logger   *log.Entry
}

// New создаёт пустую корзину. metrics может быть nil.
func New(prompter *console.Prompter, orders OrderProcessor, currency string, m *metrics.CheckoutMetrics, logger *log.Entry) *Cart {
	if logger == nil {
		logger = log.New().WithField("component", "cart")
	}
	return &Cart{
		prompter: prompter,
		orders:   orders,
		currency: currency,
		metrics:  m,
		logger:   logger,
	}
}

// AddItem увеличивает количество существующей строки или добавляет новую с количеством 1.
func (c *Cart) AddItem(product domain.Product) {
	added := false
	for i := range c.lines {
		if c.lines[i].Product.ID == product.ID {
			c.lines[i].Qty++
			added = true
			break
		}
	}
	if !added {
		c.lines = append(c.lines, domain.CartLine{Product: product, Qty: 1})
	}

	if c.metrics != nil {
		c.metrics.RecordItemAdded()
	}
	c.logger.WithFields(log.Fields{
		"product_id": product.ID,
		"lines":      len(c.lines),
	}).Debug("product added to cart")
	c.prompter.Println("Product added successfully!")
}

// View показывает корзину и предлагает оформить заказ.
// Корзина очищается только после успешного оформления.
func (c *Cart) View(ctx context.Context) error {
	if len(c.lines) == 0 {
		c.prompter.Println("Your shopping cart is empty.")
		return nil
	}

	c.prompter.Println("\nShopping Cart:")
	console.RenderLines(c.prompter.Out(), c.currency, c.lines)

	checkout, err := console.AskUntil(ctx, c.prompter, checkoutPrompt, parseYesNo)
	if err != nil {
		return err
	}
	if !checkout {
		if c.metrics != nil {
			c.metrics.RecordCheckoutDeclined()
		}
		return nil
	}

	if c.metrics != nil {
		c.metrics.RecordCheckoutStarted()
	}
	if _, err := c.orders.ProcessOrder(ctx, c.Lines()); err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	c.Clear()
	return nil
}

// Lines возвращает копию строк корзины.
func (c *Cart) Lines() []domain.CartLine {
	return domain.CopyLines(c.lines)
}

// Len возвращает количество строк.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Clear удаляет все строки. Повторный вызов ничего не меняет.
func (c *Cart) Clear() {
	c.lines = nil
}

func parseYesNo(raw string) (bool, error) {
	yes, ok := validate.YesNo(raw)
	if !ok {
		return false, console.Reject(nil, "Invalid input. Please enter 'Y' or 'N' only.")
	}
	return yes, nil
}
