package features

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/app"
	"github.com/vladislavdragonenkov/storefront/internal/console"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/cart"
	"github.com/vladislavdragonenkov/storefront/internal/service/order"
	"github.com/vladislavdragonenkov/storefront/internal/service/payment"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

type checkoutTestContext struct {
	catalog domain.CatalogRepository
	history domain.OrderHistoryRepository
	pending []domain.Product
	out     bytes.Buffer
	cart    *cart.Cart
	receipt domain.Receipt
	err     error
	logger  *log.Entry
}

func (c *checkoutTestContext) reset() {
	logger := log.New()
	logger.SetOutput(io.Discard)

	c.catalog = nil
	c.history = memory.NewOrderHistoryRepository()
	c.pending = nil
	c.out.Reset()
	c.cart = nil
	c.receipt = domain.Receipt{}
	c.err = nil
	c.logger = logger.WithField("component", "features")
}

// recordingOrders запоминает последний оформленный чек.
type recordingOrders struct {
	tc    *checkoutTestContext
	inner *order.Service
}

func (r recordingOrders) ProcessOrder(ctx context.Context, lines []domain.CartLine) (domain.Receipt, error) {
	receipt, err := r.inner.ProcessOrder(ctx, lines)
	r.tc.receipt, r.tc.err = receipt, err
	return receipt, err
}

// newCart собирает корзину, которая прочитает ответы покупателя из input.
func (c *checkoutTestContext) newCart(input string) (*cart.Cart, *order.Service) {
	prompter := console.NewPrompter(strings.NewReader(input), &c.out)
	collector := payment.NewCollector(prompter, "₱", nil, c.logger)
	orders := order.NewService(c.history, collector, &c.out, "₱", c.logger)
	shoppingCart := cart.New(prompter, recordingOrders{tc: c, inner: orders}, "₱", nil, c.logger)
	for _, p := range c.pending {
		shoppingCart.AddItem(p)
	}
	return shoppingCart, orders
}

func (c *checkoutTestContext) theDefaultCatalog() error {
	products, err := app.DefaultConfig().Products()
	if err != nil {
		return err
	}
	c.catalog, err = memory.NewCatalogRepository(products)
	return err
}

func (c *checkoutTestContext) theCartContainsOfProduct(qty, id int) error {
	p, err := c.catalog.Get(id)
	if err != nil {
		return err
	}
	for i := 0; i < qty; i++ {
		c.pending = append(c.pending, p)
	}
	return nil
}

func (c *checkoutTestContext) theCustomerChecksOutPaying(payments string) error {
	input := "Y\n" + strings.ReplaceAll(payments, ",", "\n") + "\n"
	c.cart, _ = c.newCart(input)
	c.pending = nil
	return c.cart.View(context.Background())
}

func (c *checkoutTestContext) theCustomerDeclinesCheckout() error {
	c.cart, _ = c.newCart("N\n")
	return c.cart.View(context.Background())
}

func (c *checkoutTestContext) theCustomerChecksOutAnEmptyOrder() error {
	_, orders := c.newCart("")
	c.receipt, c.err = orders.ProcessOrder(context.Background(), nil)
	return nil
}

func (c *checkoutTestContext) theOrderTotalIs(want string) error {
	return equalAmount("total", c.receipt.Total, want)
}

func (c *checkoutTestContext) theChangeIs(want string) error {
	return equalAmount("change", c.receipt.Change, want)
}

func (c *checkoutTestContext) theOrderHistoryHasOrders(want int) error {
	if got := c.history.Count(); got != want {
		return fmt.Errorf("expected %d orders in history, got %d", want, got)
	}
	return nil
}

func (c *checkoutTestContext) theCartIsEmpty() error {
	if c.cart.Len() != 0 {
		return fmt.Errorf("expected empty cart, got %d lines", c.cart.Len())
	}
	return nil
}

func (c *checkoutTestContext) theCartHasLines(want int) error {
	if got := c.cart.Len(); got != want {
		return fmt.Errorf("expected %d cart lines, got %d", want, got)
	}
	return nil
}

func (c *checkoutTestContext) theConsoleShows(text string) error {
	if !strings.Contains(c.out.String(), text) {
		return fmt.Errorf("console output does not contain %q", text)
	}
	return nil
}

func (c *checkoutTestContext) theLastOrderIDIs(want int64) error {
	if c.receipt.OrderID != want {
		return fmt.Errorf("expected order id %d, got %d", want, c.receipt.OrderID)
	}
	return nil
}

func (c *checkoutTestContext) theCheckoutFailsBecauseThereIsNothingToProcess() error {
	if !errors.Is(c.err, domain.ErrNothingToProcess) {
		return fmt.Errorf("expected ErrNothingToProcess, got %v", c.err)
	}
	return c.theConsoleShows("No items to checkout.")
}

func (c *checkoutTestContext) theNextOrderIDIs(want int64) error {
	if got := c.history.NextOrderID(); got != want {
		return fmt.Errorf("expected next order id %d, got %d", want, got)
	}
	return nil
}

func equalAmount(name string, got decimal.Decimal, want string) error {
	expected, err := decimal.NewFromString(want)
	if err != nil {
		return err
	}
	if !got.Equal(expected) {
		return fmt.Errorf("expected %s %s, got %s", name, want, got.StringFixed(2))
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &checkoutTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the default catalog$`, tc.theDefaultCatalog)
	ctx.Step(`^the cart contains (\d+) of product (\d+)$`, tc.theCartContainsOfProduct)

	// When steps
	ctx.Step(`^the customer checks out paying "([^"]*)"$`, tc.theCustomerChecksOutPaying)
	ctx.Step(`^the customer declines checkout$`, tc.theCustomerDeclinesCheckout)
	ctx.Step(`^the customer checks out an empty order$`, tc.theCustomerChecksOutAnEmptyOrder)

	// Then steps
	ctx.Step(`^the order total is "([^"]*)"$`, tc.theOrderTotalIs)
	ctx.Step(`^the change is "([^"]*)"$`, tc.theChangeIs)
	ctx.Step(`^the order history has (\d+) orders?$`, tc.theOrderHistoryHasOrders)
	ctx.Step(`^the cart is empty$`, tc.theCartIsEmpty)
	ctx.Step(`^the cart has (\d+) lines?$`, tc.theCartHasLines)
	ctx.Step(`^the console shows "([^"]*)"$`, tc.theConsoleShows)
	ctx.Step(`^the last order id is (\d+)$`, tc.theLastOrderIDIs)
	ctx.Step(`^the checkout fails because there is nothing to process$`, tc.theCheckoutFailsBecauseThereIsNothingToProcess)
	ctx.Step(`^the next order id is (\d+)$`, tc.theNextOrderIDIs)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"checkout.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
