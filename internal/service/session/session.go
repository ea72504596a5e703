// Package session ведёт диалог с покупателем: меню, просмотр каталога, корзина и история заказов.
package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/console"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/validate"
)

const (
	menuFirst = 1
	menuLast  = 4

	optionProducts = 1
	optionCart     = 2
	optionOrders   = 3
	optionExit     = 4
)

const (
	productPrompt = "Enter the ID of the product you want to add: "
	addMorePrompt = "Do you want to add another product? (Y/N): "
)

// Cart — операции корзины, нужные сессии.
type Cart interface {
	AddItem(product domain.Product)
	View(ctx context.Context) error
}

// OrderViewer показывает историю заказов.
type OrderViewer interface {
	ViewOrders(ctx context.Context)
}

// Session — одна консольная сессия покупателя.
type Session struct {
	id        string
	storeName string
	currency  string
	prompter  *console.Prompter
	catalog   domain.CatalogRepository
	cart      Cart
	orders    OrderViewer
	logger    *log.Entry
}

// New создаёт сессию с новым идентификатором.
func New(
	storeName, currency string,
	prompter *console.Prompter,
	catalog domain.CatalogRepository,
	cart Cart,
	orders OrderViewer,
	logger *log.Entry,
) *Session {
	if logger == nil {
		logger = log.New().WithField("component", "session")
	}
	id := uuid.NewString()
	return &Session{
		id:        id,
		storeName: storeName,
		currency:  currency,
		prompter:  prompter,
		catalog:   catalog,
		cart:      cart,
		orders:    orders,
		logger:    logger.WithField("session_id", id),
	}
}

// ID возвращает идентификатор сессии.
func (s *Session) ID() string {
	return s.id
}

// Run крутит меню до выбора «Exit» или закрытия ввода. Оба случая — штатное завершение.
// Ошибкой возвращается только отмена контекста или сбой чтения.
func (s *Session) Run(ctx context.Context) error {
	s.logger.Info("session started")
	err := s.loop(ctx)
	if errors.Is(err, console.ErrInputClosed) {
		s.logger.Info("input closed, session finished")
		return nil
	}
	if err != nil {
		s.logger.WithError(err).Warn("session interrupted")
		return err
	}
	s.logger.Info("session finished")
	return nil
}

func (s *Session) loop(ctx context.Context) error {
	for {
		s.printMenu()
		raw, err := s.prompter.Ask(ctx, "Enter your choice: ")
		if err != nil {
			return err
		}

		option, ok := validate.MenuNumber(raw, menuFirst, menuLast)
		if !ok {
			s.prompter.Println("Invalid choice. Please enter a number between 1 and 4.")
			continue
		}

		switch option {
		case optionProducts:
			err = s.browse(ctx)
		case optionCart:
			err = s.cart.View(ctx)
		case optionOrders:
			s.orders.ViewOrders(ctx)
		case optionExit:
			s.prompter.Println("Thank you for shopping with us!")
			return nil
		}
		if err = s.handle(err); err != nil {
			return err
		}
	}
}

// handle оставляет только ошибки, прерывающие сессию. Отказы домена логируются, меню продолжается.
func (s *Session) handle(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNothingToProcess), errors.Is(err, domain.ErrReceiptInvalid):
		s.logger.WithError(err).Warn("checkout not completed")
		return nil
	default:
		return err
	}
}

func (s *Session) printMenu() {
	s.prompter.Println(console.Banner(s.storeName))
	s.prompter.Println("Menu:")
	s.prompter.Println("1. View Products")
	s.prompter.Println("2. View Shopping Cart")
	s.prompter.Println("3. View Orders")
	s.prompter.Println("4. Exit")
}

// browse показывает каталог и добавляет товары, пока покупатель отвечает «Y».
func (s *Session) browse(ctx context.Context) error {
	console.RenderCatalog(s.prompter.Out(), s.currency, s.catalog.List())

	for {
		product, err := console.AskUntil(ctx, s.prompter, productPrompt, s.parseProduct)
		if err != nil {
			return err
		}
		s.cart.AddItem(product)

		more, err := console.AskUntil(ctx, s.prompter, addMorePrompt, parseYesNo)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

func (s *Session) parseProduct(raw string) (domain.Product, error) {
	id, ok := validate.Integer(raw)
	if !ok {
		return domain.Product{}, console.Reject(nil, "Invalid input. Please enter a numeric product ID.")
	}
	product, err := s.catalog.Get(id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return domain.Product{}, console.Reject(err, "Invalid product ID. Please enter a valid one.")
		}
		return domain.Product{}, err
	}
	return product, nil
}

func parseYesNo(raw string) (bool, error) {
	yes, ok := validate.YesNo(raw)
	if !ok {
		return false, console.Reject(nil, "Invalid input. Please enter 'Y' or 'N' only.")
	}
	return yes, nil
}
