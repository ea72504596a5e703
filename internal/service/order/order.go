// Package order оформляет заказы из строк корзины и ведёт журнал оформленных чеков.
package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vladislavdragonenkov/storefront/internal/console"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

const tracerName = "github.com/vladislavdragonenkov/storefront/internal/service/order"

// Service реализует последовательность: номер заказа → чек → оплата → журнал.
type Service struct {
	history   domain.OrderHistoryRepository
	payments  domain.PaymentCollector
	publisher domain.ReceiptPublisher
	out       io.Writer
	currency  string
	logger    *log.Entry
	metrics   *metrics.CheckoutMetrics
	now       func() time.Time
}

// Option настраивает необязательные зависимости сервиса.
type Option func(*Service)

// WithPublisher подключает публикацию чеков (например, в Kafka).
func WithPublisher(publisher domain.ReceiptPublisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

// WithMetrics подключает метрики оформления.
func WithMetrics(m *metrics.CheckoutMetrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithClock подменяет источник времени (для тестов).
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService создаёт сервис заказов.
func NewService(
	history domain.OrderHistoryRepository,
	payments domain.PaymentCollector,
	out io.Writer,
	currency string,
	logger *log.Entry,
	opts ...Option,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "order")
	}
	s := &Service{
		history:  history,
		payments: payments,
		out:      out,
		currency: currency,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessOrder оформляет заказ. Пустой набор строк — ErrNothingToProcess без побочных эффектов.
// Номер заказа расходуется на каждый непустой вызов и не возвращается при ошибке оплаты.
func (s *Service) ProcessOrder(ctx context.Context, lines []domain.CartLine) (domain.Receipt, error) {
	if len(lines) == 0 {
		s.println("No items to checkout.")
		return domain.Receipt{}, domain.ErrNothingToProcess
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "order.process")
	defer span.End()

	orderID := s.history.NextOrderID()
	frozen := domain.CopyLines(lines)
	total := domain.LinesTotal(frozen)
	span.SetAttributes(
		attribute.Int64("order.id", orderID),
		attribute.Int("order.lines", len(frozen)),
		attribute.String("order.total", total.String()),
	)
	logger := s.logger.WithField("order_id", orderID)

	s.println(fmt.Sprintf("\nOrder ID: %d", orderID))
	s.println("Order Details:")
	console.RenderLines(s.out, s.currency, frozen)
	s.println("Total Amount: " + console.Money(s.currency, total))

	tender, err := s.payments.Collect(ctx, total)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "payment not collected")
		logger.WithError(err).Warn("order abandoned during payment")
		return domain.Receipt{}, fmt.Errorf("collect payment for order %d: %w", orderID, err)
	}

	s.println("You have successfully checked out the products!")

	receipt := domain.NewReceipt(orderID, frozen, tender, s.now())
	if err := s.history.Append(receipt); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "receipt not recorded")
		// Оплата уже принята: сумма в логе нужна для ручного разбора.
		logger.WithError(err).WithFields(log.Fields{
			"receipt_id": receipt.ID,
			"total":      receipt.Total.String(),
			"paid":       receipt.Tendered.String(),
			"change":     receipt.Change.String(),
		}).Error("payment collected but receipt not recorded")
		return domain.Receipt{}, fmt.Errorf("record order %d: %w", orderID, err)
	}

	if s.metrics != nil {
		s.metrics.RecordOrder(receipt.Total, len(receipt.Lines), s.history.Count())
	}
	logger.WithFields(log.Fields{
		"receipt_id": receipt.ID,
		"total":      receipt.Total.String(),
		"change":     receipt.Change.String(),
	}).Info("order recorded")

	s.publish(ctx, receipt)
	return receipt, nil
}

// ViewOrders печатает все чеки в порядке оформления с заново пересчитанной суммой.
// Порядковый номер в выводе не связан с номером заказа и показывается рядом с ним.
func (s *Service) ViewOrders(ctx context.Context) {
	_, span := otel.Tracer(tracerName).Start(ctx, "order.view")
	defer span.End()

	receipts := s.history.List()
	span.SetAttributes(attribute.Int("orders.count", len(receipts)))
	if len(receipts) == 0 {
		s.println("No previous orders found.")
		return
	}

	for i, receipt := range receipts {
		s.println(fmt.Sprintf("\nOrder %d (ID %d):", i+1, receipt.OrderID))
		s.println("Order Details:")
		console.RenderLines(s.out, s.currency, receipt.Lines)
		s.println("Total Amount: " + console.Money(s.currency, receipt.RecomputedTotal()))
	}
}

// publish отправляет чек подписчикам. Ошибка публикации не отменяет оформленный заказ.
func (s *Service) publish(ctx context.Context, receipt domain.Receipt) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishReceipt(ctx, receipt); err != nil {
		entry := s.logger.WithError(err).WithFields(log.Fields{
			"order_id":   receipt.OrderID,
			"receipt_id": receipt.ID,
		})
		if errors.Is(err, context.Canceled) {
			entry.Debug("receipt publish canceled")
			return
		}
		entry.Warn("failed to publish receipt")
	}
}

func (s *Service) println(text string) {
	_, _ = fmt.Fprintln(s.out, text)
}
