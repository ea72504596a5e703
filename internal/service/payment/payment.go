// Package payment принимает наличную оплату заказа через консольный диалог.
package payment

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vladislavdragonenkov/storefront/internal/console"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
	"github.com/vladislavdragonenkov/storefront/internal/validate"
)

const tracerName = "github.com/vladislavdragonenkov/storefront/internal/service/payment"

// Evaluate проверяет введённую сумму против суммы к оплате.
// Возвращает ErrPaymentInvalid для нечислового ввода и ErrPaymentInsufficient, если денег мало.
func Evaluate(raw string, due decimal.Decimal) (domain.Tender, error) {
	paid, ok := validate.PaymentAmount(raw)
	if !ok {
		return domain.Tender{}, domain.ErrPaymentInvalid
	}
	return domain.NewTender(due, paid)
}

// Collector запрашивает сумму у покупателя, пока она не покроет заказ.
type Collector struct {
	prompter *console.Prompter
	currency string
	metrics  *metrics.CheckoutMetrics
	logger   *log.Entry
}

// NewCollector создаёт сборщик оплаты. metrics может быть nil.
func NewCollector(prompter *console.Prompter, currency string, m *metrics.CheckoutMetrics, logger *log.Entry) *Collector {
	if logger == nil {
		logger = log.New().WithField("component", "payment")
	}
	return &Collector{
		prompter: prompter,
		currency: currency,
		metrics:  m,
		logger:   logger,
	}
}

// Collect повторяет вопрос о сумме без ограничения попыток и сообщает сдачу.
// Ошибку возвращает только при закрытом вводе или отмене контекста.
func (c *Collector) Collect(ctx context.Context, due decimal.Decimal) (domain.Tender, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "payment.collect")
	defer span.End()
	span.SetAttributes(attribute.String("payment.due", due.String()))

	attempts := 0
	tender, err := console.AskUntil(ctx, c.prompter, "Enter payment amount: "+c.currency, func(raw string) (domain.Tender, error) {
		attempts++
		tender, err := Evaluate(raw, due)
		switch {
		case err == nil:
			return tender, nil
		case errors.Is(err, domain.ErrPaymentInvalid):
			c.recordRejection(metrics.RejectReasonInvalid)
			return domain.Tender{}, console.Reject(err, "Invalid input. Please enter a valid amount.")
		case errors.Is(err, domain.ErrPaymentInsufficient):
			c.recordRejection(metrics.RejectReasonInsufficient)
			return domain.Tender{}, console.Reject(err, "Insufficient amount. Please enter at least %s", console.Money(c.currency, due))
		default:
			return domain.Tender{}, err
		}
	})
	span.SetAttributes(attribute.Int("payment.attempts", attempts))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "payment not collected")
		return domain.Tender{}, err
	}

	c.prompter.Println("Payment successful!")
	c.prompter.Println("Your change is: " + console.Money(c.currency, tender.Change))

	if c.metrics != nil {
		c.metrics.RecordPaymentAccepted()
	}
	c.logger.WithFields(log.Fields{
		"due":      due.String(),
		"paid":     tender.Paid.String(),
		"change":   tender.Change.String(),
		"attempts": attempts,
	}).Debug("payment collected")

	return tender, nil
}

func (c *Collector) recordRejection(reason string) {
	if c.metrics != nil {
		c.metrics.RecordPaymentRejected(reason)
	}
}

var _ domain.PaymentCollector = (*Collector)(nil)
