package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// Причины отказа в приёме оплаты (значения label reason).
const (
	RejectReasonInvalid      = "invalid"
	RejectReasonInsufficient = "insufficient"
)

// CheckoutMetrics содержит метрики корзины, оформления и оплаты.
type CheckoutMetrics struct {
	// Корзина
	cartItemsAdded    prometheus.Counter
	checkoutsDeclined prometheus.Counter
	checkoutsStarted  prometheus.Counter

	// Оплата
	paymentsAccepted  prometheus.Counter
	paymentRejections *prometheus.CounterVec

	// Заказы
	ordersRecorded prometheus.Counter
	orderAmount    prometheus.Histogram
	orderLines     prometheus.Histogram
	historySize    prometheus.Gauge
}

// NewCheckoutMetrics регистрирует метрики в переданном registerer (nil — DefaultRegisterer).
func NewCheckoutMetrics(registerer prometheus.Registerer) *CheckoutMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &CheckoutMetrics{
		cartItemsAdded: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_cart_items_added_total",
			Help: "Total number of product units added to the cart",
		}),
		checkoutsDeclined: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_checkouts_declined_total",
			Help: "Total number of checkout prompts answered with no",
		}),
		checkoutsStarted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_checkouts_started_total",
			Help: "Total number of confirmed checkouts",
		}),
		paymentsAccepted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_payments_accepted_total",
			Help: "Total number of accepted payments",
		}),
		paymentRejections: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "storefront_payment_rejections_total",
			Help: "Total number of rejected payment inputs by reason",
		}, []string{"reason"}),
		ordersRecorded: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_orders_recorded_total",
			Help: "Total number of orders appended to the history",
		}),
		orderAmount: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "storefront_order_amount",
			Help:    "Order totals in store currency",
			Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500},
		}),
		orderLines: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "storefront_order_lines",
			Help:    "Number of distinct products per order",
			Buckets: []float64{1, 2, 3, 5, 8, 13},
		}),
		historySize: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "storefront_order_history_size",
			Help: "Number of receipts kept in the order history",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

// RecordItemAdded увеличивает счётчик добавленных в корзину единиц.
func (m *CheckoutMetrics) RecordItemAdded() {
	m.cartItemsAdded.Inc()
}

// RecordCheckoutDeclined фиксирует отказ от оформления.
func (m *CheckoutMetrics) RecordCheckoutDeclined() {
	m.checkoutsDeclined.Inc()
}

// RecordCheckoutStarted фиксирует подтверждённое оформление.
func (m *CheckoutMetrics) RecordCheckoutStarted() {
	m.checkoutsStarted.Inc()
}

// RecordPaymentAccepted увеличивает счётчик принятых оплат.
func (m *CheckoutMetrics) RecordPaymentAccepted() {
	m.paymentsAccepted.Inc()
}

// RecordPaymentRejected фиксирует отклонённый ввод суммы.
func (m *CheckoutMetrics) RecordPaymentRejected(reason string) {
	m.paymentRejections.WithLabelValues(reason).Inc()
}

// RecordOrder записывает сумму и размер заказа, попавшего в историю.
func (m *CheckoutMetrics) RecordOrder(total decimal.Decimal, lines int, historySize int) {
	m.ordersRecorded.Inc()
	m.orderAmount.Observe(total.InexactFloat64())
	m.orderLines.Observe(float64(lines))
	m.historySize.Set(float64(historySize))
}
