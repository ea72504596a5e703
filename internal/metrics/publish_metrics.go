package metrics

import "github.com/prometheus/client_golang/prometheus"

// Результаты публикации чека (значения label result).
const (
	PublishResultSuccess = "success"
	PublishResultRetry   = "retry"
	PublishResultFailed  = "failed"
	PublishResultDropped = "dropped"
)

// PublishMetrics — метрики фоновой публикации чеков во внешний брокер.
type PublishMetrics struct {
	attempts   *prometheus.CounterVec
	queueDepth prometheus.Gauge
}

// NewPublishMetrics регистрирует метрики в переданном registerer (nil — DefaultRegisterer).
func NewPublishMetrics(registerer prometheus.Registerer) *PublishMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &PublishMetrics{
		attempts: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "storefront_receipt_publish_attempts_total",
			Help: "Total number of receipt publish attempts grouped by result",
		}, []string{"result"}),
		queueDepth: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "storefront_receipt_publish_queue_depth",
			Help: "Number of receipts waiting to be published",
		}),
	}
}

// RecordAttempt учитывает попытку публикации с результатом result.
func (m *PublishMetrics) RecordAttempt(result string) {
	m.attempts.WithLabelValues(result).Inc()
}

// SetQueueDepth обновляет длину очереди публикации.
func (m *PublishMetrics) SetQueueDepth(depth int) {
	m.queueDepth.Set(float64(depth))
}
