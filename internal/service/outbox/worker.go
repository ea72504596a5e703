// Package outbox публикует оформленные чеки в фоне: консоль не ждёт брокер.
package outbox

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

const (
	defaultQueueSize      = 64
	defaultMaxAttempts    = 3
	defaultRetryBaseDelay = 100 * time.Millisecond
	defaultRetryMaxDelay  = 5 * time.Second
)

var (
	// ErrQueueFull — очередь публикации переполнена, чек не будет отправлен.
	ErrQueueFull = errors.New("receipt publish queue is full")
	// ErrWorkerClosed — воркер уже остановлен.
	ErrWorkerClosed = errors.New("receipt publish worker is closed")
)

// WorkerOptions задаёт параметры воркера.
type WorkerOptions struct {
	Logger         *log.Entry
	Metrics        *metrics.PublishMetrics
	QueueSize      int
	MaxAttempts    int
	RetryBaseDelay time.Duration
	RetryMaxDelay  time.Duration
}

// Option настраивает Worker.
type Option func(*WorkerOptions)

// WithLogger задаёт logger для воркера.
func WithLogger(logger *log.Entry) Option {
	return func(opts *WorkerOptions) {
		opts.Logger = logger
	}
}

// WithMetrics задаёт метрики публикации.
func WithMetrics(m *metrics.PublishMetrics) Option {
	return func(opts *WorkerOptions) {
		opts.Metrics = m
	}
}

// WithQueueSize задаёт ёмкость очереди.
func WithQueueSize(size int) Option {
	return func(opts *WorkerOptions) {
		opts.QueueSize = size
	}
}

// WithMaxAttempts задаёт число попыток публикации одного чека.
func WithMaxAttempts(maxAttempts int) Option {
	return func(opts *WorkerOptions) {
		opts.MaxAttempts = maxAttempts
	}
}

// WithRetryDelays задаёт базовую и максимальную задержку exponential backoff.
func WithRetryDelays(base, maxDelay time.Duration) Option {
	return func(opts *WorkerOptions) {
		opts.RetryBaseDelay = base
		opts.RetryMaxDelay = maxDelay
	}
}

// Worker принимает чеки в очередь и публикует их через publisher с повторами.
// Worker сам реализует domain.ReceiptPublisher и подставляется в сервис заказов.
type Worker struct {
	publisher      domain.ReceiptPublisher
	logger         *log.Entry
	metrics        *metrics.PublishMetrics
	maxAttempts    int
	retryBaseDelay time.Duration
	retryMaxDelay  time.Duration

	mu     sync.Mutex
	queue  chan domain.Receipt
	closed bool

	startOnce sync.Once
	done      chan struct{}
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewWorker создаёт воркер. Для приёма чеков его нужно запустить через Start.
func NewWorker(publisher domain.ReceiptPublisher, options ...Option) *Worker {
	opts := WorkerOptions{
		QueueSize:      defaultQueueSize,
		MaxAttempts:    defaultMaxAttempts,
		RetryBaseDelay: defaultRetryBaseDelay,
		RetryMaxDelay:  defaultRetryMaxDelay,
	}
	for _, option := range options {
		option(&opts)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.WithField("component", "receipt-outbox")
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	if opts.RetryBaseDelay < 0 {
		opts.RetryBaseDelay = 0
	}
	if opts.RetryMaxDelay < opts.RetryBaseDelay {
		opts.RetryMaxDelay = opts.RetryBaseDelay
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		publisher:      publisher,
		logger:         logger,
		metrics:        opts.Metrics,
		maxAttempts:    opts.MaxAttempts,
		retryBaseDelay: opts.RetryBaseDelay,
		retryMaxDelay:  opts.RetryMaxDelay,
		queue:          make(chan domain.Receipt, opts.QueueSize),
		done:           make(chan struct{}),
		ctx:            ctx,
		cancel:         cancel,
	}
}

// Start запускает фоновую публикацию. Повторный вызов ничего не делает.
func (w *Worker) Start() {
	w.startOnce.Do(func() {
		go w.loop()
	})
}

// PublishReceipt ставит чек в очередь и не ждёт брокер.
func (w *Worker) PublishReceipt(ctx context.Context, receipt domain.Receipt) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrWorkerClosed
	}

	select {
	case w.queue <- receipt:
		w.recordDepth()
		return nil
	default:
		w.record(metrics.PublishResultDropped)
		return ErrQueueFull
	}
}

// Close перестаёт принимать чеки и ждёт, пока очередь опустеет.
// Если ctx истёк раньше, оставшиеся чеки отбрасываются.
func (w *Worker) Close(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.queue)
	w.mu.Unlock()

	w.Start()
	select {
	case <-w.done:
		w.cancel()
		return nil
	case <-ctx.Done():
		w.cancel()
		<-w.done
		return ctx.Err()
	}
}

func (w *Worker) loop() {
	defer close(w.done)
	for receipt := range w.queue {
		w.recordDepth()
		w.publishWithRetry(receipt)
	}
}

func (w *Worker) publishWithRetry(receipt domain.Receipt) {
	logger := w.logger.WithFields(log.Fields{
		"order_id":   receipt.OrderID,
		"receipt_id": receipt.ID,
	})
	delay := w.retryBaseDelay

	for attempt := 1; attempt <= w.maxAttempts; attempt++ {
		if w.ctx.Err() != nil {
			w.record(metrics.PublishResultDropped)
			logger.Warn("receipt dropped: worker stopped")
			return
		}

		err := w.publisher.PublishReceipt(w.ctx, receipt)
		if err == nil {
			w.record(metrics.PublishResultSuccess)
			if attempt > 1 {
				logger.WithField("attempt", attempt).Info("receipt published after retry")
			}
			return
		}

		if attempt == w.maxAttempts {
			w.record(metrics.PublishResultFailed)
			logger.WithError(err).WithField("max_attempts", w.maxAttempts).Error("receipt publish failed after all retry attempts")
			return
		}

		w.record(metrics.PublishResultRetry)
		logger.WithError(err).WithFields(log.Fields{
			"attempt": attempt,
			"delay":   delay,
		}).Warn("receipt publish failed, retrying")

		select {
		case <-w.ctx.Done():
		case <-time.After(delay):
		}

		// Экспоненциальная задержка с ограничением
		delay *= 2
		if delay > w.retryMaxDelay {
			delay = w.retryMaxDelay
		}
	}
}

func (w *Worker) record(result string) {
	if w.metrics != nil {
		w.metrics.RecordAttempt(result)
	}
}

func (w *Worker) recordDepth() {
	if w.metrics != nil {
		w.metrics.SetQueueDepth(len(w.queue))
	}
}

var _ domain.ReceiptPublisher = (*Worker)(nil)
