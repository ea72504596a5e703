package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/health"
	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
	"github.com/vladislavdragonenkov/storefront/internal/service/outbox"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
	"github.com/vladislavdragonenkov/storefront/internal/tracing"
	"github.com/vladislavdragonenkov/storefront/internal/version"
)

const serviceName = "storefront"

// Dependencies содержит все зависимости приложения.
type Dependencies struct {
	Config    Config
	Catalog   domain.CatalogRepository
	History   domain.OrderHistoryRepository
	Registry  *prometheus.Registry
	Metrics   *metrics.CheckoutMetrics
	Publisher *kafka.Producer
	Outbox    *outbox.Worker
	Health    *health.Handler
	Logger    *log.Entry

	shutdownTracing tracing.ShutdownFunc
}

// NewDependencies создаёт и инициализирует все зависимости приложения.
// Kafka необязательна: при ошибке подключения магазин работает без публикации чеков.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	products, err := cfg.Products()
	if err != nil {
		return nil, err
	}
	catalog, err := memory.NewCatalogRepository(products)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	history := memory.NewOrderHistoryRepository()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing.Tracing(), serviceName, version.GetVersion(), logger.WithField("component", "tracing"))
	if err != nil {
		return nil, err
	}

	healthHandler := health.NewHandler(version.GetVersion())
	healthHandler.RegisterChecker("catalog", health.NewCatalogChecker(catalog))
	healthHandler.RegisterChecker("order_history", health.NewHistoryChecker(history))

	publisher, err := initKafkaProducer(cfg.Kafka, cfg.Currency, logger)
	if err != nil {
		logger.WithError(err).Warn("continuing without kafka")
	}

	var worker *outbox.Worker
	if publisher != nil {
		worker = outbox.NewWorker(publisher,
			outbox.WithLogger(logger.WithField("component", "receipt-outbox")),
			outbox.WithMetrics(metrics.NewPublishMetrics(registry)),
		)
		worker.Start()
	}

	return &Dependencies{
		Config:          cfg,
		Catalog:         catalog,
		History:         history,
		Registry:        registry,
		Metrics:         metrics.NewCheckoutMetrics(registry),
		Publisher:       publisher,
		Outbox:          worker,
		Health:          healthHandler,
		Logger:          logger,
		shutdownTracing: shutdownTracing,
	}, nil
}

// ReceiptPublisher возвращает фоновый публикатор чеков или nil, если Kafka не настроена.
func (d *Dependencies) ReceiptPublisher() domain.ReceiptPublisher {
	if d.Outbox == nil {
		return nil
	}
	return d.Outbox
}

// Close дожидается отправки очереди чеков, закрывает Kafka producer и сбрасывает трассировки.
func (d *Dependencies) Close(ctx context.Context) error {
	var errs []error
	if d.Outbox != nil {
		if err := d.Outbox.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("drain receipt outbox: %w", err))
		}
		d.Outbox = nil
	}
	if err := closeKafka(d.Publisher, d.Logger); err != nil {
		errs = append(errs, err)
	}
	d.Publisher = nil
	if d.shutdownTracing != nil {
		if err := d.shutdownTracing(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown tracing: %w", err))
		}
		d.shutdownTracing = nil
	}
	return errors.Join(errs...)
}
