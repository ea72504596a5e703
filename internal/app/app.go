// Package app собирает магазин из конфигурации: репозитории, сервисы, ops-сервер и консольную сессию.
package app

import (
	"context"
	"io"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/console"
	"github.com/vladislavdragonenkov/storefront/internal/service/cart"
	"github.com/vladislavdragonenkov/storefront/internal/service/order"
	"github.com/vladislavdragonenkov/storefront/internal/service/payment"
	"github.com/vladislavdragonenkov/storefront/internal/service/session"
)

const closeTimeout = 5 * time.Second

// Run запускает одну консольную сессию на in/out. Возвращается после выхода из меню,
// закрытия ввода или отмены ctx.
func Run(ctx context.Context, cfg Config, in io.Reader, out io.Writer, logger *log.Entry) error {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	deps, err := NewDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		if err := deps.Close(closeCtx); err != nil {
			logger.WithError(err).Warn("failed to release dependencies")
		}
	}()

	opsCtx, stopOps := context.WithCancel(ctx)
	defer stopOps()
	if cfg.Ops.Addr != "" {
		if _, _, err := startOpsServer(opsCtx, cfg.Ops.Addr, newOpsRouter(deps), logger.WithField("component", "ops")); err != nil {
			return err
		}
	}

	sess := newSession(deps, in, out)
	deps.Health.SetSessionActive(true)
	defer deps.Health.SetSessionActive(false)

	return sess.Run(ctx)
}

// newSession связывает сервисы одной сессии поверх общих зависимостей.
func newSession(deps *Dependencies, in io.Reader, out io.Writer) *session.Session {
	cfg := deps.Config
	logger := deps.Logger
	prompter := console.NewPrompter(in, out)

	collector := payment.NewCollector(prompter, cfg.Currency, deps.Metrics, logger.WithField("component", "payment"))

	opts := []order.Option{order.WithMetrics(deps.Metrics)}
	if publisher := deps.ReceiptPublisher(); publisher != nil {
		opts = append(opts, order.WithPublisher(publisher))
	}
	orders := order.NewService(deps.History, collector, prompter.Out(), cfg.Currency, logger.WithField("component", "order"), opts...)

	shoppingCart := cart.New(prompter, orders, cfg.Currency, deps.Metrics, logger.WithField("component", "cart"))

	return session.New(cfg.StoreName, cfg.Currency, prompter, deps.Catalog, shoppingCart, orders, logger.WithField("component", "session"))
}
