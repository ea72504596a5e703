package app

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/health"
	"github.com/vladislavdragonenkov/storefront/internal/version"
)

const opsRequestTimeout = 10 * time.Second

type lineView struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Qty       int    `json:"qty"`
	Subtotal  string `json:"subtotal"`
}

type orderView struct {
	Number    int        `json:"number"`
	OrderID   int64      `json:"order_id"`
	ReceiptID string     `json:"receipt_id"`
	Lines     []lineView `json:"lines"`
	Total     string     `json:"total"`
	Tendered  string     `json:"tendered"`
	Change    string     `json:"change"`
	CreatedAt time.Time  `json:"created_at"`
}

func newOrderView(number int, receipt domain.Receipt) orderView {
	lines := make([]lineView, 0, len(receipt.Lines))
	for _, line := range receipt.Lines {
		lines = append(lines, lineView{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			UnitPrice: line.Product.UnitPrice.StringFixed(2),
			Qty:       line.Qty,
			Subtotal:  line.Subtotal().StringFixed(2),
		})
	}
	return orderView{
		Number:    number,
		OrderID:   receipt.OrderID,
		ReceiptID: receipt.ID,
		Lines:     lines,
		Total:     receipt.Total.StringFixed(2),
		Tendered:  receipt.Tendered.StringFixed(2),
		Change:    receipt.Change.StringFixed(2),
		CreatedAt: receipt.CreatedAt,
	}
}

// newOpsRouter собирает служебные маршруты: метрики, проверки и чтение истории заказов.
func newOpsRouter(deps *Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(deps.Logger.WithField("component", "ops-http")))
	r.Use(middleware.Timeout(opsRequestTimeout))

	r.Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	r.Handle("/healthz", deps.Health)
	r.Get("/livez", health.LivenessHandler)
	r.Get("/readyz", deps.Health.ReadinessHandler)
	r.Get("/version", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, version.Get())
	})

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			receipts := deps.History.List()
			views := make([]orderView, 0, len(receipts))
			for i, receipt := range receipts {
				views = append(views, newOrderView(i+1, receipt))
			}
			writeJSON(w, http.StatusOK, views)
		})
		r.Get("/{order_id}", func(w http.ResponseWriter, r *http.Request) {
			orderID, err := strconv.ParseInt(chi.URLParam(r, "order_id"), 10, 64)
			if err != nil || orderID <= 0 {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order id"})
				return
			}
			for i, receipt := range deps.History.List() {
				if receipt.OrderID == orderID {
					writeJSON(w, http.StatusOK, newOrderView(i+1, receipt))
					return
				}
			}
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// requestLogger пишет запросы в logrus на уровне debug.
func requestLogger(logger *log.Entry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.WithFields(log.Fields{
				"request_id": middleware.GetReqID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"bytes":      ww.BytesWritten(),
				"duration":   time.Since(start).String(),
			}).Debug("ops request")
		})
	}
}

// startOpsServer слушает addr и обслуживает handler до отмены ctx.
// Ошибка возвращается, только если адрес занять не удалось.
func startOpsServer(ctx context.Context, addr string, handler http.Handler, logger *log.Entry) (*http.Server, net.Addr, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, err
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Infof("ops server: %s/metrics, /healthz, /livez, /readyz, /orders", lis.Addr())
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("ops server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv, lis.Addr(), nil
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("ops server shutdown with error")
	}
}
