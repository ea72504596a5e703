// Package health отдаёт состояние магазина для ops-сервера: каталог, журнал заказов, сессия.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// Status представляет статус компонента
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
)

// ErrEmptyCatalog возвращается, если в каталоге нет ни одного товара.
var ErrEmptyCatalog = errors.New("catalog is empty")

// Check представляет проверку здоровья компонента
type Check struct {
	Name       string `json:"name"`
	Status     Status `json:"status"`
	Message    string `json:"message,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// Response представляет ответ health check
type Response struct {
	Status        Status           `json:"status"`
	Timestamp     time.Time        `json:"timestamp"`
	Checks        map[string]Check `json:"checks,omitempty"`
	Version       string           `json:"version,omitempty"`
	SessionActive bool             `json:"session_active"`
	UptimeSeconds int64            `json:"uptime_seconds"`
}

// Checker интерфейс для проверки здоровья компонента
type Checker interface {
	Check(ctx context.Context) Check
}

// Handler обрабатывает health check запросы
type Handler struct {
	mu        sync.RWMutex
	checkers  map[string]Checker
	version   string
	startTime time.Time
	active    atomic.Bool
}

// NewHandler создаёт новый health handler
func NewHandler(version string) *Handler {
	return &Handler{
		checkers:  make(map[string]Checker),
		version:   version,
		startTime: time.Now(),
	}
}

// RegisterChecker регистрирует проверку компонента
func (h *Handler) RegisterChecker(name string, checker Checker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers[name] = checker
}

// SetSessionActive отмечает, идёт ли сейчас консольная сессия. Без сессии сервис не готов.
func (h *Handler) SetSessionActive(active bool) {
	h.active.Store(active)
}

// run выполняет проверки в порядке имён и сводит общий статус.
func (h *Handler) run(ctx context.Context) (map[string]Check, Status) {
	h.mu.RLock()
	names := make([]string, 0, len(h.checkers))
	checkers := make(map[string]Checker, len(h.checkers))
	for k, v := range h.checkers {
		names = append(names, k)
		checkers[k] = v
	}
	h.mu.RUnlock()
	sort.Strings(names)

	checks := make(map[string]Check, len(names))
	overall := StatusHealthy
	for _, name := range names {
		check := checkers[name].Check(ctx)
		checks[name] = check

		switch {
		case check.Status == StatusUnhealthy:
			overall = StatusUnhealthy
		case check.Status == StatusDegraded && overall == StatusHealthy:
			overall = StatusDegraded
		}
	}
	return checks, overall
}

// ServeHTTP обрабатывает HTTP запрос
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checks, overall := h.run(r.Context())

	response := Response{
		Status:        overall,
		Timestamp:     time.Now().UTC(),
		Checks:        checks,
		Version:       h.version,
		SessionActive: h.active.Load(),
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
	}

	statusCode := http.StatusOK
	if overall == StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(response)
}

// LivenessHandler простой liveness probe (всегда возвращает 200)
func LivenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// ReadinessHandler: готов, если сессия идёт и ни одна проверка не провалена.
func (h *Handler) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	if !h.active.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("session not active"))
		return
	}

	if _, overall := h.run(r.Context()); overall == StatusUnhealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not ready"))
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// SimpleChecker простая проверка с функцией
type SimpleChecker struct {
	name    string
	checkFn func(ctx context.Context) error
}

// NewSimpleChecker создаёт простую проверку
func NewSimpleChecker(name string, checkFn func(ctx context.Context) error) *SimpleChecker {
	return &SimpleChecker{
		name:    name,
		checkFn: checkFn,
	}
}

// Check выполняет проверку
func (c *SimpleChecker) Check(ctx context.Context) Check {
	start := time.Now()
	err := c.checkFn(ctx)
	duration := time.Since(start)

	if err != nil {
		return Check{
			Name:       c.name,
			Status:     StatusUnhealthy,
			Message:    err.Error(),
			DurationMs: duration.Milliseconds(),
		}
	}

	return Check{
		Name:       c.name,
		Status:     StatusHealthy,
		DurationMs: duration.Milliseconds(),
	}
}

// NewCatalogChecker: каталог без товаров делает магазин бесполезным.
func NewCatalogChecker(catalog domain.CatalogRepository) *SimpleChecker {
	return NewSimpleChecker("catalog", func(context.Context) error {
		if len(catalog.List()) == 0 {
			return ErrEmptyCatalog
		}
		return nil
	})
}

// HistoryChecker сверяет сохранённые чеки с их строками.
// Расхождение суммы не мешает работе, поэтому статус — degraded.
type HistoryChecker struct {
	history domain.OrderHistoryRepository
}

// NewHistoryChecker создаёт проверку журнала заказов.
func NewHistoryChecker(history domain.OrderHistoryRepository) *HistoryChecker {
	return &HistoryChecker{history: history}
}

// Check пересчитывает суммы всех чеков.
func (c *HistoryChecker) Check(ctx context.Context) Check {
	start := time.Now()
	check := Check{Name: "order_history", Status: StatusHealthy}

	receipts := c.history.List()
	broken := 0
	for _, receipt := range receipts {
		if ctx.Err() != nil {
			check.Status = StatusDegraded
			check.Message = "check interrupted"
			break
		}
		if len(receipt.ValidateInvariants()) > 0 {
			broken++
		}
	}
	if broken > 0 {
		check.Status = StatusDegraded
		check.Message = fmt.Sprintf("%d of %d receipts violate invariants", broken, len(receipts))
	}

	check.DurationMs = time.Since(start).Milliseconds()
	return check
}
