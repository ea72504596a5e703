package memory

import (
	"errors"
	"sync"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// orderHistoryRepositoryInMemory — журнал чеков на время жизни процесса.
type orderHistoryRepositoryInMemory struct {
	mu       sync.RWMutex
	receipts []domain.Receipt
	lastID   int64
}

// NewOrderHistoryRepository возвращает пустой журнал со счётчиком заказов, начинающимся с 1.
func NewOrderHistoryRepository() domain.OrderHistoryRepository {
	return &orderHistoryRepositoryInMemory{}
}

// NextOrderID выдаёт следующий номер заказа. Выданный номер не возвращается даже без чека.
func (r *orderHistoryRepositoryInMemory) NextOrderID() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	return r.lastID
}

// Append проверяет инварианты и сохраняет копию чека.
func (r *orderHistoryRepositoryInMemory) Append(receipt domain.Receipt) error {
	if errs := receipt.ValidateInvariants(); len(errs) > 0 {
		return errors.Join(append([]error{domain.ErrReceiptInvalid}, errs...)...)
	}

	// Сохраняем копию, чтобы вызывающий код не мог поменять историю.
	receipt.Lines = domain.CopyLines(receipt.Lines)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.receipts = append(r.receipts, receipt)
	return nil
}

// List возвращает копии чеков в порядке добавления.
func (r *orderHistoryRepositoryInMemory) List() []domain.Receipt {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Receipt, len(r.receipts))
	for i, receipt := range r.receipts {
		receipt.Lines = domain.CopyLines(receipt.Lines)
		result[i] = receipt
	}
	return result
}

// Count возвращает количество чеков в журнале.
func (r *orderHistoryRepositoryInMemory) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.receipts)
}

var _ domain.OrderHistoryRepository = (*orderHistoryRepositoryInMemory)(nil)
