package memory

import (
	"fmt"
	"sync"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// catalogRepositoryInMemory — каталог товаров, заданный при старте процесса.
type catalogRepositoryInMemory struct {
	mu    sync.RWMutex
	order []int
	items map[int]domain.Product
}

// NewCatalogRepository проверяет товары и возвращает каталог в переданном порядке.
func NewCatalogRepository(products []domain.Product) (domain.CatalogRepository, error) {
	repo := &catalogRepositoryInMemory{
		order: make([]int, 0, len(products)),
		items: make(map[int]domain.Product, len(products)),
	}
	for _, p := range products {
		if errs := p.Validate(); len(errs) > 0 {
			return nil, fmt.Errorf("product %d: %w", p.ID, errs[0])
		}
		if _, exists := repo.items[p.ID]; exists {
			return nil, fmt.Errorf("product %d: %w", p.ID, domain.ErrDuplicateProduct)
		}
		repo.items[p.ID] = p
		repo.order = append(repo.order, p.ID)
	}
	return repo, nil
}

// List возвращает товары в порядке каталога.
func (r *catalogRepositoryInMemory) List() []domain.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.items[id])
	}
	return result
}

// Get возвращает товар или ErrProductNotFound, если его нет.
func (r *catalogRepositoryInMemory) Get(id int) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

var _ domain.CatalogRepository = (*catalogRepositoryInMemory)(nil)
