package memory_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func newProducts() []domain.Product {
	return []domain.Product{
		{ID: 3, Name: "Minute Maid", UnitPrice: decimal.NewFromInt(38)},
		{ID: 1, Name: "Kopiko Lucky Day", UnitPrice: decimal.NewFromInt(24)},
		{ID: 2, Name: "Nescafé Black", UnitPrice: decimal.NewFromInt(57)},
	}
}

func TestCatalogRepository_ListKeepsOrder(t *testing.T) {
	repo, err := memory.NewCatalogRepository(newProducts())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	products := repo.List()
	if len(products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(products))
	}
	for i, wantID := range []int{3, 1, 2} {
		if products[i].ID != wantID {
			t.Fatalf("position %d: expected id %d, got %d", i, wantID, products[i].ID)
		}
	}
}

func TestCatalogRepository_Get(t *testing.T) {
	repo, err := memory.NewCatalogRepository(newProducts())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	p, err := repo.Get(2)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if p.Name != "Nescafé Black" {
		t.Fatalf("unexpected product: %s", p.Name)
	}

	if _, err := repo.Get(42); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCatalogRepository_RejectsDuplicates(t *testing.T) {
	products := append(newProducts(), domain.Product{ID: 1, Name: "Copy", UnitPrice: decimal.NewFromInt(1)})

	if _, err := memory.NewCatalogRepository(products); !errors.Is(err, domain.ErrDuplicateProduct) {
		t.Fatalf("expected ErrDuplicateProduct, got %v", err)
	}
}

func TestCatalogRepository_RejectsInvalidProduct(t *testing.T) {
	products := []domain.Product{{ID: 1, Name: "Broken", UnitPrice: decimal.NewFromInt(-5)}}

	if _, err := memory.NewCatalogRepository(products); !errors.Is(err, domain.ErrProductPriceNegative) {
		t.Fatalf("expected ErrProductPriceNegative, got %v", err)
	}
}
