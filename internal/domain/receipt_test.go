package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// helper для чека из двух позиций: 24*1 + 57*2 = 138.
func makeReceipt(t *testing.T) domain.Receipt {
	t.Helper()
	lines := []domain.CartLine{
		{Product: domain.Product{ID: 1, Name: "Kopiko Lucky Day", UnitPrice: decimal.NewFromInt(24)}, Qty: 1},
		{Product: domain.Product{ID: 2, Name: "Nescafé Black", UnitPrice: decimal.NewFromInt(57)}, Qty: 2},
	}
	tender, err := domain.NewTender(domain.LinesTotal(lines), decimal.NewFromInt(150))
	if err != nil {
		t.Fatalf("tender: %v", err)
	}
	return domain.NewReceipt(1, lines, tender, time.Now().UTC())
}

func TestNewReceipt_Totals(t *testing.T) {
	receipt := makeReceipt(t)

	if !receipt.Total.Equal(decimal.NewFromInt(138)) {
		t.Fatalf("expected total 138, got %s", receipt.Total)
	}
	if !receipt.Change.Equal(decimal.NewFromInt(12)) {
		t.Fatalf("expected change 12, got %s", receipt.Change)
	}
	if receipt.ID == "" {
		t.Fatal("expected receipt id to be generated")
	}
	if errs := receipt.ValidateInvariants(); len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %v", errs)
	}
}

func TestNewReceipt_CopiesLines(t *testing.T) {
	lines := []domain.CartLine{
		{Product: domain.Product{ID: 1, Name: "C2 Apple", UnitPrice: decimal.NewFromInt(32)}, Qty: 1},
	}
	tender, err := domain.NewTender(domain.LinesTotal(lines), decimal.NewFromInt(32))
	if err != nil {
		t.Fatalf("tender: %v", err)
	}
	receipt := domain.NewReceipt(3, lines, tender, time.Now())

	// Меняем исходные строки: чек не должен это заметить.
	lines[0].Qty = 10
	lines[0].Product.UnitPrice = decimal.NewFromInt(1000)

	if receipt.Lines[0].Qty != 1 {
		t.Fatalf("receipt line qty changed to %d", receipt.Lines[0].Qty)
	}
	if !receipt.RecomputedTotal().Equal(decimal.NewFromInt(32)) {
		t.Fatalf("receipt total drifted to %s", receipt.RecomputedTotal())
	}
}

func TestReceiptValidateInvariants_Errors(t *testing.T) {
	cases := []struct {
		name string
		mut  func(r *domain.Receipt)
	}{
		{
			name: "no order id",
			mut: func(r *domain.Receipt) {
				r.OrderID = 0
			},
		},
		{
			name: "no lines",
			mut: func(r *domain.Receipt) {
				r.Lines = nil
			},
		},
		{
			name: "qty invalid",
			mut: func(r *domain.Receipt) {
				r.Lines[0].Qty = 0
			},
		},
		{
			name: "duplicate line",
			mut: func(r *domain.Receipt) {
				r.Lines[1].Product.ID = r.Lines[0].Product.ID
			},
		},
		{
			name: "amount mismatch",
			mut: func(r *domain.Receipt) {
				r.Total = decimal.NewFromInt(999)
			},
		},
		{
			name: "change mismatch",
			mut: func(r *domain.Receipt) {
				r.Change = decimal.NewFromInt(1)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			receipt := makeReceipt(t)
			tc.mut(&receipt)

			if len(receipt.ValidateInvariants()) == 0 {
				t.Fatalf("expected validation errors for case %s", tc.name)
			}
		})
	}
}
