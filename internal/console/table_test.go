package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "₱138.00", Money("₱", decimal.NewFromInt(138)))
	assert.Equal(t, "$0.50", Money("$", decimal.RequireFromString(".5")))
}

func TestRenderLines(t *testing.T) {
	var out bytes.Buffer
	RenderLines(&out, "₱", []domain.CartLine{
		{Product: domain.Product{ID: 2, Name: "Nescafé Black", UnitPrice: decimal.NewFromInt(57)}, Qty: 2},
	})

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 5)
	assert.Equal(t, "   2 |    Nescafé Black | ₱ 57.00 |   2", lines[3])
}

func TestRenderCatalog(t *testing.T) {
	var out bytes.Buffer
	RenderCatalog(&out, "₱", []domain.Product{
		{ID: 1, Name: "Kopiko Lucky Day", UnitPrice: decimal.NewFromInt(24)},
	})

	assert.Contains(t, out.String(), "Available Products:")
	assert.Contains(t, out.String(), "   1 | Kopiko Lucky Day | ₱24.00")
}

func TestBanner(t *testing.T) {
	assert.Equal(t, "\n --- SARI-SARI STORE --- ", Banner("Sari-Sari Store"))
}
