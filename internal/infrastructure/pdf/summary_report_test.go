package pdf

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bar-stock-api/internal/application/dto"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "0,00 €", money(decimal.Zero))
	assert.Equal(t, "1.234,50 €", money(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "-1.000.000,01 €", money(decimal.RequireFromString("-1000000.01")))
}

func TestRenderSummary_GeneraPDF(t *testing.T) {
	s := dto.FinancialSummaryDTO{
		TotalRevenue: decimal.RequireFromString("8.00"),
		ActualProfit: decimal.RequireFromString("-1.50"),
		GeneratedAt:  time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
	}
	out, err := NewSummaryReport("bar-stock").RenderSummary(s)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}
