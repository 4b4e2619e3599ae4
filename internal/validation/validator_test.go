package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salescli/internal/types"
)

func tx(id, productID, customerID, region string, quantity int64, unitPrice string) types.Transaction {
	return types.Transaction{
		TransactionID: id,
		Date:          "2024-01-15",
		ProductID:     productID,
		ProductName:   "Widget",
		Quantity:      quantity,
		UnitPrice:     decimal.RequireFromString(unitPrice),
		CustomerID:    customerID,
		Region:        region,
	}
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestRun_StructuralRules(t *testing.T) {
	tests := []struct {
		name  string
		tx    types.Transaction
		valid bool
	}{
		{"valid transaction", tx("T001", "P101", "C001", "North", 2, "99.99"), true},
		{"negative quantity", tx("T001", "P101", "C001", "North", -1, "99.99"), false},
		{"zero quantity", tx("T001", "P101", "C001", "North", 0, "99.99"), false},
		{"zero unit price", tx("T001", "P101", "C001", "North", 2, "0"), false},
		{"negative unit price", tx("T001", "P101", "C001", "North", 2, "-5.00"), false},
		{"empty customer id", tx("T001", "P101", "", "North", 2, "99.99"), false},
		{"empty region", tx("T001", "P101", "C001", "", 2, "99.99"), false},
		{"transaction id without T prefix", tx("X001", "P101", "C001", "North", 2, "99.99"), false},
		{"product id without P prefix", tx("T001", "Q101", "C001", "North", 2, "99.99"), false},
		{"customer id without C prefix", tx("T001", "P101", "K001", "North", 2, "99.99"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, summary := New(types.FilterOptions{}, nil).Run([]types.Transaction{tt.tx})

			if tt.valid {
				assert.Len(t, valid, 1)
				assert.Equal(t, 0, summary.Invalid)
			} else {
				assert.Empty(t, valid)
				assert.Equal(t, 1, summary.Invalid)
			}
		})
	}
}

func TestRun_RegionFilterIsCaseSensitive(t *testing.T) {
	txs := []types.Transaction{
		tx("T001", "P101", "C001", "North", 1, "10.00"),
		tx("T002", "P102", "C002", "north", 1, "10.00"),
		tx("T003", "P103", "C003", "South", 1, "10.00"),
	}

	valid, summary := New(types.FilterOptions{Region: "North"}, nil).Run(txs)

	require.Len(t, valid, 1)
	assert.Equal(t, "T001", valid[0].TransactionID)
	assert.Equal(t, 2, summary.FilteredByRegion)
}

func TestRun_MinAmountOnlyKeepsAtOrAbove(t *testing.T) {
	txs := []types.Transaction{
		tx("T001", "P101", "C001", "North", 1, "499.99"),
		tx("T002", "P102", "C002", "North", 1, "500.00"),
		tx("T003", "P103", "C003", "North", 2, "300.00"),
	}

	valid, summary := New(types.FilterOptions{MinAmount: dec("500")}, nil).Run(txs)

	require.Len(t, valid, 2)
	assert.Equal(t, "T002", valid[0].TransactionID)
	assert.Equal(t, "T003", valid[1].TransactionID)
	assert.Equal(t, 1, summary.FilteredByAmount)
}

func TestRun_AmountBoundsAreInclusive(t *testing.T) {
	txs := []types.Transaction{
		tx("T001", "P101", "C001", "North", 1, "100.00"),
		tx("T002", "P102", "C002", "North", 1, "200.00"),
		tx("T003", "P103", "C003", "North", 1, "200.01"),
	}

	opts := types.FilterOptions{MinAmount: dec("100"), MaxAmount: dec("200")}
	valid, summary := New(opts, nil).Run(txs)

	require.Len(t, valid, 2)
	assert.Equal(t, 1, summary.FilteredByAmount)
}

func TestRun_FilterOrderAndCounters(t *testing.T) {
	txs := []types.Transaction{
		// Invalid: removed before any filter can count it.
		tx("T001", "P101", "C001", "North", -1, "999.99"),
		// Wrong region: removed by the region stage.
		tx("T002", "P102", "C002", "South", 1, "999.99"),
		// Right region, amount too small: removed by the amount stage.
		tx("T003", "P103", "C003", "North", 1, "5.00"),
		// Survives everything.
		tx("T004", "P104", "C004", "North", 1, "999.99"),
	}

	opts := types.FilterOptions{Region: "North", MinAmount: dec("100")}
	valid, summary := New(opts, nil).Run(txs)

	require.Len(t, valid, 1)
	assert.Equal(t, "T004", valid[0].TransactionID)
	assert.Equal(t, 4, summary.TotalInput)
	assert.Equal(t, 1, summary.Invalid)
	assert.Equal(t, 1, summary.FilteredByRegion)
	assert.Equal(t, 1, summary.FilteredByAmount)
	assert.Equal(t, 1, summary.FinalCount)
	assert.Equal(t, summary.TotalInput,
		summary.Invalid+summary.FilteredByRegion+summary.FilteredByAmount+summary.FinalCount)
}

func TestRun_NoFiltersPassesAllValid(t *testing.T) {
	txs := []types.Transaction{
		tx("T001", "P101", "C001", "North", 1, "10.00"),
		tx("T002", "P102", "C002", "South", 1, "20.00"),
	}

	valid, summary := New(types.FilterOptions{}, nil).Run(txs)

	assert.Len(t, valid, 2)
	assert.Equal(t, 0, summary.FilteredByRegion)
	assert.Equal(t, 0, summary.FilteredByAmount)
	assert.Equal(t, 2, summary.FinalCount)
}

func TestRun_EmptyInput(t *testing.T) {
	valid, summary := New(types.FilterOptions{Region: "North"}, nil).Run(nil)

	assert.Empty(t, valid)
	assert.Equal(t, types.FilterSummary{}, summary)
}
