package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salescli/internal/types"
)

func tx(id, date, product, customer, region string, quantity int64, unitPrice string) types.Transaction {
	return types.Transaction{
		TransactionID: id,
		Date:          date,
		ProductID:     "P" + id[1:],
		ProductName:   product,
		Quantity:      quantity,
		UnitPrice:     decimal.RequireFromString(unitPrice),
		CustomerID:    customer,
		Region:        region,
	}
}

func sampleSet() []types.Transaction {
	return []types.Transaction{
		tx("T001", "2024-01-01", "Laptop", "C001", "North", 2, "1000.00"),
		tx("T002", "2024-01-01", "Mouse", "C002", "South", 10, "25.00"),
		tx("T003", "2024-01-02", "Laptop", "C001", "North", 1, "1000.00"),
		tx("T004", "2024-01-02", "Keyboard", "C003", "East", 4, "75.00"),
		tx("T005", "2024-01-03", "Mouse", "C002", "South", 5, "25.00"),
	}
}

func TestTotalRevenue(t *testing.T) {
	total := TotalRevenue(sampleSet())

	// 2000 + 250 + 1000 + 300 + 125
	assert.Equal(t, "3675", total.String())
}

func TestTotalRevenue_Empty(t *testing.T) {
	assert.True(t, TotalRevenue(nil).IsZero())
}

func TestTotalRevenue_BankersRounding(t *testing.T) {
	tests := []struct {
		name  string
		price string
		want  string
	}{
		{"half rounds to even down", "0.125", "0.12"},
		{"half rounds to even up", "0.135", "0.14"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txs := []types.Transaction{tx("T001", "2024-01-01", "Pin", "C001", "North", 1, tt.price)}
			assert.Equal(t, tt.want, TotalRevenue(txs).String())
		})
	}
}

func TestRegionWiseSales(t *testing.T) {
	stats := RegionWiseSales(sampleSet())

	require.Len(t, stats, 3)
	assert.Equal(t, "North", stats[0].Region)
	assert.Equal(t, "3000", stats[0].TotalSales.String())
	assert.Equal(t, 2, stats[0].TransactionCount)
	assert.Equal(t, "South", stats[1].Region)
	assert.Equal(t, "375", stats[1].TotalSales.String())
	assert.Equal(t, "East", stats[2].Region)

	// Region totals partition the grand total.
	sum := decimal.Zero
	count := 0
	pct := decimal.Zero
	for _, s := range stats {
		sum = sum.Add(s.TotalSales)
		count += s.TransactionCount
		pct = pct.Add(s.Percentage)
	}
	assert.Equal(t, TotalRevenue(sampleSet()).String(), sum.String())
	assert.Equal(t, len(sampleSet()), count)
	diff := pct.Sub(decimal.NewFromInt(100)).Abs()
	assert.True(t, diff.LessThanOrEqual(decimal.RequireFromString("0.05")),
		"percentages should sum to ~100, got %s", pct)
}

func TestRegionWiseSales_ZeroRevenue(t *testing.T) {
	assert.Empty(t, RegionWiseSales(nil))
}

func TestTopSellingProducts(t *testing.T) {
	stats := TopSellingProducts(sampleSet(), 5)

	require.Len(t, stats, 3)
	assert.Equal(t, "Mouse", stats[0].Name)
	assert.Equal(t, int64(15), stats[0].Quantity)
	assert.Equal(t, "Keyboard", stats[1].Name)
	assert.Equal(t, "Laptop", stats[2].Name)
	assert.Equal(t, "3000", stats[2].Revenue.String())
}

func TestTopSellingProducts_LimitApplied(t *testing.T) {
	stats := TopSellingProducts(sampleSet(), 2)
	require.Len(t, stats, 2)
	assert.Equal(t, "Mouse", stats[0].Name)
}

func TestTopSellingProducts_TieKeepsFirstEncounterOrder(t *testing.T) {
	txs := []types.Transaction{
		tx("T001", "2024-01-01", "Alpha", "C001", "North", 5, "10.00"),
		tx("T002", "2024-01-01", "Beta", "C001", "North", 5, "10.00"),
		tx("T003", "2024-01-01", "Gamma", "C001", "North", 9, "10.00"),
	}

	stats := TopSellingProducts(txs, 5)

	require.Len(t, stats, 3)
	assert.Equal(t, "Gamma", stats[0].Name)
	assert.Equal(t, "Alpha", stats[1].Name)
	assert.Equal(t, "Beta", stats[2].Name)
}

func TestLowPerformingProducts(t *testing.T) {
	low := LowPerformingProducts(sampleSet(), 10)

	// Laptop (3) and Keyboard (4) are below 10; Mouse (15) is not.
	require.Len(t, low, 2)
	assert.Equal(t, "Laptop", low[0].Name)
	assert.Equal(t, "Keyboard", low[1].Name)
}

func TestTopAndLowPartitionAtThreshold(t *testing.T) {
	all := TopSellingProducts(sampleSet(), len(sampleSet()))
	low := LowPerformingProducts(sampleSet(), 10)

	lowNames := make(map[string]bool)
	for _, p := range low {
		lowNames[p.Name] = true
	}
	for _, p := range all {
		assert.Equal(t, p.Quantity < 10, lowNames[p.Name],
			"product %q (qty %d) on the wrong side of the threshold", p.Name, p.Quantity)
	}
}

func TestCustomerAnalysis(t *testing.T) {
	stats := CustomerAnalysis(sampleSet())

	require.Len(t, stats, 3)
	top := stats[0]
	assert.Equal(t, "C001", top.CustomerID)
	assert.Equal(t, "3000", top.TotalSpent.String())
	assert.Equal(t, 2, top.PurchaseCount)
	assert.Equal(t, "1500", top.AvgOrderValue.String())
	assert.Equal(t, []string{"Laptop"}, top.Products)

	assert.Equal(t, "C002", stats[1].CustomerID)
	assert.Equal(t, "187.5", stats[1].AvgOrderValue.String())
}

func TestCustomerAnalysis_ProductsSortedDistinct(t *testing.T) {
	txs := []types.Transaction{
		tx("T001", "2024-01-01", "Zebra", "C001", "North", 1, "10.00"),
		tx("T002", "2024-01-01", "Apple", "C001", "North", 1, "10.00"),
		tx("T003", "2024-01-01", "Zebra", "C001", "North", 1, "10.00"),
	}

	stats := CustomerAnalysis(txs)

	require.Len(t, stats, 1)
	assert.Equal(t, []string{"Apple", "Zebra"}, stats[0].Products)
}

func TestDailySalesTrend(t *testing.T) {
	// Input deliberately out of date order.
	txs := []types.Transaction{
		tx("T001", "2024-01-03", "Mouse", "C002", "South", 5, "25.00"),
		tx("T002", "2024-01-01", "Laptop", "C001", "North", 2, "1000.00"),
		tx("T003", "2024-01-01", "Mouse", "C002", "South", 10, "25.00"),
		tx("T004", "2024-01-02", "Laptop", "C001", "North", 1, "1000.00"),
	}

	trend := DailySalesTrend(txs)

	require.Len(t, trend, 3)
	assert.Equal(t, "2024-01-01", trend[0].Date)
	assert.Equal(t, "2250", trend[0].Revenue.String())
	assert.Equal(t, 2, trend[0].TransactionCount)
	assert.Equal(t, 2, trend[0].UniqueCustomers)
	assert.Equal(t, "2024-01-02", trend[1].Date)
	assert.Equal(t, "2024-01-03", trend[2].Date)
}

func TestFindPeakSalesDay(t *testing.T) {
	txs := []types.Transaction{
		tx("T001", "2024-01-01", "Mouse", "C001", "North", 1, "100.00"),
		tx("T002", "2024-01-02", "Laptop", "C002", "North", 1, "300.00"),
	}

	peak, ok := FindPeakSalesDay(txs)

	require.True(t, ok)
	assert.Equal(t, "2024-01-02", peak.Date)
	assert.Equal(t, "300", peak.Revenue.String())
	assert.Equal(t, 1, peak.TransactionCount)
}

func TestFindPeakSalesDay_TieGoesToFirstEncountered(t *testing.T) {
	txs := []types.Transaction{
		tx("T001", "2024-01-05", "Mouse", "C001", "North", 1, "200.00"),
		tx("T002", "2024-01-02", "Laptop", "C002", "North", 1, "200.00"),
	}

	peak, ok := FindPeakSalesDay(txs)

	require.True(t, ok)
	assert.Equal(t, "2024-01-05", peak.Date)
}

func TestFindPeakSalesDay_Empty(t *testing.T) {
	_, ok := FindPeakSalesDay(nil)
	assert.False(t, ok)
}

func TestAggregationIsIdempotent(t *testing.T) {
	txs := sampleSet()

	first := RegionWiseSales(txs)
	second := RegionWiseSales(txs)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Region, second[i].Region)
		assert.Equal(t, first[i].TotalSales.String(), second[i].TotalSales.String())
		assert.Equal(t, first[i].Percentage.String(), second[i].Percentage.String())
	}

	assert.Equal(t, TotalRevenue(txs).String(), TotalRevenue(txs).String())
}
