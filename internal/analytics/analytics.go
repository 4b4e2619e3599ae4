// =============================================================================
// Sales Analytics CLI - Aggregation Engine
// =============================================================================
//
// Pure aggregation functions over a validated transaction set. Every function
// here is side-effect free: same input slice, same output, every time.
//
// DETERMINISM:
//   Grouping uses an insertion-ordered index (key slice + map) rather than a
//   bare map, so iteration order matches first-encounter order in the input.
//   Sorting uses slices.SortStableFunc, so records that compare equal keep
//   that first-encounter order. Together these make every tie-break
//   reproducible across runs.
//
// ROUNDING:
//   All monetary outputs are rounded to 2 decimal places with banker's
//   rounding (decimal.RoundBank) at the point of return. Intermediate sums
//   are kept at full precision.
//
// =============================================================================

package analytics

import (
	"slices"
	"sort"

	"github.com/shopspring/decimal"

	"salescli/internal/types"
)

// =============================================================================
// RESULT TYPES
// =============================================================================

// RegionStat is the aggregate for a single region.
type RegionStat struct {
	Region           string
	TotalSales       decimal.Decimal
	TransactionCount int
	// Percentage is this region's share of total revenue (0 when total
	// revenue is zero).
	Percentage decimal.Decimal
}

// ProductStat is the aggregate for a single product name.
type ProductStat struct {
	Name     string
	Quantity int64
	Revenue  decimal.Decimal
}

// CustomerStat is the aggregate for a single customer.
type CustomerStat struct {
	CustomerID    string
	TotalSpent    decimal.Decimal
	PurchaseCount int
	AvgOrderValue decimal.Decimal
	// Products holds the sorted distinct product names this customer bought.
	Products []string
}

// DailyStat is the aggregate for a single calendar day.
type DailyStat struct {
	Date             string
	Revenue          decimal.Decimal
	TransactionCount int
	UniqueCustomers  int
}

// PeakDay is the day with the highest revenue.
type PeakDay struct {
	Date             string
	Revenue          decimal.Decimal
	TransactionCount int
}

// =============================================================================
// INSERTION-ORDERED GROUPING
// =============================================================================

// grouping accumulates per-key aggregates while remembering the order keys
// were first seen, so downstream sorts can break ties deterministically.
type grouping[T any] struct {
	keys  []string
	index map[string]*T
}

func newGrouping[T any]() *grouping[T] {
	return &grouping[T]{index: make(map[string]*T)}
}

// at returns the accumulator for key, registering the key on first use.
func (g *grouping[T]) at(key string) *T {
	if v, ok := g.index[key]; ok {
		return v
	}
	v := new(T)
	g.keys = append(g.keys, key)
	g.index[key] = v
	return v
}

// =============================================================================
// AGGREGATION FUNCTIONS
// =============================================================================

// TotalRevenue sums Quantity × UnitPrice across all transactions, rounded to
// 2 decimal places.
func TotalRevenue(txs []types.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Amount())
	}
	return total.RoundBank(2)
}

// RegionWiseSales groups transactions by region and computes each region's
// total, count and share of overall revenue. Results are sorted by total
// sales descending; regions with equal totals keep first-encounter order.
func RegionWiseSales(txs []types.Transaction) []RegionStat {
	type acc struct {
		total decimal.Decimal
		count int
	}
	groups := newGrouping[acc]()
	grand := decimal.Zero
	for _, tx := range txs {
		amount := tx.Amount()
		a := groups.at(tx.Region)
		a.total = a.total.Add(amount)
		a.count++
		grand = grand.Add(amount)
	}

	stats := make([]RegionStat, 0, len(groups.keys))
	for _, region := range groups.keys {
		a := groups.index[region]
		pct := decimal.Zero
		if !grand.IsZero() {
			pct = a.total.Div(grand).Mul(decimal.NewFromInt(100)).RoundBank(2)
		}
		stats = append(stats, RegionStat{
			Region:           region,
			TotalSales:       a.total.RoundBank(2),
			TransactionCount: a.count,
			Percentage:       pct,
		})
	}

	slices.SortStableFunc(stats, func(a, b RegionStat) int {
		return b.TotalSales.Cmp(a.TotalSales)
	})
	return stats
}

// TopSellingProducts groups transactions by product name and returns the n
// products with the highest total quantity, quantity descending. Products
// with equal quantities keep first-encounter order.
func TopSellingProducts(txs []types.Transaction, n int) []ProductStat {
	stats := productStats(txs)
	slices.SortStableFunc(stats, func(a, b ProductStat) int {
		switch {
		case a.Quantity > b.Quantity:
			return -1
		case a.Quantity < b.Quantity:
			return 1
		default:
			return 0
		}
	})
	if n < len(stats) {
		stats = stats[:n]
	}
	return stats
}

// LowPerformingProducts returns products whose total quantity is strictly
// below threshold, sorted quantity ascending. Products with equal quantities
// keep first-encounter order.
func LowPerformingProducts(txs []types.Transaction, threshold int64) []ProductStat {
	all := productStats(txs)
	low := make([]ProductStat, 0)
	for _, p := range all {
		if p.Quantity < threshold {
			low = append(low, p)
		}
	}
	slices.SortStableFunc(low, func(a, b ProductStat) int {
		switch {
		case a.Quantity < b.Quantity:
			return -1
		case a.Quantity > b.Quantity:
			return 1
		default:
			return 0
		}
	})
	return low
}

// productStats builds the per-product aggregates in first-encounter order.
func productStats(txs []types.Transaction) []ProductStat {
	type acc struct {
		quantity int64
		revenue  decimal.Decimal
	}
	groups := newGrouping[acc]()
	for _, tx := range txs {
		a := groups.at(tx.ProductName)
		a.quantity += tx.Quantity
		a.revenue = a.revenue.Add(tx.Amount())
	}

	stats := make([]ProductStat, 0, len(groups.keys))
	for _, name := range groups.keys {
		a := groups.index[name]
		stats = append(stats, ProductStat{
			Name:     name,
			Quantity: a.quantity,
			Revenue:  a.revenue.RoundBank(2),
		})
	}
	return stats
}

// CustomerAnalysis groups transactions by customer and computes spend totals,
// purchase counts, average order value and the distinct products bought.
// Results are sorted by total spent descending; equal totals keep
// first-encounter order.
func CustomerAnalysis(txs []types.Transaction) []CustomerStat {
	type acc struct {
		total    decimal.Decimal
		count    int
		products map[string]struct{}
	}
	groups := newGrouping[acc]()
	for _, tx := range txs {
		a := groups.at(tx.CustomerID)
		if a.products == nil {
			a.products = make(map[string]struct{})
		}
		a.total = a.total.Add(tx.Amount())
		a.count++
		a.products[tx.ProductName] = struct{}{}
	}

	stats := make([]CustomerStat, 0, len(groups.keys))
	for _, id := range groups.keys {
		a := groups.index[id]
		products := make([]string, 0, len(a.products))
		for name := range a.products {
			products = append(products, name)
		}
		sort.Strings(products)

		avg := a.total.Div(decimal.NewFromInt(int64(a.count))).RoundBank(2)
		stats = append(stats, CustomerStat{
			CustomerID:    id,
			TotalSpent:    a.total.RoundBank(2),
			PurchaseCount: a.count,
			AvgOrderValue: avg,
			Products:      products,
		})
	}

	slices.SortStableFunc(stats, func(a, b CustomerStat) int {
		return b.TotalSpent.Cmp(a.TotalSpent)
	})
	return stats
}

// DailySalesTrend groups transactions by date and computes revenue, count and
// unique customer totals per day, sorted by date ascending. Dates are
// compared lexicographically, which orders YYYY-MM-DD strings correctly.
func DailySalesTrend(txs []types.Transaction) []DailyStat {
	type acc struct {
		revenue   decimal.Decimal
		count     int
		customers map[string]struct{}
	}
	groups := newGrouping[acc]()
	for _, tx := range txs {
		a := groups.at(tx.Date)
		if a.customers == nil {
			a.customers = make(map[string]struct{})
		}
		a.revenue = a.revenue.Add(tx.Amount())
		a.count++
		a.customers[tx.CustomerID] = struct{}{}
	}

	stats := make([]DailyStat, 0, len(groups.keys))
	for _, date := range groups.keys {
		a := groups.index[date]
		stats = append(stats, DailyStat{
			Date:             date,
			Revenue:          a.revenue.RoundBank(2),
			TransactionCount: a.count,
			UniqueCustomers:  len(a.customers),
		})
	}

	slices.SortStableFunc(stats, func(a, b DailyStat) int {
		switch {
		case a.Date < b.Date:
			return -1
		case a.Date > b.Date:
			return 1
		default:
			return 0
		}
	})
	return stats
}

// FindPeakSalesDay returns the day with the highest revenue. When several
// days share the maximum, the one first encountered in the input wins.
// ok is false for an empty input.
func FindPeakSalesDay(txs []types.Transaction) (PeakDay, bool) {
	type acc struct {
		revenue decimal.Decimal
		count   int
	}
	groups := newGrouping[acc]()
	for _, tx := range txs {
		a := groups.at(tx.Date)
		a.revenue = a.revenue.Add(tx.Amount())
		a.count++
	}
	if len(groups.keys) == 0 {
		return PeakDay{}, false
	}

	peakDate := groups.keys[0]
	for _, date := range groups.keys[1:] {
		if groups.index[date].revenue.GreaterThan(groups.index[peakDate].revenue) {
			peakDate = date
		}
	}

	a := groups.index[peakDate]
	return PeakDay{
		Date:             peakDate,
		Revenue:          a.revenue.RoundBank(2),
		TransactionCount: a.count,
	}, true
}
