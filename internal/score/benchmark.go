package score

import (
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/verocta-ai/spendscore/internal/model"
)

// optimalWindow is how close (in ratio points) an in-range category must sit
// to the table's optimal value to be rated optimal rather than good.
const optimalWindow = 0.05

// compareBenchmarks rates each category's share of total spend against the
// industry reference table. Categories differing only in case are merged
// into one row; categories without a table entry are omitted rather than
// penalized. Results come back in category-sorted order.
func (e *Engine) compareBenchmarks(groups []categoryGroup, total decimal.Decimal, industry string) []model.BenchmarkComparison {
	if !total.IsPositive() {
		return nil
	}

	table := e.tables.Benchmarks(industry)

	totals := make(map[string]decimal.Decimal, len(groups))
	for _, g := range groups {
		key := strings.ToLower(g.name)
		totals[key] = totals[key].Add(g.total)
	}

	keys := make([]string, 0, len(totals))
	for key := range totals {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var comparisons []model.BenchmarkComparison
	for _, key := range keys {
		ref, ok := table[key]
		if !ok {
			continue
		}

		actual, _ := totals[key].Div(total).Float64()

		comparisons = append(comparisons, model.BenchmarkComparison{
			Category: key,
			Actual:   actual,
			Optimal:  ref.Optimal,
			Variance: math.Abs(actual - ref.Optimal),
			Status:   benchmarkStatus(actual, ref.Min, ref.Max, ref.Optimal),
		})
	}

	return comparisons
}

// benchmarkStatus classifies a spend ratio against its reference band.
func benchmarkStatus(actual, minRatio, maxRatio, optimal float64) model.BenchmarkStatus {
	switch {
	case actual >= minRatio && actual <= maxRatio:
		if math.Abs(actual-optimal) < optimalWindow {
			return model.BenchmarkOptimal
		}
		return model.BenchmarkGood
	case actual < minRatio:
		return model.BenchmarkUnder
	default:
		return model.BenchmarkOver
	}
}
