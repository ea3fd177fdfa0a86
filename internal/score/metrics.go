package score

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/verocta-ai/spendscore/internal/model"
)

// defaultDateRangeDays is assumed when no transaction carries a usable date.
const defaultDateRangeDays = 30

// Thresholds for optimization opportunity heuristics.
const (
	smallAmountThreshold       = 50
	smallAmountCount           = 10
	recurringPaymentCount      = 3
	categoryConcentrationRatio = 0.4
)

// coreMetrics computes the aggregate snapshot of the dataset. Wasteful
// spending and opportunity counts are filled in by the caller from the
// waste analyzer.
func (e *Engine) coreMetrics(txns []model.Transaction, groups []categoryGroup) model.SpendMetrics {
	total := decimal.Zero
	for _, txn := range txns {
		total = total.Add(txn.Amount)
	}

	return model.SpendMetrics{
		TotalAmount:            total,
		WastefulSpending:       decimal.Zero,
		TransactionCount:       len(txns),
		UniqueCategories:       len(groups),
		DateRangeDays:          dateRangeDays(txns),
		DuplicateTransactions:  countDuplicates(txns),
		HighVarianceCategories: countHighVariance(groups),
	}
}

// dateRangeDays returns the span between the earliest and latest dated
// transaction, floored at 1 day, or the 30-day default when no transaction
// carries a date.
func dateRangeDays(txns []model.Transaction) int {
	var minDate, maxDate *model.Transaction
	for i := range txns {
		if !txns[i].Dated() {
			continue
		}
		if minDate == nil || txns[i].Date.Before(*minDate.Date) {
			minDate = &txns[i]
		}
		if maxDate == nil || txns[i].Date.After(*maxDate.Date) {
			maxDate = &txns[i]
		}
	}

	if minDate == nil {
		return defaultDateRangeDays
	}

	days := int(maxDate.Date.Sub(*minDate.Date).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

// countDuplicates groups transactions by exact (amount, description) pair;
// every group with more than one member counts once. This is deliberately an
// exact-match heuristic, not fuzzy matching.
func countDuplicates(txns []model.Transaction) int {
	if len(txns) < 2 {
		return 0
	}

	type key struct {
		amount      string
		description string
	}

	seen := make(map[key]int, len(txns))
	for _, txn := range txns {
		seen[key{txn.Amount.String(), txn.Description}]++
	}

	duplicates := 0
	for _, n := range seen {
		if n > 1 {
			duplicates++
		}
	}
	return duplicates
}

// countHighVariance counts categories whose amount spread is large relative
// to their mean: sample stddev / mean > 1.0. Categories with a zero mean or
// a single transaction are skipped (the ratio is undefined there).
func countHighVariance(groups []categoryGroup) int {
	if len(groups) < 2 {
		return 0
	}

	count := 0
	for _, g := range groups {
		if len(g.txns) < 2 {
			continue
		}

		mean := g.total.InexactFloat64() / float64(len(g.txns))
		if mean == 0 {
			continue
		}

		var sumSq float64
		for _, txn := range g.txns {
			d := txn.Amount.InexactFloat64() - mean
			sumSq += d * d
		}
		stddev := math.Sqrt(sumSq / float64(len(g.txns)-1))

		if stddev/mean > 1.0 {
			count++
		}
	}
	return count
}

// countOpportunities applies three additive heuristics: many small
// transactions that could be consolidated, recurring identical-amount
// payments that look like subscriptions, and categories concentrating too
// much of total spend.
func (e *Engine) countOpportunities(txns []model.Transaction, groups []categoryGroup, total decimal.Decimal) int {
	opportunities := 0

	small := 0
	threshold := decimal.NewFromInt(smallAmountThreshold)
	for _, txn := range txns {
		if txn.Amount.LessThan(threshold) {
			small++
		}
	}
	if small > smallAmountCount {
		opportunities++
	}

	amountCounts := make(map[string]int, len(txns))
	for _, txn := range txns {
		amountCounts[txn.Amount.Round(2).String()]++
	}
	for _, n := range amountCounts {
		if n >= recurringPaymentCount {
			opportunities++
		}
	}

	if total.IsPositive() {
		for _, g := range groups {
			ratio, _ := g.total.Div(total).Float64()
			if ratio > categoryConcentrationRatio {
				opportunities++
			}
		}
	}

	return opportunities
}
