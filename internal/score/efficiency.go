package score

import (
	"github.com/verocta-ai/spendscore/internal/model"
)

// Saturation points of the efficiency sub-scores.
const (
	avgTransactionSaturation = 100 // average amount at which transaction efficiency maxes out
	categorySaturation       = 15  // category count treated as "enough" diversity
)

// efficiencyScores holds the four independent sub-scores, each in [0,100].
type efficiencyScores struct {
	Transaction       float64
	CategoryDiversity float64
	Duplicate         float64
	Variance          float64
}

func (s efficiencyScores) mean() float64 {
	return (s.Transaction + s.CategoryDiversity + s.Duplicate + s.Variance) / 4
}

// efficiencyScores derives the four sub-scores from the aggregate metrics.
// Each is an intentionally simple linear proxy, not a learned function.
func (e *Engine) efficiencyScores(m model.SpendMetrics) efficiencyScores {
	txnCount := m.TransactionCount
	if txnCount < 1 {
		txnCount = 1
	}
	categories := m.UniqueCategories
	if categories < 1 {
		categories = 1
	}

	avgTransaction := m.TotalAmount.InexactFloat64() / float64(txnCount)

	return efficiencyScores{
		Transaction:       clamp01(avgTransaction/avgTransactionSaturation) * 100,
		CategoryDiversity: clamp01(float64(m.UniqueCategories)/categorySaturation) * 100,
		Duplicate:         clamp01(1-float64(m.DuplicateTransactions)/float64(txnCount)) * 100,
		Variance:          clamp01(1-float64(m.HighVarianceCategories)/float64(categories)) * 100,
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
