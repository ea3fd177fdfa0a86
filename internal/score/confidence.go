package score

import (
	"github.com/verocta-ai/spendscore/internal/model"
)

// confidence rates result reliability from data volume, time span, and
// category coverage. Each factor maps through a step function; the result
// is their mean, always in [0.4, 1.0].
func (e *Engine) confidence(m model.SpendMetrics) float64 {
	var volume float64
	switch {
	case m.TransactionCount >= 100:
		volume = 1.0
	case m.TransactionCount >= 50:
		volume = 0.8
	case m.TransactionCount >= 20:
		volume = 0.6
	default:
		volume = 0.4
	}

	var span float64
	switch {
	case m.DateRangeDays >= 90:
		span = 1.0
	case m.DateRangeDays >= 30:
		span = 0.8
	default:
		span = 0.6
	}

	var coverage float64
	switch {
	case m.UniqueCategories >= 10:
		coverage = 1.0
	case m.UniqueCategories >= 5:
		coverage = 0.8
	default:
		coverage = 0.6
	}

	return (volume + span + coverage) / 3
}
