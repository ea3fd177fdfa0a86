package score

import (
	"github.com/shopspring/decimal"

	"github.com/verocta-ai/spendscore/internal/model"
)

// highSeverityShare is the fraction of total spend above which a single
// pattern's attributed waste is tagged high severity.
var highSeverityShare = decimal.NewFromFloat(0.1)

// analyzeWaste scans descriptions against the configured waste patterns.
// Patterns are independent: a transaction matching several patterns
// contributes to each of them, so attributed amounts intentionally overlap.
func (e *Engine) analyzeWaste(txns []model.Transaction, total decimal.Decimal) model.WasteAnalysis {
	analysis := model.WasteAnalysis{
		TotalWasteDetected: decimal.Zero,
	}

	severityThreshold := total.Mul(highSeverityShare)

	for _, p := range e.patterns {
		matchSum := decimal.Zero
		matchCount := 0
		for _, txn := range txns {
			if txn.Description != "" && p.re.MatchString(txn.Description) {
				matchSum = matchSum.Add(txn.Amount)
				matchCount++
			}
		}
		if matchCount == 0 {
			continue
		}

		patternWaste := matchSum.Mul(p.weight)
		analysis.TotalWasteDetected = analysis.TotalWasteDetected.Add(patternWaste)

		severity := model.WasteSeverityMedium
		if patternWaste.GreaterThan(severityThreshold) {
			severity = model.WasteSeverityHigh
		}

		analysis.WasteCategories = append(analysis.WasteCategories, model.WasteCategory{
			Name:         p.name,
			Amount:       patternWaste,
			Transactions: matchCount,
			Severity:     severity,
		})
	}

	if total.IsPositive() {
		pct, _ := analysis.TotalWasteDetected.Div(total).Mul(decimal.NewFromInt(100)).Float64()
		analysis.WastePercentage = pct
	}

	return analysis
}
