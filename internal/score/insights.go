package score

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/verocta-ai/spendscore/internal/model"
)

// Trigger thresholds for findings and recommendations.
const (
	wasteFindingPct        = 20.0
	wasteRecommendationPct = 15.0
	duplicateFindingCount  = 5
	duplicateCleanupCount  = 3
)

var titleCaser = cases.Title(language.English)

// generateInsights builds the structured findings block: headline summary,
// rule-triggered key findings, and the per-category breakdown. Category
// spend totals sum exactly to the dataset total.
func (e *Engine) generateInsights(m model.SpendMetrics, waste model.WasteAnalysis, groups []categoryGroup) model.Insights {
	txnCount := m.TransactionCount
	if txnCount < 1 {
		txnCount = 1
	}

	insights := model.Insights{
		Summary: model.SpendingSummary{
			TotalAnalyzed:      m.TotalAmount,
			TransactionCount:   m.TransactionCount,
			AverageTransaction: m.TotalAmount.Div(decimal.NewFromInt(int64(txnCount))),
			CategoriesAnalyzed: m.UniqueCategories,
		},
		CategoryInsights: make(map[string]model.CategoryInsight, len(groups)),
	}

	if waste.WastePercentage > wasteFindingPct {
		insights.KeyFindings = append(insights.KeyFindings, model.Finding{
			Type:     "waste_alert",
			Message:  fmt.Sprintf("High waste detected: %.1f%% of spending shows inefficiencies", waste.WastePercentage),
			Priority: model.PriorityHigh,
		})
	}

	if m.DuplicateTransactions > duplicateFindingCount {
		insights.KeyFindings = append(insights.KeyFindings, model.Finding{
			Type:     "duplicate_alert",
			Message:  fmt.Sprintf("%d potential duplicate transactions found", m.DuplicateTransactions),
			Priority: model.PriorityMedium,
		})
	}

	for _, g := range groups {
		count := decimal.NewFromInt(int64(len(g.txns)))

		var pct float64
		if m.TotalAmount.IsPositive() {
			pct, _ = g.total.Div(m.TotalAmount).Mul(decimal.NewFromInt(100)).Float64()
		}

		insights.CategoryInsights[g.name] = model.CategoryInsight{
			TotalSpent:        g.total,
			TransactionCount:  len(g.txns),
			AverageAmount:     g.total.Div(count),
			PercentageOfTotal: pct,
		}
	}

	return insights
}

// generateRecommendations derives actionable suggestions from fixed
// thresholds. Output order is deterministic: waste reduction, duplicate
// cleanup, then category concentration in category-sorted order.
func (e *Engine) generateRecommendations(m model.SpendMetrics, waste model.WasteAnalysis, insights model.Insights) []model.Recommendation {
	recommendations := []model.Recommendation{}

	if waste.WastePercentage > wasteRecommendationPct {
		recommendations = append(recommendations, model.Recommendation{
			Type:             "waste_reduction",
			Priority:         model.PriorityHigh,
			Title:            "Reduce Wasteful Spending",
			Description:      fmt.Sprintf("You can save up to %.1f%% by eliminating wasteful expenses", waste.WastePercentage),
			PotentialSavings: waste.TotalWasteDetected,
			ActionItems: []string{
				"Review and cancel unused subscriptions",
				"Consolidate duplicate services",
				"Implement approval workflows for large expenses",
			},
		})
	}

	if m.DuplicateTransactions > duplicateCleanupCount {
		recommendations = append(recommendations, model.Recommendation{
			Type:        "duplicate_cleanup",
			Priority:    model.PriorityMedium,
			Title:       "Eliminate Duplicate Transactions",
			Description: fmt.Sprintf("Found %d potential duplicate transactions", m.DuplicateTransactions),
			ActionItems: []string{
				"Review similar amounts and descriptions",
				"Implement expense tracking controls",
				"Set up automated duplicate detection",
			},
		})
	}

	for _, name := range sortedCategoryNames(insights.CategoryInsights) {
		data := insights.CategoryInsights[name]
		if data.PercentageOfTotal <= categoryConcentrationRatio*100 {
			continue
		}

		title := titleCaser.String(name)
		recommendations = append(recommendations, model.Recommendation{
			Type:        "category_optimization",
			Priority:    model.PriorityMedium,
			Title:       fmt.Sprintf("Optimize %s Spending", title),
			Description: fmt.Sprintf("%s represents %.1f%% of total spending", title, data.PercentageOfTotal),
			ActionItems: []string{
				fmt.Sprintf("Negotiate better rates for %s services", name),
				"Consider alternative providers",
				"Implement budget caps for this category",
			},
		})
	}

	return recommendations
}

func sortedCategoryNames(insights map[string]model.CategoryInsight) []string {
	names := make([]string, 0, len(insights))
	for name := range insights {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
