package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verocta-ai/spendscore/internal/model"
)

func fullResult() *model.ScoreResult {
	level, color, label := model.LevelForScore(78)
	return &model.ScoreResult{
		Score:      78,
		Level:      level,
		Color:      color,
		Label:      label,
		Confidence: 0.8,
		Metrics: model.SpendMetrics{
			TotalAmount:      decimal.NewFromInt(5000),
			TransactionCount: 120,
			UniqueCategories: 8,
			DateRangeDays:    90,
		},
		Waste: model.WasteAnalysis{
			TotalWasteDetected: decimal.NewFromInt(300),
			WastePercentage:    6,
			WasteCategories: []model.WasteCategory{
				{Name: "duplicate_subscriptions", Amount: decimal.NewFromInt(300), Severity: model.WasteSeverityMedium, Transactions: 4},
			},
		},
		Benchmarks: []model.BenchmarkComparison{
			{Category: "travel", Actual: 0.12, Optimal: 0.10, Variance: 0.02, Status: model.BenchmarkOver},
		},
		Insights: model.Insights{
			Summary: model.SpendingSummary{
				TotalAnalyzed:    decimal.NewFromInt(5000),
				TransactionCount: 120,
			},
			KeyFindings: []model.Finding{
				{Type: "waste_detection", Message: "high waste detected", Priority: model.PriorityHigh},
			},
			CategoryInsights: map[string]model.CategoryInsight{
				"travel": {TotalSpent: decimal.NewFromInt(600), TransactionCount: 10, PercentageOfTotal: 12},
			},
		},
		Recommendations: []model.Recommendation{
			{Type: "waste_reduction", Priority: model.PriorityHigh, Title: "Reduce Duplicate Subscriptions"},
		},
		Forecast: model.Forecast{
			Available:           true,
			Trend:               model.TrendIncreasing,
			MonthlyChange:       150,
			NextMonthPrediction: 5150,
		},
	}
}

func TestFormatResult(t *testing.T) {
	out := NewCLIFormatter().FormatResult(fullResult())
	require.NotEmpty(t, out)

	assert.Contains(t, out, "Score: 78/100")
	assert.Contains(t, out, "Good")
	assert.Contains(t, out, "Confidence: 80%")
	assert.Contains(t, out, "Waste Analysis")
	assert.Contains(t, out, "travel")
	assert.Contains(t, out, "Reduce Duplicate Subscriptions")
	assert.Contains(t, out, "high waste detected")
	assert.NotContains(t, out, "Degraded result")
}

func TestFormatResult_Degraded(t *testing.T) {
	result := fullResult()
	result.Degraded = true
	result.DegradedReason = "analysis failed"

	out := NewCLIFormatter().FormatResult(result)
	assert.Contains(t, out, "Degraded result: analysis failed")
}

func TestFormatResult_Minimal(t *testing.T) {
	level, color, label := model.LevelForScore(50)
	result := &model.ScoreResult{
		Score: 50, Level: level, Color: color, Label: label,
	}

	out := NewCLIFormatter().FormatResult(result)
	assert.Contains(t, out, "Score: 50/100")
	assert.NotContains(t, out, "Waste Analysis")
	assert.NotContains(t, out, "Forecast")
}

func TestFormatResult_Nil(t *testing.T) {
	out := NewCLIFormatter().FormatResult(nil)
	assert.Contains(t, out, "No result available")
}
