package score

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/verocta-ai/spendscore/internal/model"
)

func TestEfficiencyScores(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name    string
		metrics model.SpendMetrics
		want    efficiencyScores
	}{
		{
			name: "large average transactions saturate",
			metrics: model.SpendMetrics{
				TotalAmount:      decimal.NewFromInt(10000),
				TransactionCount: 10,
				UniqueCategories: 15,
			},
			want: efficiencyScores{Transaction: 100, CategoryDiversity: 100, Duplicate: 100, Variance: 100},
		},
		{
			name: "small average transactions score low",
			metrics: model.SpendMetrics{
				TotalAmount:      decimal.NewFromInt(100),
				TransactionCount: 10,
				UniqueCategories: 3,
			},
			want: efficiencyScores{Transaction: 10, CategoryDiversity: 20, Duplicate: 100, Variance: 100},
		},
		{
			name: "duplicates and variance pull scores down",
			metrics: model.SpendMetrics{
				TotalAmount:            decimal.NewFromInt(1000),
				TransactionCount:       10,
				UniqueCategories:       4,
				DuplicateTransactions:  5,
				HighVarianceCategories: 2,
			},
			want: efficiencyScores{Transaction: 100, CategoryDiversity: 26.666666666666668, Duplicate: 50, Variance: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.efficiencyScores(tt.metrics)
			assert.InDelta(t, tt.want.Transaction, got.Transaction, 1e-9)
			assert.InDelta(t, tt.want.CategoryDiversity, got.CategoryDiversity, 1e-9)
			assert.InDelta(t, tt.want.Duplicate, got.Duplicate, 1e-9)
			assert.InDelta(t, tt.want.Variance, got.Variance, 1e-9)
		})
	}
}

func TestCompositeScore_HandComputed(t *testing.T) {
	engine := newTestEngine(t)

	eff := efficiencyScores{Transaction: 80, CategoryDiversity: 60, Duplicate: 100, Variance: 100}
	waste := model.WasteAnalysis{
		TotalWasteDetected: decimal.NewFromInt(20),
		WastePercentage:    10,
	}
	benchmarks := []model.BenchmarkComparison{
		{Status: model.BenchmarkOptimal},
		{Status: model.BenchmarkOver},
	}

	// 85*0.4 + 90*0.3 + 80*0.2 + 80*0.1 = 34 + 27 + 16 + 8 = 85
	assert.Equal(t, 85, engine.compositeScore(eff, waste, benchmarks))
}

func TestCompositeScore_NoBenchmarksDefault(t *testing.T) {
	engine := newTestEngine(t)

	eff := efficiencyScores{Transaction: 100, CategoryDiversity: 100, Duplicate: 100, Variance: 100}
	waste := model.WasteAnalysis{TotalWasteDetected: decimal.Zero}

	// 100*0.4 + 100*0.3 + 70*0.2 + 100*0.1 = 94
	assert.Equal(t, 94, engine.compositeScore(eff, waste, nil))
}

func TestCompositeScore_LargeWasteClampsBonus(t *testing.T) {
	engine := newTestEngine(t)

	eff := efficiencyScores{}
	waste := model.WasteAnalysis{
		TotalWasteDetected: decimal.NewFromInt(100000),
		WastePercentage:    95,
	}

	// 0 + 5*0.3 + 70*0.2 + 0 = 15.5, truncated to 15.
	assert.Equal(t, 15, engine.compositeScore(eff, waste, nil))
}

func TestLevelForScore(t *testing.T) {
	tests := []struct {
		score int
		want  model.ScoreLevel
	}{
		{100, model.LevelExcellent},
		{90, model.LevelExcellent},
		{89, model.LevelGood},
		{75, model.LevelGood},
		{74, model.LevelAverage},
		{60, model.LevelAverage},
		{59, model.LevelPoor},
		{40, model.LevelPoor},
		{39, model.LevelCritical},
		{0, model.LevelCritical},
	}

	for _, tt := range tests {
		level, color, label := model.LevelForScore(tt.score)
		assert.Equal(t, tt.want, level, "score %d", tt.score)
		assert.NotEmpty(t, color)
		assert.NotEmpty(t, label)
	}
}
