package score

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verocta-ai/spendscore/internal/model"
)

func TestForecast_TooFewMonths(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name string
		txns []model.Transaction
	}{
		{"no transactions", nil},
		{"no dates", []model.Transaction{txn(100, "", "a", ""), txn(200, "", "a", "")}},
		{"single month", []model.Transaction{
			txn(100, "2024-04-01", "a", ""),
			txn(200, "2024-04-20", "a", ""),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forecast := engine.forecast(tt.txns)
			assert.False(t, forecast.Available)
			assert.Empty(t, forecast.RiskPredictions)
		})
	}
}

func TestForecast_LinearGrowth(t *testing.T) {
	engine := newTestEngine(t)

	// Monthly totals 100, 200, 300, 400: slope exactly 100.
	var txns []model.Transaction
	for month := 1; month <= 4; month++ {
		txns = append(txns, txn(float64(month*100), fmt.Sprintf("2024-%02d-10", month), "a", ""))
	}

	forecast := engine.forecast(txns)

	require.True(t, forecast.Available)
	assert.Equal(t, model.TrendIncreasing, forecast.Trend)
	assert.InDelta(t, 100.0, forecast.MonthlyChange, 1e-9)
	assert.InDelta(t, 500.0, forecast.NextMonthPrediction, 1e-9)

	// Slope 100 > 10% of mean 250: risk flagged.
	require.Len(t, forecast.RiskPredictions, 1)
	assert.Equal(t, "spending_increase", forecast.RiskPredictions[0].Type)
}

func TestForecast_Decreasing(t *testing.T) {
	engine := newTestEngine(t)

	txns := []model.Transaction{
		txn(500, "2024-01-10", "a", ""),
		txn(300, "2024-02-10", "a", ""),
		txn(100, "2024-03-10", "a", ""),
	}

	forecast := engine.forecast(txns)

	require.True(t, forecast.Available)
	assert.Equal(t, model.TrendDecreasing, forecast.Trend)
	assert.InDelta(t, -200.0, forecast.MonthlyChange, 1e-9)
	assert.InDelta(t, -100.0, forecast.NextMonthPrediction, 1e-9)
	assert.Empty(t, forecast.RiskPredictions)
}

func TestForecast_AggregatesWithinMonth(t *testing.T) {
	engine := newTestEngine(t)

	// Two transactions in January aggregate before fitting.
	txns := []model.Transaction{
		txn(60, "2024-01-05", "a", ""),
		txn(40, "2024-01-25", "a", ""),
		txn(100, "2024-02-10", "a", ""),
	}

	forecast := engine.forecast(txns)

	require.True(t, forecast.Available)
	assert.InDelta(t, 0.0, forecast.MonthlyChange, 1e-9)
	assert.InDelta(t, 100.0, forecast.NextMonthPrediction, 1e-9)
}

func TestOLSSlope(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"flat", []float64{5, 5, 5}, 0},
		{"unit slope", []float64{0, 1, 2, 3}, 1},
		{"noisy", []float64{1, 3, 2, 4}, 0.8},
		{"single point", []float64{7}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, olsSlope(tt.values), 1e-9)
		})
	}
}
