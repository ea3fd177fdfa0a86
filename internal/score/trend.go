package score

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/verocta-ai/spendscore/internal/model"
)

// trendRiskShare is the fraction of mean monthly spend the fitted slope must
// exceed to raise a spending-increase risk flag.
const trendRiskShare = 0.1

// forecast aggregates amounts by calendar month and fits a first-degree
// least-squares line over the month index. With fewer than two distinct
// months there is nothing to extrapolate and the block stays empty.
func (e *Engine) forecast(txns []model.Transaction) model.Forecast {
	totals := make(map[time.Time]decimal.Decimal)
	for _, txn := range txns {
		if !txn.Dated() {
			continue
		}
		month := txn.Month()
		totals[month] = totals[month].Add(txn.Amount)
	}

	if len(totals) < 2 {
		return model.Forecast{}
	}

	months := make([]time.Time, 0, len(totals))
	for month := range totals {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	values := make([]float64, len(months))
	for i, month := range months {
		values[i] = totals[month].InexactFloat64()
	}

	slope := olsSlope(values)

	direction := model.TrendDecreasing
	if slope > 0 {
		direction = model.TrendIncreasing
	}

	forecast := model.Forecast{
		Available:           true,
		Trend:               direction,
		MonthlyChange:       slope,
		NextMonthPrediction: values[len(values)-1] + slope,
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	if slope > mean*trendRiskShare {
		forecast.RiskPredictions = append(forecast.RiskPredictions, model.RiskPrediction{
			Type:           "spending_increase",
			Message:        "Spending is trending upward significantly",
			Recommendation: "Review budget and implement cost controls",
		})
	}

	return forecast
}

// olsSlope returns the slope of the ordinary least-squares line through
// (i, values[i]).
func olsSlope(values []float64) float64 {
	n := float64(len(values))

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}
