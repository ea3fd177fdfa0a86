package model

import (
	"github.com/shopspring/decimal"
)

// ScoreLevel is the RAG classification band for a SpendScore.
type ScoreLevel string

// Score level constants.
const (
	LevelExcellent ScoreLevel = "excellent" // 90-100
	LevelGood      ScoreLevel = "good"      // 75-89
	LevelAverage   ScoreLevel = "average"   // 60-74
	LevelPoor      ScoreLevel = "poor"      // 40-59
	LevelCritical  ScoreLevel = "critical"  // 0-39
)

// LevelForScore maps a clamped score to its level, display color, and label.
// A score sitting exactly on a band boundary belongs to the higher band.
func LevelForScore(score int) (ScoreLevel, string, string) {
	switch {
	case score >= 90:
		return LevelExcellent, "#10B981", "Excellent"
	case score >= 75:
		return LevelGood, "#34D399", "Good"
	case score >= 60:
		return LevelAverage, "#F59E0B", "Average"
	case score >= 40:
		return LevelPoor, "#F97316", "Poor"
	default:
		return LevelCritical, "#EF4444", "Critical"
	}
}

// SpendMetrics is the aggregate snapshot computed once per run.
type SpendMetrics struct {
	TotalAmount               decimal.Decimal `json:"total_amount"`
	WastefulSpending          decimal.Decimal `json:"wasteful_spending"`
	TransactionCount          int             `json:"transaction_count"`
	UniqueCategories          int             `json:"unique_categories"`
	DateRangeDays             int             `json:"date_range_days"`
	DuplicateTransactions     int             `json:"duplicate_transactions"`
	HighVarianceCategories    int             `json:"high_variance_categories"`
	OptimizationOpportunities int             `json:"optimization_opportunities"`
}

// WasteSeverity tags how much of total spend a waste pattern accounts for.
type WasteSeverity string

// Waste severity constants.
const (
	WasteSeverityHigh   WasteSeverity = "high"   // pattern waste > 10% of total spend
	WasteSeverityMedium WasteSeverity = "medium"
)

// WasteCategory is the per-pattern breakdown of attributed waste.
type WasteCategory struct {
	Name         string          `json:"name"`
	Severity     WasteSeverity   `json:"severity"`
	Amount       decimal.Decimal `json:"amount"`
	Transactions int             `json:"transactions"`
}

// WasteAnalysis summarizes spend attributed to waste patterns. Pattern
// contributions are independent and may overlap on the same transaction.
type WasteAnalysis struct {
	TotalWasteDetected decimal.Decimal `json:"total_waste_detected"`
	WastePercentage    float64         `json:"waste_percentage"`
	WasteCategories    []WasteCategory `json:"waste_categories"`
}

// BenchmarkStatus describes where a category's spend ratio falls relative
// to its industry reference range.
type BenchmarkStatus string

// Benchmark status constants.
const (
	BenchmarkOptimal BenchmarkStatus = "optimal"
	BenchmarkGood    BenchmarkStatus = "good"
	BenchmarkUnder   BenchmarkStatus = "under"
	BenchmarkOver    BenchmarkStatus = "over"
)

// BenchmarkComparison compares one category against the industry table.
type BenchmarkComparison struct {
	Category string          `json:"category"`
	Status   BenchmarkStatus `json:"status"`
	Actual   float64         `json:"actual"`
	Optimal  float64         `json:"optimal"`
	Variance float64         `json:"variance"`
}

// Priority ranks findings and recommendations.
type Priority string

// Priority constants.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Finding is a single rule-triggered observation about the data.
type Finding struct {
	Type     string   `json:"type"`
	Message  string   `json:"message"`
	Priority Priority `json:"priority"`
}

// CategoryInsight aggregates spend for one category.
type CategoryInsight struct {
	TotalSpent        decimal.Decimal `json:"total_spent"`
	AverageAmount     decimal.Decimal `json:"average_amount"`
	TransactionCount  int             `json:"transaction_count"`
	PercentageOfTotal float64         `json:"percentage_of_total"`
}

// SpendingSummary is the headline aggregate block of the insights section.
type SpendingSummary struct {
	TotalAnalyzed      decimal.Decimal `json:"total_analyzed"`
	AverageTransaction decimal.Decimal `json:"average_transaction"`
	TransactionCount   int             `json:"transaction_count"`
	CategoriesAnalyzed int             `json:"categories_analyzed"`
}

// Insights is the structured findings block of a result.
type Insights struct {
	Summary          SpendingSummary            `json:"spending_summary"`
	KeyFindings      []Finding                  `json:"key_findings"`
	CategoryInsights map[string]CategoryInsight `json:"category_insights"`
}

// Recommendation is an actionable remediation suggestion.
type Recommendation struct {
	Type             string          `json:"type"`
	Priority         Priority        `json:"priority"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	PotentialSavings decimal.Decimal `json:"potential_savings"`
	ActionItems      []string        `json:"action_items"`
}

// TrendDirection labels the sign of the fitted monthly slope.
type TrendDirection string

// Trend direction constants.
const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
)

// RiskPrediction flags a forecast-derived risk.
type RiskPrediction struct {
	Type           string `json:"type"`
	Message        string `json:"message"`
	Recommendation string `json:"recommendation"`
}

// Forecast is the predictive block. Available is false when fewer than two
// distinct months of dated transactions exist.
type Forecast struct {
	Available           bool             `json:"available"`
	Trend               TrendDirection   `json:"trend,omitempty"`
	MonthlyChange       float64          `json:"monthly_change"`
	NextMonthPrediction float64          `json:"next_month_prediction"`
	RiskPredictions     []RiskPrediction `json:"risk_predictions,omitempty"`
}

// ScoreResult is the engine's sole output. It is always fully populated;
// a computation that could not complete normally is reported through the
// Degraded flag rather than an error.
type ScoreResult struct {
	Score           int                   `json:"score"`
	Level           ScoreLevel            `json:"level"`
	Color           string                `json:"color"`
	Label           string                `json:"label"`
	Confidence      float64               `json:"confidence"`
	Degraded        bool                  `json:"degraded"`
	DegradedReason  string                `json:"degraded_reason,omitempty"`
	Metrics         SpendMetrics          `json:"metrics"`
	Insights        Insights              `json:"insights"`
	Recommendations []Recommendation      `json:"recommendations"`
	Waste           WasteAnalysis         `json:"waste_analysis"`
	Benchmarks      []BenchmarkComparison `json:"benchmarks"`
	Forecast        Forecast              `json:"predictive_insights"`
}
