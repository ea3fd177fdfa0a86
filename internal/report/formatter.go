package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verocta-ai/spendscore/internal/model"
)

// CLIFormatter renders a scored result for terminal display.
type CLIFormatter struct {
	styles *Styles
}

// NewCLIFormatter creates a new CLI formatter with default styles.
func NewCLIFormatter() *CLIFormatter {
	return &CLIFormatter{
		styles: NewStyles(),
	}
}

// FormatResult creates the full terminal report for a scored result.
func (f *CLIFormatter) FormatResult(result *model.ScoreResult) string {
	if result == nil {
		return f.styles.Error.Render("No result available")
	}

	var sections []string

	sections = append(sections, f.formatScoreBanner(result))

	if result.Degraded {
		sections = append(sections, f.formatDegradedWarning(result))
	}

	sections = append(sections, f.formatMetrics(result.Metrics))

	if len(result.Waste.WasteCategories) > 0 {
		sections = append(sections, f.formatWaste(result.Waste))
	}

	if len(result.Benchmarks) > 0 {
		sections = append(sections, f.formatBenchmarks(result.Benchmarks))
	}

	if len(result.Insights.CategoryInsights) > 0 {
		sections = append(sections, f.formatCategories(result.Insights))
	}

	if len(result.Insights.KeyFindings) > 0 {
		sections = append(sections, f.formatFindings(result.Insights.KeyFindings))
	}

	if len(result.Recommendations) > 0 {
		sections = append(sections, f.formatRecommendations(result.Recommendations))
	}

	if result.Forecast.Available {
		sections = append(sections, f.formatForecast(result.Forecast))
	}

	return strings.Join(sections, "\n\n")
}

// formatScoreBanner renders the headline score with its level color and a
// progress bar.
func (f *CLIFormatter) formatScoreBanner(result *model.ScoreResult) string {
	levelStyle := f.styles.LevelStyle(result)

	title := f.styles.Title.Render("💰 SpendScore Report")
	headline := levelStyle.Render(fmt.Sprintf("Score: %d/100 — %s", result.Score, result.Label))

	barWidth := 40
	filled := barWidth * result.Score / 100
	bar := levelStyle.Render(strings.Repeat("█", filled)) +
		f.styles.ProgressRest.Render(strings.Repeat("░", barWidth-filled))

	confidence := f.styles.Subtle.Render(fmt.Sprintf("Confidence: %.0f%%", result.Confidence*100))

	return fmt.Sprintf("%s\n%s\n%s\n%s", title, headline, bar, confidence)
}

func (f *CLIFormatter) formatDegradedWarning(result *model.ScoreResult) string {
	msg := "Degraded result: " + result.DegradedReason
	return f.styles.Warning.Render("⚠ " + msg)
}

// formatMetrics renders the aggregate snapshot as a boxed stat line.
func (f *CLIFormatter) formatMetrics(m model.SpendMetrics) string {
	stats := []struct {
		label string
		value string
	}{
		{"Total", "$" + m.TotalAmount.StringFixed(2)},
		{"Transactions", fmt.Sprintf("%d", m.TransactionCount)},
		{"Categories", fmt.Sprintf("%d", m.UniqueCategories)},
		{"Span", fmt.Sprintf("%dd", m.DateRangeDays)},
		{"Duplicates", fmt.Sprintf("%d", m.DuplicateTransactions)},
		{"Opportunities", fmt.Sprintf("%d", m.OptimizationOpportunities)},
	}

	parts := make([]string, 0, len(stats))
	for _, stat := range stats {
		label := f.styles.Subtle.Render(stat.label + ":")
		value := f.styles.Info.Render(stat.value)
		parts = append(parts, fmt.Sprintf("%s %s", label, value))
	}

	return f.styles.Box.Render(strings.Join(parts, "  │  "))
}

// formatWaste renders the waste analysis section.
func (f *CLIFormatter) formatWaste(waste model.WasteAnalysis) string {
	title := f.styles.Subtitle.Render("Waste Analysis:")

	summary := fmt.Sprintf("Estimated waste: $%s (%.1f%% of spend)",
		waste.TotalWasteDetected.StringFixed(2), waste.WastePercentage)

	var summaryStyle lipgloss.Style
	switch {
	case waste.WastePercentage > 20:
		summaryStyle = f.styles.Error
	case waste.WastePercentage > 10:
		summaryStyle = f.styles.Warning
	default:
		summaryStyle = f.styles.Success
	}

	lines := []string{title, summaryStyle.Render(summary)}

	for _, wc := range waste.WasteCategories {
		icon := "⚡"
		style := f.styles.Info
		if wc.Severity == model.WasteSeverityHigh {
			icon = "🚨"
			style = f.styles.Error
		}
		line := style.Render(fmt.Sprintf("%s %s: $%s across %d transaction(s)",
			icon, wc.Name, wc.Amount.StringFixed(2), wc.Transactions))
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// formatBenchmarks renders the industry comparison table.
func (f *CLIFormatter) formatBenchmarks(benchmarks []model.BenchmarkComparison) string {
	title := f.styles.Subtitle.Render("Industry Benchmarks:")

	nameWidth := 24
	colWidth := 10

	headerStyle := f.styles.Subtle.Bold(true)
	header := fmt.Sprintf("%-*s %-*s %-*s %-*s",
		nameWidth, "Category",
		colWidth, "Actual",
		colWidth, "Optimal",
		colWidth, "Status")
	separator := f.styles.Subtle.Render(strings.Repeat("─", len(header)))

	rows := []string{headerStyle.Render(header), separator}

	for _, b := range benchmarks {
		var statusStyle lipgloss.Style
		switch b.Status {
		case model.BenchmarkOptimal:
			statusStyle = f.styles.Success
		case model.BenchmarkGood:
			statusStyle = f.styles.Info
		default:
			statusStyle = f.styles.Warning
		}

		name := b.Category
		if len(name) > nameWidth-1 {
			name = name[:nameWidth-4] + "..."
		}

		row := fmt.Sprintf("%-*s %-*s %-*s %-*s",
			nameWidth, name,
			colWidth, fmt.Sprintf("%.1f%%", b.Actual*100),
			colWidth, fmt.Sprintf("%.1f%%", b.Optimal*100),
			colWidth, statusStyle.Render(string(b.Status)))
		rows = append(rows, row)
	}

	return title + "\n" + strings.Join(rows, "\n")
}

// formatCategories renders the top spend categories.
func (f *CLIFormatter) formatCategories(insights model.Insights) string {
	title := f.styles.Subtitle.Render("Category Breakdown:")

	type entry struct {
		name    string
		insight model.CategoryInsight
	}
	entries := make([]entry, 0, len(insights.CategoryInsights))
	for name, ci := range insights.CategoryInsights {
		entries = append(entries, entry{name, ci})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].insight.TotalSpent.Equal(entries[j].insight.TotalSpent) {
			return entries[i].name < entries[j].name
		}
		return entries[i].insight.TotalSpent.GreaterThan(entries[j].insight.TotalSpent)
	})

	limit := 10
	if len(entries) < limit {
		limit = len(entries)
	}

	var lines []string
	for i := 0; i < limit; i++ {
		e := entries[i]
		line := fmt.Sprintf("• %s — $%s (%d txns, %.1f%%)",
			f.styles.Info.Render(e.name),
			e.insight.TotalSpent.StringFixed(2),
			e.insight.TransactionCount,
			e.insight.PercentageOfTotal)
		lines = append(lines, line)
	}

	if len(entries) > limit {
		more := f.styles.Subtle.Render(fmt.Sprintf("... and %d more categories", len(entries)-limit))
		lines = append(lines, more)
	}

	return title + "\n" + strings.Join(lines, "\n")
}

// formatFindings renders key findings.
func (f *CLIFormatter) formatFindings(findings []model.Finding) string {
	title := f.styles.Subtitle.Render("💡 Key Findings:")

	lines := make([]string, 0, len(findings))
	for _, finding := range findings {
		style := f.styles.PriorityStyle(finding.Priority)
		lines = append(lines, fmt.Sprintf("%s %s", style.Render("•"), finding.Message))
	}

	return title + "\n" + strings.Join(lines, "\n")
}

// formatRecommendations renders recommendations with their action items.
func (f *CLIFormatter) formatRecommendations(recommendations []model.Recommendation) string {
	title := f.styles.Subtitle.Render("🔧 Recommendations:")

	var lines []string
	for _, rec := range recommendations {
		style := f.styles.PriorityStyle(rec.Priority)
		header := fmt.Sprintf("%s %s", style.Render(fmt.Sprintf("[%s]", rec.Priority)), f.styles.Normal.Bold(true).Render(rec.Title))
		lines = append(lines, header, "  "+rec.Description)
		for _, item := range rec.ActionItems {
			lines = append(lines, f.styles.Subtle.Render("    - "+item))
		}
	}

	return title + "\n" + strings.Join(lines, "\n")
}

// formatForecast renders the predictive block.
func (f *CLIFormatter) formatForecast(forecast model.Forecast) string {
	title := f.styles.Subtitle.Render("📈 Forecast:")

	trendStyle := f.styles.Success
	arrow := "↓"
	if forecast.Trend == model.TrendIncreasing {
		trendStyle = f.styles.Warning
		arrow = "↑"
	}

	lines := []string{
		title,
		trendStyle.Render(fmt.Sprintf("%s Monthly spend %s by $%.2f", arrow, forecast.Trend, abs(forecast.MonthlyChange))),
		f.styles.Normal.Render(fmt.Sprintf("Next month estimate: $%.2f", forecast.NextMonthPrediction)),
	}

	for _, risk := range forecast.RiskPredictions {
		lines = append(lines, f.styles.Error.Render("⚠ "+risk.Message))
		lines = append(lines, f.styles.Subtle.Render("  "+risk.Recommendation))
	}

	return strings.Join(lines, "\n")
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
