package score

import (
	"github.com/verocta-ai/spendscore/internal/model"
)

// Benchmark component scores per status.
const (
	benchmarkScoreOptimal  = 100.0
	benchmarkScoreGood     = 80.0
	benchmarkScoreOffRange = 60.0 // under or over
	benchmarkScoreUnscored = 70.0 // no category present in the reference table
)

// compositeScore combines the weighted components into the final 0-100
// value: efficiency 40%, waste penalty 30%, benchmark alignment 20%, and a
// 10% bonus for low absolute waste.
func (e *Engine) compositeScore(eff efficiencyScores, waste model.WasteAnalysis, benchmarks []model.BenchmarkComparison) int {
	base := eff.mean() * weightEfficiency
	wastePenalty := (100 - waste.WastePercentage) * weightWaste
	benchmark := meanBenchmarkScore(benchmarks) * weightBenchmark

	opportunity := 100 - waste.TotalWasteDetected.InexactFloat64()
	if opportunity < 0 {
		opportunity = 0
	}
	bonus := opportunity * weightOpportunity

	final := base + wastePenalty + benchmark + bonus

	switch {
	case final < 0:
		return 0
	case final > 100:
		return 100
	default:
		return int(final)
	}
}

func meanBenchmarkScore(benchmarks []model.BenchmarkComparison) float64 {
	if len(benchmarks) == 0 {
		return benchmarkScoreUnscored
	}

	sum := 0.0
	for _, b := range benchmarks {
		switch b.Status {
		case model.BenchmarkOptimal:
			sum += benchmarkScoreOptimal
		case model.BenchmarkGood:
			sum += benchmarkScoreGood
		case model.BenchmarkUnder, model.BenchmarkOver:
			sum += benchmarkScoreOffRange
		}
	}
	return sum / float64(len(benchmarks))
}
