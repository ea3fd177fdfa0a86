// Package config provides configuration for the scoring engine and CLI.
package config

import (
	"fmt"
	"regexp"

	"github.com/spf13/viper"

	"github.com/verocta-ai/spendscore/internal/common"
)

// BenchmarkRange is the reference spend-ratio band for one category.
type BenchmarkRange struct {
	Min     float64 `mapstructure:"min"`
	Max     float64 `mapstructure:"max"`
	Optimal float64 `mapstructure:"optimal"`
}

// WastePattern is a description-matching rule that attributes a fraction of
// matching spend to waste. Pattern is a case-insensitive regular expression.
type WastePattern struct {
	Name    string  `mapstructure:"name"`
	Pattern string  `mapstructure:"pattern"`
	Weight  float64 `mapstructure:"weight"`
}

// Tables holds the fixed reference data the engine is constructed with:
// industry benchmarks, waste patterns, and category weights. A Tables value
// is loaded once and never mutated afterwards.
type Tables struct {
	IndustryBenchmarks map[string]map[string]BenchmarkRange `mapstructure:"industry_benchmarks"`
	CategoryWeights    map[string]float64                   `mapstructure:"category_weights"`
	WastePatterns      []WastePattern                       `mapstructure:"waste_patterns"`
}

// GeneralIndustry is the fallback benchmark table key.
const GeneralIndustry = "general"

// DefaultTables returns the compiled-in reference data.
func DefaultTables() Tables {
	return Tables{
		IndustryBenchmarks: map[string]map[string]BenchmarkRange{
			"technology": {
				"software_subscriptions": {Min: 0.15, Max: 0.35, Optimal: 0.25},
				"hardware":               {Min: 0.10, Max: 0.20, Optimal: 0.15},
				"cloud_services":         {Min: 0.20, Max: 0.40, Optimal: 0.30},
			},
			"professional_services": {
				"office_supplies": {Min: 0.02, Max: 0.08, Optimal: 0.05},
				"travel":          {Min: 0.05, Max: 0.15, Optimal: 0.10},
				"marketing":       {Min: 0.10, Max: 0.25, Optimal: 0.18},
			},
			GeneralIndustry: {
				"utilities":             {Min: 0.05, Max: 0.12, Optimal: 0.08},
				"insurance":             {Min: 0.03, Max: 0.10, Optimal: 0.06},
				"professional_services": {Min: 0.08, Max: 0.20, Optimal: 0.14},
			},
		},
		CategoryWeights: map[string]float64{
			"software_subscriptions": 1.0,
			"technology":             0.9,
			"marketing":              0.8,
			"professional_services":  0.7,
			"travel":                 0.6,
			"office_supplies":        0.4,
			"utilities":              0.3,
			"other":                  0.5,
		},
		WastePatterns: []WastePattern{
			{Name: "duplicate_subscriptions", Pattern: `(subscription|monthly|annual)`, Weight: 0.3},
			{Name: "unused_software", Pattern: `(software|saas|app)`, Weight: 0.25},
			{Name: "excessive_travel", Pattern: `(travel|flight|hotel|uber|taxi)`, Weight: 0.2},
			{Name: "office_supply_waste", Pattern: `(office|supplies|stationery)`, Weight: 0.15},
		},
	}
}

// LoadTables merges config-file overrides from the given viper instance over
// the compiled-in defaults and validates the result. A nil viper or a file
// without an "engine" section yields the defaults unchanged.
func LoadTables(v *viper.Viper) (Tables, error) {
	tables := DefaultTables()

	if v != nil && v.IsSet("engine") {
		if err := v.UnmarshalKey("engine", &tables); err != nil {
			return Tables{}, fmt.Errorf("failed to parse engine tables: %w", err)
		}
	}

	if err := tables.Validate(); err != nil {
		return Tables{}, err
	}

	return tables, nil
}

// Validate checks the reference data for internal consistency.
func (t Tables) Validate() error {
	if len(t.IndustryBenchmarks) == 0 {
		return fmt.Errorf("%w: no industry benchmarks", common.ErrInvalidConfig)
	}
	if _, ok := t.IndustryBenchmarks[GeneralIndustry]; !ok {
		return fmt.Errorf("%w: missing %q benchmark table", common.ErrInvalidConfig, GeneralIndustry)
	}

	for industry, categories := range t.IndustryBenchmarks {
		for category, r := range categories {
			if r.Min < 0 || r.Max > 1 || r.Min > r.Max {
				return fmt.Errorf("%w: benchmark %s/%s has invalid range [%v,%v]",
					common.ErrInvalidConfig, industry, category, r.Min, r.Max)
			}
			if r.Optimal < r.Min || r.Optimal > r.Max {
				return fmt.Errorf("%w: benchmark %s/%s optimal %v outside [%v,%v]",
					common.ErrInvalidConfig, industry, category, r.Optimal, r.Min, r.Max)
			}
		}
	}

	for category, w := range t.CategoryWeights {
		if w <= 0 || w > 1 {
			return fmt.Errorf("%w: category weight %q is %v, want (0,1]",
				common.ErrInvalidConfig, category, w)
		}
	}

	for _, p := range t.WastePatterns {
		if p.Name == "" {
			return fmt.Errorf("%w: waste pattern with empty name", common.ErrInvalidConfig)
		}
		if p.Weight <= 0 || p.Weight > 1 {
			return fmt.Errorf("%w: waste pattern %q weight %v outside (0,1]",
				common.ErrInvalidConfig, p.Name, p.Weight)
		}
		if _, err := regexp.Compile(`(?i)` + p.Pattern); err != nil {
			return fmt.Errorf("%w: waste pattern %q: %v", common.ErrInvalidConfig, p.Name, err)
		}
	}

	return nil
}

// Benchmarks returns the benchmark table for the given industry, falling
// back to the general table when the industry is unrecognized.
func (t Tables) Benchmarks(industry string) map[string]BenchmarkRange {
	if b, ok := t.IndustryBenchmarks[industry]; ok {
		return b
	}
	return t.IndustryBenchmarks[GeneralIndustry]
}
