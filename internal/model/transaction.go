// Package model defines the core domain models used throughout the application.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Default labels applied by the normalizer when a field is missing.
const (
	DefaultCategory = "Other"
	DefaultVendor   = "Unknown"
)

// RawRecord is a single transaction row as handed over by the ingest layer:
// original column names mapped to raw values. Keys keep their source casing
// so the normalizer's alias tables can resolve them.
type RawRecord map[string]any

// Transaction is one normalized financial event. The engine works on a
// private slice of these; caller-owned raw records are never mutated.
type Transaction struct {
	Date        *time.Time // nil when the source row carried no parseable date
	Category    string
	Vendor      string
	Description string
	Amount      decimal.Decimal
}

// Dated reports whether the transaction carries a parseable date.
func (t Transaction) Dated() bool {
	return t.Date != nil
}

// Month returns the calendar month bucket (first of month, UTC) for trend
// aggregation. Only meaningful when Dated() is true.
func (t Transaction) Month() time.Time {
	if t.Date == nil {
		return time.Time{}
	}
	return time.Date(t.Date.Year(), t.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
}
