// Package normalize coerces loose raw records into uniform transactions.
//
// Raw records arrive as key-value rows with inconsistent field names and
// casings depending on the upload source. Field detection is table-wide:
// for each logical field the highest-priority alias present anywhere in the
// input names the column for every row, mirroring how a spreadsheet header
// would be resolved. Malformed individual values are coerced to safe
// defaults rather than dropped, so the record count is always preserved.
package normalize

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/verocta-ai/spendscore/internal/model"
)

// Prioritized alias tables per logical field. Earlier entries win.
var (
	amountAliases      = []string{"amount", "Amount", "total", "Total", "value", "Value"}
	dateAliases        = []string{"date", "Date", "transaction_date", "created_at", "posted_at"}
	categoryAliases    = []string{"category", "Category", "type", "Type"}
	vendorAliases      = []string{"vendor", "Vendor", "merchant", "Merchant", "payee", "Payee"}
	descriptionAliases = []string{"description", "Description", "memo", "Memo", "notes", "Notes"}
)

// Date layouts tolerated by the date coercion, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"01-02-2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"20060102",
}

var currencyReplacer = strings.NewReplacer("$", "", "€", "", "£", "", ",", "", " ", "")

// Records converts raw ingest rows into normalized transactions. The input
// is never mutated; the output slice always has the same length as the input.
func Records(records []model.RawRecord) []model.Transaction {
	amountKey := detectField(records, amountAliases)
	dateKey := detectField(records, dateAliases)
	categoryKey := detectField(records, categoryAliases)
	vendorKey := detectField(records, vendorAliases)
	descriptionKey := detectField(records, descriptionAliases)

	txns := make([]model.Transaction, 0, len(records))
	for _, rec := range records {
		txns = append(txns, model.Transaction{
			Amount:      coerceAmount(rec[amountKey]),
			Date:        coerceDate(rec[dateKey]),
			Category:    coerceLabel(rec[categoryKey], model.DefaultCategory),
			Vendor:      coerceLabel(rec[vendorKey], model.DefaultVendor),
			Description: coerceText(rec[descriptionKey]),
		})
	}

	return txns
}

// detectField returns the highest-priority alias that appears in any record,
// or "" when none does.
func detectField(records []model.RawRecord, aliases []string) string {
	for _, alias := range aliases {
		for _, rec := range records {
			if _, ok := rec[alias]; ok {
				return alias
			}
		}
	}
	return ""
}

// coerceAmount parses a raw amount value to a decimal, defaulting to zero.
// String values may carry currency symbols and thousands separators.
func coerceAmount(v any) decimal.Decimal {
	switch val := v.(type) {
	case nil:
		return decimal.Zero
	case float64:
		return decimal.NewFromFloat(val)
	case float32:
		return decimal.NewFromFloat32(val)
	case int:
		return decimal.NewFromInt(int64(val))
	case int64:
		return decimal.NewFromInt(val)
	case decimal.Decimal:
		return val
	case string:
		cleaned := currencyReplacer.Replace(strings.TrimSpace(val))
		if cleaned == "" {
			return decimal.Zero
		}
		d, err := decimal.NewFromString(cleaned)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// coerceDate parses a raw date value, returning nil when it cannot.
func coerceDate(v any) *time.Time {
	switch val := v.(type) {
	case time.Time:
		if val.IsZero() {
			return nil
		}
		t := val
		return &t
	case *time.Time:
		return val
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return &t
			}
		}
		return nil
	default:
		return nil
	}
}

// coerceLabel trims a free-text label, substituting the default when absent.
func coerceLabel(v any, fallback string) string {
	s, ok := v.(string)
	if !ok {
		return fallback
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	return s
}

func coerceText(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}
