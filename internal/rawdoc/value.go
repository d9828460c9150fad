package rawdoc

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Coerce converts an arbitrary decoded value into a two-decimal amount.
// It never fails: nil, unparseable strings and non-numeric types all
// coerce to zero, so a single bad field cannot abort an extraction.
// String amounts may carry thousands separators ("12,34,567.89").
func Coerce(v any) decimal.Decimal {
	switch t := v.(type) {
	case nil:
		return decimal.Zero
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return decimal.Zero
		}
		return d.Round(2)
	case float64:
		return decimal.NewFromFloat(t).Round(2)
	case int:
		return decimal.NewFromInt(int64(t))
	case int64:
		return decimal.NewFromInt(t)
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(t), ",", "")
		if s == "" {
			return decimal.Zero
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero
		}
		return d.Round(2)
	default:
		return decimal.Zero
	}
}
