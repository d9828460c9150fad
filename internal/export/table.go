package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"taxrecon/internal/domain"
)

// WriteTable renders the report as an aligned text table for terminals.
// Amounts carry thousands separators; the CSV and XLSX writers stay
// machine-friendly instead.
func WriteTable(w io.Writer, report *domain.Report) error {
	width := len("Clause")
	for i := range report.Rows {
		if l := len(report.Rows[i].Clause); l > width {
			width = l
		}
	}

	if _, err := fmt.Fprintf(w, "Assessee: %s (%s)\n\n", report.AssesseeName, report.Category); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%-*s  %15s  %15s  %15s  %s\n", width, "Clause", "Audit (3CD)", "ITR", "Difference", "Status"); err != nil {
		return err
	}
	rule := strings.Repeat("-", width+2+15+2+15+2+15+2+len("Mismatch"))
	if _, err := fmt.Fprintln(w, rule); err != nil {
		return err
	}
	for i := range report.Rows {
		row := &report.Rows[i]
		_, err := fmt.Fprintf(w, "%-*s  %15s  %15s  %15s  %s\n",
			width, row.Clause,
			displayAmount(row.Audit), displayAmount(row.Return), displayAmount(row.Difference),
			row.Status)
		if err != nil {
			return err
		}
	}
	return nil
}

// displayAmount renders an amount with comma grouping and two decimals.
func displayAmount(v decimal.Decimal) string {
	f, _ := v.Float64()
	return humanize.FormatFloat("#,###.##", f)
}
