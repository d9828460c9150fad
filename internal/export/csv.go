package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"taxrecon/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Clause",
	"Audit (3CD)",
	"ITR",
	"Difference",
	"Status",
}

// Writer wraps csv.Writer for exporting reconciliation reports as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteReport converts the report's reconciliation rows to CSV and writes them.
func (w *Writer) WriteReport(report *domain.Report) error {
	for i := range report.Rows {
		if err := w.csv.Write(rowToRecord(&report.Rows[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// rowToRecord converts one reconciliation row to CSV fields. Amounts are
// written as plain two-decimal values so spreadsheets read them as numbers.
func rowToRecord(row *domain.ReconciliationRow) []string {
	return []string{
		row.Clause,
		formatMoney(row.Audit),
		formatMoney(row.Return),
		formatMoney(row.Difference),
		string(row.Status),
	}
}

func formatMoney(v decimal.Decimal) string {
	return v.StringFixed(2)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans an assessee name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition
// header. Format: {sanitized_assessee_name}_reconciliation_{YYYY-MM-DD}.{ext}
func BuildFilename(assesseeName, ext string) string {
	sanitized := SanitizeFilename(assesseeName)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_reconciliation_%s.%s", sanitized, date, ext)
}
