package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"taxrecon/internal/domain"
)

const (
	sheetReconciliation = "Reconciliation"
	sheetDiagnostics    = "Diagnostics"

	// tableStart is the row of the clause table header, below the
	// assessee detail block.
	tableStart = 6
)

// WriteXLSX renders the report as a spreadsheet: an assessee detail
// block, one table row per clause with comma-grouped amounts, and a
// separate diagnostics sheet when the extraction reported problems.
func WriteXLSX(w io.Writer, report *domain.Report) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetReconciliation); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	detail := [][]any{
		{"3CD / ITR Reconciliation"},
		{"Assessee", report.AssesseeName},
		{"Category", string(report.Category)},
		{"Generated", report.GeneratedAt.Format(time.RFC3339)},
	}
	for i, row := range detail {
		if err := f.SetSheetRow(sheetReconciliation, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return fmt.Errorf("write detail row: %w", err)
		}
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	amountFmt := "#,##0.00"
	amountStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &amountFmt})
	if err != nil {
		return fmt.Errorf("amount style: %w", err)
	}

	header := []any{"Clause", "Audit (3CD)", "ITR", "Difference", "Status"}
	if err := f.SetSheetRow(sheetReconciliation, fmt.Sprintf("A%d", tableStart), &header); err != nil {
		return fmt.Errorf("write table header: %w", err)
	}
	_ = f.SetCellStyle(sheetReconciliation, fmt.Sprintf("A%d", tableStart), fmt.Sprintf("E%d", tableStart), boldStyle)
	_ = f.SetCellStyle(sheetReconciliation, "A1", "A1", boldStyle)

	for i := range report.Rows {
		row := &report.Rows[i]
		r := tableStart + 1 + i
		audit, _ := row.Audit.Float64()
		ret, _ := row.Return.Float64()
		diff, _ := row.Difference.Float64()
		cells := []any{row.Clause, audit, ret, diff, string(row.Status)}
		if err := f.SetSheetRow(sheetReconciliation, fmt.Sprintf("A%d", r), &cells); err != nil {
			return fmt.Errorf("write clause row: %w", err)
		}
		_ = f.SetCellStyle(sheetReconciliation, fmt.Sprintf("B%d", r), fmt.Sprintf("D%d", r), amountStyle)
	}

	_ = f.SetColWidth(sheetReconciliation, "A", "A", 32)
	_ = f.SetColWidth(sheetReconciliation, "B", "D", 16)
	_ = f.SetPanes(sheetReconciliation, &excelize.Panes{
		Freeze:      true,
		YSplit:      tableStart,
		TopLeftCell: fmt.Sprintf("A%d", tableStart+1),
		ActivePane:  "bottomLeft",
	})

	if len(report.Diagnostics) > 0 {
		if err := writeDiagnosticsSheet(f, report.Diagnostics, boldStyle); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeDiagnosticsSheet(f *excelize.File, diags []domain.Diagnostic, headerStyle int) error {
	if _, err := f.NewSheet(sheetDiagnostics); err != nil {
		return fmt.Errorf("create diagnostics sheet: %w", err)
	}
	header := []any{"Severity", "Document", "Code", "Message"}
	if err := f.SetSheetRow(sheetDiagnostics, "A1", &header); err != nil {
		return fmt.Errorf("write diagnostics header: %w", err)
	}
	_ = f.SetCellStyle(sheetDiagnostics, "A1", "D1", headerStyle)
	for i := range diags {
		d := &diags[i]
		cells := []any{string(d.Severity), string(d.Document), string(d.Code), d.Message}
		if err := f.SetSheetRow(sheetDiagnostics, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			return fmt.Errorf("write diagnostics row: %w", err)
		}
	}
	_ = f.SetColWidth(sheetDiagnostics, "D", "D", 80)
	return nil
}
