package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taxrecon/internal/config"
	"taxrecon/internal/domain"
	"taxrecon/internal/export"
	"taxrecon/internal/service"
)

var (
	auditPath   string
	itrPath     string
	auditFormat string
	itrFormat   string
	category    string
	lenientJSON bool
	outCSV      string
	outXLSX     string
	outJSON     string
)

// reconcileCmd represents the reconcile command
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Compare a 3CD audit report with an ITR and print the clause table",
	Long: `Reconcile reads both filings from disk, extracts the seven audited
clauses from each side and prints the comparison table to stdout.
Diagnostics, if any, go to stderr.

Mismatched clauses are findings, not failures: the command still
exits 0. A nonzero exit means a document could not be read.

Example:
  recon reconcile --audit 3cd.json --itr itr6.json
  recon reconcile --audit 3cd.xml --audit-format xml --itr itr.json --csv out.csv
  recon reconcile --audit 3cd.json --itr itr.json --category Corporate --xlsx report.xlsx`,
	Args: cobra.NoArgs,
	RunE: runReconcile,
}

func init() {
	rootCmd.AddCommand(reconcileCmd)

	// Input flags
	reconcileCmd.Flags().StringVar(&auditPath, "audit", "", "path to the Form 3CD document (required)")
	reconcileCmd.Flags().StringVar(&itrPath, "itr", "", "path to the income tax return document (required)")
	reconcileCmd.Flags().StringVar(&auditFormat, "audit-format", "", "audit document format: json or xml (default: from extension)")
	reconcileCmd.Flags().StringVar(&itrFormat, "itr-format", "", "return document format: json or xml (default: from extension)")
	reconcileCmd.Flags().StringVar(&category, "category", "", "assessee category: Corporate or Non-Corporate")
	reconcileCmd.Flags().BoolVar(&lenientJSON, "lenient", false, "repair malformed JSON before giving up on it")

	// Output flags
	reconcileCmd.Flags().StringVar(&outCSV, "csv", "", "write the report as CSV to this path")
	reconcileCmd.Flags().StringVar(&outXLSX, "xlsx", "", "write the report as an XLSX workbook to this path")
	reconcileCmd.Flags().StringVar(&outJSON, "json", "", "write the full report as JSON to this path")
}

func runReconcile(cmd *cobra.Command, args []string) error {
	if auditPath == "" || itrPath == "" {
		return fmt.Errorf("both --audit and --itr are required")
	}

	audit, err := readDocument(auditPath, auditFormat)
	if err != nil {
		return err
	}
	itr, err := readDocument(itrPath, itrFormat)
	if err != nil {
		return err
	}

	// Local files carry no size cap; the cap guards HTTP uploads.
	svc := service.NewReconService(
		&config.UploadConfig{},
		&config.IngestConfig{RepairJSON: lenientJSON},
	)

	report, err := svc.Reconcile(context.Background(), service.ReconcileInput{
		Audit:    audit,
		Return:   itr,
		Category: category,
	})
	if err != nil {
		return err
	}

	for _, d := range report.Diagnostics {
		fmt.Fprintf(os.Stderr, "%s [%s] %s: %s\n", d.Severity, d.Document, d.Code, d.Message)
	}

	if err := export.WriteTable(os.Stdout, report); err != nil {
		return fmt.Errorf("write table: %w", err)
	}

	if outCSV != "" {
		if err := writeCSVFile(outCSV, report); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "CSV written to %s\n", outCSV)
		}
	}
	if outXLSX != "" {
		if err := writeXLSXFile(outXLSX, report); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Workbook written to %s\n", outXLSX)
		}
	}
	if outJSON != "" {
		if err := writeJSONFile(outJSON, report); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "JSON written to %s\n", outJSON)
		}
	}

	return nil
}

// readDocument loads one filing from disk. A failure here is the only
// kind of error that aborts the run.
func readDocument(path, format string) (service.DocumentInput, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return service.DocumentInput{}, fmt.Errorf("read document: %w", err)
	}
	return service.DocumentInput{
		Content: content,
		Format:  format,
		Name:    path,
	}, nil
}

func writeCSVFile(path string, report *domain.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(export.BOM); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	w := export.NewWriter(f)
	if err := w.WriteHeader(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	if err := w.WriteReport(report); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func writeXLSXFile(path string, report *domain.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := export.WriteXLSX(f, report); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeJSONFile(path string, report *domain.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create json: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}
