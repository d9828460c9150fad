package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"taxrecon/internal/batch"
	"taxrecon/internal/config"
	"taxrecon/internal/export"
	"taxrecon/internal/service"
)

var (
	batchConcurrency int
	batchOutputDir   string
	batchLenient     bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch [manifest]",
	Short: "Reconcile many audit/return pairs from a manifest file",
	Long: `Batch reads a manifest listing document pairs, one per line as

  audit-path,itr-path[,category]

and reconciles them concurrently. Blank lines and lines starting
with # are skipped. One JSON report per pair is written into the
output directory.

A pair whose documents cannot be read is reported and skipped; the
remaining pairs still run. The command exits nonzero if any pair
failed that way.

Example:
  recon batch filings.txt
  recon batch filings.txt --concurrency 8 --output-dir ./reports
  recon batch filings.txt --lenient`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", runtime.NumCPU(), "number of pairs reconciled at once")
	batchCmd.Flags().StringVarP(&batchOutputDir, "output-dir", "o", "reports", "directory for per-pair JSON reports")
	batchCmd.Flags().BoolVar(&batchLenient, "lenient", false, "repair malformed JSON before giving up on it")
}

func runBatch(cmd *cobra.Command, args []string) error {
	pairs, err := batch.ReadManifest(args[0])
	if err != nil {
		return err
	}
	if len(pairs) == 0 {
		return fmt.Errorf("manifest %s lists no document pairs", args[0])
	}

	if err := os.MkdirAll(batchOutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	svc := service.NewReconService(
		&config.UploadConfig{},
		&config.IngestConfig{RepairJSON: batchLenient},
	)
	runner := batch.NewRunner(svc, batchConcurrency)
	outcomes := runner.Run(cmd.Context(), pairs)

	failed := 0
	for i := range outcomes {
		out := &outcomes[i]
		if out.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "failed %s, %s: %v\n", out.Pair.AuditPath, out.Pair.ReturnPath, out.Err)
			continue
		}

		name := fmt.Sprintf("%03d_%s", i+1, export.BuildFilename(out.Report.AssesseeName, "json"))
		path := filepath.Join(batchOutputDir, name)
		if err := writeJSONFile(path, out.Report); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "failed %s, %s: %v\n", out.Pair.AuditPath, out.Pair.ReturnPath, err)
			continue
		}

		fmt.Printf("%s, %s: %d mismatches, %d diagnostics -> %s\n",
			out.Pair.AuditPath, out.Pair.ReturnPath,
			out.Mismatches(), len(out.Report.Diagnostics), path)
	}

	fmt.Printf("\n%d of %d pairs reconciled\n", len(pairs)-failed, len(pairs))
	if failed > 0 {
		return fmt.Errorf("%d of %d pairs failed", failed, len(pairs))
	}
	return nil
}
