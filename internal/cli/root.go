package cli

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "recon",
	Short: "Reconcile Form 3CD tax audit reports against income tax returns",
	Long: `Recon compares a Form 3CD tax audit report against the matching
income tax return (ITR-3, ITR-5 or ITR-6), clause by clause.

Both filings may be supplied as JSON or XML exports, in any of the
schema variants the e-filing portal has produced over the years.
Unparseable or structurally unfamiliar documents never abort a run:
the affected amounts default to zero and the report carries a
diagnostic instead. A nonzero exit means a document could not be
read from disk at all.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// The service layer logs through the standard logger. Keep the
		// terminal quiet unless the user asked for it.
		if !verbose {
			log.SetOutput(io.Discard)
		}
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("recon v0.3.0")
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}
