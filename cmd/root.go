package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the checkinsync application
var rootCmd = &cobra.Command{
	Use:   "checkinsync",
	Short: "Reconciles check-in meeting records across sources",
	Long: `checkinsync cross-references check-in meeting evidence from Google
Calendar, Google Drive, local recording folders, and the tracking
spreadsheet, merges records that describe the same meeting, and reports
which meetings are missing recordings, transcripts, or analysis rows.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "checkinsync version %s\n" .Version}}`)

	// If no subcommand is provided, run the scan command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "scan")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newGapsCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}
