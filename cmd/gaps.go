package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ourassistants/checkinsync/internal/config"
	"github.com/ourassistants/checkinsync/internal/report"
)

func newGapsCmd() *cobra.Command {
	var (
		configPath string
		outputDir  string
		groupBy    string
		csvPath    string
	)

	cmd := &cobra.Command{
		Use:   "gaps",
		Short: "Render the latest saved report without touching any source",
		Long: `Load the most recent JSON report from the output directory and render
its coverage summary and gap tables. No source is scanned.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if outputDir != "" {
				cfg.Storage.OutputDir = outputDir
			}

			rep, err := report.LoadLatest(cfg.Storage.OutputDir)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), report.RenderSummary(rep))
			switch groupBy {
			case "priority":
				fmt.Fprintln(cmd.OutOrStdout(), report.RenderGaps(rep))
			case "month":
				fmt.Fprintln(cmd.OutOrStdout(), report.RenderGapsByMonth(rep))
			case "counterpart":
				fmt.Fprintln(cmd.OutOrStdout(), report.RenderGapsByCounterpart(rep))
			default:
				return fmt.Errorf("unknown --by value %q (expected priority, month, or counterpart)", groupBy)
			}

			if csvPath != "" {
				if err := report.WriteGapsCSV(rep, csvPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "gap export written to %s\n", csvPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to the config file (default: ~/.checkinsync/config.yaml)")
	cmd.Flags().StringVar(&outputDir, "output", "", "Report directory to read from (overrides the config file)")
	cmd.Flags().StringVar(&groupBy, "by", "priority", "Gap grouping: priority, month, or counterpart")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Also export the gap entries as CSV to this path")
	return cmd
}
