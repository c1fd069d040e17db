package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ourassistants/checkinsync/internal/config"
	"github.com/ourassistants/checkinsync/internal/instrumentation"
	"github.com/ourassistants/checkinsync/internal/pipeline"
	"github.com/ourassistants/checkinsync/internal/report"
	"github.com/ourassistants/checkinsync/internal/seen"
)

const dateLayout = "2006-01-02"

func newScanCmd() *cobra.Command {
	var (
		configPath string
		account    string
		fromStr    string
		toStr      string
		outputDir  string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan all sources and report check-in coverage gaps",
		Long: `Collect meeting records from every enabled source, merge records that
describe the same check-in, and report which meetings are missing
required artifacts. Writes a JSON report unless --dry-run is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if account != "" {
				cfg.Account = account
			}
			if outputDir != "" {
				cfg.Storage.OutputDir = outputDir
			}

			timeMin, timeMax, err := scanWindow(fromStr, toStr)
			if err != nil {
				return err
			}

			ctx := context.Background()

			instrConfig := instrumentation.DefaultConfig()
			instrConfig.ServiceVersion = version
			provider, err := instrumentation.NewProvider(ctx, instrConfig)
			if err != nil {
				return fmt.Errorf("failed to create instrumentation provider: %w", err)
			}
			defer func() { _ = provider.Shutdown(ctx) }()

			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			// Long scans can expose their metrics while running.
			if handler := provider.PrometheusHandler(); handler != nil {
				if addr := os.Getenv("METRICS_ADDR"); addr != "" {
					mux := http.NewServeMux()
					mux.Handle("/metrics", handler)
					go func() {
						if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
							logger.Warn("metrics server stopped", slog.String("error", err.Error()))
						}
					}()
				}
			}

			var store *seen.Store
			if !dryRun {
				store, err = seen.Open(cfg.Storage.SeenDBPath)
				if err != nil {
					return err
				}
				defer store.Close()
			}

			p := pipeline.New(cfg, pipeline.Options{
				Logger:  logger,
				Metrics: provider.Metrics(),
				Audit:   instrumentation.NewAuditLoggerWithConfig(logger, instrConfig.AuditLogging),
				Seen:    store,
			})

			res, err := p.Run(ctx, timeMin, timeMax, dryRun)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), report.RenderSummary(res.Report))
			fmt.Fprintln(cmd.OutOrStdout(), report.RenderGaps(res.Report))
			if res.ReportPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", res.ReportPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to the config file (default: ~/.checkinsync/config.yaml)")
	cmd.Flags().StringVar(&account, "account", "", "Google account name to use (overrides the config file)")
	cmd.Flags().StringVar(&fromStr, "from", "", "Window start date, YYYY-MM-DD (default: 90 days ago)")
	cmd.Flags().StringVar(&toStr, "to", "", "Window end date, YYYY-MM-DD (default: tomorrow)")
	cmd.Flags().StringVar(&outputDir, "output", "", "Report output directory (overrides the config file)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Render tables only; write no report and mark nothing seen")
	return cmd
}

// scanWindow resolves the scan window from the flag values. The default
// window covers the last 90 days through tomorrow, so today's meetings
// are always included.
func scanWindow(fromStr, toStr string) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	timeMin := now.AddDate(0, 0, -90)
	timeMax := now.AddDate(0, 0, 1)

	if fromStr != "" {
		t, err := time.Parse(dateLayout, fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from date %q: %w", fromStr, err)
		}
		timeMin = t
	}
	if toStr != "" {
		t, err := time.Parse(dateLayout, toStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to date %q: %w", toStr, err)
		}
		timeMax = t
	}
	if !timeMin.Before(timeMax) {
		return time.Time{}, time.Time{}, fmt.Errorf("scan window start %s is not before end %s",
			timeMin.Format(dateLayout), timeMax.Format(dateLayout))
	}
	return timeMin, timeMax, nil
}
