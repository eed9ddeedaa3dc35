package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gauravorbit07-glitch/brandpulse/internal/report"
)

// NewDashboardCmd creates the dashboard command.
func NewDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard [product-id]",
		Short: "Fetch and render the visibility dashboard",
		Long: `Dashboard fetches the latest brand visibility results for a product
and renders them as a Markdown report. Use --json for machine-readable
output or --output to write the report to a file alongside the terminal
copy.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDashboardCmd,
	}
	cmd.Flags().BoolP("json", "j", false, "write the report as JSON")
	cmd.Flags().StringP("output", "o", "", "write the report to a file as well as stdout")
	return cmd
}

// runDashboardCmd executes the dashboard command.
func runDashboardCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if jsonFlag, err := cmd.Flags().GetBool("json"); err == nil {
		cfg.JSONReport = cfg.JSONReport || jsonFlag
	}
	if outFlag, err := cmd.Flags().GetString("output"); err == nil && outFlag != "" {
		cfg.ReportFile = outFlag
	}
	logger := setupLogger(cfg.Verbose)

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.requireSession(); err != nil {
		return err
	}

	resourceID, err := resolveResourceID(a, args)
	if err != nil {
		return err
	}

	dashboard, err := a.client.FetchDashboard(cmd.Context(), resourceID)
	if err != nil {
		if a.handleUnauthorized(err) {
			return errLoggedOut
		}
		return fmt.Errorf("failed to fetch dashboard: %w", err)
	}

	out := cmd.OutOrStdout()
	a.noteDashboardFreshness(cmd.ErrOrStderr(), dashboard.GeneratedAt)

	newWriter := func(dst io.Writer) report.Writer {
		if cfg.JSONReport {
			return report.NewJSONWriter(dst, report.WithPrettyPrint())
		}
		return report.NewMarkdownWriter(dst)
	}

	w := newWriter(out)
	if cfg.ReportFile != "" {
		f, err := report.OpenReportFile(cfg.ReportFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = report.NewMultiWriter(newWriter(f), w)
	}
	if _, err := w.Write(dashboard); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if cfg.ReportFile != "" {
		fmt.Fprintf(out, "Report written to %s\n", cfg.ReportFile)
	}
	return nil
}

// noteDashboardFreshness reconciles an in-flight run against the payload's
// generation time. A payload generated before the trigger gets a staleness
// warning; one generated after it means the backend finished the run while
// nobody was watching the timeline, so the record is closed out and the
// completion announced at most once.
func (a *app) noteDashboardFreshness(errOut io.Writer, generatedAt int64) {
	snap := a.store.Snapshot()
	if !snap.IsAnalyzing {
		return
	}
	if !a.store.IsNewerThan(generatedAt) {
		fmt.Fprintln(errOut, "Note: an analysis run is in progress; this report predates it.")
		return
	}
	a.store.CompleteAnalysis()
	if !a.store.CompletionAnnounced() {
		a.store.MarkCompletionAnnounced()
		fmt.Fprintln(errOut, "The analysis triggered earlier has finished; this report reflects its results.")
	}
}
