package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewStatusCmd creates the status command.
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current analysis state",
		Long: `Status prints whether an analysis run is currently in flight for the
active account, which product it covers, and when it was triggered.`,
		RunE: runStatusCmd,
	}
}

// runStatusCmd executes the status command.
func runStatusCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg.Verbose)

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	out := cmd.OutOrStdout()

	if name := a.vault.FirstName(); name != "" {
		fmt.Fprintf(out, "Account: %s\n", name)
	} else if a.vault.AccessToken() == "" {
		fmt.Fprintln(out, "Account: not logged in")
	}

	snap := a.store.Snapshot()
	if !snap.IsAnalyzing {
		fmt.Fprintln(out, "Analysis: idle")
	} else {
		triggered := time.UnixMilli(*snap.TriggeredAt)
		fmt.Fprintf(out, "Analysis: running for %s (triggered %s)\n",
			*snap.ResourceID,
			triggered.Format("2006-01-02 15:04:05"),
		)
	}

	if msg := a.store.LastError(); msg != "" {
		fmt.Fprintf(out, "Last error: %s\n", msg)
	}
	if a.store.FirstAnalysisPending() {
		fmt.Fprintln(out, "First analysis: not completed yet")
	}

	return nil
}
