package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for BrandPulse.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brandpulse",
		Short: "Brand visibility analytics for AI model responses",
		Long: `BrandPulse reports how visibly a brand appears in AI model responses:
visibility scores, competitor comparisons, sentiment, and cited sources.

Analytics are computed by the BrandPulse backend. This client authenticates,
triggers analysis runs, tracks their progress, and renders the results.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .brandpulse in current, XDG config, or home directory)")

	// Add subcommands
	cmd.AddCommand(NewLoginCmd())
	cmd.AddCommand(NewLogoutCmd())
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewStatusCmd())
	cmd.AddCommand(NewDashboardCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
