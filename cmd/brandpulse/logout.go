package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLogoutCmd creates the logout command.
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the local session",
		Long: `Logout removes every credential from the local encrypted vault and
forgets the active account scope.

The account's persisted analysis record is left in place: an analysis run
still in flight at logout resumes the next time the same account logs in.`,
		RunE: runLogoutCmd,
	}
}

// runLogoutCmd executes the logout command.
func runLogoutCmd(cmd *cobra.Command, _ []string) error {
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

	// Forget the scope before clearing the vault: ClearUserID only resets
	// in-memory state, so the persisted analysis record survives for the
	// account's next login.
	a.store.ClearUserID()
	a.vault.ClearAll()

	fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
	return nil
}
