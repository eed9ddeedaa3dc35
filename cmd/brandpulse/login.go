package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gauravorbit07-glitch/brandpulse/internal/model"
)

// NewLoginCmd creates the login command.
func NewLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the BrandPulse backend",
		Long: `Login authenticates against the BrandPulse backend and stores the
resulting credentials in the local encrypted vault.

The bearer token is kept in session-lifetime storage and vanishes with the
login session; identity fields survive restarts. All per-user client state
is re-scoped to the authenticated account, so an analysis run left in
flight before logout resumes automatically.

The password is read from the BRANDPULSE_PASSWORD environment variable
when --password is not given.`,
		RunE: runLoginCmd,
	}

	cmd.Flags().StringP("email", "e", "", "Account email address")
	cmd.Flags().StringP("password", "p", "", "Account password (prefer BRANDPULSE_PASSWORD)")

	return cmd
}

// runLoginCmd executes the login command.
func runLoginCmd(cmd *cobra.Command, _ []string) error {
	email, err := cmd.Flags().GetString("email")
	if err != nil {
		return err
	}
	password, err := cmd.Flags().GetString("password")
	if err != nil {
		return err
	}
	if password == "" {
		password = os.Getenv("BRANDPULSE_PASSWORD")
	}
	if email == "" || password == "" {
		return fmt.Errorf("email and password are required")
	}

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

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := a.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	// Persist the session and identity fields first; invocations after this
	// one re-derive the store's scope from the vault's stored user id.
	a.vault.SetAccessToken(result.AccessToken)
	a.vault.SetSessionID(result.SessionID)
	a.vault.SetUserID(result.UserID)
	a.vault.SetApplicationID(result.ApplicationID)
	a.vault.SetFirstName(result.FirstName)

	// Re-scope the lifecycle store to the authenticated account. This
	// reloads the account's persisted record rather than resetting it,
	// which is what resumes an in-flight run across relogin.
	a.store.SetUserID(result.UserID)

	products := cacheAccountData(ctx, a)

	// The first-run timeline is only owed to accounts that have never had
	// a product analyzed. Accounts with analyzed products go straight to
	// the dashboard on their next analysis.
	if !hasAnalyzedProduct(products) {
		a.store.SetFirstAnalysisPending(true)
	}

	name := result.FirstName
	if name == "" {
		name = email
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", name)

	if snap := a.store.Snapshot(); snap.IsAnalyzing && snap.ResourceID != nil {
		fmt.Fprintf(cmd.OutOrStdout(),
			"An analysis for %s is still in flight. Run 'brandpulse analyze %s' to watch its progress.\n",
			*snap.ResourceID, *snap.ResourceID)
	}

	return nil
}

// cacheAccountData fetches the account's products and applications and
// stores them in the vault so later commands can resolve defaults without
// a network round trip. Failures are non-fatal: the data is refetched on
// demand.
func cacheAccountData(ctx context.Context, a *app) []model.Product {
	products, err := a.client.ListProducts(ctx)
	if err != nil {
		a.logger.Warn("failed to cache products", "error", err)
	} else if raw, err := json.Marshal(products); err == nil {
		a.vault.SetProducts(string(raw))
	}

	apps, err := a.client.ListApplications(ctx)
	if err != nil {
		a.logger.Warn("failed to cache applications", "error", err)
	} else if raw, err := json.Marshal(apps); err == nil {
		a.vault.SetApplications(string(raw))
	}

	return products
}

// hasAnalyzedProduct reports whether any product has a completed analysis.
func hasAnalyzedProduct(products []model.Product) bool {
	for _, p := range products {
		if p.Analyzed {
			return true
		}
	}
	return false
}
