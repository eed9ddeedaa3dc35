package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gauravorbit07-glitch/brandpulse/internal/analysis"
	"github.com/gauravorbit07-glitch/brandpulse/internal/api"
	"github.com/gauravorbit07-glitch/brandpulse/internal/config"
	applog "github.com/gauravorbit07-glitch/brandpulse/internal/log"
	"github.com/gauravorbit07-glitch/brandpulse/internal/storage"
	"github.com/gauravorbit07-glitch/brandpulse/internal/vault"
)

// app bundles the wired client components every command needs: the two
// storage scopes, the credential vault, the lifecycle store, and the
// backend client.
type app struct {
	cfg    *config.Config
	logger *slog.Logger

	persistent *storage.SQLiteMedium
	session    *storage.SQLiteMedium

	vault  *vault.Vault
	store  *analysis.Store
	client *api.Client
}

// buildConfig creates a Config from the config file and command flags.
// The config file is applied first so explicit flags win.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, err
	}

	if found := config.FindConfigFile(configPath); found != "" {
		cf, err := config.LoadConfigFile(found)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", found, err)
		}
		cf.Apply(cfg)
		cfg.ConfigFilePath = found
	} else if configPath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, configPath)
	}

	if v := os.Getenv("BRANDPULSE_ENDPOINT"); v != "" {
		cfg.APIEndpoint = v
	}
	if v := os.Getenv("BRANDPULSE_STORAGE_SECRET"); v != "" {
		cfg.StorageSecret = v
	}

	cfg.Verbose = getVerboseFlag(cmd)
	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger builds the sanitizing logger every command uses.
func setupLogger(verbose bool) *slog.Logger {
	return applog.NewSecureLogger(os.Stderr, verbose)
}

// newApp wires the client components from cfg.
// The caller owns calling close when done.
func newApp(cfg *config.Config, logger *slog.Logger) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	persistent, err := storage.OpenSQLite(cfg.DataDir, storage.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	session, err := storage.OpenSQLite(cfg.SessionDir, storage.DefaultOptions())
	if err != nil {
		_ = persistent.Close()
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	v, err := vault.New(session, persistent, cfg.StorageSecret)
	if err != nil {
		_ = persistent.Close()
		_ = session.Close()
		return nil, err
	}

	store := analysis.NewStore(persistent)

	// The user id lives encrypted in the vault, so the store cannot resolve
	// it from the raw medium on its own. Re-scope here so every invocation
	// after login picks up the account's own records.
	if id := v.UserID(); id != "" {
		store.SetUserID(id)
	}

	client := api.NewClient(cfg.APIEndpoint, cfg.Timeout,
		api.WithTokenSource(v.AccessToken),
		api.WithClientLogger(logger),
	)

	return &app{
		cfg:        cfg,
		logger:     logger,
		persistent: persistent,
		session:    session,
		vault:      v,
		store:      store,
		client:     client,
	}, nil
}

// close releases the storage handles.
func (a *app) close() {
	if err := a.session.Close(); err != nil {
		a.logger.Warn("failed to close session database", "error", err)
	}
	if err := a.persistent.Close(); err != nil {
		a.logger.Warn("failed to close state database", "error", err)
	}
}

// handleUnauthorized clears all local credential and lifecycle state when
// the backend rejects the session, then tells the user to log in again.
// Returns true when err was a credential failure.
func (a *app) handleUnauthorized(err error) bool {
	if !api.IsUnauthorized(err) {
		return false
	}
	a.logger.Warn("session rejected by backend, clearing local credentials")
	a.vault.ClearAll()
	a.store.ClearUserID()
	return true
}

// errLoggedOut is returned by commands that need a session when none exists.
var errLoggedOut = errors.New("not logged in: run 'brandpulse login' first")

// requireSession returns an error unless a bearer credential is available.
func (a *app) requireSession() error {
	if a.vault.AccessToken() == "" {
		return errLoggedOut
	}
	return nil
}
