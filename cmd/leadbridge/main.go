package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brunovl/leadbridge/internal/config"
	"github.com/brunovl/leadbridge/internal/infra/database"
	"github.com/brunovl/leadbridge/internal/infra/sheets"
	"github.com/brunovl/leadbridge/internal/usecase"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "leadbridge",
		Short:   "LeadBridge - ad lead and call correlation sync",
		Version: Version,
	}

	rootCmd.AddCommand(dumpCallsCmd())
	rootCmd.AddCommand(syncLeadsCmd())
	rootCmd.AddCommand(syncCallsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env keeps the handles the subcommands share. The DB is nil unless
// DATABASE_URL is set.
type env struct {
	cfg   *config.Config
	db    *sql.DB
	store usecase.RowStore
}

func loadEnv(requiredKeys ...string) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Require(requiredKeys...); err != nil {
		return nil, err
	}

	e := &env{cfg: cfg}

	if cfg.DatabaseURL != "" {
		e.db, err = database.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
	}

	if cfg.RowStoreBackend == "postgres" {
		if e.db == nil {
			return nil, fmt.Errorf("ROWSTORE_BACKEND=postgres requires DATABASE_URL")
		}
		store := database.NewRowStore(e.db)
		if err := store.EnsureSchema(context.Background()); err != nil {
			return nil, err
		}
		e.store = store
	} else {
		if err := cfg.Require("GOOGLE_SHEETS_ID", "GOOGLE_SHEETS_ACCESS_TOKEN"); err != nil {
			return nil, err
		}
		e.store = sheets.NewClient(cfg.SheetsAccessToken, cfg.SpreadsheetID, "")
	}

	return e, nil
}

func (e *env) close() {
	if e.db != nil {
		e.db.Close()
	}
}

// runLogger returns nil when no database is configured; the use cases
// treat a nil run log as disabled.
func (e *env) runLogger() usecase.RunLogger {
	if e.db == nil {
		return nil
	}
	repo := database.NewRunLogRepository(e.db)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "run log disabled: %v\n", err)
		return nil
	}
	return repo
}
