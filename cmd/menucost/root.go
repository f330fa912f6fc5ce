package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/menucost/internal/catalog"
	"github.com/Simplici0/menucost/internal/config"
	"github.com/Simplici0/menucost/internal/db"
	"github.com/Simplici0/menucost/internal/logging"
)

type app struct {
	cfg           config.Config
	dbPath        string
	logLevel      string
	migrationsDir string

	log   *zap.Logger
	db    *sqlx.DB
	store *catalog.Store
}

func newRootCmd(cfg config.Config) *cobra.Command {
	a := &app{cfg: cfg}

	root := &cobra.Command{
		Use:   "menucost",
		Short: "Administer the menu costing database",
		Long: `menucost runs maintenance tasks against the menu costing database.

Examples:
  menucost migrate
  menucost seed
  menucost report --email chef@example.com
  menucost import --email chef@example.com precios.xlsx
  menucost export --email chef@example.com --mode legacy menu.xlsx`,
		SilenceUsage:      true,
		PersistentPreRunE: a.open,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.dbPath, "db", cfg.DBPath, "SQLite database path")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.migrationsDir, "migrations", "migrations", "directory with goose SQL migrations")

	root.AddCommand(
		newMigrateCmd(a),
		newSeedCmd(a),
		newReportCmd(a),
		newImportCmd(a),
		newExportCmd(a),
	)
	return root
}

func (a *app) open(cmd *cobra.Command, _ []string) error {
	logger, err := logging.New(logging.Config{
		Level:  a.logLevel,
		Format: a.cfg.LogFormat,
		Output: "stderr",
	})
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	a.log = logger

	database, err := db.Open(a.dbPath)
	if err != nil {
		return err
	}
	a.db = database
	a.store = catalog.New(database, catalog.Options{
		DefaultCurrency:   a.cfg.DefaultCurrency,
		DefaultTaxPercent: a.cfg.DefaultTaxPercent,
	})
	a.log.Debug("database opened", zap.String("path", a.dbPath), zap.String("command", cmd.Name()))
	return nil
}

func (a *app) close() error {
	if a.log != nil {
		_ = a.log.Sync()
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// userID resolves the account a command acts on.
func (a *app) userID(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", errors.New("--email is required")
	}
	user, err := a.store.UserByEmail(ctx, email)
	if errors.Is(err, catalog.ErrNotFound) {
		return "", fmt.Errorf("no user registered with email %q", email)
	}
	if err != nil {
		return "", err
	}
	return user.ID, nil
}
