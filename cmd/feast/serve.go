package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hungrypeople/feast/internal/config"
	"github.com/hungrypeople/feast/internal/server"
	"github.com/hungrypeople/feast/internal/storage"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Serve the venue catalog, recommendations and (when enabled) the
budget ledger over HTTP.`,
		RunE: runServe,
	}

	cmd.Flags().String("listen", ":5000", "listen address")
	cmd.Flags().Bool("ledger", false, "enable the budget ledger endpoints")
	_ = viper.BindPFlag("server.listen", cmd.Flags().Lookup("listen"))
	_ = viper.BindPFlag("server.ledger_enabled", cmd.Flags().Lookup("ledger"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()

	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(cmd.Context()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	return server.New(store, cfg).Run(cmd.Context())
}
