package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hungrypeople/feast/internal/config"
	"github.com/hungrypeople/feast/internal/storage"
)

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed policy rules and sample catalog data",
		Long: `Load the default policy rules and, optionally, a small sample
venue and event catalog for development.`,
		RunE: runSeed,
	}

	cmd.Flags().Bool("samples", false, "also load the sample venue and event catalog")

	return cmd
}

func runSeed(cmd *cobra.Command, _ []string) error {
	samples, _ := cmd.Flags().GetBool("samples")
	cfg := config.Load()
	ctx := cmd.Context()

	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	rules := storage.DefaultPolicyRules()
	if err := store.SeedPolicyRules(ctx, rules); err != nil {
		return fmt.Errorf("failed to seed policy rules: %w", err)
	}
	slog.Info("policy rules seeded", "count", len(rules))

	if samples {
		venues := storage.SampleVenues()
		if err := store.SaveVenues(ctx, venues); err != nil {
			return fmt.Errorf("failed to seed venues: %w", err)
		}
		events := storage.SampleEvents()
		if err := store.SaveEvents(ctx, events); err != nil {
			return fmt.Errorf("failed to seed events: %w", err)
		}
		slog.Info("sample catalog seeded", "venues", len(venues), "events", len(events))
	}

	return nil
}
