package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hungrypeople/feast/internal/config"
	"github.com/hungrypeople/feast/internal/ingest"
	"github.com/hungrypeople/feast/internal/storage"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import venue and event catalogs from CSV files",
		Long: `Import the certified-venue catalog and the event schedule from
CSV exports. Files may be UTF-8 or CP949 encoded.`,
		RunE: runImport,
	}

	cmd.Flags().String("venues", "", "path to the venue CSV file")
	cmd.Flags().String("events", "", "path to the event CSV file")

	return cmd
}

func runImport(cmd *cobra.Command, _ []string) error {
	venuesPath, _ := cmd.Flags().GetString("venues")
	eventsPath, _ := cmd.Flags().GetString("events")
	if venuesPath == "" && eventsPath == "" {
		return fmt.Errorf("at least one of --venues or --events is required")
	}

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

	if venuesPath != "" {
		venues, err := ingest.LoadVenues(venuesPath)
		if err != nil {
			return fmt.Errorf("failed to load venues: %w", err)
		}
		if err := store.SaveVenues(ctx, venues); err != nil {
			return fmt.Errorf("failed to save venues: %w", err)
		}
		slog.Info("venues imported", "file", venuesPath, "count", len(venues))
	}

	if eventsPath != "" {
		events, err := ingest.LoadEvents(eventsPath)
		if err != nil {
			return fmt.Errorf("failed to load events: %w", err)
		}
		if err := store.SaveEvents(ctx, events); err != nil {
			return fmt.Errorf("failed to save events: %w", err)
		}
		slog.Info("events imported", "file", eventsPath, "count", len(events))
	}

	return nil
}
