package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wayfinder/internal/ingest"
)

var ingestFull bool

func ingestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Synchronise the database with the snapshot files",
		RunE:  runIngest,
	}
	cmd.Flags().BoolVar(&ingestFull, "full", false, "Force full re-ingestion (ignore incremental hashes)")
	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	db, err := openStore(ctx, cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	result, err := ingest.Run(ctx, cfg, db, ingest.Options{Full: ingestFull, Logger: logger})
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "Ingestion complete.")
	fmt.Fprintf(os.Stdout, "  Documents upserted:   %d\n", result.DocumentsUpserted)
	fmt.Fprintf(os.Stdout, "  Locations upserted:   %d\n", result.LocationsUpserted)
	fmt.Fprintf(os.Stdout, "  Connections upserted: %d\n", result.ConnectionsUpserted)
	fmt.Fprintf(os.Stdout, "  Points upserted:      %d\n", result.PointsUpserted)
	fmt.Fprintf(os.Stdout, "  Sources removed:      %d\n", result.SourcesRemoved)
	fmt.Fprintf(os.Stdout, "  Files skipped:        %d\n", result.FilesSkipped)

	if len(result.Errors) > 0 {
		fmt.Fprintf(os.Stdout, "\nErrors (%d):\n", len(result.Errors))
		for _, item := range result.Errors {
			fmt.Fprintf(os.Stdout, "  - %v\n", item)
		}
		return fmt.Errorf("ingestion completed with errors")
	}

	return nil
}
