package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"wayfinder/internal/api"
	"wayfinder/internal/observability"
	"wayfinder/internal/route"
	"wayfinder/internal/snapshot"
)

func httpCmd() *cobra.Command {
	var addr string
	var watch bool
	cmd := &cobra.Command{
		Use:   "http",
		Short: "Serve the routing API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHTTP(addr, watch)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to server.addr from the config)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Reload the snapshot files named by --files when they change")
	return cmd
}

func runHTTP(addr string, watch bool) error {
	if watch && len(snapshotFiles) == 0 {
		return fmt.Errorf("--watch needs --files")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	metrics := observability.NewCollector("wayfinder")
	repo, closeRepo, err := openRepository(ctx, cfg, logger, snapshot.WithReloadHook(metrics.ObserveReload))
	if err != nil {
		return err
	}
	defer closeRepo()

	planner := newPlanner(cfg, repo, logger, route.WithRecorder(metrics))
	server := api.NewServer(planner,
		api.WithLogger(logger),
		api.WithMetrics(metrics),
		api.WithAllowedOrigins(cfg.Server.AllowedOrigins),
		api.WithBuildings(repo),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.ListenAndServe(ctx, addr)
	})
	if watched, ok := repo.(*snapshot.Repository); ok && watch {
		g.Go(func() error {
			return watched.Watch(ctx)
		})
	}
	return g.Wait()
}
