package main

import (
	"context"
	"errors"
	"io/fs"

	"go.uber.org/zap"

	"wayfinder/internal/config"
	"wayfinder/internal/observability"
	"wayfinder/internal/route"
	"wayfinder/internal/snapshot"
	"wayfinder/internal/store"
)

// repository is what every routing command reads from: the database or the
// snapshot files named by --files.
type repository interface {
	route.Repository
	ListBuildings(ctx context.Context) ([]store.BuildingSummary, error)
}

// loadConfig reads --config. With --files the config is optional and the
// defaults apply when it is missing.
func loadConfig() (*config.ProjectConfig, error) {
	cfg, err := config.LoadProjectConfig(configPath)
	if err == nil {
		return cfg, nil
	}
	if len(snapshotFiles) > 0 && errors.Is(err, fs.ErrNotExist) {
		return &config.ProjectConfig{
			Routing: config.RoutingConfig{TransitSelection: string(route.SelectByHops), MissingConnector: string(route.ConnectorFail)},
			Server:  config.ServerConfig{Addr: ":8080"},
			Log:     config.LogConfig{Level: "info"},
		}, nil
	}
	return nil, err
}

func newLogger(cfg *config.ProjectConfig) (*zap.Logger, error) {
	return observability.NewLogger(cfg.Log)
}

// openRepository opens the snapshot files when --files is set and the
// configured database otherwise. The returned func releases it.
func openRepository(ctx context.Context, cfg *config.ProjectConfig, logger *zap.Logger, opts ...snapshot.Option) (repository, func(), error) {
	if len(snapshotFiles) > 0 {
		opts = append([]snapshot.Option{snapshot.WithLogger(logger)}, opts...)
		repo, err := snapshot.Open(snapshotFiles, cfg.ExcludePaths(), opts...)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {}, nil
	}

	db, err := openStore(ctx, cfg.Database.DSN)
	if err != nil {
		return nil, nil, err
	}
	return db, func() {
		if err := db.Close(ctx); err != nil {
			logger.Warn("closing database", zap.Error(err))
		}
	}, nil
}

func indoorOptions(cfg *config.ProjectConfig) route.IndoorOptions {
	return route.IndoorOptions{
		TransitSelection: route.TransitSelection(cfg.Routing.TransitSelection),
		MissingConnector: route.MissingConnectorMode(cfg.Routing.MissingConnector),
	}
}

func newPlanner(cfg *config.ProjectConfig, repo route.Repository, logger *zap.Logger, opts ...route.PlannerOption) *route.Planner {
	opts = append([]route.PlannerOption{
		route.WithIndoorOptions(indoorOptions(cfg)),
		route.WithLogger(logger),
	}, opts...)
	return route.NewPlanner(repo, opts...)
}

// plannerFor wires the config, logger and repository every routing command
// needs.
func plannerFor(ctx context.Context) (*route.Planner, repository, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	repo, closeRepo, err := openRepository(ctx, cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, nil, err
	}
	return newPlanner(cfg, repo, logger), repo, func() {
		closeRepo()
		_ = logger.Sync()
	}, nil
}
