package main

import (
	"context"
	"fmt"
	"strings"

	"wayfinder/internal/store"
	"wayfinder/internal/store/postgres"
	"wayfinder/internal/store/sqlite"
)

// openStore picks the backend from the DSN scheme.
func openStore(ctx context.Context, dsn string) (store.Store, error) {
	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		client, err := sqlite.New(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return client, nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		client, err := postgres.New(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported database dsn %q: expected sqlite:// or postgres://", dsn)
	}
}
