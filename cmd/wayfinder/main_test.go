package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"wayfinder/internal/config"
	"wayfinder/internal/route"
	"wayfinder/internal/snapshot"
	"wayfinder/internal/validate"
)

func TestParseParamPairs(t *testing.T) {
	params, err := parseParamPairs([]string{"1=A", " 2 = B101 ", ""})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if params["1"] != "A" || params["2"] != "B101" || len(params) != 2 {
		t.Fatalf("unexpected params: %v", params)
	}

	if _, err := parseParamPairs([]string{"novalue"}); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := parseParamPairs([]string{"=x"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestOpenStoreRejectsUnknownScheme(t *testing.T) {
	if _, err := openStore(context.Background(), "mysql://localhost/campus"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoadBatch(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := writeTempFile(t, dir, "batch.yaml", "- start: gate\n  target: { location_id: admin }\n- start: gate\n  target: { room: A201 }\n")
		requests, err := loadBatch(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(requests) != 2 {
			t.Fatalf("expected 2 requests, got %d", len(requests))
		}
		if requests[0].Target != route.ToLocation("admin") || requests[1].Target != route.ToRoom("A201") {
			t.Fatalf("unexpected targets: %+v", requests)
		}
	})

	t.Run("missing target", func(t *testing.T) {
		path := writeTempFile(t, dir, "no_target.yaml", "- start: gate\n")
		if _, err := loadBatch(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("missing start", func(t *testing.T) {
		path := writeTempFile(t, dir, "no_start.yaml", "- target: { room: A201 }\n")
		if _, err := loadBatch(path); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestIndoorOptions(t *testing.T) {
	cfg := &config.ProjectConfig{Routing: config.RoutingConfig{TransitSelection: "distance", MissingConnector: "partial"}}
	got := indoorOptions(cfg)
	if got.TransitSelection != route.SelectByDistance || got.MissingConnector != route.ConnectorPartial {
		t.Fatalf("unexpected options: %+v", got)
	}
}

func TestInitScaffoldsRoutableProject(t *testing.T) {
	t.Chdir(t.TempDir())
	configPath = "wayfinder.yaml"

	if err := runInit("demo", "sqlite://./wayfinder.db"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := runInit("demo", "sqlite://./wayfinder.db"); err == nil {
		t.Fatalf("expected error on second init")
	}

	cfg, err := config.LoadProjectConfig(configPath)
	if err != nil {
		t.Fatalf("loading scaffolded config: %v", err)
	}

	repo, err := snapshot.Open(cfg.SourceRoots(), cfg.ExcludePaths())
	if err != nil {
		t.Fatalf("loading scaffolded maps: %v", err)
	}

	report, err := validate.Run(context.Background(), repo, nil)
	if err != nil {
		t.Fatalf("validating scaffolded maps: %v", err)
	}
	if report.HasErrors() {
		t.Fatalf("expected no validation errors, got %+v", report.Issues)
	}

	lr, err := newPlanner(cfg, repo, zap.NewNop()).Lecture(context.Background(), "intro", "gate")
	if err != nil {
		t.Fatalf("routing to lecture: %v", err)
	}
	if lr.Outdoor.TotalDistance != 200 {
		t.Fatalf("expected 200 m outdoors, got %v", lr.Outdoor.TotalDistance)
	}
	if lr.Indoor == nil || lr.Indoor.TotalDistance != 32 {
		t.Fatalf("unexpected indoor leg: %+v", lr.Indoor)
	}
}

func writeTempFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}
