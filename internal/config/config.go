package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultFileName = "wayfinder.yaml"

type ProjectConfig struct {
	Project  string         `yaml:"project"`
	Version  int            `yaml:"version"`
	Database DatabaseConfig `yaml:"database"`
	Sources  []Source       `yaml:"sources"`
	Exclude  []string       `yaml:"exclude"`
	Routing  RoutingConfig  `yaml:"routing"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`

	// dir is the directory holding the config file; relative paths resolve
	// against it.
	dir string
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// Source is a named set of paths holding campus and building snapshot files.
type Source struct {
	Name  string   `yaml:"name"`
	Paths []string `yaml:"paths"`
}

type RoutingConfig struct {
	TransitSelection string `yaml:"transit_selection"`
	MissingConnector string `yaml:"missing_connector"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	applyDefaults(&cfg)
	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	cfg.dir = filepath.Dir(path)
	return &cfg, nil
}

// Resolve makes a source or exclude path absolute relative to the config file.
func (c *ProjectConfig) Resolve(path string) string {
	if filepath.IsAbs(path) || c.dir == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(c.dir, path)
}

// SourceRoots returns every configured source path, resolved.
func (c *ProjectConfig) SourceRoots() []string {
	var roots []string
	for _, src := range c.Sources {
		for _, p := range src.Paths {
			roots = append(roots, c.Resolve(p))
		}
	}
	return roots
}

func (c *ProjectConfig) ExcludePaths() []string {
	out := make([]string, 0, len(c.Exclude))
	for _, p := range c.Exclude {
		out = append(out, c.Resolve(p))
	}
	return out
}

func applyDefaults(cfg *ProjectConfig) {
	if cfg.Routing.TransitSelection == "" {
		cfg.Routing.TransitSelection = "hops"
	}
	if cfg.Routing.MissingConnector == "" {
		cfg.Routing.MissingConnector = "fail"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return fmt.Errorf("database dsn is required")
	}
	if len(cfg.Sources) == 0 {
		return fmt.Errorf("at least one source is required")
	}

	seen := make(map[string]struct{})
	for i, src := range cfg.Sources {
		if strings.TrimSpace(src.Name) == "" {
			return fmt.Errorf("source %d name is required", i)
		}
		if len(src.Paths) == 0 {
			return fmt.Errorf("source %d paths are required", i)
		}
		key := strings.ToLower(src.Name)
		if _, exists := seen[key]; exists {
			return fmt.Errorf("duplicate source name: %s", src.Name)
		}
		seen[key] = struct{}{}
	}

	switch cfg.Routing.TransitSelection {
	case "hops", "distance":
	default:
		return fmt.Errorf("routing transit_selection must be hops or distance, got %q", cfg.Routing.TransitSelection)
	}
	switch cfg.Routing.MissingConnector {
	case "fail", "partial":
	default:
		return fmt.Errorf("routing missing_connector must be fail or partial, got %q", cfg.Routing.MissingConnector)
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported log level: %s", cfg.Log.Level)
	}

	return nil
}
