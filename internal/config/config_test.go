package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultNormalizesAndValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Matching.AcceptThreshold != 0.80 {
		t.Fatalf("unexpected accept threshold %v", cfg.Matching.AcceptThreshold)
	}
	if cfg.Matching.BatchSize != 10 {
		t.Fatalf("unexpected batch size %d", cfg.Matching.BatchSize)
	}
	if !filepath.IsAbs(cfg.Paths.Database) {
		t.Fatalf("expected expanded database path, got %q", cfg.Paths.Database)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "relink.toml")
	content := `
[paths]
catalog_file = "` + filepath.Join(dir, "catalog.csv") + `"
database = "` + filepath.Join(dir, "records.db") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"
report_dir = "` + filepath.Join(dir, "reports") + `"
plan_dir = "` + filepath.Join(dir, "plans") + `"

[matching]
accept_threshold = 0.9
batch_size = 25
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != path {
		t.Fatalf("expected resolved path %q, got %q", path, resolved)
	}
	if cfg.Matching.AcceptThreshold != 0.9 {
		t.Fatalf("expected accept threshold 0.9, got %v", cfg.Matching.AcceptThreshold)
	}
	if cfg.Matching.BatchSize != 25 {
		t.Fatalf("expected batch size 25, got %d", cfg.Matching.BatchSize)
	}
	// Untouched sections keep defaults.
	if cfg.Matching.PlanThreshold != 0.85 {
		t.Fatalf("expected default plan threshold, got %v", cfg.Matching.PlanThreshold)
	}
	if cfg.Plan.Visibility != "private" {
		t.Fatalf("expected default visibility, got %q", cfg.Plan.Visibility)
	}
}

func TestValidateRejectsBadThresholds(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{
			name:   "threshold above one",
			mutate: func(c *Config) { c.Matching.AcceptThreshold = 1.5 },
			want:   "accept_threshold",
		},
		{
			name:   "review floor above threshold",
			mutate: func(c *Config) { c.Matching.ReviewFloor = 0.95 },
			want:   "review_floor",
		},
		{
			name:   "bad visibility",
			mutate: func(c *Config) { c.Plan.Visibility = "everyone" },
			want:   "visibility",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			if err := cfg.normalize(); err != nil {
				t.Fatalf("normalize: %v", err)
			}
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestCatalogFileEnvFallback(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RELINK_CATALOG", filepath.Join(dir, "catalog.csv"))

	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Paths.CatalogFile != filepath.Join(dir, "catalog.csv") {
		t.Fatalf("expected env fallback, got %q", cfg.Paths.CatalogFile)
	}
}
