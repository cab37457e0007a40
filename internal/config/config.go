package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains file and directory configuration.
type Paths struct {
	CatalogFile string `toml:"catalog_file"`
	Database    string `toml:"database"`
	LogDir      string `toml:"log_dir"`
	ReportDir   string `toml:"report_dir"`
	PlanDir     string `toml:"plan_dir"`
}

// Matching contains thresholds and batch sizing for the reconciliation engine.
type Matching struct {
	// AcceptThreshold is the minimum similarity score for a live or dry-run
	// match to be applied. Default: 0.80
	AcceptThreshold float64 `toml:"accept_threshold"`
	// PlanThreshold is the minimum score for plan emission. It is stricter
	// than AcceptThreshold because the generated script runs unattended.
	// Default: 0.85
	PlanThreshold float64 `toml:"plan_threshold"`
	// ReviewFloor is the minimum score for a rejected candidate to appear in
	// the manual-review list. Default: 0.5
	ReviewFloor float64 `toml:"review_floor"`
	// BatchSize is the default page size for reconcile runs. Default: 10
	BatchSize int `toml:"batch_size"`
}

// Plan contains defaults for records inserted by generated migration scripts.
type Plan struct {
	OwnerID    int64  `toml:"owner_id"`
	Visibility string `toml:"visibility"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for relink.
//
// Configuration sections by subsystem:
//   - Paths: catalog file, record database, log/report/plan directories
//   - Matching: similarity thresholds and batch sizing
//   - Plan: ownership defaults for bulk-inserted records
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Matching Matching `toml:"matching"`
	Plan     Plan     `toml:"plan"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/relink/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("relink.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a run needs to write into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LogDir, c.Paths.ReportDir, c.Paths.PlanDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if dir := filepath.Dir(c.Paths.Database); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create database directory %q: %w", dir, err)
		}
	}
	return nil
}

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeMatching()
	c.normalizePlan()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.CatalogFile == "" {
		if value, ok := os.LookupEnv("RELINK_CATALOG"); ok {
			c.Paths.CatalogFile = strings.TrimSpace(value)
		}
	}
	if strings.TrimSpace(c.Paths.CatalogFile) != "" {
		if c.Paths.CatalogFile, err = expandPath(c.Paths.CatalogFile); err != nil {
			return fmt.Errorf("paths.catalog_file: %w", err)
		}
	}
	if c.Paths.Database, err = expandPath(c.Paths.Database); err != nil {
		return fmt.Errorf("paths.database: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.ReportDir, err = expandPath(c.Paths.ReportDir); err != nil {
		return fmt.Errorf("paths.report_dir: %w", err)
	}
	if c.Paths.PlanDir, err = expandPath(c.Paths.PlanDir); err != nil {
		return fmt.Errorf("paths.plan_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeMatching() {
	if c.Matching.AcceptThreshold == 0 {
		c.Matching.AcceptThreshold = defaultAcceptThreshold
	}
	if c.Matching.PlanThreshold == 0 {
		c.Matching.PlanThreshold = defaultPlanThreshold
	}
	if c.Matching.ReviewFloor == 0 {
		c.Matching.ReviewFloor = defaultReviewFloor
	}
	if c.Matching.BatchSize <= 0 {
		c.Matching.BatchSize = defaultBatchSize
	}
}

func (c *Config) normalizePlan() {
	if c.Plan.OwnerID <= 0 {
		c.Plan.OwnerID = defaultPlanOwnerID
	}
	c.Plan.Visibility = strings.ToLower(strings.TrimSpace(c.Plan.Visibility))
	if c.Plan.Visibility == "" {
		c.Plan.Visibility = defaultPlanVisibility
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
