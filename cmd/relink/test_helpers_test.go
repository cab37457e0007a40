package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir     string
	configPath  string
	catalogPath string
	importPath  string
}

func setupCLITestEnv(t *testing.T, catalogNames ...string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	catalogPath := filepath.Join(base, "catalog.csv")
	writeTestCatalog(t, catalogPath, catalogNames)

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, base, catalogPath)

	return &cliTestEnv{
		baseDir:     base,
		configPath:  configPath,
		catalogPath: catalogPath,
	}
}

func writeTestCatalog(t *testing.T, path string, names []string) {
	t.Helper()
	var b strings.Builder
	b.WriteString("Name,URL,Size,ModTime\n")
	for _, name := range names {
		fmt.Fprintf(&b, "%s,https://files.example.com/%s,1MB,2025-01-01\n", name, name)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
}

func writeTestConfig(t *testing.T, path, base, catalogPath string) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
catalog_file = %q
database = %q
log_dir = %q
report_dir = %q
plan_dir = %q

[logging]
level = "error"
`,
		catalogPath,
		filepath.Join(base, "records.db"),
		filepath.Join(base, "logs"),
		filepath.Join(base, "reports"),
		filepath.Join(base, "plans"),
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func (env *cliTestEnv) writeImportCSV(t *testing.T, rows ...string) string {
	t.Helper()
	content := "Title,Author,Resource_URL\n" + strings.Join(rows, "\n") + "\n"
	path := filepath.Join(env.baseDir, "records.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write import csv: %v", err)
	}
	env.importPath = path
	return path
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
