package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"relink/internal/catalog"
)

// NewCatalogIndex builds an in-memory index from file names, deriving URLs
// from the names.
func NewCatalogIndex(t testing.TB, names ...string) *catalog.Index {
	t.Helper()

	entries := make([]catalog.Entry, 0, len(names))
	for _, name := range names {
		entries = append(entries, catalog.Entry{
			Name: name,
			URL:  "https://files.example.com/" + name,
		})
	}
	return catalog.NewIndex(entries)
}

// WriteCatalogFile writes a CSV catalog with the given file names into a
// temp directory and returns its path.
func WriteCatalogFile(t testing.TB, names ...string) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("Name,URL,Size,ModTime\n")
	for _, name := range names {
		b.WriteString(name)
		b.WriteString(",https://files.example.com/")
		b.WriteString(name)
		b.WriteString(",1MB,2025-01-01\n")
	}

	path := filepath.Join(t.TempDir(), "catalog.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write catalog file: %v", err)
	}
	return path
}
