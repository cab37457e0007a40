// Package testsupport provides shared fixtures for relink tests: temp-backed
// record stores and catalog indexes.
package testsupport

import (
	"context"
	"path/filepath"
	"testing"

	"relink/internal/records"
)

// MustOpenStore opens a records.Store backed by a temp file and registers
// cleanup.
func MustOpenStore(t testing.TB) *records.Store {
	t.Helper()

	store, err := records.Open(filepath.Join(t.TempDir(), "records.db"))
	if err != nil {
		t.Fatalf("records.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// SeedRecord inserts a record, mapping empty author/url to NULL.
func SeedRecord(t testing.TB, store *records.Store, title, author, url string) *records.Record {
	t.Helper()

	record, err := store.Insert(context.Background(), &records.Record{
		Title:       title,
		Author:      records.CleanOptional(author),
		ResourceURL: records.CleanOptional(url),
	})
	if err != nil {
		t.Fatalf("store.Insert(%q): %v", title, err)
	}
	return record
}
