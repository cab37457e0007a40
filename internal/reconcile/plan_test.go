package reconcile_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"relink/internal/logging"
	"relink/internal/reconcile"
	"relink/internal/testsupport"
)

func newPlanner(t *testing.T, store reconcile.RecordStore, names ...string) *reconcile.Planner {
	t.Helper()
	index := testsupport.NewCatalogIndex(t, names...)
	planner, err := reconcile.NewPlanner(store, index, logging.NewNop(), reconcile.PlanOptions{
		Threshold:   0.85,
		ReviewFloor: 0.5,
		OwnerID:     1,
		Visibility:  "private",
	})
	if err != nil {
		t.Fatalf("reconcile.NewPlanner: %v", err)
	}
	return planner
}

func TestPlanEmitsUpdateForAcceptedMatch(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	record := testsupport.SeedRecord(t, store, "Chemistry Fundamentals", "", "")

	planner := newPlanner(t, store, "chemistry_fundamentals.pdf")
	plan, report, err := planner.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(plan.Updates) != 1 {
		t.Fatalf("expected one UPDATE, got %v", plan.Updates)
	}
	if len(plan.Inserts) != 0 {
		t.Fatalf("matched entries must not produce INSERTs, got %v", plan.Inserts)
	}
	if report.Updated != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}

	update := plan.Updates[0]
	for _, want := range []string{
		"UPDATE books SET resource_url = 'https://files.example.com/chemistry_fundamentals.pdf'",
		"updated_at = '",
		"WHERE id = ",
		"AND (resource_url IS NULL OR resource_url = '')",
	} {
		if !strings.Contains(update, want) {
			t.Fatalf("UPDATE missing %q:\n%s", want, update)
		}
	}
	// The eligibility guard makes the statement safe to re-run.
	if !strings.Contains(update, "WHERE id = ") {
		t.Fatalf("UPDATE must target the record id %d:\n%s", record.ID, update)
	}
}

func TestPlanInsertsUnmatchedEntryWithEscapedQuotes(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	testsupport.SeedRecord(t, store, "World History", "", "")

	planner := newPlanner(t, store, "world_history.pdf", "don't_panic_physics.pdf")
	plan, _, err := planner.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(plan.Updates) != 1 {
		t.Fatalf("expected one UPDATE, got %v", plan.Updates)
	}
	if len(plan.Inserts) != 1 {
		t.Fatalf("expected exactly one INSERT for the unmatched entry, got %v", plan.Inserts)
	}

	insert := plan.Inserts[0]
	if !strings.Contains(insert, "INSERT INTO books") {
		t.Fatalf("unexpected INSERT:\n%s", insert)
	}
	// Single quotes in the display title must be doubled.
	if !strings.Contains(insert, "Don''T Panic Physics") && !strings.Contains(insert, "''") {
		t.Fatalf("expected escaped single quote in INSERT:\n%s", insert)
	}
	if strings.Contains(insert, "world_history") {
		t.Fatalf("matched entry leaked into INSERTs:\n%s", insert)
	}
	for _, want := range []string{"owner_id", "visibility", "'private'", "https://files.example.com/don't_panic_physics.pdf"} {
		if want == "https://files.example.com/don't_panic_physics.pdf" {
			want = "https://files.example.com/don''t_panic_physics.pdf"
		}
		if !strings.Contains(insert, want) {
			t.Fatalf("INSERT missing %q:\n%s", want, insert)
		}
	}
}

func TestPlanDoesNotMutateStore(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	testsupport.SeedRecord(t, store, "Chemistry Fundamentals", "", "")

	planner := newPlanner(t, store, "chemistry_fundamentals.pdf")
	if _, _, err := planner.Build(context.Background()); err != nil {
		t.Fatalf("Build: %v", err)
	}

	count, err := store.CountEligible(context.Background())
	if err != nil {
		t.Fatalf("CountEligible: %v", err)
	}
	if count != 1 {
		t.Fatal("plan emission must not write resource links")
	}
}

func TestWriteScriptsWrapsStatementsInTransaction(t *testing.T) {
	plan := &reconcile.Plan{
		Updates: []string{
			"UPDATE books SET resource_url = 'u1' WHERE id = 1 AND (resource_url IS NULL OR resource_url = '');",
			"UPDATE books SET resource_url = 'u2' WHERE id = 2 AND (resource_url IS NULL OR resource_url = '');",
		},
		Inserts: []string{
			"INSERT INTO books (title) VALUES ('t');",
		},
	}

	dir := t.TempDir()
	updatesPath, insertsPath, err := plan.WriteScripts(dir)
	if err != nil {
		t.Fatalf("WriteScripts: %v", err)
	}
	if filepath.Dir(updatesPath) != dir || filepath.Dir(insertsPath) != dir {
		t.Fatalf("scripts written outside %s: %s, %s", dir, updatesPath, insertsPath)
	}

	updates, err := os.ReadFile(updatesPath)
	if err != nil {
		t.Fatalf("read updates script: %v", err)
	}
	content := string(updates)
	if !strings.HasPrefix(content, "BEGIN;\n") {
		t.Fatalf("script must open a transaction:\n%s", content)
	}
	if !strings.Contains(content, "COMMIT;\n") {
		t.Fatalf("script must commit:\n%s", content)
	}
	if !strings.Contains(content, "-- 2 statements") {
		t.Fatalf("script must end with the statement count:\n%s", content)
	}

	inserts, err := os.ReadFile(insertsPath)
	if err != nil {
		t.Fatalf("read inserts script: %v", err)
	}
	if !strings.Contains(string(inserts), "-- 1 statements") {
		t.Fatalf("inserts script missing statement count:\n%s", inserts)
	}
}
