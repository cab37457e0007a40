package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestImportReconcileRoundTrip(t *testing.T) {
	env := setupCLITestEnv(t, "algebra_basics.pdf", "chemistry_fundamentals.pdf")
	csvPath := env.writeImportCSV(t,
		`Algebra Basics,NaN,`,
		`Chemistry Fundamentals,Jane Doe,`,
		`Unmatched Poetry Collection,,`,
	)

	out, _, err := runCLI(t, env.configPath, "records", "import", csvPath)
	if err != nil {
		t.Fatalf("records import: %v", err)
	}
	requireContains(t, out, "Imported 3 records")

	// Dry run must report matches without consuming eligibility.
	out, _, err = runCLI(t, env.configPath, "reconcile", "--dry-run", "--limit", "10")
	if err != nil {
		t.Fatalf("reconcile --dry-run: %v", err)
	}
	requireContains(t, out, "Updated: 2")
	requireContains(t, out, "(dry-run)")

	out, _, err = runCLI(t, env.configPath, "records", "stats")
	if err != nil {
		t.Fatalf("records stats: %v", err)
	}
	requireContains(t, out, "Awaiting reconciliation: 3")

	// Live run applies the same matches.
	out, _, err = runCLI(t, env.configPath, "reconcile", "--limit", "10")
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	requireContains(t, out, "Updated: 2")
	requireContains(t, out, "Report written to")

	out, _, err = runCLI(t, env.configPath, "records", "stats")
	if err != nil {
		t.Fatalf("records stats: %v", err)
	}
	requireContains(t, out, "Linked: 2")
	requireContains(t, out, "Awaiting reconciliation: 1")

	reports, err := filepath.Glob(filepath.Join(env.baseDir, "reports", "reconcile-*.json"))
	if err != nil || len(reports) == 0 {
		t.Fatalf("expected report artifacts in %s (err %v)", env.baseDir, err)
	}
}

func TestResolveThreshold(t *testing.T) {
	cases := []struct {
		name string
		flag float64
		def  float64
		want float64
	}{
		{"unset falls back to config", 0, 0.8, 0.8},
		{"fraction passes through", 0.65, 0.8, 0.65},
		{"percent is scaled", 80, 0.8, 0.8},
		{"other percent is scaled", 85, 0.8, 0.85},
		{"one is the top of the fraction scale", 1, 0.8, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolveThreshold(tc.flag, tc.def); got != tc.want {
				t.Fatalf("resolveThreshold(%v, %v) = %v, want %v", tc.flag, tc.def, got, tc.want)
			}
		})
	}
}

func TestReconcileThresholdAcceptsPercent(t *testing.T) {
	env := setupCLITestEnv(t, "algebra_basics.pdf")
	csvPath := env.writeImportCSV(t, `Algebra Basics,,`)
	if _, _, err := runCLI(t, env.configPath, "records", "import", csvPath); err != nil {
		t.Fatalf("records import: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "reconcile", "--dry-run", "--threshold", "80")
	if err != nil {
		t.Fatalf("reconcile --threshold 80: %v", err)
	}
	requireContains(t, out, "Updated: 1")
}

func TestPlanCommandWritesScripts(t *testing.T) {
	env := setupCLITestEnv(t, "algebra_basics.pdf", "world_history.pdf")
	csvPath := env.writeImportCSV(t, `Algebra Basics,,`)

	if _, _, err := runCLI(t, env.configPath, "records", "import", csvPath); err != nil {
		t.Fatalf("records import: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "plan")
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	requireContains(t, out, "1 UPDATE statements written to")
	requireContains(t, out, "1 INSERT statements written to")

	updates, err := os.ReadFile(filepath.Join(env.baseDir, "plans", "plan_updates.sql"))
	if err != nil {
		t.Fatalf("read plan_updates.sql: %v", err)
	}
	if !strings.Contains(string(updates), "algebra_basics.pdf") {
		t.Fatalf("expected matched URL in updates script:\n%s", updates)
	}

	inserts, err := os.ReadFile(filepath.Join(env.baseDir, "plans", "plan_inserts.sql"))
	if err != nil {
		t.Fatalf("read plan_inserts.sql: %v", err)
	}
	if !strings.Contains(string(inserts), "World History") {
		t.Fatalf("expected display title in inserts script:\n%s", inserts)
	}

	// Plans never touch the store.
	out, _, err = runCLI(t, env.configPath, "records", "stats")
	if err != nil {
		t.Fatalf("records stats: %v", err)
	}
	requireContains(t, out, "Awaiting reconciliation: 1")
}

func TestCatalogSearchRanksEntries(t *testing.T) {
	env := setupCLITestEnv(t, "algebra_basics.pdf", "world_history.pdf")

	out, _, err := runCLI(t, env.configPath, "catalog", "search", "Algebra Basics")
	if err != nil {
		t.Fatalf("catalog search: %v", err)
	}
	requireContains(t, out, "algebra_basics.pdf")
	requireContains(t, out, "1.00")
}
