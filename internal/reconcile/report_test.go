package reconcile

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func TestSuccessRate(t *testing.T) {
	cases := []struct {
		name      string
		updated   int
		processed int
		want      string
	}{
		{"empty batch", 0, 0, "0%"},
		{"all matched", 5, 5, "100%"},
		{"half matched", 1, 2, "50%"},
		{"none matched", 0, 3, "0%"},
		{"truncates", 1, 3, "33%"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := successRate(tc.updated, tc.processed); got != tc.want {
				t.Fatalf("successRate(%d, %d) = %q, want %q", tc.updated, tc.processed, got, tc.want)
			}
		})
	}
}

func TestRemainingAndNextOffset(t *testing.T) {
	report := newReport("dry-run", 10, 5, 0.8)
	report.TotalEligible = 18
	report.Processed = 5

	if got := report.Remaining(); got != 3 {
		t.Fatalf("Remaining() = %d, want 3", got)
	}
	if got := report.NextOffset(); got != 15 {
		t.Fatalf("NextOffset() = %d, want 15", got)
	}

	// A final partial batch leaves nothing behind.
	report.StartOffset = 15
	report.Processed = 3
	if got := report.Remaining(); got != 0 {
		t.Fatalf("Remaining() after final batch = %d, want 0", got)
	}
}

func TestWriteProducesTimestampedArtifact(t *testing.T) {
	report := newReport("live", 0, 10, 0.8)
	report.Processed = 2
	report.Updated = 1
	report.finalize()

	dir := t.TempDir()
	path, err := report.Write(dir)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	base := strings.TrimPrefix(path, dir+string(os.PathSeparator))
	if !strings.HasPrefix(base, "reconcile-") || !strings.HasSuffix(base, ".json") {
		t.Fatalf("unexpected artifact name %q", base)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	var decoded Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal artifact: %v", err)
	}
	if decoded.RunID != report.RunID {
		t.Fatalf("run id mismatch: %q vs %q", decoded.RunID, report.RunID)
	}
	if decoded.SuccessRate != "50%" {
		t.Fatalf("success rate = %q, want 50%%", decoded.SuccessRate)
	}
}

func TestRenderSummaryCapsReviewCandidates(t *testing.T) {
	report := newReport("dry-run", 0, 10, 0.8)
	report.TotalEligible = 10
	report.Processed = 10
	for i := 0; i < 8; i++ {
		report.Review = append(report.Review, ReviewCandidate{
			RecordID: int64(i + 1),
			Title:    "Some Title",
			Closest:  "some_file.pdf",
			Score:    0.6,
		})
	}
	report.NotFound = 8
	report.finalize()

	var out strings.Builder
	report.RenderSummary(&out)
	rendered := out.String()

	if !strings.Contains(rendered, "Needs manual review (8 candidates)") {
		t.Fatalf("summary missing review header:\n%s", rendered)
	}
	if !strings.Contains(rendered, "+ 3 more in report artifact") {
		t.Fatalf("summary must cap the table at %d rows:\n%s", reviewSampleLimit, rendered)
	}
	if strings.Count(rendered, "some_file.pdf") != reviewSampleLimit {
		t.Fatalf("expected %d table rows:\n%s", reviewSampleLimit, rendered)
	}
}

func TestRenderSummarySuggestsResume(t *testing.T) {
	report := newReport("live", 0, 10, 0.8)
	report.TotalEligible = 25
	report.Processed = 10
	report.Updated = 10
	report.finalize()

	var out strings.Builder
	report.RenderSummary(&out)
	rendered := out.String()

	if !strings.Contains(rendered, "15 eligible records remain; continue with --start 10") {
		t.Fatalf("summary missing resume hint:\n%s", rendered)
	}
}
