package reconcile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// reviewSampleLimit caps how many manual-review candidates the console
// summary shows; the JSON artifact always carries the full list.
const reviewSampleLimit = 5

// RecordError captures one per-record recoverable failure.
type RecordError struct {
	RecordID int64  `json:"record_id"`
	Title    string `json:"title"`
	Message  string `json:"message"`
}

// ReviewCandidate is a rejected match worth human triage: it scored above
// the review floor but below the acceptance threshold.
type ReviewCandidate struct {
	RecordID int64   `json:"record_id"`
	Title    string  `json:"title"`
	Closest  string  `json:"closest_match"`
	URL      string  `json:"url,omitempty"`
	Score    float64 `json:"score"`
}

// Report summarizes one reconciliation run. It is created when the run
// completes and never mutated afterward.
type Report struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Mode        string    `json:"mode"`

	StartOffset   int   `json:"start_offset"`
	BatchSize     int   `json:"batch_size"`
	TotalEligible int64 `json:"total_eligible"`
	Threshold     float64 `json:"threshold"`

	Processed int `json:"processed"`
	Updated   int `json:"updated"`
	NotFound  int `json:"not_found"`

	Errors []RecordError     `json:"errors"`
	Review []ReviewCandidate `json:"needs_review"`

	SuccessRate string `json:"success_rate"`
}

func newReport(mode string, start, limit int, threshold float64) *Report {
	return &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Mode:        mode,
		StartOffset: start,
		BatchSize:   limit,
		Threshold:   threshold,
	}
}

func (r *Report) finalize() {
	r.GeneratedAt = time.Now().UTC()
	r.SuccessRate = successRate(r.Updated, r.Processed)
}

// successRate formats updated/processed as an integer percentage. A batch
// with zero processed records reports "0%", never NaN.
func successRate(updated, processed int) string {
	if processed == 0 {
		return "0%"
	}
	return fmt.Sprintf("%d%%", int(float64(updated)/float64(processed)*100))
}

// Remaining returns how many eligible records lie beyond this batch.
func (r *Report) Remaining() int64 {
	consumed := int64(r.StartOffset + r.Processed)
	if consumed >= r.TotalEligible {
		return 0
	}
	return r.TotalEligible - consumed
}

// NextOffset suggests the --start value for the following invocation.
func (r *Report) NextOffset() int {
	return r.StartOffset + r.Processed
}

// Write persists the report as a timestamped JSON artifact in dir, creating
// the directory on demand. Returns the artifact path.
func (r *Report) Write(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}
	name := fmt.Sprintf("reconcile-%s.json", r.GeneratedAt.Format("20060102T150405Z"))
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// RenderSummary writes the human-readable batch summary, including up to
// five manual-review candidates and a suggested next invocation when more
// eligible records remain.
func (r *Report) RenderSummary(w io.Writer) {
	fmt.Fprintf(w, "\nRun %s (%s)\n", r.RunID, r.Mode)
	fmt.Fprintf(w, "Batch: offset %d, size %d of %d eligible\n", r.StartOffset, r.BatchSize, r.TotalEligible)
	fmt.Fprintf(w, "Processed: %d  Updated: %d  Not found: %d  Errors: %d\n",
		r.Processed, r.Updated, r.NotFound, len(r.Errors))
	fmt.Fprintf(w, "Success rate: %s\n", r.SuccessRate)

	if len(r.Review) > 0 {
		fmt.Fprintf(w, "\nNeeds manual review (%d candidates):\n", len(r.Review))
		fmt.Fprintln(w, renderReviewTable(r.Review))
	}

	for _, recErr := range r.Errors {
		fmt.Fprintf(w, "error: record %d %q: %s\n", recErr.RecordID, recErr.Title, recErr.Message)
	}

	if remaining := r.Remaining(); remaining > 0 {
		fmt.Fprintf(w, "\n%d eligible records remain; continue with --start %d\n", remaining, r.NextOffset())
	}
}

func renderReviewTable(candidates []ReviewCandidate) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	// The footer is a sentence, not a label; keep the style from upper-casing it.
	tw.Style().Format.Footer = text.FormatDefault
	tw.AppendHeader(table.Row{"Record", "Title", "Closest Match", "Score"})

	shown := candidates
	if len(shown) > reviewSampleLimit {
		shown = shown[:reviewSampleLimit]
	}
	for _, candidate := range shown {
		tw.AppendRow(table.Row{
			candidate.RecordID,
			candidate.Title,
			candidate.Closest,
			fmt.Sprintf("%.2f", candidate.Score),
		})
	}
	if hidden := len(candidates) - len(shown); hidden > 0 {
		tw.AppendFooter(table.Row{"", fmt.Sprintf("+ %d more in report artifact", hidden), "", ""})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	return tw.Render()
}
