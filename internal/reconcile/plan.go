package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"relink/internal/catalog"
	"relink/internal/logging"
	"relink/internal/matcher"
	"relink/internal/titles"
)

// PlanOptions configures plan emission.
type PlanOptions struct {
	// Threshold is the minimum score for an UPDATE to be emitted. It is
	// deliberately stricter than the live threshold: nobody reviews
	// individual matches before the generated script runs.
	Threshold float64
	// ReviewFloor mirrors Options.ReviewFloor.
	ReviewFloor float64
	// OwnerID and Visibility are the sentinel ownership values for records
	// inserted for unmatched catalog entries.
	OwnerID    int64
	Visibility string
}

// Plan accumulates the migration statements of one plan-emission run: one
// UPDATE per accepted match, one INSERT per catalog entry with no source
// record above threshold.
type Plan struct {
	Updates []string
	Inserts []string
}

// Planner builds reconciliation plans over the entire eligible set and the
// entire catalog at once, instead of a bounded page.
type Planner struct {
	store  RecordStore
	index  *catalog.Index
	logger *slog.Logger
	opts   PlanOptions
}

// NewPlanner constructs a Planner. A nil logger disables logging.
func NewPlanner(store RecordStore, index *catalog.Index, logger *slog.Logger, opts PlanOptions) (*Planner, error) {
	if store == nil {
		return nil, errors.New("planner requires a record store")
	}
	if index == nil || index.Len() == 0 {
		return nil, errors.New("planner requires a non-empty catalog index")
	}
	if opts.Threshold <= 0 || opts.Threshold > 1 {
		return nil, fmt.Errorf("planner threshold must be in (0,1], got %v", opts.Threshold)
	}
	if opts.OwnerID <= 0 {
		opts.OwnerID = 1
	}
	if opts.Visibility == "" {
		opts.Visibility = "private"
	}
	return &Planner{
		store:  store,
		index:  index,
		logger: logging.NewComponentLogger(logger, "planner"),
		opts:   opts,
	}, nil
}

// Build matches every eligible record against the catalog and produces the
// plan plus its run report. Nothing is written to the store.
func (p *Planner) Build(ctx context.Context) (*Plan, *Report, error) {
	eligible, err := p.store.ListEligible(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list eligible records: %w", err)
	}

	report := newReport("plan", 0, len(eligible), p.opts.Threshold)
	report.TotalEligible = int64(len(eligible))

	p.logger.Info("plan build started",
		logging.Int("eligible", len(eligible)),
		logging.Int("catalog_entries", p.index.Len()),
		logging.Float64("threshold", p.opts.Threshold),
	)

	now := time.Now().UTC()
	plan := &Plan{}
	matchedURLs := make(map[string]struct{})

	for _, record := range eligible {
		report.Processed++
		if strings.TrimSpace(record.Title) == "" {
			report.Errors = append(report.Errors, RecordError{
				RecordID: record.ID,
				Title:    record.Title,
				Message:  "record has no title",
			})
			continue
		}

		match := matcher.FindBest(record.Title, record.AuthorOrEmpty(), p.index)
		if match.Best == nil || match.Score < p.opts.Threshold {
			report.NotFound++
			if match.Best != nil && match.Score > p.opts.ReviewFloor {
				report.Review = append(report.Review, ReviewCandidate{
					RecordID: record.ID,
					Title:    record.Title,
					Closest:  match.Best.Name,
					URL:      match.Best.URL,
					Score:    match.Score,
				})
			}
			continue
		}

		plan.Updates = append(plan.Updates, updateStatement(record.ID, match.Best.URL, now))
		matchedURLs[match.Best.URL] = struct{}{}
		report.Updated++
		p.logger.Info("update planned",
			logging.Int64(logging.FieldRecordID, record.ID),
			logging.String(logging.FieldTitle, record.Title),
			logging.String("matched", match.Best.Name),
			logging.Float64(logging.FieldScore, match.Score),
		)
	}

	for _, entry := range p.index.Entries() {
		if _, ok := matchedURLs[entry.URL]; ok {
			continue
		}
		plan.Inserts = append(plan.Inserts, p.insertStatement(entry, now))
	}

	report.finalize()
	p.logger.Info("plan build finished",
		logging.Int("updates", len(plan.Updates)),
		logging.Int("inserts", len(plan.Inserts)),
		logging.Int("not_found", report.NotFound),
	)
	return plan, report, nil
}

// updateStatement links one record to a catalog resource. The modification
// timestamp is explicit because this bulk path bypasses the store's
// automatic timestamp trigger.
func updateStatement(id int64, url string, at time.Time) string {
	return fmt.Sprintf(
		"UPDATE books SET resource_url = '%s', updated_at = '%s' WHERE id = %d AND (resource_url IS NULL OR resource_url = '');",
		sqlQuote(url),
		at.Format(time.RFC3339),
		id,
	)
}

func (p *Planner) insertStatement(entry catalog.Entry, at time.Time) string {
	timestamp := at.Format(time.RFC3339)
	return fmt.Sprintf(
		"INSERT INTO books (title, resource_url, owner_id, visibility, created_at, updated_at) VALUES ('%s', '%s', %d, '%s', '%s', '%s');",
		sqlQuote(titles.Display(entry.Name)),
		sqlQuote(entry.URL),
		p.opts.OwnerID,
		sqlQuote(p.opts.Visibility),
		timestamp,
		timestamp,
	)
}

// sqlQuote doubles single quotes for safe embedding in a quoted SQL literal.
func sqlQuote(value string) string {
	return strings.ReplaceAll(value, "'", "''")
}

// WriteScripts persists the plan as two independently reviewable artifacts
// in dir: plan_updates.sql and plan_inserts.sql, each wrapped in a single
// transaction with a trailing statement count. Returns the artifact paths.
func (p *Plan) WriteScripts(dir string) (updatesPath, insertsPath string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create plan directory: %w", err)
	}

	updatesPath = filepath.Join(dir, "plan_updates.sql")
	if err := writeScript(updatesPath, p.Updates); err != nil {
		return "", "", err
	}
	insertsPath = filepath.Join(dir, "plan_inserts.sql")
	if err := writeScript(insertsPath, p.Inserts); err != nil {
		return "", "", err
	}
	return updatesPath, insertsPath, nil
}

func writeScript(path string, statements []string) error {
	var b strings.Builder
	b.WriteString("BEGIN;\n")
	for _, statement := range statements {
		b.WriteString(statement)
		b.WriteByte('\n')
	}
	b.WriteString("COMMIT;\n")
	fmt.Fprintf(&b, "-- %d statements\n", len(statements))

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write plan script %s: %w", path, err)
	}
	return nil
}
