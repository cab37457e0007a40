package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"relink/internal/catalog"
	"relink/internal/logging"
	"relink/internal/matcher"
	"relink/internal/records"
	"relink/internal/titles"
)

// Options configures one batch run.
type Options struct {
	// Start is the offset into the eligible set, ordered by title.
	Start int
	// Limit is the page size.
	Limit int
	// Threshold is the minimum score for a match to be accepted.
	Threshold float64
	// ReviewFloor is the minimum score for a rejected candidate to appear
	// in the manual-review list.
	ReviewFloor float64
}

// Driver iterates one page of eligible records and routes each match
// through the configured output strategy. Records are processed strictly
// sequentially: match computation is CPU-bound at these batch sizes and
// write failures must be attributable to a specific record.
type Driver struct {
	store    RecordStore
	index    *catalog.Index
	strategy Strategy
	logger   *slog.Logger
	opts     Options
}

// New constructs a Driver. A nil logger disables logging.
func New(store RecordStore, index *catalog.Index, strategy Strategy, logger *slog.Logger, opts Options) (*Driver, error) {
	if store == nil {
		return nil, errors.New("driver requires a record store")
	}
	if index == nil || index.Len() == 0 {
		return nil, errors.New("driver requires a non-empty catalog index")
	}
	if strategy == nil {
		return nil, errors.New("driver requires an output strategy")
	}
	if opts.Limit <= 0 {
		return nil, errors.New("driver batch limit must be positive")
	}
	if opts.Threshold <= 0 || opts.Threshold > 1 {
		return nil, fmt.Errorf("driver threshold must be in (0,1], got %v", opts.Threshold)
	}
	return &Driver{
		store:    store,
		index:    index,
		strategy: strategy,
		logger:   logging.NewComponentLogger(logger, "driver"),
		opts:     opts,
	}, nil
}

// Run processes one page of eligible records and returns the run report.
// Per-record failures are recorded in the report and never abort the batch;
// only store/page-level failures return an error.
func (d *Driver) Run(ctx context.Context) (*Report, error) {
	report := newReport(d.strategy.Name(), d.opts.Start, d.opts.Limit, d.opts.Threshold)

	total, err := d.store.CountEligible(ctx)
	if err != nil {
		return nil, fmt.Errorf("count eligible records: %w", err)
	}
	report.TotalEligible = total

	page, err := d.store.PageEligible(ctx, d.opts.Start, d.opts.Limit)
	if err != nil {
		return nil, fmt.Errorf("page eligible records: %w", err)
	}

	d.logger.Info("batch started",
		logging.String(logging.FieldEventType, "batch_started"),
		logging.String("mode", d.strategy.Name()),
		logging.Int("offset", d.opts.Start),
		logging.Int("page_size", len(page)),
		logging.Int64("total_eligible", total),
		logging.Float64("threshold", d.opts.Threshold),
		logging.Int("catalog_entries", d.index.Len()),
	)

	for _, record := range page {
		report.Processed++
		d.processRecord(ctx, record, report)
	}

	report.finalize()
	d.logger.Info("batch finished",
		logging.String(logging.FieldEventType, "batch_finished"),
		logging.Int("processed", report.Processed),
		logging.Int("updated", report.Updated),
		logging.Int("not_found", report.NotFound),
		logging.Int("errors", len(report.Errors)),
		logging.String("success_rate", report.SuccessRate),
	)
	return report, nil
}

func (d *Driver) processRecord(ctx context.Context, record records.Record, report *Report) {
	if strings.TrimSpace(record.Title) == "" {
		report.Errors = append(report.Errors, RecordError{
			RecordID: record.ID,
			Title:    record.Title,
			Message:  "record has no title",
		})
		d.logger.Warn("skipping malformed record",
			logging.String(logging.FieldEventType, "record_skipped"),
			logging.Int64(logging.FieldRecordID, record.ID),
			logging.String(logging.FieldErrorHint, "fix the title in the source export and re-import"),
		)
		return
	}

	match := matcher.FindBest(record.Title, record.AuthorOrEmpty(), d.index)

	attrs := []logging.Attr{
		logging.Int64(logging.FieldRecordID, record.ID),
		logging.String(logging.FieldTitle, record.Title),
		logging.Float64(logging.FieldScore, match.Score),
	}
	if author := record.AuthorOrEmpty(); author != "" {
		attrs = append(attrs, logging.String("author", author))
	}
	if subjects := detectedSubjects(record.Title); subjects != "" {
		attrs = append(attrs, logging.String("subjects", subjects))
	}

	if match.Best == nil || match.Score < d.opts.Threshold {
		report.NotFound++
		if match.Best != nil && match.Score > d.opts.ReviewFloor {
			report.Review = append(report.Review, ReviewCandidate{
				RecordID: record.ID,
				Title:    record.Title,
				Closest:  match.Best.Name,
				URL:      match.Best.URL,
				Score:    match.Score,
			})
			attrs = append(attrs, logging.String("closest", match.Best.Name))
		}
		attrs = append(attrs, logging.String(logging.FieldEventType, "no_match"))
		d.logger.Info("no acceptable match", logging.Args(attrs...)...)
		return
	}

	attrs = append(attrs, logging.String("matched", match.Best.Name))
	if err := d.strategy.Handle(ctx, record, match); err != nil {
		report.Errors = append(report.Errors, RecordError{
			RecordID: record.ID,
			Title:    record.Title,
			Message:  err.Error(),
		})
		failAttrs := append(attrs,
			logging.String(logging.FieldEventType, "write_failed"),
			logging.String(logging.FieldErrorHint, "record stays eligible; re-run the batch once the store is writable"),
			logging.Error(err),
		)
		d.logger.Warn("output strategy failed", logging.Args(failAttrs...)...)
		return
	}

	report.Updated++
	attrs = append(attrs, logging.String(logging.FieldEventType, "record_matched"))
	d.logger.Info("record matched", logging.Args(attrs...)...)
}

func detectedSubjects(title string) string {
	extracted := titles.Extract(title)
	if len(extracted.Subjects) == 0 {
		return ""
	}
	subjects := make([]string, 0, len(extracted.Subjects))
	for subject := range extracted.Subjects {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)
	return strings.Join(subjects, ",")
}
