package reconcile

import (
	"context"
	"time"

	"relink/internal/matcher"
	"relink/internal/records"
)

// RecordStore is the capability set the engine needs from the record store.
// The caller owns the store lifecycle and injects it here.
type RecordStore interface {
	CountEligible(ctx context.Context) (int64, error)
	PageEligible(ctx context.Context, offset, limit int) ([]records.Record, error)
	ListEligible(ctx context.Context) ([]records.Record, error)
	SetResourceLink(ctx context.Context, id int64, url string, at time.Time) error
}

// Strategy routes one accepted match to its output. Implementations must
// return an error only for failures the driver should record against the
// record; classification decisions stay in the driver.
type Strategy interface {
	// Name identifies the strategy in reports and logs.
	Name() string
	// Handle processes one accepted match.
	Handle(ctx context.Context, record records.Record, match matcher.Match) error
}

// applyStrategy writes accepted matches back to the store immediately.
type applyStrategy struct {
	store RecordStore
	now   func() time.Time
}

// NewApply returns the live output strategy: each accepted match sets the
// record's resource link with a fresh timestamp.
func NewApply(store RecordStore) Strategy {
	return &applyStrategy{store: store, now: time.Now}
}

func (s *applyStrategy) Name() string { return "live" }

func (s *applyStrategy) Handle(ctx context.Context, record records.Record, match matcher.Match) error {
	return s.store.SetResourceLink(ctx, record.ID, match.Best.URL, s.now().UTC())
}

// dryRunStrategy counts matches without touching the store.
type dryRunStrategy struct{}

// NewDryRun returns the simulation strategy: matches are reported as updated
// but nothing is written.
func NewDryRun() Strategy {
	return dryRunStrategy{}
}

func (dryRunStrategy) Name() string { return "dry-run" }

func (dryRunStrategy) Handle(context.Context, records.Record, matcher.Match) error {
	return nil
}
