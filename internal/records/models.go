package records

import (
	"strings"
	"time"
)

// Record is one internal book record.
type Record struct {
	ID int64
	// Title is the raw human-entered title.
	Title string
	// Author is nil when the source data carried no usable author. Loose
	// missing-value markers ("nan", "null", ...) are mapped to nil at the
	// parsing boundary so downstream code never inspects sentinels.
	Author *string
	// ResourceURL is nil or empty while the record awaits reconciliation.
	ResourceURL *string
	OwnerID     int64
	Visibility  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AuthorOrEmpty returns the author name, or "" when absent.
func (r *Record) AuthorOrEmpty() string {
	if r.Author == nil {
		return ""
	}
	return *r.Author
}

// Eligible reports whether the record lacks a resource link and is therefore
// a reconciliation candidate.
func (r *Record) Eligible() bool {
	return r.ResourceURL == nil || strings.TrimSpace(*r.ResourceURL) == ""
}

// CleanOptional maps the loose missing-value markers that appear in tabular
// exports to nil. Everything else is trimmed and kept.
func CleanOptional(value string) *string {
	trimmed := strings.TrimSpace(value)
	switch strings.ToLower(trimmed) {
	case "", "nan", "null", "none", "n/a":
		return nil
	}
	return &trimmed
}
