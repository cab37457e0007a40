// Package records manages the internal book records backed by SQLite.
//
// The reconciliation engine consults it through a small capability set:
// counting and paging eligible records (those lacking a resource link,
// ordered by title for deterministic, resumable pagination), bulk-listing
// the eligible set for plan emission, and setting the resource link on one
// record. Records are never deleted by this subsystem.
package records
