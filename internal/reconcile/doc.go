// Package reconcile drives batch reconciliation of book records against the
// reference catalog.
//
// The Driver walks one deterministic page of eligible records, scores each
// against the catalog, and routes accepted matches to an output strategy:
// direct apply (write the link back immediately), dry-run (simulate), or
// plan emission (accumulate reviewable SQL migration scripts). Per-record
// failures become report data and never abort the batch; a single bad write
// must not block reconciling the rest of the page.
package reconcile
