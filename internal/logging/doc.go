// Package logging builds slog loggers with relink's console and JSON
// handlers, plus small attribute helpers shared across packages.
//
// The console handler renders one line per record with colorized levels when
// the destination is a terminal; the JSON handler emits machine-readable
// records for log shipping. Per-record reconciliation progress is logged at
// Info so an operator can spot systematic mismatches during a run.
package logging
