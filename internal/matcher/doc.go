// Package matcher finds the best-scoring catalog entry for a source record's
// title, trying several query variants when an author is available.
package matcher
