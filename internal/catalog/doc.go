// Package catalog loads the external reference catalog of scanned files into
// an in-memory index. Entries are immutable within a run and carry a
// precomputed similarity profile so a full linear scan never renormalizes.
//
// Lookups are linear scans scored by similarity rather than keyed lookups:
// titles are the only practical join key and require fuzzy comparison.
// Catalog sizes in this domain (thousands) keep the scan cheap.
package catalog
