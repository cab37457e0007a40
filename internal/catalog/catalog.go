package catalog

import (
	"relink/internal/similarity"
)

// Entry is one reference item from the external catalog.
type Entry struct {
	// Name is the raw file name as indexed.
	Name string
	// URL locates the scanned resource.
	URL string
	// Size is the human-readable size descriptor from the catalog export.
	Size string
	// ModTime is the catalog's last-modified string, kept verbatim.
	ModTime string
	// Normalized is the canonical comparable form of Name.
	Normalized string

	profile similarity.Profile
}

// Profile returns the entry's precomputed similarity profile.
func (e *Entry) Profile() similarity.Profile {
	return e.profile
}

// Index is the read-only, ordered set of catalog entries for one run. It is
// safe to share across a batch without synchronization once loaded.
type Index struct {
	entries []Entry
}

// NewIndex builds an index from entries, precomputing normalized forms and
// similarity profiles for any entry that lacks them.
func NewIndex(entries []Entry) *Index {
	for i := range entries {
		if entries[i].Normalized == "" {
			entries[i].profile = similarity.NewProfile(entries[i].Name)
			entries[i].Normalized = entries[i].profile.Normalized
			continue
		}
		entries[i].profile = similarity.NewProfileFromNormalized(entries[i].Normalized)
	}
	return &Index{entries: entries}
}

// Len returns the number of entries.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.entries)
}

// Entries exposes the ordered entry slice. Callers must treat it as
// read-only.
func (x *Index) Entries() []Entry {
	if x == nil {
		return nil
	}
	return x.entries
}
