package matcher

import (
	"relink/internal/catalog"
	"relink/internal/similarity"
)

// Match is the outcome of one catalog search.
type Match struct {
	// Best is the highest-scoring catalog entry, or nil when no entry
	// scored above zero. Sub-threshold near-matches are retained here so
	// the reporter can surface the closest candidate.
	Best *catalog.Entry
	// Score is the maximum similarity achieved across all query variants
	// and all catalog entries considered.
	Score float64
}

// FindBest scans the whole catalog for the entry most similar to title.
// When author is non-empty, "title author" and "author title" variants are
// tried as well: author strings are prepended or appended inconsistently in
// either source, so trying both orders increases recall without a separate
// author signal.
//
// The scan is a deliberate brute-force pass over the full index; catalog
// sizes in this domain keep it cheap, and finding the true best match wins
// over lookup speed.
func FindBest(title, author string, index *catalog.Index) Match {
	variants := queryVariants(title, author)

	var result Match
	entries := index.Entries()
	for _, variant := range variants {
		profile := similarity.NewProfile(variant)
		if profile.Normalized == "" {
			continue
		}
		for i := range entries {
			score := similarity.ScoreProfiles(profile, entries[i].Profile())
			if score > result.Score {
				result.Score = score
				result.Best = &entries[i]
			}
		}
	}
	return result
}

func queryVariants(title, author string) []string {
	variants := []string{title}
	if author != "" {
		variants = append(variants, title+" "+author, author+" "+title)
	}
	return variants
}
