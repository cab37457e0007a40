package similarity

import (
	"strings"

	"relink/internal/titles"
)

// Signal weights. Subject-domain agreement is the strongest independent
// evidence, followed by shared distinctive vocabulary, then generic word
// overlap. Containment is reliable but must not override a perfect subject
// signal.
const (
	subjectWeight    = 0.95
	keywordWeight    = 0.90
	wholeWordWeight  = 0.80
	containmentScore = 0.9

	// keywordSubstrMin is the minimum keyword length for fuzzy substring
	// matching between keywords; shorter keywords must match exactly.
	keywordSubstrMin = 4
)

// Profile carries the precomputed comparison material for one title.
// Catalog entries hold a Profile so a full scan never renormalizes.
type Profile struct {
	Normalized string
	Terms      titles.Terms
}

// NewProfile normalizes a raw title and derives its term sets.
func NewProfile(title string) Profile {
	return NewProfileFromNormalized(titles.Normalize(title))
}

// NewProfileFromNormalized builds a profile for a title that is already in
// canonical form, e.g. a catalog entry with a precomputed normalized name.
func NewProfileFromNormalized(normalized string) Profile {
	return Profile{Normalized: normalized, Terms: titles.ExtractNormalized(normalized)}
}

// Score computes the similarity of two raw titles.
func Score(a, b string) float64 {
	return ScoreProfiles(NewProfile(a), NewProfile(b))
}

// ScoreProfiles computes the weighted-maximum similarity of two profiles.
func ScoreProfiles(a, b Profile) float64 {
	if a.Normalized == "" || b.Normalized == "" {
		return 0
	}
	if a.Normalized == b.Normalized {
		return 1.0
	}

	best := subjectScore(a.Terms, b.Terms) * subjectWeight
	if s := keywordScore(a.Terms, b.Terms) * keywordWeight; s > best {
		best = s
	}
	if s := wholeWordScore(a.Terms, b.Terms) * wholeWordWeight; s > best {
		best = s
	}
	if containment(a.Normalized, b.Normalized) {
		if containmentScore > best {
			best = containmentScore
		}
	}
	return best
}

// subjectScore is the ratio of shared curated subjects to the larger subject
// set, or 0 when either title has no recognized subjects.
func subjectScore(a, b titles.Terms) float64 {
	if len(a.Subjects) == 0 || len(b.Subjects) == 0 {
		return 0
	}
	shared := 0
	for subject := range a.Subjects {
		if _, ok := b.Subjects[subject]; ok {
			shared++
		}
	}
	return float64(shared) / float64(maxInt(len(a.Subjects), len(b.Subjects)))
}

// keywordScore counts A-keywords with at least one match in B, divided by
// the larger keyword set. Keywords match when equal, or when both exceed the
// substring minimum and one contains the other.
func keywordScore(a, b titles.Terms) float64 {
	if len(a.Keywords) == 0 || len(b.Keywords) == 0 {
		return 0
	}
	matched := 0
	for ka := range a.Keywords {
		for kb := range b.Keywords {
			if keywordsMatch(ka, kb) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(maxInt(len(a.Keywords), len(b.Keywords)))
}

func keywordsMatch(a, b string) bool {
	if a == b {
		return true
	}
	if len(a) <= keywordSubstrMin || len(b) <= keywordSubstrMin {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// wholeWordScore is the count of A-tokens appearing verbatim in B, divided
// by the larger token set.
func wholeWordScore(a, b titles.Terms) float64 {
	if len(a.Tokens) == 0 || len(b.Tokens) == 0 {
		return 0
	}
	shared := 0
	for token := range a.Tokens {
		if _, ok := b.Tokens[token]; ok {
			shared++
		}
	}
	return float64(shared) / float64(maxInt(len(a.Tokens), len(b.Tokens)))
}

func containment(a, b string) bool {
	if len(a) <= len(b) {
		return strings.Contains(b, a)
	}
	return strings.Contains(a, b)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
