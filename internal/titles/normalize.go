package titles

import (
	"regexp"
	"strings"
)

// The normalization pipeline strips the noise humans add to book titles:
// parentheticals, edition and volume markers, years, role/format suffixes,
// trailing author credits, and file extensions. Order matters: the "by
// <author>" clause must be removed before general punctuation stripping or
// the clause boundary is destroyed.
var (
	apostropheRe = regexp.MustCompile("['‘’`´]")

	bracketedRe = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]`)
	editionRe   = regexp.MustCompile(`\b\d+(?:st|nd|rd|th)?\s*(?:edition|ed\.?)\b`)
	volumeRe    = regexp.MustCompile(`\b(?:volume|vol\.?|book|chapter|part|unit)\s*\d+\b`)
	yearRangeRe = regexp.MustCompile(`\b(?:19|20)\d{2}\s*[-–—]\s*(?:19|20)\d{2}\b`)
	yearRe      = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	authorRe    = regexp.MustCompile(`\bby\s+[a-z][a-z .,'&-]*$`)
	extensionRe = regexp.MustCompile(`\.(?:pdf|epub|djvu|doc|docx|txt)$`)
	dashRe      = regexp.MustCompile(`[-–—_/]+`)
	punctRe     = regexp.MustCompile(`[^a-z0-9 ]+`)
	spaceRe     = regexp.MustCompile(`\s+`)
)

// Suffixes describing the role or format of a book rather than its content.
// Apostrophes are already removed when these apply, so only the plain forms
// are listed. Longer phrases come first so "students workbook" is removed
// before the bare "workbook" rule can split it.
var roleSuffixes = []string{
	"teachers guide",
	"teacher edition",
	"students workbook",
	"student edition",
	"answer key",
	"study guide",
	"test prep",
	"practice test",
	"practice book",
	"workbook",
	"textbook",
}

// Normalize canonicalizes a raw title for comparison. It is deterministic,
// pure, and idempotent; empty input yields an empty string.
func Normalize(title string) string {
	if strings.TrimSpace(title) == "" {
		return ""
	}

	normalized := strings.ToLower(title)
	// Apostrophes (straight or curly) vanish up front so "Teacher's",
	// "Teacher’s", and "Teachers" all canonicalize identically.
	normalized = apostropheRe.ReplaceAllString(normalized, "")
	normalized = bracketedRe.ReplaceAllString(normalized, " ")
	normalized = extensionRe.ReplaceAllString(strings.TrimSpace(normalized), "")
	// Separators become spaces before marker stripping so "2nd_ed" and
	// "2nd ed" canonicalize the same way.
	normalized = dashRe.ReplaceAllString(normalized, " ")
	normalized = editionRe.ReplaceAllString(normalized, " ")
	normalized = volumeRe.ReplaceAllString(normalized, " ")
	normalized = yearRangeRe.ReplaceAllString(normalized, " ")
	normalized = yearRe.ReplaceAllString(normalized, " ")
	for _, suffix := range roleSuffixes {
		normalized = strings.ReplaceAll(normalized, suffix, " ")
	}
	normalized = strings.TrimSpace(normalized)
	normalized = authorRe.ReplaceAllString(normalized, " ")
	normalized = punctRe.ReplaceAllString(normalized, "")
	normalized = spaceRe.ReplaceAllString(normalized, " ")
	return strings.TrimSpace(normalized)
}
