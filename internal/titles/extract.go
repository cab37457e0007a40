package titles

import "strings"

// Terms holds the comparison sets derived from one title.
type Terms struct {
	// Subjects are curated vocabulary terms found in the normalized title.
	Subjects map[string]struct{}
	// Keywords are distinctive tokens: longer than four characters, or any
	// token that is itself a subject term (so short acronyms like "sat"
	// stay eligible for keyword matching).
	Keywords map[string]struct{}
	// Tokens is every whitespace token of the normalized title, short ones
	// included, used for whole-word comparison.
	Tokens map[string]struct{}
}

// Extract tokenizes a raw title and derives its subject, keyword, and token
// sets. The title is normalized first; callers holding a pre-normalized form
// can use ExtractNormalized to avoid renormalizing.
func Extract(title string) Terms {
	return ExtractNormalized(Normalize(title))
}

// ExtractNormalized derives term sets from an already-normalized title.
func ExtractNormalized(normalized string) Terms {
	terms := Terms{
		Subjects: make(map[string]struct{}),
		Keywords: make(map[string]struct{}),
		Tokens:   make(map[string]struct{}),
	}
	if normalized == "" {
		return terms
	}

	for _, term := range subjectVocabulary {
		if strings.Contains(normalized, term) {
			terms.Subjects[term] = struct{}{}
		}
	}

	for _, token := range strings.Fields(normalized) {
		terms.Tokens[token] = struct{}{}
		if len(token) > 4 || IsSubjectTerm(token) {
			terms.Keywords[token] = struct{}{}
		}
	}
	return terms
}
