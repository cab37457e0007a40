package titles

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Display derives a human-readable title from a catalog file name: the
// extension is dropped, separator characters become spaces, and the result
// is title-cased. Used when plan emission inserts records for catalog
// entries that have no internal counterpart.
func Display(name string) string {
	if strings.TrimSpace(name) == "" {
		return "Untitled"
	}
	base := extensionRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "")
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range base {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r) || r == '\'':
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return "Untitled"
	}
	return cases.Title(language.Und).String(title)
}
