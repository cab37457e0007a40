package titles

// subjectVocabulary is the curated set of high-confidence subject terms:
// academic subjects, standardized test names, and major education publishers.
// A term counts as a subject of a title when it appears as a substring of the
// normalized form.
var subjectVocabulary = []string{
	// Academic subjects.
	"algebra",
	"geometry",
	"trigonometry",
	"precalculus",
	"calculus",
	"statistics",
	"probability",
	"arithmetic",
	"math",
	"biology",
	"chemistry",
	"physics",
	"anatomy",
	"astronomy",
	"geology",
	"science",
	"english",
	"grammar",
	"literature",
	"writing",
	"reading",
	"vocabulary",
	"spelling",
	"phonics",
	"history",
	"geography",
	"economics",
	"government",
	"civics",
	"psychology",
	"sociology",
	"philosophy",
	"spanish",
	"french",
	"latin",
	"german",
	"mandarin",
	"japanese",
	"music",
	"art",

	// Standardized tests.
	"sat",
	"psat",
	"act",
	"gre",
	"gmat",
	"lsat",
	"mcat",
	"toefl",
	"ielts",
	"ssat",
	"isee",
	"hspt",
	"regents",
	"staar",
	"ap",
	"ib",

	// Publishers.
	"pearson",
	"mcgraw",
	"houghton",
	"mifflin",
	"scholastic",
	"kaplan",
	"barron",
	"princeton review",
	"saxon",
	"glencoe",
	"prentice hall",
	"holt",
	"wiley",
	"oxford",
	"cambridge",
}

var subjectTerms = func() map[string]struct{} {
	set := make(map[string]struct{}, len(subjectVocabulary))
	for _, term := range subjectVocabulary {
		set[term] = struct{}{}
	}
	return set
}()

// IsSubjectTerm reports whether token is itself a curated subject term.
func IsSubjectTerm(token string) bool {
	_, ok := subjectTerms[token]
	return ok
}
