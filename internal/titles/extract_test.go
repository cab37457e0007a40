package titles

import "testing"

func hasTerm(set map[string]struct{}, term string) bool {
	_, ok := set[term]
	return ok
}

func TestExtractSubjectsFromVocabulary(t *testing.T) {
	terms := Extract("Pearson Algebra 2 Workbook")
	if !hasTerm(terms.Subjects, "algebra") {
		t.Fatalf("expected algebra subject, got %v", terms.Subjects)
	}
	if !hasTerm(terms.Subjects, "pearson") {
		t.Fatalf("expected pearson subject, got %v", terms.Subjects)
	}
}

func TestExtractKeepsShortTokensOutOfKeywords(t *testing.T) {
	terms := Extract("the art of war")
	// Short generic tokens stay in Tokens but not Keywords.
	if !hasTerm(terms.Tokens, "the") || !hasTerm(terms.Tokens, "of") {
		t.Fatalf("expected short tokens retained, got %v", terms.Tokens)
	}
	if hasTerm(terms.Keywords, "the") || hasTerm(terms.Keywords, "war") {
		t.Fatalf("expected short tokens excluded from keywords, got %v", terms.Keywords)
	}
}

func TestExtractKeepsSubjectAcronymsAsKeywords(t *testing.T) {
	terms := Extract("SAT Practice Questions")
	if !hasTerm(terms.Keywords, "sat") {
		t.Fatalf("expected sat keyword, got %v", terms.Keywords)
	}
	if !hasTerm(terms.Keywords, "questions") {
		t.Fatalf("expected questions keyword, got %v", terms.Keywords)
	}
	// "practice" is longer than four characters so it qualifies too.
	if !hasTerm(terms.Keywords, "practice") {
		t.Fatalf("expected practice keyword, got %v", terms.Keywords)
	}
}

func TestExtractEmptyTitle(t *testing.T) {
	terms := Extract("")
	if len(terms.Subjects) != 0 || len(terms.Keywords) != 0 || len(terms.Tokens) != 0 {
		t.Fatalf("expected empty sets, got %+v", terms)
	}
}

func TestDisplay(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"algebra_2_workbook.pdf", "Algebra 2 Workbook"},
		{"intro-to-statistics.pdf", "Intro To Statistics"},
		{"", "Untitled"},
		{"...", "Untitled"},
	}
	for _, tc := range cases {
		if got := Display(tc.input); got != tc.want {
			t.Fatalf("Display(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
