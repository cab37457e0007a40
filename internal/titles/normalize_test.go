package titles

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"already clean", "algebra 2", "algebra 2"},
		{"edition author extension", "Algebra 2 (2nd Edition) by Jane Doe.pdf", "algebra 2"},
		{"bracketed segment", "Chemistry [Annotated]", "chemistry"},
		{"volume marker", "World History Volume 2", "world history"},
		{"abbreviated volume", "Physics Vol. 3", "physics"},
		{"chapter marker", "Biology Chapter 4", "biology"},
		{"year range", "US History 2019-2020", "us history"},
		{"standalone year", "SAT Prep 2021", "sat prep"},
		{"role suffix", "Spanish Student's Workbook", "spanish"},
		{"curly apostrophe role suffix", "Math Teacher’s Guide", "math"},
		{"straight apostrophe role suffix", "Math Teacher's Guide", "math"},
		{"apostrophe-free role suffix", "Math Teachers Guide", "math"},
		{"answer key suffix", "Geometry Answer Key", "geometry"},
		{"dashes to spaces", "pre-algebra basics", "pre algebra basics"},
		{"underscores", "intro_to_statistics.pdf", "intro to statistics"},
		{"punctuation stripped", "Reading, Writing & Grammar!", "reading writing grammar"},
		{"author clause", "Introduction to Chemistry by John Smith", "introduction to chemistry"},
		{"author clause with initials", "Calculus by R. L. Stewart", "calculus"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.input)
			if got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Algebra 2 (2nd Edition) by Jane Doe.pdf",
		"SAT Prep 2021 Practice Test",
		"pre-algebra: a complete course, volume 2",
		"McGraw-Hill Physics Teacher's Guide",
		"Math Teacher’s Guide",
		"Don’t Panic: Physics for Everyone",
		"",
	}
	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Fatalf("Normalize not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}
