package cite

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"case name", "Waller Peanut Co. v. Tripplehorn", []string{"waller", "peanut", "co", "v", "tripplehorn"}},
		{"abbrev folding", "Waller Peanut Company versus Tripplehorn", []string{"waller", "peanut", "co", "v", "tripplehorn"}},
		{"stopwords dropped", "The Economic Analysis of Law", []string{"economic", "analysis", "law"}},
		{"ampersand", "J.L. & Econ.", []string{"j", "l", "econ"}},
		{"diacritics", "Cañas-Segovia v. Smith", []string{"canas", "segovia", "v", "smith"}},
		{"empty", "   ", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tokenize(tc.in)
			if len(got) != len(tc.want) {
				t.Fatalf("tokenize(%q) = %v, want %v", tc.in, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("token %d = %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestIdentity(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantKey     string
		wantDisplay string
	}{
		{
			"case keeps full party names",
			"Waller Peanut Co. v. Tripplehorn, 209 S.W.2d 404 (Tex. Civ. App. 1948)",
			"waller peanut co v tripplehorn",
			"Waller Peanut Co v Tripplehorn",
		},
		{
			"abbreviated variant shares the key",
			"Waller Peanut Company v. Tripplehorn, 209 S.W.2d 404 (1948)",
			"waller peanut co v tripplehorn",
			"Waller Peanut Co v Tripplehorn",
		},
		{
			"authored work keys on surname plus title word",
			"Richard A. Posner, Economic Analysis of Law 3 (9th ed. 2014)",
			"posner economic",
			"Posner",
		},
		{
			"same surname different work stays distinct",
			"Eric A. Posner, The Perils of Global Legalism 12 (2009)",
			"posner perils",
			"Posner",
		},
		{
			"in re is a case",
			"In re Gault, 387 U.S. 1 (1967)",
			"re gault",
			"In Re Gault",
		},
		{
			"all-stopword segment keys on the full text",
			"In The, 5 U.S. 137",
			"5 u s 137",
			"In The",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			key, display := identity(tc.text)
			if key != tc.wantKey {
				t.Errorf("key = %q, want %q", key, tc.wantKey)
			}
			if display != tc.wantDisplay {
				t.Errorf("display = %q, want %q", display, tc.wantDisplay)
			}
		})
	}
}

func TestRegisterOrGetDeduplicates(t *testing.T) {
	r := NewRegistry()

	a := r.RegisterOrGet("Waller Peanut Co. v. Tripplehorn, 209 S.W.2d 404 (Tex. Civ. App. 1948)", 4, 1)
	b := r.RegisterOrGet("Waller Peanut Company v. Tripplehorn, 209 S.W.2d 404 (1948)", 9, 2)

	if a != b {
		t.Fatalf("variant spellings minted two sources: %q and %q", a.CanonicalName, b.CanonicalName)
	}
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
	if a.FirstFootnote != 4 || a.FirstCite != 1 {
		t.Errorf("first sighting = (%d, %d), want (4, 1)", a.FirstFootnote, a.FirstCite)
	}
}

func TestMintNameCollision(t *testing.T) {
	r := NewRegistry()

	first := r.RegisterOrGet("Richard A. Posner, Economic Analysis of Law 3 (9th ed. 2014)", 1, 1)
	second := r.RegisterOrGet("Eric A. Posner, The Perils of Global Legalism 12 (2009)", 5, 1)

	if first.CanonicalName != "Posner" {
		t.Errorf("first name = %q, want %q", first.CanonicalName, "Posner")
	}
	if second.CanonicalName != "Posner Eric" {
		t.Errorf("second name = %q, want %q", second.CanonicalName, "Posner Eric")
	}
	if len(first.Warnings) != 0 {
		t.Errorf("earlier source picked up warnings: %v", first.Warnings)
	}
	if len(second.Warnings) != 1 || second.Warnings[0].Code != WarnAmbiguousSource {
		t.Errorf("later source warnings = %v, want one %s warning", second.Warnings, WarnAmbiguousSource)
	}
}

func TestMintNameNumericFallback(t *testing.T) {
	r := NewRegistry()
	r.RegisterOrGet("Jane Doe, Torts 3 (1990)", 1, 1)

	// A newcomer with no token the holder lacks cannot be distinguished by
	// suffix, so it falls back to numbering.
	s := &Source{tokens: []string{"jane", "doe", "torts"}}
	got := r.mintName("Doe", s)
	if got != "Doe 2" {
		t.Errorf("mintName = %q, want %q", got, "Doe 2")
	}
	if len(s.Warnings) != 1 || s.Warnings[0].Code != WarnAmbiguousSource {
		t.Errorf("warnings = %v, want one %s warning", s.Warnings, WarnAmbiguousSource)
	}
}

func TestLookup(t *testing.T) {
	r := NewRegistry()
	waller := r.RegisterOrGet("Waller Peanut Co. v. Tripplehorn, 209 S.W.2d 404 (Tex. Civ. App. 1948)", 1, 1)
	posner := r.RegisterOrGet("Richard A. Posner, Economic Analysis of Law 3 (9th ed. 2014)", 2, 1)

	tests := []struct {
		name  string
		short string
		want  *Source
	}{
		{"leading party fragment", "Waller Peanut Co.", waller},
		{"trailing party fragment", "Tripplehorn", waller},
		{"company spelled out", "Waller Peanut Company", waller},
		{"author surname", "Posner", posner},
		{"title fragment", "Economic Analysis", posner},
		{"out-of-order words miss", "Tripplehorn Waller", nil},
		{"unknown fragment", "Palsgraf", nil},
		{"empty", "", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Lookup(tc.short); got != tc.want {
				t.Errorf("Lookup(%q) = %v, want %v", tc.short, got, tc.want)
			}
		})
	}
}

func TestLookupEarlierRegistrationWins(t *testing.T) {
	r := NewRegistry()
	first := r.RegisterOrGet("Smith v. Jones, 100 F.3d 1 (2d Cir. 1996)", 1, 1)
	r.RegisterOrGet("Smith v. Allwright, 321 U.S. 649 (1944)", 3, 1)

	if got := r.Lookup("Smith"); got != first {
		t.Errorf("Lookup(%q) = %v, want the earlier source %q", "Smith", got, first.CanonicalName)
	}
}

func TestTruncateName(t *testing.T) {
	long := "National Commission on the Causes and Prevention of Violence Between Persons, Final Report 1 (1969)"
	r := NewRegistry()
	s := r.RegisterOrGet(long, 1, 1)

	if len(s.CanonicalName) > maxNameLen {
		t.Errorf("name %q exceeds %d characters", s.CanonicalName, maxNameLen)
	}
	if !strings.HasPrefix(s.CanonicalName, "National Commission") {
		t.Errorf("name %q lost its leading words", s.CanonicalName)
	}
	if strings.HasSuffix(s.CanonicalName, " ") || strings.HasSuffix(s.CanonicalName, ",") {
		t.Errorf("name %q has trailing cut debris", s.CanonicalName)
	}
}

func TestTruncateNameMultibyte(t *testing.T) {
	// One leading ASCII byte pushes every following 3-byte rune off the
	// cut boundary.
	long := "a" + strings.Repeat("大", 25)
	got := truncateName(long)

	if len(got) > maxNameLen {
		t.Errorf("truncated name is %d bytes, limit %d", len(got), maxNameLen)
	}
	if !utf8.ValidString(got) {
		t.Errorf("truncated name %q is not valid UTF-8", got)
	}
}
