package cite

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// maxNameLen bounds canonical display names. Truncation happens at a word
// boundary before any disambiguating suffix is appended.
const maxNameLen = 60

// Source is the underlying authority one or more citations refer to. Sources
// are minted lazily on the first full citation of a work and never deleted.
type Source struct {
	Key           string // normalized identity
	CanonicalName string // document-unique display name, fixed at creation
	FirstFootnote int
	FirstCite     int
	Warnings      []Warning

	// tokens is the normalized token sequence of the full citation text,
	// in order, used for short-form subsequence matching and for picking
	// disambiguating suffixes.
	tokens []string
}

// Registry maps normalized citation identity to sources and guarantees every
// source a document-unique canonical name. It is mutated only by the
// resolver's single sequential pass, so no locking is needed.
type Registry struct {
	byKey   map[string]*Source
	byName  map[string]*Source
	ordered []*Source
}

func NewRegistry() *Registry {
	return &Registry{
		byKey:  make(map[string]*Source),
		byName: make(map[string]*Source),
	}
}

// RegisterOrGet returns the source for a full citation's text, minting it on
// first encounter. The canonical name of an existing source never changes:
// first-seen wins, and later name collisions are resolved by suffixing the
// newcomer.
func (r *Registry) RegisterOrGet(text string, footnote, citeIndex int) *Source {
	key, display := identity(text)
	if s, ok := r.byKey[key]; ok {
		return s
	}

	s := &Source{
		Key:           key,
		FirstFootnote: footnote,
		FirstCite:     citeIndex,
		tokens:        tokenize(text),
	}
	s.CanonicalName = r.mintName(display, s)

	r.byKey[key] = s
	r.byName[s.CanonicalName] = s
	r.ordered = append(r.ordered, s)
	return s
}

// Get returns the source registered under key, or nil.
func (r *Registry) Get(key string) *Source {
	if key == "" {
		return nil
	}
	return r.byKey[key]
}

// Lookup matches a short-form fragment ("Waller Peanut Co.", "§ 1983")
// against registered sources. A source matches when every token of the
// fragment appears, in order, within the source's full citation tokens.
// Earlier-registered sources win ties, which keeps repeated runs identical.
func (r *Registry) Lookup(shortText string) *Source {
	sub := tokenize(shortText)
	if len(sub) == 0 {
		return nil
	}
	for _, s := range r.ordered {
		if subsequence(sub, s.tokens) {
			return s
		}
	}
	return nil
}

// Len reports how many sources have been registered.
func (r *Registry) Len() int {
	return len(r.ordered)
}

// mintName produces a document-unique display name from the candidate. When
// a distinct source would naively collide with an existing name, the first
// token distinguishing it from the current holder is appended; a numeric
// suffix is the last resort. Both paths attach an ambiguous-source warning
// to the later-registered source.
func (r *Registry) mintName(display string, s *Source) string {
	base := truncateName(display)
	holder, taken := r.byName[base]
	if !taken {
		return base
	}

	held := make(map[string]bool, len(holder.tokens))
	for _, t := range holder.tokens {
		held[t] = true
	}

	lowBase := strings.ToLower(base)
	for _, tok := range s.tokens {
		if held[tok] || strings.Contains(lowBase, tok) {
			continue
		}
		candidate := base + " " + titleCase(tok)
		if _, used := r.byName[candidate]; used {
			continue
		}
		s.Warnings = append(s.Warnings, Warning{
			Code:    WarnAmbiguousSource,
			Message: fmt.Sprintf("name collides with an earlier source; shown as %q", candidate),
		})
		return candidate
	}

	// No distinguishing token at all usually means the author cited the same
	// work twice in full form with cosmetic differences.
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s %d", base, n)
		if _, used := r.byName[candidate]; used {
			continue
		}
		s.Warnings = append(s.Warnings, Warning{
			Code:    WarnAmbiguousSource,
			Message: fmt.Sprintf("possible duplicate of an earlier source; shown as %q", candidate),
		})
		return candidate
	}
}

// subsequence reports whether every word of sub appears in seq in order.
func subsequence(sub, seq []string) bool {
	i := 0
	for _, want := range sub {
		found := false
		for ; i < len(seq); i++ {
			if seq[i] == want {
				i++
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// --- normalization ---------------------------------------------------------

// abbrevFold collapses common abbreviation variants so "Co." and "Company"
// produce the same identity token.
var abbrevFold = map[string]string{
	"company":       "co",
	"corporation":   "corp",
	"incorporated":  "inc",
	"association":   "assn",
	"department":    "dept",
	"national":      "natl",
	"international": "intl",
	"university":    "univ",
	"brothers":      "bros",
	"limited":       "ltd",
	"number":        "no",
	"versus":        "v",
	"vs":            "v",
}

var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "of": true, "in": true,
	"on": true, "for": true, "to": true, "and": true, "or": true,
	"at": true,
}

var (
	wordSplitRe = regexp.MustCompile(`[^a-z0-9]+`)
	asciiFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

func foldASCII(s string) string {
	out, _, err := transform.String(asciiFolder, s)
	if err != nil {
		return s
	}
	return out
}

// tokenize lowercases, folds diacritics and abbreviation variants, and drops
// stopwords, yielding the stable token sequence identity is built from.
func tokenize(s string) []string {
	s = strings.ToLower(foldASCII(s))
	s = strings.ReplaceAll(s, "&", " and ")

	var out []string
	for _, w := range wordSplitRe.Split(s, -1) {
		if w == "" || stopwords[w] {
			continue
		}
		if folded, ok := abbrevFold[w]; ok {
			w = folded
		}
		out = append(out, w)
	}
	return out
}

// identitySegment returns the citation text before the first comma,
// semicolon, or colon: party names for cases, the author for other works.
func identitySegment(text string) string {
	if i := strings.IndexAny(text, ",;:"); i >= 0 {
		return strings.TrimSpace(text[:i])
	}
	return strings.TrimSpace(text)
}

// identity derives the normalized key and the display-name candidate for a
// full citation.
//
// Cases keep their full party names ("waller peanut co v tripplehorn").
// Authored works use the author surname plus the first distinctive title
// word, so two books by the same surname stay apart. Anything else (statutes,
// institutional works, cross-references) keys on its leading segment.
func identity(text string) (key, display string) {
	text = foldASCII(strings.TrimSpace(text))
	seg := identitySegment(text)
	segTokens := tokenize(seg)
	low := strings.ToLower(seg)

	switch {
	case isCaseName(segTokens, low):
		return strings.Join(segTokens, " "), titleCase(displayClean(seg))

	case strings.HasPrefix(low, "supra") || strings.HasPrefix(low, "infra") || crossRefRe.MatchString(seg):
		return strings.Join(segTokens, " "), titleCase(displayClean(seg))

	case isPersonName(seg) && len(segTokens) > 0:
		surname := segTokens[len(segTokens)-1]
		key := surname
		if tw := firstTitleWord(text, seg); tw != "" {
			key = surname + " " + tw
		}
		return key, titleCase(surname)

	default:
		// A segment of nothing but stopwords carries no identity tokens;
		// key on the full citation text instead.
		if len(segTokens) == 0 {
			segTokens = tokenize(text)
		}
		if len(segTokens) > 6 {
			segTokens = segTokens[:6]
		}
		return strings.Join(segTokens, " "), titleCase(displayClean(seg))
	}
}

func isCaseName(tokens []string, low string) bool {
	for _, t := range tokens {
		if t == "v" {
			return true
		}
	}
	return strings.HasPrefix(low, "in re") || strings.HasPrefix(low, "ex parte")
}

// isPersonName applies a loose shape test for an author name segment:
// two to four words, no digits, every word capitalized.
func isPersonName(seg string) bool {
	words := strings.Fields(seg)
	if len(words) < 2 || len(words) > 4 {
		return false
	}
	for _, w := range words {
		r := []rune(w)
		if !unicode.IsUpper(r[0]) {
			return false
		}
		for _, c := range r {
			if unicode.IsDigit(c) {
				return false
			}
		}
	}
	return true
}

// firstTitleWord finds the first distinctive token of the segment following
// the author segment (the work's title).
func firstTitleWord(text, authorSeg string) string {
	rest := strings.TrimPrefix(text, authorSeg)
	rest = strings.TrimLeft(rest, ",;: ")
	if i := strings.IndexAny(rest, ",;:("); i >= 0 {
		rest = rest[:i]
	}
	for _, t := range tokenize(rest) {
		if letterRe.MatchString(t) {
			return t
		}
	}
	return ""
}

// --- display names ---------------------------------------------------------

// smallWords stay lowercase in title-cased names unless first or last.
var smallWords = map[string]bool{
	"a": true, "an": true, "and": true, "as": true, "at": true, "but": true,
	"by": true, "en": true, "for": true, "if": true, "in": true, "of": true,
	"on": true, "or": true, "the": true, "to": true, "v": true, "vs": true,
	"via": true,
}

var (
	displayPunctRe = regexp.MustCompile(`[ ./\\:"_]+`)
	romanRe        = regexp.MustCompile(`\b(Ii|Iii|Iv|Vi|Vii|Viii|Ix)\b`)
	titleCaser     = cases.Title(language.AmericanEnglish)
)

// displayClean converts problematic punctuation to spaces so names render
// uniformly ("Waller Peanut Co. v. Tripplehorn" -> "Waller Peanut Co v
// Tripplehorn" after casing).
func displayClean(s string) string {
	return strings.TrimSpace(displayPunctRe.ReplaceAllString(s, " "))
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		lw := strings.ToLower(w)
		if i > 0 && i < len(words)-1 && smallWords[lw] {
			words[i] = lw
		} else {
			words[i] = titleCaser.String(lw)
		}
	}
	out := strings.Join(words, " ")
	return romanRe.ReplaceAllStringFunc(out, strings.ToUpper)
}

func truncateName(s string) string {
	if len(s) <= maxNameLen {
		return s
	}
	// Back up to a rune boundary so the cut never splits a multi-byte rune.
	n := maxNameLen
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	cut := s[:n]
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.")
}
