// Package cite implements the citation resolution engine: classification of
// raw citation lines, source identity tracking with document-unique display
// names, and sequential resolution of short-form references.
package cite

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind classifies how a citation refers to its source.
type Kind int

const (
	// KindFull is a first-citation form carrying enough identifying
	// information to mint a new source.
	KindFull Kind = iota

	// KindShort is an abbreviated reference (party or author fragment plus a
	// pincite) to a source cited earlier.
	KindShort

	// KindID is an "Id." reference to the immediately preceding citation.
	KindID

	// KindSupra is a "supra note N" reference to the source first cited in
	// footnote N.
	KindSupra

	// KindUnparseable is a line that matched no pattern, or the degraded
	// placeholder for a failed extraction.
	KindUnparseable
)

func (k Kind) String() string {
	switch k {
	case KindFull:
		return "full"
	case KindShort:
		return "short"
	case KindID:
		return "id_reference"
	case KindSupra:
		return "supra_reference"
	default:
		return "unparseable"
	}
}

// Citation is one identifiable reference within a footnote. Citations are
// created by the parser and consumed exactly once by the resolver.
type Citation struct {
	FootnoteIndex int
	CiteIndex     int    // 1-based, restarts per footnote
	RawText       string // as extracted, signal words preserved
	Kind          Kind
	Pincite       string
	SupraTarget   int    // footnote number a supra reference points at, 0 if absent
	SourceKey     string // set by the resolver on successful resolution
	Warnings      []Warning

	// stripped is RawText minus leading signal words; source identity is
	// derived from it so that "See X" and "X" name the same source.
	stripped string

	// shortText is the party/author fragment captured for short-form and
	// supra citations, used to match against registered sources.
	shortText string
}

func (c *Citation) warn(code WarningCode, msg string) {
	c.Warnings = append(c.Warnings, Warning{Code: code, Message: msg})
}

// Citation patterns, tried in order. These encode how early-draft authors
// tend to cite rather than strict Bluebook rules, so some boundaries are
// necessarily loose. The final catch-all is a full citation.
var (
	spaceRe  = regexp.MustCompile(`\s+`)
	signalRe = regexp.MustCompile(`(?i)^(see generally|see also|see, e\.g\.|but see|but cf\.|see|accord|cf\.|compare|contra|e\.g\.)[, ]+`)

	idRe    = regexp.MustCompile(`(?i)^id\b`)
	idPinRe = regexp.MustCompile(`(?i)^id\.?,? at (.+)$`)

	supraRe = regexp.MustCompile(`(?i)^(?P<shortcite>[^()]+?)[, ]+supra.?( note (?P<reference>[^ ,]+|\. \. \.)([, ].*)?)?$`)

	// Westlaw/LEXIS citations carry a pincite in their full form.
	lexisRe = regexp.MustCompile(`^.+ \d+ (WL|LEXIS) \d+,? at [*n.\d\-, ]+ \(.+\d{4}\)`)

	shortCaseRe = regexp.MustCompile(`^(?P<shortcite>.+?, ??\d+( [A-Z][^ ,]*| \d{1,2}[A-Z]{1,2})*)( \d+,?)?? at [*\d]`)
	constRe     = regexp.MustCompile(`^U\.S\. Const\.`)
	crossRefRe  = regexp.MustCompile(`(?i)^(\S{0,25} )?(supra|infra)\b`)
	veryShortRe = regexp.MustCompile(`^(?P<shortcite>[^,()]{0,40}?)([, ]+(at)?( (sec\.|¶¶?|art\.|para\.)?[\d\-, ]+)*)?$`)

	pinciteRe = regexp.MustCompile(`(?i)\bat ([*¶]?\d[\dn.*,\- ]*)`)
	letterRe  = regexp.MustCompile(`[A-Za-z]`)
)

// stripSignal removes a leading signal phrase ("See", "Cf.", ...) so that it
// does not leak into source identity. The raw text keeps the signal.
func stripSignal(text string) string {
	return signalRe.ReplaceAllString(text, "")
}

// classify determines the kind of a single citation line and captures the
// fragments later stages need: the short-form fragment, the supra target
// footnote, and the pincite.
func classify(c *Citation) {
	text := strings.TrimSpace(spaceRe.ReplaceAllString(c.stripped, " "))

	if !letterRe.MatchString(text) {
		c.Kind = KindUnparseable
		c.warn(WarnParse, "could not classify citation text")
		return
	}

	if idRe.MatchString(text) {
		c.Kind = KindID
		if m := idPinRe.FindStringSubmatch(text); m != nil {
			c.Pincite = trimPincite(m[1])
		}
		return
	}

	if m := supraRe.FindStringSubmatch(text); m != nil {
		c.Kind = KindSupra
		c.shortText = strings.TrimSpace(m[supraRe.SubexpIndex("shortcite")])
		if n, err := strconv.Atoi(m[supraRe.SubexpIndex("reference")]); err == nil {
			c.SupraTarget = n
		}
		c.Pincite = findPincite(text)
		return
	}

	if lexisRe.MatchString(text) {
		c.Kind = KindFull
		c.Pincite = findPincite(text)
		return
	}

	if m := shortCaseRe.FindStringSubmatch(text); m != nil {
		c.Kind = KindShort
		c.shortText = strings.TrimSpace(m[shortCaseRe.SubexpIndex("shortcite")])
		c.Pincite = findPincite(text)
		return
	}

	if strings.HasPrefix(text, "§") {
		c.Kind = KindShort
		c.shortText = text
		c.Pincite = findPincite(text)
		return
	}

	if constRe.MatchString(text) {
		c.Kind = KindFull
		return
	}

	// Internal cross-references ("see supra Part II") establish their own
	// identity rather than pointing at a prior authority.
	if crossRefRe.MatchString(text) {
		c.Kind = KindFull
		return
	}

	if m := veryShortRe.FindStringSubmatch(text); m != nil {
		c.Kind = KindShort
		c.shortText = strings.TrimSpace(m[veryShortRe.SubexpIndex("shortcite")])
		c.Pincite = findPincite(text)
		return
	}

	c.Kind = KindFull
	c.Pincite = findPincite(text)
}

func findPincite(text string) string {
	if m := pinciteRe.FindStringSubmatch(text); m != nil {
		return trimPincite(m[1])
	}
	return ""
}

func trimPincite(s string) string {
	return strings.Trim(s, " ,.")
}
