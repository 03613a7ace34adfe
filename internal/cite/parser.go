package cite

import (
	"fmt"
	"strings"
)

// ParseFootnote turns one extraction blob into the footnote's ordered
// citations. The extractor emits one logical citation per line (or the whole
// footnote as one line in naive mode). A blob that is empty or the "-"
// no-citation marker yields no citations at all; the footnote still gets a
// placeholder row at assembly time.
//
// Parsing is pure: it never consults or mutates cross-footnote state.
func ParseFootnote(footnoteIndex int, raw string) []Citation {
	var citations []Citation

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == "-" {
			continue
		}

		c := Citation{
			FootnoteIndex: footnoteIndex,
			CiteIndex:     len(citations) + 1,
			RawText:       line,
			stripped:      stripSignal(line),
		}
		classify(&c)
		citations = append(citations, c)
	}

	return citations
}

// ParseFailure builds the degraded result for a footnote whose extraction
// call failed: a single unparseable citation carrying the literal footnote
// text, so the editor still sees the footnote in the sheet.
func ParseFailure(footnoteIndex int, footnoteText string, cause error) []Citation {
	c := Citation{
		FootnoteIndex: footnoteIndex,
		CiteIndex:     1,
		RawText:       footnoteText,
		Kind:          KindUnparseable,
	}
	c.warn(WarnAIFailure, fmt.Sprintf("citation extraction failed for this footnote: %v", cause))
	return []Citation{c}
}
