package cite

import "fmt"

// WarningCode identifies a class of recoverable citation problem. Codes are
// stable strings that appear in the output sheet.
type WarningCode string

const (
	// WarnParse marks a citation line that could not be classified.
	WarnParse WarningCode = "parse"

	// WarnUnresolvedReference marks an "Id." or supra citation whose target
	// could not be found.
	WarnUnresolvedReference WarningCode = "unresolved-reference"

	// WarnAmbiguousSource marks a source whose display name needed a
	// disambiguating suffix.
	WarnAmbiguousSource WarningCode = "ambiguous-source"

	// WarnAIFailure marks a footnote whose extraction call failed and was
	// degraded to the raw-text fallback.
	WarnAIFailure WarningCode = "ai-failure"
)

// Warning is a recoverable problem attached to a citation row. Warnings never
// abort a run; the sheet is always produced in full for human review.
type Warning struct {
	Code    WarningCode
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// JoinWarnings renders warnings for one output row with a stable separator.
func JoinWarnings(warnings []Warning) string {
	out := ""
	for i, w := range warnings {
		if i > 0 {
			out += "; "
		}
		out += w.String()
	}
	return out
}
