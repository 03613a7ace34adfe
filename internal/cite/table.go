package cite

// Footnote is one ordered annotation block of the document, as the table
// assembler needs it. Acknowledgment footnotes are filtered out upstream.
type Footnote struct {
	Index int
	Text  string
}

// OutputRow is one line of the citechecking sheet. CiteIndex 0 marks the
// placeholder row emitted for a footnote that produced no citations, so
// editors can see the footnote was reviewed.
type OutputRow struct {
	FootnoteIndex int
	CiteIndex     int
	FootnoteText  string // filled only on a footnote's first row
	SourceName    string
	Warnings      []Warning
}

// AssembleTable combines resolved citations into ordered output rows. The
// footnote text appears only on the row with cite index 1; warnings attached
// to a citation's source (disambiguation suffixes) are carried onto every
// row bound to that source.
func AssembleTable(footnotes []Footnote, citations []Citation, reg *Registry) []OutputRow {
	byFootnote := make(map[int][]Citation, len(footnotes))
	for _, c := range citations {
		byFootnote[c.FootnoteIndex] = append(byFootnote[c.FootnoteIndex], c)
	}

	var rows []OutputRow
	for _, fn := range footnotes {
		cits := byFootnote[fn.Index]
		if len(cits) == 0 {
			rows = append(rows, OutputRow{
				FootnoteIndex: fn.Index,
				FootnoteText:  fn.Text,
			})
			continue
		}

		for _, c := range cits {
			row := OutputRow{
				FootnoteIndex: c.FootnoteIndex,
				CiteIndex:     c.CiteIndex,
				Warnings:      c.Warnings,
			}
			if c.CiteIndex == 1 {
				row.FootnoteText = fn.Text
			}
			if s := reg.Get(c.SourceKey); s != nil {
				row.SourceName = s.CanonicalName
				row.Warnings = append(row.Warnings[:len(row.Warnings):len(row.Warnings)], s.Warnings...)
			}
			rows = append(rows, row)
		}
	}
	return rows
}
