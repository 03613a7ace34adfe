// Package docx reads Word documents (.docx containers) and exposes their
// footnotes and body text. It understands just enough of the WordprocessingML
// run model to flatten text and, when markup mode is on, to preserve italics
// and small caps as HTML tags for publication workflows.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

const (
	footnotesPath = "word/footnotes.xml"
	documentPath  = "word/document.xml"
)

// Footnote is one annotation block in document order. Index is the
// substantive footnote number (raw id minus the acknowledgment offset);
// acknowledgment footnotes keep Index values below one and are excluded from
// substantive numbering while still occupying their position.
type Footnote struct {
	Index            int
	Text             string
	IsAcknowledgment bool
}

// Options controls reading behavior.
type Options struct {
	// AcknowledgmentFootnotes is the number of leading author-acknowledgment
	// footnotes to exclude from substantive numbering.
	AcknowledgmentFootnotes int

	// EnableMarkup preserves italics, small caps, and non-breaking spaces as
	// HTML markup instead of flattening to plain text.
	EnableMarkup bool
}

// Document is a parsed .docx file. Footnotes and paragraphs are read once at
// open time and never mutated.
type Document struct {
	opts       Options
	footnotes  []Footnote
	paragraphs []string
}

// Open reads and parses the .docx file at path.
func Open(path string, opts Options) (*Document, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document %s: %w", path, err)
	}
	defer zr.Close()
	return fromZip(&zr.Reader, opts)
}

// NewReader parses a .docx container from an in-memory or seekable source.
func NewReader(r io.ReaderAt, size int64, opts Options) (*Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to read document container: %w", err)
	}
	return fromZip(zr, opts)
}

func fromZip(zr *zip.Reader, opts Options) (*Document, error) {
	d := &Document{opts: opts}

	fr, err := openPart(zr, footnotesPath)
	if err != nil {
		return nil, err
	}
	d.footnotes, err = parseFootnotes(fr, opts)
	fr.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to parse footnotes: %w", err)
	}

	br, err := openPart(zr, documentPath)
	if err != nil {
		return nil, err
	}
	d.paragraphs, err = parseParagraphs(br, opts)
	br.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to parse document body: %w", err)
	}

	return d, nil
}

func openPart(zr *zip.Reader, name string) (io.ReadCloser, error) {
	for _, f := range zr.File {
		if f.Name == name {
			return f.Open()
		}
	}
	return nil, fmt.Errorf("document container has no %s part", name)
}

// Footnotes returns all footnotes in document order, acknowledgments
// included.
func (d *Document) Footnotes() []Footnote {
	return d.footnotes
}

// Numbered returns only the substantive footnotes, index 1 upward.
func (d *Document) Numbered() []Footnote {
	var out []Footnote
	for _, fn := range d.footnotes {
		if !fn.IsAcknowledgment {
			out = append(out, fn)
		}
	}
	return out
}

var permaRe = regexp.MustCompile(`https://perma\.cc/\S{4}-\S{4}`)

// Body returns the document body text, paragraphs separated by blank lines
// with tab indentation. In markup mode footnote references are replaced by
// inline footnote spans and perma.cc links become anchors.
func (d *Document) Body() string {
	text := strings.Join(d.paragraphs, "\n\n\t")
	if !d.opts.EnableMarkup {
		return text
	}

	// Acknowledgment footnote markers vanish; the rest carry their footnote.
	for i := 0; i < d.opts.AcknowledgmentFootnotes; i++ {
		text = strings.Replace(text, footnoteMarker, "", 1)
	}
	for _, fn := range d.Numbered() {
		span := fmt.Sprintf(`<span class="footnote">[footnote %d]%s[/footnote]</span>`, fn.Index, fn.Text)
		text = strings.Replace(text, footnoteMarker, span, 1)
	}

	return permaRe.ReplaceAllStringFunc(text, func(url string) string {
		return fmt.Sprintf(`<a href="%s">%s</a>`, url, url)
	})
}

// --- WordprocessingML parsing ----------------------------------------------

// footnoteMarker stands in for a footnote reference until footnote text is
// injected (markup mode only).
const footnoteMarker = "\x00footnote\x00"

// run accumulates one w:r text run with its relevant formatting flags.
type run struct {
	italic    bool
	smallCaps bool
	text      strings.Builder
}

// flush renders the run, applying markup when enabled.
func (r *run) flush(markup bool) string {
	text := r.text.String()
	if text == "" {
		return ""
	}
	if !markup {
		return strings.ReplaceAll(text, " ", " ")
	}
	text = strings.ReplaceAll(text, " ", "&nbsp;")
	if r.smallCaps {
		text = `<span class="citation">` + text + `</span>`
	}
	if r.italic {
		text = "<em>" + text + "</em>"
	}
	return text
}

func attrValue(e xml.StartElement, name string) string {
	for _, a := range e.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// toggleOn interprets a w:i / w:smallCaps property element, which is "on"
// unless its val attribute says otherwise.
func toggleOn(e xml.StartElement) bool {
	switch strings.ToLower(attrValue(e, "val")) {
	case "false", "0", "off", "none":
		return false
	}
	return true
}

func parseFootnotes(r io.Reader, opts Options) ([]Footnote, error) {
	dec := xml.NewDecoder(r)

	var (
		out     []Footnote
		curID   int
		curSkip bool // separator/continuation footnotes
		inNote  bool
		buf     strings.Builder
	)
	walk := newRunWalker(opts.EnableMarkup, &buf)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "footnote" {
				id, _ := strconv.Atoi(attrValue(t, "id"))
				kind := attrValue(t, "type")
				curID = id
				curSkip = kind == "separator" || kind == "continuationSeparator"
				inNote = true
				buf.Reset()
				continue
			}
			if inNote {
				walk.start(t)
			}
		case xml.CharData:
			if inNote {
				walk.chars(t)
			}
		case xml.EndElement:
			if t.Name.Local == "footnote" {
				inNote = false
				if !curSkip {
					out = append(out, makeFootnote(curID, buf.String(), opts))
				}
				continue
			}
			if inNote {
				walk.end(t)
			}
		}
	}
	return out, nil
}

func makeFootnote(id int, text string, opts Options) Footnote {
	index := id - opts.AcknowledgmentFootnotes
	text = strings.TrimLeft(text, " .")
	text = strings.Join(strings.Fields(text), " ")
	return Footnote{
		Index:            index,
		Text:             text,
		IsAcknowledgment: index < 1,
	}
}

func parseParagraphs(r io.Reader, opts Options) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		paragraphs []string
		buf        strings.Builder
		inPara     bool
	)
	walk := newRunWalker(opts.EnableMarkup, &buf)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inPara = true
				buf.Reset()
			case "footnoteReference":
				if inPara && opts.EnableMarkup {
					buf.WriteString(footnoteMarker)
				}
			default:
				if inPara {
					walk.start(t)
				}
			}
		case xml.CharData:
			if inPara {
				walk.chars(t)
			}
		case xml.EndElement:
			if t.Name.Local == "p" {
				inPara = false
				paragraphs = append(paragraphs, buf.String())
				continue
			}
			if inPara {
				walk.end(t)
			}
		}
	}
	return paragraphs, nil
}

// runWalker tracks run boundaries and formatting while walking tokens inside
// a footnote or paragraph, writing flattened text to out.
type runWalker struct {
	markup  bool
	out     *strings.Builder
	cur     *run
	inText  bool
	inField bool // w:instrText cross-reference field codes are dropped
}

func newRunWalker(markup bool, out *strings.Builder) *runWalker {
	return &runWalker{markup: markup, out: out}
}

func (w *runWalker) start(t xml.StartElement) {
	switch t.Name.Local {
	case "r":
		w.cur = &run{}
	case "i":
		if w.cur != nil && toggleOn(t) {
			w.cur.italic = true
		}
	case "smallCaps":
		if w.cur != nil && toggleOn(t) {
			w.cur.smallCaps = true
		}
	case "t":
		w.inText = true
	case "instrText":
		w.inField = true
	case "tab":
		if w.cur != nil {
			w.cur.text.WriteByte(' ')
		}
	}
}

func (w *runWalker) chars(t xml.CharData) {
	if w.inText && !w.inField && w.cur != nil {
		w.cur.text.Write(t)
	}
}

func (w *runWalker) end(t xml.EndElement) {
	switch t.Name.Local {
	case "r":
		if w.cur != nil {
			w.out.WriteString(w.cur.flush(w.markup))
			w.cur = nil
		}
	case "t":
		w.inText = false
	case "instrText":
		w.inField = false
	}
}
