package docx

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"
)

const footnotesXML = `<?xml version="1.0" encoding="UTF-8"?>
<w:footnotes xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:footnote w:type="separator" w:id="-1"><w:p><w:r><w:t>---</w:t></w:r></w:p></w:footnote>
  <w:footnote w:type="continuationSeparator" w:id="0"><w:p><w:r><w:t>---</w:t></w:r></w:p></w:footnote>
  <w:footnote w:id="1"><w:p><w:r><w:t xml:space="preserve"> . The author thanks the editors.</w:t></w:r></w:p></w:footnote>
  <w:footnote w:id="2"><w:p><w:r><w:t>Waller Peanut Co. v. Tripplehorn, 209   S.W.2d 404 (Tex. Civ. App. 1948).</w:t></w:r></w:p></w:footnote>
  <w:footnote w:id="3"><w:p>
    <w:r><w:rPr><w:i/></w:rPr><w:t>Id.</w:t></w:r>
    <w:r><w:t xml:space="preserve"> at 406, </w:t></w:r>
    <w:r><w:instrText>NOTEREF _Ref12345</w:instrText></w:r>
    <w:r><w:t>https://perma.cc/AB12-CD34.</w:t></w:r>
  </w:p></w:footnote>
</w:footnotes>`

const documentXML = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Peanut futures law remains unsettled.</w:t></w:r><w:r><w:footnoteReference w:id="1"/></w:r><w:r><w:footnoteReference w:id="2"/></w:r></w:p>
    <w:p><w:r><w:t>The Texas court disagreed.</w:t></w:r><w:r><w:footnoteReference w:id="3"/></w:r></w:p>
  </w:body>
</w:document>`

func buildDocx(t *testing.T, parts map[string]string) (*bytes.Reader, int64) {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		f, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close container: %v", err)
	}
	return bytes.NewReader(buf.Bytes()), int64(buf.Len())
}

func openFixture(t *testing.T, opts Options) *Document {
	t.Helper()
	r, size := buildDocx(t, map[string]string{
		footnotesPath: footnotesXML,
		documentPath:  documentXML,
	})
	doc, err := NewReader(r, size, opts)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	return doc
}

func TestFootnotes(t *testing.T) {
	doc := openFixture(t, Options{AcknowledgmentFootnotes: 1})

	all := doc.Footnotes()
	if len(all) != 3 {
		t.Fatalf("got %d footnotes, want 3 (separators skipped)", len(all))
	}

	ack := all[0]
	if !ack.IsAcknowledgment || ack.Index != 0 {
		t.Errorf("acknowledgment footnote = %+v, want index 0 and IsAcknowledgment", ack)
	}
	if ack.Text != "The author thanks the editors." {
		t.Errorf("acknowledgment text = %q, leading dot not trimmed", ack.Text)
	}

	numbered := doc.Numbered()
	if len(numbered) != 2 {
		t.Fatalf("got %d numbered footnotes, want 2", len(numbered))
	}
	if numbered[0].Index != 1 || numbered[1].Index != 2 {
		t.Errorf("numbered indexes = %d, %d, want 1, 2", numbered[0].Index, numbered[1].Index)
	}
	if numbered[0].Text != "Waller Peanut Co. v. Tripplehorn, 209 S.W.2d 404 (Tex. Civ. App. 1948)." {
		t.Errorf("footnote 1 text = %q, run whitespace not collapsed", numbered[0].Text)
	}
}

func TestFootnoteFieldCodesDropped(t *testing.T) {
	doc := openFixture(t, Options{AcknowledgmentFootnotes: 1})

	fn := doc.Numbered()[1]
	if strings.Contains(fn.Text, "NOTEREF") {
		t.Errorf("footnote text %q leaked a field code", fn.Text)
	}
	if fn.Text != "Id. at 406, https://perma.cc/AB12-CD34." {
		t.Errorf("footnote text = %q", fn.Text)
	}
}

func TestFootnoteMarkup(t *testing.T) {
	doc := openFixture(t, Options{AcknowledgmentFootnotes: 1, EnableMarkup: true})

	fn := doc.Numbered()[1]
	if !strings.Contains(fn.Text, "<em>Id.</em>") {
		t.Errorf("footnote text = %q, want italics preserved as <em>", fn.Text)
	}
}

func TestBody(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		doc := openFixture(t, Options{AcknowledgmentFootnotes: 1})
		body := doc.Body()
		if !strings.Contains(body, "Peanut futures law remains unsettled.") {
			t.Errorf("body = %q", body)
		}
		if strings.Contains(body, "<") || strings.Contains(body, "\x00") {
			t.Errorf("plain body contains markup or markers: %q", body)
		}
		if !strings.Contains(body, "\n\n\t") {
			t.Error("paragraphs are not separated by blank line and tab")
		}
	})

	t.Run("markup", func(t *testing.T) {
		doc := openFixture(t, Options{AcknowledgmentFootnotes: 1, EnableMarkup: true})
		body := doc.Body()

		if !strings.Contains(body, `<span class="footnote">[footnote 1]`) {
			t.Errorf("body = %q, want footnote 1 injected inline", body)
		}
		if !strings.Contains(body, `<a href="https://perma.cc/AB12-CD34">`) {
			t.Errorf("body = %q, want perma.cc link wrapped in an anchor", body)
		}
		// The acknowledgment marker vanishes rather than becoming a span.
		if strings.Contains(body, "[footnote 0]") || strings.Contains(body, "\x00") {
			t.Errorf("body = %q, acknowledgment marker leaked", body)
		}
	})
}

func TestMissingPart(t *testing.T) {
	r, size := buildDocx(t, map[string]string{documentPath: documentXML})
	if _, err := NewReader(r, size, Options{}); err == nil {
		t.Fatal("expected an error for a container without footnotes")
	}
}
