package cite

import (
	"errors"
	"strings"
	"testing"
)

func TestParseFootnote(t *testing.T) {
	t.Run("one citation per line", func(t *testing.T) {
		raw := "Smith v. Jones, 100 F.3d 1 (2d Cir. 1996)\nId. at 3\nSee Richard A. Posner, Economic Analysis of Law 3 (9th ed. 2014)"
		cs := ParseFootnote(7, raw)

		if len(cs) != 3 {
			t.Fatalf("got %d citations, want 3", len(cs))
		}
		for i, c := range cs {
			if c.FootnoteIndex != 7 {
				t.Errorf("citation %d footnote = %d, want 7", i, c.FootnoteIndex)
			}
			if c.CiteIndex != i+1 {
				t.Errorf("citation %d cite index = %d, want %d", i, c.CiteIndex, i+1)
			}
		}
	})

	t.Run("blank and marker lines skipped", func(t *testing.T) {
		cs := ParseFootnote(1, "\nSmith v. Jones, 100 F.3d 1 (2d Cir. 1996)\n\n  \nId.\n")
		if len(cs) != 2 {
			t.Fatalf("got %d citations, want 2", len(cs))
		}
		if cs[1].CiteIndex != 2 {
			t.Errorf("second cite index = %d, want 2", cs[1].CiteIndex)
		}
	})

	t.Run("no-citation marker yields nothing", func(t *testing.T) {
		if cs := ParseFootnote(1, "-"); cs != nil {
			t.Errorf("got %v, want nil", cs)
		}
		if cs := ParseFootnote(1, ""); cs != nil {
			t.Errorf("got %v, want nil", cs)
		}
	})

	t.Run("raw text keeps the signal", func(t *testing.T) {
		cs := ParseFootnote(1, "See Smith v. Jones, 100 F.3d 1 (2d Cir. 1996)")
		if !strings.HasPrefix(cs[0].RawText, "See ") {
			t.Errorf("raw text = %q, want the signal preserved", cs[0].RawText)
		}
	})
}

func TestParseFailure(t *testing.T) {
	cause := errors.New("model timed out")
	cs := ParseFailure(12, "12 See generally the sources cited throughout.", cause)

	if len(cs) != 1 {
		t.Fatalf("got %d citations, want 1", len(cs))
	}
	c := cs[0]
	if c.Kind != KindUnparseable {
		t.Errorf("kind = %s, want unparseable", c.Kind)
	}
	if c.FootnoteIndex != 12 || c.CiteIndex != 1 {
		t.Errorf("position = (%d, %d), want (12, 1)", c.FootnoteIndex, c.CiteIndex)
	}
	if len(c.Warnings) != 1 || c.Warnings[0].Code != WarnAIFailure {
		t.Fatalf("warnings = %v, want one %s warning", c.Warnings, WarnAIFailure)
	}
	if !strings.Contains(c.Warnings[0].Message, "model timed out") {
		t.Errorf("warning %q does not carry the cause", c.Warnings[0].Message)
	}
}
