package extract

import (
	"context"
	"errors"
	"testing"
)

func TestNaiveExtractor(t *testing.T) {
	ex := NewNaiveExtractor()
	ctx := context.Background()

	t.Run("echoes the footnote", func(t *testing.T) {
		got, err := ex.Extract(ctx, "Smith v. Jones, 100 F.3d 1 (2d Cir. 1996).")
		if err != nil {
			t.Fatalf("Extract: %v", err)
		}
		if got != "Smith v. Jones, 100 F.3d 1 (2d Cir. 1996)." {
			t.Errorf("got %q", got)
		}
	})

	t.Run("blank footnote becomes the no-citation marker", func(t *testing.T) {
		got, err := ex.Extract(ctx, "   \n ")
		if err != nil {
			t.Fatalf("Extract: %v", err)
		}
		if got != "-" {
			t.Errorf("got %q, want %q", got, "-")
		}
	})
}

func TestNewUnknownPlatform(t *testing.T) {
	_, err := New(context.Background(), Options{Platform: "grok"})
	if !errors.Is(err, ErrUnknownPlatform) {
		t.Fatalf("err = %v, want ErrUnknownPlatform", err)
	}
}

func TestNewNaive(t *testing.T) {
	ex, err := New(context.Background(), Options{Platform: PlatformNaive})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if ex.Name() != PlatformNaive {
		t.Errorf("Name() = %q, want %q", ex.Name(), PlatformNaive)
	}
}

func TestMockExtractorRecordsCalls(t *testing.T) {
	m := NewMockExtractor()
	m.Responses["fn1"] = "Smith v. Jones, 100 F.3d 1 (2d Cir. 1996)"
	m.FailFor["fn2"] = true

	ctx := context.Background()
	if got, err := m.Extract(ctx, "fn1"); err != nil || got != m.Responses["fn1"] {
		t.Errorf("Extract(fn1) = %q, %v", got, err)
	}
	if _, err := m.Extract(ctx, "fn2"); err == nil {
		t.Error("Extract(fn2) should fail")
	}
	if got, err := m.Extract(ctx, "fn3"); err != nil || got != "fn3" {
		t.Errorf("Extract(fn3) = %q, %v, want the input echoed", got, err)
	}

	calls := m.Calls()
	if len(calls) != 3 || calls[0] != "fn1" || calls[1] != "fn2" || calls[2] != "fn3" {
		t.Errorf("calls = %v", calls)
	}
}
