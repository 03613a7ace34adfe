// Package pipeline drives a document run: parallel footnote extraction
// feeding the strictly sequential citation resolution pass.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"citecheck/internal/cite"
	"citecheck/internal/docx"
	"citecheck/internal/extract"
)

// ErrNoFootnotes is returned when the document has no numbered footnotes.
// This is fatal before any row is produced.
var ErrNoFootnotes = errors.New("document contains no numbered footnotes")

// Options configures a run.
type Options struct {
	// Workers bounds concurrent extraction calls. The extraction call is the
	// latency-dominant step and is stateless per footnote, so parallel
	// invocation is safe; results are buffered and consumed in ascending
	// footnote order.
	Workers int

	Logger *slog.Logger
}

// Run extracts, parses, and resolves citations for every footnote, returning
// output rows in document order. A failed extraction degrades its footnote
// to the raw-text fallback and never cancels the run; only context
// cancellation aborts.
func Run(ctx context.Context, footnotes []docx.Footnote, ex extract.Extractor, opts Options) ([]cite.OutputRow, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}

	if len(footnotes) == 0 {
		return nil, ErrNoFootnotes
	}

	logger.Info("starting citation run",
		"footnotes", len(footnotes), "platform", ex.Name(), "workers", workers)

	// Extraction stage: embarrassingly parallel across footnotes. Results
	// land in a slice indexed by document position, the ordered collection
	// point the resolver consumes from.
	type extraction struct {
		raw string
		err error
	}
	results := make([]extraction, len(footnotes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, fn := range footnotes {
		g.Go(func() error {
			logger.Debug("decomposing footnote", "footnote", fn.Index)
			raw, err := ex.Extract(gctx, fn.Text)
			results[i] = extraction{raw: raw, err: err}
			return nil
		})
	}
	// Workers never return errors; per-footnote failures degrade below.
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("citation run cancelled: %w", err)
	}

	// Resolution stage: one sequential pass in strict document order.
	cf := make([]cite.Footnote, len(footnotes))
	var citations []cite.Citation
	for i, fn := range footnotes {
		cf[i] = cite.Footnote{Index: fn.Index, Text: fn.Text}

		if results[i].err != nil {
			logger.Warn("extraction failed, degrading footnote to raw text",
				"footnote", fn.Index, "error", results[i].err)
			citations = append(citations, cite.ParseFailure(fn.Index, fn.Text, results[i].err)...)
			continue
		}
		citations = append(citations, cite.ParseFootnote(fn.Index, results[i].raw)...)
	}

	reg := cite.NewRegistry()
	cite.NewResolver(reg, logger).Resolve(citations)
	rows := cite.AssembleTable(cf, citations, reg)

	logger.Info("citation run complete",
		"rows", len(rows), "citations", len(citations), "sources", reg.Len())
	return rows, nil
}
