// Package sheet serializes the citechecking table as tab-separated values.
package sheet

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"citecheck/internal/cite"
)

// header is the first row of every citation sheet.
const header = "Fn#\tCite#\tFootnote Text\tSource Name\tWarnings"

// Write serializes rows to w, one header row then one row per citation (or
// one placeholder row per citation-less footnote).
func Write(w io.Writer, rows []cite.OutputRow) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, header); err != nil {
		return err
	}

	for _, row := range rows {
		citeNum := ""
		if row.CiteIndex > 0 {
			citeNum = strconv.Itoa(row.CiteIndex)
		}
		fields := []string{
			strconv.Itoa(row.FootnoteIndex),
			citeNum,
			sanitize(row.FootnoteText),
			sanitize(row.SourceName),
			sanitize(cite.JoinWarnings(row.Warnings)),
		}
		if _, err := fmt.Fprintln(bw, strings.Join(fields, "\t")); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes the sheet to path, creating parent directories as needed.
func WriteFile(path string, rows []cite.OutputRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := Write(f, rows); err != nil {
		f.Close()
		return fmt.Errorf("failed to write sheet: %w", err)
	}
	return f.Close()
}

// OutputPath derives the sheet filename from the input document name:
// <output>/<base>_citations.tsv.
func OutputPath(outputDir, inputFile string) string {
	base := strings.TrimSuffix(filepath.Base(inputFile), filepath.Ext(inputFile))
	return filepath.Join(outputDir, base+"_citations.tsv")
}

var fieldSanitizer = strings.NewReplacer("\t", " ", "\r", " ", "\n", " ")

// sanitize keeps embedded tabs and newlines from breaking the TSV layout.
func sanitize(s string) string {
	return fieldSanitizer.Replace(s)
}
