package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"citecheck/internal/config"
	"citecheck/internal/docx"
)

// loadConfig loads configuration and applies command-line flag overrides.
func loadConfig() (*config.Config, error) {
	mgr, err := config.NewManager(cfgFile)
	if err != nil {
		return nil, err
	}
	return applyOverrides(mgr.Get()), nil
}

// applyOverrides copies cfg and layers command-line flags on top, so flags
// also win over hot-reloaded configs.
func applyOverrides(cfg *config.Config) *config.Config {
	c := *cfg
	if outputFolder != "" {
		c.Output.Folder = outputFolder
	}
	if numAckNotes >= 0 {
		c.Document.AcknowledgmentFootnotes = numAckNotes
	}
	if enableMarkup {
		c.Document.EnableMarkup = true
	}
	return &c
}

// openDocument validates the input path and parses the .docx container.
func openDocument(cfg *config.Config, path string) (*docx.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("input file %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("input file %s is a directory", path)
	}

	return docx.Open(path, docx.Options{
		AcknowledgmentFootnotes: cfg.Document.AcknowledgmentFootnotes,
		EnableMarkup:            cfg.Document.EnableMarkup,
	})
}

// textOutputPath derives <output>/<base>_<kind>.txt from the input filename.
func textOutputPath(folder, inputFile, kind string) string {
	base := strings.TrimSuffix(filepath.Base(inputFile), filepath.Ext(inputFile))
	return filepath.Join(folder, base+"_"+kind+".txt")
}

// writeTextFile writes content to path, creating the output folder first.
func writeTextFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
