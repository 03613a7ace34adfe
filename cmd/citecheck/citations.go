package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"citecheck/internal/config"
	"citecheck/internal/extract"
	"citecheck/internal/pipeline"
	"citecheck/internal/sheet"
)

var watchInput bool

var citationsCmd = &cobra.Command{
	Use:   "citations <input.docx>",
	Short: "Extract citations from footnotes into a citechecking sheet",
	Long: `Decomposes every numbered footnote into individual citations using the
configured AI platform, resolves "Id." and "supra note N" references, assigns
each source a document-unique display name, and writes a tab-separated sheet
for cite checkers.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cfg := applyOverrides(mgr.Get())

		ctx := cmd.Context()
		ex, err := buildExtractor(ctx, cfg)
		if err != nil {
			return err
		}

		if !watchInput {
			return runCitations(ctx, cfg, ex, args[0])
		}
		return watchCitations(ctx, mgr, cfg, ex, args[0])
	},
}

func init() {
	citationsCmd.Flags().BoolVar(
		&watchInput, "watch", false, "re-run whenever the input document changes",
	)
}

func buildExtractor(ctx context.Context, cfg *config.Config) (extract.Extractor, error) {
	return extract.New(ctx, extract.Options{
		Platform:          cfg.AI.Platform,
		Model:             cfg.AI.Model,
		APIKey:            cfg.ResolvedAPIKey(),
		Project:           cfg.AI.Project,
		Location:          cfg.AI.Location,
		Temperature:       cfg.AI.Temperature,
		SystemInstruction: cfg.AI.SystemInstruction,
		MaxRetries:        cfg.AI.MaxRetries,
	})
}

func runCitations(ctx context.Context, cfg *config.Config, ex extract.Extractor, input string) error {
	doc, err := openDocument(cfg, input)
	if err != nil {
		return err
	}

	rows, err := pipeline.Run(ctx, doc.Numbered(), ex, pipeline.Options{
		Workers: cfg.Pipeline.Workers,
	})
	if err != nil {
		return err
	}

	outPath := sheet.OutputPath(cfg.Output.Folder, input)
	if err := sheet.WriteFile(outPath, rows); err != nil {
		return err
	}
	fmt.Printf("Successfully outputted to %s.\n", outPath)
	return nil
}

// watchCitations runs once, then re-runs whenever the draft is saved.
// Editors iterate on drafts; watching saves them re-invoking the tool.
// Config edits are picked up too: the next re-run uses the reloaded config
// and a freshly built extractor.
func watchCitations(ctx context.Context, mgr *config.Manager, cfg *config.Config, ex extract.Extractor, input string) error {
	if err := runCitations(ctx, cfg, ex, input); err != nil {
		return err
	}

	var mu sync.Mutex
	mgr.OnChange(func(c *config.Config) {
		next := applyOverrides(c)
		nextEx, err := buildExtractor(ctx, next)
		if err != nil {
			slog.Warn("config reloaded but extractor rebuild failed, keeping previous", "error", err)
			return
		}
		mu.Lock()
		cfg, ex = next, nextEx
		mu.Unlock()
		slog.Info("configuration reloaded", "platform", next.AI.Platform)
	})
	mgr.WatchConfig()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors replace the file on save, which drops
	// a watch registered on the file itself.
	if err := watcher.Add(filepath.Dir(input)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", input, err)
	}
	slog.Info("watching for changes", "file", input)

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-watcher.Events:
			if filepath.Clean(ev.Name) != filepath.Clean(input) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debounce = time.After(500 * time.Millisecond)
		case err := <-watcher.Errors:
			slog.Warn("watch error", "error", err)
		case <-debounce:
			debounce = nil
			mu.Lock()
			curCfg, curEx := cfg, ex
			mu.Unlock()
			slog.Info("document changed, re-running", "file", input)
			if err := runCitations(ctx, curCfg, curEx, input); err != nil {
				slog.Error("run failed", "error", err)
			}
		}
	}
}
