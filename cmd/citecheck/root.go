package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"citecheck/version"
)

var (
	cfgFile      string
	outputFolder string
	numAckNotes  int
	enableMarkup bool
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "citecheck",
	Short: "Article draft processing for law journal citechecking",
	Long: `Citecheck processes law journal article drafts (.docx) for editing.

It extracts body text and footnotes, and builds a tab-separated
citechecking sheet: each footnote is decomposed into individual citations
(via Vertex AI, OpenAI, or a naive echo mode), short forms like "Id." and
"supra note N" are resolved to the source they point at, and every source
gets one consistent display name across the whole document.`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.citecheck/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&outputFolder, "output-folder", "", "output folder for results (default from config)",
	)
	rootCmd.PersistentFlags().IntVar(
		&numAckNotes, "acknowledgment-footnotes", -1, "number of acknowledgment footnotes to skip (default from config)",
	)
	rootCmd.PersistentFlags().BoolVar(
		&enableMarkup, "markup", false, "preserve italics/small caps as HTML markup",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable debug logging",
	)

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		// API keys may live in a .env file next to the draft.
		_ = godotenv.Load()

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	}

	rootCmd.AddCommand(citationsCmd)
	rootCmd.AddCommand(footnotesCmd)
	rootCmd.AddCommand(bodyCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
