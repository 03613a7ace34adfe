package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var footnotesCmd = &cobra.Command{
	Use:   "footnotes <input.docx>",
	Short: "Extract numbered footnotes to a text file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		doc, err := openDocument(cfg, args[0])
		if err != nil {
			return err
		}

		var b strings.Builder
		for _, fn := range doc.Numbered() {
			fmt.Fprintf(&b, "%d %s\n", fn.Index, fn.Text)
		}

		outPath := textOutputPath(cfg.Output.Folder, args[0], "footnotes")
		if err := writeTextFile(outPath, b.String()); err != nil {
			return err
		}
		fmt.Printf("Successfully outputted to %s.\n", outPath)
		return nil
	},
}
