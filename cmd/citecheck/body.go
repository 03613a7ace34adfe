package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var bodyCmd = &cobra.Command{
	Use:   "body <input.docx>",
	Short: "Extract the article body text to a text file",
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

		outPath := textOutputPath(cfg.Output.Folder, args[0], "body")
		if err := writeTextFile(outPath, doc.Body()); err != nil {
			return err
		}
		fmt.Printf("Successfully outputted to %s.\n", outPath)
		return nil
	},
}
