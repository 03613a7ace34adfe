package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"citecheck/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config.yaml to the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		const path = "config.yaml"
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, refusing to overwrite", path)
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Printf("Wrote %s.\n", path)
		return nil
	},
}
