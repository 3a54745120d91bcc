package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/penwell/penwell/internal/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file.json>",
	Short: "Validate an annotation file against the wire schema",
	Long: `Validate a JSON file of annotations against the wire schema.

The file may contain a single annotation object or an array of them. Each
annotation is checked for a valid type and the location fields that type
requires.

Examples:
  penwell validate annotations.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		trimmed := bytes.TrimSpace(data)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			err = schema.ValidateAnnotations(trimmed)
		} else {
			err = schema.ValidateAnnotation(trimmed)
		}
		if err != nil {
			return err
		}

		fmt.Printf("%s: valid\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
