package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/penwell/penwell/internal/docinfo"
)

var pagesCmd = &cobra.Command{
	Use:   "pages <file.pdf>",
	Short: "Print page geometry for a PDF file",
	Long: `Print the page count and per-page dimensions of a PDF file.

Dimensions are reported in PDF user-space units, the same space stored
annotation dimensions use.

Examples:
  penwell pages book.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := docinfo.Load(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s: %d pages\n", doc.Path, doc.PageCount())
		for _, p := range doc.Pages {
			fmt.Printf("  page %3d: %.2f x %.2f\n", p.Page, p.Width, p.Height)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pagesCmd)
}
