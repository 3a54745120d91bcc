package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/golang/geo/r2"
	"github.com/spf13/cobra"

	"github.com/penwell/penwell/internal/annotation"
	"github.com/penwell/penwell/internal/controller"
	"github.com/penwell/penwell/internal/geometry"
	"github.com/penwell/penwell/internal/spatial"
)

var (
	queryPage   int
	queryX      float64
	queryY      float64
	queryRadius float64
)

// annItem adapts a stored annotation to the spatial index.
type annItem struct {
	ann    annotation.Annotation
	bounds r2.Rect
}

func (a *annItem) Bounds() r2.Rect { return a.bounds }

var queryCmd = &cobra.Command{
	Use:   "query <file.json>",
	Short: "Find annotations near a point",
	Long: `Load an annotation file, index it by page, and print the annotations
whose bounds fall within the query box around a point.

Coordinates are in document space (PDF user-space units, origin at the
bottom-left).

Examples:
  penwell query annotations.json --page 1 --x 120.5 --y 430
  penwell query annotations.json --page 3 --x 50 --y 50 --radius 10`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		var anns []annotation.Annotation
		if err := json.Unmarshal(data, &anns); err != nil {
			return fmt.Errorf("failed to decode annotation list: %w", err)
		}

		pages := spatial.NewPageSet()
		indexed := 0
		for _, ann := range anns {
			if ann.Location == nil {
				continue
			}
			bounds, ok := geometry.LocationBounds(ann.Location)
			if !ok || !geometry.RectValid(bounds) {
				continue
			}
			pages.Page(ann.Location.PageNumber()).Insert(&annItem{ann: ann, bounds: bounds})
			indexed++
		}

		ix, ok := pages.Lookup(queryPage)
		if !ok {
			fmt.Printf("indexed %d annotations; page %d has none\n", indexed, queryPage)
			return nil
		}

		query := geometry.RectFromBounds(
			queryX-queryRadius, queryY-queryRadius,
			queryX+queryRadius, queryY+queryRadius,
		)
		hits := ix.Search(query)

		fmt.Printf("indexed %d annotations; %d hit(s) at page %d (%.2f, %.2f)\n",
			indexed, len(hits), queryPage, queryX, queryY)
		for _, hit := range hits {
			item := hit.(*annItem)
			fmt.Printf("  %s  %-17s thread=%s\n", item.ann.ID, item.ann.Type, item.ann.ThreadID)
		}
		return nil
	},
}

func init() {
	queryCmd.Flags().IntVar(&queryPage, "page", 1, "Page number to query")
	queryCmd.Flags().Float64Var(&queryX, "x", 0, "X coordinate in document space")
	queryCmd.Flags().Float64Var(&queryY, "y", 0, "Y coordinate in document space")
	queryCmd.Flags().Float64Var(&queryRadius, "radius", controller.BorderOffset, "Half-width of the query box")

	rootCmd.AddCommand(queryCmd)
}
