package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/penwell/penwell/internal/annotation"
	"github.com/penwell/penwell/internal/annotator"
	"github.com/penwell/penwell/internal/config"
)

var modesViewer string

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "Show which annotation modes resolve for a viewer",
	Long: `Resolve the annotator profile and effective annotation types for a
viewer, honoring the per-viewer options in the config file.

Examples:
  penwell modes --viewer Document
  penwell modes --viewer Image --config config.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cm, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}

		perms := annotation.FilePermissions{
			CanAnnotate:           true,
			CanViewAnnotationsAll: true,
		}
		resolved := annotator.Resolve(perms, modesViewer, cm.Get().ViewerOptions(modesViewer))
		if resolved == nil {
			fmt.Printf("%s: annotations disabled\n", modesViewer)
			return nil
		}

		fmt.Printf("%s: profile %s\n", modesViewer, resolved.Name)
		for _, t := range resolved.Types {
			fmt.Printf("  %s\n", t)
		}
		return nil
	},
}

func init() {
	modesCmd.Flags().StringVar(&modesViewer, "viewer", "Document", "Viewer name to resolve")

	rootCmd.AddCommand(modesCmd)
}
