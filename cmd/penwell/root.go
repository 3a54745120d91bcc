package main

import (
	"github.com/spf13/cobra"

	"github.com/penwell/penwell/version"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "penwell",
	Short: "Document annotation engine and reference store",
	Long: `Penwell is a document annotation engine: point, highlight, draw and
region annotations over paged documents, grouped into threads and indexed
for spatial lookup.

The toolkit includes:
  - A reference annotation store server with schema validation
  - Annotation file validation against the wire schema
  - PDF page geometry inspection
  - Spatial queries over annotation files`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.penwell/config.yaml)",
	)

	rootCmd.AddCommand(versionCmd)
}
