package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "aplvalidate",
	Short:   "Validate a rotation DSL file against a known spell/aura name table",
	Long:    `aplvalidate parses and statically folds a rotation JSON file, then checks every dotted reference it makes against the example kit's spells, auras and resources, reporting structural errors, unresolved names, and non-fatal warnings.`,
	Version: version,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// Commands are defined in separate files:
// - checkCmd in check.go

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
