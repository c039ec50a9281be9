package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scadlang/dslcad/internal/geom"
	"github.com/scadlang/dslcad/pkg/dslcad"
)

var cheatsheetCmd = &cobra.Command{
	Use:   "cheatsheet",
	Short: "Print the built-in library's function reference",
	Long: `Print every built-in function the library registers, grouped by
category, with its argument names and types.`,
	Args: cobra.NoArgs,
	RunE: runCheatsheet,
}

func init() {
	rootCmd.AddCommand(cheatsheetCmd)
}

func runCheatsheet(_ *cobra.Command, _ []string) error {
	fmt.Print(dslcad.Cheatsheet(geom.NewReference()))
	return nil
}
