package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "pascore",
	Short: "A small Pascal-family teaching-language compiler core",
	Long: `pascore lexes, parses, checks, and generates stack-machine code for a
small Pascal-family teaching language: nested procedures, integer/boolean
primitives, subranges, one-dimensional arrays, user-defined scalar types,
read-only constants, overloaded operators, and if/while/for/call/read/write
control flow.

The CLI drives the pipeline for manual inspection and testing; the
production evaluator for the emitted instruction set lives outside this
binary. pascore run uses only a minimal reference interpreter.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_, err := loadProjectConfig()
		return err
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug trace to stderr)")
}
