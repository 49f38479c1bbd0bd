package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/pascore/internal/errsink"
	"github.com/cwbudde/pascore/internal/opcode"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Check, compile, and execute a source file via the reference interpreter",
	Long: `Parse, check, and generate code for a pascore source file, then drive the
result through internal/opcode's reference interpreter (RefVM), printing
every write statement's output.

RefVM is scaffolding for manual testing, not a production stack-machine
evaluator: reads come from stdin, one integer per read, whitespace- or
newline-separated.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	source := string(content)

	program, code, sink, err := compileProgram(source, filename)
	if err != nil {
		if sink != nil && sink.HasErrors() {
			fmt.Fprint(os.Stderr, errsink.FormatWithSource(sink.Diagnostics(), source, filename))
		}
		return err
	}

	procs := make(map[any][]opcode.Instruction, len(code))
	for entry, blob := range code {
		procs[entry] = blob.Instructions()
	}

	prog := opcode.Program{Procs: procs, Entry: program.Entry}
	if err := opcode.Run(prog, os.Stdin, os.Stdout); err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	return nil
}
