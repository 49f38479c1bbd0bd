package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/pascore/internal/ast"
	"github.com/cwbudde/pascore/internal/checker"
	"github.com/cwbudde/pascore/internal/codegen"
	"github.com/cwbudde/pascore/internal/emitter"
	"github.com/cwbudde/pascore/internal/errsink"
	"github.com/cwbudde/pascore/internal/opcode"
	"github.com/cwbudde/pascore/internal/parser"
	"github.com/cwbudde/pascore/internal/scope"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile FILE",
	Short: "Check and compile a source file, printing its emitted instructions",
	Long: `Parse, check, and generate code for a pascore source file, printing the
disassembled instruction stream for every procedure (program body first,
then each nested procedure in declaration order).`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
}

// compileProgram runs the full lex -> parse -> check -> codegen pipeline,
// recovering from an ErrorSink.Fatal panic (an internal-error escape hatch,
// never a user-facing diagnostic) and reporting it as a plain error instead
// of crashing the CLI.
func compileProgram(source, filename string) (*ast.Program, map[*scope.ProcEntry]*emitter.Code, *errsink.Collecting, error) {
	sink := errsink.NewCollecting()
	if verbose {
		sink.Debug = os.Stderr
	}

	p := parser.New(source, sink)
	program := p.ParseProgram()
	if sink.HasErrors() {
		return nil, nil, sink, fmt.Errorf("parsing failed with %d error(s)", len(sink.Diagnostics()))
	}

	var code map[*scope.ProcEntry]*emitter.Code
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				if ierr, ok := r.(*errsink.InternalError); ok {
					err = fmt.Errorf("internal error at %s: %s", ierr.Pos, ierr.Message)
					return
				}
				panic(r)
			}
		}()
		c := checker.New(sink, nil)
		c.CheckProgram(program)
		if sink.HasErrors() {
			return nil
		}
		gen := codegen.New(sink)
		code = gen.GenerateProgram(program)
		return nil
	}()
	if err != nil {
		return nil, nil, sink, err
	}
	if sink.HasErrors() {
		return nil, nil, sink, fmt.Errorf("checking failed with %d error(s)", len(sink.Diagnostics()))
	}

	return program, code, sink, nil
}

func runCompile(_ *cobra.Command, args []string) error {
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

	for _, entry := range orderedProcs(program) {
		fmt.Printf("== %s ==\n", entry.Name)
		fmt.Print(opcode.Disassemble(code[entry].Instructions()))
	}
	return nil
}

// orderedProcs walks the procedure tree in the same pre-order
// codegen.GenerateProgram generates code in: the program entry, then each
// child procedure, recursively, in declaration order.
func orderedProcs(program *ast.Program) []*scope.ProcEntry {
	var out []*scope.ProcEntry
	var walk func(entry *scope.ProcEntry, block *ast.Block)
	walk = func(entry *scope.ProcEntry, block *ast.Block) {
		out = append(out, entry)
		for _, child := range block.ChildProcedure {
			walk(child.Entry, child.Block)
		}
	}
	walk(program.Entry, program.Block)
	return out
}
