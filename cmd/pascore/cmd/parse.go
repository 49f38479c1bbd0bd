package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/pascore/internal/ast"
	"github.com/cwbudde/pascore/internal/errsink"
	"github.com/cwbudde/pascore/internal/parser"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Parse a source file and dump the raw AST",
	Long: `Parse a pascore source file and print the raw (unelaborated) AST the
checker would consume: no names are resolved and no types are assigned yet.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	source := string(content)

	sink := errsink.NewCollecting()
	if verbose {
		sink.Debug = os.Stderr
	}

	p := parser.New(source, sink)
	program := p.ParseProgram()

	if sink.HasErrors() {
		fmt.Fprint(os.Stderr, errsink.FormatWithSource(sink.Diagnostics(), source, filename))
		return fmt.Errorf("parsing failed with %d error(s)", len(sink.Diagnostics()))
	}

	dumpStmt(program.Block.Body, 0)
	return nil
}

func indent(n int) string {
	s := ""
	for i := 0; i < n; i++ {
		s += "  "
	}
	return s
}

func dumpStmt(s ast.Stmt, depth int) {
	pad := indent(depth)
	switch st := s.(type) {
	case *ast.List:
		fmt.Printf("%sList (%d statements)\n", pad, len(st.Stmts))
		for _, inner := range st.Stmts {
			dumpStmt(inner, depth+1)
		}
	case *ast.Assignment:
		fmt.Printf("%sAssignment\n", pad)
		dumpExpr(st.LHS, depth+1)
		dumpExpr(st.RHS, depth+1)
	case *ast.Read:
		fmt.Printf("%sRead\n", pad)
		dumpExpr(st.LHS, depth+1)
	case *ast.Write:
		fmt.Printf("%sWrite\n", pad)
		dumpExpr(st.Expr, depth+1)
	case *ast.Call:
		fmt.Printf("%sCall %s\n", pad, st.Name)
	case *ast.If:
		fmt.Printf("%sIf\n", pad)
		dumpExpr(st.Cond, depth+1)
		dumpStmt(st.Then, depth+1)
		if st.Else != nil {
			dumpStmt(st.Else, depth+1)
		}
	case *ast.While:
		fmt.Printf("%sWhile\n", pad)
		dumpExpr(st.Cond, depth+1)
		dumpStmt(st.Body, depth+1)
	case *ast.For:
		fmt.Printf("%sFor\n", pad)
		dumpExpr(st.LoopVar, depth+1)
		dumpExpr(st.Low, depth+1)
		dumpExpr(st.High, depth+1)
		dumpStmt(st.Body, depth+1)
	case *ast.ErrorStmt:
		fmt.Printf("%sErrorStmt %q\n", pad, st.Message)
	default:
		fmt.Printf("%s%T\n", pad, s)
	}
}

func dumpExpr(e ast.Expr, depth int) {
	pad := indent(depth)
	switch ex := e.(type) {
	case *ast.Const:
		fmt.Printf("%sConst %d\n", pad, ex.Value)
	case *ast.Identifier:
		fmt.Printf("%sIdentifier %s\n", pad, ex.Name)
	case *ast.Variable:
		fmt.Printf("%sVariable %s\n", pad, ex.Entry.Name)
	case *ast.Binary:
		fmt.Printf("%sBinary %s\n", pad, ex.Op)
		dumpExpr(ex.Left, depth+1)
		dumpExpr(ex.Right, depth+1)
	case *ast.Unary:
		fmt.Printf("%sUnary %s\n", pad, ex.Op)
		dumpExpr(ex.Operand, depth+1)
	case *ast.ArrayIndexing:
		fmt.Printf("%sArrayIndexing\n", pad)
		dumpExpr(ex.Base, depth+1)
		dumpExpr(ex.Index, depth+1)
	case *ast.Dereference:
		fmt.Printf("%sDereference\n", pad)
		dumpExpr(ex.Inner, depth+1)
	case *ast.NarrowSubrange:
		fmt.Printf("%sNarrowSubrange [%d, %d]\n", pad, ex.Target.Lower, ex.Target.Upper)
		dumpExpr(ex.Inner, depth+1)
	case *ast.WidenSubrange:
		fmt.Printf("%sWidenSubrange\n", pad)
		dumpExpr(ex.Inner, depth+1)
	case *ast.ErrorExpr:
		fmt.Printf("%sErrorExpr %q\n", pad, ex.Message)
	default:
		fmt.Printf("%s%T\n", pad, e)
	}
}
