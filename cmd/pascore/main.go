// Command pascore is the CLI front end for the semantic-analysis and
// code-generation core: lexing, parsing, checking, code generation, and
// (via the opcode package's reference interpreter) running a small
// Pascal-family teaching language.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/pascore/cmd/pascore/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
