package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/pascore/internal/lexer"
	"github.com/cwbudde/pascore/internal/token"
	"github.com/spf13/cobra"
)

var (
	lexShowPos    bool
	lexOnlyErrors bool
)

var lexCmd = &cobra.Command{
	Use:   "lex FILE",
	Short: "Tokenize a source file and print the resulting tokens",
	Long: `Tokenize a pascore source file and print the resulting tokens.

Useful for debugging the lexer and understanding how a program is
tokenized.

Examples:
  pascore lex program.pas
  pascore lex --show-pos program.pas
  pascore lex --only-errors program.pas`,
	Args: cobra.ExactArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&lexOnlyErrors, "only-errors", false, "show only illegal tokens")
}

func runLex(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	l := lexer.New(string(content))
	tokenCount, errorCount := 0, 0

	for {
		tok := l.NextToken()
		if lexOnlyErrors && tok.Type != token.ILLEGAL {
			if tok.Type == token.EOF {
				break
			}
			continue
		}

		tokenCount++
		if tok.Type == token.ILLEGAL {
			errorCount++
		}

		printToken(tok)
		if tok.Type == token.EOF {
			break
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "tokens: %d, illegal: %d\n", tokenCount, errorCount)
	}

	if lexOnlyErrors && errorCount > 0 {
		return fmt.Errorf("found %d illegal token(s)", errorCount)
	}
	return nil
}

func printToken(tok token.Token) {
	out := fmt.Sprintf("%-10s %q", tok.Type, tok.Literal)
	if lexShowPos {
		out += fmt.Sprintf(" @%s", tok.Pos)
	}
	fmt.Println(out)
}
