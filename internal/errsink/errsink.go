// Package errsink is the diagnostic collection point every other component
// reports through: the checker on a failed coercion, an unresolved
// identifier, or an overload mismatch; the parser on a malformed token or
// production (the lexer itself only yields ILLEGAL tokens, which the parser
// reports). None of those packages format or print anything
// themselves — they call Sink.Report and move on, continuing elaboration
// wherever doing so is sound (e.g. an assignment whose RHS failed to
// coerce still gets walked so later errors in the same procedure are found
// in one pass).
//
// The formatting code here (caret diagrams under the offending line) is
// adapted from CWBudde-go-dws/internal/errors/errors.go, retargeted from
// that package's lexer.Position to this module's token.Position.
package errsink

import (
	"fmt"
	"io"
	"strings"

	"github.com/cwbudde/pascore/internal/token"
)

// Kind enumerates the checker's full vocabulary of semantic error
// categories. Lexer/parser errors use KindSyntax.
type Kind int

const (
	KindSyntax Kind = iota
	KindTypeMismatch
	KindVariableExpected
	KindIntegerVariableExpected
	KindProcedureIdentifierRequired
	KindConstantOrVariableRequired
	KindNotAnArrayType
	KindNotReferenceType
	KindOverloadMismatch
	KindUndeclaredIdentifier
	KindDuplicateDeclaration
	KindReadOnlyAssignment
	KindInternal
)

var kindNames = [...]string{
	KindSyntax:                      "syntax error",
	KindTypeMismatch:                "type mismatch",
	KindVariableExpected:            "variable expected",
	KindIntegerVariableExpected:     "integer variable expected",
	KindProcedureIdentifierRequired: "procedure identifier required",
	KindConstantOrVariableRequired:  "constant or variable required",
	KindNotAnArrayType:              "not an array type",
	KindNotReferenceType:            "not a reference type",
	KindOverloadMismatch:            "no matching operator overload",
	KindUndeclaredIdentifier:        "undeclared identifier",
	KindDuplicateDeclaration:        "duplicate declaration",
	KindReadOnlyAssignment:          "assignment to read-only variable",
	KindInternal:                    "internal error",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "error"
}

// Diagnostic is one reported error: where it happened, what kind it is, and
// a human-readable detail (e.g. the two mismatched type names).
type Diagnostic struct {
	Pos     token.Position
	Kind    Kind
	Message string
}

// Error implements error so a Diagnostic can be returned/wrapped directly.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", d.Pos.Line, d.Pos.Column, d.Kind, d.Message)
}

// Sink is the interface every component reports diagnostics through. It is
// never owned by ast/scope/types (which must stay free of this package) —
// only by checker, codegen, parser, and the CLI that ultimately formats them.
type Sink interface {
	Report(pos token.Position, kind Kind, format string, args ...any)
	Fatal(pos token.Position, format string, args ...any)
	DebugMessage(msg string)
	IncDebug()
	DecDebug()
	HasErrors() bool
	Diagnostics() []*Diagnostic
}

// InternalError marks an invariant violation severe enough to halt
// compilation outright: an unknown operator kind, code-gen reached on an
// Error or unresolved Identifier node, an unknown operator symbol at
// emission. Fatal panics with one of these rather than returning — ordinary
// user errors never unwind the stack, only genuinely fatal bugs do.
type InternalError struct {
	Pos     token.Position
	Message string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error at %s: %s", e.Pos, e.Message)
}

// Collecting is the Sink used by the checker, parser, and CLI: it
// accumulates every diagnostic rather than stopping at the first. Debug is
// an optional observer threaded through the sink rather than a
// package-level global.
type Collecting struct {
	diags []*Diagnostic
	Debug io.Writer // nil disables debug tracing
	depth int
}

// NewCollecting returns an empty Collecting sink with debug tracing off.
func NewCollecting() *Collecting {
	return &Collecting{}
}

func (c *Collecting) Report(pos token.Position, kind Kind, format string, args ...any) {
	c.diags = append(c.diags, &Diagnostic{Pos: pos, Kind: kind, Message: fmt.Sprintf(format, args...)})
}

// Fatal reports an internal-error diagnostic and panics with an
// *InternalError, halting compilation.
func (c *Collecting) Fatal(pos token.Position, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.diags = append(c.diags, &Diagnostic{Pos: pos, Kind: KindInternal, Message: msg})
	panic(&InternalError{Pos: pos, Message: msg})
}

func (c *Collecting) DebugMessage(msg string) {
	if c.Debug == nil {
		return
	}
	fmt.Fprintf(c.Debug, "%s%s\n", strings.Repeat("  ", c.depth), msg)
}

func (c *Collecting) IncDebug() { c.depth++ }
func (c *Collecting) DecDebug() {
	if c.depth > 0 {
		c.depth--
	}
}

func (c *Collecting) HasErrors() bool { return len(c.diags) > 0 }

func (c *Collecting) Diagnostics() []*Diagnostic { return c.diags }

// FormatWithSource renders a Collecting sink's diagnostics against source,
// one per diagnostic, each with a caret pointing at the offending column —
// the presentation CWBudde-go-dws/internal/errors.CompilerError.Format
// produces, carried over unchanged in shape.
func FormatWithSource(diags []*Diagnostic, source, file string) string {
	var sb strings.Builder
	lines := strings.Split(source, "\n")

	for i, d := range diags {
		if file != "" {
			fmt.Fprintf(&sb, "%s:%d:%d: %s: %s\n", file, d.Pos.Line, d.Pos.Column, d.Kind, d.Message)
		} else {
			fmt.Fprintf(&sb, "%d:%d: %s: %s\n", d.Pos.Line, d.Pos.Column, d.Kind, d.Message)
		}

		if d.Pos.Line >= 1 && d.Pos.Line <= len(lines) {
			line := lines[d.Pos.Line-1]
			lineNumStr := fmt.Sprintf("%4d | ", d.Pos.Line)
			sb.WriteString(lineNumStr)
			sb.WriteString(line)
			sb.WriteString("\n")
			col := d.Pos.Column
			if col < 1 {
				col = 1
			}
			sb.WriteString(strings.Repeat(" ", len(lineNumStr)+col-1))
			sb.WriteString("^\n")
		}

		if i < len(diags)-1 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
