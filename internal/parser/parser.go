// Package parser is a small recursive-descent parser producing the raw
// internal/ast tree the static checker elaborates. The core treats parsing
// as producing its input AST rather than owning it, so this package exists
// only to drive the CLI and the integration tests end-to-end — it is not
// meant to be a general-purpose or forgiving parser for the language.
//
// The parser also builds the scope tree as it goes: Procedure nodes carry a
// pre-built ProcedureEntry with a local scope, block, and static level, and
// For nodes carry a pre-built inner scope — the checker only elaborates
// types and rewrites expressions, it never defines a symbol.
package parser

import (
	"github.com/cwbudde/pascore/internal/ast"
	"github.com/cwbudde/pascore/internal/errsink"
	"github.com/cwbudde/pascore/internal/lexer"
	"github.com/cwbudde/pascore/internal/scope"
	"github.com/cwbudde/pascore/internal/token"
	"github.com/cwbudde/pascore/internal/types"
)

// Parser holds one parse's state: the lexer, the diagnostic sink, the
// current/peek tokens, and the scope currently accepting declarations.
type Parser struct {
	lex   *lexer.Lexer
	sink  errsink.Sink
	cur   token.Token
	peek  token.Token
	scope *scope.Scope
}

// New creates a Parser over src, reporting through sink.
func New(src string, sink errsink.Sink) *Parser {
	p := &Parser{lex: lexer.New(src), sink: sink}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lex.NextToken()
}

func (p *Parser) curIs(t token.Type) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peek.Type == t }

// expect advances past a token of type t, or reports a syntax error and
// advances anyway so parsing can continue — the checker's continue-on-error
// stance extends to the parser here too.
func (p *Parser) expect(t token.Type) token.Token {
	tok := p.cur
	if !p.curIs(t) {
		p.errorf("expected %s, got %s %q", t, p.cur.Type, p.cur.Literal)
	}
	p.next()
	return tok
}

func (p *Parser) errorf(format string, args ...any) {
	p.sink.Report(p.cur.Pos, errsink.KindSyntax, format, args...)
}

// ParseProgram parses a full compilation unit: `program NAME; BLOCK .`. The
// root scope is pre-seeded with the predefined integer/boolean type names,
// since nothing else will ever bind them.
func (p *Parser) ParseProgram() *ast.Program {
	root := scope.New()
	root.Define("integer", &scope.TypeEntry{Name: "integer", Type: types.Integer})
	root.Define("boolean", &scope.TypeEntry{Name: "boolean", Type: types.Boolean})
	p.scope = root

	pos := p.cur.Pos
	p.expect(token.PROGRAM)
	name := p.expect(token.IDENT).Literal
	p.expect(token.SEMI)

	entry := &scope.ProcEntry{Name: name, Level: root.Level(), LocalScope: root}
	block := p.parseBlock(root)
	p.expect(token.DOT)

	return ast.NewProgram(pos, entry, block)
}
