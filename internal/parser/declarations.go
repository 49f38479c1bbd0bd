package parser

import (
	"strconv"

	"github.com/cwbudde/pascore/internal/ast"
	"github.com/cwbudde/pascore/internal/errsink"
	"github.com/cwbudde/pascore/internal/scope"
	"github.com/cwbudde/pascore/internal/token"
	"github.com/cwbudde/pascore/internal/types"
)

// parseBlock parses the declaration region and `begin ... end` body of a
// program or procedure, binding every declaration into s. Nested procedure
// declarations are parsed (recursively, with their own child scope) and
// collected into the returned Block's ChildProcedure list rather than being
// part of the statement sequence.
func (p *Parser) parseBlock(s *scope.Scope) *ast.Block {
	var children []*ast.Procedure

	for {
		switch p.cur.Type {
		case token.CONST:
			p.parseConstSection(s)
		case token.TYPE:
			p.parseTypeSection(s)
		case token.VAR:
			p.parseVarSection(s)
		case token.PROCEDURE:
			children = append(children, p.parseProcedureDecl(s))
		default:
			goto declarationsDone
		}
	}
declarationsDone:

	p.expect(token.BEGIN)
	body := p.parseStmtList()
	p.expect(token.END)

	return &ast.Block{Body: body, ChildProcedure: children}
}

// parseConstSection parses `const (IDENT = INTLIT ;)+`.
func (p *Parser) parseConstSection(s *scope.Scope) {
	p.expect(token.CONST)
	for p.curIs(token.IDENT) {
		name := p.cur.Literal
		p.next()
		p.expect(token.EQ)
		value := p.parseSignedInt()
		p.expect(token.SEMI)
		s.Define(name, &scope.ConstEntry{Name: name, Type: types.Integer, Value: value})
	}
}

// parseTypeSection parses `type (IDENT = TYPEEXPR ;)+`.
func (p *Parser) parseTypeSection(s *scope.Scope) {
	p.expect(token.TYPE)
	for p.curIs(token.IDENT) {
		name := p.cur.Literal
		p.next()
		p.expect(token.EQ)
		t := p.parseTypeExpr(s)
		p.expect(token.SEMI)
		s.Define(name, &scope.TypeEntry{Name: name, Type: t})
	}
}

// parseVarSection parses `var (IDENT (, IDENT)* : TYPEEXPR ;)+`, allocating
// frame space for every name declared.
func (p *Parser) parseVarSection(s *scope.Scope) {
	p.expect(token.VAR)
	for p.curIs(token.IDENT) {
		names := []string{p.cur.Literal}
		p.next()
		for p.curIs(token.COMMA) {
			p.next()
			names = append(names, p.expect(token.IDENT).Literal)
		}
		p.expect(token.COLON)
		t := p.parseTypeExpr(s)
		p.expect(token.SEMI)
		if types.IsError(t) {
			continue // already reported by parseTypeExpr; Error has no width
		}

		width := types.Width(t)
		for _, name := range names {
			off := s.AllocVariableSpace(width)
			s.Define(name, &scope.VarEntry{Name: name, Type: t, Level: s.Level(), Offset: off})
		}
	}
}

// parseTypeExpr parses a named type reference, an inline subrange
// (`LOW..HIGH`), or an array type (`array [LOW..HIGH] of ELEMENT`).
func (p *Parser) parseTypeExpr(s *scope.Scope) types.Type {
	switch {
	case p.curIs(token.ARRAY):
		p.next()
		p.expect(token.LBRACK)
		lo := p.parseSignedInt()
		p.expect(token.DOTDOT)
		hi := p.parseSignedInt()
		p.expect(token.RBRACK)
		p.expect(token.OF)
		elem := p.parseTypeExpr(s)
		index := types.NewSubrange(types.Integer, lo, hi)
		return types.NewArray(index, elem)

	case p.curIs(token.MINUS) || p.curIs(token.INT):
		lo := p.parseSignedInt()
		p.expect(token.DOTDOT)
		hi := p.parseSignedInt()
		return types.NewSubrange(types.Integer, lo, hi)

	case p.curIs(token.IDENT):
		name := p.cur.Literal
		p.next()
		entry := s.Lookup(name)
		te, ok := entry.(*scope.TypeEntry)
		if !ok {
			p.sink.Report(p.cur.Pos, errsink.KindUndeclaredIdentifier, "undeclared type %q", name)
			return types.Error
		}
		return te.Type

	default:
		p.errorf("expected a type, got %s %q", p.cur.Type, p.cur.Literal)
		return types.Error
	}
}

// parseSignedInt parses an optionally minus-signed integer literal, the
// only constant-expression shape declarations need (bounds, const values).
func (p *Parser) parseSignedInt() int {
	neg := false
	if p.curIs(token.MINUS) {
		neg = true
		p.next()
	}
	lit := p.expect(token.INT).Literal
	n, err := strconv.Atoi(lit)
	if err != nil {
		p.errorf("invalid integer literal %q", lit)
		return 0
	}
	if neg {
		return -n
	}
	return n
}

// parseProcedureDecl parses `procedure NAME ; BLOCK ;`, opening a child
// scope one level deeper than s and wiring the resulting entry into s.
func (p *Parser) parseProcedureDecl(s *scope.Scope) *ast.Procedure {
	pos := p.cur.Pos
	p.expect(token.PROCEDURE)
	name := p.expect(token.IDENT).Literal
	p.expect(token.SEMI)

	entry := &scope.ProcEntry{Name: name, Level: s.Level() + 1}
	s.Define(name, entry)

	child := scope.NewChild(s, entry)
	entry.LocalScope = child

	saved := p.scope
	p.scope = child
	block := p.parseBlock(child)
	p.scope = saved
	p.expect(token.SEMI)

	return ast.NewProcedure(pos, name, entry, block)
}
