package parser

import (
	"github.com/cwbudde/pascore/internal/ast"
	"github.com/cwbudde/pascore/internal/scope"
	"github.com/cwbudde/pascore/internal/token"
)

// parseStmtList parses a `;`-separated sequence of statements, as found
// inside a `begin ... end` block.
func (p *Parser) parseStmtList() *ast.List {
	pos := p.cur.Pos
	var stmts []ast.Stmt
	stmts = append(stmts, p.parseStmt())
	for p.curIs(token.SEMI) {
		p.next()
		if p.curIs(token.END) {
			break // trailing semicolon before `end`
		}
		stmts = append(stmts, p.parseStmt())
	}
	return ast.NewList(pos, stmts...)
}

// parseStmt parses one statement.
func (p *Parser) parseStmt() ast.Stmt {
	switch p.cur.Type {
	case token.BEGIN:
		p.next()
		list := p.parseStmtList()
		p.expect(token.END)
		return list
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.CALL:
		return p.parseCall()
	case token.READ:
		return p.parseRead()
	case token.WRITE:
		return p.parseWrite()
	case token.IDENT:
		return p.parseAssignment()
	default:
		pos := p.cur.Pos
		p.errorf("expected a statement, got %s %q", p.cur.Type, p.cur.Literal)
		p.next()
		return ast.NewErrorStmt(pos, "expected a statement")
	}
}

func (p *Parser) parseAssignment() ast.Stmt {
	pos := p.cur.Pos
	lhs := p.parseLValue()
	p.expect(token.ASSIGN)
	rhs := p.parseExpr()
	return ast.NewAssignment(pos, lhs, rhs)
}

func (p *Parser) parseIf() ast.Stmt {
	pos := p.cur.Pos
	p.expect(token.IF)
	cond := p.parseExpr()
	p.expect(token.THEN)
	then := p.parseStmt()
	var els ast.Stmt
	if p.curIs(token.ELSE) {
		p.next()
		els = p.parseStmt()
	}
	return ast.NewIf(pos, cond, then, els)
}

func (p *Parser) parseWhile() ast.Stmt {
	pos := p.cur.Pos
	p.expect(token.WHILE)
	cond := p.parseExpr()
	p.expect(token.DO)
	body := p.parseStmt()
	return ast.NewWhile(pos, cond, body)
}

// parseFor parses `for IDENT := LOW to HIGH do BODY`, pre-building the
// loop's inner scope at the same static level as the enclosing scope.
func (p *Parser) parseFor() ast.Stmt {
	pos := p.cur.Pos
	p.expect(token.FOR)
	name := p.expect(token.IDENT).Literal
	loopVar := ast.NewIdentifier(pos, name)
	p.expect(token.ASSIGN)
	low := p.parseExpr()
	p.expect(token.TO)
	high := p.parseExpr()
	p.expect(token.DO)

	inner := scope.NewInner(p.scope, p.scope.Owner())
	saved := p.scope
	p.scope = inner
	body := p.parseStmt()
	p.scope = saved

	return ast.NewFor(pos, loopVar, low, high, body, inner)
}

func (p *Parser) parseCall() ast.Stmt {
	pos := p.cur.Pos
	p.expect(token.CALL)
	name := p.expect(token.IDENT).Literal
	return ast.NewCall(pos, name)
}

func (p *Parser) parseRead() ast.Stmt {
	pos := p.cur.Pos
	p.expect(token.READ)
	lhs := p.parseLValue()
	return ast.NewRead(pos, lhs)
}

func (p *Parser) parseWrite() ast.Stmt {
	pos := p.cur.Pos
	p.expect(token.WRITE)
	return ast.NewWrite(pos, p.parseExpr())
}
