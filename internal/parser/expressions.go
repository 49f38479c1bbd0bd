package parser

import (
	"strconv"
	"strings"

	"github.com/cwbudde/pascore/internal/ast"
	"github.com/cwbudde/pascore/internal/token"
	"github.com/cwbudde/pascore/internal/types"
)

// parseLValue parses an identifier optionally followed by one or more
// `[ expr ]` array-index suffixes.
func (p *Parser) parseLValue() ast.Expr {
	pos := p.cur.Pos
	name := p.expect(token.IDENT).Literal
	var e ast.Expr = ast.NewIdentifier(pos, name)
	for p.curIs(token.LBRACK) {
		p.next()
		index := p.parseExpr()
		p.expect(token.RBRACK)
		e = ast.NewArrayIndexing(pos, e, index)
	}
	return e
}

// parseExpr parses a relational expression: SIMPLE ( RELOP SIMPLE )?. The
// language has no relational chaining — `a = b = c` is not a thing — so at
// most one relational operator applies.
func (p *Parser) parseExpr() ast.Expr {
	left := p.parseSimpleExpr()
	if op, ok := relOp(p.cur.Type); ok {
		pos := p.cur.Pos
		p.next()
		right := p.parseSimpleExpr()
		return ast.NewBinary(pos, op, left, right)
	}
	return left
}

func relOp(t token.Type) (string, bool) {
	switch t {
	case token.EQ:
		return "=", true
	case token.NEQ:
		return "<>", true
	case token.LT:
		return "<", true
	case token.LE:
		return "<=", true
	case token.GT:
		return ">", true
	case token.GE:
		return ">=", true
	default:
		return "", false
	}
}

// parseSimpleExpr parses TERM ( (+|-|or) TERM )*.
func (p *Parser) parseSimpleExpr() ast.Expr {
	left := p.parseTerm()
	for {
		var op string
		switch p.cur.Type {
		case token.PLUS:
			op = "+"
		case token.MINUS:
			op = "-"
		case token.OR:
			op = "or"
		default:
			return left
		}
		pos := p.cur.Pos
		p.next()
		right := p.parseTerm()
		left = ast.NewBinary(pos, op, left, right)
	}
}

// parseTerm parses FACTOR ( (*|div|mod|and) FACTOR )*.
func (p *Parser) parseTerm() ast.Expr {
	left := p.parseFactor()
	for {
		var op string
		switch p.cur.Type {
		case token.STAR:
			op = "*"
		case token.DIV:
			op = "div"
		case token.MOD:
			op = "mod"
		case token.AND:
			op = "and"
		default:
			return left
		}
		pos := p.cur.Pos
		p.next()
		right := p.parseFactor()
		left = ast.NewBinary(pos, op, left, right)
	}
}

// parseFactor parses the atoms of an expression: integer/boolean literals,
// identifiers (optionally indexed), parenthesized expressions, unary minus,
// `not`, and the `pred`/`succ` call-like unary operators.
func (p *Parser) parseFactor() ast.Expr {
	pos := p.cur.Pos
	switch {
	case p.curIs(token.INT):
		lit := p.cur.Literal
		p.next()
		n, err := strconv.Atoi(lit)
		if err != nil {
			p.errorf("invalid integer literal %q", lit)
			n = 0
		}
		return ast.NewConst(pos, types.Integer, n)

	case p.curIs(token.TRUE):
		p.next()
		return ast.NewConst(pos, types.Boolean, 1)

	case p.curIs(token.FALSE):
		p.next()
		return ast.NewConst(pos, types.Boolean, 0)

	case p.curIs(token.MINUS):
		p.next()
		return ast.NewUnary(pos, "-", p.parseFactor())

	case p.curIs(token.NOT):
		p.next()
		return ast.NewUnary(pos, "not", p.parseFactor())

	case p.curIs(token.IDENT) && isPredSuccName(p.cur.Literal):
		name := p.cur.Literal
		p.next()
		p.expect(token.LPAREN)
		arg := p.parseExpr()
		p.expect(token.RPAREN)
		return ast.NewUnary(pos, name, arg)

	case p.curIs(token.IDENT):
		return p.parseLValue()

	case p.curIs(token.LPAREN):
		p.next()
		e := p.parseExpr()
		p.expect(token.RPAREN)
		return e

	default:
		p.errorf("expected an expression, got %s %q", p.cur.Type, p.cur.Literal)
		p.next()
		return ast.NewErrorExpr(pos, "expected an expression")
	}
}

func isPredSuccName(name string) bool {
	lower := strings.ToLower(name)
	return lower == "pred" || lower == "succ"
}
