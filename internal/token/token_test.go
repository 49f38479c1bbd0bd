package token

import "testing"

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		name string
		want Type
	}{
		{"program", PROGRAM},
		{"begin", BEGIN},
		{"end", END},
		{"div", DIV},
		{"true", TRUE},
		{"false", FALSE},
		{"foo", IDENT},
		{"", IDENT},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LookupIdent(tt.name); got != tt.want {
				t.Errorf("LookupIdent(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestIsLiteralAndIsKeyword(t *testing.T) {
	tests := []struct {
		name        string
		typ         Type
		wantLiteral bool
		wantKeyword bool
	}{
		{"IDENT", IDENT, true, false},
		{"INT", INT, true, false},
		{"ILLEGAL", ILLEGAL, false, false},
		{"EOF", EOF, false, false},
		{"PROGRAM", PROGRAM, false, true},
		{"FALSE", FALSE, false, true},
		{"ASSIGN", ASSIGN, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.IsLiteral(); got != tt.wantLiteral {
				t.Errorf("IsLiteral() = %v, want %v", got, tt.wantLiteral)
			}
			if got := tt.typ.IsKeyword(); got != tt.wantKeyword {
				t.Errorf("IsKeyword() = %v, want %v", got, tt.wantKeyword)
			}
		})
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{PROGRAM, "program"},
		{ASSIGN, ":="},
		{DOTDOT, ".."},
		{Type(9999), "Type(9999)"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("Type(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestPositionString(t *testing.T) {
	p := Position{Line: 3, Column: 7}
	if got, want := p.String(), "3:7"; got != want {
		t.Errorf("Position.String() = %q, want %q", got, want)
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Type: IDENT, Literal: "x", Pos: Position{Line: 1, Column: 1}}
	if got, want := tok.String(), `IDENT("x")@1:1`; got != want {
		t.Errorf("Token.String() = %q, want %q", got, want)
	}
}
