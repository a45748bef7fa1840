package ast

import (
	"testing"

	"github.com/deepnoodle-ai/retrograde/internal/token"
	"github.com/stretchr/testify/require"
)

func TestProgramString(t *testing.T) {
	program := &Program{Stmts: []Stmt{
		&VarDecl{
			Keyword: "var",
			Decls: []*Declarator{
				{Name: &Ident{Name: "x"}, Value: &Number{Literal: "1", Value: 1}},
			},
		},
		&ExprStmt{X: &Call{Fun: &Ident{Name: "f"}, Args: []Expr{&Ident{Name: "x"}}}},
	}}
	require.Equal(t, "var x = 1\nf(x)", program.String())
}

func TestEmptyProgram(t *testing.T) {
	program := &Program{}
	require.Nil(t, program.First())
	require.Equal(t, token.NoPos, program.Pos())
	require.Equal(t, "", program.String())
}

func TestStatementStrings(t *testing.T) {
	tests := []struct {
		node     Node
		expected string
	}{
		{&Return{}, "return"},
		{&Return{Value: &Bool{Literal: "true", Value: true}}, "return true"},
		{&Break{}, "break"},
		{&Continue{}, "continue"},
		{&Empty{}, ";"},
		{&Throw{Value: &String{Literal: `"e"`, Value: "e"}}, `throw "e"`},
		{&Block{}, "{  }"},
		{
			&If{Cond: &Ident{Name: "a"}, Then: &Continue{}},
			"if (a) continue",
		},
		{
			&ForIn{
				Left: &VarDecl{Keyword: "var", Decls: []*Declarator{{Name: &Ident{Name: "k"}}}},
				X:    &Ident{Name: "obj"},
				Body: &Block{Stmts: []Stmt{&Break{}}},
			},
			"for (var k in obj) { break }",
		},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, tt.node.String())
	}
}

func TestExpressionStrings(t *testing.T) {
	tests := []struct {
		node     Node
		expected string
	}{
		{&Prefix{Op: "!", X: &Ident{Name: "a"}}, "(!a)"},
		{&Prefix{Op: "typeof", X: &Ident{Name: "a"}}, "(typeof a)"},
		{&Update{Op: "++", X: &Ident{Name: "i"}}, "(i++)"},
		{&Update{Op: "--", X: &Ident{Name: "i"}, Prefix: true}, "(--i)"},
		{&Null{}, "null"},
		{&This{}, "this"},
		{&String{Literal: `'hi'`, Value: "hi"}, `"hi"`},
		{
			&Ternary{Cond: &Ident{Name: "c"}, IfTrue: &Number{Literal: "1"}, IfFalse: &Number{Literal: "2"}},
			"(c ? 1 : 2)",
		},
		{
			&New{Fun: &Ident{Name: "Err"}, Args: []Expr{&Ident{Name: "m"}}},
			"new Err(m)",
		},
		{
			&Object{Props: []*Property{{Key: &Ident{Name: "a"}, Value: &Number{Literal: "1"}}}},
			"{a: 1}",
		},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, tt.node.String())
	}
}

func TestIsAssignable(t *testing.T) {
	require.True(t, IsAssignable(&Ident{Name: "a"}))
	require.True(t, IsAssignable(&GetAttr{X: &Ident{Name: "a"}, Attr: &Ident{Name: "b"}}))
	require.True(t, IsAssignable(&Index{X: &Ident{Name: "a"}, Index: &Number{}}))
	require.False(t, IsAssignable(&Call{Fun: &Ident{Name: "f"}}))
	require.False(t, IsAssignable(&Number{}))
	require.False(t, IsAssignable(&This{}))
}

func TestPatternNames(t *testing.T) {
	require.Equal(t, []string{"e"}, (&Ident{Name: "e"}).Names())
	pattern := &ObjectPattern{Props: []*Ident{{Name: "message"}, {Name: "stack"}}}
	require.Equal(t, []string{"message", "stack"}, pattern.Names())
}
