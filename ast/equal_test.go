package ast

import (
	"testing"

	"github.com/deepnoodle-ai/retrograde/internal/token"
	"github.com/stretchr/testify/require"
)

func TestEqualIgnoresPositions(t *testing.T) {
	a := &Ident{NamePos: token.Position{Char: 0, Line: 0}, Name: "x"}
	b := &Ident{NamePos: token.Position{Char: 42, Line: 3}, Name: "x"}
	require.True(t, Equal(a, b))
}

func TestEqualComparesNames(t *testing.T) {
	require.False(t, Equal(&Ident{Name: "x"}, &Ident{Name: "y"}))
}

func TestEqualDistinguishesKinds(t *testing.T) {
	require.False(t, Equal(&Ident{Name: "x"}, &String{Literal: `"x"`, Value: "x"}))
	require.False(t, Equal(&Break{}, &Continue{}))
}

func TestEqualNil(t *testing.T) {
	require.True(t, Equal(nil, nil))
	require.False(t, Equal(&Ident{Name: "x"}, nil))
	require.False(t, Equal(nil, &Ident{Name: "x"}))
}

func TestEqualRecursesChildren(t *testing.T) {
	mk := func(op string) *Infix {
		return &Infix{
			X:  &Ident{Name: "a"},
			Op: op,
			Y: &Call{
				Fun:  &Ident{Name: "f"},
				Args: []Expr{&Number{Literal: "1", Value: 1}},
			},
		}
	}
	require.True(t, Equal(mk("+"), mk("+")))
	require.False(t, Equal(mk("+"), mk("-")))
}

func TestEqualNilChildren(t *testing.T) {
	withElse := &If{Cond: &Ident{Name: "c"}, Then: &Empty{}, Else: &Empty{}}
	withoutElse := &If{Cond: &Ident{Name: "c"}, Then: &Empty{}}
	require.False(t, Equal(withElse, withoutElse))
	require.True(t, Equal(withoutElse, &If{Cond: &Ident{Name: "c"}, Then: &Empty{}}))
}

func TestEqualSliceLengths(t *testing.T) {
	one := &Array{Items: []Expr{&Number{Literal: "1", Value: 1}}}
	two := &Array{Items: []Expr{&Number{Literal: "1", Value: 1}, &Number{Literal: "2", Value: 2}}}
	require.False(t, Equal(one, two))
}

func TestEqualStatements(t *testing.T) {
	mk := func(keyword string) *VarDecl {
		return &VarDecl{
			Keyword: keyword,
			Decls: []*Declarator{
				{Name: &Ident{Name: "x"}, Value: &Bool{Literal: "true", Value: true}},
			},
		}
	}
	require.True(t, Equal(mk("var"), mk("var")))
	require.False(t, Equal(mk("var"), mk("let")))
}
