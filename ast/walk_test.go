package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInspectCollectsIdentifiers(t *testing.T) {
	program := &Program{Stmts: []Stmt{
		&VarDecl{Keyword: "var", Decls: []*Declarator{
			{Name: &Ident{Name: "x"}, Value: &Infix{
				X:  &Ident{Name: "a"},
				Op: "+",
				Y:  &Ident{Name: "b"},
			}},
		}},
		&FuncDecl{
			Name:   &Ident{Name: "f"},
			Params: []*Ident{{Name: "p"}},
			Body: &Block{Stmts: []Stmt{
				&Return{Value: &GetAttr{X: &Ident{Name: "p"}, Attr: &Ident{Name: "attr"}}},
			}},
		},
	}}
	var names []string
	Inspect(program, func(node Node) bool {
		if ident, ok := node.(*Ident); ok {
			names = append(names, ident.Name)
		}
		return true
	})
	// Declarator names, function names, and parameters are visited;
	// attribute names are not.
	require.Equal(t, []string{"x", "a", "b", "f", "p", "p"}, names)
}

func TestInspectPrunesSubtrees(t *testing.T) {
	program := &Program{Stmts: []Stmt{
		&FuncDecl{
			Name:   &Ident{Name: "f"},
			Params: []*Ident{{Name: "hidden"}},
			Body:   &Block{},
		},
		&ExprStmt{X: &Ident{Name: "visible"}},
	}}
	var names []string
	Inspect(program, func(node Node) bool {
		if _, ok := node.(*FuncDecl); ok {
			return false
		}
		if ident, ok := node.(*Ident); ok {
			names = append(names, ident.Name)
		}
		return true
	})
	require.Equal(t, []string{"visible"}, names)
}

func TestWalkVisitsCatchPatterns(t *testing.T) {
	try := &Try{
		Body: &Block{},
		Catch: &Catch{
			Param: &ObjectPattern{Props: []*Ident{{Name: "message"}}},
			Body:  &Block{},
		},
	}
	var names []string
	Inspect(try, func(node Node) bool {
		if ident, ok := node.(*Ident); ok {
			names = append(names, ident.Name)
		}
		return true
	})
	require.Equal(t, []string{"message"}, names)
}

func TestWalkCountsAllNodes(t *testing.T) {
	// Exercise every statement kind through one traversal.
	program := &Program{Stmts: []Stmt{
		&If{Cond: &Bool{Literal: "true", Value: true}, Then: &Empty{}, Else: &Break{}},
		&While{Cond: &Null{}, Body: &Continue{}},
		&For{Body: &Block{}},
		&ForIn{
			Left: &ExprStmt{X: &Ident{Name: "k"}},
			X:    &Ident{Name: "o"},
			Body: &Empty{},
		},
		&Throw{Value: &Array{Items: []Expr{&Number{Literal: "1"}}}},
	}}
	count := 0
	Inspect(program, func(node Node) bool {
		count++
		return true
	})
	require.Equal(t, 18, count)
}
