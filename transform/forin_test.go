package transform

import (
	"strings"
	"testing"

	"github.com/deepnoodle-ai/retrograde/ast"
	"github.com/stretchr/testify/require"
)

func TestDesugarForInWithDeclaration(t *testing.T) {
	program := parseProgram(t, "for (var k in obj) { f(k) }")
	names := NewNames(program)

	out := DesugarForIn(names, program).(*ast.Program)
	require.Len(t, out.Stmts, 1)
	block, ok := out.Stmts[0].(*ast.Block)
	require.True(t, ok)

	expected := "{ " +
		"var $t1 = []; " +
		"var $t2 = obj; " +
		"for (var $t3 in $t2) $t1.push($t3); " +
		"for (var $t4 = 0; ($t4 < $t1.length); ($t4++)) " +
		"{ var k = $t1[$t4]; if ((!(k in $t2))) continue; f(k) }" +
		" }"
	require.Equal(t, expected, block.String())
}

func TestDesugarForInKeepsDeclarationKeyword(t *testing.T) {
	program := parseProgram(t, "for (let k in obj) { f(k) }")
	names := NewNames(program)

	out := DesugarForIn(names, program).(*ast.Program)
	counted := out.Stmts[0].(*ast.Block).Stmts[3].(*ast.For)
	body := counted.Body.(*ast.Block)
	decl, ok := body.Stmts[0].(*ast.VarDecl)
	require.True(t, ok)
	require.Equal(t, "let", decl.Keyword)
	require.Equal(t, "let k = $t1[$t4]", decl.String())
}

func TestDesugarForInWithReference(t *testing.T) {
	program := parseProgram(t, "for (k in obj) { f(k) }")
	names := NewNames(program)

	out := DesugarForIn(names, program).(*ast.Program)
	block := out.Stmts[0].(*ast.Block)

	// The original reference is assigned rather than redeclared.
	counted := block.Stmts[3].(*ast.For)
	body := counted.Body.(*ast.Block)
	assign, ok := body.Stmts[0].(*ast.ExprStmt)
	require.True(t, ok)
	require.Equal(t, "k = $t1[$t4]", assign.String())
}

func TestDesugarForInMemberReference(t *testing.T) {
	program := parseProgram(t, "for (a.b in obj) { f() }")
	names := NewNames(program)

	out := DesugarForIn(names, program).(*ast.Program)
	block := out.Stmts[0].(*ast.Block)

	// The snapshot loop iterates its own fresh variable. A member target has
	// observable assignment semantics and must only be written in the counted
	// loop, once per iteration.
	gather := block.Stmts[2].(*ast.ForIn)
	require.Equal(t, "for (var $t3 in $t2) $t1.push($t3)", gather.String())
	require.NotContains(t, gather.String(), "a.b")

	counted := block.Stmts[3].(*ast.For)
	body := counted.Body.(*ast.Block)
	require.Equal(t, "a.b = $t1[$t4]", body.Stmts[0].String())
}

func TestDesugarForInSingleCollectionEvaluation(t *testing.T) {
	// The collection expression must appear exactly once in the output, in
	// the snapshot declaration; every other mention goes through the fresh
	// collection variable.
	program := parseProgram(t, "for (var k in makeObj()) { f(k) }")
	names := NewNames(program)

	out := DesugarForIn(names, program).(*ast.Program)
	rendered := out.String()
	require.Equal(t, 1, strings.Count(rendered, "makeObj()"))

	block := out.Stmts[0].(*ast.Block)
	decl := block.Stmts[1].(*ast.VarDecl)
	require.Equal(t, "var $t2 = makeObj()", decl.String())
}

func TestDesugarForInStalenessGuard(t *testing.T) {
	program := parseProgram(t, "for (var k in obj) { f(k) }")
	names := NewNames(program)

	out := DesugarForIn(names, program).(*ast.Program)
	counted := out.Stmts[0].(*ast.Block).Stmts[3].(*ast.For)
	body := counted.Body.(*ast.Block)

	guard, ok := body.Stmts[1].(*ast.If)
	require.True(t, ok)
	require.Equal(t, "(!(k in $t2))", guard.Cond.String())
	_, ok = guard.Then.(*ast.Continue)
	require.True(t, ok)
}

func TestDesugarForInInlinesBody(t *testing.T) {
	// Body statements are inlined, not nested in their own block, so break
	// and continue keep targeting the rewritten loop.
	program := parseProgram(t, "for (var k in obj) { if (skip(k)) continue; g(k); break }")
	names := NewNames(program)

	out := DesugarForIn(names, program).(*ast.Program)
	counted := out.Stmts[0].(*ast.Block).Stmts[3].(*ast.For)
	body := counted.Body.(*ast.Block)
	// key assignment + guard + the three original statements
	require.Len(t, body.Stmts, 5)
}

func TestDesugarForInUnbracedBody(t *testing.T) {
	program := parseProgram(t, "for (var k in obj) f(k)")
	names := NewNames(program)

	out := DesugarForIn(names, program).(*ast.Program)
	counted := out.Stmts[0].(*ast.Block).Stmts[3].(*ast.For)
	body := counted.Body.(*ast.Block)
	require.Len(t, body.Stmts, 3)
	require.Equal(t, "f(k)", body.Stmts[2].String())
}

func TestDesugarForInNestedLoops(t *testing.T) {
	program := parseProgram(t, "for (var a in x) { for (var b in y) { f(a, b) } }")
	names := NewNames(program)

	out := DesugarForIn(names, program).(*ast.Program)
	outer := out.Stmts[0].(*ast.Block)
	require.Len(t, outer.Stmts, 4)

	// The inner loop was desugared first (bottom-up), so the outer counted
	// loop's body contains the inner loop's expansion block.
	counted := outer.Stmts[3].(*ast.For)
	body := counted.Body.(*ast.Block)
	inner, ok := body.Stmts[2].(*ast.Block)
	require.True(t, ok)
	require.Len(t, inner.Stmts, 4)
	_, ok = inner.Stmts[2].(*ast.ForIn)
	require.True(t, ok)
}

func TestDesugarForInLeavesOtherLoopsAlone(t *testing.T) {
	program := parseProgram(t, "for (var i = 0; i < 10; i++) { f(i) }")
	names := NewNames(program)

	out := DesugarForIn(names, program)
	require.True(t, ast.Equal(program, out))
}

func TestDesugarForInRejectsMultipleDeclarators(t *testing.T) {
	loop := &ast.ForIn{
		Left: &ast.VarDecl{Keyword: "var", Decls: []*ast.Declarator{
			{Name: &ast.Ident{Name: "a"}},
			{Name: &ast.Ident{Name: "b"}},
		}},
		X:    &ast.Ident{Name: "obj"},
		Body: &ast.Block{},
	}
	names := NewNames(nil)
	require.PanicsWithError(t,
		"malformed input: for-in loop variable must be a single declaration without an initializer, got \"var a, b\"",
		func() { DesugarForIn(names, loop) })
}

func TestDesugarForInRejectsInitializedDeclarator(t *testing.T) {
	loop := &ast.ForIn{
		Left: &ast.VarDecl{Keyword: "var", Decls: []*ast.Declarator{
			{Name: &ast.Ident{Name: "a"}, Value: &ast.Number{Literal: "1", Value: 1}},
		}},
		X:    &ast.Ident{Name: "obj"},
		Body: &ast.Block{},
	}
	names := NewNames(nil)
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(*Error)
		require.True(t, ok)
		require.Equal(t, ErrMalformedInput, err.Kind)
	}()
	DesugarForIn(names, loop)
}

func TestDesugarForInRejectsNilBody(t *testing.T) {
	loop := &ast.ForIn{
		Left: &ast.VarDecl{Keyword: "var", Decls: []*ast.Declarator{
			{Name: &ast.Ident{Name: "k"}},
		}},
		X: &ast.Ident{Name: "obj"},
	}
	names := NewNames(nil)
	require.PanicsWithError(t,
		"malformed input: for-in loop requires a body",
		func() { DesugarForIn(names, loop) })
}

func TestDesugarForInRejectsNonAssignableReference(t *testing.T) {
	loop := &ast.ForIn{
		Left: &ast.ExprStmt{X: &ast.Call{Fun: &ast.Ident{Name: "f"}}},
		X:    &ast.Ident{Name: "obj"},
		Body: &ast.Block{},
	}
	names := NewNames(nil)
	require.Panics(t, func() { DesugarForIn(names, loop) })
}
