package transform

import (
	"testing"

	"github.com/deepnoodle-ai/retrograde/ast"
	"github.com/stretchr/testify/require"
)

// upcaser rewrites one specific identifier, delegating everything else to
// the default recursion. Used to observe the rebuild-only-on-change rule.
type upcaser struct {
	from, to string
}

func (u *upcaser) Rewrite(node ast.Node) ast.Node {
	if ident, ok := node.(*ast.Ident); ok && ident.Name == u.from {
		return &ast.Ident{NamePos: ident.NamePos, Name: u.to}
	}
	return Default(u, node)
}

func TestDefaultSharesUnchangedSubtrees(t *testing.T) {
	program := parseProgram(t, `
		a = f(1);
		if (g(a)) { h(a) } else { while (a) { a-- } }
		obj = {k: [a, b], n: 2};
	`)
	u := &upcaser{from: "zzz", to: "ZZZ"}
	out := u.Rewrite(program)
	// Nothing matched, so the exact same tree comes back.
	require.Same(t, ast.Node(program), out)
}

func TestDefaultRebuildsOnChange(t *testing.T) {
	program := parseProgram(t, "a = f(1); b = g(2)")
	u := &upcaser{from: "a", to: "A"}
	out := u.Rewrite(program).(*ast.Program)

	require.NotSame(t, program, out)
	require.Equal(t, "A = f(1)", out.Stmts[0].String())
	// The untouched statement is shared, not copied.
	require.Same(t, program.Stmts[1], out.Stmts[1])
	// The input is unchanged.
	require.Equal(t, "a = f(1)", program.Stmts[0].String())
}

func TestDefaultCoversAllStatementKinds(t *testing.T) {
	program := parseProgram(t, `
		var v = old;
		let w;
		;
		old;
		{ old() }
		if (old) { f() } else { g(old) }
		while (old) { old-- }
		for (var i = old; i < old; i++) { f(old) }
		for (var k in old) { f(k) }
		function fn(p) { return old }
		x = function() { throw old };
		try { old() } catch (e) { f(old) } finally { g(old) }
		do_ = old ? old : old;
		y = new Thing(old)[old].attr;
		z = [old, {k: old}];
		while (true) { break; continue }
	`)
	u := &upcaser{from: "old", to: "NEW"}
	out := u.Rewrite(program).(*ast.Program)
	rendered := out.String()
	require.NotContains(t, rendered, "old")
	require.Contains(t, rendered, "NEW")
}

func TestDefaultLeavesNamePositionsAlone(t *testing.T) {
	program := parseProgram(t, "var n = n + obj.n; o = {n: n}")
	u := &upcaser{from: "n", to: "m"}
	out := u.Rewrite(program).(*ast.Program)
	// Declarator names, attribute names, and property keys stay put; only
	// reference positions change.
	require.Equal(t, "var n = (m + obj.n)", out.Stmts[0].String())
	require.Equal(t, "o = {n: m}", out.Stmts[1].String())
}

func TestDefaultRejectsUnknownNodeKind(t *testing.T) {
	u := &upcaser{from: "a", to: "b"}
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(*Error)
		require.True(t, ok)
		require.Equal(t, ErrMalformedInput, err.Kind)
	}()
	Default(u, &ast.BadExpr{})
}
