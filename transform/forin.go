package transform

import (
	"github.com/deepnoodle-ai/retrograde/ast"
)

// DesugarForIn rewrites every property-enumeration loop under node into a
// counted loop over a materialized snapshot of the collection's keys. Later
// lowering stages cannot express native enumerate-in-place loops whose body
// may suspend, so each loop
//
//	for (K in COLLECTION) BODY
//
// becomes a block of the form
//
//	var $keys = [];
//	var $coll = COLLECTION;
//	for (var $k in $coll) $keys.push($k);
//	for (var $i = 0; $i < $keys.length; $i++) {
//	    K = $keys[$i];           // declared instead if K was a declaration,
//	                             // keeping the original keyword
//	    if (!(K in $coll)) continue;
//	    ...BODY statements, inlined...
//	}
//
// The gather loop iterates a fresh variable of its own, so K is written only
// inside the counted loop, once per iteration, exactly as the original loop
// wrote it. A member-expression K in particular must not be assigned through
// while the snapshot is taken.
//
// The collection expression is evaluated exactly once. The key-gathering
// loop forwards whatever enumeration order the host provides. The staleness
// guard skips keys deleted from the collection between snapshot and use,
// restoring native enumeration semantics over the snapshot. BODY statements
// are inlined rather than re-wrapped so break and continue keep their
// original target. Loops are rewritten bottom-up: a nested enumeration
// inside BODY is desugared before its enclosing loop.
//
// Fresh names come from the generator, so no hygiene pass is needed
// afterward. Panics with a malformed-input Error when the loop has no body
// or the loop-variable position is neither a single-name declaration nor a
// plain assignable reference.
func DesugarForIn(names NameGenerator, node ast.Node) ast.Node {
	d := &forInDesugarer{names: names}
	return d.Rewrite(node)
}

type forInDesugarer struct {
	names NameGenerator
}

func (d *forInDesugarer) Rewrite(node ast.Node) ast.Node {
	// Children first, so nested loops are already lowered when the
	// enclosing loop is rebuilt.
	node = Default(d, node)
	if loop, ok := node.(*ast.ForIn); ok {
		return d.lower(loop)
	}
	return node
}

func (d *forInDesugarer) lower(loop *ast.ForIn) ast.Stmt {
	if loop.Body == nil {
		panic(NewMalformedError("for-in loop requires a body"))
	}
	// The loop variable is either a fresh single-name declaration or an
	// existing assignable reference. Anything else is unsupported.
	var keyRef ast.Expr
	var declares bool
	var keyword string
	switch left := loop.Left.(type) {
	case *ast.VarDecl:
		if len(left.Decls) != 1 || left.Decls[0].Value != nil {
			panic(NewMalformedError(
				"for-in loop variable must be a single declaration without an initializer, got %q",
				left.String()))
		}
		keyRef = &ast.Ident{Name: left.Decls[0].Name.Name}
		declares = true
		keyword = left.Keyword
	case *ast.ExprStmt:
		if !ast.IsAssignable(left.X) {
			panic(NewMalformedError(
				"for-in loop variable must be an assignable reference, got %q", left.String()))
		}
		keyRef = left.X
	default:
		panic(NewMalformedError("unsupported for-in loop variable %T", loop.Left))
	}

	keys := &ast.Ident{Name: d.names.Generate()}
	coll := &ast.Ident{Name: d.names.Generate()}
	gatherKey := &ast.Ident{Name: d.names.Generate()}
	index := &ast.Ident{Name: d.names.Generate()}

	// var $keys = [];
	declKeys := &ast.VarDecl{
		KeywordPos: loop.For,
		Keyword:    "var",
		Decls:      []*ast.Declarator{{Name: keys, Value: &ast.Array{}}},
	}
	// var $coll = COLLECTION;
	declColl := &ast.VarDecl{
		KeywordPos: loop.For,
		Keyword:    "var",
		Decls:      []*ast.Declarator{{Name: coll, Value: loop.X}},
	}
	// for (var $k in $coll) $keys.push($k);
	// The gather variable is its own fresh name: iterating with the original
	// loop target here would write it once per enumerated key during the
	// snapshot, which the source loop never did.
	gather := &ast.ForIn{
		For: loop.For,
		Left: &ast.VarDecl{
			Keyword: "var",
			Decls:   []*ast.Declarator{{Name: gatherKey}},
		},
		X: coll,
		Body: &ast.ExprStmt{X: &ast.Call{
			Fun:  &ast.GetAttr{X: keys, Attr: &ast.Ident{Name: "push"}},
			Args: []ast.Expr{gatherKey},
		}},
	}

	// K = $keys[$i], or a declaration of K when the original loop declared it.
	current := &ast.Index{X: keys, Index: index}
	var setKey ast.Stmt
	if declares {
		setKey = &ast.VarDecl{
			Keyword: keyword,
			Decls:   []*ast.Declarator{{Name: keyRef.(*ast.Ident), Value: current}},
		}
	} else {
		setKey = &ast.ExprStmt{X: &ast.Assign{X: keyRef, Op: "=", Value: current}}
	}
	// if (!(K in $coll)) continue;
	guard := &ast.If{
		Cond: &ast.Prefix{Op: "!", X: &ast.Infix{X: keyRef, Op: "in", Y: coll}},
		Then: &ast.Continue{},
	}
	body := []ast.Stmt{setKey, guard}
	if block, ok := loop.Body.(*ast.Block); ok {
		body = append(body, block.Stmts...)
	} else {
		body = append(body, loop.Body)
	}

	// for (var $i = 0; $i < $keys.length; $i++) { ... }
	counted := &ast.For{
		For: loop.For,
		Init: &ast.VarDecl{
			Keyword: "var",
			Decls:   []*ast.Declarator{{Name: index, Value: &ast.Number{Literal: "0", Value: 0}}},
		},
		Cond: &ast.Infix{
			X:  index,
			Op: "<",
			Y:  &ast.GetAttr{X: keys, Attr: &ast.Ident{Name: "length"}},
		},
		Post: &ast.Update{Op: "++", X: index},
		Body: &ast.Block{Stmts: body},
	}

	return &ast.Block{
		Lbrace: loop.For,
		Stmts:  []ast.Stmt{declKeys, declColl, gather, counted},
		Rbrace: loop.Body.End(),
	}
}
