package transform

import (
	"github.com/deepnoodle-ai/retrograde/ast"
	"github.com/deepnoodle-ai/retrograde/scope"
)

// Rename rewrites every free occurrence of oldName within node to newName.
// Occurrences shadowed by an intervening declaration of oldName (a block
// declaration, a function parameter, a hoisted var, or a plain-name catch
// binding) are left untouched. Function declarations are definition sites
// rather than shadows: a rename targeting a function's own declared name
// rewrites the declaration and its references together. When oldName is
// "this" or "arguments", the rewrite stops at every function boundary, since
// those bindings are implicit and non-lexical.
//
// The caller must ensure newName does not already occur free within node,
// typically by sourcing it from a NameGenerator. Under that precondition,
// renaming oldName to newName and then newName back to oldName reproduces a
// structurally equal tree.
func Rename(node ast.Node, oldName, newName string) ast.Node {
	r := &renamer{oldName: oldName, newName: newName}
	return r.Rewrite(node)
}

type renamer struct {
	oldName string
	newName string
}

func (r *renamer) Rewrite(node ast.Node) ast.Node {
	switch n := node.(type) {
	case *ast.Ident:
		if n.Name == r.oldName {
			return &ast.Ident{NamePos: n.NamePos, Name: r.newName}
		}
		return n
	case *ast.This:
		if r.oldName == "this" {
			return &ast.Ident{NamePos: n.ThisPos, Name: r.newName}
		}
		return n
	case *ast.Block:
		if r.shadowedByBlock(n.Stmts) {
			// Every occurrence inside refers to the shadowing declaration.
			return n
		}
		return Default(r, n)
	case *ast.Program:
		if r.shadowedByBlock(n.Stmts) {
			return n
		}
		return Default(r, n)
	case *ast.FuncDecl:
		// The declared name is a definition site in the enclosing scope and
		// is rewritten unconditionally.
		name := n.Name
		if name.Name == r.oldName {
			name = &ast.Ident{NamePos: name.NamePos, Name: r.newName}
		}
		body := n.Body
		if !r.stopsAtFunction(n.Params, n.Body) {
			body = rewriteNode(r, n.Body).(*ast.Block)
		}
		if name == n.Name && body == n.Body {
			return n
		}
		return &ast.FuncDecl{Func: n.Func, Name: name, Params: n.Params, Body: body}
	case *ast.FuncLit:
		// A literal's own name binds only within the literal, so it shadows
		// rather than declares.
		if n.Name != nil && n.Name.Name == r.oldName {
			return n
		}
		if r.stopsAtFunction(n.Params, n.Body) {
			return n
		}
		body := rewriteNode(r, n.Body).(*ast.Block)
		if body == n.Body {
			return n
		}
		return &ast.FuncLit{Func: n.Func, Name: n.Name, Params: n.Params, Body: body}
	case *ast.Catch:
		// A plain-name binding shadows the whole clause. Destructuring
		// patterns are not analyzed for shadowing; see the package notes.
		if ident, ok := n.Param.(*ast.Ident); ok && ident.Name == r.oldName {
			return n
		}
		return Default(r, n)
	default:
		return Default(r, node)
	}
}

// shadowedByBlock reports whether a variable declaration among the direct
// statements rebinds oldName. A function declaration of that name does not
// shadow: the declaration site is rewritten by the FuncDecl case and its
// references must follow it, so recursion continues into the block.
func (r *renamer) shadowedByBlock(stmts []ast.Stmt) bool {
	for _, stmt := range stmts {
		decl, ok := stmt.(*ast.VarDecl)
		if !ok {
			continue
		}
		for _, d := range decl.Decls {
			if d.Name.Name == r.oldName {
				return true
			}
		}
	}
	return false
}

// stopsAtFunction reports whether the rename must not cross into a function
// with the given parameters and body.
func (r *renamer) stopsAtFunction(params []*ast.Ident, body *ast.Block) bool {
	if r.oldName == "this" || r.oldName == "arguments" {
		return true
	}
	return scope.FunctionBindings(params, body).Contains(r.oldName)
}
