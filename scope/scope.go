// Package scope computes the sets of names bound at block and function
// level. Binding sets describe exactly one block or one function body; names
// bound in enclosing or nested scopes are never included. Sets are computed
// on demand and never cached, so a pass that moves code can simply recompute.
package scope

import "github.com/deepnoodle-ai/retrograde/ast"

// Set holds the names bound within one block or function.
type Set map[string]struct{}

// Contains reports whether name is in the set.
func (s Set) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

func (s Set) add(names ...string) {
	for _, name := range names {
		s[name] = struct{}{}
	}
}

// BlockBindings returns the names declared by the direct statements of the
// given statement list. Declarations inside nested blocks, functions, loop
// bodies, and catch clauses are not included.
func BlockBindings(stmts []ast.Stmt) Set {
	bound := Set{}
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.VarDecl:
			for _, d := range s.Decls {
				bound.add(d.Name.Name)
			}
		case *ast.FuncDecl:
			bound.add(s.Name.Name)
		}
	}
	return bound
}

// FunctionBindings returns the names bound directly within a function: the
// formal parameters plus every var declaration and function declaration
// anywhere in the body, no matter how deeply nested in blocks, loops, or
// conditionals. This matches hoisting semantics, where var declarations are
// function-scoped regardless of block nesting. Block-scoped let and const
// declarations do not hoist and are reported only by BlockBindings for the
// block that contains them. Nested function bodies are not entered.
func FunctionBindings(params []*ast.Ident, body *ast.Block) Set {
	bound := Set{}
	for _, param := range params {
		bound.add(param.Name)
	}
	if body != nil {
		hoist(bound, body.Stmts)
	}
	return bound
}

// hoist collects declared names from stmts into bound, descending through
// statement structure but stopping at function boundaries.
func hoist(bound Set, stmts []ast.Stmt) {
	for _, stmt := range stmts {
		hoistStmt(bound, stmt)
	}
}

func hoistStmt(bound Set, stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		// Only var hoists; let and const stay confined to their block.
		if s.Keyword == "var" {
			for _, d := range s.Decls {
				bound.add(d.Name.Name)
			}
		}
	case *ast.FuncDecl:
		// The name hoists; the body is a new scope.
		bound.add(s.Name.Name)
	case *ast.Block:
		hoist(bound, s.Stmts)
	case *ast.If:
		hoistStmt(bound, s.Then)
		if s.Else != nil {
			hoistStmt(bound, s.Else)
		}
	case *ast.While:
		hoistStmt(bound, s.Body)
	case *ast.For:
		if s.Init != nil {
			hoistStmt(bound, s.Init)
		}
		hoistStmt(bound, s.Body)
	case *ast.ForIn:
		hoistStmt(bound, s.Left)
		hoistStmt(bound, s.Body)
	case *ast.Try:
		hoist(bound, s.Body.Stmts)
		if s.Catch != nil {
			// The catch parameter binds only within the catch clause,
			// but var declarations inside it still hoist.
			hoist(bound, s.Catch.Body.Stmts)
		}
		if s.Finally != nil {
			hoist(bound, s.Finally.Stmts)
		}
	}
}
