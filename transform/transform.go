// Package transform implements the tree-rewriting pipeline that lowers
// programs to the reduced dialect. Passes implement the Rewriter interface
// and delegate to Default for node kinds they do not special-case. Trees are
// immutable: a rewrite either returns the original node untouched or a newly
// constructed replacement, never a mutation.
package transform

import "github.com/deepnoodle-ai/retrograde/ast"

// Rewriter is one tree transformation. Rewrite maps a node to its
// replacement, returning the original node when nothing changed. A Rewriter
// handles the node kinds it cares about and calls Default for the rest,
// which recurses into children through the same Rewriter.
type Rewriter interface {
	Rewrite(node ast.Node) ast.Node
}

// Default rebuilds node by rewriting each child through r, reconstructing
// the node only when at least one child actually changed. Children in name
// position (declared names, parameters, attribute and property names, catch
// patterns) are definitions rather than references and are left untouched;
// a pass that needs to rewrite those intercepts the enclosing node kind.
//
// Panics with a malformed-input Error on an unrecognized node kind.
func Default(r Rewriter, node ast.Node) ast.Node {
	switch n := node.(type) {
	case *ast.Program:
		if stmts, changed := rewriteStmts(r, n.Stmts); changed {
			return &ast.Program{Stmts: stmts}
		}
		return n
	case *ast.Block:
		if stmts, changed := rewriteStmts(r, n.Stmts); changed {
			return &ast.Block{Lbrace: n.Lbrace, Stmts: stmts, Rbrace: n.Rbrace}
		}
		return n
	case *ast.VarDecl:
		changed := false
		decls := make([]*ast.Declarator, len(n.Decls))
		for i, d := range n.Decls {
			value := rewriteExpr(r, d.Value)
			if value != d.Value {
				changed = true
				decls[i] = &ast.Declarator{Name: d.Name, Value: value}
			} else {
				decls[i] = d
			}
		}
		if changed {
			return &ast.VarDecl{KeywordPos: n.KeywordPos, Keyword: n.Keyword, Decls: decls}
		}
		return n
	case *ast.ExprStmt:
		if x := rewriteExpr(r, n.X); x != n.X {
			return &ast.ExprStmt{X: x}
		}
		return n
	case *ast.If:
		cond := rewriteExpr(r, n.Cond)
		then := rewriteStmt(r, n.Then)
		els := rewriteStmt(r, n.Else)
		if cond != n.Cond || then != n.Then || els != n.Else {
			return &ast.If{If: n.If, Cond: cond, Then: then, Else: els}
		}
		return n
	case *ast.While:
		cond := rewriteExpr(r, n.Cond)
		body := rewriteStmt(r, n.Body)
		if cond != n.Cond || body != n.Body {
			return &ast.While{While: n.While, Cond: cond, Body: body}
		}
		return n
	case *ast.For:
		init := rewriteStmt(r, n.Init)
		cond := rewriteExpr(r, n.Cond)
		post := rewriteExpr(r, n.Post)
		body := rewriteStmt(r, n.Body)
		if init != n.Init || cond != n.Cond || post != n.Post || body != n.Body {
			return &ast.For{For: n.For, Init: init, Cond: cond, Post: post, Body: body}
		}
		return n
	case *ast.ForIn:
		left := rewriteStmt(r, n.Left)
		x := rewriteExpr(r, n.X)
		body := rewriteStmt(r, n.Body)
		if left != n.Left || x != n.X || body != n.Body {
			return &ast.ForIn{For: n.For, Left: left, X: x, Body: body}
		}
		return n
	case *ast.Return:
		if value := rewriteExpr(r, n.Value); value != n.Value {
			return &ast.Return{Return: n.Return, Value: value}
		}
		return n
	case *ast.Throw:
		if value := rewriteExpr(r, n.Value); value != n.Value {
			return &ast.Throw{Throw: n.Throw, Value: value}
		}
		return n
	case *ast.Try:
		body := rewriteNode(r, n.Body).(*ast.Block)
		catch := n.Catch
		if catch != nil {
			catch = rewriteNode(r, catch).(*ast.Catch)
		}
		finally := n.Finally
		if finally != nil {
			finally = rewriteNode(r, finally).(*ast.Block)
		}
		if body != n.Body || catch != n.Catch || finally != n.Finally {
			return &ast.Try{Try: n.Try, Body: body, Catch: catch, Finally: finally}
		}
		return n
	case *ast.Catch:
		if body := rewriteNode(r, n.Body).(*ast.Block); body != n.Body {
			return &ast.Catch{Catch: n.Catch, Param: n.Param, Body: body}
		}
		return n
	case *ast.FuncDecl:
		if body := rewriteNode(r, n.Body).(*ast.Block); body != n.Body {
			return &ast.FuncDecl{Func: n.Func, Name: n.Name, Params: n.Params, Body: body}
		}
		return n
	case *ast.FuncLit:
		if body := rewriteNode(r, n.Body).(*ast.Block); body != n.Body {
			return &ast.FuncLit{Func: n.Func, Name: n.Name, Params: n.Params, Body: body}
		}
		return n
	case *ast.Prefix:
		if x := rewriteExpr(r, n.X); x != n.X {
			return &ast.Prefix{OpPos: n.OpPos, Op: n.Op, X: x}
		}
		return n
	case *ast.Update:
		if x := rewriteExpr(r, n.X); x != n.X {
			return &ast.Update{OpPos: n.OpPos, Op: n.Op, X: x, Prefix: n.Prefix}
		}
		return n
	case *ast.Infix:
		x := rewriteExpr(r, n.X)
		y := rewriteExpr(r, n.Y)
		if x != n.X || y != n.Y {
			return &ast.Infix{X: x, OpPos: n.OpPos, Op: n.Op, Y: y}
		}
		return n
	case *ast.Assign:
		x := rewriteExpr(r, n.X)
		value := rewriteExpr(r, n.Value)
		if x != n.X || value != n.Value {
			return &ast.Assign{X: x, OpPos: n.OpPos, Op: n.Op, Value: value}
		}
		return n
	case *ast.Ternary:
		cond := rewriteExpr(r, n.Cond)
		ifTrue := rewriteExpr(r, n.IfTrue)
		ifFalse := rewriteExpr(r, n.IfFalse)
		if cond != n.Cond || ifTrue != n.IfTrue || ifFalse != n.IfFalse {
			return &ast.Ternary{
				Cond:     cond,
				Question: n.Question,
				IfTrue:   ifTrue,
				Colon:    n.Colon,
				IfFalse:  ifFalse,
			}
		}
		return n
	case *ast.Call:
		fun := rewriteExpr(r, n.Fun)
		args, changed := rewriteExprs(r, n.Args)
		if fun != n.Fun || changed {
			return &ast.Call{Fun: fun, Lparen: n.Lparen, Args: args, Rparen: n.Rparen}
		}
		return n
	case *ast.New:
		fun := rewriteExpr(r, n.Fun)
		args, changed := rewriteExprs(r, n.Args)
		if fun != n.Fun || changed {
			return &ast.New{NewPos: n.NewPos, Fun: fun, Lparen: n.Lparen, Args: args, Rparen: n.Rparen}
		}
		return n
	case *ast.GetAttr:
		// Attr is a property name, not a variable reference.
		if x := rewriteExpr(r, n.X); x != n.X {
			return &ast.GetAttr{X: x, Period: n.Period, Attr: n.Attr}
		}
		return n
	case *ast.Index:
		x := rewriteExpr(r, n.X)
		index := rewriteExpr(r, n.Index)
		if x != n.X || index != n.Index {
			return &ast.Index{X: x, Lbrack: n.Lbrack, Index: index, Rbrack: n.Rbrack}
		}
		return n
	case *ast.Array:
		if items, changed := rewriteExprs(r, n.Items); changed {
			return &ast.Array{Lbrack: n.Lbrack, Items: items, Rbrack: n.Rbrack}
		}
		return n
	case *ast.Object:
		changed := false
		props := make([]*ast.Property, len(n.Props))
		for i, prop := range n.Props {
			value := rewriteExpr(r, prop.Value)
			if value != prop.Value {
				changed = true
				props[i] = &ast.Property{Key: prop.Key, Value: value}
			} else {
				props[i] = prop
			}
		}
		if changed {
			return &ast.Object{Lbrace: n.Lbrace, Props: props, Rbrace: n.Rbrace}
		}
		return n
	case *ast.Ident, *ast.This, *ast.Number, *ast.String, *ast.Bool, *ast.Null,
		*ast.ObjectPattern, *ast.Empty, *ast.Break, *ast.Continue:
		return n
	default:
		panic(NewMalformedError("unsupported node kind %T", node))
	}
}

func rewriteNode(r Rewriter, node ast.Node) ast.Node {
	out := r.Rewrite(node)
	if out == nil {
		panic(NewInternalError("rewriter returned nil for %T", node))
	}
	return out
}

func rewriteExpr(r Rewriter, x ast.Expr) ast.Expr {
	if x == nil {
		return nil
	}
	out, ok := rewriteNode(r, x).(ast.Expr)
	if !ok {
		panic(NewInternalError("rewriter replaced expression %T with a non-expression", x))
	}
	return out
}

func rewriteStmt(r Rewriter, s ast.Stmt) ast.Stmt {
	if s == nil {
		return nil
	}
	out, ok := rewriteNode(r, s).(ast.Stmt)
	if !ok {
		panic(NewInternalError("rewriter replaced statement %T with a non-statement", s))
	}
	return out
}

func rewriteStmts(r Rewriter, stmts []ast.Stmt) ([]ast.Stmt, bool) {
	changed := false
	out := make([]ast.Stmt, len(stmts))
	for i, s := range stmts {
		out[i] = rewriteStmt(r, s)
		if out[i] != s {
			changed = true
		}
	}
	if !changed {
		return stmts, false
	}
	return out, true
}

func rewriteExprs(r Rewriter, exprs []ast.Expr) ([]ast.Expr, bool) {
	changed := false
	out := make([]ast.Expr, len(exprs))
	for i, x := range exprs {
		out[i] = rewriteExpr(r, x)
		if out[i] != x {
			changed = true
		}
	}
	if !changed {
		return exprs, false
	}
	return out, true
}
