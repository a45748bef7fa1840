package ast

// Visitor defines the interface for AST traversal. If Visit returns nil,
// children of the node are not visited. Otherwise, the returned Visitor
// is used to visit children.
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses an AST in depth-first order. It starts by calling
// v.Visit(node); if the returned visitor w is not nil, Walk is invoked
// recursively with visitor w for each of the non-nil children of node.
//
// Binding names (declarator names, parameters, function names, catch
// patterns) are visited like any other child; property names in attribute
// access and object literal keys are not, since they are not identifiers in
// the binding sense.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, stmt := range n.Stmts {
			Walk(v, stmt)
		}

	// Statements
	case *Block:
		for _, stmt := range n.Stmts {
			Walk(v, stmt)
		}
	case *VarDecl:
		for _, d := range n.Decls {
			Walk(v, d.Name)
			if d.Value != nil {
				Walk(v, d.Value)
			}
		}
	case *ExprStmt:
		Walk(v, n.X)
	case *Empty:
		// No children
	case *If:
		Walk(v, n.Cond)
		Walk(v, n.Then)
		if n.Else != nil {
			Walk(v, n.Else)
		}
	case *While:
		Walk(v, n.Cond)
		Walk(v, n.Body)
	case *For:
		if n.Init != nil {
			Walk(v, n.Init)
		}
		if n.Cond != nil {
			Walk(v, n.Cond)
		}
		if n.Post != nil {
			Walk(v, n.Post)
		}
		Walk(v, n.Body)
	case *ForIn:
		Walk(v, n.Left)
		Walk(v, n.X)
		Walk(v, n.Body)
	case *Return:
		if n.Value != nil {
			Walk(v, n.Value)
		}
	case *Break:
		// No children
	case *Continue:
		// No children
	case *Throw:
		Walk(v, n.Value)
	case *Try:
		Walk(v, n.Body)
		if n.Catch != nil {
			Walk(v, n.Catch)
		}
		if n.Finally != nil {
			Walk(v, n.Finally)
		}
	case *Catch:
		if n.Param != nil {
			Walk(v, n.Param)
		}
		Walk(v, n.Body)
	case *FuncDecl:
		Walk(v, n.Name)
		for _, param := range n.Params {
			Walk(v, param)
		}
		Walk(v, n.Body)

	// Error recovery nodes
	case *BadExpr:
		// No children
	case *BadStmt:
		// No children

	// Expressions
	case *Ident:
		// No children
	case *This:
		// No children
	case *Number:
		// No children
	case *String:
		// No children
	case *Bool:
		// No children
	case *Null:
		// No children
	case *Prefix:
		Walk(v, n.X)
	case *Update:
		Walk(v, n.X)
	case *Infix:
		Walk(v, n.X)
		Walk(v, n.Y)
	case *Assign:
		Walk(v, n.X)
		Walk(v, n.Value)
	case *Ternary:
		Walk(v, n.Cond)
		Walk(v, n.IfTrue)
		Walk(v, n.IfFalse)
	case *Call:
		Walk(v, n.Fun)
		for _, arg := range n.Args {
			Walk(v, arg)
		}
	case *New:
		Walk(v, n.Fun)
		for _, arg := range n.Args {
			Walk(v, arg)
		}
	case *GetAttr:
		Walk(v, n.X)
	case *Index:
		Walk(v, n.X)
		Walk(v, n.Index)
	case *FuncLit:
		if n.Name != nil {
			Walk(v, n.Name)
		}
		for _, param := range n.Params {
			Walk(v, param)
		}
		Walk(v, n.Body)
	case *Array:
		for _, item := range n.Items {
			Walk(v, item)
		}
	case *Object:
		for _, p := range n.Props {
			Walk(v, p.Value)
		}
	case *ObjectPattern:
		for _, p := range n.Props {
			Walk(v, p)
		}
	}
}

// Inspect traverses an AST in depth-first order. It calls f(node) for each
// node; if f returns true, Inspect invokes f recursively for each of the
// non-nil children of node.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}
