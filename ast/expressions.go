package ast

import (
	"bytes"
	"strings"

	"github.com/deepnoodle-ai/retrograde/internal/token"
)

// Ident is an expression node that refers to a variable by name. Two Ident
// nodes with the same name are interchangeable for binding purposes even
// though they are distinct objects.
type Ident struct {
	NamePos token.Position // position of identifier
	Name    string         // identifier name
}

func (x *Ident) exprNode()    {}
func (x *Ident) patternNode() {}

func (x *Ident) Pos() token.Position { return x.NamePos }
func (x *Ident) End() token.Position { return x.NamePos.Advance(len(x.Name)) }

// Names returns the single variable name for an identifier pattern.
func (x *Ident) Names() []string { return []string{x.Name} }

func (x *Ident) String() string { return x.Name }

// This is an expression node for the implicit receiver binding.
type This struct {
	ThisPos token.Position // position of "this" keyword
}

func (x *This) exprNode() {}

func (x *This) Pos() token.Position { return x.ThisPos }
func (x *This) End() token.Position { return x.ThisPos.Advance(4) } // len("this")

func (x *This) String() string { return "this" }

// Prefix is an operator expression where the operator precedes the operand.
// Examples include "!x", "-x", "typeof x", "void x", and "delete x.y".
type Prefix struct {
	OpPos token.Position // position of operator
	Op    string         // operator: "!", "-", "+", "~", "typeof", "void", "delete"
	X     Expr           // operand
}

func (x *Prefix) exprNode() {}

func (x *Prefix) Pos() token.Position { return x.OpPos }
func (x *Prefix) End() token.Position { return x.X.End() }

func (x *Prefix) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(x.Op)
	if len(x.Op) > 1 {
		// keyword operators need a separating space
		out.WriteString(" ")
	}
	out.WriteString(x.X.String())
	out.WriteString(")")
	return out.String()
}

// Update is an increment or decrement expression, in either prefix or
// postfix position.
type Update struct {
	OpPos  token.Position // position of operator
	Op     string         // "++" or "--"
	X      Expr           // operand; must be assignable
	Prefix bool           // true for "++x", false for "x++"
}

func (x *Update) exprNode() {}

func (x *Update) Pos() token.Position {
	if x.Prefix {
		return x.OpPos
	}
	return x.X.Pos()
}

func (x *Update) End() token.Position {
	if x.Prefix {
		return x.X.End()
	}
	return x.OpPos.Advance(2)
}

func (x *Update) String() string {
	if x.Prefix {
		return "(" + x.Op + x.X.String() + ")"
	}
	return "(" + x.X.String() + x.Op + ")"
}

// Infix is an operator expression where the operator is between the operands.
// Examples include "x + y", "a < b", "k in obj", and "x instanceof T".
type Infix struct {
	X     Expr           // left operand
	OpPos token.Position // position of operator
	Op    string         // operator: "+", "-", "in", "instanceof", "&&", etc.
	Y     Expr           // right operand
}

func (x *Infix) exprNode() {}

func (x *Infix) Pos() token.Position { return x.X.Pos() }
func (x *Infix) End() token.Position { return x.Y.End() }

func (x *Infix) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(x.X.String())
	out.WriteString(" " + x.Op + " ")
	out.WriteString(x.Y.String())
	out.WriteString(")")
	return out.String()
}

// Assign is an expression node for an assignment, including compound
// assignments like "+=". The target must be an assignable reference.
type Assign struct {
	X     Expr           // assignment target
	OpPos token.Position // position of operator
	Op    string         // "=", "+=", "-=", "*=", "/="
	Value Expr           // assigned value
}

func (x *Assign) exprNode() {}

func (x *Assign) Pos() token.Position { return x.X.Pos() }
func (x *Assign) End() token.Position { return x.Value.End() }

func (x *Assign) String() string {
	return x.X.String() + " " + x.Op + " " + x.Value.String()
}

// Ternary is an expression node that evaluates to one of two values based
// on a condition.
type Ternary struct {
	Cond     Expr           // condition
	Question token.Position // position of "?"
	IfTrue   Expr           // value if condition is true
	Colon    token.Position // position of ":"
	IfFalse  Expr           // value if condition is false
}

func (x *Ternary) exprNode() {}

func (x *Ternary) Pos() token.Position { return x.Cond.Pos() }
func (x *Ternary) End() token.Position { return x.IfFalse.End() }

func (x *Ternary) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(x.Cond.String())
	out.WriteString(" ? ")
	out.WriteString(x.IfTrue.String())
	out.WriteString(" : ")
	out.WriteString(x.IfFalse.String())
	out.WriteString(")")
	return out.String()
}

// Call is an expression node that describes the invocation of a function.
type Call struct {
	Fun    Expr           // function expression
	Lparen token.Position // position of "("
	Args   []Expr         // function arguments
	Rparen token.Position // position of ")"
}

func (x *Call) exprNode() {}

func (x *Call) Pos() token.Position { return x.Fun.Pos() }
func (x *Call) End() token.Position { return x.Rparen.Advance(1) }

func (x *Call) String() string {
	var out bytes.Buffer
	args := make([]string, 0, len(x.Args))
	for _, a := range x.Args {
		args = append(args, a.String())
	}
	out.WriteString(x.Fun.String())
	out.WriteString("(")
	out.WriteString(strings.Join(args, ", "))
	out.WriteString(")")
	return out.String()
}

// New is an expression node for a constructor invocation.
type New struct {
	NewPos token.Position // position of "new" keyword
	Fun    Expr           // constructor expression
	Lparen token.Position // position of "("
	Args   []Expr         // constructor arguments
	Rparen token.Position // position of ")"
}

func (x *New) exprNode() {}

func (x *New) Pos() token.Position { return x.NewPos }
func (x *New) End() token.Position { return x.Rparen.Advance(1) }

func (x *New) String() string {
	var out bytes.Buffer
	args := make([]string, 0, len(x.Args))
	for _, a := range x.Args {
		args = append(args, a.String())
	}
	out.WriteString("new ")
	out.WriteString(x.Fun.String())
	out.WriteString("(")
	out.WriteString(strings.Join(args, ", "))
	out.WriteString(")")
	return out.String()
}

// GetAttr is an expression node that describes the access of a named
// attribute on an object. The attribute is a property name, not a variable
// reference.
type GetAttr struct {
	X      Expr           // object expression
	Period token.Position // position of "."
	Attr   *Ident         // attribute name
}

func (x *GetAttr) exprNode() {}

func (x *GetAttr) Pos() token.Position { return x.X.Pos() }
func (x *GetAttr) End() token.Position { return x.Attr.End() }

func (x *GetAttr) String() string {
	return x.X.String() + "." + x.Attr.Name
}

// Index is an expression node that describes computed property access.
type Index struct {
	X      Expr           // object expression
	Lbrack token.Position // position of "["
	Index  Expr           // index expression
	Rbrack token.Position // position of "]"
}

func (x *Index) exprNode() {}

func (x *Index) Pos() token.Position { return x.X.Pos() }
func (x *Index) End() token.Position { return x.Rbrack.Advance(1) }

func (x *Index) String() string {
	return x.X.String() + "[" + x.Index.String() + "]"
}

// FuncLit is an expression node that holds a function literal. The optional
// name binds only within the function itself.
type FuncLit struct {
	Func   token.Position // position of "function" keyword
	Name   *Ident         // function name; nil for anonymous functions
	Params []*Ident       // parameter names
	Body   *Block         // function body
}

func (x *FuncLit) exprNode() {}

func (x *FuncLit) Pos() token.Position { return x.Func }
func (x *FuncLit) End() token.Position { return x.Body.End() }

func (x *FuncLit) String() string {
	return funcString(x.Name, x.Params, x.Body)
}

// IsAssignable reports whether x is a valid assignment target: a plain
// identifier or a member access.
func IsAssignable(x Expr) bool {
	switch x.(type) {
	case *Ident, *GetAttr, *Index:
		return true
	}
	return false
}
