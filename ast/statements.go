package ast

import (
	"bytes"
	"strings"

	"github.com/deepnoodle-ai/retrograde/internal/token"
)

// Block is a statement node that holds a sequence of statements. This is used
// to represent the body of a function, loop, or conditional, and also appears
// standalone as a bare braced statement.
type Block struct {
	Lbrace token.Position // position of "{"
	Stmts  []Stmt         // statements in the block
	Rbrace token.Position // position of "}"
}

func (s *Block) stmtNode() {}

func (s *Block) Pos() token.Position { return s.Lbrace }
func (s *Block) End() token.Position { return s.Rbrace.Advance(1) }

func (s *Block) String() string {
	var out bytes.Buffer
	out.WriteString("{ ")
	for i, stmt := range s.Stmts {
		if i > 0 {
			out.WriteString("; ")
		}
		out.WriteString(stmt.String())
	}
	out.WriteString(" }")
	return out.String()
}

// Declarator is a single name/initializer pair within a variable declaration.
// The initializer may be nil ("var x;").
type Declarator struct {
	Name  *Ident // name being declared
	Value Expr   // initial value; nil if omitted
}

func (d *Declarator) String() string {
	if d.Value == nil {
		return d.Name.String()
	}
	return d.Name.String() + " = " + d.Value.String()
}

// VarDecl is a statement node that declares one or more variables.
// The Keyword discriminates "var", "let", and "const" declarations.
type VarDecl struct {
	KeywordPos token.Position // position of the keyword
	Keyword    string         // "var", "let", or "const"
	Decls      []*Declarator  // declared names with optional initializers
}

func (s *VarDecl) stmtNode() {}

func (s *VarDecl) Pos() token.Position { return s.KeywordPos }

func (s *VarDecl) End() token.Position {
	last := s.Decls[len(s.Decls)-1]
	if last.Value != nil {
		return last.Value.End()
	}
	return last.Name.End()
}

func (s *VarDecl) String() string {
	var out bytes.Buffer
	out.WriteString(s.Keyword + " ")
	for i, d := range s.Decls {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(d.String())
	}
	return out.String()
}

// ExprStmt is a statement node that wraps a single expression evaluated for
// its side effects.
type ExprStmt struct {
	X Expr // the expression
}

func (s *ExprStmt) stmtNode() {}

func (s *ExprStmt) Pos() token.Position { return s.X.Pos() }
func (s *ExprStmt) End() token.Position { return s.X.End() }

func (s *ExprStmt) String() string { return s.X.String() }

// Empty is a statement node for a bare ";". It carries no behavior.
type Empty struct {
	Semicolon token.Position // position of ";"
}

func (s *Empty) stmtNode() {}

func (s *Empty) Pos() token.Position { return s.Semicolon }
func (s *Empty) End() token.Position { return s.Semicolon.Advance(1) }

func (s *Empty) String() string { return ";" }

// If is a statement node that represents a conditional with an optional
// else branch.
type If struct {
	If   token.Position // position of "if" keyword
	Cond Expr           // condition
	Then Stmt           // then branch
	Else Stmt           // else branch; nil if no else
}

func (s *If) stmtNode() {}

func (s *If) Pos() token.Position { return s.If }

func (s *If) End() token.Position {
	if s.Else != nil {
		return s.Else.End()
	}
	return s.Then.End()
}

func (s *If) String() string {
	var out bytes.Buffer
	out.WriteString("if (")
	out.WriteString(s.Cond.String())
	out.WriteString(") ")
	out.WriteString(s.Then.String())
	if s.Else != nil {
		out.WriteString(" else ")
		out.WriteString(s.Else.String())
	}
	return out.String()
}

// While is a statement node for a while loop.
type While struct {
	While token.Position // position of "while" keyword
	Cond  Expr           // loop condition
	Body  Stmt           // loop body
}

func (s *While) stmtNode() {}

func (s *While) Pos() token.Position { return s.While }
func (s *While) End() token.Position { return s.Body.End() }

func (s *While) String() string {
	var out bytes.Buffer
	out.WriteString("while (")
	out.WriteString(s.Cond.String())
	out.WriteString(") ")
	out.WriteString(s.Body.String())
	return out.String()
}

// For is a statement node for a classic counted loop. Init is either a
// *VarDecl or an ExprStmt; any of Init, Cond, and Post may be nil.
type For struct {
	For  token.Position // position of "for" keyword
	Init Stmt           // init statement; nil if omitted
	Cond Expr           // loop condition; nil if omitted
	Post Expr           // post-iteration expression; nil if omitted
	Body Stmt           // loop body
}

func (s *For) stmtNode() {}

func (s *For) Pos() token.Position { return s.For }
func (s *For) End() token.Position { return s.Body.End() }

func (s *For) String() string {
	var out bytes.Buffer
	out.WriteString("for (")
	if s.Init != nil {
		out.WriteString(s.Init.String())
	}
	out.WriteString("; ")
	if s.Cond != nil {
		out.WriteString(s.Cond.String())
	}
	out.WriteString("; ")
	if s.Post != nil {
		out.WriteString(s.Post.String())
	}
	out.WriteString(") ")
	out.WriteString(s.Body.String())
	return out.String()
}

// ForIn is a statement node for a property-enumeration loop. Left is either
// a *VarDecl holding exactly one declarator with no initializer, or an
// ExprStmt wrapping an assignable reference.
type ForIn struct {
	For  token.Position // position of "for" keyword
	Left Stmt           // loop variable: *VarDecl or *ExprStmt
	X    Expr           // the enumerated collection
	Body Stmt           // loop body
}

func (s *ForIn) stmtNode() {}

func (s *ForIn) Pos() token.Position { return s.For }
func (s *ForIn) End() token.Position { return s.Body.End() }

func (s *ForIn) String() string {
	var out bytes.Buffer
	out.WriteString("for (")
	out.WriteString(s.Left.String())
	out.WriteString(" in ")
	out.WriteString(s.X.String())
	out.WriteString(") ")
	out.WriteString(s.Body.String())
	return out.String()
}

// Return defines a return statement with an optional value.
type Return struct {
	Return token.Position // position of "return" keyword
	Value  Expr           // return value; nil if omitted
}

func (s *Return) stmtNode() {}

func (s *Return) Pos() token.Position { return s.Return }

func (s *Return) End() token.Position {
	if s.Value != nil {
		return s.Value.End()
	}
	return s.Return.Advance(6) // len("return")
}

func (s *Return) String() string {
	if s.Value == nil {
		return "return"
	}
	return "return " + s.Value.String()
}

// Break is a statement node for a break statement.
type Break struct {
	Break token.Position // position of "break" keyword
}

func (s *Break) stmtNode() {}

func (s *Break) Pos() token.Position { return s.Break }
func (s *Break) End() token.Position { return s.Break.Advance(5) } // len("break")

func (s *Break) String() string { return "break" }

// Continue is a statement node for a continue statement.
type Continue struct {
	Continue token.Position // position of "continue" keyword
}

func (s *Continue) stmtNode() {}

func (s *Continue) Pos() token.Position { return s.Continue }
func (s *Continue) End() token.Position { return s.Continue.Advance(8) } // len("continue")

func (s *Continue) String() string { return "continue" }

// Throw is a statement node for a throw statement.
type Throw struct {
	Throw token.Position // position of "throw" keyword
	Value Expr           // thrown value
}

func (s *Throw) stmtNode() {}

func (s *Throw) Pos() token.Position { return s.Throw }
func (s *Throw) End() token.Position { return s.Value.End() }

func (s *Throw) String() string { return "throw " + s.Value.String() }

// Catch is the catch clause of a try statement. It is not itself a statement;
// it only appears as a child of Try. The parameter is a Pattern because the
// dialect allows destructuring the caught value.
type Catch struct {
	Catch token.Position // position of "catch" keyword
	Param Pattern        // caught-exception binding; nil for "catch { }"
	Body  *Block         // catch block
}

func (c *Catch) Pos() token.Position { return c.Catch }
func (c *Catch) End() token.Position { return c.Body.End() }

func (c *Catch) String() string {
	var out bytes.Buffer
	out.WriteString("catch ")
	if c.Param != nil {
		out.WriteString("(")
		out.WriteString(c.Param.String())
		out.WriteString(") ")
	}
	out.WriteString(c.Body.String())
	return out.String()
}

// Try represents a try/catch/finally statement. At least one of Catch and
// Finally is present in a well-formed tree.
type Try struct {
	Try     token.Position // position of "try" keyword
	Body    *Block         // try block
	Catch   *Catch         // catch clause; nil if no catch
	Finally *Block         // finally block; nil if no finally
}

func (s *Try) stmtNode() {}

func (s *Try) Pos() token.Position { return s.Try }

func (s *Try) End() token.Position {
	if s.Finally != nil {
		return s.Finally.End()
	}
	return s.Catch.End()
}

func (s *Try) String() string {
	var out bytes.Buffer
	out.WriteString("try ")
	out.WriteString(s.Body.String())
	if s.Catch != nil {
		out.WriteString(" ")
		out.WriteString(s.Catch.String())
	}
	if s.Finally != nil {
		out.WriteString(" finally ")
		out.WriteString(s.Finally.String())
	}
	return out.String()
}

// FuncDecl is a statement node that declares a named function. The declared
// name is a binding in the enclosing scope.
type FuncDecl struct {
	Func   token.Position // position of "function" keyword
	Name   *Ident         // function name
	Params []*Ident       // parameter names
	Body   *Block         // function body
}

func (s *FuncDecl) stmtNode() {}

func (s *FuncDecl) Pos() token.Position { return s.Func }
func (s *FuncDecl) End() token.Position { return s.Body.End() }

func (s *FuncDecl) String() string {
	return funcString(s.Name, s.Params, s.Body)
}

func funcString(name *Ident, params []*Ident, body *Block) string {
	var out bytes.Buffer
	names := make([]string, 0, len(params))
	for _, p := range params {
		names = append(names, p.Name)
	}
	out.WriteString("function")
	if name != nil {
		out.WriteString(" ")
		out.WriteString(name.Name)
	}
	out.WriteString("(")
	out.WriteString(strings.Join(names, ", "))
	out.WriteString(") ")
	out.WriteString(body.String())
	return out.String()
}
