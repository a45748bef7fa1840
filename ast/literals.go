package ast

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/retrograde/internal/token"
)

// Number is an expression node that holds a numeric literal. The dialect has
// a single number type, so the parsed value is always a float64.
type Number struct {
	ValuePos token.Position // position of the literal
	Literal  string         // the literal text (e.g., "42", "0x2a", "1.5e3")
	Value    float64        // the parsed value
}

func (x *Number) exprNode() {}

func (x *Number) Pos() token.Position { return x.ValuePos }
func (x *Number) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }

func (x *Number) String() string { return x.Literal }

// String is an expression node that holds a string literal.
type String struct {
	ValuePos token.Position // position of opening quote
	Literal  string         // the raw literal including quotes
	Value    string         // the unquoted string value
}

func (x *String) exprNode() {}

func (x *String) Pos() token.Position { return x.ValuePos }
func (x *String) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }

func (x *String) String() string { return fmt.Sprintf("%q", x.Value) }

// Bool is an expression node that holds a boolean literal.
type Bool struct {
	ValuePos token.Position // position of "true" or "false"
	Literal  string         // "true" or "false"
	Value    bool           // the boolean value
}

func (x *Bool) exprNode() {}

func (x *Bool) Pos() token.Position { return x.ValuePos }
func (x *Bool) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }

func (x *Bool) String() string { return x.Literal }

// Null is an expression node that holds a null literal.
type Null struct {
	NullPos token.Position // position of "null" keyword
}

func (x *Null) exprNode() {}

func (x *Null) Pos() token.Position { return x.NullPos }
func (x *Null) End() token.Position { return x.NullPos.Advance(4) } // len("null")

func (x *Null) String() string { return "null" }

// Array is an expression node that builds an array from its elements.
type Array struct {
	Lbrack token.Position // position of "["
	Items  []Expr         // array elements
	Rbrack token.Position // position of "]"
}

func (x *Array) exprNode() {}

func (x *Array) Pos() token.Position { return x.Lbrack }
func (x *Array) End() token.Position { return x.Rbrack.Advance(1) }

func (x *Array) String() string {
	var out bytes.Buffer
	elements := make([]string, 0, len(x.Items))
	for _, el := range x.Items {
		elements = append(elements, el.String())
	}
	out.WriteString("[")
	out.WriteString(strings.Join(elements, ", "))
	out.WriteString("]")
	return out.String()
}

// Property represents a single key-value pair in an object literal. The key
// is an identifier, string, or number token; it is a property name, never a
// variable reference.
type Property struct {
	Key   Expr // *Ident, *String, or *Number
	Value Expr // property value
}

func (p *Property) String() string {
	return p.Key.String() + ": " + p.Value.String()
}

// Object is an expression node that builds an object from its properties.
type Object struct {
	Lbrace token.Position // position of "{"
	Props  []*Property    // ordered key-value pairs
	Rbrace token.Position // position of "}"
}

func (x *Object) exprNode() {}

func (x *Object) Pos() token.Position { return x.Lbrace }
func (x *Object) End() token.Position { return x.Rbrace.Advance(1) }

func (x *Object) String() string {
	var out bytes.Buffer
	pairs := make([]string, 0, len(x.Props))
	for _, p := range x.Props {
		pairs = append(pairs, p.String())
	}
	out.WriteString("{")
	out.WriteString(strings.Join(pairs, ", "))
	out.WriteString("}")
	return out.String()
}

// ObjectPattern represents object destructuring in binding position, such as
// "catch ({message})". Only shorthand bindings are supported.
type ObjectPattern struct {
	Lbrace token.Position // position of "{"
	Props  []*Ident       // property names to extract
	Rbrace token.Position // position of "}"
}

func (x *ObjectPattern) patternNode() {}

func (x *ObjectPattern) Pos() token.Position { return x.Lbrace }
func (x *ObjectPattern) End() token.Position { return x.Rbrace.Advance(1) }

// Names returns all variable names introduced by this pattern.
func (x *ObjectPattern) Names() []string {
	names := make([]string, len(x.Props))
	for i, p := range x.Props {
		names[i] = p.Name
	}
	return names
}

func (x *ObjectPattern) String() string {
	var out bytes.Buffer
	names := make([]string, 0, len(x.Props))
	for _, p := range x.Props {
		names = append(names, p.Name)
	}
	out.WriteString("{")
	out.WriteString(strings.Join(names, ", "))
	out.WriteString("}")
	return out.String()
}
