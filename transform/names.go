package transform

import (
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/retrograde/ast"
	"github.com/gofrs/uuid"
)

// NameGenerator produces identifier names guaranteed not to collide with any
// identifier already present in the program or previously generated. One
// generator serves one compilation unit; reusing a generator across
// unrelated programs would leak naming state.
type NameGenerator interface {
	Generate() string
}

// Names is the standard NameGenerator. It is seeded with every identifier
// appearing in a program and hands out "$t1", "$t2", ... skipping any that
// are already taken.
type Names struct {
	prefix  string
	counter int
	taken   map[string]struct{}
}

// NamesOption is a configuration function for Names.
type NamesOption func(*Names)

// WithPrefix overrides the default "$t" prefix for generated names.
func WithPrefix(prefix string) NamesOption {
	return func(n *Names) {
		n.prefix = prefix
	}
}

// WithRandomSalt mixes a random component into the prefix, so that names
// generated for one unit cannot collide with names another unit generated
// even when their outputs are later concatenated.
func WithRandomSalt() NamesOption {
	return func(n *Names) {
		id := uuid.Must(uuid.NewV4())
		n.prefix = fmt.Sprintf("%s%s_", n.prefix, strings.ReplaceAll(id.String(), "-", "")[:8])
	}
}

// NewNames returns a generator seeded with every identifier that occurs
// anywhere in the given program.
func NewNames(program *ast.Program, options ...NamesOption) *Names {
	n := &Names{
		prefix: "$t",
		taken:  map[string]struct{}{},
	}
	for _, opt := range options {
		opt(n)
	}
	if program != nil {
		ast.Inspect(program, func(node ast.Node) bool {
			if ident, ok := node.(*ast.Ident); ok {
				n.taken[ident.Name] = struct{}{}
			}
			return true
		})
	}
	return n
}

// Generate returns a fresh name, distinct from every program identifier and
// every previously generated name.
func (n *Names) Generate() string {
	for {
		n.counter++
		name := fmt.Sprintf("%s%d", n.prefix, n.counter)
		if _, ok := n.taken[name]; !ok {
			n.taken[name] = struct{}{}
			return name
		}
	}
}

// Reserve marks a name as taken without generating it.
func (n *Names) Reserve(name string) {
	n.taken[name] = struct{}{}
}
