package runtime

import (
	"regexp"

	"github.com/deepnoodle-ai/retrograde/ast"
	"github.com/deepnoodle-ai/retrograde/parser"
	"github.com/deepnoodle-ai/retrograde/transform"
)

// placeholderRe matches %name references inside helper definition text.
// Substitution happens on helper text only, never on user source.
var placeholderRe = regexp.MustCompile(`%([A-Za-z_$][A-Za-z0-9_$]*)`)

// Registry collects runtime helpers requested by transform passes and
// injects their declarations into the program once. One Registry serves one
// compilation unit; it must be constructed fresh per unit and passed
// explicitly to every pass that needs it.
type Registry struct {
	names     transform.NameGenerator
	entries   map[string]*entry
	order     []string
	expanding map[string]bool
}

type entry struct {
	ident    *ast.Ident
	expr     ast.Expr
	inserted bool
}

// NewRegistry returns an empty Registry drawing helper identifiers from the
// given generator.
func NewRegistry(names transform.NameGenerator) *Registry {
	return &Registry{
		names:     names,
		entries:   map[string]*entry{},
		expanding: map[string]bool{},
	}
}

// Register defines the helper called name from the given source text. If
// name is already registered this is a no-op. Placeholders in the source are
// resolved first, registering referenced shared helpers as needed, then the
// expanded text is parsed into an expression tree and bound to a fresh
// identifier.
//
// Helper text is developer-authored, so a definition that fails to parse, a
// placeholder with no definition, or a cyclic reference chain panics with an
// internal-consistency Error.
func (r *Registry) Register(name, source string) {
	if _, ok := r.entries[name]; ok {
		return
	}
	if r.expanding[name] {
		panic(transform.NewInternalError("runtime helper %q references itself (cyclic definition)", name))
	}
	r.expanding[name] = true
	defer delete(r.expanding, name)

	expr, err := parser.ParseExpression(r.expand(source), "runtime helper "+name)
	if err != nil {
		panic(transform.NewInternalError("%v", err))
	}
	r.entries[name] = &entry{
		ident: &ast.Ident{Name: r.names.Generate()},
		expr:  expr,
	}
	r.order = append(r.order, name)
}

// expand replaces every %name placeholder with the unique identifier of the
// referenced helper, registering shared helpers transitively.
func (r *Registry) expand(source string) string {
	return placeholderRe.ReplaceAllStringFunc(source, func(match string) string {
		name := match[1:]
		if _, ok := r.entries[name]; !ok {
			def, shared := sharedHelpers[name]
			if !shared {
				panic(transform.NewInternalError(
					"runtime helper text references unknown helper %q", name))
			}
			r.Register(name, def)
		}
		return r.entries[name].ident.Name
	})
}

// Get returns a reference expression for the helper called name,
// registering it first when needed: from source if one is supplied,
// otherwise from the shared helper definitions. Requesting an unregistered
// helper with no definition is a pass-author error and panics with an
// internal-consistency Error.
func (r *Registry) Get(name string, source ...string) ast.Expr {
	if _, ok := r.entries[name]; !ok {
		if len(source) > 0 && source[0] != "" {
			r.Register(name, source[0])
		} else if def, shared := sharedHelpers[name]; shared {
			r.Register(name, def)
		} else {
			panic(transform.NewInternalError(
				"runtime helper %q was never registered and has no shared definition", name))
		}
	}
	return &ast.Ident{Name: r.entries[name].ident.Name}
}

// Finalize returns the program with one variable declaration prepended that
// binds every not-yet-inserted helper. Helpers are declared in registration
// order, dependencies first. Finalize is idempotent: entries already
// inserted are skipped, and a registry with nothing new to insert returns
// the program unchanged.
func (r *Registry) Finalize(program *ast.Program) *ast.Program {
	var decls []*ast.Declarator
	for _, name := range r.order {
		e := r.entries[name]
		if e.inserted {
			continue
		}
		e.inserted = true
		decls = append(decls, &ast.Declarator{Name: e.ident, Value: e.expr})
	}
	if len(decls) == 0 {
		return program
	}
	decl := &ast.VarDecl{Keyword: "var", Decls: decls}
	stmts := make([]ast.Stmt, 0, len(program.Stmts)+1)
	stmts = append(stmts, decl)
	stmts = append(stmts, program.Stmts...)
	return &ast.Program{Stmts: stmts}
}
