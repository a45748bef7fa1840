// Package retrograde lowers programs written in a newer scripting dialect to
// an older, broadly-supported one. It transforms abstract syntax trees: a
// program tree goes in, a lowered program tree comes out, with any required
// runtime helpers inlined at the top. Parsing source text into trees and
// printing trees back to text are collaborators, not part of the lowering
// itself.
package retrograde

import (
	"context"

	"github.com/deepnoodle-ai/retrograde/ast"
	"github.com/deepnoodle-ai/retrograde/parser"
	"github.com/deepnoodle-ai/retrograde/runtime"
	"github.com/deepnoodle-ai/retrograde/transform"
)

// Unit holds the per-compilation-unit services shared by every pass: the
// name generator and the runtime helper registry. A Unit must be used for
// exactly one program; reusing one across programs would leak naming and
// helper state between them.
type Unit struct {
	Names   transform.NameGenerator
	Runtime *runtime.Registry
}

// Pass is a caller-supplied transformation given access to the compilation
// unit's shared services.
type Pass struct {
	Name string
	Run  func(u *Unit, node ast.Node) ast.Node
}

// Lower transforms program into the reduced dialect and returns the new
// program tree. The input tree is not modified. Runtime helpers requested
// during lowering are prepended to the result as a single variable
// declaration.
func Lower(ctx context.Context, program *ast.Program, options ...Option) (*ast.Program, error) {
	cfg := newConfig(options...)
	names := cfg.names
	if names == nil {
		names = transform.NewNames(program)
	}
	unit := &Unit{
		Names:   names,
		Runtime: runtime.NewRegistry(names),
	}
	passes := []transform.Pass{
		{Name: "desugar-for-in", Run: func(node ast.Node) ast.Node {
			return transform.DesugarForIn(unit.Names, node)
		}},
	}
	for _, pass := range cfg.passes {
		pass := pass
		passes = append(passes, transform.Pass{
			Name: pass.Name,
			Run: func(node ast.Node) ast.Node {
				return pass.Run(unit, node)
			},
		})
	}
	pipeline := transform.NewPipeline(passes, transform.WithLogger(cfg.logger))
	out, err := pipeline.Run(ctx, program)
	if err != nil {
		return nil, err
	}
	return unit.Runtime.Finalize(out), nil
}

// LowerSource parses source text and lowers the resulting program. This is
// a convenience for callers that do not manage their own parser.
func LowerSource(ctx context.Context, source string, options ...Option) (*ast.Program, error) {
	cfg := newConfig(options...)
	var parserOpts []parser.Option
	if cfg.filename != "" {
		parserOpts = append(parserOpts, parser.WithFilename(cfg.filename))
	}
	program, err := parser.Parse(ctx, source, parserOpts...)
	if err != nil {
		return nil, err
	}
	return Lower(ctx, program, options...)
}
