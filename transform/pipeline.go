package transform

import (
	"context"

	"github.com/deepnoodle-ai/retrograde/ast"
	"github.com/rs/zerolog"
)

// Pass is one named tree-to-tree transformation. Run must be a pure
// function of its input tree; fatal conditions are raised by panicking with
// an *Error rather than returned.
type Pass struct {
	Name string
	Run  func(ast.Node) ast.Node
}

// Pipeline applies a sequence of passes to a program. Pipelines are
// single-threaded: passes run strictly in order, each consuming the previous
// pass's output.
type Pipeline struct {
	logger zerolog.Logger
	passes []Pass
}

// PipelineOption is a configuration function for a Pipeline.
type PipelineOption func(*Pipeline)

// WithLogger sets the logger used to trace pass execution. The default
// discards all output.
func WithLogger(logger zerolog.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// NewPipeline returns a Pipeline that will run the given passes in order.
func NewPipeline(passes []Pass, options ...PipelineOption) *Pipeline {
	p := &Pipeline{
		logger: zerolog.Nop(),
		passes: passes,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Run applies every pass to the program in order and returns the resulting
// program. A pass panicking with an *Error aborts the run and surfaces that
// error; the input program is never partially transformed in place, since
// passes build new trees.
func (p *Pipeline) Run(ctx context.Context, program *ast.Program) (result *ast.Program, err error) {
	defer recoverError(&err)
	node := ast.Node(program)
	for _, pass := range p.passes {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		p.logger.Debug().Str("pass", pass.Name).Msg("running transform pass")
		node = pass.Run(node)
		if node == nil {
			panic(NewInternalError("pass %q returned nil", pass.Name))
		}
	}
	out, ok := node.(*ast.Program)
	if !ok {
		panic(NewInternalError("pipeline output is %T, not a program", node))
	}
	return out, nil
}
