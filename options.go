package retrograde

import (
	"github.com/deepnoodle-ai/retrograde/transform"
	"github.com/rs/zerolog"
)

type config struct {
	logger   zerolog.Logger
	names    transform.NameGenerator
	passes   []Pass
	filename string
}

// Option is a configuration function for lowering.
type Option func(*config)

func newConfig(options ...Option) *config {
	cfg := &config{logger: zerolog.Nop()}
	for _, opt := range options {
		opt(cfg)
	}
	return cfg
}

// WithLogger sets the logger used to trace pass execution.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithNameGenerator overrides the name generator used for fresh
// identifiers. The caller is responsible for seeding it with every
// identifier in the program.
func WithNameGenerator(names transform.NameGenerator) Option {
	return func(cfg *config) {
		cfg.names = names
	}
}

// WithPass appends a transformation to run after the built-in lowering
// passes. Passes run in the order they were added.
func WithPass(pass Pass) Option {
	return func(cfg *config) {
		cfg.passes = append(cfg.passes, pass)
	}
}

// WithFilename sets the file name reported in parse errors when lowering
// from source text.
func WithFilename(filename string) Option {
	return func(cfg *config) {
		cfg.filename = filename
	}
}
