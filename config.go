package yaml

// Config holds the tunable knobs for a parse: the default block indent
// width, a starting byte offset (for resuming or sub-slice parsing), and an
// optional recursion-depth guard. There is deliberately no file format for
// this: a parser library's configuration is a handful of call-site options,
// not something a caller would want to externalize into its own YAML file.
type Config struct {
	// Indent is the width, in spaces, of one block-indentation level when
	// a document does not otherwise pin it down. Must be positive; the
	// zero value is replaced by the default (2).
	Indent int
	// Pos is the absolute byte offset to start parsing from.
	Pos int
	// MaxDepth bounds node nesting depth; parsing beyond it fails with a
	// TerminateError instead of risking a stack overflow on pathological
	// input. Zero means "use the default" (see defaultMaxDepth);
	// negative means unlimited.
	MaxDepth int
}

const defaultIndent = 2
const defaultMaxDepth = 2000

// Option configures a Config. Functional options, matching the small
// option-struct/option-function shape the teacher uses for its own
// Decode/Encode options, rather than a config file this library would have
// to parse on its own behalf.
type Option func(*Config)

// WithIndent overrides the default block indent width.
func WithIndent(n int) Option {
	return func(c *Config) { c.Indent = n }
}

// WithPos sets the starting byte offset for the parse.
func WithPos(n int) Option {
	return func(c *Config) { c.Pos = n }
}

// WithMaxDepth overrides the nesting-depth guard. A value < 0 disables it.
func WithMaxDepth(n int) Option {
	return func(c *Config) { c.MaxDepth = n }
}

func newConfig(opts ...Option) Config {
	cfg := Config{Indent: defaultIndent, MaxDepth: defaultMaxDepth}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.Indent <= 0 {
		cfg.Indent = defaultIndent
	}
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = defaultMaxDepth
	}
	return cfg
}
