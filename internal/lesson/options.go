package lesson

// Option configures Parse and ParseLessons.
type Option func(*parseConfig)

type parseConfig struct {
	windows      Windows
	parallel     int
	reproduction *Reproduction
}

func newParseConfig(opts []Option) *parseConfig {
	cfg := &parseConfig{windows: DefaultWindows()}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithWindows overrides the classifier lookahead windows.
// Zero fields keep their defaults.
func WithWindows(w Windows) Option {
	return func(c *parseConfig) {
		c.windows = w.withDefaults()
	}
}

// WithParallel classifies up to n lesson blocks concurrently.
// Values below 2 keep the sequential path.
func WithParallel(n int) Option {
	return func(c *parseConfig) {
		c.parallel = n
	}
}

// WithReproduction renumbers and redates lessons after parsing.
// A nil value disables reproduction.
func WithReproduction(r *Reproduction) Option {
	return func(c *parseConfig) {
		c.reproduction = r
	}
}
