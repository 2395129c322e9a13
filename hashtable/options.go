package hashtable

import "go.uber.org/zap"

// Option configures a Table created by New.
type Option func(*config)

type config struct {
	alloc  Allocator
	logger *zap.Logger
	hash   HashFunc
}

// WithAllocator sets the allocator used for the table's slots, chains
// and entries. By default allocation never fails.
func WithAllocator(a Allocator) Option {
	return func(c *config) {
		c.alloc = a
	}
}

// WithLogger sets the logger that receives resize events.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithHashFunc replaces the default DJB2 hash.
func WithHashFunc(f HashFunc) Option {
	return func(c *config) {
		c.hash = f
	}
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	c.adjust()
	return c
}

func (c *config) adjust() {
	if c.alloc == nil {
		c.alloc = DefaultAllocator()
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	c.logger = c.logger.Named("hashtable")
	if c.hash == nil {
		c.hash = DJB2
	}
}
