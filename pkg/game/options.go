package game

import (
	"github.com/matzehuels/cubetris/pkg/catalog"
	"github.com/matzehuels/cubetris/pkg/observability"
)

// Option configures a Board.
type Option func(*options)

type options struct {
	cfg       Config
	generator catalog.Generator
	catalog   *catalog.Catalog
	hooks     observability.GameHooks
}

// WithConfig replaces the default configuration. Its Dims field is ignored.
func WithConfig(cfg Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithSeed sets the random seed.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.cfg.Seed = seed }
}

// WithGenerator overrides the piece generator. Pieces it returns are spawned
// as-is apart from the spawn repositioning.
func WithGenerator(g catalog.Generator) Option {
	return func(o *options) { o.generator = g }
}

// WithCatalog keeps the default random generator but draws from c.
func WithCatalog(c catalog.Catalog) Option {
	return func(o *options) { o.catalog = &c }
}

// WithHooks sends this board's events to h instead of the globally
// registered game hooks.
func WithHooks(h observability.GameHooks) Option {
	return func(o *options) { o.hooks = h }
}
