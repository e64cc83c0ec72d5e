package render

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/gogpu/gg"

	"github.com/matzehuels/figtex/pkg/cache"
)

// Option configures rendering.
type Option func(*config)

type config struct {
	scale     float64
	anchors   []gg.Point
	embedFont bool
	logger    *log.Logger
	cache     cache.Cache
}

func newConfig(opts ...Option) *config {
	c := &config{
		scale:  1,
		logger: log.NewWithOptions(io.Discard, log.Options{}),
		cache:  cache.NewNullCache(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithScale multiplies the output resolution. Values <= 0 are ignored.
func WithScale(s float64) Option {
	return func(c *config) {
		if s > 0 {
			c.scale = s
		}
	}
}

// WithAnchors marks the given figure-fraction points with a red "+",
// which helps checking where overlay text will be placed.
func WithAnchors(points []gg.Point) Option {
	return func(c *config) { c.anchors = points }
}

// WithEmbeddedFont embeds the text font in SVG output as a data URL.
func WithEmbeddedFont() Option {
	return func(c *config) { c.embedFont = true }
}

// WithLogger sets the logger for renderer diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCache reuses converter output stored in c.
func WithCache(c cache.Cache) Option {
	return func(cfg *config) {
		if c != nil {
			cfg.cache = c
		}
	}
}
