package texcalc

import (
	"strconv"

	"github.com/rs/zerolog"
)

// DefaultMaxDepth is the nesting limit used when no MaxDepth option is given.
const DefaultMaxDepth = 256

// Option is an option for parsing and compiling.
type Option interface {
	option(config) config
}

type (
	depthopt int
	logopt   struct {
		log zerolog.Logger
	}
)

// config holds the options for a parse.
type config struct {
	// maxdepth is the deepest nesting of groups and negations allowed.
	maxdepth int
	// log receives debug tracing.
	log zerolog.Logger
}

func newConfig(opts []Option) config {
	c := config{
		maxdepth: DefaultMaxDepth,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		c = opt.option(c)
	}
	return c
}

// MaxDepth limits how deeply delimiter groups and unary negations may nest.
// Input nested deeper than n fails with a *StructuralError. Panics if n is not
// positive.
func MaxDepth(n int) Option {
	if n <= 0 {
		panic("texcalc: invalid max depth " + strconv.Itoa(n))
	}
	return depthopt(n)
}

func (o depthopt) option(c config) config {
	c.maxdepth = int(o)
	return c
}

// Logger sets a logger to receive debug tracing of compilation: the token
// count, the parse tree, the parameters, and the time taken.
func Logger(log zerolog.Logger) Option {
	return logopt{log}
}

func (o logopt) option(c config) config {
	c.log = o.log
	return c
}
