package texcalc

import "time"

// Function is a compiled expression. It is safe to call a Function
// concurrently.
type Function struct {
	expr   *Expr
	params []string
	prog   program
}

// Compile lexes, parses, and lowers an expression. Any error in the input is
// an InputError; the specific types are *LexError, *StructuralError,
// *OperandError, *TokenError, and *TrailingTokensError.
func Compile(src string, opts ...Option) (*Function, error) {
	cfg := newConfig(opts)
	start := time.Now()
	toks, err := Lex(src)
	if err != nil {
		cfg.log.Debug().Err(err).Str("src", src).Msg("lex failed")
		return nil, err
	}
	ex, err := parse(toks, cfg)
	if err != nil {
		cfg.log.Debug().Err(err).Str("src", src).Int("tokens", len(toks)).Msg("parse failed")
		return nil, err
	}
	f := &Function{
		expr:   ex,
		params: ex.names,
		prog:   lower(ex.n, ex.args),
	}
	cfg.log.Debug().
		Str("src", src).
		Int("tokens", len(toks)).
		Stringer("tree", ex).
		Strs("params", f.params).
		Int("instructions", len(f.prog.code)).
		Dur("elapsed", time.Since(start)).
		Msg("compiled")
	return f, nil
}

// MustCompile is like Compile but panics if the expression is invalid. It
// simplifies initialization of package-level functions.
func MustCompile(src string, opts ...Option) *Function {
	f, err := Compile(src, opts...)
	if err != nil {
		panic("texcalc: Compile(" + src + "): " + err.Error())
	}
	return f
}

// Params returns the names of the function's parameters in the order that
// Call and Eval expect their arguments, which is sorted order.
func (f *Function) Params() []string {
	return append(([]string)(nil), f.params...)
}

// Name returns the variable that the expression was assigned to, as in
// "y=2x", or the empty string if there was no assignment.
func (f *Function) Name() string {
	return f.expr.Assigned()
}

// Expr returns the parsed expression the function was compiled from.
func (f *Function) Expr() *Expr {
	return f.expr
}

// String creates a string representation of the parsed expression.
func (f *Function) String() string {
	return f.expr.String()
}
