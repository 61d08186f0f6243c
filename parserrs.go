package texcalc

import "strconv"

// StructuralError is an error indicating unbalanced or mismatched delimiters,
// or nesting deeper than the parser allows. It implements InputError.
type StructuralError struct {
	// Tok is the delimiter token at fault.
	Tok Token
	// Delim names the delimiter pair, e.g. "{ }". For nesting errors, it
	// names whatever opened the level that was one too deep.
	Delim string
	// Reason describes the problem.
	Reason string
}

func (err *StructuralError) Error() string {
	return errpos(err.Tok.Pos, err.Reason+" ("+err.Delim+")")
}

func (err *StructuralError) Pos() int {
	return err.Tok.Pos
}

func (err *StructuralError) Width() int {
	return err.Tok.Width
}

// OperandError is an error indicating an operator that is missing one or more
// required operands, or an empty expression where one is required. It
// implements InputError.
type OperandError struct {
	// Offset is the byte offset of the operator, or of the location where an
	// expression was expected.
	Offset int
	// Size is the width of the operator, or 0 for a missing expression.
	Size int
	// Operator is the operator missing an operand, or the empty string if an
	// expression was expected.
	Operator string
	// Reason describes the problem.
	Reason string
}

func (err *OperandError) Error() string {
	if err.Operator == "" {
		return errpos(err.Offset, err.Reason)
	}
	return errpos(err.Offset, err.Reason+": "+err.Operator)
}

func (err *OperandError) Pos() int {
	return err.Offset
}

func (err *OperandError) Width() int {
	return err.Size
}

// TokenError is an error indicating a token that cannot begin a term, e.g. a
// binary operator with no left operand. It implements InputError.
type TokenError struct {
	// Tok is the unexpected token.
	Tok Token
}

func (err *TokenError) Error() string {
	return errpos(err.Tok.Pos, "unexpected token "+err.Tok.Kind.String())
}

func (err *TokenError) Pos() int {
	return err.Tok.Pos
}

func (err *TokenError) Width() int {
	return err.Tok.Width
}

// TrailingTokensError is an error indicating tokens left over after a complete
// expression. It implements InputError.
type TrailingTokensError struct {
	// Tok is the first token that was not consumed.
	Tok Token
	// End is the byte offset just past the last trailing token.
	End int
}

func (err *TrailingTokensError) Error() string {
	return errpos(err.Tok.Pos, "trailing tokens after expression")
}

func (err *TrailingTokensError) Pos() int {
	return err.Tok.Pos
}

func (err *TrailingTokensError) Width() int {
	return err.End - err.Tok.Pos
}

// ArityError is an error from calling a compiled function with the wrong
// number of arguments.
type ArityError struct {
	// Want is the number of parameters of the function.
	Want int
	// Got is the number of arguments given.
	Got int
}

func (err *ArityError) Error() string {
	return "function takes " + strconv.Itoa(err.Want) + " arguments but got " + strconv.Itoa(err.Got)
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the byte offset in the source of the text that caused the
	// error.
	Pos() int
	// Width returns the length in bytes of the text that caused the error.
	// It may be zero, e.g. when an expression is missing.
	Width() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*StructuralError)(nil)
	_ InputError = (*OperandError)(nil)
	_ InputError = (*TokenError)(nil)
	_ InputError = (*TrailingTokensError)(nil)
)
