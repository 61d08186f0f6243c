package texcalc

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is a lexical token of an expression.
type Token struct {
	// Kind is the type of the token.
	Kind TokenKind
	// Num is the value of a TokenNumber.
	Num float64
	// Name is the variable name of a TokenVariable or TokenAssign. For an
	// assignment that does not follow a variable, Name is 0.
	Name byte
	// Pos is the byte offset of the token in the source.
	Pos int
	// Width is the length of the token's text in bytes.
	Width int
}

func (t Token) String() string {
	s := t.Kind.String()
	switch t.Kind {
	case TokenNumber:
		s += "(" + strconv.FormatFloat(t.Num, 'g', -1, 64) + ")"
	case TokenVariable, TokenAssign:
		if t.Name != 0 {
			s += "(" + string(t.Name) + ")"
		}
	}
	return s + "@" + strconv.Itoa(t.Pos)
}

// TokenKind is the type of a token.
type TokenKind int8

const (
	TokenNone TokenKind = iota
	// TokenNumber is a numeric literal, or \pi.
	TokenNumber
	// TokenVariable is a single-letter variable.
	TokenVariable
	// TokenAdd is +.
	TokenAdd
	// TokenSubtract is -, binary or unary.
	TokenSubtract
	// TokenMultiply is \cdot or \times.
	TokenMultiply
	// TokenPower is ^.
	TokenPower
	// TokenFrac is \frac.
	TokenFrac
	// TokenRoot is \sqrt.
	TokenRoot
	// TokenOpenParen is \left(.
	TokenOpenParen
	// TokenCloseParen is \right).
	TokenCloseParen
	// TokenOpenGroup is {.
	TokenOpenGroup
	// TokenCloseGroup is }.
	TokenCloseGroup
	// TokenOpenAbs is \left|.
	TokenOpenAbs
	// TokenCloseAbs is \right|.
	TokenCloseAbs
	// TokenAssign is =.
	TokenAssign
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=TokenKind -trimprefix=Token

// commands are the backslash commands in the order the lexer tries them.
// Commands match by prefix, so a command must never be listed after another
// that is its prefix.
var commands = []struct {
	text string
	kind TokenKind
	num  float64
}{
	{`\cdot`, TokenMultiply, 0},
	{`\times`, TokenMultiply, 0},
	{`\frac`, TokenFrac, 0},
	{`\sqrt`, TokenRoot, 0},
	{`\pi`, TokenNumber, math.Pi},
	{`\left(`, TokenOpenParen, 0},
	{`\right)`, TokenCloseParen, 0},
	{`\left|`, TokenOpenAbs, 0},
	{`\right|`, TokenCloseAbs, 0},
}

// Commands returns the backslash commands the lexer recognizes.
func Commands() []string {
	r := make([]string, len(commands))
	for i, cmd := range commands {
		r[i] = cmd.text
	}
	return r
}

// Lex splits src into tokens. The result is a fresh slice on every call.
func Lex(src string) ([]Token, error) {
	var toks []Token
	for pos := 0; pos < len(src); {
		r, sz := utf8.DecodeRuneInString(src[pos:])
		if unicode.IsSpace(r) {
			pos += sz
			continue
		}
		tok, err := lexOne(src, pos)
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenAssign && len(toks) > 0 && toks[len(toks)-1].Kind == TokenVariable {
			tok.Name = toks[len(toks)-1].Name
		}
		toks = append(toks, tok)
		pos += tok.Width
	}
	return toks, nil
}

// lexOne scans the token starting at src[pos], which is not whitespace.
func lexOne(src string, pos int) (Token, error) {
	tok := Token{Pos: pos, Width: 1}
	c := src[pos]
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		tok.Kind = TokenVariable
		tok.Name = c
		return tok, nil
	case '0' <= c && c <= '9', c == '.':
		return scanNum(src, pos)
	}
	switch c {
	case '+':
		tok.Kind = TokenAdd
		return tok, nil
	case '-':
		tok.Kind = TokenSubtract
		return tok, nil
	case '^':
		tok.Kind = TokenPower
		return tok, nil
	case '\\':
		rest := src[pos:]
		for _, cmd := range commands {
			if strings.HasPrefix(rest, cmd.text) {
				tok.Kind = cmd.kind
				tok.Num = cmd.num
				tok.Width = len(cmd.text)
				return tok, nil
			}
		}
		// Report the whole command name.
		n := 1
		for n < len(rest) && isLetter(rest[n]) {
			n++
		}
		return tok, &LexError{Text: rest[:n], Offset: pos}
	case '{':
		tok.Kind = TokenOpenGroup
		return tok, nil
	case '}':
		tok.Kind = TokenCloseGroup
		return tok, nil
	case '=':
		tok.Kind = TokenAssign
		return tok, nil
	}
	_, sz := utf8.DecodeRuneInString(src[pos:])
	return tok, &LexError{Text: src[pos : pos+sz], Offset: pos}
}

// scanNum scans a literal of the form \d*\.?\d+ starting at src[pos].
func scanNum(src string, pos int) (Token, error) {
	end := pos
	for end < len(src) && isDigit(src[end]) {
		end++
	}
	if end < len(src) && src[end] == '.' {
		frac := end + 1
		for frac < len(src) && isDigit(src[frac]) {
			frac++
		}
		if frac == end+1 {
			// A dot must be followed by at least one digit.
			return Token{Pos: pos}, &LexError{Text: src[pos:frac], Kind: "number", Offset: pos}
		}
		end = frac
	}
	// The literal is always well-formed, so the only possible error is a
	// range error, for which ParseFloat returns ±Inf. That is what we want.
	v, _ := strconv.ParseFloat(src[pos:end], 64)
	return Token{Kind: TokenNumber, Num: v, Pos: pos, Width: end - pos}, nil
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// LexError indicates input that matches no token. It implements InputError.
type LexError struct {
	// Text is the unrecognized input.
	Text string
	// Kind is the type of token the lexer was scanning, either "number" or
	// the empty string if no token kind had been decided.
	Kind string
	// Offset is the byte offset of Text in the source.
	Offset int
}

func (err *LexError) Error() string {
	if err.Kind == "" {
		return errpos(err.Offset, "invalid token "+strconv.Quote(err.Text))
	}
	return errpos(err.Offset, "invalid "+err.Kind+" token "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Offset
}

func (err *LexError) Width() int {
	return len(err.Text)
}
