package texcalc

import "strconv"

// Expr = Sum
// Sum = Diff { '+' Diff }
// Diff = Prod { '-' Prod }
// Prod = Term { '\cdot' Term }
// Term = Factor { Factor } | '-' Term
// Factor = Atom [ '^' Atom ]
// Atom = num | var | Group | '\left(' Expr '\right)' | '\left|' Expr '\right|'
//      | '\sqrt' Group | '\frac' Group Group
// Group = '{' Expr '}'
//
// A '-' that begins a Prod is unary when it is the first token of its span or
// follows '\cdot', '-', or '^'.

// Expr is a parsed expression.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the sorted list of variable names used in the expression.
	names []string
	// args maps each parameter slot to the index of its name in names.
	args []int
	// assign is the variable the expression defines, or 0.
	assign byte
}

// parsectx holds the state of a single parse.
type parsectx struct {
	toks []Token
	// slots maps variable names to parameter slots.
	slots map[byte]int
	// names is the variable name of each slot, in order of first occurrence.
	names []byte
	// depth is the current nesting of groups and negations.
	depth    int
	maxdepth int
}

// Parse parses a lexed expression. If the tokens begin with a variable followed
// by an assignment, the expression defines that variable, and the rest of the
// tokens are parsed as its value.
func Parse(toks []Token, opts ...Option) (*Expr, error) {
	return parse(toks, newConfig(opts))
}

func parse(toks []Token, cfg config) (*Expr, error) {
	p := parsectx{
		toks:     toks,
		slots:    make(map[byte]int),
		maxdepth: cfg.maxdepth,
	}
	if err := p.balance(); err != nil {
		return nil, err
	}
	lo, hi := 0, len(toks)
	var assign byte
	if hi >= 2 && toks[0].Kind == TokenVariable && toks[1].Kind == TokenAssign {
		assign = toks[0].Name
		lo = 2
	}
	// Any other assignment at the top level comes after a complete expression.
	if k := p.first(lo, hi, TokenAssign); k >= 0 {
		if k == lo {
			return nil, &TokenError{Tok: toks[k]}
		}
		last := toks[hi-1]
		return nil, &TrailingTokensError{Tok: toks[k], End: last.Pos + last.Width}
	}
	n, err := p.parse(lo, hi)
	if err != nil {
		return nil, err
	}
	ex := Expr{
		n:      n,
		names:  make([]string, len(p.names)),
		args:   make([]int, len(p.names)),
		assign: assign,
	}
	for i, c := range p.names {
		ex.names[i] = string(c)
	}
	sortstrs(ex.names)
	for slot, c := range p.names {
		for i, name := range ex.names {
			if name[0] == c {
				ex.args[slot] = i
				break
			}
		}
	}
	return &ex, nil
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// balance checks that every delimiter in the input is closed by the matching
// delimiter, so that scans over any span built from whole groups are balanced.
func (p *parsectx) balance() error {
	var open []int
	for i, tok := range p.toks {
		switch tok.Kind {
		case TokenOpenParen, TokenOpenGroup, TokenOpenAbs:
			open = append(open, i)
		case TokenCloseParen, TokenCloseGroup, TokenCloseAbs:
			if len(open) == 0 {
				return &StructuralError{Tok: tok, Delim: delimName(tok.Kind), Reason: "unbalanced delimiters: no opening delimiter"}
			}
			left := p.toks[open[len(open)-1]]
			if closer(left.Kind) != tok.Kind {
				return &StructuralError{Tok: tok, Delim: delimName(left.Kind), Reason: "unbalanced delimiters: mismatched closing delimiter"}
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) != 0 {
		tok := p.toks[open[len(open)-1]]
		return &StructuralError{Tok: tok, Delim: delimName(tok.Kind), Reason: "unbalanced delimiters: no closing delimiter"}
	}
	return nil
}

// parse parses toks[lo:hi] as a complete expression.
func (p *parsectx) parse(lo, hi int) (*node, error) {
	if lo >= hi {
		return nil, p.expected(lo)
	}
	if k := p.splits(lo, hi, p.is(TokenAdd)); k != nil {
		return p.fold(lo, hi, k, nodeAdd, true)
	}
	if k := p.splits(lo, hi, p.binarySub(lo)); k != nil {
		return p.fold(lo, hi, k, nodeSub, false)
	}
	if k := p.splits(lo, hi, p.is(TokenMultiply)); k != nil {
		return p.fold(lo, hi, k, nodeMul, true)
	}
	return p.term(lo, hi)
}

// fold parses the pieces of toks[lo:hi] between the operators at ops and joins
// them into nodes of the given kind. If right is true, the result nests to the
// right, so a+b+c is a+(b+c); otherwise it nests to the left, so a-b-c is
// (a-b)-c.
func (p *parsectx) fold(lo, hi int, ops []int, kind nodeKind, right bool) (*node, error) {
	pieces := make([]*node, 0, len(ops)+1)
	start := lo
	for _, k := range append(ops, hi) {
		if start == k {
			if k == hi {
				// Nothing after the last operator.
				return nil, p.missing(k - 1)
			}
			return nil, p.missing(k)
		}
		n, err := p.parse(start, k)
		if err != nil {
			return nil, err
		}
		pieces = append(pieces, n)
		start = k + 1
	}
	if right {
		n := pieces[len(pieces)-1]
		for i := len(pieces) - 2; i >= 0; i-- {
			n = binary(kind, pieces[i], n)
		}
		return n, nil
	}
	n := pieces[0]
	for _, r := range pieces[1:] {
		n = binary(kind, n, r)
	}
	return n, nil
}

// term parses toks[lo:hi], which contains no binary operators outside
// delimiters, as a product of factors.
func (p *parsectx) term(lo, hi int) (*node, error) {
	var factors []*node
	for i := lo; i < hi; {
		tok := p.toks[i]
		switch tok.Kind {
		case TokenPower:
			// The exponent binds to the most recent factor only: 2x^2 is
			// 2(x^2).
			if len(factors) == 0 || i+1 >= hi {
				return nil, p.missing(i)
			}
			exp, next, err := p.atom(i+1, hi)
			if err != nil {
				return nil, err
			}
			f := &factors[len(factors)-1]
			*f = binary(nodePow, *f, exp)
			i = next
		case TokenSubtract:
			// Unary negation takes the entire rest of the term.
			if i+1 >= hi {
				return nil, p.missing(i)
			}
			if err := p.enter(tok); err != nil {
				return nil, err
			}
			n, err := p.term(i+1, hi)
			if err != nil {
				return nil, err
			}
			p.leave()
			factors = append(factors, unary(nodeNeg, n))
			i = hi
		default:
			n, next, err := p.atom(i, hi)
			if err != nil {
				return nil, err
			}
			factors = append(factors, n)
			i = next
		}
	}
	// Implied multiplication.
	n := factors[0]
	for _, f := range factors[1:] {
		n = binary(nodeMul, n, f)
	}
	return n, nil
}

// atom parses the single atom beginning at toks[i]. It returns the parsed node
// and the index of the first token after the atom.
func (p *parsectx) atom(i, hi int) (*node, int, error) {
	tok := p.toks[i]
	switch tok.Kind {
	case TokenNumber:
		return &node{kind: nodeNum, num: tok.Num}, i + 1, nil
	case TokenVariable:
		return p.param(tok.Name), i + 1, nil
	case TokenOpenParen, TokenOpenGroup:
		n, end, err := p.group(i, hi)
		if err != nil {
			return nil, 0, err
		}
		return n, end + 1, nil
	case TokenOpenAbs:
		n, end, err := p.group(i, hi)
		if err != nil {
			return nil, 0, err
		}
		return unary(nodeAbs, n), end + 1, nil
	case TokenRoot:
		if !p.opens(i+1, hi) {
			return nil, 0, p.malformed(i)
		}
		n, end, err := p.group(i+1, hi)
		if err != nil {
			return nil, 0, err
		}
		return unary(nodeSqrt, n), end + 1, nil
	case TokenFrac:
		if !p.opens(i+1, hi) {
			return nil, 0, p.malformed(i)
		}
		num, end, err := p.group(i+1, hi)
		if err != nil {
			return nil, 0, err
		}
		if !p.opens(end+1, hi) {
			return nil, 0, p.malformed(i)
		}
		den, end, err := p.group(end+1, hi)
		if err != nil {
			return nil, 0, err
		}
		return binary(nodeDiv, num, den), end + 1, nil
	default:
		return nil, 0, &TokenError{Tok: tok}
	}
}

// group parses the contents of the delimiter group opening at toks[open]. It
// returns the parsed contents and the index of the closing delimiter.
func (p *parsectx) group(open, hi int) (*node, int, error) {
	end, err := p.match(open, hi)
	if err != nil {
		return nil, 0, err
	}
	if err := p.enter(p.toks[open]); err != nil {
		return nil, 0, err
	}
	n, err := p.parse(open+1, end)
	if err != nil {
		return nil, 0, err
	}
	p.leave()
	return n, end, nil
}

// match finds the delimiter closing the one at toks[open], counting only
// delimiters of the same kind.
func (p *parsectx) match(open, hi int) (int, error) {
	o := p.toks[open].Kind
	c := closer(o)
	depth := 0
	for i := open; i < hi; i++ {
		switch p.toks[i].Kind {
		case o:
			depth++
		case c:
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, &StructuralError{Tok: p.toks[open], Delim: delimName(o), Reason: "unbalanced delimiters: no closing delimiter"}
}

// splits returns the indices of tokens in toks[lo:hi] outside any delimiters
// for which keep returns true, or nil if there are none.
func (p *parsectx) splits(lo, hi int, keep func(int) bool) []int {
	var r []int
	depth := 0
	for i := lo; i < hi; i++ {
		switch p.toks[i].Kind {
		case TokenOpenParen, TokenOpenGroup, TokenOpenAbs:
			depth++
		case TokenCloseParen, TokenCloseGroup, TokenCloseAbs:
			depth--
		default:
			if depth == 0 && keep(i) {
				r = append(r, i)
			}
		}
	}
	return r
}

// first returns the index of the first token of the given kind in toks[lo:hi]
// outside any delimiters, or -1 if there is none.
func (p *parsectx) first(lo, hi int, kind TokenKind) int {
	k := p.splits(lo, hi, p.is(kind))
	if k == nil {
		return -1
	}
	return k[0]
}

func (p *parsectx) is(kind TokenKind) func(int) bool {
	return func(i int) bool {
		return p.toks[i].Kind == kind
	}
}

// binarySub returns a predicate selecting subtraction tokens in a span
// starting at lo that are binary rather than unary negation.
func (p *parsectx) binarySub(lo int) func(int) bool {
	return func(i int) bool {
		if p.toks[i].Kind != TokenSubtract || i == lo {
			return false
		}
		switch p.toks[i-1].Kind {
		case TokenMultiply, TokenSubtract, TokenPower:
			return false
		}
		return true
	}
}

// opens returns whether toks[i] exists in the span and opens a { } group.
func (p *parsectx) opens(i, hi int) bool {
	return i < hi && p.toks[i].Kind == TokenOpenGroup
}

// param returns a reference to the parameter slot for a variable, allocating
// the slot on first use.
func (p *parsectx) param(name byte) *node {
	slot, ok := p.slots[name]
	if !ok {
		slot = len(p.names)
		p.slots[name] = slot
		p.names = append(p.names, name)
	}
	return &node{kind: nodeParam, slot: slot, name: name}
}

// enter descends one nesting level for the token that opens it.
func (p *parsectx) enter(tok Token) error {
	p.depth++
	if p.depth > p.maxdepth {
		return &StructuralError{
			Tok:    tok,
			Delim:  delimName(tok.Kind),
			Reason: "nesting too deep (limit " + strconv.Itoa(p.maxdepth) + ")",
		}
	}
	return nil
}

func (p *parsectx) leave() {
	p.depth--
}

// expected returns an error for an empty span beginning at toks[lo].
func (p *parsectx) expected(lo int) error {
	off := 0
	if lo > 0 {
		t := p.toks[lo-1]
		off = t.Pos + t.Width
	}
	return &OperandError{Offset: off, Reason: "expected term"}
}

// missing returns an error for the operator at toks[i] lacking an operand.
func (p *parsectx) missing(i int) error {
	tok := p.toks[i]
	return &OperandError{Offset: tok.Pos, Size: tok.Width, Operator: opName(tok.Kind), Reason: "missing operand"}
}

// malformed returns an error for the operator at toks[i] lacking the groups it
// requires.
func (p *parsectx) malformed(i int) error {
	tok := p.toks[i]
	return &OperandError{Offset: tok.Pos, Size: tok.Width, Operator: opName(tok.Kind), Reason: "malformed operator"}
}

// closer gets the closing delimiter kind for an opening delimiter kind.
func closer(open TokenKind) TokenKind {
	switch open {
	case TokenOpenParen:
		return TokenCloseParen
	case TokenOpenGroup:
		return TokenCloseGroup
	case TokenOpenAbs:
		return TokenCloseAbs
	default:
		panic("texcalc: not an opening delimiter: " + open.String())
	}
}

// delimName names the delimiter pair that a token belongs to. Other tokens are
// named by opName.
func delimName(kind TokenKind) string {
	switch kind {
	case TokenOpenParen, TokenCloseParen:
		return `\left( \right)`
	case TokenOpenGroup, TokenCloseGroup:
		return "{ }"
	case TokenOpenAbs, TokenCloseAbs:
		return `\left| \right|`
	default:
		return opName(kind)
	}
}

// opName gets the source text of an operator token kind.
func opName(kind TokenKind) string {
	switch kind {
	case TokenAdd:
		return "+"
	case TokenSubtract:
		return "-"
	case TokenMultiply:
		return `\cdot`
	case TokenPower:
		return "^"
	case TokenFrac:
		return `\frac`
	case TokenRoot:
		return `\sqrt`
	default:
		return kind.String()
	}
}

// Vars returns the variable names used in the expression, sorted.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// Assigned returns the name of the variable that the expression defines, or
// the empty string if it has no leading assignment.
func (e *Expr) Assigned() string {
	if e.assign == 0 {
		return ""
	}
	return string(e.assign)
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	return e.n.String()
}
