package texcalc

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind

	// num is the value of a nodeNum.
	num float64
	// slot is the parameter slot of a nodeParam, and name is its name.
	slot int
	name byte

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum   // push num
	nodeParam // push args[slot]

	nodeNeg  // evaluate left, then negate
	nodeAdd  // evaluate left, add right
	nodeSub  // evaluate left, sub right
	nodeMul  // evaluate left, mul right
	nodeDiv  // evaluate left, div by right
	nodePow  // evaluate left, exp by right
	nodeSqrt // evaluate left, then square root
	nodeAbs  // evaluate left, then absolute value
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=nodeKind -trimprefix=node

func binary(kind nodeKind, left, right *node) *node {
	return &node{kind: kind, left: left, right: right}
}

func unary(kind nodeKind, operand *node) *node {
	return &node{kind: kind, left: operand}
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

func (n *node) fmt(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteString("$#$")
	case nodeNum:
		b.WriteString(strconv.FormatFloat(n.num, 'g', -1, 64))
	case nodeParam:
		b.WriteByte(n.name)
	case nodeNeg:
		b.WriteByte('-')
		n.left.fmt(b, !square)
	case nodeAdd:
		n.left.fmt(b, !square)
		b.WriteString(" + ")
		n.right.fmt(b, !square)
	case nodeSub:
		n.left.fmt(b, !square)
		b.WriteString(" - ")
		n.right.fmt(b, !square)
	case nodeMul:
		n.left.fmt(b, !square)
		b.WriteString(" * ")
		n.right.fmt(b, !square)
	case nodeDiv:
		n.left.fmt(b, !square)
		b.WriteString(" / ")
		n.right.fmt(b, !square)
	case nodePow:
		n.left.fmt(b, !square)
		b.WriteString(" ^ ")
		n.right.fmt(b, !square)
	case nodeSqrt:
		b.WriteString("sqrt")
		n.left.fmt(b, !square)
	case nodeAbs:
		b.WriteString("abs")
		n.left.fmt(b, !square)
	default:
		panic("texcalc: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

// size returns the number of stack slots needed to evaluate n.
func (n *node) size() int {
	switch n.kind {
	case nodeNum, nodeParam:
		return 1
	case nodeNeg, nodeSqrt, nodeAbs:
		return n.left.size()
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		l, r := n.left.size(), n.right.size()+1
		if l > r {
			return l
		}
		return r
	default:
		panic("texcalc: invalid node kind " + n.kind.String())
	}
}
