package texcalc

import (
	"math"
	"strconv"
)

// instr is an instruction of a lowered expression. Programs run on a stack of
// float64; every instruction either pushes one value or replaces the top one
// or two values with one.
type instr struct {
	op  nodeKind
	num float64
	arg int
}

// program is an expression lowered to postfix order.
type program struct {
	code []instr
	// stack is the most values ever on the stack at once.
	stack int
}

// lower converts an expression to a program. args maps parameter slots to
// argument indices.
func lower(n *node, args []int) program {
	var p program
	p.code = n.lower(p.code, args)
	p.stack = n.size()
	return p
}

func (n *node) lower(code []instr, args []int) []instr {
	switch n.kind {
	case nodeNum:
		return append(code, instr{op: nodeNum, num: n.num})
	case nodeParam:
		return append(code, instr{op: nodeParam, arg: args[n.slot]})
	case nodeNeg, nodeSqrt, nodeAbs:
		code = n.left.lower(code, args)
		return append(code, instr{op: n.kind})
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		code = n.left.lower(code, args)
		code = n.right.lower(code, args)
		return append(code, instr{op: n.kind})
	default:
		panic("texcalc: invalid AST node " + n.kind.String())
	}
}

// run evaluates the program with the given arguments. stack must have capacity
// for at least p.stack values; its contents are overwritten.
func (p *program) run(args []float64, stack []float64) float64 {
	stack = stack[:0]
	for _, in := range p.code {
		switch in.op {
		case nodeNum:
			stack = append(stack, in.num)
		case nodeParam:
			stack = append(stack, args[in.arg])
		case nodeNeg:
			stack[len(stack)-1] = -stack[len(stack)-1]
		case nodeSqrt:
			stack[len(stack)-1] = math.Sqrt(stack[len(stack)-1])
		case nodeAbs:
			stack[len(stack)-1] = math.Abs(stack[len(stack)-1])
		case nodeAdd:
			r := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			stack[len(stack)-1] += r
		case nodeSub:
			r := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			stack[len(stack)-1] -= r
		case nodeMul:
			r := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			stack[len(stack)-1] *= r
		case nodeDiv:
			r := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			stack[len(stack)-1] /= r
		case nodePow:
			r := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			stack[len(stack)-1] = math.Pow(stack[len(stack)-1], r)
		default:
			panic("texcalc: invalid instruction " + in.op.String())
		}
	}
	if len(stack) != 1 {
		panic("texcalc: inconsistent stack: " + strconv.Itoa(len(stack)) + " items (bad program?)")
	}
	return stack[0]
}

// smallStack is the stack size that evaluation can use without allocating.
const smallStack = 16

// Eval evaluates the function with one argument per parameter, in the order
// of Params. Panics if len(args) is not the number of parameters.
func (f *Function) Eval(args []float64) float64 {
	if len(args) != len(f.params) {
		panic("texcalc: " + (&ArityError{Want: len(f.params), Got: len(args)}).Error())
	}
	if f.prog.stack <= smallStack {
		var buf [smallStack]float64
		return f.prog.run(args, buf[:])
	}
	return f.prog.run(args, make([]float64, 0, f.prog.stack))
}

// Call evaluates the function with one argument per parameter, in the order
// of Params. If the number of arguments is wrong, the error is an
// *ArityError. Numeric edge cases are never errors; e.g. division by zero
// gives an infinity or NaN.
func (f *Function) Call(args ...float64) (float64, error) {
	if len(args) != len(f.params) {
		return 0, &ArityError{Want: len(f.params), Got: len(args)}
	}
	return f.Eval(args), nil
}
