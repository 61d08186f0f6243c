package texcalc

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// LLVM lowers the function to an LLVM IR module containing a single function
// with the given name. The function takes one double per parameter, in the
// order of Params, and returns a double. Square roots, absolute values, and
// powers call the corresponding LLVM intrinsics.
func (f *Function) LLVM(name string) *ir.Module {
	m := ir.NewModule()
	params := make([]*ir.Param, len(f.params))
	for i, p := range f.params {
		params[i] = ir.NewParam(p, types.Double)
	}
	fn := m.NewFunc(name, types.Double, params...)
	g := llvmgen{
		mod:        m,
		block:      fn.NewBlock("entry"),
		params:     params,
		args:       f.expr.args,
		intrinsics: make(map[string]*ir.Func),
	}
	g.block.NewRet(g.value(f.expr.n))
	return m
}

// llvmgen holds the state of lowering a tree to LLVM IR.
type llvmgen struct {
	mod    *ir.Module
	block  *ir.Block
	params []*ir.Param
	// args maps parameter slots to indices in params.
	args []int
	// intrinsics holds the declarations of intrinsics used so far.
	intrinsics map[string]*ir.Func
}

func (g *llvmgen) value(n *node) value.Value {
	switch n.kind {
	case nodeNum:
		return constant.NewFloat(types.Double, n.num)
	case nodeParam:
		return g.params[g.args[n.slot]]
	case nodeNeg:
		return g.block.NewFNeg(g.value(n.left))
	case nodeSqrt:
		return g.block.NewCall(g.intrinsic("llvm.sqrt.f64", 1), g.value(n.left))
	case nodeAbs:
		return g.block.NewCall(g.intrinsic("llvm.fabs.f64", 1), g.value(n.left))
	case nodeAdd:
		return g.block.NewFAdd(g.value(n.left), g.value(n.right))
	case nodeSub:
		return g.block.NewFSub(g.value(n.left), g.value(n.right))
	case nodeMul:
		return g.block.NewFMul(g.value(n.left), g.value(n.right))
	case nodeDiv:
		return g.block.NewFDiv(g.value(n.left), g.value(n.right))
	case nodePow:
		return g.block.NewCall(g.intrinsic("llvm.pow.f64", 2), g.value(n.left), g.value(n.right))
	default:
		panic("texcalc: invalid AST node " + n.kind.String())
	}
}

// intrinsic declares an LLVM intrinsic taking n doubles and returning a
// double, once per module.
func (g *llvmgen) intrinsic(name string, n int) *ir.Func {
	if fn := g.intrinsics[name]; fn != nil {
		return fn
	}
	params := make([]*ir.Param, n)
	for i := range params {
		params[i] = ir.NewParam(string(rune('x'+i)), types.Double)
	}
	fn := g.mod.NewFunc(name, types.Double, params...)
	g.intrinsics[name] = fn
	return fn
}
