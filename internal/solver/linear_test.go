package solver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"symexec/internal/ir"
	"symexec/internal/solver"
	"symexec/internal/symval"
)

func check(conjuncts ...*symval.Value) solver.Result {
	return solver.NewLinear().Check(conjuncts)
}

func TestLinearEmptyConjunctionIsSat(t *testing.T) {
	assert.Equal(t, solver.Sat, check())
}

func TestLinearConstantTautologyAndContradiction(t *testing.T) {
	assert.Equal(t, solver.Sat, check(symval.Bool(true)))
	assert.Equal(t, solver.Unsat, check(symval.Bool(false)))
	assert.Equal(t, solver.Unsat, check(symval.Not(symval.Bool(true))))
}

func TestLinearSingleVariableBound(t *testing.T) {
	x := symval.IntVar("x")
	// x > 0 is satisfiable.
	assert.Equal(t, solver.Sat, check(symval.Compare(ir.CmpGt, x, symval.Int(0))))
	// x > 0 and x < 1 has no integer solution.
	assert.Equal(t, solver.Unsat, check(
		symval.Compare(ir.CmpGt, x, symval.Int(0)),
		symval.Compare(ir.CmpLt, x, symval.Int(1)),
	))
	// x > 0 and x < 2 is satisfiable (x == 1).
	assert.Equal(t, solver.Sat, check(
		symval.Compare(ir.CmpGt, x, symval.Int(0)),
		symval.Compare(ir.CmpLt, x, symval.Int(2)),
	))
}

func TestLinearNegationFlipsDirection(t *testing.T) {
	x := symval.IntVar("x")
	cond := symval.Compare(ir.CmpGt, x, symval.Int(0))
	// not(x > 0) == x <= 0, combined with x > 0 must be unsat.
	assert.Equal(t, solver.Unsat, check(cond, symval.Not(cond)))
	assert.Equal(t, solver.Sat, check(symval.Not(cond), symval.Compare(ir.CmpLe, x, symval.Int(0))))
}

func TestLinearEqualityChainUnionFind(t *testing.T) {
	x, y, z := symval.IntVar("x"), symval.IntVar("y"), symval.IntVar("z")
	// x == y, y == z, x > 0, z < 1: collapses to one representative
	// bounded to (0, 1) with no integer solution.
	assert.Equal(t, solver.Unsat, check(
		symval.Compare(ir.CmpEq, x, y),
		symval.Compare(ir.CmpEq, y, z),
		symval.Compare(ir.CmpGt, x, symval.Int(0)),
		symval.Compare(ir.CmpLt, z, symval.Int(1)),
	))
}

func TestLinearEqualityChainContradiction(t *testing.T) {
	x, y := symval.IntVar("x"), symval.IntVar("y")
	assert.Equal(t, solver.Unsat, check(
		symval.Compare(ir.CmpEq, x, y),
		symval.Compare(ir.CmpEq, x, symval.BinOp(ir.OpAdd, y, symval.Int(1))),
	))
}

func TestLinearNotEqualForbidsPoint(t *testing.T) {
	x := symval.IntVar("x")
	assert.Equal(t, solver.Unsat, check(
		symval.Compare(ir.CmpGe, x, symval.Int(0)),
		symval.Compare(ir.CmpLe, x, symval.Int(0)),
		symval.Compare(ir.CmpNe, x, symval.Int(0)),
	))
	assert.Equal(t, solver.Sat, check(
		symval.Compare(ir.CmpGe, x, symval.Int(0)),
		symval.Compare(ir.CmpLe, x, symval.Int(1)),
		symval.Compare(ir.CmpNe, x, symval.Int(0)),
	))
}

func TestLinearNegativeCoefficientFlipsBoundDirection(t *testing.T) {
	x := symval.IntVar("x")
	neg := symval.BinOp(ir.OpSub, symval.Int(0), x) // -x
	// -x > 0  =>  x < 0, combined with x >= 0 is unsat.
	assert.Equal(t, solver.Unsat, check(
		symval.Compare(ir.CmpGt, neg, symval.Int(0)),
		symval.Compare(ir.CmpGe, x, symval.Int(0)),
	))
}

func TestLinearNonlinearTermIsUnknown(t *testing.T) {
	x, y := symval.IntVar("x"), symval.IntVar("y")
	product := symval.BinOp(ir.OpMul, x, y)
	assert.Equal(t, solver.Unknown, check(symval.Compare(ir.CmpGt, product, symval.Int(0))))
}

func TestLinearFloatingConstraintResolvesWhenFixed(t *testing.T) {
	x, y := symval.IntVar("x"), symval.IntVar("y")
	sum := symval.BinOp(ir.OpAdd, x, y)
	assert.Equal(t, solver.Unsat, check(
		symval.Compare(ir.CmpEq, x, symval.Int(1)),
		symval.Compare(ir.CmpEq, y, symval.Int(1)),
		symval.Compare(ir.CmpEq, sum, symval.Int(3)),
	))
	assert.Equal(t, solver.Sat, check(
		symval.Compare(ir.CmpEq, x, symval.Int(1)),
		symval.Compare(ir.CmpEq, y, symval.Int(2)),
		symval.Compare(ir.CmpEq, sum, symval.Int(3)),
	))
}

func TestLinearUnboundedFloatingConstraintIsNotBlocked(t *testing.T) {
	x, y := symval.IntVar("x"), symval.IntVar("y")
	sum := symval.BinOp(ir.OpAdd, x, y)
	// Neither x nor y is pinned to a point, so the sum constraint is
	// left unresolved rather than reported unsat.
	assert.Equal(t, solver.Sat, check(symval.Compare(ir.CmpEq, sum, symval.Int(3))))
}

func TestLinearBoolVarConsistency(t *testing.T) {
	b := symval.BoolVar("b")
	assert.Equal(t, solver.Unsat, check(b, symval.Not(b)))
	assert.Equal(t, solver.Sat, check(b, b))
}

func TestLinearDivisionOfTwoConstants(t *testing.T) {
	half := symval.BinOp(ir.OpDiv, symval.Int(6), symval.Int(2))
	assert.Equal(t, solver.Sat, check(symval.Compare(ir.CmpEq, half, symval.Int(3))))
	assert.Equal(t, solver.Unsat, check(symval.Compare(ir.CmpEq, half, symval.Int(4))))
}

func TestLinearDivisionByVariableIsUnknown(t *testing.T) {
	x := symval.IntVar("x")
	ratio := symval.BinOp(ir.OpDiv, symval.Int(6), x)
	assert.Equal(t, solver.Unknown, check(symval.Compare(ir.CmpEq, ratio, symval.Int(3))))
}
