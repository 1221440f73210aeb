// Package interpreter is the generic half of instruction dispatch:
// arithmetic, comparison, and memory access lower to symbolic terms the
// same way no matter what kind of executor is driving them. Only jump
// and assert are specialized, via the BranchHandler seam, because their
// semantics depend on a solver the base interpreter doesn't own.
package interpreter

import (
	"fmt"

	"symexec/internal/ir"
	"symexec/internal/symval"
)

// ExecState is the narrow contract a per-path execution state must
// satisfy for Base to drive it. The symbolic executor's State is the
// only implementation; a concrete (non-symbolic) one is out of scope.
type ExecState interface {
	Current() ir.Instruction
	Advance(ir.Instruction)
	Eval(ir.Operand) (*symval.Value, bool)
	Set(ir.Instruction, *symval.Value)
	Read(*ir.Variable) (*symval.Value, bool)
	Write(*ir.Variable, *symval.Value)
	Fail(reason string)
}

// BranchHandler specializes the two instructions whose semantics need
// a solver: jump (forks or prunes) and assert (reports a witness).
type BranchHandler interface {
	Jump(ExecState, *ir.JumpInstr)
	Assert(ExecState, *ir.AssertInstr)
}

// Base dispatches one instruction at a time, delegating jump and
// assert to a BranchHandler.
type Base struct {
	Branch BranchHandler
}

// NewBase returns a Base that delegates jump/assert to h.
func NewBase(h BranchHandler) *Base {
	return &Base{Branch: h}
}

// Step executes the instruction currently pointed to by s, mutating s
// in place. It panics on an instruction kind it doesn't recognize —
// that condition is fatal to the whole exploration (spec §7.2), not a
// per-path error, and the caller is expected to let it propagate as a
// process abort.
func (b *Base) Step(s ExecState) {
	instr := s.Current()
	switch instr.Kind() {
	case ir.KindBinOp:
		b.stepBinOp(s, instr.(*ir.BinOpInstr))
	case ir.KindCmp:
		b.stepCmp(s, instr.(*ir.CmpInstr))
	case ir.KindLoad:
		b.stepLoad(s, instr.(*ir.LoadInstr))
	case ir.KindStore:
		b.stepStore(s, instr.(*ir.StoreInstr))
	case ir.KindJump:
		b.Branch.Jump(s, instr.(*ir.JumpInstr))
	case ir.KindAssert:
		b.Branch.Assert(s, instr.(*ir.AssertInstr))
	case ir.KindHalt:
		s.Advance(nil)
	default:
		panic(fmt.Sprintf("interpreter: unknown instruction kind %v", instr.Kind()))
	}
}

func (b *Base) stepBinOp(s ExecState, instr *ir.BinOpInstr) {
	left, ok := s.Eval(instr.Left)
	if !ok {
		s.Fail("using unknown value")
		return
	}
	right, ok := s.Eval(instr.Right)
	if !ok {
		s.Fail("using unknown value")
		return
	}
	s.Set(instr, symval.BinOp(instr.Op, left, right))
	s.Advance(instr.Next())
}

func (b *Base) stepCmp(s ExecState, instr *ir.CmpInstr) {
	left, ok := s.Eval(instr.Left)
	if !ok {
		s.Fail("using unknown value")
		return
	}
	right, ok := s.Eval(instr.Right)
	if !ok {
		s.Fail("using unknown value")
		return
	}
	s.Set(instr, symval.Compare(instr.Op, left, right))
	s.Advance(instr.Next())
}

func (b *Base) stepLoad(s ExecState, instr *ir.LoadInstr) {
	if v, ok := s.Read(instr.Addr); ok {
		s.Set(instr, v)
		s.Advance(instr.Next())
		return
	}
	// Uninitialized cell: mint a fresh free variable named after the
	// cell and cache it as this load's result, but never write it back
	// into the variable store — the load models "this path saw some
	// unconstrained value", not a write (spec §4.3).
	s.Set(instr, symval.IntVar(instr.Addr.Name()))
	s.Advance(instr.Next())
}

func (b *Base) stepStore(s ExecState, instr *ir.StoreInstr) {
	val, ok := s.Eval(instr.Value)
	if !ok {
		s.Fail("using unknown value")
		return
	}
	s.Write(instr.Addr, val)
	s.Advance(instr.Next())
}
