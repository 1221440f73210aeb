// Package symexec is the core: per-path state, the branch/assert
// feasibility engine, and the LIFO exploration driver. This is the
// part that must preserve soundness of the accumulated path condition
// — every other package exists to give this one something to run on.
package symexec

import (
	"github.com/google/uuid"

	"symexec/internal/ir"
	"symexec/internal/symval"
)

// State is one path's execution record: a program counter, the
// current symbolic contents of every touched variable, an SSA-style
// cache of instruction results, and the path condition accumulated to
// reach this point.
type State struct {
	id uuid.UUID

	pc        ir.Instruction
	variables map[*ir.Variable]*symval.Value
	values    map[int]*symval.Value
	pathCond  []*symval.Value
	err       string
	fork      bool
}

// NewState builds the initial state: pc at the entry block's first
// instruction, empty stores, path_cond = [True].
func NewState(prog *ir.Program) *State {
	return &State{
		id:        uuid.New(),
		pc:        prog.EntryBlock().First(),
		variables: make(map[*ir.Variable]*symval.Value),
		values:    make(map[int]*symval.Value),
		pathCond:  []*symval.Value{symval.Bool(true)},
	}
}

// ID is a log-correlation handle only; no branch/assert decision ever
// reads it, so two runs of a deterministic solver over the same
// program produce identical (executed, errors) regardless of the UUIDs
// minted along the way.
func (s *State) ID() uuid.UUID { return s.id }

// PathCond exposes the accumulated conjunction for logging and tests.
// The engine mutates s.pathCond directly (same package); callers
// outside symexec only ever observe it, never grow it in place — doing
// so would violate state independence between forked siblings.
func (s *State) PathCond() []*symval.Value { return s.pathCond }

// Err reports the per-path failure reason, empty for a healthy state.
func (s *State) Err() string { return s.err }

// Forked reports whether the branch engine just split this state; the
// driver consumes and clears the flag.
func (s *State) Forked() bool { return s.fork }

// Current, Advance, Eval, Set, Read, Write, Fail implement
// interpreter.ExecState.

func (s *State) Current() ir.Instruction { return s.pc }

func (s *State) Advance(next ir.Instruction) { s.pc = next }

func (s *State) Set(instr ir.Instruction, v *symval.Value) { s.values[instr.ID()] = v }

func (s *State) Read(v *ir.Variable) (*symval.Value, bool) {
	val, ok := s.variables[v]
	return val, ok
}

func (s *State) Write(v *ir.Variable, val *symval.Value) { s.variables[v] = val }

func (s *State) Fail(reason string) { s.err = reason }

// Eval converts a literal operand directly (spec's boolean-before-
// integer priority, via symval.FromOperand) or looks an instruction
// operand up in the SSA value cache. A bare Variable operand never
// reaches Eval in a well-formed program: LOAD and STORE read/write the
// variable store directly instead.
func (s *State) Eval(op ir.Operand) (*symval.Value, bool) {
	if v, ok := symval.FromOperand(op); ok {
		return v, true
	}
	if op.Kind() == ir.OperandInstr {
		v, ok := s.values[op.Instr().ID()]
		return v, ok
	}
	return nil, false
}

// Copy deep-clones variables, values, and path_cond so that mutating
// the copy can never alias the original (spec invariant 3). Instr and
// Variable keys are shared pointers into the immutable program, which
// is fine: only the maps and slice themselves are cloned.
func (s *State) Copy() *State {
	vars := make(map[*ir.Variable]*symval.Value, len(s.variables))
	for k, v := range s.variables {
		vars[k] = v
	}
	vals := make(map[int]*symval.Value, len(s.values))
	for k, v := range s.values {
		vals[k] = v
	}
	cond := make([]*symval.Value, len(s.pathCond))
	copy(cond, s.pathCond)

	return &State{
		id:        uuid.New(),
		pc:        s.pc,
		variables: vars,
		values:    vals,
		pathCond:  cond,
		err:       s.err,
	}
}

// withCond returns a new slice equal to cond with v appended, never
// mutating cond's backing array — two siblings built from the same
// prefix (pc_then/pc_else, pc_hold/pc_viol) must not alias.
func withCond(cond []*symval.Value, v *symval.Value) []*symval.Value {
	out := make([]*symval.Value, len(cond)+1)
	copy(out, cond)
	out[len(cond)] = v
	return out
}
