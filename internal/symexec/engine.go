package symexec

import (
	"fmt"

	"github.com/rs/zerolog"

	"symexec/internal/interpreter"
	"symexec/internal/ir"
	"symexec/internal/solver"
	"symexec/internal/symval"
)

// Engine is the branch/assert feasibility engine (C4): it consults a
// solver.Checker on both polarities of a condition and turns the
// result into a fork, an in-place advance, or a fatal abort. It is the
// only interpreter.BranchHandler this repo builds — a concrete,
// non-symbolic executor would need its own, but nothing here needs one.
type Engine struct {
	checker solver.Checker
	enqueue func(*State)
	log     zerolog.Logger

	forks   int
	queries int
}

// NewEngine wires a checker and the driver's enqueue function together.
// enqueue is how a fork's second branch (or an assert's surviving
// continuation, when both polarities are live) reaches the worklist
// without Engine owning the worklist itself.
func NewEngine(checker solver.Checker, enqueue func(*State), log zerolog.Logger) *Engine {
	return &Engine{checker: checker, enqueue: enqueue, log: log}
}

// Forks is the number of branch instructions that produced two live
// successors.
func (e *Engine) Forks() int { return e.forks }

// SolverQueries is the total number of Check calls issued so far.
func (e *Engine) SolverQueries() int { return e.queries }

func (e *Engine) check(conjuncts []*symval.Value) solver.Result {
	e.queries++
	r := e.checker.Check(conjuncts)
	e.log.Debug().
		Int("conjuncts", len(conjuncts)).
		Str("result", r.String()).
		Msg("solver query")
	return r
}

// Jump implements interpreter.BranchHandler. State is the only type
// that satisfies interpreter.ExecState, so the type assertion here is
// safe: a generic dispatcher seam exists because the teacher always
// builds dispatch this way, not because a second implementation exists.
func (e *Engine) Jump(raw interpreter.ExecState, instr *ir.JumpInstr) {
	s := raw.(*State)

	cv, ok := s.Eval(instr.Cond)
	if !ok {
		s.Fail("using unknown value")
		return
	}

	pcThen := withCond(s.pathCond, cv)
	pcElse := withCond(s.pathCond, symval.Not(cv))
	rThen := e.check(pcThen)
	rElse := e.check(pcElse)

	switch {
	case rThen == solver.Unsat && rElse == solver.Unsat:
		panic("symexec: both branches of a jump are unsat; path condition invariant violated")
	case rThen == solver.Unknown || rElse == solver.Unknown:
		panic("symexec: solver returned unknown for a jump condition")
	case rThen == solver.Sat && rElse == solver.Sat:
		other := s.Copy()
		other.pathCond = pcElse
		other.pc = instr.Else.First()
		e.enqueue(other)

		s.pathCond = pcThen
		s.pc = instr.Then.First()
		s.fork = true
		e.forks++
		e.log.Debug().
			Str("state", s.id.String()).
			Int("forks", e.forks).
			Int("solver_queries", e.queries).
			Msg("branch forked")
	case rThen == solver.Sat:
		s.pathCond = pcThen
		s.pc = instr.Then.First()
	default: // rElse == solver.Sat
		s.pathCond = pcElse
		s.pc = instr.Else.First()
	}
}

// Assert implements interpreter.BranchHandler.
func (e *Engine) Assert(raw interpreter.ExecState, instr *ir.AssertInstr) {
	s := raw.(*State)

	cv, ok := s.Eval(instr.Cond)
	if !ok {
		s.Fail("using unknown value")
		return
	}

	pcHold := withCond(s.pathCond, cv)
	pcViol := withCond(s.pathCond, symval.Not(cv))
	rHold := e.check(pcHold)
	rViol := e.check(pcViol)

	switch {
	case rHold == solver.Unsat && rViol == solver.Unsat:
		panic("symexec: both polarities of an assert are unsat; path condition invariant violated")
	case rHold == solver.Unknown || rViol == solver.Unknown:
		panic("symexec: solver returned unknown for an assert condition")
	case rHold == solver.Sat && rViol == solver.Sat:
		continuation := s.Copy()
		continuation.pathCond = pcHold
		continuation.pc = instr.Next()
		e.enqueue(continuation)

		s.pathCond = pcViol
		s.err = fmt.Sprintf("assertion failed: %s", symval.Not(cv))
		e.log.Debug().
			Str("state", s.id.String()).
			Int("solver_queries", e.queries).
			Msg("assert witnessed both a continuation and a violation")
	case rHold == solver.Sat:
		s.pathCond = pcHold
		s.pc = instr.Next()
	default: // rViol == solver.Sat
		s.pathCond = pcViol
		s.err = fmt.Sprintf("assertion failed: %s", symval.Not(cv))
	}
}
