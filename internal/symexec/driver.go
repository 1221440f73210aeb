package symexec

import (
	"github.com/rs/zerolog"

	"symexec/internal/interpreter"
	"symexec/internal/ir"
	"symexec/internal/solver"
)

// Summary is the exploration's final tally: the two counters the CLI's
// plain-text output is required to print, plus the solver/fork traffic
// a --json run or a --verbose log stream also exposes.
type Summary struct {
	Executed      int
	Errors        int
	Forks         int
	SolverQueries int
}

// Driver is the exploration loop (C5): a single-threaded LIFO worklist
// of pending states, repeatedly popped and advanced until each
// terminates, errors, or forks.
type Driver struct {
	worklist []*State
	base     *interpreter.Base
	engine   *Engine
	log      zerolog.Logger

	executed int
	errors   int
	maxPaths int
}

// NewDriver wires a Base dispatcher to an Engine backed by checker, and
// the Engine's enqueue callback back to this driver's own worklist.
func NewDriver(checker solver.Checker, log zerolog.Logger) *Driver {
	d := &Driver{log: log}
	d.engine = NewEngine(checker, d.push, log)
	d.base = interpreter.NewBase(d.engine)
	return d
}

// SetMaxPaths caps the number of paths Run will execute before it
// panics with a fatal "path budget exhausted" condition, the same way
// the engine panics on an unsat-both/unknown decision. Zero (the
// default) leaves exploration unbounded.
func (d *Driver) SetMaxPaths(n int) { d.maxPaths = n }

func (d *Driver) push(s *State) { d.worklist = append(d.worklist, s) }

func (d *Driver) pop() *State {
	n := len(d.worklist)
	s := d.worklist[n-1]
	d.worklist = d.worklist[:n-1]
	return s
}

func (d *Driver) checkBudget() {
	if d.maxPaths > 0 && d.executed >= d.maxPaths {
		panic("path budget exhausted")
	}
}

// Run explores every feasible path of prog and returns the final tally.
// A state holding an error or already at end-of-program (pc == nil,
// e.g. an assert's enqueued continuation when the assert ended its
// block) is counted directly without being dispatched again; Base.Step
// is only ever called on a state that is neither.
func (d *Driver) Run(prog *ir.Program) Summary {
	d.push(NewState(prog))

	for len(d.worklist) > 0 {
		s := d.pop()

		for {
			if s.pc == nil {
				d.executed++
				d.checkBudget()
				break
			}
			if s.err != "" {
				d.executed++
				d.errors++
				d.log.Debug().Str("state", s.id.String()).Str("error", s.err).Msg("path errored")
				d.checkBudget()
				break
			}

			d.base.Step(s)

			if s.fork {
				s.fork = false
				d.push(s)
				break
			}
		}
	}

	return Summary{
		Executed:      d.executed,
		Errors:        d.errors,
		Forks:         d.engine.Forks(),
		SolverQueries: d.engine.SolverQueries(),
	}
}
