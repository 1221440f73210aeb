// Package symval implements the symbolic value algebra (spec §4.1):
// a small tagged-variant term language over unbounded integers and
// booleans, built from constants, free variables, binary arithmetic,
// comparison, and negation.
package symval

import (
	"fmt"

	"symexec/internal/ir"
)

// Kind tags which alternative a Value holds.
type Kind int

const (
	KindIntConst Kind = iota
	KindBoolConst
	KindIntVar
	KindBoolVar
	KindBinOp
	KindCmp
	KindNot
)

// Value is a symbolic term. Exactly one set of fields is meaningful,
// selected by Kind. Equivalent terms are not required to be identical
// (== comparison across two independently built terms is not
// meaningful); construct fresh terms freely.
type Value struct {
	Kind Kind

	Int  int64
	Bool bool
	Name string

	Op ir.ArithOp // KindBinOp

	Cmp ir.Cmp // KindCmp

	Left, Right *Value // KindBinOp, KindCmp
	Operand     *Value // KindNot
}

// Int builds an integer constant.
func Int(v int64) *Value { return &Value{Kind: KindIntConst, Int: v} }

// Bool builds a boolean constant.
func Bool(v bool) *Value { return &Value{Kind: KindBoolConst, Bool: v} }

// IntVar builds a free integer variable named name.
func IntVar(name string) *Value { return &Value{Kind: KindIntVar, Name: name} }

// BoolVar builds a free boolean variable named name.
func BoolVar(name string) *Value { return &Value{Kind: KindBoolVar, Name: name} }

// BinOp builds an arithmetic term.
func BinOp(op ir.ArithOp, left, right *Value) *Value {
	return &Value{Kind: KindBinOp, Op: op, Left: left, Right: right}
}

// Compare builds a comparison term.
func Compare(op ir.Cmp, left, right *Value) *Value {
	return &Value{Kind: KindCmp, Cmp: op, Left: left, Right: right}
}

// Not builds a negation term.
func Not(v *Value) *Value {
	// Fold double negation so path conditions don't grow unboundedly
	// from repeated branch-flipping; not required for soundness, just
	// tidier terms to hand the solver.
	if v.Kind == KindNot {
		return v.Operand
	}
	return &Value{Kind: KindNot, Operand: v}
}

// FromOperand converts a literal IR operand to its symbolic constant,
// applying the boolean-before-integer literal priority rule (spec
// §4.1): an operand whose declared kind is boolean converts to
// BoolConst even though both share the Go "is this a literal" shape.
// For an Instruction operand it is the caller's job to look the value
// up in the executor's value map; FromOperand only handles literals
// and returns (nil, false) otherwise.
func FromOperand(op ir.Operand) (*Value, bool) {
	switch op.Kind() {
	case ir.OperandBool:
		return Bool(op.Bool()), true
	case ir.OperandInt:
		return Int(op.Int()), true
	default:
		return nil, false
	}
}

// String renders v as an s-expression, used in the executor's
// "assertion failed" messages.
func (v *Value) String() string {
	if v == nil {
		return "<nil>"
	}
	switch v.Kind {
	case KindIntConst:
		return fmt.Sprintf("%d", v.Int)
	case KindBoolConst:
		return fmt.Sprintf("%t", v.Bool)
	case KindIntVar, KindBoolVar:
		return v.Name
	case KindBinOp:
		return fmt.Sprintf("(%s %s %s)", v.Op, v.Left, v.Right)
	case KindCmp:
		return fmt.Sprintf("(%s %s %s)", v.Cmp, v.Left, v.Right)
	case KindNot:
		return fmt.Sprintf("(not %s)", v.Operand)
	default:
		return "<invalid>"
	}
}
