package ir

// OperandKind tags what an Operand carries.
type OperandKind int

const (
	OperandNone OperandKind = iota
	OperandInt
	OperandBool
	OperandVar
	OperandInstr
)

// Operand is one of: an integer literal, a boolean literal, a Variable
// reference, or a reference to a prior Instruction standing for its
// produced value.
type Operand struct {
	kind     OperandKind
	intVal   int64
	boolVal  bool
	variable *Variable
	instr    Instruction
}

// IntOperand builds an integer-literal operand.
func IntOperand(v int64) Operand { return Operand{kind: OperandInt, intVal: v} }

// BoolOperand builds a boolean-literal operand.
func BoolOperand(v bool) Operand { return Operand{kind: OperandBool, boolVal: v} }

// VarOperand builds an operand referencing a memory cell.
func VarOperand(v *Variable) Operand { return Operand{kind: OperandVar, variable: v} }

// InstrOperand builds an operand referencing a prior instruction's
// result.
func InstrOperand(i Instruction) Operand { return Operand{kind: OperandInstr, instr: i} }

// Kind reports which alternative this operand holds.
func (o Operand) Kind() OperandKind { return o.kind }

// Int returns the literal integer value. Only valid when Kind() ==
// OperandInt.
func (o Operand) Int() int64 { return o.intVal }

// Bool returns the literal boolean value. Only valid when Kind() ==
// OperandBool.
func (o Operand) Bool() bool { return o.boolVal }

// Variable returns the referenced variable. Only valid when Kind() ==
// OperandVar.
func (o Operand) Variable() *Variable { return o.variable }

// Instr returns the referenced producing instruction. Only valid when
// Kind() == OperandInstr.
func (o Operand) Instr() Instruction { return o.instr }
