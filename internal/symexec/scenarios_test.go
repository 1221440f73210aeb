package symexec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"symexec/internal/ir"
	"symexec/internal/logx"
	"symexec/internal/solver"
	"symexec/internal/symexec"
)

// chain links instrs[i].Next() = instrs[i+1] and returns instrs for
// convenience, mirroring how the parser would wire a parsed block.
func chain(instrs ...ir.Instruction) []ir.Instruction {
	for i := 0; i+1 < len(instrs); i++ {
		instrs[i].SetNext(instrs[i+1])
	}
	return instrs
}

func runScenario(t *testing.T, prog *ir.Program) symexec.Summary {
	t.Helper()
	d := symexec.NewDriver(solver.NewLinear(), logx.NewTest())
	return d.Run(prog)
}

// Scenario 1: straight line. x := 1; assert x == 1; halt.
func TestScenarioStraightLine(t *testing.T) {
	x := ir.NewVariable("x", ir.IntType)
	store := ir.NewStore(0, x, ir.IntOperand(1))
	load := ir.NewLoad(1, x)
	cmp := ir.NewCmp(2, ir.CmpEq, ir.InstrOperand(load), ir.IntOperand(1))
	assertInstr := ir.NewAssert(3, ir.InstrOperand(cmp))
	halt := ir.NewHalt(4)
	instrs := chain(store, load, cmp, assertInstr, halt)
	entry := &ir.BasicBlock{Label: "entry", Instructions: instrs}
	prog := ir.NewProgram(entry, []*ir.Variable{x}, map[string]*ir.BasicBlock{"entry": entry})

	sum := runScenario(t, prog)
	assert.Equal(t, 1, sum.Executed)
	assert.Equal(t, 0, sum.Errors)
}

// Scenario 2: unreachable else. if true then halt else halt.
func TestScenarioUnreachableElse(t *testing.T) {
	thenHalt := ir.NewHalt(0)
	elseHalt := ir.NewHalt(1)
	thenBlock := &ir.BasicBlock{Label: "then", Instructions: []ir.Instruction{thenHalt}}
	elseBlock := &ir.BasicBlock{Label: "else", Instructions: []ir.Instruction{elseHalt}}
	jump := ir.NewJump(2, ir.BoolOperand(true), thenBlock, elseBlock)
	entry := &ir.BasicBlock{Label: "entry", Instructions: []ir.Instruction{jump}}
	prog := ir.NewProgram(entry, nil, map[string]*ir.BasicBlock{
		"entry": entry, "then": thenBlock, "else": elseBlock,
	})

	sum := runScenario(t, prog)
	assert.Equal(t, 1, sum.Executed)
	assert.Equal(t, 0, sum.Errors)
	assert.Equal(t, 0, sum.Forks)
}

// Scenario 3: symbolic branch. load x; if x > 0 then halt else halt.
func TestScenarioSymbolicBranch(t *testing.T) {
	x := ir.NewVariable("x", ir.IntType)
	load := ir.NewLoad(0, x)
	cmp := ir.NewCmp(1, ir.CmpGt, ir.InstrOperand(load), ir.IntOperand(0))
	thenHalt := ir.NewHalt(2)
	elseHalt := ir.NewHalt(3)
	thenBlock := &ir.BasicBlock{Label: "then", Instructions: []ir.Instruction{thenHalt}}
	elseBlock := &ir.BasicBlock{Label: "else", Instructions: []ir.Instruction{elseHalt}}
	jump := ir.NewJump(4, ir.InstrOperand(cmp), thenBlock, elseBlock)
	chain(load, cmp, jump)
	entry := &ir.BasicBlock{Label: "entry", Instructions: []ir.Instruction{load, cmp, jump}}
	prog := ir.NewProgram(entry, []*ir.Variable{x}, map[string]*ir.BasicBlock{
		"entry": entry, "then": thenBlock, "else": elseBlock,
	})

	sum := runScenario(t, prog)
	assert.Equal(t, 2, sum.Executed)
	assert.Equal(t, 0, sum.Errors)
	assert.Equal(t, 1, sum.Forks)
}

// Scenario 4: failing assertion. load x; assert x > 0; halt.
func TestScenarioFailingAssertion(t *testing.T) {
	x := ir.NewVariable("x", ir.IntType)
	load := ir.NewLoad(0, x)
	cmp := ir.NewCmp(1, ir.CmpGt, ir.InstrOperand(load), ir.IntOperand(0))
	assertInstr := ir.NewAssert(2, ir.InstrOperand(cmp))
	halt := ir.NewHalt(3)
	instrs := chain(load, cmp, assertInstr, halt)
	entry := &ir.BasicBlock{Label: "entry", Instructions: instrs}
	prog := ir.NewProgram(entry, []*ir.Variable{x}, map[string]*ir.BasicBlock{"entry": entry})

	sum := runScenario(t, prog)
	assert.Equal(t, 2, sum.Executed)
	assert.Equal(t, 1, sum.Errors)
}

// Scenario 5: chained asserts. load x; assert x > 0; assert x < 10; halt.
func TestScenarioChainedAsserts(t *testing.T) {
	x := ir.NewVariable("x", ir.IntType)
	load := ir.NewLoad(0, x)
	cmp1 := ir.NewCmp(1, ir.CmpGt, ir.InstrOperand(load), ir.IntOperand(0))
	assert1 := ir.NewAssert(2, ir.InstrOperand(cmp1))
	cmp2 := ir.NewCmp(3, ir.CmpLt, ir.InstrOperand(load), ir.IntOperand(10))
	assert2 := ir.NewAssert(4, ir.InstrOperand(cmp2))
	halt := ir.NewHalt(5)
	instrs := chain(load, cmp1, assert1, cmp2, assert2, halt)
	entry := &ir.BasicBlock{Label: "entry", Instructions: instrs}
	prog := ir.NewProgram(entry, []*ir.Variable{x}, map[string]*ir.BasicBlock{"entry": entry})

	sum := runScenario(t, prog)
	assert.Equal(t, 3, sum.Executed)
	assert.Equal(t, 2, sum.Errors)
}

// Scenario 6: diamond. load x; if x>0 then y:=1 else y:=2; assert y>=1; halt.
func TestScenarioDiamond(t *testing.T) {
	x := ir.NewVariable("x", ir.IntType)
	y := ir.NewVariable("y", ir.IntType)

	load := ir.NewLoad(0, x)
	cmp := ir.NewCmp(1, ir.CmpGt, ir.InstrOperand(load), ir.IntOperand(0))

	storeThen := ir.NewStore(2, y, ir.IntOperand(1))
	loadThen := ir.NewLoad(3, y)
	cmpThen := ir.NewCmp(4, ir.CmpGe, ir.InstrOperand(loadThen), ir.IntOperand(1))
	assertThen := ir.NewAssert(5, ir.InstrOperand(cmpThen))
	haltThen := ir.NewHalt(6)
	thenInstrs := chain(storeThen, loadThen, cmpThen, assertThen, haltThen)
	thenBlock := &ir.BasicBlock{Label: "then", Instructions: thenInstrs}

	storeElse := ir.NewStore(7, y, ir.IntOperand(2))
	loadElse := ir.NewLoad(8, y)
	cmpElse := ir.NewCmp(9, ir.CmpGe, ir.InstrOperand(loadElse), ir.IntOperand(1))
	assertElse := ir.NewAssert(10, ir.InstrOperand(cmpElse))
	haltElse := ir.NewHalt(11)
	elseInstrs := chain(storeElse, loadElse, cmpElse, assertElse, haltElse)
	elseBlock := &ir.BasicBlock{Label: "else", Instructions: elseInstrs}

	jump := ir.NewJump(12, ir.InstrOperand(cmp), thenBlock, elseBlock)
	chain(load, cmp, jump)
	entry := &ir.BasicBlock{Label: "entry", Instructions: []ir.Instruction{load, cmp, jump}}
	prog := ir.NewProgram(entry, []*ir.Variable{x, y}, map[string]*ir.BasicBlock{
		"entry": entry, "then": thenBlock, "else": elseBlock,
	})

	sum := runScenario(t, prog)
	assert.Equal(t, 2, sum.Executed)
	assert.Equal(t, 0, sum.Errors)
}
