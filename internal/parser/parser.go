package parser

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"symexec/internal/ir"
	"symexec/internal/token"
)

// ParseError is a non-fatal syntax error collected during parsing; a
// single malformed line doesn't abort the whole parse.
type ParseError struct {
	Message string
	Line    int
	Col     int
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Message)
}

// Parser builds an ir.Program directly from a token stream by
// recursive descent. There is no separate AST: every production
// constructs the IR node it denotes immediately.
type Parser struct {
	tokens []token.Token
	pos    int
	errors []ParseError

	vars  map[string]*ir.Variable
	order []*ir.Variable
	temps map[string]ir.Instruction

	blocks     map[string]*ir.BasicBlock
	blockOrder []string
	current    *ir.BasicBlock

	nextID int
}

// NewParser wraps an already-scanned token stream. Block labels are
// pre-registered from a read-only scan of the whole stream so a jump
// reached before its target block is declared in the text still
// resolves to the same *ir.BasicBlock the later header
// fills in.
func NewParser(toks []token.Token) *Parser {
	p := &Parser{
		tokens: toks,
		vars:   make(map[string]*ir.Variable),
		temps:  make(map[string]ir.Instruction),
		blocks: make(map[string]*ir.BasicBlock),
	}
	for _, label := range prescanBlockLabels(toks) {
		if _, exists := p.blocks[label]; exists {
			continue
		}
		p.blocks[label] = &ir.BasicBlock{Label: label}
		p.blockOrder = append(p.blockOrder, label)
	}
	return p
}

// prescanBlockLabels finds every "block IDENT :" header in the token
// stream without otherwise parsing it. "block" never appears anywhere
// but a header in valid input, so this is safe even though it ignores
// everything else the grammar knows about.
func prescanBlockLabels(toks []token.Token) []string {
	var labels []string
	for i := 0; i+2 < len(toks); i++ {
		if toks[i].Type == token.BLOCK && toks[i+1].Type == token.IDENT && toks[i+2].Type == token.COLON {
			labels = append(labels, toks[i+1].Literal)
		}
	}
	return labels
}

// Parse consumes the whole token stream and returns the assembled
// program plus every error found along the way. A non-nil program is
// still returned alongside non-empty errors when recovery was
// possible, but callers should treat any errors as fatal to using it.
func (p *Parser) Parse() (*ir.Program, []ParseError) {
	for p.peek().Type == token.VAR {
		p.parseVarDecl()
	}

	for p.peek().Type == token.BLOCK {
		p.advance() // "block"
		label := p.expect(token.IDENT)
		p.expect(token.COLON)

		block, ok := p.blocks[label.Literal]
		if !ok {
			block = &ir.BasicBlock{Label: label.Literal}
			p.blocks[label.Literal] = block
			p.blockOrder = append(p.blockOrder, label.Literal)
		}
		p.current = block

		for p.peek().Type != token.BLOCK && p.peek().Type != token.EOF {
			p.parseInstruction()
		}
	}

	if tok := p.peek(); tok.Type != token.EOF {
		p.errorf(tok, "expected a declaration or block, got %q", tok.Literal)
	}
	if len(p.blockOrder) == 0 {
		p.errorf(token.Token{Line: 1, Col: 1}, "program declares no blocks")
		return nil, p.errors
	}

	entry := p.blocks[p.blockOrder[0]]
	return ir.NewProgram(entry, p.order, p.blocks), p.errors
}

func (p *Parser) parseVarDecl() {
	p.advance() // "var"
	name := p.expect(token.IDENT)

	typ := ir.IntType
	switch p.peek().Type {
	case token.INT_TY:
		p.advance()
	case token.BOOL_TY:
		p.advance()
		typ = ir.BoolType
	}

	if _, exists := p.vars[name.Literal]; exists {
		p.errorf(name, "variable %q redeclared", name.Literal)
		return
	}
	v := ir.NewVariable(name.Literal, typ)
	p.vars[name.Literal] = v
	p.order = append(p.order, v)
}

func (p *Parser) parseInstruction() {
	var resultName string
	hasResult := false
	if p.peek().Type == token.IDENT && p.peekAt(1).Type == token.ASSIGN {
		resultName = p.advance().Literal
		p.advance() // "="
		hasResult = true
	}

	mnemonic := p.advance()
	id := p.freshID()

	var produced ir.Instruction
	switch mnemonic.Type {
	case token.LOAD:
		name := p.expect(token.IDENT)
		v, ok := p.lookupVar(name)
		if !ok {
			return
		}
		produced = ir.NewLoad(id, v)
		p.append(produced)
	case token.STORE:
		name := p.expect(token.IDENT)
		p.expect(token.COMMA)
		val := p.parseOperand()
		v, ok := p.lookupVar(name)
		if !ok {
			return
		}
		p.append(ir.NewStore(id, v, val))
	case token.JUMP:
		cond := p.parseOperand()
		p.expect(token.COMMA)
		thenLabel := p.expect(token.IDENT)
		p.expect(token.COMMA)
		elseLabel := p.expect(token.IDENT)
		thenBlock, ok1 := p.lookupBlock(thenLabel)
		elseBlock, ok2 := p.lookupBlock(elseLabel)
		if !ok1 || !ok2 {
			return
		}
		p.append(ir.NewJump(id, cond, thenBlock, elseBlock))
	case token.ASSERT:
		cond := p.parseOperand()
		p.append(ir.NewAssert(id, cond))
	case token.HALT:
		p.append(ir.NewHalt(id))
	case token.CMP:
		op := p.parseCmpOp()
		left := p.parseOperand()
		p.expect(token.COMMA)
		right := p.parseOperand()
		produced = ir.NewCmp(id, op, left, right)
		p.append(produced)
	case token.ADD, token.SUB, token.MUL, token.DIV:
		op := arithOpFor(mnemonic.Type)
		left := p.parseOperand()
		p.expect(token.COMMA)
		right := p.parseOperand()
		produced = ir.NewBinOp(id, op, left, right)
		p.append(produced)
	default:
		p.errorf(mnemonic, "expected an instruction, got %q", mnemonic.Literal)
		return
	}

	if hasResult {
		if produced == nil {
			p.errorf(mnemonic, "%q does not produce a value to bind %q to", mnemonic.Literal, resultName)
			return
		}
		p.temps[resultName] = produced
	}
}

// parseOperand reads one operand: an integer or boolean literal, a
// previously bound temp (an Instruction operand), or a declared
// variable — the last of which synthesizes an implicit load into the
// current block, since only an explicit "load" instruction ever reads
// a Variable directly (spec §3's operand model never lets a bare
// Variable stand as an arithmetic/comparison/jump/assert operand).
func (p *Parser) parseOperand() ir.Operand {
	tok := p.peek()
	switch tok.Type {
	case token.INT:
		p.advance()
		n, _ := strconv.ParseInt(tok.Literal, 10, 64)
		return ir.IntOperand(n)
	case token.TRUE:
		p.advance()
		return ir.BoolOperand(true)
	case token.FALSE:
		p.advance()
		return ir.BoolOperand(false)
	case token.IDENT:
		p.advance()
		if instr, ok := p.temps[tok.Literal]; ok {
			return ir.InstrOperand(instr)
		}
		if v, ok := p.vars[tok.Literal]; ok {
			load := ir.NewLoad(p.freshID(), v)
			p.append(load)
			return ir.InstrOperand(load)
		}
		p.errorf(tok, "undeclared identifier %q", tok.Literal)
		return ir.Operand{}
	default:
		p.errorf(tok, "expected an operand, got %q", tok.Literal)
		return ir.Operand{}
	}
}

func (p *Parser) parseCmpOp() ir.Cmp {
	tok := p.advance()
	switch tok.Type {
	case token.EQ:
		return ir.CmpEq
	case token.NE:
		return ir.CmpNe
	case token.LT:
		return ir.CmpLt
	case token.LE:
		return ir.CmpLe
	case token.GT:
		return ir.CmpGt
	case token.GE:
		return ir.CmpGe
	default:
		p.errorf(tok, "expected a comparison operator, got %q", tok.Literal)
		return ir.CmpEq
	}
}

func arithOpFor(t token.TokenType) ir.ArithOp {
	switch t {
	case token.ADD:
		return ir.OpAdd
	case token.SUB:
		return ir.OpSub
	case token.MUL:
		return ir.OpMul
	default:
		return ir.OpDiv
	}
}

func (p *Parser) lookupVar(tok token.Token) (*ir.Variable, bool) {
	v, ok := p.vars[tok.Literal]
	if !ok {
		p.errorf(tok, "undeclared variable %q", tok.Literal)
	}
	return v, ok
}

func (p *Parser) lookupBlock(tok token.Token) (*ir.BasicBlock, bool) {
	b, ok := p.blocks[tok.Literal]
	if !ok {
		p.errorf(tok, "undeclared block %q", tok.Literal)
	}
	return b, ok
}

// append installs instr at the end of the current block, chaining it
// to the block's prior last instruction.
func (p *Parser) append(instr ir.Instruction) {
	if n := len(p.current.Instructions); n > 0 {
		p.current.Instructions[n-1].SetNext(instr)
	}
	p.current.Instructions = append(p.current.Instructions, instr)
}

func (p *Parser) freshID() int {
	id := p.nextID
	p.nextID++
	return id
}

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[idx]
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(tt token.TokenType) token.Token {
	tok := p.peek()
	if tok.Type != tt {
		p.errorf(tok, "expected %s, got %q", tt, tok.Literal)
		return tok
	}
	return p.advance()
}

func (p *Parser) errorf(tok token.Token, format string, args ...any) {
	p.errors = append(p.errors, ParseError{Message: fmt.Sprintf(format, args...), Line: tok.Line, Col: tok.Col})
}

// ParseSource parses program text already in memory.
func ParseSource(source string) (*ir.Program, []ParseError) {
	scanner := NewScanner(source)
	toks := scanner.ScanTokens()

	var errs []ParseError
	for _, se := range scanner.Errors() {
		errs = append(errs, ParseError{Message: se.Message, Line: se.Line, Col: se.Col})
	}

	prog, perrs := NewParser(toks).Parse()
	errs = append(errs, perrs...)
	if len(errs) > 0 {
		return nil, errs
	}
	return prog, nil
}

// ParseFile reads path, scans and parses it, and folds any errors into
// one wrapped error. The CLI reads the file itself and calls
// ParseSource instead, so it can format each ParseError separately.
func ParseFile(path string) (*ir.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("parser: reading %s: %w", path, err)
	}

	prog, errs := ParseSource(string(data))
	if len(errs) > 0 {
		lines := make([]string, len(errs))
		for i, e := range errs {
			lines[i] = "  " + e.Error()
		}
		return nil, fmt.Errorf("%s: %d parse error(s):\n%s", path, len(errs), strings.Join(lines, "\n"))
	}
	return prog, nil
}
