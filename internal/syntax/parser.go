package syntax

import (
	"fmt"
	"io"
)

// DefaultMaxDepth is the default limit on IF/WHILE nesting.
const DefaultMaxDepth = 1024

// ErrorHandler is called with the diagnostic that stops a parse.
type ErrorHandler func(pos Pos, msg string)

// Parser is a recursive-descent parser for BL statements and programs.
//
// Parsing is all-or-nothing: the first error stops the parse, is reported
// to the error handler and is returned to the caller. The statement or
// program being parsed is left untouched. A Parser that has failed keeps
// returning its first error.
type Parser struct {
	toks *TokenStream
	errh ErrorHandler

	first error

	depth    int // current IF/WHILE nesting
	maxDepth int // 0 means unlimited
}

// NewParser creates a Parser that consumes toks. errh may be nil.
func NewParser(toks *TokenStream, errh ErrorHandler) *Parser {
	return &Parser{
		toks:     toks,
		errh:     errh,
		maxDepth: DefaultMaxDepth,
	}
}

// SetMaxDepth sets the maximum IF/WHILE nesting depth. Zero or a negative
// value removes the limit.
func (p *Parser) SetMaxDepth(n int) {
	if n < 0 {
		n = 0
	}
	p.maxDepth = n
}

// FirstError returns the error that stopped the parser, or nil.
func (p *Parser) FirstError() error {
	return p.first
}

// ----------------------------------------------------------------------------
// Token navigation

// errorf records and reports a fatal syntax error.
func (p *Parser) errorf(pos Pos, class error, format string, args ...interface{}) error {
	err := &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...), Err: class}
	if p.first == nil {
		p.first = err
		if p.errh != nil {
			p.errh(pos, err.Msg)
		}
	}
	return err
}

// want consumes the front token, which must be lit.
func (p *Parser) want(lit string) error {
	pos := p.toks.FrontPos()
	if tok := p.toks.Dequeue(); tok != lit {
		return p.errorf(pos, ErrInvalidToken, "invalid token %s: expected %s", describe(tok), lit)
	}
	return nil
}

// identifier consumes an identifier token.
func (p *Parser) identifier() (string, Pos, error) {
	pos := p.toks.FrontPos()
	tok := p.toks.Dequeue()
	if !IsIdentifier(tok) {
		return "", pos, p.errorf(pos, ErrInvalidIdentifier, "invalid identifier %s", describe(tok))
	}
	return tok, pos, nil
}

// instructionName consumes the name of an instruction declaration.
// Keywords are accepted here so that they can be rejected later with a
// specific diagnostic.
func (p *Parser) instructionName() (string, Pos, error) {
	pos := p.toks.FrontPos()
	tok := p.toks.Dequeue()
	if !isWord(tok) || IsCondition(tok) {
		return "", pos, p.errorf(pos, ErrInvalidIdentifier, "invalid identifier %s", describe(tok))
	}
	return tok, pos, nil
}

// condition consumes a condition token.
func (p *Parser) condition() (Condition, error) {
	pos := p.toks.FrontPos()
	tok := p.toks.Dequeue()
	if !IsCondition(tok) {
		return 0, p.errorf(pos, ErrInvalidCondition, "invalid condition %s", describe(tok))
	}
	return conditionOf(tok), nil
}

// wantEnd consumes END and the keyword that follows it. Any keyword
// closes the statement; END WHILE may close an IF.
func (p *Parser) wantEnd() error {
	if err := p.want(_End.String()); err != nil {
		return err
	}
	pos := p.toks.FrontPos()
	if tok := p.toks.Dequeue(); !IsKeyword(tok) {
		return p.errorf(pos, ErrInvalidToken, "invalid token %s: expected keyword after END", describe(tok))
	}
	return nil
}

func (p *Parser) enter(pos Pos) error {
	p.depth++
	if p.maxDepth > 0 && p.depth > p.maxDepth {
		return p.errorf(pos, ErrNestingTooDeep, "statements nested more than %d deep", p.maxDepth)
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// describe quotes a token for diagnostics.
func describe(tok string) string {
	switch tok {
	case "":
		return "<missing>"
	case EndOfInput:
		return "<end of input>"
	}
	return fmt.Sprintf("%q", tok)
}

// isBlockEnd reports whether tok terminates a block.
func isBlockEnd(tok string) bool {
	return tok == _End.String() || tok == _Else.String() || tok == EndOfInput
}

// ----------------------------------------------------------------------------
// Statements

// ParseStatement parses a single statement from the front of the token
// stream and replaces s with it.
func (p *Parser) ParseStatement(s *Statement) error {
	if p.first != nil {
		return p.first
	}
	st := NewStatement()
	if err := p.stmt(st); err != nil {
		return err
	}
	s.TransferFrom(st)
	return nil
}

// ParseBlock parses statements up to the next END, ELSE or end of input
// and replaces s with the resulting BLOCK. The terminator is not consumed.
func (p *Parser) ParseBlock(s *Statement) error {
	if p.first != nil {
		return p.first
	}
	return p.block(s)
}

// block parses: { stmt }
func (p *Parser) block(s *Statement) error {
	b := NewStatement()
	for !isBlockEnd(p.toks.Front()) {
		st := NewStatement()
		if err := p.stmt(st); err != nil {
			return err
		}
		b.AddToBlock(b.LengthOfBlock(), st)
	}
	s.TransferFrom(b)
	return nil
}

// stmt parses a statement into the empty placeholder s.
func (p *Parser) stmt(s *Statement) error {
	tok := p.toks.Front()
	switch {
	case tok == _While.String():
		return p.whileStmt(s)
	case tok == _If.String():
		return p.ifStmt(s)
	case IsIdentifier(tok):
		return p.callStmt(s)
	}
	return p.errorf(p.toks.FrontPos(), ErrInvalidToken, "invalid token %s: expected statement", describe(tok))
}

// whileStmt parses: WHILE condition DO block END WHILE
func (p *Parser) whileStmt(s *Statement) error {
	pos := p.toks.FrontPos()
	if err := p.enter(pos); err != nil {
		return err
	}
	defer p.leave()

	if err := p.want(_While.String()); err != nil {
		return err
	}
	c, err := p.condition()
	if err != nil {
		return err
	}
	if err := p.want(_Do.String()); err != nil {
		return err
	}

	body := NewStatement()
	if err := p.block(body); err != nil {
		return err
	}
	if err := p.wantEnd(); err != nil {
		return err
	}

	s.AssembleWhile(c, body)
	return nil
}

// ifStmt parses: IF condition THEN block [ELSE block] END IF
func (p *Parser) ifStmt(s *Statement) error {
	pos := p.toks.FrontPos()
	if err := p.enter(pos); err != nil {
		return err
	}
	defer p.leave()

	if err := p.want(_If.String()); err != nil {
		return err
	}
	c, err := p.condition()
	if err != nil {
		return err
	}
	if err := p.want(_Then.String()); err != nil {
		return err
	}

	then := NewStatement()
	if err := p.block(then); err != nil {
		return err
	}

	if p.toks.Front() == _Else.String() {
		p.toks.Dequeue()
		els := NewStatement()
		if err := p.block(els); err != nil {
			return err
		}
		if err := p.wantEnd(); err != nil {
			return err
		}
		s.AssembleIfElse(c, then, els)
		return nil
	}

	if err := p.wantEnd(); err != nil {
		return err
	}
	s.AssembleIf(c, then)
	return nil
}

// callStmt parses: identifier
func (p *Parser) callStmt(s *Statement) error {
	name, _, err := p.identifier()
	if err != nil {
		return err
	}
	s.AssembleCall(name)
	return nil
}

// ----------------------------------------------------------------------------
// Programs

// ParseProgram parses a complete program, including the terminating
// EndOfInput token, and replaces the contents of prog with it.
func (p *Parser) ParseProgram(prog *Program) error {
	if p.first != nil {
		return p.first
	}

	if err := p.want(_Program.String()); err != nil {
		return err
	}
	name, _, err := p.identifier()
	if err != nil {
		return err
	}
	if err := p.want(_Is.String()); err != nil {
		return err
	}

	ctx := prog.NewContext()
	for p.toks.Front() != _Begin.String() {
		body := prog.NewBody()
		instr, pos, err := p.instruction(body)
		if err != nil {
			return err
		}
		if IsKeyword(instr) {
			return p.errorf(pos, ErrKeywordName, "instruction name %q is a keyword of the language", instr)
		}
		if IsPrimitive(instr) {
			return p.errorf(pos, ErrPrimitiveName, "instruction name %q is a primitive instruction", instr)
		}
		if ctx.Has(instr) {
			return p.errorf(pos, ErrDuplicateInstruction, "duplicate instruction name %q", instr)
		}
		ctx.Insert(instr, body)
	}

	if err := p.want(_Begin.String()); err != nil {
		return err
	}
	body := prog.NewBody()
	if err := p.block(body); err != nil {
		return err
	}
	if err := p.want(_End.String()); err != nil {
		return err
	}
	end, endPos, err := p.identifier()
	if err != nil {
		return err
	}
	if end != name {
		return p.errorf(endPos, ErrNameMismatch,
			"multiple identifiers used as program name: PROGRAM %s ... END %s", name, end)
	}

	pos := p.toks.FrontPos()
	if tok := p.toks.Dequeue(); tok != EndOfInput || p.toks.Len() != 0 {
		return p.errorf(pos, ErrBadTermination, "program does not terminate properly: found %s after END %s", describe(tok), name)
	}

	prog.SetName(name)
	prog.SwapContext(ctx)
	prog.SwapBody(body)
	return nil
}

// instruction parses: INSTRUCTION id IS block END id
// It returns the instruction name and the position of its closing name.
func (p *Parser) instruction(body *Statement) (string, Pos, error) {
	if err := p.want(_Instruction.String()); err != nil {
		return "", Pos{}, err
	}
	start, _, err := p.instructionName()
	if err != nil {
		return "", Pos{}, err
	}
	if err := p.want(_Is.String()); err != nil {
		return "", Pos{}, err
	}

	if err := p.block(body); err != nil {
		return "", Pos{}, err
	}

	if err := p.want(_End.String()); err != nil {
		return "", Pos{}, err
	}
	end, endPos, err := p.instructionName()
	if err != nil {
		return "", Pos{}, err
	}
	if start != end {
		return "", endPos, p.errorf(endPos, ErrNameMismatch,
			"multiple identifiers used as instruction name: INSTRUCTION %s ... END %s", start, end)
	}
	return end, endPos, nil
}

// ----------------------------------------------------------------------------
// Source entry points

// ParseProgram tokenizes src and parses it as a complete program.
// errh, if not nil, receives lexical diagnostics and the fatal syntax error.
func ParseProgram(filename string, src io.Reader, errh ErrorHandler) (*Program, error) {
	return ParseProgramDepth(filename, src, DefaultMaxDepth, errh)
}

// ParseProgramDepth is like ParseProgram but limits IF/WHILE nesting to
// maxDepth. Zero means unlimited.
func ParseProgramDepth(filename string, src io.Reader, maxDepth int, errh ErrorHandler) (*Program, error) {
	toks := Tokenize(filename, src, scanHandler(filename, errh))
	p := NewParser(toks, errh)
	p.SetMaxDepth(maxDepth)
	prog := NewProgram()
	if err := p.ParseProgram(prog); err != nil {
		return nil, err
	}
	return prog, nil
}

// ParseBlockSource tokenizes src and parses it as a sequence of
// statements that must make up the whole input.
func ParseBlockSource(filename string, src io.Reader, errh ErrorHandler) (*Statement, error) {
	toks := Tokenize(filename, src, scanHandler(filename, errh))
	p := NewParser(toks, errh)
	s := NewStatement()
	if err := p.ParseBlock(s); err != nil {
		return nil, err
	}
	pos := toks.FrontPos()
	if tok := toks.Dequeue(); tok != EndOfInput {
		return nil, p.errorf(pos, ErrBadTermination, "statements do not terminate properly: found %s", describe(tok))
	}
	return s, nil
}

func scanHandler(filename string, errh ErrorHandler) func(line, col uint32, msg string) {
	return func(line, col uint32, msg string) {
		if errh != nil {
			errh(NewPos(filename, line, col), msg)
		}
	}
}
