package syntax

import "fmt"

// Kind identifies which variant of the Statement union a node holds.
type Kind uint8

const (
	Block  Kind = iota // sequence of zero or more statements
	If                 // IF condition THEN block END IF
	IfElse             // IF condition THEN block ELSE block END IF
	While              // WHILE condition DO block END WHILE
	Call               // call of a primitive or user-defined instruction
)

var kindNames = [...]string{
	Block:  "BLOCK",
	If:     "IF",
	IfElse: "IF_ELSE",
	While:  "WHILE",
	Call:   "CALL",
}

// String returns the kind name, e.g. "IF_ELSE".
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Statement is a node of the BL abstract syntax tree.
//
// A Statement owns its children exclusively. The Assemble operations move
// the contents of their arguments into the receiver and leave the arguments
// as empty placeholders; the Disassemble operations move the children back
// out and leave the receiver empty. No two live nodes ever share a subtree.
//
// Calling an operation that does not match the node's kind, or assembling
// into a node that is not an empty placeholder, is a programming error and
// panics.
type Statement struct {
	kind Kind
	cond Condition    // If, IfElse, While
	name string       // Call
	kids []*Statement // Block: statements; If/While: [body]; IfElse: [then, else]
}

// NewStatement returns a new empty BLOCK, the placeholder value used
// before a node's kind is fixed by assembly.
func NewStatement() *Statement {
	return &Statement{}
}

// Kind returns the node's kind.
func (s *Statement) Kind() Kind {
	return s.kind
}

// IsEmpty reports whether s is an empty BLOCK.
func (s *Statement) IsEmpty() bool {
	return s.kind == Block && len(s.kids) == 0
}

// Clear resets s to an empty BLOCK, discarding its contents.
func (s *Statement) Clear() {
	*s = Statement{}
}

// TransferFrom moves the contents of src into s and clears src.
func (s *Statement) TransferFrom(src *Statement) {
	if s == src {
		return
	}
	*s = *src
	*src = Statement{}
}

// take moves the contents of s into a fresh node and clears s.
func (s *Statement) take() *Statement {
	t := &Statement{}
	t.TransferFrom(s)
	return t
}

// ----------------------------------------------------------------------------
// Assembly

// AssembleCall turns the empty placeholder s into a CALL of name.
func (s *Statement) AssembleCall(name string) {
	s.mustBeEmpty("AssembleCall")
	if name == "" {
		panic("syntax.Statement.AssembleCall: empty instruction name")
	}
	s.kind = Call
	s.name = name
}

// AssembleIf turns the empty placeholder s into IF c THEN body.
// body must be a BLOCK; it is left empty.
func (s *Statement) AssembleIf(c Condition, body *Statement) {
	s.mustBeEmpty("AssembleIf")
	body.mustBeBlock("AssembleIf", "body")
	s.mustNotAlias("AssembleIf", body)
	s.kind = If
	s.cond = c
	s.kids = []*Statement{body.take()}
}

// AssembleIfElse turns the empty placeholder s into
// IF c THEN then ELSE els. Both branches must be BLOCKs; they are left empty.
func (s *Statement) AssembleIfElse(c Condition, then, els *Statement) {
	s.mustBeEmpty("AssembleIfElse")
	then.mustBeBlock("AssembleIfElse", "then branch")
	els.mustBeBlock("AssembleIfElse", "else branch")
	s.mustNotAlias("AssembleIfElse", then, els)
	if then == els {
		panic("syntax.Statement.AssembleIfElse: then and else branches are the same node")
	}
	s.kind = IfElse
	s.cond = c
	s.kids = []*Statement{then.take(), els.take()}
}

// AssembleWhile turns the empty placeholder s into WHILE c DO body.
// body must be a BLOCK; it is left empty.
func (s *Statement) AssembleWhile(c Condition, body *Statement) {
	s.mustBeEmpty("AssembleWhile")
	body.mustBeBlock("AssembleWhile", "body")
	s.mustNotAlias("AssembleWhile", body)
	s.kind = While
	s.cond = c
	s.kids = []*Statement{body.take()}
}

// ----------------------------------------------------------------------------
// Disassembly

// DisassembleIf moves the body of the IF statement s into the empty
// placeholder body, clears s and returns the condition.
func (s *Statement) DisassembleIf(body *Statement) Condition {
	s.mustBe("DisassembleIf", If)
	body.mustBeEmpty("DisassembleIf")
	c := s.cond
	body.TransferFrom(s.kids[0])
	s.Clear()
	return c
}

// DisassembleIfElse moves the branches of the IF_ELSE statement s into the
// empty placeholders then and els, clears s and returns the condition.
func (s *Statement) DisassembleIfElse(then, els *Statement) Condition {
	s.mustBe("DisassembleIfElse", IfElse)
	then.mustBeEmpty("DisassembleIfElse")
	els.mustBeEmpty("DisassembleIfElse")
	if then == els {
		panic("syntax.Statement.DisassembleIfElse: then and else placeholders are the same node")
	}
	c := s.cond
	then.TransferFrom(s.kids[0])
	els.TransferFrom(s.kids[1])
	s.Clear()
	return c
}

// DisassembleWhile moves the body of the WHILE statement s into the empty
// placeholder body, clears s and returns the condition.
func (s *Statement) DisassembleWhile(body *Statement) Condition {
	s.mustBe("DisassembleWhile", While)
	body.mustBeEmpty("DisassembleWhile")
	c := s.cond
	body.TransferFrom(s.kids[0])
	s.Clear()
	return c
}

// DisassembleCall clears the CALL statement s and returns the called
// instruction's name.
func (s *Statement) DisassembleCall() string {
	s.mustBe("DisassembleCall", Call)
	name := s.name
	s.Clear()
	return name
}

// ----------------------------------------------------------------------------
// Block editing

// LengthOfBlock returns the number of statements in the BLOCK s.
func (s *Statement) LengthOfBlock() int {
	s.mustBe("LengthOfBlock", Block)
	return len(s.kids)
}

// AddToBlock inserts child at index i of the BLOCK s, shifting later
// statements right. child must not be a BLOCK; it is left empty.
func (s *Statement) AddToBlock(i int, child *Statement) {
	s.mustBe("AddToBlock", Block)
	if i < 0 || i > len(s.kids) {
		panic(fmt.Sprintf("syntax.Statement.AddToBlock: index %d out of range [0, %d]", i, len(s.kids)))
	}
	if child.kind == Block {
		panic("syntax.Statement.AddToBlock: cannot add a BLOCK to a BLOCK")
	}
	s.mustNotAlias("AddToBlock", child)
	s.kids = append(s.kids, nil)
	copy(s.kids[i+1:], s.kids[i:])
	s.kids[i] = child.take()
}

// RemoveFromBlock removes and returns the statement at index i of the
// BLOCK s, shifting later statements left.
func (s *Statement) RemoveFromBlock(i int) *Statement {
	s.mustBe("RemoveFromBlock", Block)
	if i < 0 || i >= len(s.kids) {
		panic(fmt.Sprintf("syntax.Statement.RemoveFromBlock: index %d out of range [0, %d)", i, len(s.kids)))
	}
	child := s.kids[i]
	copy(s.kids[i:], s.kids[i+1:])
	s.kids[len(s.kids)-1] = nil
	s.kids = s.kids[:len(s.kids)-1]
	if len(s.kids) == 0 {
		s.kids = nil
	}
	return child
}

// ----------------------------------------------------------------------------
// Inspection

// CallName returns the instruction called by the CALL statement s.
func (s *Statement) CallName() string {
	s.mustBe("CallName", Call)
	return s.name
}

// Cond returns the condition tested by the IF, IF_ELSE or WHILE
// statement s.
func (s *Statement) Cond() Condition {
	if s.kind != If && s.kind != IfElse && s.kind != While {
		panic(fmt.Sprintf("syntax.Statement.Cond: statement is %s", s.kind))
	}
	return s.cond
}

// Equal reports whether s and t are structurally identical trees.
func (s *Statement) Equal(t *Statement) bool {
	if s == nil || t == nil {
		return s == t
	}
	if s.kind != t.kind || len(s.kids) != len(t.kids) {
		return false
	}
	switch s.kind {
	case Call:
		if s.name != t.name {
			return false
		}
	case If, IfElse, While:
		if s.cond != t.cond {
			return false
		}
	}
	for i := range s.kids {
		if !s.kids[i].Equal(t.kids[i]) {
			return false
		}
	}
	return true
}

// ----------------------------------------------------------------------------
// Contract checks

func (s *Statement) mustBe(op string, k Kind) {
	if s.kind != k {
		panic(fmt.Sprintf("syntax.Statement.%s: statement is %s, want %s", op, s.kind, k))
	}
}

func (s *Statement) mustBeEmpty(op string) {
	if !s.IsEmpty() {
		panic(fmt.Sprintf("syntax.Statement.%s: placeholder is a non-empty %s", op, s.kind))
	}
}

func (s *Statement) mustBeBlock(op, what string) {
	if s.kind != Block {
		panic(fmt.Sprintf("syntax.Statement.%s: %s is %s, want BLOCK", op, what, s.kind))
	}
}

func (s *Statement) mustNotAlias(op string, args ...*Statement) {
	for _, a := range args {
		if a == s {
			panic(fmt.Sprintf("syntax.Statement.%s: argument is the receiver", op))
		}
	}
}
