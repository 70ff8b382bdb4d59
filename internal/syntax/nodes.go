package syntax

// Node is implemented by the two kinds of BL tree values, *Program and
// *Statement, so that they can share the walker and printers.
type Node interface {
	aNode() // marker method to restrict implementations to this package
}

func (*Program) aNode()   {}
func (*Statement) aNode() {}

// Body returns the body of the IF or WHILE statement s, or the then branch
// of an IF_ELSE. The result is owned by s and must not be reassembled
// elsewhere; use the Disassemble operations to take it out.
func (s *Statement) Body() *Statement {
	if s.kind != If && s.kind != IfElse && s.kind != While {
		panic("syntax.Statement.Body: statement is " + s.kind.String())
	}
	return s.kids[0]
}

// Else returns the else branch of the IF_ELSE statement s. The result is
// owned by s.
func (s *Statement) Else() *Statement {
	s.mustBe("Else", IfElse)
	return s.kids[1]
}

// Stmts returns the statements of the BLOCK s. The slice and its elements
// are owned by s and must not be modified.
func (s *Statement) Stmts() []*Statement {
	s.mustBe("Stmts", Block)
	return s.kids
}
