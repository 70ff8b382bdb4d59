package syntax

// Program is a parsed BL program: its name, the table of user-defined
// instructions and the main body.
//
// A Program is filled in by a single successful parse and is then treated
// as read-only input by later phases.
type Program struct {
	name    string
	context *Context
	body    *Statement
}

// NewProgram returns a program named "Unnamed" with no instructions and an
// empty body.
func NewProgram() *Program {
	return &Program{
		name:    "Unnamed",
		context: NewContext(),
		body:    NewStatement(),
	}
}

// Name returns the program name.
func (p *Program) Name() string { return p.name }

// SetName sets the program name.
func (p *Program) SetName(name string) { p.name = name }

// Context returns the instruction table.
func (p *Program) Context() *Context { return p.context }

// Body returns the main body, a BLOCK.
func (p *Program) Body() *Statement { return p.body }

// NewContext returns an empty instruction table suitable for SwapContext.
func (p *Program) NewContext() *Context { return NewContext() }

// NewBody returns an empty statement suitable for SwapBody.
func (p *Program) NewBody() *Statement { return NewStatement() }

// SwapContext installs c as the program's instruction table and returns
// the previous one.
func (p *Program) SwapContext(c *Context) *Context {
	old := p.context
	p.context = c
	return old
}

// SwapBody exchanges the program's body with b. b must be a BLOCK.
func (p *Program) SwapBody(b *Statement) {
	b.mustBeBlock("SwapBody", "body")
	tmp := p.body.take()
	p.body.TransferFrom(b)
	b.TransferFrom(tmp)
}

// Equal reports whether p and q have the same name, the same instruction
// table and the same body.
func (p *Program) Equal(q *Program) bool {
	if p == nil || q == nil {
		return p == q
	}
	return p.name == q.name && p.context.Equal(q.context) && p.body.Equal(q.body)
}
