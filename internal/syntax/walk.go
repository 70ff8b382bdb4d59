package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses a BL tree in depth-first order: a program's instruction
// bodies in name order, then its main body; a statement's children in
// source order.
func Walk(node Node, v Visitor) {
	switch n := node.(type) {
	case nil:
		return
	case *Program:
		if n == nil || !v(n) {
			return
		}
		for _, name := range n.context.Names() {
			Walk(n.context.Lookup(name), v)
		}
		Walk(n.body, v)
	case *Statement:
		if n == nil || !v(n) {
			return
		}
		// Leaf CALLs have no children.
		for _, k := range n.kids {
			Walk(k, v)
		}
	}
}

// Inspect traverses a BL tree and calls f for each node.
// Convenience wrapper around Walk.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}

// CountPrimitiveCalls returns the number of CALLs of primitive
// instructions in s. It opens each node with the Disassemble operations
// and reassembles it, so s is unchanged on return.
func CountPrimitiveCalls(s *Statement) int {
	count := 0
	switch s.Kind() {
	case Block:
		for i := 0; i < s.LengthOfBlock(); i++ {
			child := s.RemoveFromBlock(i)
			count += CountPrimitiveCalls(child)
			s.AddToBlock(i, child)
		}
	case If:
		body := NewStatement()
		c := s.DisassembleIf(body)
		count = CountPrimitiveCalls(body)
		s.AssembleIf(c, body)
	case IfElse:
		then, els := NewStatement(), NewStatement()
		c := s.DisassembleIfElse(then, els)
		count = CountPrimitiveCalls(then) + CountPrimitiveCalls(els)
		s.AssembleIfElse(c, then, els)
	case While:
		body := NewStatement()
		c := s.DisassembleWhile(body)
		count = CountPrimitiveCalls(body)
		s.AssembleWhile(c, body)
	case Call:
		name := s.DisassembleCall()
		if IsPrimitive(name) {
			count++
		}
		s.AssembleCall(name)
	}
	return count
}
