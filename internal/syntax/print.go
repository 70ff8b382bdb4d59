package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented dump of the tree rooted at node to w.
// The dump shows the AST structure; it is not BL source.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

func (p *printer) print(node Node) {
	switch n := node.(type) {
	case *Program:
		if n == nil {
			return
		}
		p.printf("Program %s\n", n.name)
		p.indent++
		for _, name := range n.context.Names() {
			p.printf("Instruction %s\n", name)
			p.indent++
			p.print(n.context.Lookup(name))
			p.indent--
		}
		p.printf("Body\n")
		p.indent++
		p.print(n.body)
		p.indent--
		p.indent--

	case *Statement:
		if n == nil {
			return
		}
		switch n.kind {
		case Block:
			if len(n.kids) == 0 {
				p.printf("Block (empty)\n")
				return
			}
			p.printf("Block\n")
			p.indent++
			for _, s := range n.kids {
				p.print(s)
			}
			p.indent--

		case If, While:
			p.printf("%s %s\n", n.kind, n.cond)
			p.indent++
			p.print(n.kids[0])
			p.indent--

		case IfElse:
			p.printf("IF_ELSE %s\n", n.cond)
			p.indent++
			p.printf("Then:\n")
			p.indent++
			p.print(n.kids[0])
			p.indent--
			p.printf("Else:\n")
			p.indent++
			p.print(n.kids[1])
			p.indent--
			p.indent--

		case Call:
			p.printf("CALL %s\n", n.name)
		}
	}
}
