package check

import (
	"strings"

	"github.com/you-not-fish/bl/internal/syntax"
)

// checker holds the state of a single Check call.
type checker struct {
	conf *Config
	prog *syntax.Program
	info *Info

	// callees maps each declared instruction to the user-defined
	// instructions its body calls, in call order, without duplicates.
	// The main body is stored under "".
	callees map[string][]string

	first *Error
}

// color marks instructions during the recursion search.
type color uint8

const (
	white color = iota // not visited
	grey               // on the current call path
	black              // finished
)

func (c *checker) checkProgram() {
	ctx := c.prog.Context()
	names := ctx.Names()

	// Phase 1: resolve the calls in every body.
	for _, name := range names {
		c.resolve(name, ctx.Lookup(name))
	}
	c.resolve("", c.prog.Body())

	// Phase 2: count primitive calls.
	for _, name := range names {
		c.info.Primitives[name] = syntax.CountPrimitiveCalls(ctx.Lookup(name))
	}
	c.info.MainPrimitives = syntax.CountPrimitiveCalls(c.prog.Body())

	// Phase 3: instructions may not reach themselves.
	colors := make(map[string]color, len(names))
	for _, name := range names {
		if colors[name] == white {
			c.findCycles(name, colors, nil)
		}
	}

	// Phase 4: everything declared should be reachable from the main body.
	c.reach()
	if c.conf.IgnoreUnused {
		return
	}
	reachable := make(map[string]bool, len(c.info.Reachable))
	for _, name := range c.info.Reachable {
		reachable[name] = true
	}
	for _, name := range names {
		if !reachable[name] {
			c.warnf(name, ErrUnused, "instruction %s is declared but not reachable from the main body", name)
		}
	}
}

// resolve records the calls in body, which belongs to instr, and reports
// calls of undeclared instructions.
func (c *checker) resolve(instr string, body *syntax.Statement) {
	seen := make(map[string]bool)
	syntax.Inspect(body, func(n syntax.Node) bool {
		s := n.(*syntax.Statement)
		if s.Kind() != syntax.Call {
			return true
		}
		name := s.CallName()
		c.info.Calls[name]++

		switch {
		case syntax.IsPrimitive(name):
		case c.prog.Context().Has(name):
			if !seen[name] {
				seen[name] = true
				c.callees[instr] = append(c.callees[instr], name)
			}
		default:
			c.errorf(instr, ErrUndefined, "undefined instruction %s", name)
		}
		return false
	})
}

// findCycles walks the call graph depth-first from name and reports every
// call that closes a cycle. path holds the grey instructions leading to name.
func (c *checker) findCycles(name string, colors map[string]color, path []string) {
	colors[name] = grey
	path = append(path, name)

	for _, callee := range c.callees[name] {
		switch colors[callee] {
		case white:
			c.findCycles(callee, colors, path)
		case grey:
			cycle := append(cyclePath(path, callee), callee)
			if len(cycle) == 2 {
				c.errorf(name, ErrRecursive, "instruction %s calls itself", name)
			} else {
				c.errorf(callee, ErrRecursive, "instruction %s calls itself through %s",
					callee, strings.Join(cycle, " -> "))
			}
		}
	}

	colors[name] = black
}

// cyclePath returns the suffix of path that starts at name.
func cyclePath(path []string, name string) []string {
	for i, p := range path {
		if p == name {
			return append([]string(nil), path[i:]...)
		}
	}
	return nil
}

// reach fills in info.Reachable breadth-first from the main body.
func (c *checker) reach() {
	visited := make(map[string]bool)
	queue := append([]string(nil), c.callees[""]...)
	for _, name := range queue {
		visited[name] = true
	}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		c.info.Reachable = append(c.info.Reachable, name)
		for _, callee := range c.callees[name] {
			if !visited[callee] {
				visited[callee] = true
				queue = append(queue, callee)
			}
		}
	}
}
