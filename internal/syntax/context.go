package syntax

import (
	"fmt"
	"sort"
	"strings"
)

// Context is the instruction table of a program: it maps each
// user-defined instruction name to its body.
type Context struct {
	elems map[string]*Statement
}

// NewContext returns an empty instruction table.
func NewContext() *Context {
	return &Context{elems: make(map[string]*Statement)}
}

// Lookup returns the body of the named instruction, or nil if it is not
// defined.
func (c *Context) Lookup(name string) *Statement {
	return c.elems[name]
}

// Has reports whether an instruction with the given name is defined.
func (c *Context) Has(name string) bool {
	_, ok := c.elems[name]
	return ok
}

// Insert adds name with the given body. If name is already defined, the
// table is unchanged and the existing body is returned. Otherwise Insert
// takes ownership of body and returns nil.
func (c *Context) Insert(name string, body *Statement) *Statement {
	if existing, ok := c.elems[name]; ok {
		return existing
	}
	c.elems[name] = body
	return nil
}

// Remove deletes name from the table and returns its body, or nil if it
// was not defined.
func (c *Context) Remove(name string) *Statement {
	body := c.elems[name]
	delete(c.elems, name)
	return body
}

// Names returns the defined instruction names in sorted order.
func (c *Context) Names() []string {
	names := make([]string, 0, len(c.elems))
	for name := range c.elems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of defined instructions.
func (c *Context) Len() int {
	return len(c.elems)
}

// Equal reports whether c and d define the same names with structurally
// equal bodies.
func (c *Context) Equal(d *Context) bool {
	if c.Len() != d.Len() {
		return false
	}
	for name, body := range c.elems {
		other, ok := d.elems[name]
		if !ok || !body.Equal(other) {
			return false
		}
	}
	return true
}

// String returns a one-line summary for debugging.
func (c *Context) String() string {
	return fmt.Sprintf("context{%s}", strings.Join(c.Names(), ", "))
}
