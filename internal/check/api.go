// Package check implements semantic checks over parsed BL programs.
//
// The parser accepts any syntactically valid program; this package finds
// the mistakes that only show up once the whole program is known: calls of
// instructions that are never declared, instructions that call themselves
// and instructions that are declared but unreachable from the main body.
package check

import (
	"github.com/you-not-fish/bl/internal/syntax"
)

// Config specifies the configuration for checking.
type Config struct {
	// Error is called for each diagnostic, errors and warnings alike.
	// If nil, diagnostics are only returned through Info.
	Error func(err *Error)

	// IgnoreUnused suppresses warnings about unreachable instructions.
	IgnoreUnused bool
}

// Info holds the results of checking.
type Info struct {
	// Calls maps each called name, primitive or user-defined, to the number
	// of CALL statements naming it across the whole program.
	Calls map[string]int

	// Primitives maps each declared instruction to the number of primitive
	// calls in its body.
	Primitives map[string]int

	// MainPrimitives is the number of primitive calls in the main body.
	MainPrimitives int

	// Reachable lists the instructions reachable from the main body in
	// breadth-first call order.
	Reachable []string

	// Diagnostics lists every error and warning in the order reported.
	Diagnostics []*Error
}

// Errors returns the hard errors in info.Diagnostics.
func (info *Info) Errors() []*Error {
	var errs []*Error
	for _, d := range info.Diagnostics {
		if !d.Soft {
			errs = append(errs, d)
		}
	}
	return errs
}

// Warnings returns the soft errors in info.Diagnostics.
func (info *Info) Warnings() []*Error {
	var warns []*Error
	for _, d := range info.Diagnostics {
		if d.Soft {
			warns = append(warns, d)
		}
	}
	return warns
}

// Check checks prog and returns what it learned. The error is the first
// hard error found, if any; warnings never cause Check to fail.
//
// prog is not modified.
func Check(prog *syntax.Program, conf *Config) (*Info, error) {
	if conf == nil {
		conf = &Config{}
	}

	c := &checker{
		conf: conf,
		prog: prog,
		info: &Info{
			Calls:      make(map[string]int),
			Primitives: make(map[string]int),
		},
		callees: make(map[string][]string),
	}

	c.checkProgram()

	if c.first != nil {
		return c.info, c.first
	}
	return c.info, nil
}
