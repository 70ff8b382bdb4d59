package check

import (
	"errors"
	"fmt"
)

// Classes of diagnostics reported by Check.
var (
	ErrUndefined = errors.New("undefined instruction")
	ErrRecursive = errors.New("recursive instruction")
	ErrUnused    = errors.New("unused instruction")
)

// Error describes a problem found by Check.
type Error struct {
	Instr string // enclosing instruction, "" for the main body
	Msg   string
	Soft  bool  // warning rather than error
	Err   error // diagnostic class, one of the Err* variables
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Where(), e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Where names the part of the program the diagnostic is about.
func (e *Error) Where() string {
	if e.Instr == "" {
		return "main body"
	}
	return "instruction " + e.Instr
}

// errorf reports a hard error.
func (c *checker) errorf(instr string, class error, format string, args ...interface{}) {
	c.report(&Error{Instr: instr, Msg: fmt.Sprintf(format, args...), Err: class})
}

// warnf reports a warning.
func (c *checker) warnf(instr string, class error, format string, args ...interface{}) {
	c.report(&Error{Instr: instr, Msg: fmt.Sprintf(format, args...), Soft: true, Err: class})
}

func (c *checker) report(err *Error) {
	if !err.Soft && c.first == nil {
		c.first = err
	}
	c.info.Diagnostics = append(c.info.Diagnostics, err)
	if c.conf.Error != nil {
		c.conf.Error(err)
	}
}
