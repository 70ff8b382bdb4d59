// Command blc parses and checks BL programs.
//
// Usage:
//
//	blc tokens FILE          list the token stream
//	blc parse FILE           print the syntax tree (text, json or yaml)
//	blc check FILE           report undefined, recursive and unused instructions
//	blc count FILE           count primitive calls per instruction
//	blc serve                run the HTTP parse service
//	blc version              print version information
//
// FILE may be "-" to read standard input.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Version information
const Version = "0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// exitError carries an exit status for failures whose diagnostics have
// already been printed.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// run executes blc with args and returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	errorColor.Fprintf(stderr, "error: ")
	fmt.Fprintln(stderr, err)
	return 1
}

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	okColor      = color.New(color.FgGreen)
)
