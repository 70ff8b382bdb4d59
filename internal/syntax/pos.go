package syntax

import "fmt"

// Pos represents a position in a BL source file.
// The zero value is an invalid position; tokens built by hand
// (for example in tests or from a pre-split token list) carry it.
type Pos struct {
	filename string
	line     uint32 // from 1
	col      uint32 // from 1, in runes
}

// NewPos returns the position of line and col in filename.
func NewPos(filename string, line, col uint32) Pos {
	return Pos{filename: filename, line: line, col: col}
}

// String formats p as "file:line:col", or "line:col" without a file name.
// An invalid position prints as its file name alone, or "-" when that is
// empty too.
func (p Pos) String() string {
	switch {
	case !p.IsValid() && p.filename == "":
		return "-"
	case !p.IsValid():
		return p.filename
	case p.filename == "":
		return fmt.Sprintf("%d:%d", p.line, p.col)
	}
	return fmt.Sprintf("%s:%d:%d", p.filename, p.line, p.col)
}

// IsValid reports whether p was recorded by the scanner. Hand-built
// token streams carry invalid positions.
func (p Pos) IsValid() bool {
	return p.line > 0
}

// Line returns the 1-based line number.
func (p Pos) Line() uint32 { return p.line }

// Col returns the 1-based column number.
func (p Pos) Col() uint32 { return p.col }

// Filename returns the source file name.
func (p Pos) Filename() string { return p.filename }
