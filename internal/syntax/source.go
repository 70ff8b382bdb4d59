package syntax

import (
	"bufio"
	"errors"
	"io"
	"unicode/utf8"
)

// source reads BL text one rune at a time. line and col always locate
// s.ch; columns count runes from 1.
type source struct {
	in       *bufio.Reader // nil once input is exhausted or failed
	filename string
	line     uint32
	col      uint32
	ch       rune // -1 at end of input
	errh     func(line, col uint32, msg string)
}

const byteOrderMark = 0xFEFF

// newSource positions a reader on the first rune of src, skipping a
// leading byte order mark. errh may be nil.
func newSource(filename string, src io.Reader, errh func(line, col uint32, msg string)) *source {
	s := &source{
		in:       bufio.NewReader(src),
		filename: filename,
		line:     1,
		ch:       -1,
		errh:     errh,
	}
	s.nextch()
	if s.ch == byteOrderMark {
		s.col = 0
		s.nextch()
	}
	return s
}

func (s *source) nextch() {
	if s.ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	if s.in == nil {
		s.ch = -1
		return
	}
	r, width, err := s.in.ReadRune()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			s.error("error reading source: " + err.Error())
		}
		s.in = nil
		s.ch = -1
		return
	}
	if r == utf8.RuneError && width == 1 {
		s.error("invalid UTF-8 encoding")
	}
	s.ch = r
}

func (s *source) pos() Pos {
	return NewPos(s.filename, s.line, s.col)
}

func (s *source) error(msg string) {
	if s.errh != nil {
		s.errh(s.line, s.col, msg)
	}
}

// ----------------------------------------------------------------------------
// BL character classes
//
// A word starts with an ASCII letter and continues with letters, digits
// and hyphens, so condition names like next-is-wall scan as one word.
// Underscores are not word characters.

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isWordChar(r rune) bool {
	return isLetter(r) || isDigit(r) || r == '-'
}

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
