package syntax

import (
	"io"
	"strings"
)

// Scanner splits BL text into word tokens.
//
// Whitespace separates tokens, and '#' starts a comment that runs to the
// end of the line; both are discarded. A word is a letter followed by
// letters, digits and hyphens. Any other run of non-blank characters
// becomes a single _Error token whose literal is handed to the parser
// unchanged, so it is rejected there with a positioned diagnostic.
type Scanner struct {
	source

	tok    Token
	lit    string
	tokPos Pos

	litBuf strings.Builder
}

// NewScanner creates a new Scanner for the given source.
// The errh function is called for each lexical error; if nil, errors are
// silently ignored.
func NewScanner(filename string, src io.Reader, errh func(line, col uint32, msg string)) *Scanner {
	return &Scanner{source: *newSource(filename, src, errh)}
}

// Next advances to the next token.
func (s *Scanner) Next() {
redo:
	for isWhitespace(s.ch) {
		s.nextch()
	}

	s.tokPos = s.pos()

	switch {
	case s.ch < 0:
		s.tok = _EOF
		s.lit = ""

	case s.ch == '#':
		s.skipComment()
		goto redo

	case isLetter(s.ch):
		s.scanWord()

	default:
		s.scanError()
	}
}

// Token returns the current token class.
func (s *Scanner) Token() Token {
	return s.tok
}

// Literal returns the current token's text.
func (s *Scanner) Literal() string {
	return s.lit
}

// Pos returns the current token's start position.
func (s *Scanner) Pos() Pos {
	return s.tokPos
}

// scanWord scans an identifier, condition or keyword.
func (s *Scanner) scanWord() {
	s.litBuf.Reset()
	for isWordChar(s.ch) {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
	}
	s.lit = s.litBuf.String()
	s.tok = LookupKeyword(s.lit)
}

// scanError collects a run of characters that cannot start a word.
func (s *Scanner) scanError() {
	s.litBuf.Reset()
	for s.ch >= 0 && !isWhitespace(s.ch) && !isLetter(s.ch) && s.ch != '#' {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
	}
	// A run that continues with word characters belongs to the same token,
	// e.g. "3move" or "-x".
	for isWordChar(s.ch) {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
	}
	s.lit = s.litBuf.String()
	s.tok = _Error
}

// skipComment skips from '#' to the end of the line.
func (s *Scanner) skipComment() {
	for s.ch >= 0 && s.ch != '\n' {
		s.nextch()
	}
}

// Tokenize scans all of src and returns the resulting token stream,
// terminated by EndOfInput.
func Tokenize(filename string, src io.Reader, errh func(line, col uint32, msg string)) *TokenStream {
	s := NewScanner(filename, src, errh)
	ts := NewTokenStream()
	for {
		s.Next()
		if s.tok == _EOF {
			ts.Enqueue(EndOfInput, s.tokPos)
			return ts
		}
		ts.Enqueue(s.lit, s.tokPos)
	}
}
