// Package syntax implements lexical and syntactic analysis for BL, the
// block-structured instruction language: a tokenizer, a token stream, the
// mutable Statement AST and the recursive-descent statement and program
// parsers.
package syntax

import "fmt"

// Token represents the lexical class of a BL word.
type Token uint

const (
	// Special tokens
	_EOF   Token = iota // end of input
	_Error              // run of characters that cannot form a word

	// Words that are not keywords (identifiers and conditions)
	_Name

	// Keywords
	_Begin
	_Do
	_Else
	_End
	_If
	_Instruction
	_Is
	_Program
	_Then
	_While

	tokenCount
)

var tokenNames = [...]string{
	_EOF:   "EOF",
	_Error: "ERROR",
	_Name:  "NAME",

	_Begin:       "BEGIN",
	_Do:          "DO",
	_Else:        "ELSE",
	_End:         "END",
	_If:          "IF",
	_Instruction: "INSTRUCTION",
	_Is:          "IS",
	_Program:     "PROGRAM",
	_Then:        "THEN",
	_While:       "WHILE",
}

// String returns the string representation of the token.
func (t Token) String() string {
	if t < tokenCount {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// IsKeyword reports whether t is a keyword token.
func (t Token) IsKeyword() bool {
	return t >= _Begin && t <= _While
}

// EndOfInput is the sentinel token that terminates every token stream.
// It contains spaces, so the tokenizer can never produce it from source text.
const EndOfInput = "### END OF INPUT ###"

// keywords maps keyword spellings to their token. BL keywords are
// upper-case and case-sensitive: "while" is an identifier.
var keywords = map[string]Token{
	"BEGIN":       _Begin,
	"DO":          _Do,
	"ELSE":        _Else,
	"END":         _End,
	"IF":          _If,
	"INSTRUCTION": _Instruction,
	"IS":          _Is,
	"PROGRAM":     _Program,
	"THEN":        _Then,
	"WHILE":       _While,
}

// LookupKeyword returns the keyword token for word, or _Name if word
// is not a keyword.
func LookupKeyword(word string) Token {
	if tok, ok := keywords[word]; ok {
		return tok
	}
	return _Name
}

// primitives are the instructions built into the BL virtual machine.
var primitives = map[string]bool{
	"move":      true,
	"turnleft":  true,
	"turnright": true,
	"infect":    true,
	"skip":      true,
}

// IsKeyword reports whether s is one of the BL keywords.
func IsKeyword(s string) bool {
	_, ok := keywords[s]
	return ok
}

// IsCondition reports whether s spells one of the BL conditions.
func IsCondition(s string) bool {
	_, ok := LookupCondition(s)
	return ok
}

// IsPrimitive reports whether s names a primitive instruction.
func IsPrimitive(s string) bool {
	return primitives[s]
}

// IsIdentifier reports whether s is a BL identifier: a letter followed
// by letters, digits and hyphens, that is neither a keyword nor a condition.
func IsIdentifier(s string) bool {
	if !isWord(s) {
		return false
	}
	return !IsKeyword(s) && !IsCondition(s)
}

// isWord reports whether s matches [a-zA-Z][a-zA-Z0-9-]*.
func isWord(s string) bool {
	if s == "" || !isLetter(rune(s[0])) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isWordChar(rune(s[i])) {
			return false
		}
	}
	return true
}

// Describe returns the lexical class of a token string, for tools that
// list token streams.
func Describe(s string) string {
	switch {
	case s == EndOfInput:
		return "end of input"
	case IsKeyword(s):
		return "keyword"
	case IsCondition(s):
		return "condition"
	case IsIdentifier(s):
		return "identifier"
	}
	return "invalid"
}
