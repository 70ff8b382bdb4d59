package syntax

import "errors"

// Classes of syntax errors. A *SyntaxError wraps exactly one of these, so
// callers can classify failures with errors.Is.
var (
	ErrInvalidToken         = errors.New("invalid token")
	ErrInvalidIdentifier    = errors.New("invalid identifier")
	ErrInvalidCondition     = errors.New("invalid condition")
	ErrNameMismatch         = errors.New("mismatched name")
	ErrDuplicateInstruction = errors.New("duplicate instruction")
	ErrKeywordName          = errors.New("keyword used as instruction name")
	ErrPrimitiveName        = errors.New("primitive used as instruction name")
	ErrBadTermination       = errors.New("bad termination")
	ErrNestingTooDeep       = errors.New("nesting too deep")
)

// SyntaxError is a fatal error found while parsing BL tokens.
type SyntaxError struct {
	Pos Pos    // position of the offending token, if known
	Msg string // human-readable diagnostic
	Err error  // error class, one of the Err* variables
}

func (e *SyntaxError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Kind returns a short machine-readable name of the error class.
func (e *SyntaxError) Kind() string {
	switch e.Err {
	case ErrInvalidToken:
		return "invalid-token"
	case ErrInvalidIdentifier:
		return "invalid-identifier"
	case ErrInvalidCondition:
		return "invalid-condition"
	case ErrNameMismatch:
		return "name-mismatch"
	case ErrDuplicateInstruction:
		return "duplicate-instruction"
	case ErrKeywordName:
		return "keyword-name"
	case ErrPrimitiveName:
		return "primitive-name"
	case ErrBadTermination:
		return "bad-termination"
	case ErrNestingTooDeep:
		return "nesting-too-deep"
	}
	return "syntax"
}
