package syntax

import (
	"fmt"
	"strings"
)

// Condition is one of the boolean tests usable in IF and WHILE statements.
type Condition uint8

const (
	NextIsEmpty Condition = iota
	NextIsNotEmpty
	NextIsWall
	NextIsNotWall
	NextIsFriend
	NextIsNotFriend
	NextIsEnemy
	NextIsNotEnemy
	Random
	True

	conditionCount
)

// conditionNames holds the enumeration names; the source spelling is
// derived from them by lower-casing and replacing '_' with '-'.
var conditionNames = [...]string{
	NextIsEmpty:     "NEXT_IS_EMPTY",
	NextIsNotEmpty:  "NEXT_IS_NOT_EMPTY",
	NextIsWall:      "NEXT_IS_WALL",
	NextIsNotWall:   "NEXT_IS_NOT_WALL",
	NextIsFriend:    "NEXT_IS_FRIEND",
	NextIsNotFriend: "NEXT_IS_NOT_FRIEND",
	NextIsEnemy:     "NEXT_IS_ENEMY",
	NextIsNotEnemy:  "NEXT_IS_NOT_ENEMY",
	Random:          "RANDOM",
	True:            "TRUE",
}

var conditionsByName = func() map[string]Condition {
	m := make(map[string]Condition, conditionCount)
	for c := Condition(0); c < conditionCount; c++ {
		m[conditionNames[c]] = c
	}
	return m
}()

// LookupCondition converts a condition token such as "next-is-empty"
// into the corresponding Condition. Tokens are case-sensitive: only the
// lower-case hyphenated spelling is accepted.
func LookupCondition(tok string) (Condition, bool) {
	if tok == "" || strings.ToLower(tok) != tok || strings.Contains(tok, "_") {
		return 0, false
	}
	c, ok := conditionsByName[strings.ToUpper(strings.ReplaceAll(tok, "-", "_"))]
	return c, ok
}

// conditionOf is LookupCondition for tokens already validated with
// IsCondition.
func conditionOf(tok string) Condition {
	c, ok := LookupCondition(tok)
	if !ok {
		panic(fmt.Sprintf("syntax.conditionOf: %q is not a condition", tok))
	}
	return c
}

// Name returns the enumeration name, e.g. "NEXT_IS_EMPTY".
func (c Condition) Name() string {
	if c < conditionCount {
		return conditionNames[c]
	}
	return fmt.Sprintf("Condition(%d)", c)
}

// String returns the source spelling, e.g. "next-is-empty".
func (c Condition) String() string {
	if c < conditionCount {
		return strings.ToLower(strings.ReplaceAll(conditionNames[c], "_", "-"))
	}
	return fmt.Sprintf("Condition(%d)", c)
}
