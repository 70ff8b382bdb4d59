package syntax

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ----------------------------------------------------------------------------
// Test helpers

func tokens(src string) *TokenStream {
	return Tokenize("test.bl", strings.NewReader(src), nil)
}

func parseProgram(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := ParseProgram("test.bl", strings.NewReader(src), nil)
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	return prog
}

func parseProgramWithErrors(t *testing.T, src string) (*Program, error, []string) {
	t.Helper()
	var errs []string
	errh := func(pos Pos, msg string) {
		errs = append(errs, pos.String()+": "+msg)
	}
	prog, err := ParseProgram("test.bl", strings.NewReader(src), errh)
	return prog, err, errs
}

func parseStatement(t *testing.T, src string) (*Statement, *TokenStream) {
	t.Helper()
	ts := tokens(src)
	s := NewStatement()
	if err := NewParser(ts, nil).ParseStatement(s); err != nil {
		t.Fatalf("ParseStatement(%q): %v", src, err)
	}
	return s, ts
}

// nested returns n WHILE statements nested around a single move.
func nested(n int) string {
	return strings.Repeat("WHILE true DO ", n) + "move" + strings.Repeat(" END WHILE", n)
}

// ----------------------------------------------------------------------------
// Statements

func TestParseStatement(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want *Statement
	}{
		{"call", "move", mkCall("move")},
		{"user_call", "FindObstacle", mkCall("FindObstacle")},
		{"if", "IF next-is-empty THEN move END IF", mkIf(NextIsEmpty, mkCall("move"))},
		{"if_empty", "IF true THEN END IF", mkIf(True)},
		{
			"if_else",
			"IF next-is-enemy THEN infect ELSE turnleft move END IF",
			mkIfElse(NextIsEnemy, mkBlock(mkCall("infect")), mkBlock(mkCall("turnleft"), mkCall("move"))),
		},
		{"if_else_empty", "IF random THEN ELSE END IF", mkIfElse(Random, mkBlock(), mkBlock())},
		{"while", "WHILE next-is-not-wall DO move skip END WHILE", mkWhile(NextIsNotWall, mkCall("move"), mkCall("skip"))},
		{
			"nested",
			"WHILE true DO IF next-is-wall THEN turnright ELSE IF random THEN move END IF END IF END WHILE",
			mkWhile(True, mkIfElse(NextIsWall,
				mkBlock(mkCall("turnright")),
				mkBlock(mkIf(Random, mkCall("move"))))),
		},
		{"comments", "WHILE true DO # forever\n  skip # rest\nEND WHILE", mkWhile(True, mkCall("skip"))},
		{"if_closed_by_while", "IF true THEN move END WHILE", mkIf(True, mkCall("move"))},
		{"while_closed_by_if", "WHILE true DO move END IF", mkWhile(True, mkCall("move"))},
		{"if_closed_by_do", "IF true THEN move END DO", mkIf(True, mkCall("move"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ts := parseStatement(t, tt.src)
			if !s.Equal(tt.want) {
				t.Errorf("ParseStatement(%q) =\n%s\nwant\n%s", tt.src, dump(s), dump(tt.want))
			}
			if diff := cmp.Diff([]string{EndOfInput}, ts.Tokens()); diff != "" {
				t.Errorf("remaining tokens (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseStatementConsumesOneStatement(t *testing.T) {
	s, ts := parseStatement(t, "IF true THEN move END IF skip")
	if s.Kind() != If {
		t.Errorf("Kind() = %s, want IF", s.Kind())
	}
	if diff := cmp.Diff([]string{"skip", EndOfInput}, ts.Tokens()); diff != "" {
		t.Errorf("remaining tokens (-want +got):\n%s", diff)
	}
}

func TestParseStatementReplacesReceiver(t *testing.T) {
	s := mkWhile(True, mkCall("a"))
	if err := NewParser(tokens("skip"), nil).ParseStatement(s); err != nil {
		t.Fatal(err)
	}
	if !s.Equal(mkCall("skip")) {
		t.Errorf("s = %s, want CALL skip", dump(s))
	}
}

func TestParseBlock(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		want  int
		front string
	}{
		{"to_end", "move skip END", 2, "END"},
		{"to_else", "IF true THEN move END IF ELSE", 1, "ELSE"},
		{"to_input_end", "move", 1, EndOfInput},
		{"empty", "END", 0, "END"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := tokens(tt.src)
			b := mkCall("stale")
			if err := NewParser(ts, nil).ParseBlock(b); err != nil {
				t.Fatalf("ParseBlock: %v", err)
			}
			if b.Kind() != Block || b.LengthOfBlock() != tt.want {
				t.Errorf("ParseBlock = %s of %d, want BLOCK of %d", b.Kind(), len(b.kids), tt.want)
			}
			if got := ts.Front(); got != tt.front {
				t.Errorf("Front() = %q, want %q", got, tt.front)
			}
		})
	}
}

func TestParseStatementErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		class   error
		wantMsg string
	}{
		{"punct", ";", ErrInvalidToken, `invalid token ";": expected statement`},
		{"condition_as_call", "random", ErrInvalidToken, "expected statement"},
		{"keyword_as_call", "BEGIN", ErrInvalidToken, "expected statement"},
		{"end_of_input", "", ErrInvalidToken, "<end of input>"},
		{"bad_condition", "WHILE move DO skip END WHILE", ErrInvalidCondition, `invalid condition "move"`},
		{"missing_do", "WHILE true move END WHILE", ErrInvalidToken, "expected DO"},
		{"missing_then", "IF true move END IF", ErrInvalidToken, "expected THEN"},
		{"end_name", "IF true THEN move END x", ErrInvalidToken, `invalid token "x": expected keyword after END`},
		{"end_condition", "WHILE true DO move END true", ErrInvalidToken, "expected keyword after END"},
		{"end_primitive", "IF true THEN ELSE END move", ErrInvalidToken, "expected keyword after END"},
		{"unterminated", "WHILE true DO move", ErrInvalidToken, "expected END"},
		{"else_in_while", "WHILE true DO move ELSE skip END WHILE", ErrInvalidToken, `invalid token "ELSE": expected END`},
		{"double_else", "IF true THEN ELSE ELSE END IF", ErrInvalidToken, `invalid token "ELSE"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var msgs []string
			p := NewParser(tokens(tt.src), func(pos Pos, msg string) {
				msgs = append(msgs, msg)
			})
			s := mkCall("unchanged")
			err := p.ParseStatement(s)
			if !errors.Is(err, tt.class) {
				t.Fatalf("err = %v, want class %v", err, tt.class)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("err = %q, want it to contain %q", err, tt.wantMsg)
			}
			if len(msgs) != 1 {
				t.Errorf("error handler called %d times, want 1", len(msgs))
			}
			if !s.Equal(mkCall("unchanged")) {
				t.Errorf("receiver modified by failed parse: %s", dump(s))
			}
		})
	}
}

func TestParserStopsAfterFirstError(t *testing.T) {
	calls := 0
	p := NewParser(tokens("; move"), func(Pos, string) { calls++ })
	first := p.ParseStatement(NewStatement())
	if first == nil {
		t.Fatal("expected an error")
	}
	second := p.ParseStatement(NewStatement())
	if second != first || p.FirstError() != first {
		t.Errorf("later parse returned %v, want the first error %v", second, first)
	}
	if calls != 1 {
		t.Errorf("error handler called %d times, want 1", calls)
	}
}

func TestNestingLimit(t *testing.T) {
	tests := []struct {
		name    string
		limit   int
		depth   int
		wantErr bool
	}{
		{"at_limit", 3, 3, false},
		{"over_limit", 3, 4, true},
		{"unlimited", 0, 2000, false},
		{"negative_is_unlimited", -1, 50, false},
		{"default", DefaultMaxDepth, DefaultMaxDepth + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser(tokens(nested(tt.depth)), nil)
			p.SetMaxDepth(tt.limit)
			err := p.ParseStatement(NewStatement())
			if tt.wantErr {
				if !errors.Is(err, ErrNestingTooDeep) {
					t.Errorf("err = %v, want ErrNestingTooDeep", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Programs

func TestParseProgramMinimal(t *testing.T) {
	ts := NewTokenStream("PROGRAM", "p", "IS", "BEGIN", "move", "END", "p", EndOfInput)
	prog := NewProgram()
	if err := NewParser(ts, nil).ParseProgram(prog); err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	if prog.Name() != "p" {
		t.Errorf("Name() = %q, want p", prog.Name())
	}
	if prog.Context().Len() != 0 {
		t.Errorf("Context() = %v, want empty", prog.Context())
	}
	if !prog.Body().Equal(mkBlock(mkCall("move"))) {
		t.Errorf("Body() =\n%s", dump(prog.Body()))
	}
	if ts.Len() != 0 {
		t.Errorf("%d tokens left, want 0", ts.Len())
	}
}

func TestParseProgramInstructions(t *testing.T) {
	src := `
PROGRAM Test IS

  INSTRUCTION one IS
     move
     turnleft
  END one

  INSTRUCTION two IS
    one
    IF next-is-not-empty THEN
      turnleft
    ELSE
      one
      one
    END IF
  END two

BEGIN
  infect
  WHILE true DO
    two
    IF next-is-empty THEN
      move
    END IF
    two
    one
  END WHILE
END Test
`
	prog := parseProgram(t, src)

	want := NewProgram()
	want.SetName("Test")
	ctx := NewContext()
	ctx.Insert("one", mkBlock(mkCall("move"), mkCall("turnleft")))
	ctx.Insert("two", mkBlock(
		mkCall("one"),
		mkIfElse(NextIsNotEmpty, mkBlock(mkCall("turnleft")), mkBlock(mkCall("one"), mkCall("one"))),
	))
	want.SwapContext(ctx)
	want.SwapBody(mkBlock(
		mkCall("infect"),
		mkWhile(True,
			mkCall("two"),
			mkIf(NextIsEmpty, mkCall("move")),
			mkCall("two"),
			mkCall("one"),
		),
	))

	if diff := cmp.Diff(want, prog); diff != "" {
		t.Errorf("ParseProgram mismatch (-want +got):\n%s\ngot:\n%s", diff, dump(prog))
	}
	if diff := cmp.Diff([]string{"one", "two"}, prog.Context().Names()); diff != "" {
		t.Errorf("Names() (-want +got):\n%s", diff)
	}
}

func TestParseProgramEmptyParts(t *testing.T) {
	prog := parseProgram(t, "PROGRAM e IS INSTRUCTION nothing IS END nothing BEGIN END e")
	if !prog.Context().Lookup("nothing").IsEmpty() {
		t.Error("instruction body should be an empty BLOCK")
	}
	if !prog.Body().IsEmpty() {
		t.Error("program body should be an empty BLOCK")
	}
}

func TestParseProgramIdempotent(t *testing.T) {
	src := "PROGRAM p IS INSTRUCTION go IS move END go BEGIN go go END p"
	prog := NewProgram()
	for i := 0; i < 2; i++ {
		p := NewParser(tokens(src), nil)
		if err := p.ParseProgram(prog); err != nil {
			t.Fatalf("parse %d: %v", i, err)
		}
	}
	if !prog.Equal(parseProgram(t, src)) {
		t.Errorf("re-parsing into the same program changed the result:\n%s", dump(prog))
	}
	if prog.Context().Len() != 1 {
		t.Errorf("Context().Len() = %d, want 1", prog.Context().Len())
	}
}

func TestParseProgramErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		class   error
		kind    string
		wantPos string
	}{
		{
			"name_mismatch",
			"PROGRAM p IS\nBEGIN\n  move\nEND q",
			ErrNameMismatch, "name-mismatch", "test.bl:4:5",
		},
		{
			"instruction_mismatch",
			"PROGRAM p IS INSTRUCTION a IS move END b BEGIN END p",
			ErrNameMismatch, "name-mismatch", "test.bl:1:40",
		},
		{
			"duplicate",
			"PROGRAM p IS\nINSTRUCTION a IS move END a\nINSTRUCTION a IS skip END a\nBEGIN END p",
			ErrDuplicateInstruction, "duplicate-instruction", "test.bl:3:27",
		},
		{
			"keyword_name",
			"PROGRAM p IS INSTRUCTION WHILE IS move END WHILE BEGIN END p",
			ErrKeywordName, "keyword-name", "",
		},
		{
			"primitive_name",
			"PROGRAM p IS INSTRUCTION move IS skip END move BEGIN END p",
			ErrPrimitiveName, "primitive-name", "",
		},
		{
			"condition_name",
			"PROGRAM p IS INSTRUCTION random IS skip END random BEGIN END p",
			ErrInvalidIdentifier, "invalid-identifier", "test.bl:1:26",
		},
		{
			"keyword_program_name",
			"PROGRAM IS IS BEGIN END IS",
			ErrInvalidIdentifier, "invalid-identifier", "test.bl:1:9",
		},
		{
			"missing_program",
			"p IS BEGIN END p",
			ErrInvalidToken, "invalid-token", "test.bl:1:1",
		},
		{
			"missing_begin",
			"PROGRAM p IS move END p",
			ErrInvalidToken, "invalid-token", "test.bl:1:14",
		},
		{
			"trailing_tokens",
			"PROGRAM p IS BEGIN END p extra",
			ErrBadTermination, "bad-termination", "test.bl:1:26",
		},
		{
			"empty_input",
			"",
			ErrInvalidToken, "invalid-token", "",
		},
		{
			"lexical_garbage",
			"PROGRAM p IS BEGIN move; END p",
			ErrInvalidToken, "invalid-token", "test.bl:1:24",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err, msgs := parseProgramWithErrors(t, tt.src)
			if prog != nil {
				t.Errorf("ParseProgram returned a program on error")
			}
			if !errors.Is(err, tt.class) {
				t.Fatalf("err = %v, want class %v", err, tt.class)
			}
			var serr *SyntaxError
			if !errors.As(err, &serr) {
				t.Fatalf("err is %T, want *SyntaxError", err)
			}
			if serr.Kind() != tt.kind {
				t.Errorf("Kind() = %q, want %q", serr.Kind(), tt.kind)
			}
			if tt.wantPos != "" && serr.Pos.String() != tt.wantPos {
				t.Errorf("Pos = %s, want %s", serr.Pos, tt.wantPos)
			}
			if len(msgs) != 1 || msgs[0] != err.Error() {
				t.Errorf("handler messages = %q, want [%q]", msgs, err.Error())
			}
		})
	}
}

func TestParseProgramNameMismatchMessage(t *testing.T) {
	_, err, _ := parseProgramWithErrors(t, "PROGRAM p IS BEGIN END q")
	want := "multiple identifiers used as program name: PROGRAM p ... END q"
	if err == nil || !strings.Contains(err.Error(), want) {
		t.Errorf("err = %v, want it to contain %q", err, want)
	}
}

func TestParseProgramTermination(t *testing.T) {
	tests := []struct {
		name string
		toks []string
	}{
		{"no_sentinel", []string{"PROGRAM", "p", "IS", "BEGIN", "END", "p"}},
		{"after_sentinel", []string{"PROGRAM", "p", "IS", "BEGIN", "END", "p", EndOfInput, "move"}},
		{"before_sentinel", []string{"PROGRAM", "p", "IS", "BEGIN", "END", "p", "p", EndOfInput}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewParser(NewTokenStream(tt.toks...), nil).ParseProgram(NewProgram())
			if !errors.Is(err, ErrBadTermination) {
				t.Errorf("err = %v, want ErrBadTermination", err)
			}
		})
	}
}

func TestParseProgramFailureLeavesProgram(t *testing.T) {
	prog := parseProgram(t, "PROGRAM keep IS INSTRUCTION a IS move END a BEGIN a END keep")
	snapshot := parseProgram(t, "PROGRAM keep IS INSTRUCTION a IS move END a BEGIN a END keep")

	bad := []string{
		"PROGRAM other IS INSTRUCTION b IS skip END b BEGIN b END different",
		"PROGRAM other IS INSTRUCTION b IS skip END b INSTRUCTION b IS skip END b BEGIN END other",
		"PROGRAM other IS BEGIN skip END other trailing",
	}
	for i, src := range bad {
		if err := NewParser(tokens(src), nil).ParseProgram(prog); err == nil {
			t.Fatalf("case %d: expected an error", i)
		}
		if !prog.Equal(snapshot) {
			t.Errorf("case %d: failed parse modified the program:\n%s", i, dump(prog))
		}
	}
}

func TestParseProgramDuplicateStopsEarly(t *testing.T) {
	ts := NewTokenStream(
		"PROGRAM", "p", "IS",
		"INSTRUCTION", "x", "IS", "move", "END", "x",
		"INSTRUCTION", "x", "IS", "skip", "END", "x",
		"BEGIN", "x", "END", "p",
		EndOfInput,
	)
	prog := NewProgram()
	err := NewParser(ts, nil).ParseProgram(prog)
	if !errors.Is(err, ErrDuplicateInstruction) {
		t.Fatalf("err = %v, want ErrDuplicateInstruction", err)
	}
	want := []string{"BEGIN", "x", "END", "p", EndOfInput}
	if diff := cmp.Diff(want, ts.Tokens()); diff != "" {
		t.Errorf("remaining tokens (-want +got):\n%s", diff)
	}
	if prog.Name() != "Unnamed" || prog.Context().Len() != 0 || !prog.Body().IsEmpty() {
		t.Errorf("failed parse modified the program:\n%s", dump(prog))
	}
}

func TestParseProgramDeepNesting(t *testing.T) {
	src := fmt.Sprintf("PROGRAM deep IS BEGIN %s END deep", nested(DefaultMaxDepth))
	prog := parseProgram(t, src)
	if got := CountPrimitiveCalls(prog.Body()); got != 1 {
		t.Errorf("CountPrimitiveCalls = %d, want 1", got)
	}

	src = fmt.Sprintf("PROGRAM deep IS BEGIN %s END deep", nested(DefaultMaxDepth+1))
	if _, err := ParseProgram("test.bl", strings.NewReader(src), nil); !errors.Is(err, ErrNestingTooDeep) {
		t.Errorf("err = %v, want ErrNestingTooDeep", err)
	}
}

func TestParseBlockSource(t *testing.T) {
	b, err := ParseBlockSource("test.bl", strings.NewReader("move IF random THEN skip END IF"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !b.Equal(mkBlock(mkCall("move"), mkIf(Random, mkCall("skip")))) {
		t.Errorf("ParseBlockSource =\n%s", dump(b))
	}

	if _, err := ParseBlockSource("test.bl", strings.NewReader("move END"), nil); !errors.Is(err, ErrBadTermination) {
		t.Errorf("err = %v, want ErrBadTermination", err)
	}
}

func TestParseProgramDepth(t *testing.T) {
	src := fmt.Sprintf("PROGRAM d IS BEGIN %s END d", nested(5))
	if _, err := ParseProgramDepth("test.bl", strings.NewReader(src), 4, nil); !errors.Is(err, ErrNestingTooDeep) {
		t.Errorf("limit 4: err = %v, want ErrNestingTooDeep", err)
	}
	if _, err := ParseProgramDepth("test.bl", strings.NewReader(src), 5, nil); err != nil {
		t.Errorf("limit 5: unexpected error %v", err)
	}
	if _, err := ParseProgramDepth("test.bl", strings.NewReader(src), 0, nil); err != nil {
		t.Errorf("unlimited: unexpected error %v", err)
	}
}
