package syntax

// TokenStream is the FIFO sequence of tokens consumed by the parsers.
// Dequeuing removes the front token; Front only inspects it. A well-formed
// stream ends with EndOfInput.
//
// A TokenStream is owned by a single parse at a time; it is not safe for
// concurrent use.
type TokenStream struct {
	toks []string
	pos  []Pos
	head int
}

// NewTokenStream returns a stream holding toks in order. The tokens are
// taken as-is: callers that build streams by hand append EndOfInput
// themselves.
func NewTokenStream(toks ...string) *TokenStream {
	ts := &TokenStream{
		toks: make([]string, 0, len(toks)),
		pos:  make([]Pos, 0, len(toks)),
	}
	for _, tok := range toks {
		ts.Enqueue(tok, Pos{})
	}
	return ts
}

// Enqueue appends tok, found at pos, to the back of the stream.
func (ts *TokenStream) Enqueue(tok string, pos Pos) {
	ts.toks = append(ts.toks, tok)
	ts.pos = append(ts.pos, pos)
}

// Len returns the number of tokens not yet consumed.
func (ts *TokenStream) Len() int {
	return len(ts.toks) - ts.head
}

// Front returns the front token without consuming it, or "" if the
// stream is empty.
func (ts *TokenStream) Front() string {
	if ts.Len() == 0 {
		return ""
	}
	return ts.toks[ts.head]
}

// FrontPos returns the source position of the front token. Past the end
// of the stream it returns the position of the last token.
func (ts *TokenStream) FrontPos() Pos {
	if ts.Len() == 0 {
		if len(ts.pos) == 0 {
			return Pos{}
		}
		return ts.pos[len(ts.pos)-1]
	}
	return ts.pos[ts.head]
}

// Dequeue removes and returns the front token, or "" if the stream is
// empty.
func (ts *TokenStream) Dequeue() string {
	if ts.Len() == 0 {
		return ""
	}
	tok := ts.toks[ts.head]
	ts.head++
	return tok
}

// Tokens returns a copy of the tokens not yet consumed.
func (ts *TokenStream) Tokens() []string {
	out := make([]string, ts.Len())
	copy(out, ts.toks[ts.head:])
	return out
}
