package scanner

// Token is a half-open range [Start, End) of a source. Its text is read from the
// source on the first call to Value and cached afterwards, so tokens that are
// never inspected cost nothing beyond the two offsets.
type Token struct {
	Start, End int

	src    string
	value  string
	cached bool
}

// NewToken returns a token over src[start:end].
func NewToken(src string, start, end int) Token {
	return Token{Start: start, End: end, src: src}
}

// Value returns the token text.
func (t *Token) Value() string {
	if !t.cached {
		t.value = t.src[t.Start:t.End]
		t.cached = true
	}
	return t.value
}
