package scanner

import "strings"

// Ident consumes a tag or attribute name: a name-start character followed by
// any number of name characters.
func Ident(s *Scanner) bool {
	start := s.Pos
	if s.EatFunc(IsNameStart) {
		s.EatWhile(IsNameChar)
		s.Start = start
		return true
	}
	return false
}

// EatQuoted consumes a single- or double-quoted literal, including the quotes.
// A backslash escapes the next character. An unterminated literal runs to the
// end of input unless the scanner is strict, in which case the position is
// restored and an error is recorded.
func EatQuoted(s *Scanner) bool {
	return eatQuoted(s, s.Strict)
}

func eatQuoted(s *Scanner, strict bool) bool {
	start := s.Pos
	quote := s.Peek()
	if !IsQuote(quote) {
		return false
	}
	s.Next()

	for !s.EOF() {
		switch s.Next() {
		case quote:
			s.Start = start
			return true
		case '\\':
			s.Skip()
		}
	}

	if strict {
		s.Pos = start
		s.fail("unterminated quoted literal", start)
		return false
	}
	s.Start = start
	return true
}

// pairs lists bracket pairs recognized by EatPaired.
var pairs = [...][2]rune{
	{'<', '>'},
	{'(', ')'},
	{'[', ']'},
	{'{', '}'},
}

// EatPaired consumes a bracketed expression such as `{a == b}` or `[ng-for]`.
// Nested brackets of the same kind are balanced and quoted substrings are
// skipped so their brackets are not counted. If the input ends before the
// brackets balance, the position is restored and false is returned.
func EatPaired(s *Scanner) bool {
	for _, p := range pairs {
		if eatPair(s, p[0], p[1]) {
			return true
		}
	}
	return false
}

func eatPair(s *Scanner, open, close rune) bool {
	start := s.Pos
	if !s.Eat(open) {
		return false
	}

	depth := 1
	for !s.EOF() {
		// An unterminated inner quote swallows the rest of the input and
		// the pair fails below.
		if eatQuoted(s, false) {
			continue
		}
		switch s.Next() {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				s.Start = start
				return true
			}
		case '\\':
			s.Skip()
		}
	}

	s.Pos = start
	s.fail("unable to find matching pair for "+string(open), start)
	return false
}

// EatSequence consumes seq if the input at the current position starts with it.
func EatSequence(s *Scanner, seq string) bool {
	if s.Pos < len(s.src) && strings.HasPrefix(s.src[s.Pos:], seq) {
		s.Start = s.Pos
		s.Pos += len(seq)
		return true
	}
	return false
}

// EatSection consumes a construct delimited by the open and close sequences,
// like `<!--` and `-->`. When allowUnclosed is set a missing close sequence
// makes the section run to the end of input.
func EatSection(s *Scanner, open, close string, allowUnclosed bool) bool {
	start := s.Pos
	if !EatSequence(s, open) {
		return false
	}

	if i := strings.Index(s.src[s.Pos:], close); i != -1 {
		s.Pos += i + len(close)
		s.Start = start
		return true
	}

	if allowUnclosed {
		s.Pos = len(s.src)
		s.Start = start
		return true
	}

	s.Pos = start
	return false
}
