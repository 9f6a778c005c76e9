// Package scanner provides a position-indexed cursor over markup source and the
// primitive consumers (identifiers, quoted literals, paired brackets, fixed
// sequences) that the tag scanner and the attribute tokenizer are built on.
//
// Positions are byte offsets into the source string. Characters are decoded as
// UTF-8 runes, so a single step may advance the position by more than one.
package scanner

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// EOF is returned by Peek and Next when the scanner reached the end of input.
const EOF rune = -1

// ErrUnterminated is wrapped by every SyntaxError reported in strict mode for
// quoted literals or paired brackets that never close.
var ErrUnterminated = errors.New("unterminated construct")

// SyntaxError describes a construct that could not be consumed in strict mode.
type SyntaxError struct {
	Msg string
	Pos int
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at %d", e.Msg, e.Pos)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Scanner is a cursor over a source string. Pos is the current position and
// Start is the start of the most recently consumed token; consumers set Start
// on success so that Current returns the consumed text.
type Scanner struct {
	src string

	Pos   int
	Start int

	// Strict makes consumers record a SyntaxError for unterminated quoted
	// literals and paired brackets instead of silently tolerating them.
	Strict bool

	// err is the first error recorded in strict mode.
	err error
}

// New returns a Scanner positioned at the beginning of src.
func New(src string) *Scanner {
	return &Scanner{src: src}
}

// Source returns the text the scanner runs over.
func (s *Scanner) Source() string {
	return s.src
}

// EOF reports whether the scanner reached the end of input.
func (s *Scanner) EOF() bool {
	return s.Pos >= len(s.src)
}

// Peek returns the character at the current position without consuming it.
func (s *Scanner) Peek() rune {
	r, _ := s.decode()
	return r
}

// Next consumes and returns the character at the current position.
func (s *Scanner) Next() rune {
	r, w := s.decode()
	s.Pos += w
	return r
}

// Skip advances the scanner by one character.
func (s *Scanner) Skip() {
	_, w := s.decode()
	s.Pos += w
}

// Eat consumes the current character if it equals r.
func (s *Scanner) Eat(r rune) bool {
	c, w := s.decode()
	if c != EOF && c == r {
		s.Pos += w
		return true
	}
	return false
}

// EatFunc consumes the current character if fn reports true for it.
func (s *Scanner) EatFunc(fn func(rune) bool) bool {
	c, w := s.decode()
	if c != EOF && fn(c) {
		s.Pos += w
		return true
	}
	return false
}

// EatWhile consumes characters while fn reports true for them. It returns
// whether at least one character was consumed.
func (s *Scanner) EatWhile(fn func(rune) bool) bool {
	start := s.Pos
	for s.EatFunc(fn) {
	}
	return s.Pos != start
}

// Current returns the text between Start and Pos.
func (s *Scanner) Current() string {
	return s.src[s.Start:s.Pos]
}

// Substring returns the source text between from and to.
func (s *Scanner) Substring(from, to int) string {
	return s.src[from:to]
}

// Token returns the range between Start and Pos as a Token.
func (s *Scanner) Token() Token {
	return Token{Start: s.Start, End: s.Pos, src: s.src}
}

// Err returns the first error recorded in strict mode, or nil.
func (s *Scanner) Err() error {
	return s.err
}

// fail records err if the scanner is strict and no error was recorded yet.
func (s *Scanner) fail(msg string, pos int) {
	if s.Strict && s.err == nil {
		s.err = &SyntaxError{Msg: msg, Pos: pos, Err: ErrUnterminated}
	}
}

func (s *Scanner) decode() (rune, int) {
	if s.Pos >= len(s.src) {
		return EOF, 0
	}
	if c := s.src[s.Pos]; c < utf8.RuneSelf {
		return rune(c), 1
	}
	return utf8.DecodeRuneInString(s.src[s.Pos:])
}
