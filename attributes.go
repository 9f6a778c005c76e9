package htmlmatch

import (
	"github.com/dpotapov/htmlmatch/scanner"
)

// AttributeToken is an attribute found in a tag. Offsets are relative to the
// text passed to Attributes, or to the document for attributes returned by
// Match.
type AttributeToken struct {
	Name      string `json:"name"`
	NameStart int    `json:"nameStart"`
	NameEnd   int    `json:"nameEnd"`

	// Value is the raw value including its quotes or braces. It is empty for
	// boolean attributes, see HasValue.
	Value      string `json:"value,omitempty"`
	ValueStart int    `json:"valueStart,omitempty"`
	ValueEnd   int    `json:"valueEnd,omitempty"`
	HasValue   bool   `json:"-"`
}

// UnquotedValue returns the value with a matching pair of surrounding quotes
// or braces removed.
func (a AttributeToken) UnquotedValue() string {
	v := a.Value
	if len(v) < 2 {
		return v
	}
	switch first, last := v[0], v[len(v)-1]; {
	case (first == '"' || first == '\'') && first == last,
		first == '{' && last == '}':
		return v[1 : len(v)-1]
	}
	return v
}

// shift moves the token offsets by delta.
func (a *AttributeToken) shift(delta int) {
	a.NameStart += delta
	a.NameEnd += delta
	if a.HasValue {
		a.ValueStart += delta
		a.ValueEnd += delta
	}
}

// Attributes parses src as a list of attributes. It expects the fragment
// between a tag name and the closing angle bracket: for `<a foo="bar">` that
// is ` foo="bar"`. Malformed input is skipped, never rejected.
func Attributes(src string) []AttributeToken {
	attrs, _ := attributes(src, false)
	return attrs
}

func attributes(src string, strict bool) ([]AttributeToken, error) {
	var result []AttributeToken
	s := scanner.New(src)
	s.Strict = strict

	for !s.EOF() && s.Err() == nil {
		s.EatWhile(scanner.IsSpace)
		if !attributeName(s) {
			// not a validating parser: skip the junk
			s.Skip()
			continue
		}

		tok := AttributeToken{
			Name:      s.Current(),
			NameStart: s.Start,
			NameEnd:   s.Pos,
		}
		if s.Eat('=') && attributeValue(s) {
			tok.Value = s.Current()
			tok.ValueStart = s.Start
			tok.ValueEnd = s.Pos
			tok.HasValue = true
		}
		result = append(result, tok)
	}

	return result, s.Err()
}

// skipAttributes moves the scanner past the attributes of a tag and stops in
// front of the tag terminator.
func skipAttributes(s *scanner.Scanner) {
	for !s.EOF() && s.Err() == nil {
		s.EatWhile(scanner.IsSpace)
		if attributeName(s) {
			if s.Eat('=') {
				attributeValue(s)
			}
		} else if scanner.IsTerminator(s.Peek()) {
			break
		} else {
			s.Skip()
		}
	}
}

// attributeName consumes an attribute name. Besides plain names it accepts
// expressions used by template frameworks: `{...props}`, `[ngFor]` and
// `(click)`, as well as prefixed names like `*ngIf`, `#ref` and `@click`.
func attributeName(s *scanner.Scanner) bool {
	if scanner.EatPaired(s) {
		return true
	}

	start := s.Pos
	if s.Eat('*') || s.Eat('#') || s.Eat('@') {
		scanner.Ident(s)
		s.Start = start
		return true
	}

	return scanner.Ident(s)
}

// attributeValue consumes a quoted value, a bracketed expression like
// `{foo}` or an unquoted literal.
func attributeValue(s *scanner.Scanner) bool {
	if scanner.EatQuoted(s) || scanner.EatPaired(s) {
		return true
	}

	start := s.Pos
	if s.EatWhile(scanner.IsUnquoted) {
		s.Start = start
		return true
	}
	return false
}
