package htmlmatch

import (
	"encoding/json"
	"strings"

	"github.com/dpotapov/htmlmatch/scanner"
)

// ScanFunc receives every token found by Scan in document order. For tags,
// name is the tag name; other tokens use the reserved names like CommentName.
// Returning false stops the scan.
type ScanFunc func(name string, typ ElementType, start, end int) bool

// Delimiters of the bracketed constructs, in the order they are tried.
var sections = [...]struct {
	open, close string
	name        string
	typ         ElementType
}{
	{"<![CDATA[", "]]>", CDataName, CData},
	{"<!--", "-->", CommentName, Comment},
	{"<%", "%>", TemplateEscapeName, TemplateEscape},
	{"<?", "?>", ProcessingInstructionName, ProcessingInstruction},
}

// Scan runs a single forward pass over src and calls fn for each tag. Unlike a
// parser it does not build attribute lists or text nodes: the callback gets the
// tag name, its type and its range only.
//
// Content of raw-text elements like <script> is skipped until the matching
// closing tag, which is reported as a Close token. The error is always nil
// unless opts.Strict is set.
func Scan(src string, fn ScanFunc, opts *Options) error {
	return scan(src, fn, opts.config())
}

func scan(src string, fn ScanFunc, cfg *config) error {
	return scanTokens(src, func(name *scanner.Token, typ ElementType, start, end int) bool {
		return fn(name.Value(), typ, start, end)
	}, cfg)
}

// tokenFunc is a ScanFunc that receives the name as a lazily read token.
type tokenFunc func(name *scanner.Token, typ ElementType, start, end int) bool

func scanTokens(src string, fn tokenFunc, cfg *config) error {
	s := scanner.New(src)
	s.Strict = cfg.strict

	for !s.EOF() {
		// every construct starts with '<'
		i := strings.IndexByte(src[s.Pos:], '<')
		if i == -1 {
			break
		}
		s.Pos += i

		if typ, name, ok := section(s); ok {
			if cfg.allTokens && !fn(&name, typ, s.Start, s.Pos) {
				break
			}
			continue
		}

		start := s.Pos
		name, typ, ok := tag(s, cfg)
		if err := s.Err(); err != nil {
			return err
		}
		if !ok {
			// not a tag, resume right after the '<'
			s.Pos = start + 1
			continue
		}

		if !fn(&name, typ, start, s.Pos) {
			break
		}

		if typ == Open && cfg.isSpecial(name.Value(), src, start, s.Pos) {
			closeStart, closeEnd, found := rawTextEnd(src, s.Pos, name.Value())
			s.Pos = closeEnd
			if found && !fn(&name, Close, closeStart, closeEnd) {
				break
			}
		}
	}

	return nil
}

// section consumes a comment, CDATA, template escape or processing
// instruction. An unclosed section extends to the end of input.
func section(s *scanner.Scanner) (ElementType, scanner.Token, bool) {
	for _, sec := range sections {
		if scanner.EatSection(s, sec.open, sec.close, true) {
			return sec.typ, scanner.NewToken(sec.name, 0, len(sec.name)), true
		}
	}
	return 0, scanner.Token{}, false
}

// tag consumes an open, close or self-closing tag at the current position and
// returns the token of its name.
func tag(s *scanner.Scanner, cfg *config) (scanner.Token, ElementType, bool) {
	if !s.Eat('<') {
		return scanner.Token{}, 0, false
	}

	typ := Open
	if s.Eat('/') {
		typ = Close
	}

	nameStart := s.Pos
	if !scanner.Ident(s) {
		// JSX fragment: <> or </>
		if cfg.jsx && s.Eat('>') {
			return scanner.NewToken(s.Source(), nameStart, nameStart), typ, true
		}
		return scanner.Token{}, 0, false
	}
	name := s.Token()

	if typ != Close {
		skipAttributes(s)
		s.EatWhile(scanner.IsSpace)
		if s.Eat('/') {
			typ = SelfClose
		}
	}

	if !s.Eat('>') {
		return scanner.Token{}, 0, false
	}
	return name, typ, true
}

// rawTextEnd finds the closing tag of the raw-text element name whose content
// starts at pos. If there is none, the element runs to the end of input.
func rawTextEnd(src string, pos int, name string) (start, end int, found bool) {
	for i := pos; i < len(src); {
		j := strings.Index(src[i:], "</")
		if j == -1 {
			break
		}
		start = i + j
		end = start + 2 + len(name)
		if end < len(src) && src[start+2:end] == name && src[end] == '>' {
			return start, end + 1, true
		}
		i = start + 2
	}
	return len(src), len(src), false
}

// Element is a token reported by Scan. The name is read from the source only
// when it is requested.
type Element struct {
	Type  ElementType
	Range Range

	name scanner.Token
}

// Name returns the tag name or the reserved name of a non-tag token.
func (e *Element) Name() string {
	return e.name.Value()
}

// MarshalJSON encodes the element as {"name", "type", "range"}.
func (e Element) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name  string      `json:"name"`
		Type  ElementType `json:"type"`
		Range Range       `json:"range"`
	}{e.Name(), e.Type, e.Range})
}

// Elements scans src and collects all reported tokens.
func Elements(src string, opts *Options) ([]Element, error) {
	elems := []Element{}
	err := scanTokens(src, func(name *scanner.Token, typ ElementType, start, end int) bool {
		elems = append(elems, Element{Type: typ, Range: Range{Start: start, End: end}, name: *name})
		return true
	}, opts.config())
	return elems, err
}
