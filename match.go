package htmlmatch

import (
	"io"
	"log/slog"
)

// MatchedTag is the innermost tag enclosing a position.
type MatchedTag struct {
	Name       string           `json:"name"`
	Attributes []AttributeToken `json:"attributes"`
	Open       Range            `json:"open"`
	// Close is nil for self-closing and void elements.
	Close *Range `json:"close,omitempty"`
}

// BalancedTag is a tag returned by the balancing queries.
type BalancedTag struct {
	Name string `json:"name"`
	Open Range  `json:"open"`
	// Close is nil for self-closing and void elements.
	Close *Range `json:"close,omitempty"`
}

// Matcher answers position queries over markup documents. It re-scans the
// document for every query and recycles its stack entries between queries.
//
// A Matcher is not safe for concurrent use. Create one per goroutine.
type Matcher struct {
	// Logger receives debug records about resolved queries. If nil, nothing
	// is logged.
	Logger *slog.Logger

	// logger is used when Logger is nil.
	logger *slog.Logger

	cfg   *config
	pool  tagPool
	stack tagStack
}

// NewMatcher returns a Matcher for the given options. A nil opts selects the
// HTML defaults.
func NewMatcher(opts *Options) *Matcher {
	return &Matcher{cfg: opts.config()}
}

// Match finds the innermost tag that encloses pos in src.
func Match(src string, pos int, opts *Options) (*MatchedTag, error) {
	return NewMatcher(opts).Match(src, pos)
}

// Match finds the innermost tag that encloses pos in src. It returns nil if
// pos is not inside any tag. Attributes are parsed for the matched tag only.
func (m *Matcher) Match(src string, pos int) (*MatchedTag, error) {
	var (
		result  *MatchedTag
		attrErr error
	)
	defer m.reset()

	err := scan(src, func(name string, typ ElementType, start, end int) bool {
		if typ == Open && m.cfg.isEmpty(name) {
			typ = SelfClose
		}

		switch typ {
		case Open:
			m.stack.push(m.pool.get(name, start, end))
		case SelfClose:
			if start < pos && pos < end {
				result = &MatchedTag{Name: name, Open: Range{Start: start, End: end}}
				result.Attributes, attrErr = m.attributes(src, name, result.Open)
				return false
			}
		case Close:
			t := m.stack.top()
			if t == nil || t.name != name {
				return true
			}
			if t.open.Start < pos && pos < end {
				result = &MatchedTag{
					Name:  name,
					Open:  t.open,
					Close: &Range{Start: start, End: end},
				}
				result.Attributes, attrErr = m.attributes(src, name, t.open)
				return false
			}
			m.pool.put(m.stack.pop())
		}
		return true
	}, m.cfg)
	if err == nil {
		err = attrErr
	}
	if err != nil {
		return nil, err
	}

	if result != nil {
		m.log().Debug("Match resolved", "pos", pos, "name", result.Name, "open", result.Open)
	}
	return result, nil
}

// attributes parses attributes of the open tag in src at r and rebases their
// offsets to the document.
func (m *Matcher) attributes(src, name string, r Range) ([]AttributeToken, error) {
	return openTagAttributes(src, name, r, m.cfg.strict)
}

// Attributes parses the attributes of the tag's open tag in src. Offsets are
// relative to src.
func (t BalancedTag) Attributes(src string) []AttributeToken {
	attrs, _ := openTagAttributes(src, t.Name, t.Open, false)
	return attrs
}

func openTagAttributes(src, name string, r Range, strict bool) ([]AttributeToken, error) {
	start := r.Start + len(name) + 1
	end := r.End - 1
	if end > start && src[end-1] == '/' {
		end--
	}
	if end < start {
		end = start
	}

	attrs, err := attributes(src[start:end], strict)
	for i := range attrs {
		attrs[i].shift(start)
	}
	if attrs == nil {
		attrs = []AttributeToken{}
	}
	return attrs, err
}

// reset releases stack entries left from the last query.
func (m *Matcher) reset() {
	for len(m.stack) > 0 {
		m.pool.put(m.stack.pop())
	}
}

func (m *Matcher) log() *slog.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return m.logger
}
