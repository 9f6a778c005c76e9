package scanner

import (
	"fmt"
	"strings"
)

// SourceLine is a line of source text with its 1-based number.
type SourceLine struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// SourceContext locates a position in source text for error reports.
type SourceContext struct {
	Lines       []SourceLine `json:"lines"`
	ErrorLine   int          `json:"errorLine"`
	ErrorColumn int          `json:"errorColumn"`
}

// Context returns the line and column of pos in src, both 1-based, together
// with up to n lines before and after it. Columns count bytes.
func Context(src string, pos, n int) *SourceContext {
	pos = max(0, min(pos, len(src)))

	lines := strings.Split(src, "\n")
	line := strings.Count(src[:pos], "\n")
	col := pos - (strings.LastIndexByte(src[:pos], '\n') + 1)

	ctx := &SourceContext{ErrorLine: line + 1, ErrorColumn: col + 1}
	for i := max(0, line-n); i <= min(len(lines)-1, line+n); i++ {
		ctx.Lines = append(ctx.Lines, SourceLine{Number: i + 1, Text: lines[i]})
	}
	return ctx
}

// String renders the context with line numbers and a caret under the error
// column.
func (c *SourceContext) String() string {
	var b strings.Builder
	for _, l := range c.Lines {
		marker := ' '
		if l.Number == c.ErrorLine {
			marker = '>'
		}
		fmt.Fprintf(&b, "%c %4d | %s\n", marker, l.Number, l.Text)
		if l.Number == c.ErrorLine {
			fmt.Fprintf(&b, "%s^\n", strings.Repeat(" ", 9+c.ErrorColumn-1))
		}
	}
	return b.String()
}
