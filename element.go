package htmlmatch

import "strconv"

// ElementType is the kind of token reported by Scan.
type ElementType uint8

const (
	// Open is an opening tag like `<a href="">`.
	Open ElementType = iota + 1
	// Close is a closing tag like `</a>`.
	Close
	// SelfClose is a self-closing tag like `<br/>`.
	SelfClose
	// CData is a `<![CDATA[...]]>` section.
	CData
	// ProcessingInstruction is a `<?...?>` instruction.
	ProcessingInstruction
	// Comment is a `<!--...-->` comment.
	Comment
	// TemplateEscape is a template engine tag like `<%= value %>`.
	TemplateEscape
)

// Names reported by Scan for tokens which are not tags.
const (
	CDataName                 = "#cdata"
	ProcessingInstructionName = "#pi"
	CommentName               = "#comment"
	TemplateEscapeName        = "#template"
)

func (t ElementType) String() string {
	switch t {
	case Open:
		return "Open"
	case Close:
		return "Close"
	case SelfClose:
		return "SelfClose"
	case CData:
		return "CData"
	case ProcessingInstruction:
		return "ProcessingInstruction"
	case Comment:
		return "Comment"
	case TemplateEscape:
		return "TemplateEscape"
	}
	return "ElementType(" + strconv.Itoa(int(t)) + ")"
}

// MarshalText implements encoding.TextMarshaler.
func (t ElementType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
