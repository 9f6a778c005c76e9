package htmlmatch

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// Options configures scanning and matching. The zero value and a nil *Options
// both select the HTML defaults.
type Options struct {
	// XML parses the source as an XML document: void elements get no special
	// treatment (the matcher looks for a closing `</br>`) and raw-text elements
	// like <script> are scanned as regular markup.
	XML bool

	// Special lists raw-text elements whose content is not scanned as markup.
	// A nil value makes the element raw unconditionally. A non-nil value lists
	// the allowed values of the element's `type` attribute; the empty string
	// stands for an absent attribute. Nil selects DefaultSpecial.
	Special map[string][]string

	// Empty lists void elements which have no closing tag in HTML. It is
	// ignored in XML mode. Nil selects the HTML void elements.
	Empty []string

	// AllTokens makes Scan report comments, CDATA sections, processing
	// instructions and template escapes in addition to tags.
	AllTokens bool

	// JSX enables fragment tags `<>` and `</>`. They are reported with an
	// empty name.
	JSX bool

	// Strict turns unterminated quoted values and brackets inside a tag into
	// a *scanner.SyntaxError instead of skipping over them.
	//
	// Any '<' followed by a name starts a tag, including one in plain text:
	// in "if a<b (c" the "(" is read as an unterminated attribute name and
	// fails the scan. Text meant literally must escape '<' as &lt;.
	Strict bool
}

// scriptTypes lists `type` values of a <script> element that hold code.
var scriptTypes = []string{
	"",
	"text/javascript",
	"application/x-javascript",
	"javascript",
	"typescript",
	"ts",
	"coffee",
	"coffeescript",
}

// DefaultSpecial returns the default raw-text elements.
func DefaultSpecial() map[string][]string {
	return map[string][]string{
		"style":  nil,
		"script": append([]string(nil), scriptTypes...),
	}
}

// defaultEmpty is the HTML void element set used when Options.Empty is nil.
var defaultEmpty = map[atom.Atom]bool{
	atom.Img:    true,
	atom.Meta:   true,
	atom.Link:   true,
	atom.Br:     true,
	atom.Base:   true,
	atom.Hr:     true,
	atom.Area:   true,
	atom.Wbr:    true,
	atom.Col:    true,
	atom.Embed:  true,
	atom.Input:  true,
	atom.Param:  true,
	atom.Source: true,
	atom.Track:  true,
}

// config is the resolved form of Options used while scanning.
type config struct {
	xml       bool
	allTokens bool
	jsx       bool
	strict    bool
	special   map[string][]string

	// empty is nil when the default void set applies.
	empty map[string]struct{}
}

var defaultSpecial = DefaultSpecial()

func (o *Options) config() *config {
	if o == nil {
		return &config{special: defaultSpecial}
	}

	c := &config{
		xml:       o.XML,
		allTokens: o.AllTokens,
		jsx:       o.JSX,
		strict:    o.Strict,
		special:   o.Special,
	}
	if c.special == nil {
		c.special = defaultSpecial
	}
	if o.Empty != nil {
		c.empty = make(map[string]struct{}, len(o.Empty))
		for _, name := range o.Empty {
			c.empty[name] = struct{}{}
		}
	}
	return c
}

// isEmpty reports whether name is a void element for this configuration.
func (c *config) isEmpty(name string) bool {
	if c.xml {
		return false
	}
	if c.empty == nil {
		a := atom.Lookup([]byte(name))
		return a != 0 && defaultEmpty[a]
	}
	_, ok := c.empty[name]
	return ok
}

// isSpecial reports whether the open tag src[start:end] named name starts a
// raw-text element.
func (c *config) isSpecial(name, src string, start, end int) bool {
	if c.xml {
		return false
	}
	types, ok := c.special[name]
	if !ok {
		return false
	}
	if types == nil {
		return true
	}

	typ := ""
	attrs, _ := attributes(src[start+len(name)+1:end-1], false)
	for _, a := range attrs {
		if a.Name == "type" {
			typ = a.UnquotedValue()
			break
		}
	}
	for _, t := range types {
		if strings.EqualFold(t, typ) {
			return true
		}
	}
	return false
}
