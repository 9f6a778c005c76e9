// Package format renders query results for editor integrations and the
// command line.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/beevik/etree"

	"github.com/dpotapov/htmlmatch"
)

// JSON writes v as indented JSON. Ranges are encoded as [start, end] pairs.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// XML writes v as an XML document. Supported values are the results of the
// htmlmatch queries: *MatchedTag, []BalancedTag, []AttributeToken and
// []Element. The open tag source text becomes the text of each <tag> element.
func XML(w io.Writer, src string, v any) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	switch v := v.(type) {
	case *htmlmatch.MatchedTag:
		root := doc.CreateElement("match")
		if v != nil {
			el := addTag(root, src, v.Name, v.Open, v.Close)
			addAttributes(el, v.Attributes)
		}
	case []htmlmatch.BalancedTag:
		root := doc.CreateElement("tags")
		for _, t := range v {
			addTag(root, src, t.Name, t.Open, t.Close)
		}
	case []htmlmatch.AttributeToken:
		addAttributes(doc.CreateElement("attributes"), v)
	case []htmlmatch.Element:
		root := doc.CreateElement("elements")
		for _, e := range v {
			el := root.CreateElement("element")
			el.CreateAttr("type", e.Type.String())
			el.CreateAttr("name", e.Name())
			el.CreateAttr("range", formatRange(e.Range))
		}
	default:
		return fmt.Errorf("format: unsupported value %T", v)
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}

func addTag(parent *etree.Element, src, name string, open htmlmatch.Range, close *htmlmatch.Range) *etree.Element {
	el := parent.CreateElement("tag")
	el.CreateAttr("name", name)
	el.CreateAttr("open", formatRange(open))
	if close != nil {
		el.CreateAttr("close", formatRange(*close))
	}
	el.SetText(open.Text(src))
	return el
}

func addAttributes(parent *etree.Element, attrs []htmlmatch.AttributeToken) {
	for _, a := range attrs {
		el := parent.CreateElement("attr")
		el.CreateAttr("name", a.Name)
		el.CreateAttr("nameRange", formatRange(htmlmatch.Range{Start: a.NameStart, End: a.NameEnd}))
		if a.HasValue {
			el.CreateAttr("value", a.Value)
			el.CreateAttr("valueRange", formatRange(htmlmatch.Range{Start: a.ValueStart, End: a.ValueEnd}))
		}
	}
}

func formatRange(r htmlmatch.Range) string {
	return strconv.Itoa(r.Start) + "," + strconv.Itoa(r.End)
}
