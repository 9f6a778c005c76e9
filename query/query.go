// Package query filters match results with expr-lang expressions, e.g.
//
//	name == "div" && attrs.class contains "box"
//	selfClosing || index == 0
//	attrs.data_id == "42" || attrs.on_click != nil
//
// Attribute names that are not valid identifiers, such as data-id or
// onClick, are also available under their snake_case form.
package query

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/fatih/camelcase"

	"github.com/dpotapov/htmlmatch"
)

// Env is the environment a filter expression is evaluated in.
type Env struct {
	Name        string            `expr:"name"`
	Open        []int             `expr:"open"`
	Close       []int             `expr:"close"`
	SelfClosing bool              `expr:"selfClosing"`
	Attrs       map[string]string `expr:"attrs"`
	// Index is the position of the tag in the result list.
	Index int `expr:"index"`
}

// Filter is a compiled filter expression. A nil Filter and the Filter of an
// empty expression accept every tag.
type Filter struct {
	source  string
	program *vm.Program
}

// Compile compiles a boolean filter expression.
func Compile(expression string) (*Filter, error) {
	if strings.TrimSpace(expression) == "" {
		return &Filter{}, nil
	}

	prog, err := expr.Compile(expression, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", expression, err)
	}
	return &Filter{source: expression, program: prog}, nil
}

func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return f.source
}

// Match reports whether the matched tag passes the filter.
func (f *Filter) Match(tag *htmlmatch.MatchedTag) (bool, error) {
	if tag == nil {
		return false, nil
	}
	if f == nil || f.program == nil {
		return true, nil
	}
	return f.eval(newEnv(tag.Name, tag.Open, tag.Close, tag.Attributes, 0))
}

// Balanced returns the tags that pass the filter. Attributes are parsed from
// src only when the expression refers to them.
func (f *Filter) Balanced(src string, tags []htmlmatch.BalancedTag) ([]htmlmatch.BalancedTag, error) {
	if f == nil || f.program == nil {
		return tags, nil
	}

	withAttrs := strings.Contains(f.source, "attrs")
	result := []htmlmatch.BalancedTag{}
	for i, t := range tags {
		var attrs []htmlmatch.AttributeToken
		if withAttrs {
			attrs = t.Attributes(src)
		}
		ok, err := f.eval(newEnv(t.Name, t.Open, t.Close, attrs, i))
		if err != nil {
			return nil, err
		}
		if ok {
			result = append(result, t)
		}
	}
	return result, nil
}

func (f *Filter) eval(env Env) (bool, error) {
	out, err := expr.Run(f.program, env)
	if err != nil {
		return false, fmt.Errorf("run filter %q: %w", f.source, err)
	}
	ok, _ := out.(bool)
	return ok, nil
}

func newEnv(name string, open htmlmatch.Range, close *htmlmatch.Range, attrs []htmlmatch.AttributeToken, index int) Env {
	env := Env{
		Name:        name,
		Open:        []int{open.Start, open.End},
		SelfClosing: close == nil,
		Attrs:       make(map[string]string, len(attrs)),
		Index:       index,
	}
	if close != nil {
		env.Close = []int{close.Start, close.End}
	}
	for _, a := range attrs {
		env.Attrs[a.Name] = a.UnquotedValue()
	}
	for _, a := range attrs {
		alias := toSnakeCase(a.Name)
		if _, ok := env.Attrs[alias]; !ok {
			env.Attrs[alias] = a.UnquotedValue()
		}
	}
	return env
}

// toSnakeCase converts kebab-case and camelCase attribute names to
// snake_case: data-user-id and dataUserId both become data_user_id.
// Framework prefixes like : @ * # are dropped.
func toSnakeCase(s string) string {
	s = strings.TrimLeft(s, ":@*#")
	s = strings.NewReplacer("-", "_", ":", "_", ".", "_").Replace(s)

	blocks := strings.Split(s, "_")
	for i, block := range blocks {
		words := camelcase.Split(block)
		elems := make([]string, 0, len(words))
		for _, w := range words {
			if w == "" {
				continue
			}
			if isDigits(w) && len(elems) > 0 {
				// digits stick to the previous word: h1Title -> h1_title
				elems[len(elems)-1] += w
				continue
			}
			elems = append(elems, strings.ToLower(w))
		}
		blocks[i] = strings.Join(elems, "_")
	}
	return strings.Join(blocks, "_")
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
