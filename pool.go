package htmlmatch

// stackTag is an open tag on the matcher stack. For inward balancing it also
// keeps the close range once the tag is closed and its first child tag.
type stackTag struct {
	name       string
	open       Range
	close      Range
	paired     bool
	firstChild *stackTag
}

func (t *stackTag) balanced() BalancedTag {
	bt := BalancedTag{Name: t.name, Open: t.open}
	if t.paired {
		c := t.close
		bt.Close = &c
	}
	return bt
}

// tagPool is a free list of stack entries. Queries scan past thousands of
// tags, so entries are recycled rather than allocated for every open tag.
// A pool belongs to one Matcher and is not safe for concurrent use.
type tagPool struct {
	free []*stackTag
}

func (p *tagPool) get(name string, start, end int) *stackTag {
	var t *stackTag
	if n := len(p.free); n > 0 {
		t = p.free[n-1]
		p.free = p.free[:n-1]
		*t = stackTag{}
	} else {
		t = &stackTag{}
	}
	t.name = name
	t.open = Range{Start: start, End: end}
	return t
}

// put returns t and its first-child chain to the pool.
func (p *tagPool) put(t *stackTag) {
	for t != nil {
		next := t.firstChild
		t.firstChild = nil
		p.free = append(p.free, t)
		t = next
	}
}

// tagStack is a stack of open tags.
type tagStack []*stackTag

func (s *tagStack) push(t *stackTag) {
	*s = append(*s, t)
}

// pop pops the stack. It will panic if the stack is empty.
func (s *tagStack) pop() *stackTag {
	i := len(*s)
	t := (*s)[i-1]
	(*s)[i-1] = nil
	*s = (*s)[:i-1]
	return t
}

// top returns the most recently pushed tag, or nil if the stack is empty.
func (s *tagStack) top() *stackTag {
	if i := len(*s); i > 0 {
		return (*s)[i-1]
	}
	return nil
}
