package htmlmatch

// BalancedOutward returns all tags enclosing pos in src, innermost first.
func BalancedOutward(src string, pos int, opts *Options) ([]BalancedTag, error) {
	return NewMatcher(opts).BalancedOutward(src, pos)
}

// BalancedInward returns the innermost tag enclosing pos followed by the chain
// of its first descendants: the first child tag, the first child of that tag
// and so on.
func BalancedInward(src string, pos int, opts *Options) ([]BalancedTag, error) {
	return NewMatcher(opts).BalancedInward(src, pos)
}

// BalancedOutward returns all tags enclosing pos in src, innermost first. The
// outermost tags are only known once they close, so the scan continues past
// the first match until the enclosing tags are all closed.
func (m *Matcher) BalancedOutward(src string, pos int) ([]BalancedTag, error) {
	result := []BalancedTag{}
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
				result = append(result, BalancedTag{Name: name, Open: Range{Start: start, End: end}})
			}
		case Close:
			t := m.stack.top()
			if t == nil || t.name != name {
				return true
			}
			m.stack.pop()
			if t.open.Start < pos && pos < end {
				result = append(result, BalancedTag{
					Name:  name,
					Open:  t.open,
					Close: &Range{Start: start, End: end},
				})
			}
			m.pool.put(t)
			if len(result) > 0 && len(m.stack) == 0 {
				// the root of the matched chain is closed
				return false
			}
		}
		return true
	}, m.cfg)
	if err != nil {
		return nil, err
	}

	m.log().Debug("Balanced outward", "pos", pos, "tags", len(result))
	return result, nil
}

// BalancedInward returns the innermost tag enclosing pos followed by its
// first-descendant chain, outermost first.
//
// While scanning, every open tag remembers the first child tag closed inside
// it, so when the tag enclosing pos closes its chain of first children is
// already known and no tree has to be built.
func (m *Matcher) BalancedInward(src string, pos int) ([]BalancedTag, error) {
	result := []BalancedTag{}
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
				result = append(result, BalancedTag{Name: name, Open: Range{Start: start, End: end}})
				return false
			}
			if parent := m.stack.top(); parent != nil && parent.firstChild == nil {
				parent.firstChild = m.pool.get(name, start, end)
			}
		case Close:
			t := m.stack.top()
			if t == nil || t.name != name {
				return true
			}
			m.stack.pop()
			t.close = Range{Start: start, End: end}
			t.paired = true

			if t.open.Start < pos && pos < end {
				for c := t; c != nil; c = c.firstChild {
					result = append(result, c.balanced())
				}
				m.pool.put(t)
				return false
			}

			if parent := m.stack.top(); parent != nil && parent.firstChild == nil {
				parent.firstChild = t
			} else {
				m.pool.put(t)
			}
		}
		return true
	}, m.cfg)
	if err != nil {
		return nil, err
	}

	m.log().Debug("Balanced inward", "pos", pos, "tags", len(result))
	return result, nil
}
