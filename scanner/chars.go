package scanner

// IsSpace reports whether r is a whitespace character in markup.
func IsSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' || r == 0xA0
}

// IsQuote reports whether r opens a quoted literal.
func IsQuote(r rune) bool {
	return r == '"' || r == '\''
}

// IsAlpha reports whether r is an ASCII letter.
func IsAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// IsNumber reports whether r is an ASCII digit.
func IsNumber(r rune) bool {
	return r >= '0' && r <= '9'
}

// IsNameStart reports whether r may start a tag or attribute name.
// See https://www.w3.org/TR/xml/#NT-NameStartChar
func IsNameStart(r rune) bool {
	return IsAlpha(r) || r == ':' || r == '_' ||
		(r >= 0xC0 && r <= 0xD6) ||
		(r >= 0xD8 && r <= 0xF6) ||
		(r >= 0xF8 && r <= 0x2FF) ||
		(r >= 0x370 && r <= 0x37D) ||
		(r >= 0x37F && r <= 0x1FFF) ||
		(r >= 0x200C && r <= 0x200D) ||
		(r >= 0x2070 && r <= 0x218F) ||
		(r >= 0x2C00 && r <= 0x2FEF) ||
		(r >= 0x3001 && r <= 0xD7FF) ||
		(r >= 0xF900 && r <= 0xFDCF) ||
		(r >= 0xFDF0 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0xEFFFF)
}

// IsNameChar reports whether r may appear in a tag or attribute name.
// See https://www.w3.org/TR/xml/#NT-NameChar
func IsNameChar(r rune) bool {
	return IsNameStart(r) || IsNumber(r) || r == '-' || r == '.' || r == 0xB7 ||
		(r >= 0x300 && r <= 0x36F) ||
		(r >= 0x203F && r <= 0x2040)
}

// IsTerminator reports whether r ends the interior of a tag.
func IsTerminator(r rune) bool {
	return r == '>' || r == '/'
}

// IsUnquoted reports whether r may appear in an unquoted attribute value.
func IsUnquoted(r rune) bool {
	return r != EOF && !IsQuote(r) && !IsSpace(r) && !IsTerminator(r)
}
