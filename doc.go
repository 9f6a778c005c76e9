// Package htmlmatch finds the markup tags around a position in an HTML, XML
// or JSX document without building a document tree.
//
// The source is scanned left to right and every tag is reported as soon as it
// is recognized. Queries keep a stack of open tags and stop scanning once the
// answer is known:
//
//   - Match returns the tag whose open or close tag contains the position,
//     together with its parsed attributes.
//   - BalancedOutward returns every tag enclosing the position, innermost
//     first. Editors use it to expand a selection outwards.
//   - BalancedInward returns the innermost enclosing tag and the chain of its
//     first children, used to shrink a selection inwards.
//
// Positions are byte offsets into the source string. A position inside a tag
// means strictly inside: start < pos < end.
//
// Malformed markup is tolerated. Unterminated quotes run to the end of the
// input, unknown constructs are skipped and unmatched close tags are ignored.
// Options.Strict reports unterminated quotes and brackets as a
// *scanner.SyntaxError instead.
package htmlmatch
