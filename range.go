package htmlmatch

import (
	"encoding/json"
	"fmt"
)

// Range is a half-open [Start, End) byte range in the source.
type Range struct {
	Start int
	End   int
}

// Contains reports whether pos lies strictly inside the range. A position on
// the first or past the last character of a tag is not inside the tag.
func (r Range) Contains(pos int) bool {
	return r.Start < pos && pos < r.End
}

// Text returns the source text covered by the range.
func (r Range) Text(src string) string {
	return src[r.Start:r.End]
}

// MarshalJSON encodes the range as a two-element array.
func (r Range) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{r.Start, r.End})
}

// UnmarshalJSON decodes a range from a two-element array.
func (r *Range) UnmarshalJSON(data []byte) error {
	var v []int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if len(v) != 2 {
		return fmt.Errorf("range must have 2 elements, got %d", len(v))
	}
	r.Start, r.End = v[0], v[1]
	return nil
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}
