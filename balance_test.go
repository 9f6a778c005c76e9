package htmlmatch

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func rng(start, end int) *Range {
	return &Range{Start: start, End: end}
}

func TestBalancedOutward(t *testing.T) {
	tests := []struct {
		name string
		pos  int
		opts *Options
		want []BalancedTag
	}{
		{
			name: "documentStart",
			pos:  0,
			want: []BalancedTag{},
		},
		{
			name: "rootOpenTag",
			pos:  1,
			want: []BalancedTag{
				{Name: "ul", Open: Range{0, 4}, Close: rng(126, 131)},
			},
		},
		{
			name: "li",
			pos:  11,
			want: []BalancedTag{
				{Name: "li", Open: Range{9, 13}, Close: rng(79, 84)},
				{Name: "ul", Open: Range{0, 4}, Close: rng(126, 131)},
			},
		},
		{
			name: "voidElement",
			pos:  35,
			want: []BalancedTag{
				{Name: "img", Open: Range{29, 48}},
				{Name: "a", Open: Range{13, 24}, Close: rng(75, 79)},
				{Name: "li", Open: Range{9, 13}, Close: rng(79, 84)},
				{Name: "ul", Open: Range{0, 4}, Close: rng(126, 131)},
			},
		},
		{
			name: "secondItem",
			pos:  110,
			want: []BalancedTag{
				{Name: "b", Open: Range{109, 112}, Close: rng(112, 116)},
				{Name: "a", Open: Range{93, 104}, Close: rng(116, 120)},
				{Name: "li", Open: Range{89, 93}, Close: rng(120, 125)},
				{Name: "ul", Open: Range{0, 4}, Close: rng(126, 131)},
			},
		},
		{
			name: "xml",
			pos:  70,
			opts: &Options{XML: true},
			want: []BalancedTag{
				{Name: "link", Open: Range{69, 90}},
				{Name: "img", Open: Range{37, 56}, Close: rng(99, 105)},
				{Name: "a", Open: Range{13, 24}, Close: rng(126, 130)},
				{Name: "li", Open: Range{9, 13}, Close: rng(130, 135)},
				{Name: "ul", Open: Range{0, 4}, Close: rng(177, 182)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := htmlDoc
			if tt.opts != nil && tt.opts.XML {
				doc = xmlDoc
			}
			got, err := BalancedOutward(doc, tt.pos, tt.opts)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("BalancedOutward(%d) mismatch (-want +got):\n%s", tt.pos, diff)
			}
		})
	}
}

func TestBalancedOutwardNesting(t *testing.T) {
	m := NewMatcher(nil)
	for pos := 0; pos <= len(htmlDoc); pos++ {
		tags, err := m.BalancedOutward(htmlDoc, pos)
		require.NoError(t, err)
		for i := 1; i < len(tags); i++ {
			prev, cur := tags[i-1], tags[i]
			require.LessOrEqual(t, cur.Open.Start, prev.Open.Start, "pos %d", pos)
			require.NotNil(t, cur.Close, "pos %d: ancestor %s must be paired", pos, cur.Name)
			prevEnd := prev.Open.End
			if prev.Close != nil {
				prevEnd = prev.Close.End
			}
			require.GreaterOrEqual(t, cur.Close.End, prevEnd, "pos %d", pos)
		}
	}
}

func TestBalancedInward(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		pos  int
		want []BalancedTag
	}{
		{
			name: "firstChildChain",
			doc:  htmlDoc,
			pos:  12,
			want: []BalancedTag{
				{Name: "li", Open: Range{9, 13}, Close: rng(79, 84)},
				{Name: "a", Open: Range{13, 24}, Close: rng(75, 79)},
				{Name: "img", Open: Range{29, 48}},
			},
		},
		{
			name: "pairedLeaf",
			doc:  htmlDoc,
			pos:  95,
			want: []BalancedTag{
				{Name: "a", Open: Range{93, 104}, Close: rng(116, 120)},
				{Name: "b", Open: Range{109, 112}, Close: rng(112, 116)},
			},
		},
		{
			name: "noChildren",
			doc:  htmlDoc,
			pos:  70,
			want: []BalancedTag{
				{Name: "b", Open: Range{68, 71}, Close: rng(71, 75)},
			},
		},
		{
			name: "selfClosing",
			doc:  htmlDoc,
			pos:  50,
			want: []BalancedTag{
				{Name: "link", Open: Range{48, 67}},
			},
		},
		{
			name: "firstFoundWins",
			doc:  "<a><b><c></c><d/></b><e></e></a>",
			pos:  1,
			want: []BalancedTag{
				{Name: "a", Open: Range{0, 3}, Close: rng(28, 32)},
				{Name: "b", Open: Range{3, 6}, Close: rng(17, 21)},
				{Name: "c", Open: Range{6, 9}, Close: rng(9, 13)},
			},
		},
		{
			name: "outside",
			doc:  htmlDoc,
			pos:  0,
			want: []BalancedTag{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BalancedInward(tt.doc, tt.pos, nil)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("BalancedInward(%d) mismatch (-want +got):\n%s", tt.pos, diff)
			}
		})
	}
}

func TestMatcherReuse(t *testing.T) {
	// queries of different kinds share the pool of one matcher
	m := NewMatcher(nil)
	for i := 0; i < 3; i++ {
		in, err := m.BalancedInward(htmlDoc, 12)
		require.NoError(t, err)
		require.Len(t, in, 3)

		out, err := m.BalancedOutward(htmlDoc, 35)
		require.NoError(t, err)
		require.Len(t, out, 4)

		tag, err := m.Match(htmlDoc, 110)
		require.NoError(t, err)
		require.Equal(t, "b", tag.Name)
	}
	require.Empty(t, m.stack)
}
