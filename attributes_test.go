package htmlmatch

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpotapov/htmlmatch/scanner"
)

func TestAttributes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []AttributeToken
	}{
		{
			name: "mixed",
			src:  `foo bar="baz" *ngIf={a == b} a=b `,
			want: []AttributeToken{
				{Name: "foo", NameStart: 0, NameEnd: 3},
				{Name: "bar", NameStart: 4, NameEnd: 7, Value: `"baz"`, ValueStart: 8, ValueEnd: 13, HasValue: true},
				{Name: "*ngIf", NameStart: 14, NameEnd: 19, Value: "{a == b}", ValueStart: 20, ValueEnd: 28, HasValue: true},
				{Name: "a", NameStart: 29, NameEnd: 30, Value: "b", ValueStart: 31, ValueEnd: 32, HasValue: true},
			},
		},
		{
			name: "frameworkNames",
			src:  ` [ngFor]="x" (click)="go()" #ref @submit.prevent {...props}`,
			want: []AttributeToken{
				{Name: "[ngFor]", NameStart: 1, NameEnd: 8, Value: `"x"`, ValueStart: 9, ValueEnd: 12, HasValue: true},
				{Name: "(click)", NameStart: 13, NameEnd: 20, Value: `"go()"`, ValueStart: 21, ValueEnd: 27, HasValue: true},
				{Name: "#ref", NameStart: 28, NameEnd: 32},
				{Name: "@submit.prevent", NameStart: 33, NameEnd: 48},
				{Name: "{...props}", NameStart: 49, NameEnd: 59},
			},
		},
		{
			name: "singleQuotes",
			src:  `title='a "b" c'`,
			want: []AttributeToken{
				{Name: "title", NameStart: 0, NameEnd: 5, Value: `'a "b" c'`, ValueStart: 6, ValueEnd: 15, HasValue: true},
			},
		},
		{
			name: "nestedBraces",
			src:  `style={{color: "}"}}`,
			want: []AttributeToken{
				{Name: "style", NameStart: 0, NameEnd: 5, Value: `{{color: "}"}}`, ValueStart: 6, ValueEnd: 20, HasValue: true},
			},
		},
		{
			name: "junkIsSkipped",
			src:  `= "x" a ! b`,
			want: []AttributeToken{
				{Name: "x", NameStart: 3, NameEnd: 4},
				{Name: "a", NameStart: 6, NameEnd: 7},
				{Name: "b", NameStart: 10, NameEnd: 11},
			},
		},
		{
			name: "emptyValue",
			src:  `a=`,
			want: []AttributeToken{
				{Name: "a", NameStart: 0, NameEnd: 1},
			},
		},
		{
			name: "unterminatedQuote",
			src:  `a="b c`,
			want: []AttributeToken{
				{Name: "a", NameStart: 0, NameEnd: 1, Value: `"b c`, ValueStart: 2, ValueEnd: 6, HasValue: true},
			},
		},
		{
			name: "empty",
			src:  "   ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Attributes(tt.src)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Attributes(%q) mismatch (-want +got):\n%s", tt.src, diff)
			}
		})
	}
}

func TestAttributesStrict(t *testing.T) {
	_, err := attributes(`a="b c`, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, scanner.ErrUnterminated))

	attrs, err := attributes(`a="b" c={d}`, true)
	require.NoError(t, err)
	assert.Len(t, attrs, 2)
}

func TestAttributeToken_UnquotedValue(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{`"baz"`, "baz"},
		{`'baz'`, "baz"},
		{`{a == b}`, "a == b"},
		{`"baz'`, `"baz'`},
		{`b`, "b"},
		{`""`, ""},
		{``, ""},
	}
	for _, tt := range tests {
		a := AttributeToken{Value: tt.value, HasValue: tt.value != ""}
		assert.Equal(t, tt.want, a.UnquotedValue(), "value %q", tt.value)
	}
}
