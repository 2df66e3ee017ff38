package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Segments(t *testing.T) {
	tpl := Parse("Attend {address}{date || fallbackDate}, as directed.")
	require.Equal(t, Template{
		{Kind: SegmentLiteral, Text: "Attend "},
		{Kind: SegmentPlaceholder, Names: []string{"address"}},
		{Kind: SegmentFallback, Names: []string{"date", "fallbackDate"}},
		{Kind: SegmentLiteral, Text: ", as directed."},
	}, tpl)
}

func TestParse_LiteralBraces(t *testing.T) {
	tests := []struct {
		in   string
		want Template
	}{
		{"no placeholders", Template{{Kind: SegmentLiteral, Text: "no placeholders"}}},
		{"unterminated {name", Template{{Kind: SegmentLiteral, Text: "unterminated {name"}}},
		{"{not a name}", Template{{Kind: SegmentLiteral, Text: "{not a name}"}}},
		{"{}", Template{{Kind: SegmentLiteral, Text: "{}"}}},
		{"{a ||}", Template{{Kind: SegmentLiteral, Text: "{a ||}"}}},
		{"{{x}", Template{
			{Kind: SegmentLiteral, Text: "{"},
			{Kind: SegmentPlaceholder, Names: []string{"x"}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.in))
		})
	}
}

func TestParse_Empty(t *testing.T) {
	require.Empty(t, Parse(""))
}

func TestTemplate_Placeholders(t *testing.T) {
	tpl := Parse("{a} and {b || c} then {a} or {c || d || e}")
	require.Equal(t, []string{"a", "b", "c", "d", "e"}, tpl.Placeholders())
}

func TestTemplate_String(t *testing.T) {
	tpl := Parse("Go to {a||b} at {time}.")
	require.Equal(t, "Go to {a || b} at {time}.", tpl.String())
	require.Equal(t, tpl, Parse(tpl.String()))
}
