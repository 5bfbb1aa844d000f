package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionToText(t *testing.T) {
	cases := []struct {
		pos  Position
		text string
	}{
		{Position{Row: 0, Col: 0}, "A1"},
		{Position{Row: 0, Col: 25}, "Z1"},
		{Position{Row: 0, Col: 26}, "AA1"},
		{Position{Row: 0, Col: 27}, "AB1"},
		{Position{Row: 16383, Col: 16383}, "XFD16384"},
		{InvalidPosition, ""},
		{Position{Row: -1, Col: 0}, ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.text, c.pos.ToText(), "Position %+v", c.pos)
	}
}

func TestPositionFromText(t *testing.T) {
	valid := map[string]Position{
		"A1":       {Row: 0, Col: 0},
		"a1":       {Row: 0, Col: 0},
		"Z1":       {Row: 0, Col: 25},
		"AA1":      {Row: 0, Col: 26},
		"XFD16384": {Row: 16383, Col: 16383},
	}
	for text, want := range valid {
		require.Equal(t, want, FromText(text), "FromText(%q)", text)
	}

	invalid := []string{
		"",
		"1",
		"A",
		"A0",
		"XFE1",
		"XFD16385",
		"AAAA1",
		"A 1",
		"A1A",
		"-A1",
	}
	for _, text := range invalid {
		assert.False(t, FromText(text).IsValid(), "FromText(%q) should be invalid", text)
	}
}

func TestPositionLess(t *testing.T) {
	assert.True(t, Position{Row: 0, Col: 0}.Less(Position{Row: 0, Col: 1}))
	assert.True(t, Position{Row: 0, Col: 5}.Less(Position{Row: 1, Col: 0}))
	assert.False(t, Position{Row: 1, Col: 0}.Less(Position{Row: 0, Col: 5}))
	assert.False(t, Position{Row: 2, Col: 2}.Less(Position{Row: 2, Col: 2}))
}

func TestPositionRoundTrip(t *testing.T) {
	for _, text := range []string{"A1", "Z1", "AA1", "XFD16384", "B2"} {
		pos := FromText(text)
		require.True(t, pos.IsValid())
		assert.Equal(t, text, pos.ToText())
	}
}
