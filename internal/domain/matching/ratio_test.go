package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio_IdenticalStrings(t *testing.T) {
	assert.Equal(t, 1.0, Ratio("hello world", "hello world"))
}

func TestRatio_BothEmpty(t *testing.T) {
	assert.Equal(t, 1.0, Ratio("", ""))
}

func TestRatio_OneEmpty(t *testing.T) {
	assert.Equal(t, 0.0, Ratio("hello", ""))
}

func TestRatio_Disjoint(t *testing.T) {
	assert.Equal(t, 0.0, Ratio("abc", "xyz"))
}

func TestRatio_Symmetric(t *testing.T) {
	a, b := "what is your name", "what is your name?"
	assert.Equal(t, Ratio(a, b), Ratio(b, a))
}

func TestRatio_KnownValue(t *testing.T) {
	// "abcd" vs "bcde": matching block "bcd" (3 runes), total length 8.
	assert.InDelta(t, 0.75, Ratio("abcd", "bcde"), 1e-9)
}

func TestRatio_MultipleBlocks(t *testing.T) {
	// "abXcd" vs "abYcd": blocks "ab" and "cd" match, 4 of 10 runes.
	assert.InDelta(t, 0.8, Ratio("abXcd", "abYcd"), 1e-9)
}

func TestRatio_TrailingPunctuation(t *testing.T) {
	got := Ratio("what is your name", "what is your name?")
	assert.Greater(t, got, 0.9)
}

func TestRatio_RuneBased(t *testing.T) {
	// Multi-byte characters count as single units.
	assert.Equal(t, 1.0, Ratio("héllo", "héllo"))
	assert.InDelta(t, 0.8, Ratio("héllo", "hállo"), 1e-9)
}

func TestRatio_Range(t *testing.T) {
	cases := [][2]string{
		{"a", "ab"},
		{"short", "a much longer sentence entirely"},
		{"same same", "same same"},
	}
	for _, c := range cases {
		r := Ratio(c[0], c[1])
		assert.GreaterOrEqual(t, r, 0.0)
		assert.LessOrEqual(t, r, 1.0)
	}
}
