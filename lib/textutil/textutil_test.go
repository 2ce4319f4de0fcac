package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeWhitespace(t *testing.T) {
	cases := []struct {
		text   string
		expect string
	}{
		{text: "  a \t b  ", expect: "a b"},
		{text: "line one   \nline two", expect: "line one\nline two"},
		{text: "a\r\nb", expect: "a\nb"},
		{text: "a\n\n\n\n\nb", expect: "a\n\nb"},
		{text: "a \u200bb", expect: "a b"},
		{text: "\n\n", expect: ""},
	}
	for _, test := range cases {
		require.Equal(t, test.expect, SanitizeWhitespace(test.text), "%q", test.text)
	}
}

func TestSanitizeWhitespaceIdempotent(t *testing.T) {
	inputs := []string{"x  y\n\n\n\nz ", " a  \n b\r\n", ""}
	for _, text := range inputs {
		once := SanitizeWhitespace(text)
		require.Equal(t, once, SanitizeWhitespace(once))
	}
}

func TestNormalizeLabel(t *testing.T) {
	require.Equal(t, "on hold", NormalizeLabel("  On\u200bHold "))
	require.Equal(t, "ren'py", NormalizeLabel("Ren'Py"))
	require.Equal(t, "download:", NormalizeLabel("DOWNLOAD:"))
}

func TestIsPunctuation(t *testing.T) {
	require.True(t, IsPunctuation(""))
	require.True(t, IsPunctuation(" - "))
	require.True(t, IsPunctuation(" | \n"))
	require.True(t, IsPunctuation(": "))
	require.False(t, IsPunctuation("MEGA"))
	require.False(t, IsPunctuation("- Win -"))
}

func TestMatchName(t *testing.T) {
	require.True(t, MatchName("Big  Cat Games", []string{"catgames"}))
	require.False(t, MatchName("Studio", []string{"cat"}))
}
