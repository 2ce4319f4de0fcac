package commands

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNearestTag(t *testing.T) {
	closest, score := nearestTag("3dcgg")
	require.Equal(t, "3dcg", closest)
	require.Greater(t, score, 0.9)
}

func TestClip(t *testing.T) {
	require.Equal(t, "a b", clip("a\nb", 10))
	require.Equal(t, "abc...", clip("abcdef", 3))
}
