package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseReviews(t *testing.T) {
	reviews, err := ParseReviews(reviewsPage)
	require.NoError(t, err)

	expected := ParsedReviews{
		Total: 12,
		Items: []ParsedReview{
			{
				User:      "Alice",
				Score:     5,
				Message:   "Great game.\nLoved the art.",
				Likes:     5,
				Timestamp: 1700000000,
			},
			{
				User:      "Dave",
				Score:     2,
				Message:   "Too short.",
				Likes:     0,
				Timestamp: 1700086400,
			},
		},
	}
	diff := cmp.Diff(expected, reviews)
	if diff != "" {
		t.Fatal("unexpected reviews (-want +got)\n", diff)
	}
}

func TestParseReviewsWrongSite(t *testing.T) {
	_, err := ParseReviews(unrelatedPage)
	require.ErrorIs(t, err, ErrWrongSite)
}

func TestCountLikes(t *testing.T) {
	cases := []struct {
		text   string
		expect int
	}{
		{text: "", expect: 0},
		{text: "Bob", expect: 1},
		{text: "Bob and Carol", expect: 2},
		{text: "Bob, Carol and Erin", expect: 3},
		{text: "Bob, Carol and 3 others", expect: 5},
		{text: "Bob and 1,204 others", expect: 1205},
	}
	for _, test := range cases {
		require.Equal(t, test.expect, countLikes(test.text), test.text)
	}
}
