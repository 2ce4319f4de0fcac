package parser

import (
	"testing"
	"time"

	"threadcache-backend/lib/htmlutil"

	"github.com/stretchr/testify/require"
)

func TestShortField(t *testing.T) {
	plain := "Overview: stuff\nThread Updated: 2024-01-02\nDeveloper/Publisher: Studio X\nVersion: 0.9 Public\nOS: Windows"

	version, ok := shortField(plain, versionLabels)
	require.True(t, ok)
	require.Equal(t, "0.9 Public", version)

	developer, ok := shortField(plain, developerLabels)
	require.True(t, ok)
	require.Equal(t, "Studio X", developer)

	_, ok = shortField("nothing labelled here", versionLabels)
	require.False(t, ok)
}

func TestTruncateSection(t *testing.T) {
	cases := []struct {
		name   string
		tail   string
		expect string
	}{
		{
			name:   "stops at seven blank lines",
			tail:   "first\nsecond\n\n\n\n\n\n\n\nunrelated",
			expect: "first\nsecond",
		},
		{
			name:   "stops before download label",
			tail:   "story text\n\nDownload\nWin: MEGA",
			expect: "story text\n",
		},
		{
			name:   "stops at consecutive labelled lines",
			tail:   "story text\nmore story\n\nRelease Date\n: 2024-01-01\nDeveloper: Studio\nVersion: 1",
			expect: "story text\nmore story\n",
		},
		{
			name:   "single labelled line is kept",
			tail:   "story text\nNote: this is important.\nend",
			expect: "story text\nNote: this is important.\nend",
		},
		{
			name:   "urls are not labels",
			tail:   "see https://example.com\nhttps://example.org\nend",
			expect: "see https://example.com\nhttps://example.org\nend",
		},
	}
	for _, test := range cases {
		require.Equal(t, test.expect, truncateSection(test.tail), test.name)
	}
}

func TestPickLongField(t *testing.T) {
	changelog := [2]string{"v1.0: initial release of the game", ""}

	cases := []struct {
		name       string
		candidates [2]string
		expect     string
	}{
		{
			name:       "longer wins",
			candidates: [2]string{"short text", "a longer description text"},
			expect:     "a longer description text",
		},
		{
			name:       "longer bled into the changelog",
			candidates: [2]string{"the story\nv1.0: initial release of the game", "the story"},
			expect:     "the story",
		},
		{
			name:       "both bled",
			candidates: [2]string{"story v1.0: initial release of the game", "v1.0: initial release of the game"},
			expect:     "story v1.0: initial release of the game",
		},
		{
			name:       "only one candidate",
			candidates: [2]string{"", "dom text"},
			expect:     "dom text",
		},
	}
	for _, test := range cases {
		require.Equal(t, test.expect, pickLongField(test.candidates, changelog), test.name)
	}
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		text   string
		expect time.Time
		ok     bool
	}{
		{text: "2024-03-05", expect: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), ok: true},
		{text: "2024-03-05 (v1.4)", expect: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), ok: true},
		{text: "March 5, 2024", expect: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), ok: true},
		{text: "", ok: false},
		{text: "soon", ok: false},
	}
	for _, test := range cases {
		parsed, ok := parseDate(test.text)
		require.Equal(t, test.ok, ok, test.text)
		if ok {
			require.True(t, test.expect.Equal(parsed), "%s parsed to %v", test.text, parsed)
		}
	}
}

func TestTruncateToDay(t *testing.T) {
	value := time.Date(2024, time.March, 5, 23, 59, 59, 999, time.UTC)
	require.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC).Unix(), truncateToDay(value))

	offset := time.FixedZone("UTC+9", 9*60*60)
	value = time.Date(2024, time.March, 6, 2, 0, 0, 0, offset)
	require.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC).Unix(), truncateToDay(value))
}

func TestTitleFields(t *testing.T) {
	cases := []struct {
		title     string
		name      string
		version   string
		developer string
	}{
		{title: "[v1.4] My Game [RenPy] [Completed]", name: "My Game", version: "v1.4"},
		{title: "My Game [v0.3.1] [Studio X]", name: "My Game", version: "v0.3.1", developer: "Studio X"},
		{title: "My Game [Ep. 2] [Studio X]", name: "My Game", developer: "Studio X"},
		{title: "Plain Title", name: "Plain Title"},
	}
	for _, test := range cases {
		name, version, developer := titleFields(test.title)
		require.Equal(t, test.name, name, test.title)
		require.Equal(t, test.version, version, test.title)
		require.Equal(t, test.developer, developer, test.title)
	}
}

func TestDomLongField(t *testing.T) {
	root, err := htmlutil.Load([]byte(`<div class="bbWrapper">
<b>Overview</b>: A quiet town.<br>Nothing happens.<br>
<b>Developer</b>: Studio X<br>
</div>`))
	require.NoError(t, err)
	wrapper, ok := root.FindByClass("bbWrapper")
	require.True(t, ok)

	require.Equal(t, "A quiet town.\nNothing happens.", domLongField(wrapper, descriptionLabels))
	require.Equal(t, "", domLongField(wrapper, changelogLabels))
}
