package parser

import (
	"errors"
	"strings"
	"testing"
	"time"

	"threadcache-backend/lib/htmlutil"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	_ "embed"
)

//go:embed testdata/thread.html
var threadPage []byte

//go:embed testdata/reviews.html
var reviewsPage []byte

//go:embed testdata/unrelated.html
var unrelatedPage []byte

//go:embed testdata/layout_changed.html
var layoutChangedPage []byte

func mustTag(t testing.TB, slug string) Tag {
	tag, ok := TagFromSlug(slug)
	if !ok {
		t.Fatal("unknown tag slug", slug)
	}
	return tag
}

func TestParseThread(t *testing.T) {
	thread, err := ParseThread(threadPage)
	require.NoError(t, err)

	expected := ParsedThread{
		Name:        "My Game",
		Version:     "1.4",
		Developer:   "MyStudio",
		Type:        TYPE_RENPY,
		Status:      STATUS_COMPLETED,
		LastUpdated: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC).Unix(),
		Score:       4.3,
		Votes:       128,
		Description: "A story about a game.\n\nIt has two lines.",
		Changelog:   "v1.4\nFixed the ending.\nAdded new scenes.",
		Tags: []Tag{
			mustTag(t, "3dcg"),
			mustTag(t, "animated"),
			mustTag(t, "male-protagonist"),
		},
		UnknownTags: []string{"brand-new-thing"},
		ImageUrl:    "https://attachments.f95zone.to/2023/11/cover.png",
		PreviewUrls: []string{"https://attachments.f95zone.to/2023/11/shot1.png"},
		Downloads: []DownloadGroup{
			{
				Name: "Win/Linux",
				Mirrors: []Mirror{
					{Name: "MEGA", Link: "(//a[starts-with(@href,'https://mega.nz/')])[1]"},
					{Name: "THIRD", Link: "(//a[starts-with(@href,'https://thirdparty.example/')])[1]"},
					{Name: "THIRD", Link: "(//a[starts-with(@href,'https://thirdparty.example/')])[2]"},
				},
			},
			{
				Name: "Mac",
				Mirrors: []Mirror{
					{Name: "MEGA", Link: "(//a[starts-with(@href,'https://mega.nz/')])[2]"},
					{Name: "ATTACH", Link: "https://f95zone.to/attachments/mygame-mac.zip"},
				},
			},
		},
	}

	diff := cmp.Diff(expected, thread)
	if diff != "" {
		t.Fatal("unexpected thread (-want +got)\n", diff)
	}
}

func TestParseThreadIdempotent(t *testing.T) {
	first, err := ParseThread(threadPage)
	require.NoError(t, err)
	second, err := ParseThread(threadPage)
	require.NoError(t, err)

	diff := cmp.Diff(first, second)
	if diff != "" {
		t.Fatal("parsing the same bytes twice gave different records\n", diff)
	}
}

func TestParseThreadInvariants(t *testing.T) {
	thread, err := ParseThread(threadPage)
	require.NoError(t, err)

	for i := 1; i < len(thread.Tags); i++ {
		require.Less(t, thread.Tags[i-1], thread.Tags[i], "tags must be strictly increasing")
	}
	for _, unknown := range thread.UnknownTags {
		_, known := TagFromSlug(unknown)
		require.False(t, known, "unknown tag %s is a known slug", unknown)
	}

	date := time.Unix(thread.LastUpdated, 0).UTC()
	require.Zero(t, date.Hour())
	require.Zero(t, date.Minute())
	require.Zero(t, date.Second())

	for _, group := range thread.Downloads {
		for _, mirror := range group.Mirrors {
			require.NotContains(t, mirror.Link, "mega.nz/file")
			require.NotContains(t, mirror.Link, "thirdparty.example/abc123")
			if mirror.Link == "" || strings.HasPrefix(mirror.Link, "(//a[") {
				continue
			}
			require.True(t, strings.HasPrefix(mirror.Link, "https://f95zone.to/"), "link %s leaks", mirror.Link)
		}
	}
}

func TestRedactedLinksResolve(t *testing.T) {
	thread, err := ParseThread(threadPage)
	require.NoError(t, err)

	cases := []struct {
		group  int
		mirror int
		href   string
	}{
		{group: 0, mirror: 0, href: "https://mega.nz/file/aaa"},
		{group: 0, mirror: 2, href: "https://thirdparty.example/abc123"},
		{group: 1, mirror: 0, href: "https://mega.nz/file/bbb"},
	}
	for _, test := range cases {
		expr := thread.Downloads[test.group].Mirrors[test.mirror].Link
		href, ok := ResolveLink(threadPage, expr)
		require.True(t, ok, "expression %s did not resolve", expr)
		require.Equal(t, test.href, href)
	}
}

func TestParseThreadErrors(t *testing.T) {
	cases := []struct {
		name     string
		page     []byte
		kind     ErrorKind
		sentinel error
	}{
		{name: "unrelated page", page: unrelatedPage, kind: ERROR_WRONG_SITE, sentinel: ErrWrongSite},
		{name: "empty body", page: []byte{}, kind: ERROR_WRONG_SITE, sentinel: ErrWrongSite},
		{name: "missing starter post", page: layoutChangedPage, kind: ERROR_STRUCTURE_MISSING, sentinel: ErrStructureMissing},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseThread(test.page)
			require.Error(t, err)
			require.ErrorIs(t, err, test.sentinel)

			var perr *ParserError
			require.ErrorAs(t, err, &perr)
			require.Equal(t, test.kind, perr.Kind)
			require.Equal(t, test.page, perr.Dump)
			require.NotEmpty(t, perr.Message)
		})
	}
}

func TestIsSite(t *testing.T) {
	cases := []struct {
		name   string
		markup string
		expect bool
	}{
		{name: "og site name", markup: `<html><head><meta property="og:site_name" content="F95zone"></head></html>`, expect: true},
		{name: "decorated logo alt", markup: `<div class="p-header-logo"><img alt="F95zone  Forum"></div>`, expect: true},
		{name: "other site", markup: `<html><head><meta property="og:site_name" content="Example"></head></html>`, expect: false},
		{name: "no identity", markup: `<html><body>checking</body></html>`, expect: false},
	}
	p := NewParser(DefaultSite)
	for _, test := range cases {
		root, err := htmlutil.Load([]byte(test.markup))
		require.NoError(t, err)
		require.Equal(t, test.expect, p.isSite(root), test.name)
	}

	_, err := p.ParseThread([]byte(`<div class="p-header-logo"><img alt="F95zone Forum"></div>`))
	kind, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, ERROR_STRUCTURE_MISSING, kind)
}

func TestParseThreadCustomSite(t *testing.T) {
	p := NewParser(Site{
		Domain:  "example.org",
		BaseUrl: "https://example.org",
		Name:    "Example",
	})
	_, err := p.ParseThread(layoutChangedPage)
	kind, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, ERROR_WRONG_SITE, kind)

	thread, err := p.ParseThread(threadPage)
	require.NoError(t, err)
	require.Equal(t, "https://example.org/attachments/mygame-mac.zip", thread.Downloads[1].Mirrors[1].Link)
}

func TestRecoverUnhandled(t *testing.T) {
	data := []byte("<html></html>")
	parse := func() (err error) {
		defer recoverUnhandled(data, &err)
		panic(errors.New("boom"))
	}

	err := parse()
	require.ErrorIs(t, err, ErrUnhandled)
	var perr *ParserError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, ERROR_UNHANDLED, perr.Kind)
	require.Contains(t, perr.Error(), "boom")
	require.NotEmpty(t, perr.Trace)
	require.Equal(t, data, perr.Dump)
}
