package parser

import (
	"testing"

	"threadcache-backend/lib/htmlutil"

	"github.com/stretchr/testify/require"
)

const redactPage = `<html><body>
<a href="https://thirdparty.example/xyz789">first</a>
<a href="https://other.example/abc123">other</a>
<a href="https://thirdparty.example/abc123">second</a>
<a href="https://quote.example/it's">quote</a>
<a href="/threads/my-game.1000/">internal</a>
</body></html>`

func TestLinkPrefix(t *testing.T) {
	cases := []struct {
		href   string
		expect string
	}{
		{href: "https://thirdparty.example/abc123", expect: "https://thirdparty.example/"},
		{href: "https://thirdparty.example", expect: "https://thirdparty.example"},
		{href: "//cdn.example/x/y", expect: "//cdn.example/"},
		{href: "http://host.example:8080/a?b=c", expect: "http://host.example:8080/"},
	}
	for _, test := range cases {
		require.Equal(t, test.expect, linkPrefix(test.href))
	}
}

func TestRedactLink(t *testing.T) {
	root, err := htmlutil.Load([]byte(redactPage))
	require.NoError(t, err)
	redactor := newLinkRedactor(DefaultSite, root)

	cases := []struct {
		href   string
		expect string
	}{
		{href: "https://thirdparty.example/abc123", expect: "(//a[starts-with(@href,'https://thirdparty.example/')])[2]"},
		{href: "https://thirdparty.example/xyz789", expect: "(//a[starts-with(@href,'https://thirdparty.example/')])[1]"},
		{href: "https://other.example/abc123", expect: "(//a[starts-with(@href,'https://other.example/')])[1]"},
		{href: "https://quote.example/it's", expect: "(//a[starts-with(@href,'https://quote.example/')])[1]"},
		// not present in the document
		{href: "https://thirdparty.example/missing", expect: ""},
		{href: "mailto:someone@example.com", expect: ""},
		{href: "/threads/my-game.1000/", expect: "https://f95zone.to/threads/my-game.1000/"},
		{href: "https://attachments.f95zone.to/a.zip", expect: "https://attachments.f95zone.to/a.zip"},
		// absolute site links are not re-serialized
		{href: "HTTPS://f95zone.to/threads/my-game.1000/", expect: "HTTPS://f95zone.to/threads/my-game.1000/"},
		{href: "//attachments.f95zone.to/b.zip", expect: "https://attachments.f95zone.to/b.zip"},
		{href: "https://notf95zone.to/a.zip", expect: ""},
	}
	for _, test := range cases {
		require.Equal(t, test.expect, redactor.redact(test.href), test.href)
	}
}

func TestLinkExpressionQuoting(t *testing.T) {
	expr, ok := LinkExpression("https://it's.example/", 3)
	require.True(t, ok)
	require.Equal(t, `(//a[starts-with(@href,"https://it's.example/")])[3]`, expr)

	_, ok = LinkExpression(`https://"it's".example/`, 1)
	require.False(t, ok)
}

func TestResolveLink(t *testing.T) {
	data := []byte(redactPage)
	cases := []struct {
		expr   string
		expect string
		ok     bool
	}{
		{expr: "(//a[starts-with(@href,'https://thirdparty.example/')])[2]", expect: "https://thirdparty.example/abc123", ok: true},
		{expr: `(//a[starts-with(@href,"https://other.example/")])[1]`, expect: "https://other.example/abc123", ok: true},
		{expr: "(//a[starts-with(@href,'https://thirdparty.example/')])[3]", ok: false},
		{expr: "(//a[starts-with(@href,'https://thirdparty.example/')])[0]", ok: false},
		{expr: "https://thirdparty.example/abc123", ok: false},
		{expr: "", ok: false},
	}
	for _, test := range cases {
		href, ok := ResolveLink(data, test.expr)
		require.Equal(t, test.ok, ok, test.expr)
		require.Equal(t, test.expect, href, test.expr)
	}
}
