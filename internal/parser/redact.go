package parser

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"threadcache-backend/lib/htmlutil"
)

// linkRedactor keeps third party links out of published records. Instead of
// the url it emits an expression that selects the same anchor again in the
// document, which only a client holding the page can evaluate.
type linkRedactor struct {
	site Site
	// every anchor of the document in document order.
	anchors []htmlutil.Anchor
}

func newLinkRedactor(site Site, root htmlutil.View) linkRedactor {
	return linkRedactor{site: site, anchors: root.Anchors()}
}

// linkPrefix is the scheme and host of href up to and including the slash
// that starts the path.
func linkPrefix(href string) string {
	start := 0
	if i := strings.Index(href, "://"); i >= 0 {
		start = i + len("://")
	} else if strings.HasPrefix(href, "//") {
		start = len("//")
	}
	slash := strings.Index(href[start:], "/")
	if slash < 0 {
		return href
	}
	return href[:start+slash+1]
}

// LinkExpression builds the positional expression selecting the index-th
// (1-based) anchor whose href starts with prefix. It returns false when the
// prefix cannot be quoted.
func LinkExpression(prefix string, index int) (string, bool) {
	quote := "'"
	if strings.Contains(prefix, "'") {
		if strings.Contains(prefix, `"`) {
			return "", false
		}
		quote = `"`
	}
	return fmt.Sprintf("(//a[starts-with(@href,%s%s%s)])[%d]", quote, prefix, quote, index), true
}

// redact returns href when it points to the site itself and a positional
// expression otherwise. It never returns a third party url, when the anchor
// cannot be located the result is empty.
func (r linkRedactor) redact(href string) string {
	link, err := r.site.resolve(href)
	if err != nil || link.Host == "" {
		return ""
	}
	if r.site.IsTrustedHost(link.Hostname()) {
		// absolute links on the site are published exactly as written.
		if raw, err := url.Parse(strings.TrimSpace(href)); err == nil && raw.IsAbs() {
			return href
		}
		return link.String()
	}

	prefix := linkPrefix(href)
	index := 0
	for _, a := range r.anchors {
		if !strings.HasPrefix(a.Href, prefix) {
			continue
		}
		index++
		if a.Href != href {
			continue
		}
		expr, ok := LinkExpression(prefix, index)
		if !ok {
			return ""
		}
		return expr
	}
	return ""
}

var linkExpressionRegex = regexp.MustCompile(`^\(//a\[starts-with\(@href,(?:'([^']*)'|"([^"]*)")\)\]\)\[(\d+)\]$`)

// ResolveLink evaluates an expression built by LinkExpression against a
// document and returns the href of the anchor it selects.
func ResolveLink(data []byte, expr string) (string, bool) {
	root, err := htmlutil.Load(data)
	if err != nil {
		return "", false
	}
	return resolveLink(root, expr)
}

func resolveLink(root htmlutil.View, expr string) (string, bool) {
	match := linkExpressionRegex.FindStringSubmatch(strings.TrimSpace(expr))
	if match == nil {
		return "", false
	}
	prefix := match[1]
	if prefix == "" {
		prefix = match[2]
	}
	index, err := strconv.Atoi(match[3])
	if err != nil || index < 1 {
		return "", false
	}

	seen := 0
	for _, a := range root.Anchors() {
		if !strings.HasPrefix(a.Href, prefix) {
			continue
		}
		seen++
		if seen == index {
			return a.Href, true
		}
	}
	return "", false
}
