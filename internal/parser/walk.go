package parser

import (
	"strings"

	"threadcache-backend/lib/htmlutil"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// the class of the element wrapping the rendered post content.
const contentWrapperClass = "bbWrapper"

func deepestFirstChild(n *html.Node) *html.Node {
	for n.FirstChild != nil {
		n = n.FirstChild
	}
	return n
}

func isWalkBoundary(n *html.Node) bool {
	return htmlutil.HasClass(n, contentWrapperClass) || htmlutil.IsElement(n, atom.Article)
}

// nextInPost returns the node after n in a forward walk over siblings that
// climbs to the parent once a sibling list runs out. It returns nil instead
// of leaving the post content.
func nextInPost(n *html.Node) *html.Node {
	for n != nil {
		if n.NextSibling != nil {
			return n.NextSibling
		}
		n = n.Parent
		if n == nil || isWalkBoundary(n) {
			return nil
		}
	}
	return nil
}

func isBold(n *html.Node) bool {
	return htmlutil.IsElement(n, atom.B) || htmlutil.IsElement(n, atom.Strong)
}

func isCentered(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	style, ok := htmlutil.Attr(n, "style")
	if !ok {
		return false
	}
	style = strings.ReplaceAll(strings.ToLower(style), " ", "")
	return strings.Contains(style, "text-align:center")
}

// isSectionStart reports whether n opens a new section of the post: a bold
// heading, a centered block, or an element wrapping nothing but a bold
// heading.
func isSectionStart(n *html.Node) bool {
	if isBold(n) || isCentered(n) {
		return true
	}
	if n.Type != html.ElementNode {
		return false
	}
	var only *html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) == "" {
			continue
		}
		if only != nil {
			return false
		}
		only = c
	}
	return only != nil && isBold(only)
}

func isMedia(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.Img:
		// emoticons are inline text decoration
		return !htmlutil.HasClass(n, "smilie")
	case atom.Video, atom.Iframe, atom.Picture:
		return true
	}
	return false
}

func containsMatch(n *html.Node, match func(*html.Node) bool) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if match(c) || containsMatch(c, match) {
			return true
		}
	}
	return false
}

// isLink reports whether n is a text link, links wrapping an image are media.
func isLink(n *html.Node) bool {
	if !htmlutil.IsElement(n, atom.A) {
		return false
	}
	if _, ok := htmlutil.Attr(n, "href"); !ok {
		return false
	}
	return !containsMatch(n, isMedia)
}
