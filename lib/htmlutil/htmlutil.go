package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// GetText concatenates every text node under node, with nothing in between.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	if isScriptOrStyle(node) {
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// JoinedText collects every text node under node and joins them with sep, the
// same way the "text with separator" helpers of most tree libraries do.
func JoinedText(node *html.Node, sep string) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n == nil {
			return
		}
		if n.Type == html.TextNode {
			parts = append(parts, n.Data)
			return
		}
		if isScriptOrStyle(n) {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)
	return strings.Join(parts, sep)
}

func isScriptOrStyle(node *html.Node) bool {
	return node.Type == html.ElementNode &&
		(node.DataAtom == atom.Script || node.DataAtom == atom.Style)
}

// Attr returns the value of the attribute key on node.
func Attr(node *html.Node, key string) (string, bool) {
	if node == nil {
		return "", false
	}
	for _, a := range node.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// HasClass reports whether node's class attribute contains name.
func HasClass(node *html.Node, name string) bool {
	if node == nil || node.Type != html.ElementNode {
		return false
	}
	classes, ok := Attr(node, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(classes) {
		if c == name {
			return true
		}
	}
	return false
}

// IsElement reports whether node is an element of the given atom.
func IsElement(node *html.Node, a atom.Atom) bool {
	return node != nil && node.Type == html.ElementNode && node.DataAtom == a
}

type Anchor struct {
	Name string
	Href string
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// AnchorName renders the visible name of a link the way it reads on the page.
func AnchorName(n *html.Node) string {
	name := GetText(n)
	name = removeNonPrintable(name)
	name = strings.Trim(name, " \t\n")
	name = innerWhitespace.ReplaceAllString(name, " ")
	return name
}

// GetAnchors returns the name and raw href of every node in sel that has an
// href attribute, in document order.
func GetAnchors(sel *goquery.Selection) []Anchor {
	anchors := []Anchor{}
	for _, n := range sel.Nodes {
		href, ok := Attr(n, "href")
		if !ok {
			continue
		}
		anchors = append(anchors, Anchor{
			Name: AnchorName(n),
			Href: href,
		})
	}
	return anchors
}

var blockElements = map[atom.Atom]bool{
	atom.Div:        true,
	atom.P:          true,
	atom.Li:         true,
	atom.Ul:         true,
	atom.Ol:         true,
	atom.Tr:         true,
	atom.Blockquote: true,
	atom.Button:     true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
}

// RenderText renders node as plain text the way a browser would lay it out
// on lines: line breaks become newlines and block elements end their line.
func RenderText(node *html.Node) string {
	var out strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			out.WriteString(n.Data)
			return
		case isScriptOrStyle(n):
			return
		case IsElement(n, atom.Br):
			out.WriteString("\n")
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockElements[n.DataAtom] {
			out.WriteString("\n")
		}
	}
	if node != nil {
		walk(node)
	}
	return out.String()
}
