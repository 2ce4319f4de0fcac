package htmlutil

import (
	"bytes"
	"strings"

	"threadcache-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// View is a read-only window over a parsed html tree. It only exposes the
// handful of queries the extractors need, "not found" is always reported
// through the ok return and never through an error.
type View struct {
	node *html.Node
}

// Load parses raw markup into a View rooted at the document node.
func Load(data []byte) (View, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return View{}, err
	}
	if len(doc.Nodes) == 0 {
		return View{}, nil
	}
	return View{node: doc.Nodes[0]}, nil
}

func (v View) Node() *html.Node {
	return v.node
}

func (v View) Valid() bool {
	return v.node != nil
}

func (v View) selection() *goquery.Selection {
	return goquery.NewDocumentFromNode(v.node).Selection
}

// Find runs a css selector below the view.
func (v View) Find(selector string) *goquery.Selection {
	if v.node == nil {
		return &goquery.Selection{}
	}
	return v.selection().Find(selector)
}

// FindByClass returns the first descendant carrying the class name.
func (v View) FindByClass(name string) (View, bool) {
	var found *html.Node
	v.walkElements(func(n *html.Node) bool {
		if HasClass(n, name) {
			found = n
			return false
		}
		return true
	})
	return View{node: found}, found != nil
}

// FindAllByClass returns every descendant carrying the class name, in
// document order.
func (v View) FindAllByClass(name string) []View {
	var out []View
	v.walkElements(func(n *html.Node) bool {
		if HasClass(n, name) {
			out = append(out, View{node: n})
		}
		return true
	})
	return out
}

// FindByText returns the first descendant element whose normalized text is
// label, or starts with label followed by a colon.
func (v View) FindByText(label string) (View, bool) {
	label = textutil.NormalizeLabel(label)
	var found *html.Node
	v.walkElements(func(n *html.Node) bool {
		if isScriptOrStyle(n) {
			return true
		}
		text := textutil.NormalizeLabel(GetText(n))
		if text == label || strings.HasPrefix(text, label+":") {
			found = n
			return false
		}
		return true
	})
	return View{node: found}, found != nil
}

// FirstLazyImage returns the lazy-load source of the first image below the
// view.
func (v View) FirstLazyImage() (string, bool) {
	images := v.LazyImages()
	if len(images) == 0 {
		return "", false
	}
	return images[0], true
}

// LazyImages returns the lazy-load source of every image below the view.
func (v View) LazyImages() []string {
	var out []string
	v.walkElements(func(n *html.Node) bool {
		if n.DataAtom != atom.Img {
			return true
		}
		src, ok := Attr(n, "data-src")
		if ok && strings.TrimSpace(src) != "" {
			out = append(out, strings.TrimSpace(src))
		}
		return true
	})
	return out
}

// Text returns the concatenated text of the view.
func (v View) Text() string {
	return GetText(v.node)
}

// JoinedText returns every text node of the view joined by sep.
func (v View) JoinedText(sep string) string {
	return JoinedText(v.node, sep)
}

func (v View) Attr(key string) (string, bool) {
	return Attr(v.node, key)
}

// Anchors returns every link below the view with its raw href, in document
// order.
func (v View) Anchors() []Anchor {
	if v.node == nil {
		return nil
	}
	return GetAnchors(v.Find("a[href]"))
}

// walkElements visits every element strictly below the view in document
// order until fn returns false.
func (v View) walkElements(fn func(n *html.Node) bool) {
	if v.node == nil {
		return
	}
	var walk func(n *html.Node) bool
	walk = func(n *html.Node) bool {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && !fn(c) {
				return false
			}
			if !walk(c) {
				return false
			}
		}
		return true
	}
	walk(v.node)
}
