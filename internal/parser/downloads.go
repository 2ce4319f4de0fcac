package parser

import (
	"strings"

	"threadcache-backend/lib/htmlutil"
	"threadcache-backend/lib/textutil"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// labels introducing the download section, in order of preference.
var downloadLabels = []string{"downloads", "download", "dl links"}

type downloadState int

const (
	// nothing is pending and no group is open.
	STATE_SEEKING_LINK downloadState = iota
	// text is being collected as the name of the next group.
	STATE_ACCUMULATING_NAME
	// the open group is receiving mirrors, the next text closes it.
	STATE_COLLECTING_MIRRORS
)

const groupNameTrim = " \t\n:-–—|"

type downloadWalker struct {
	redact  func(href string) string
	state   downloadState
	pending strings.Builder
	current DownloadGroup
	groups  []DownloadGroup
}

// flush turns the pending text into groups. Every line but the last is a
// heading without mirrors, the last line names the group the next mirrors
// go to.
func (w *downloadWalker) flush() {
	var names []string
	for _, line := range strings.Split(textutil.SanitizeWhitespace(w.pending.String()), "\n") {
		line = strings.Trim(line, groupNameTrim)
		if line != "" {
			names = append(names, line)
		}
	}
	w.pending.Reset()

	w.current = DownloadGroup{}
	if len(names) == 0 {
		return
	}
	for _, heading := range names[:len(names)-1] {
		w.groups = append(w.groups, DownloadGroup{Name: heading})
	}
	w.current.Name = names[len(names)-1]
}

func (w *downloadWalker) closeGroup() {
	if w.current.Name != "" || len(w.current.Mirrors) > 0 {
		w.groups = append(w.groups, w.current)
	}
	w.current = DownloadGroup{}
	w.state = STATE_SEEKING_LINK
}

func (w *downloadWalker) addText(text string) {
	if w.state == STATE_COLLECTING_MIRRORS {
		w.closeGroup()
	}
	w.pending.WriteString(text)
	w.state = STATE_ACCUMULATING_NAME
}

func (w *downloadWalker) addMirror(n *html.Node) {
	if w.state != STATE_COLLECTING_MIRRORS {
		w.flush()
		w.state = STATE_COLLECTING_MIRRORS
	}
	href, _ := htmlutil.Attr(n, "href")
	w.current.Mirrors = append(w.current.Mirrors, Mirror{
		Name: htmlutil.AnchorName(n),
		Link: w.redact(href),
	})
}

func containsLinkOrMedia(n *html.Node) bool {
	return containsMatch(n, func(c *html.Node) bool {
		return isLink(c) || isMedia(c)
	})
}

// visit feeds one node to the state machine, it returns false once the
// section is over.
func (w *downloadWalker) visit(n *html.Node) bool {
	switch {
	case isLink(n):
		w.addMirror(n)
	case isMedia(n) || htmlutil.IsElement(n, atom.A) && containsMatch(n, isMedia):
		return false
	case htmlutil.IsElement(n, atom.Br):
		if w.state == STATE_ACCUMULATING_NAME {
			w.pending.WriteString("\n")
		}
	case n.Type == html.ElementNode && containsLinkOrMedia(n):
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if !w.visit(c) {
				return false
			}
		}
		if blockEnd(n) && w.state == STATE_ACCUMULATING_NAME {
			w.pending.WriteString("\n")
		}
	default:
		text := htmlutil.RenderText(n)
		if textutil.IsPunctuation(text) {
			if w.state == STATE_ACCUMULATING_NAME && strings.Contains(text, "\n") {
				w.pending.WriteString("\n")
			}
			return true
		}
		w.addText(text)
	}
	return true
}

func blockEnd(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Div, atom.P, atom.Li, atom.Ul, atom.Ol, atom.Blockquote, atom.Button:
		return true
	}
	return false
}

func (w *downloadWalker) finish() []DownloadGroup {
	if w.state == STATE_COLLECTING_MIRRORS {
		w.closeGroup()
	}
	// a trailing name with no links after it is not a group.
	w.pending.Reset()
	return w.groups
}

// extractDownloads reads the download section of the post into groups of
// mirrors. It returns an empty list when the post has no such section.
func extractDownloads(wrapper htmlutil.View, redactor linkRedactor) []DownloadGroup {
	var anchor htmlutil.View
	found := false
	for _, label := range downloadLabels {
		anchor, found = wrapper.FindByText(label)
		if found {
			break
		}
	}
	if !found {
		return []DownloadGroup{}
	}

	w := &downloadWalker{redact: redactor.redact}
	start := deepestFirstChild(anchor.Node())
	for n := nextInPost(start); n != nil; n = nextInPost(n) {
		if !w.visit(n) {
			break
		}
	}
	groups := w.finish()
	if groups == nil {
		return []DownloadGroup{}
	}
	return groups
}
