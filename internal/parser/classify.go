package parser

import (
	"threadcache-backend/lib/htmlutil"
	"threadcache-backend/lib/textutil"
)

type typePrefix struct {
	labels []string
	value  ContentType
}

type statusPrefix struct {
	labels []string
	value  Status
}

// checked in order, a label that is contained in another one ("mod" in
// "cheat mod") has to come after it.
var typePrefixes = []typePrefix{
	{labels: []string{"cheat mod"}, value: TYPE_CHEAT_MOD},
	{labels: []string{"mod"}, value: TYPE_MOD},
	{labels: []string{"tool"}, value: TYPE_TOOL},

	{labels: []string{"read me", "readme"}, value: TYPE_READ_ME},
	{labels: []string{"request"}, value: TYPE_REQUEST},
	{labels: []string{"tutorial"}, value: TYPE_TUTORIAL},

	{labels: []string{"siterip"}, value: TYPE_SITERIP},
	{labels: []string{"collection"}, value: TYPE_COLLECTION},
	{labels: []string{"manga"}, value: TYPE_MANGA},
	{labels: []string{"comics"}, value: TYPE_COMICS},
	{labels: []string{"video"}, value: TYPE_VIDEO},
	{labels: []string{"gif"}, value: TYPE_GIF},
	{labels: []string{"pinup"}, value: TYPE_PINUP},
	{labels: []string{"cg"}, value: TYPE_CG},

	{labels: []string{"adrift"}, value: TYPE_ADRIFT},
	{labels: []string{"flash"}, value: TYPE_FLASH},
	{labels: []string{"html"}, value: TYPE_HTML},
	{labels: []string{"java"}, value: TYPE_JAVA},
	{labels: []string{"others"}, value: TYPE_OTHERS},
	{labels: []string{"qsp"}, value: TYPE_QSP},
	{labels: []string{"rags"}, value: TYPE_RAGS},
	{labels: []string{"rpgm"}, value: TYPE_RPGM},
	{labels: []string{"ren'py", "renpy"}, value: TYPE_RENPY},
	{labels: []string{"tads"}, value: TYPE_TADS},
	{labels: []string{"unity"}, value: TYPE_UNITY},
	{labels: []string{"unreal engine"}, value: TYPE_UNREAL_ENGINE},
	{labels: []string{"webgl"}, value: TYPE_WEBGL},
	{labels: []string{"wolf rpg"}, value: TYPE_WOLF_RPG},
}

var statusPrefixes = []statusPrefix{
	{labels: []string{"completed"}, value: STATUS_COMPLETED},
	{labels: []string{"onhold", "on hold"}, value: STATUS_ON_HOLD},
	{labels: []string{"abandoned"}, value: STATUS_ABANDONED},
}

// Prefixes is the set of normalized prefix labels of a thread.
type Prefixes map[string]struct{}

// NewPrefixes normalizes the given labels into a set.
func NewPrefixes(labels ...string) Prefixes {
	out := make(Prefixes, len(labels))
	for _, l := range labels {
		l = textutil.NormalizeLabel(l)
		if l == "" {
			continue
		}
		out[l] = struct{}{}
	}
	return out
}

// prefixesFromHeader collects the text of every span in the header, that is
// where the site renders the bracketed prefix labels of the title.
func prefixesFromHeader(head htmlutil.View) Prefixes {
	var labels []string
	for _, n := range head.Find("span").Nodes {
		labels = append(labels, htmlutil.GetText(n))
	}
	return NewPrefixes(labels...)
}

func (p Prefixes) hasAny(labels []string) bool {
	for _, l := range labels {
		if _, ok := p[l]; ok {
			return true
		}
	}
	return false
}

// ClassifyType returns the content type for the first prefix in priority
// order that is present, TYPE_MISC otherwise.
func ClassifyType(prefixes Prefixes) ContentType {
	for _, t := range typePrefixes {
		if prefixes.hasAny(t.labels) {
			return t.value
		}
	}
	return TYPE_MISC
}

// ClassifyStatus returns the status for the first prefix in priority order
// that is present, STATUS_NORMAL otherwise.
func ClassifyStatus(prefixes Prefixes) Status {
	for _, s := range statusPrefixes {
		if prefixes.hasAny(s.labels) {
			return s.value
		}
	}
	return STATUS_NORMAL
}
