package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"threadcache-backend/lib/htmlutil"
	"threadcache-backend/lib/textutil"

	"github.com/araddon/dateparse"
)

// label synonyms are regex fragments tried in order, the first one that
// matches wins.
type labelSet struct {
	names    []string
	patterns []*regexp.Regexp
}

func newLabelSet(names ...string) labelSet {
	patterns := make([]*regexp.Regexp, len(names))
	for i, name := range names {
		patterns[i] = regexp.MustCompile(`(?im)^\s*` + name + `\b\s*:?\s*(.*)`)
	}
	return labelSet{names: names, patterns: patterns}
}

var (
	versionLabels = newLabelSet(
		`version`,
		`game\s+version`,
		`mod\s+version`,
		`current\s+version`,
	)
	developerLabels = newLabelSet(
		`developer\s*/\s*publisher`,
		`developer\s*&\s*publisher`,
		`developer\s*/\s*artist`,
		`developer`,
		`publisher`,
		`original\s+developer`,
		`creator`,
		`artist`,
		`author`,
		`modder`,
		`translator`,
		`programmer`,
	)
	updatedLabels = newLabelSet(
		`thread\s+updated`,
		`updated`,
		`release\s+date`,
	)
	descriptionLabels = newLabelSet(
		`overview`,
		`story`,
		`plot`,
		`about\s+the\s+game`,
		`description`,
		`synopsis`,
	)
	changelogLabels = newLabelSet(
		`changelog`,
		`change-log`,
		`change\s+log`,
		`changes`,
		`update\s+notes`,
		`patch\s+notes`,
		`what's\s+new`,
	)
)

// domLabel turns a label fragment into the plain text FindByText expects.
func domLabel(name string) string {
	name = strings.ReplaceAll(name, `\s+`, " ")
	name = strings.ReplaceAll(name, `\s*`, "")
	return name
}

// shortField returns the rest of the first line introduced by one of the
// labels.
func shortField(plain string, labels labelSet) (string, bool) {
	for _, pattern := range labels.patterns {
		match := pattern.FindStringSubmatch(plain)
		if match == nil {
			continue
		}
		return strings.TrimSpace(match[1]), true
	}
	return "", false
}

var (
	sevenBlankLines = regexp.MustCompile(`\n(?:[ \t]*\n){7}`)
	splitColon      = regexp.MustCompile(`\n[ \t]*:`)
	labelValueLine  = regexp.MustCompile(`^\s*[\p{L}\p{N}][\p{L}\p{N} '&/.-]{0,39}?\s*:\s*[^\s/]`)
	downloadLine    = regexp.MustCompile(`(?i)^\s*downloads?\s*:?\s*$`)
)

// truncateSection cuts a long-form tail where it most likely wanders into the
// next section of the post.
func truncateSection(tail string) string {
	if loc := sevenBlankLines.FindStringIndex(tail); loc != nil {
		tail = tail[:loc[0]]
	}
	tail = splitColon.ReplaceAllString(tail, ":")

	lines := strings.Split(tail, "\n")
	kept := 0
	previousWasLabel := false
	previousLabelIdx := -1
	for i, line := range lines {
		if downloadLine.MatchString(line) {
			kept = i
			break
		}
		if strings.TrimSpace(line) == "" {
			kept = i + 1
			continue
		}
		isLabel := labelValueLine.MatchString(line)
		if isLabel && previousWasLabel {
			kept = previousLabelIdx
			break
		}
		previousWasLabel = isLabel
		if isLabel {
			previousLabelIdx = i
		}
		kept = i + 1
	}
	return strings.Join(lines[:kept], "\n")
}

// regexLongField is the text based strategy for long-form fields.
func regexLongField(raw string, labels labelSet) string {
	for _, pattern := range labels.patterns {
		loc := pattern.FindStringSubmatchIndex(raw)
		if loc == nil {
			continue
		}
		return textutil.SanitizeWhitespace(truncateSection(raw[loc[2]:]))
	}
	return ""
}

// domLongField is the tree based strategy for long-form fields, it reads
// everything after the label until the next section starts.
func domLongField(wrapper htmlutil.View, labels labelSet) string {
	var anchor htmlutil.View
	found := false
	for _, name := range labels.names {
		anchor, found = wrapper.FindByText(domLabel(name))
		if found {
			break
		}
	}
	if !found {
		return ""
	}

	var out strings.Builder
	for n := nextInPost(deepestFirstChild(anchor.Node())); n != nil; n = nextInPost(n) {
		if isSectionStart(n) {
			break
		}
		text := htmlutil.RenderText(n)
		trimmed := strings.TrimSpace(text)
		if trimmed == ":" || (trimmed == "" && !strings.Contains(text, "\n")) {
			continue
		}
		out.WriteString(text)
	}

	value := textutil.SanitizeWhitespace(out.String())
	value = strings.TrimLeft(value, ":")
	return strings.TrimSpace(value)
}

// a candidate of the other field shorter than this is not considered when
// checking whether a candidate ran into the other field.
const minBleedLength = 12

func bleedsInto(text string, others [2]string) bool {
	for _, o := range others {
		if len(o) >= minBleedLength && strings.Contains(text, o) {
			return true
		}
	}
	return false
}

// pickLongField chooses between the regex and dom candidates of a field. The
// longer one wins unless it swallowed the neighbouring field's text and the
// shorter one did not.
func pickLongField(candidates [2]string, others [2]string) string {
	long, short := candidates[0], candidates[1]
	if len(short) > len(long) {
		long, short = short, long
	}
	if short != "" && bleedsInto(long, others) && !bleedsInto(short, others) {
		return short
	}
	return long
}

var (
	isoDate      = regexp.MustCompile(`\d{4}[-/.]\d{1,2}[-/.]\d{1,2}`)
	bracketGroup = regexp.MustCompile(`\[([^\]]+)\]`)
	titleName    = regexp.MustCompile(`^(?:\s*\[[^\]]*\]\s*(?:-\s*)?)*([^\[|]+)`)
	versionLike  = regexp.MustCompile(`(?i)^\s*v?\d`)
)

func parseDate(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}
	if iso := isoDate.FindString(text); iso != "" {
		t, err := dateparse.ParseIn(iso, time.UTC)
		if err == nil {
			return t, true
		}
	}
	t, err := dateparse.ParseIn(text, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// truncateToDay drops the time of day, the cache compares dates only.
func truncateToDay(t time.Time) int64 {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Unix()
}

func timeAttr(post htmlutil.View, selector string) (time.Time, bool) {
	value, ok := post.Find(selector).Attr("data-time")
	if !ok {
		return time.Time{}, false
	}
	unix, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(unix, 0), true
}

// lastUpdated prefers the date the author wrote in the post, then the last
// edit of the post, then the time it was posted.
func lastUpdated(plain string, post htmlutil.View) int64 {
	if text, ok := shortField(plain, updatedLabels); ok {
		if t, ok := parseDate(text); ok {
			return truncateToDay(t)
		}
	}
	if t, ok := timeAttr(post, ".message-lastEdit time[data-time]"); ok {
		return truncateToDay(t)
	}
	if t, ok := timeAttr(post, ".message-attribution-main time[data-time]"); ok {
		return truncateToDay(t)
	}
	return 0
}

var prefixLabels = func() map[string]struct{} {
	out := map[string]struct{}{}
	for _, p := range typePrefixes {
		for _, l := range p.labels {
			out[l] = struct{}{}
		}
	}
	for _, p := range statusPrefixes {
		for _, l := range p.labels {
			out[l] = struct{}{}
		}
	}
	return out
}()

// titleFields splits a title like "Name [v1.0] [Studio]" into the name, the
// bracketed version and the last other bracketed group.
func titleFields(title string) (name, version, developer string) {
	if match := titleName.FindStringSubmatch(title); match != nil {
		name = strings.TrimSpace(match[1])
	}
	if name == "" {
		name = strings.TrimSpace(title)
	}
	for _, group := range bracketGroup.FindAllStringSubmatch(title, -1) {
		value := strings.TrimSpace(group[1])
		if version == "" && versionLike.MatchString(value) {
			version = value
			continue
		}
		if _, isPrefix := prefixLabels[textutil.NormalizeLabel(value)]; isPrefix {
			continue
		}
		developer = value
	}
	return name, version, developer
}

var siteSuffix = regexp.MustCompile(`\s*\|[^|]*$`)

// titleText reads the thread title without its prefix labels.
func titleText(root, head htmlutil.View) string {
	if h1, ok := head.FindByClass("p-title-value"); ok {
		var out strings.Builder
		for c := h1.Node().FirstChild; c != nil; c = c.NextSibling {
			if htmlutil.HasClass(c, "label") ||
				htmlutil.HasClass(c, "labelLink") ||
				htmlutil.HasClass(c, "label-append") {
				continue
			}
			out.WriteString(htmlutil.GetText(c))
		}
		return textutil.SanitizeWhitespace(out.String())
	}
	title := root.Find("title").First().Text()
	return strings.TrimSpace(siteSuffix.ReplaceAllString(title, ""))
}

// previewUrls lists every image of the post except the cover, thumbnails are
// mapped to their full size version.
func previewUrls(wrapper htmlutil.View, cover string) []string {
	var out []string
	seen := map[string]struct{}{
		cover: {},
		strings.Replace(cover, "/thumb/", "/", 1): {},
	}
	for _, src := range wrapper.LazyImages() {
		full := strings.Replace(src, "/thumb/", "/", 1)
		if _, ok := seen[src]; ok {
			continue
		}
		if _, ok := seen[full]; ok {
			continue
		}
		seen[src] = struct{}{}
		seen[full] = struct{}{}
		out = append(out, full)
	}
	return out
}
