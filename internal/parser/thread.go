package parser

import (
	"fmt"
	"runtime/debug"
	"strings"

	"threadcache-backend/internal/assert"
	"threadcache-backend/lib/htmlutil"
	"threadcache-backend/lib/textutil"
)

const (
	headerClass      = "p-body-header"
	starterPostClass = "message-threadStarterPost"
)

// Parser turns thread and review pages of a Site into records. It holds no
// mutable state and is safe for concurrent use.
type Parser struct {
	site Site
}

func NewParser(site Site) Parser {
	assert.NotEmptyStr(site.Domain)
	assert.NotEmptyStr(site.BaseUrl)
	assert.NotEmptyStr(site.Name)
	return Parser{site: site}
}

func (p Parser) Site() Site {
	return p.site
}

var defaultParser = NewParser(DefaultSite)

// ParseThread parses a thread page of the default site.
func ParseThread(data []byte) (ParsedThread, error) {
	return defaultParser.ParseThread(data)
}

// ParseReviews parses a reviews page of the default site.
func ParseReviews(data []byte) (ParsedReviews, error) {
	return defaultParser.ParseReviews(data)
}

// recoverUnhandled converts a panic in the parse entry points into an
// unhandled ParserError.
func recoverUnhandled(data []byte, err *error) {
	r := recover()
	if r == nil {
		return
	}
	perr := newParserError(ERROR_UNHANDLED, "panic while parsing", data, nil)
	if cause, ok := r.(error); ok {
		perr.cause = cause
	} else {
		perr.Message = fmt.Sprintf("panic while parsing: %v", r)
	}
	perr.Trace = string(debug.Stack())
	*err = perr
}

// isSite reports whether the page advertises itself as the configured site,
// decorations around the name such as "F95zone Forum" are accepted.
func (p Parser) isSite(root htmlutil.View) bool {
	names := []string{}
	if name, ok := root.Find(`meta[property="og:site_name"]`).Attr("content"); ok {
		names = append(names, name)
	}
	if alt, ok := root.Find(".p-header-logo img").Attr("alt"); ok {
		names = append(names, alt)
	}
	matcher := []string{textutil.NormalizeName(p.site.Name)}
	for _, name := range names {
		if textutil.MatchName(name, matcher) {
			return true
		}
	}
	return false
}

// missingStructure picks the error for a page lacking a required element:
// pages that are not from the site at all are reported as such.
func (p Parser) missingStructure(root htmlutil.View, data []byte, what string) error {
	if !p.isSite(root) {
		return newParserError(ERROR_WRONG_SITE, fmt.Sprintf("page does not identify as %s", p.site.Name), data, nil)
	}
	return newParserError(ERROR_STRUCTURE_MISSING, fmt.Sprintf("%s not found", what), data, nil)
}

func (p Parser) load(data []byte) (htmlutil.View, error) {
	root, err := htmlutil.Load(data)
	if err != nil {
		return htmlutil.View{}, newParserError(ERROR_UNHANDLED, "failed to parse markup", data, err)
	}
	if !root.Valid() {
		return htmlutil.View{}, newParserError(ERROR_WRONG_SITE, "empty document", data, nil)
	}
	return root, nil
}

// ParseThread parses the markup of the first page of a thread.
func (p Parser) ParseThread(data []byte) (thread ParsedThread, err error) {
	defer recoverUnhandled(data, &err)

	root, err := p.load(data)
	if err != nil {
		return ParsedThread{}, err
	}
	head, ok := root.FindByClass(headerClass)
	if !ok {
		return ParsedThread{}, p.missingStructure(root, data, "thread header")
	}
	post, ok := root.FindByClass(starterPostClass)
	if !ok {
		return ParsedThread{}, p.missingStructure(root, data, "thread starter post")
	}
	wrapper, ok := post.FindByClass(contentWrapperClass)
	if !ok {
		return ParsedThread{}, p.missingStructure(root, data, "post content")
	}

	return p.assembleThread(root, head, post, wrapper), nil
}

func (p Parser) assembleThread(root, head, post, wrapper htmlutil.View) ParsedThread {
	raw := wrapper.JoinedText("\n")
	plain := textutil.SanitizeWhitespace(raw)

	name, titleVersion, titleDeveloper := titleFields(titleText(root, head))

	version, ok := shortField(plain, versionLabels)
	if !ok || version == "" {
		version = titleVersion
	}
	developer, ok := shortField(plain, developerLabels)
	if !ok || developer == "" {
		developer = titleDeveloper
	}

	prefixes := prefixesFromHeader(head)

	descriptions := [2]string{
		regexLongField(raw, descriptionLabels),
		domLongField(wrapper, descriptionLabels),
	}
	changelogs := [2]string{
		regexLongField(raw, changelogLabels),
		domLongField(wrapper, changelogLabels),
	}

	score, votes := scoreAndVotes(root, head)
	tags, unknownTags := ClassifyTags(tagSlugsFromHeader(head))

	image, ok := wrapper.FirstLazyImage()
	if !ok {
		image = ImageMissing
	}
	previews := previewUrls(wrapper, image)
	if previews == nil {
		previews = []string{}
	}

	return ParsedThread{
		Name:        strings.TrimSpace(name),
		Version:     version,
		Developer:   NormalizeDeveloper(developer),
		Type:        ClassifyType(prefixes),
		Status:      ClassifyStatus(prefixes),
		LastUpdated: lastUpdated(plain, post),
		Score:       score,
		Votes:       votes,
		Description: pickLongField(descriptions, changelogs),
		Changelog:   pickLongField(changelogs, descriptions),
		Tags:        tags,
		UnknownTags: unknownTags,
		ImageUrl:    image,
		PreviewUrls: previews,
		Downloads:   extractDownloads(wrapper, newLinkRedactor(p.site, root)),
	}
}
