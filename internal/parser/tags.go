package parser

import (
	"fmt"
	"slices"
	"strings"

	"threadcache-backend/lib/htmlutil"
	"threadcache-backend/lib/textutil"
)

// TAG_TAXONOMY_VERSION is bumped whenever a slug is appended to tagSlugs.
const TAG_TAXONOMY_VERSION = 1

// Tag is a known tag, its value is the 1-based position of its slug in
// tagSlugs and is the code written to the cache. New slugs are only ever
// appended so existing codes never change.
type Tag int

var tagSlugs = []string{
	"2d-game",
	"2dcg",
	"3d-game",
	"3dcg",
	"adventure",
	"ahegao",
	"ai-cg",
	"anal-sex",
	"animated",
	"asset-addon",
	"asset-ai-cg",
	"asset-animal",
	"asset-animation",
	"asset-audio",
	"asset-bundle",
	"asset-character",
	"asset-clothing",
	"asset-environment",
	"asset-expression",
	"asset-hair",
	"asset-hdri",
	"asset-light",
	"asset-morph",
	"asset-plugin",
	"asset-pose",
	"asset-prop",
	"asset-script",
	"asset-shader",
	"asset-texture",
	"asset-utility",
	"asset-vehicle",
	"bdsm",
	"bestiality",
	"big-ass",
	"big-tits",
	"blackmail",
	"bukkake",
	"censored",
	"character-creation",
	"cheating",
	"combat",
	"corruption",
	"cosplay",
	"creampie",
	"dating-sim",
	"dilf",
	"drugs",
	"dystopian-setting",
	"exhibitionism",
	"fantasy",
	"female-domination",
	"female-protagonist",
	"footjob",
	"furry",
	"futa-trans",
	"futa-trans-protagonist",
	"gay",
	"graphic-violence",
	"groping",
	"group-sex",
	"handjob",
	"harem",
	"horror",
	"humiliation",
	"humor",
	"incest",
	"internal-view",
	"interracial",
	"japanese-game",
	"kinetic-novel",
	"lesbian",
	"loli",
	"male-domination",
	"male-protagonist",
	"management",
	"masturbation",
	"milf",
	"mind-control",
	"mobile-game",
	"monster",
	"monster-girl",
	"multiple-endings",
	"multiple-penetration",
	"multiple-protagonist",
	"necrophilia",
	"no-sexual-content",
	"ntr",
	"oral-sex",
	"paranormal",
	"parody",
	"platformer",
	"point-click",
	"possession",
	"pov",
	"pregnancy",
	"prostitution",
	"puzzle",
	"rape",
	"real-porn",
	"religion",
	"romance",
	"rpg",
	"sandbox",
	"scat",
	"school-setting",
	"sci-fi",
	"sex-toys",
	"sexual-harassment",
	"shooter",
	"shota",
	"side-scroller",
	"simulator",
	"sissification",
	"slave",
	"sleep-sex",
	"spanking",
	"strategy",
	"stripping",
	"superpowers",
	"swinging",
	"teasing",
	"tentacles",
	"text-based",
	"titfuck",
	"trainer",
	"transformation",
	"trap",
	"turn-based-combat",
	"twins",
	"urination",
	"vaginal-sex",
	"virgin",
	"virtual-reality",
	"voiced",
	"vore",
	"voyeurism",
}

var tagsBySlug = func() map[string]Tag {
	out := make(map[string]Tag, len(tagSlugs))
	for i, slug := range tagSlugs {
		out[slug] = Tag(i + 1)
	}
	return out
}()

// TagFromSlug looks up a known tag.
func TagFromSlug(slug string) (Tag, bool) {
	t, ok := tagsBySlug[slug]
	return t, ok
}

// KnownTagSlugs returns the slug of every known tag in code order.
func KnownTagSlugs() []string {
	return slices.Clone(tagSlugs)
}

func (t Tag) String() string {
	if t < 1 || int(t) > len(tagSlugs) {
		return fmt.Sprintf("Tag(%d)", int(t))
	}
	return tagSlugs[t-1]
}

// normalizeTagSlug turns a tag link into its slug, "/tags/2dcg/" becomes
// "2dcg".
func normalizeTagSlug(href string) string {
	slug := strings.TrimSpace(href)
	if i := strings.Index(slug, "/tags/"); i >= 0 {
		slug = slug[i+len("/tags/"):]
	}
	if i := strings.IndexAny(slug, "?#"); i >= 0 {
		slug = slug[:i]
	}
	return strings.Trim(slug, "/")
}

// ClassifyTags splits tag slugs into known tags, sorted and deduplicated,
// and unknown slugs, deduplicated in the order they appear.
func ClassifyTags(slugs []string) ([]Tag, []string) {
	var tags []Tag
	var unknown []string
	for _, slug := range slugs {
		if slug == "" {
			continue
		}
		tag, ok := TagFromSlug(slug)
		if ok {
			tags = append(tags, tag)
			continue
		}
		if !slices.Contains(unknown, slug) {
			unknown = append(unknown, slug)
		}
	}
	slices.Sort(tags)
	tags = slices.Compact(tags)
	return tags, unknown
}

// tagSlugsFromHeader reads the slug of every entry in the header's tag list,
// falling back to the link text when an entry has no usable href.
func tagSlugsFromHeader(head htmlutil.View) []string {
	list, ok := head.FindByClass("js-tagList")
	if !ok {
		return nil
	}
	var slugs []string
	for _, a := range list.Anchors() {
		slug := normalizeTagSlug(a.Href)
		if slug == "" {
			slug = strings.ReplaceAll(textutil.NormalizeLabel(a.Name), " ", "-")
		}
		slugs = append(slugs, slug)
	}
	return slugs
}
