package parser

import (
	"regexp"
	"strings"
)

// cut points, everything right of the earliest one is dropped.
var developerChop = []string{
	" - ",
	" – ",
	" — ",
	" | ",
	" / ",
	"'s ",
	"’s ",
	": ",
	" @ ",
	"(",
	"[",
	"{",
	"<",
}

var developerStrip = regexp.MustCompile(`(?i)` +
	`https?://\S+|www\.\S+|` +
	`\b(?:` +
	`patreon|subscribestar|substar|discord|itch\.io|itch|twitter|x\.com|` +
	`facebook|instagram|tumblr|deviantart|pixiv|fanbox|fantia|ci-en|dlsite|` +
	`steam|gumroad|ko-?fi|buymeacoffee|youtube|reddit|newgrounds|gamejolt|` +
	`tiktok|bluesky|linktree|blogspot|wordpress|f95zone|` +
	`website|webpage|homepage|home page|blog|page|site|profile|` +
	`official|support|follow|donate|links?` +
	`)\b`)

// characters trimmed from both ends once stripping is done.
const developerTrim = " \t\n\u00a0\u200b-–—|/\\:;,.!?'\"*~&+=_@#()[]{}<>"

var multiSpace = regexp.MustCompile(`\s{2,}`)

// a name written as "[Studio] Games" keeps what is inside the brackets.
var leadingBracket = regexp.MustCompile(`^\s*[\[({<]([^\])}>]*[^\s\])}>][^\])}>]*)[\])}>]`)

func chopDeveloper(text string) string {
	if match := leadingBracket.FindStringSubmatch(text); match != nil {
		text = match[1]
	}
	for _, sep := range developerChop {
		left, _, found := strings.Cut(text, sep)
		if !found || strings.TrimSpace(left) == "" {
			continue
		}
		text = left
	}
	return text
}

func stripDeveloper(text string) string {
	for {
		stripped := developerStrip.ReplaceAllString(text, " ")
		stripped = multiSpace.ReplaceAllString(stripped, " ")
		if strings.Trim(stripped, developerTrim) == "" {
			return text
		}
		if stripped == text {
			return text
		}
		text = stripped
	}
}

// NormalizeDeveloper turns a raw attribution line into the developer name.
// The result is never empty when text is not.
func NormalizeDeveloper(text string) string {
	if text == "" {
		return ""
	}
	chopped := chopDeveloper(text)
	out := strings.Trim(stripDeveloper(chopped), developerTrim)
	if out != "" {
		return out
	}
	if trimmed := strings.TrimSpace(chopped); trimmed != "" {
		return trimmed
	}
	return chopped
}
