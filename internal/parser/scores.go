package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"threadcache-backend/lib/htmlutil"

	"github.com/titanous/json5"
	"golang.org/x/net/html"
)

type aggregateRating struct {
	score float64
	votes int
}

func numberValue(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(v, ",", "")), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// findAggregateRating searches a decoded structured data block for the
// first well formed aggregateRating object.
func findAggregateRating(value any) (aggregateRating, bool) {
	switch v := value.(type) {
	case map[string]any:
		if rating, ok := v["aggregateRating"].(map[string]any); ok {
			score, scoreOk := numberValue(rating["ratingValue"])
			votes, votesOk := numberValue(rating["ratingCount"])
			if !votesOk {
				votes, votesOk = numberValue(rating["reviewCount"])
			}
			if scoreOk && votesOk && !math.IsNaN(score) && votes >= 0 {
				return aggregateRating{score: score, votes: int(votes)}, true
			}
		}
		for _, key := range []string{"@graph", "mainEntity", "itemReviewed"} {
			if nested, ok := v[key]; ok {
				if rating, ok := findAggregateRating(nested); ok {
					return rating, true
				}
			}
		}
	case []any:
		for _, item := range v {
			if rating, ok := findAggregateRating(item); ok {
				return rating, true
			}
		}
	}
	return aggregateRating{}, false
}

// structuredRating reads the schema.org rating the page embeds for search
// engines, blocks that do not decode are skipped.
func structuredRating(root htmlutil.View) (aggregateRating, bool) {
	for _, script := range root.Find(`script[type="application/ld+json"]`).Nodes {
		var body strings.Builder
		for c := script.FirstChild; c != nil; c = c.NextSibling {
			body.WriteString(c.Data)
		}
		var decoded any
		err := json5.Unmarshal([]byte(body.String()), &decoded)
		if err != nil {
			continue
		}
		if rating, ok := findAggregateRating(decoded); ok {
			return rating, true
		}
	}
	return aggregateRating{}, false
}

var (
	starScore  = regexp.MustCompile(`\d(\.\d\d?)?`)
	countParen = regexp.MustCompile(`\(([\d,]+)\)`)
)

// normalizeScore clamps score to [0, 5] and rounds it to one decimal.
func normalizeScore(score float64) float64 {
	if math.IsNaN(score) || score < 0 {
		return 0
	}
	if score > 5 {
		return 5
	}
	return math.Round(score*10) / 10
}

// widgetScore reads the initial value of the rating widget, then the
// tooltip of the star rating.
func widgetScore(head htmlutil.View) (float64, bool) {
	if value, ok := head.Find("[data-initial-rating]").Attr("data-initial-rating"); ok {
		score, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err == nil {
			return score, true
		}
	}
	for _, stars := range head.FindAllByClass("ratingStars") {
		title, ok := stars.Attr("title")
		if !ok {
			continue
		}
		match := starScore.FindString(title)
		if match == "" {
			continue
		}
		score, err := strconv.ParseFloat(match, 64)
		if err == nil {
			return score, true
		}
	}
	return 0, false
}

// parenCount reads the "(1,234)" count out of text.
func parenCount(text string) (int, bool) {
	match := countParen.FindStringSubmatch(text)
	if match == nil {
		return 0, false
	}
	count, err := strconv.Atoi(strings.ReplaceAll(match[1], ",", ""))
	if err != nil {
		return 0, false
	}
	return count, true
}

// reviewsTabCount reads the count of the reviews tab in the header.
func reviewsTabCount(head htmlutil.View) (int, bool) {
	for _, n := range head.Find("a, span").Nodes {
		if !isReviewsTab(n) {
			continue
		}
		if count, ok := parenCount(htmlutil.GetText(n)); ok {
			return count, true
		}
	}
	return 0, false
}

func isReviewsTab(n *html.Node) bool {
	if !htmlutil.HasClass(n, "tabs-tab") {
		return false
	}
	text := strings.ToLower(strings.TrimSpace(htmlutil.GetText(n)))
	return strings.HasPrefix(text, "reviews")
}

// scoreAndVotes resolves the rating of a thread, falling back tier by tier
// and defaulting to zero.
func scoreAndVotes(root, head htmlutil.View) (float64, int) {
	if rating, ok := structuredRating(root); ok {
		return normalizeScore(rating.score), rating.votes
	}
	score := 0.0
	if s, ok := widgetScore(head); ok {
		score = s
	}
	votes := 0
	if v, ok := reviewsTabCount(head); ok {
		votes = v
	}
	return normalizeScore(score), votes
}
