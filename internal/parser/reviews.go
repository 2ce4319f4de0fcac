package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"threadcache-backend/lib/htmlutil"
	"threadcache-backend/lib/textutil"
)

const reviewClass = "message--review"

var (
	othersCount   = regexp.MustCompile(`(?i)\band\s+([\d,]+)\s+others?\b`)
	likeNameSplit = regexp.MustCompile(`\s*,\s*|\s+and\s+`)
)

// countLikes reads the reactions bar text, "A, B and 3 others" is 5 likes.
func countLikes(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	likes := 0
	if loc := othersCount.FindStringSubmatchIndex(text); loc != nil {
		n, err := strconv.Atoi(strings.ReplaceAll(text[loc[2]:loc[3]], ",", ""))
		if err == nil {
			likes += n
		}
		text = text[:loc[0]]
	}
	for _, name := range likeNameSplit.Split(text, -1) {
		if strings.TrimSpace(name) != "" {
			likes++
		}
	}
	return likes
}

func reviewScore(review htmlutil.View) int {
	stars, ok := review.FindByClass("ratingStars")
	if !ok {
		return 1
	}
	title, _ := stars.Attr("title")
	match := starScore.FindString(title)
	score, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 1
	}
	rounded := int(math.Round(score))
	return max(1, min(5, rounded))
}

func reviewUser(review htmlutil.View) string {
	if author, ok := review.Attr("data-author"); ok && strings.TrimSpace(author) != "" {
		return strings.TrimSpace(author)
	}
	if user, ok := review.FindByClass("username"); ok {
		return strings.TrimSpace(user.Text())
	}
	return ""
}

func reviewMessage(review htmlutil.View) string {
	wrapper, ok := review.FindByClass(contentWrapperClass)
	if !ok {
		return ""
	}
	return textutil.SanitizeWhitespace(htmlutil.RenderText(wrapper.Node()))
}

func reviewLikes(review htmlutil.View) int {
	bar, ok := review.FindByClass("reactionsBar-link")
	if !ok {
		return 0
	}
	return countLikes(textutil.SanitizeWhitespace(bar.Text()))
}

func reviewTimestamp(review htmlutil.View) int64 {
	for _, selector := range []string{"time.u-dt[data-time]", "time[data-time]"} {
		if t, ok := timeAttr(review, selector); ok {
			return t.Unix()
		}
	}
	return 0
}

// ParseReviews parses a page of the reviews of a thread.
func (p Parser) ParseReviews(data []byte) (reviews ParsedReviews, err error) {
	defer recoverUnhandled(data, &err)

	root, err := p.load(data)
	if err != nil {
		return ParsedReviews{}, err
	}
	head, ok := root.FindByClass(headerClass)
	if !ok {
		return ParsedReviews{}, p.missingStructure(root, data, "thread header")
	}

	items := []ParsedReview{}
	for _, review := range root.FindAllByClass(reviewClass) {
		items = append(items, ParsedReview{
			User:      reviewUser(review),
			Score:     reviewScore(review),
			Message:   reviewMessage(review),
			Likes:     reviewLikes(review),
			Timestamp: reviewTimestamp(review),
		})
	}

	total, ok := reviewsTabCount(head)
	if !ok {
		total = len(items)
	}
	return ParsedReviews{Total: total, Items: items}, nil
}
