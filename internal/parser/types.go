package parser

// ImageMissing is stored in ParsedThread.ImageUrl when the starter post has no
// cover image.
const ImageMissing = "missing"

// Mirror is one download link inside a group.
type Mirror struct {
	Name string
	// Link is an absolute url on the site's own domain, a positional link
	// expression (see LinkExpression) or empty.
	Link string
}

// DownloadGroup is a named list of mirrors, a group without mirrors is a
// heading line.
type DownloadGroup struct {
	Name    string
	Mirrors []Mirror
}

// ParsedThread is everything extracted from a thread page. It is built once
// per parse and never modified afterwards.
type ParsedThread struct {
	Name      string
	Version   string
	Developer string
	Type      ContentType
	Status    Status
	// LastUpdated is a unix timestamp at midnight UTC.
	LastUpdated int64
	Score       float64
	Votes       int
	Description string
	Changelog   string
	// Tags is sorted with no duplicates.
	Tags        []Tag
	UnknownTags []string
	ImageUrl    string
	PreviewUrls []string
	Downloads   []DownloadGroup
}

type ParsedReview struct {
	User      string
	Score     int
	Message   string
	Likes     int
	Timestamp int64
}

type ParsedReviews struct {
	Total int
	Items []ParsedReview
}
