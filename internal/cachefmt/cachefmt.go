// Package cachefmt encodes parsed records the way the cache writer stores
// them: enums as their integer code, lists and tuples as arrays, timestamps
// as integer epoch seconds and everything else as a string.
package cachefmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"threadcache-backend/internal/parser"
)

// Mirror encodes as ["name", "link"].
type Mirror [2]string

// DownloadGroup encodes as ["name", [mirror, ...]].
type DownloadGroup struct {
	Name    string
	Mirrors []Mirror
}

func (g DownloadGroup) MarshalJSON() ([]byte, error) {
	mirrors := g.Mirrors
	if mirrors == nil {
		mirrors = []Mirror{}
	}
	return json.Marshal([]any{g.Name, mirrors})
}

func (g *DownloadGroup) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	err := json.Unmarshal(data, &tuple)
	if err != nil {
		return err
	}
	if len(tuple) != 2 {
		return fmt.Errorf("download group: expected 2 elements, got %d", len(tuple))
	}
	err = json.Unmarshal(tuple[0], &g.Name)
	if err != nil {
		return err
	}
	return json.Unmarshal(tuple[1], &g.Mirrors)
}

type Thread struct {
	Name        string          `json:"name"`
	Version     string          `json:"version"`
	Developer   string          `json:"developer"`
	Type        int             `json:"type"`
	Status      int             `json:"status"`
	LastUpdated int64           `json:"last_updated"`
	Score       string          `json:"score"`
	Votes       string          `json:"votes"`
	Description string          `json:"description"`
	Changelog   string          `json:"changelog"`
	Tags        []int           `json:"tags"`
	UnknownTags []string        `json:"unknown_tags"`
	ImageUrl    string          `json:"image_url"`
	PreviewUrls []string        `json:"preview_urls"`
	Downloads   []DownloadGroup `json:"downloads"`
}

type Review struct {
	User      string `json:"user"`
	Score     string `json:"score"`
	Message   string `json:"message"`
	Likes     string `json:"likes"`
	Timestamp int64  `json:"timestamp"`
}

type Reviews struct {
	Total string   `json:"total"`
	Items []Review `json:"items"`
}

func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}

func FromThread(t parser.ParsedThread) Thread {
	tags := make([]int, len(t.Tags))
	for i, tag := range t.Tags {
		tags[i] = int(tag)
	}
	downloads := make([]DownloadGroup, len(t.Downloads))
	for i, group := range t.Downloads {
		mirrors := make([]Mirror, len(group.Mirrors))
		for j, m := range group.Mirrors {
			mirrors[j] = Mirror{m.Name, m.Link}
		}
		downloads[i] = DownloadGroup{Name: group.Name, Mirrors: mirrors}
	}

	return Thread{
		Name:        t.Name,
		Version:     t.Version,
		Developer:   t.Developer,
		Type:        int(t.Type),
		Status:      int(t.Status),
		LastUpdated: t.LastUpdated,
		Score:       strconv.FormatFloat(t.Score, 'f', -1, 64),
		Votes:       strconv.Itoa(t.Votes),
		Description: t.Description,
		Changelog:   t.Changelog,
		Tags:        tags,
		UnknownTags: nonNil(t.UnknownTags),
		ImageUrl:    t.ImageUrl,
		PreviewUrls: nonNil(t.PreviewUrls),
		Downloads:   downloads,
	}
}

func FromReviews(r parser.ParsedReviews) Reviews {
	items := make([]Review, len(r.Items))
	for i, item := range r.Items {
		items[i] = Review{
			User:      item.User,
			Score:     strconv.Itoa(item.Score),
			Message:   item.Message,
			Likes:     strconv.Itoa(item.Likes),
			Timestamp: item.Timestamp,
		}
	}
	return Reviews{
		Total: strconv.Itoa(r.Total),
		Items: items,
	}
}

// Encoder writes one record per line.
type Encoder struct {
	enc *json.Encoder
}

func NewEncoder(w io.Writer) Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return Encoder{enc: enc}
}

func (e Encoder) Thread(t parser.ParsedThread) error {
	return e.enc.Encode(FromThread(t))
}

func (e Encoder) Reviews(r parser.ParsedReviews) error {
	return e.enc.Encode(FromReviews(r))
}
