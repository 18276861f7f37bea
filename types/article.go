package types

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"dedupbot/dedup"
)

// Article represents a fetched feed item with extracted content.
type Article struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	URL             string    `json:"url"`
	PublishedAt     time.Time `json:"published_at"`
	FetchedAt       time.Time `json:"fetched_at"`
	Summary         string    `json:"summary"`
	Author          string    `json:"author,omitempty"`
	Categories      []string  `json:"categories,omitempty"`
	FullContent     string    `json:"full_content"`
	FullContentText string    `json:"full_content_text"`
	Excerpt         string    `json:"excerpt,omitempty"`
	ImageURL        string    `json:"image_url,omitempty"`
	ExtractionError string    `json:"extraction_error,omitempty"`
}

// FeedResult is the top-level wrapper for JSON output.
type FeedResult struct {
	FeedURL      string     `json:"feed_url"`
	FetchedAt    time.Time  `json:"fetched_at"`
	ArticleCount int        `json:"article_count"`
	Articles     []*Article `json:"articles"`
}

// ContentText returns the most comprehensive text available for the
// article. Priority order: FullContentText > FullContent > Summary > Title.
func (a *Article) ContentText() string {
	if a.FullContentText != "" {
		return a.FullContentText
	}
	if a.FullContent != "" {
		return a.FullContent
	}
	if a.Summary != "" {
		return a.Summary
	}
	return a.Title
}

// DedupItem converts the article into the deduplicator's input shape.
func (a *Article) DedupItem() dedup.ContentItem {
	return dedup.ContentItem{
		ID:      a.ID,
		Content: a.ContentText(),
		Metadata: dedup.Metadata{
			"title":  a.Title,
			"url":    a.URL,
			"author": a.Author,
		},
	}
}

// GenerateID creates a short, stable ID by hashing the given string.
func GenerateID(input string) string {
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])[:16]
}
