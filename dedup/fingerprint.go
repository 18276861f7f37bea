package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Metadata carries caller-supplied attributes for a content item. The keys
// "title", "subject" and "url" are recognized by the detectors; any extra
// keys are accepted and still contribute to the metadata hash.
type Metadata map[string]interface{}

// Title returns the "title" value if present and a string.
func (m Metadata) Title() string { return m.stringValue("title") }

// Subject returns the "subject" value if present and a string.
func (m Metadata) Subject() string { return m.stringValue("subject") }

// URL returns the "url" value if present and a string.
func (m Metadata) URL() string { return m.stringValue("url") }

func (m Metadata) stringValue(key string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// ContentItem is the unit of work handed to the deduplicator: a
// caller-assigned ID, the raw content body and optional metadata.
type ContentItem struct {
	ID       string   `json:"id"`
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata,omitempty"`
}

// ContentFingerprint is a compact, immutable summary of a content item used
// for duplicate comparison without retaining the full content. Once built
// it is never mutated; a changed document produces a new fingerprint.
type ContentFingerprint struct {
	ContentHash   string    `json:"content_hash"`
	MetadataHash  string    `json:"metadata_hash"`
	FuzzyHash     string    `json:"fuzzy_hash,omitempty"`
	TitleTokens   []string  `json:"title_tokens"`
	URLNormalized string    `json:"url_normalized,omitempty"`
	ContentLength int       `json:"content_length"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewFingerprint builds a fingerprint for the given content and metadata.
// The fuzzy hash is only computed when fuzzy detection is enabled, and the
// URL is only canonicalized when URL normalization is enabled.
func NewFingerprint(content string, metadata Metadata, n *Normalizer, includeFuzzy, normalizeURLs bool) (*ContentFingerprint, error) {
	normalized := n.NormalizeContent(content)

	metadataHash, err := hashMetadata(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to hash metadata: %w", err)
	}

	fp := &ContentFingerprint{
		ContentHash:   hashString(normalized),
		MetadataHash:  metadataHash,
		TitleTokens:   n.ExtractTitleTokens(extractTitle(content, metadata)),
		ContentLength: len(content),
		CreatedAt:     time.Now().UTC(),
	}

	if includeFuzzy {
		fp.FuzzyHash = fuzzyHash(normalized)
	}

	if normalizeURLs {
		if rawURL := metadata.URL(); rawURL != "" {
			fp.URLNormalized = n.NormalizeURL(rawURL)
		}
	}

	return fp, nil
}

// extractTitle picks the best available title source: the title field, then
// the subject field, then the first 100 characters of the content body.
func extractTitle(content string, metadata Metadata) string {
	if t := metadata.Title(); t != "" {
		return t
	}
	if s := metadata.Subject(); s != "" {
		return s
	}
	runes := []rune(content)
	if len(runes) > 100 {
		runes = runes[:100]
	}
	return string(runes)
}

// hashString returns the SHA-256 hex digest of s.
func hashString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// hashMetadata digests the canonical JSON form of the metadata map.
// encoding/json sorts map keys, so the digest is key-order independent.
func hashMetadata(metadata Metadata) (string, error) {
	if len(metadata) == 0 {
		return hashString("{}"), nil
	}
	data, err := json.Marshal(metadata)
	if err != nil {
		return "", err
	}
	return hashString(string(data)), nil
}
