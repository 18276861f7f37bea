package dedup

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
)

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]+>`)
	htmlEntityPattern = regexp.MustCompile(`&[a-zA-Z#0-9]+;`)
)

// stopWords are common short words excluded from title tokens. Tokens of
// length <= 2 are dropped before this set is consulted, so only longer
// articles, conjunctions and prepositions need to be listed.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"was": {}, "were": {}, "has": {}, "have": {}, "had": {}, "this": {},
	"that": {}, "with": {}, "from": {}, "into": {}, "over": {}, "under": {},
	"about": {}, "after": {}, "before": {}, "will": {}, "would": {},
	"can": {}, "could": {}, "should": {}, "its": {}, "their": {},
}

// Normalizer canonicalizes raw text, titles and URLs so that hashing and
// similarity comparisons are insensitive to formatting noise. It performs
// no I/O and never fails on ordinary input; malformed encodings are the
// caller's problem and are treated as opaque text.
type Normalizer struct {
	stripHTML          bool
	collapseWhitespace bool
	lowercase          bool
}

// NewNormalizer builds a Normalizer from the service configuration toggles.
func NewNormalizer(cfg Config) *Normalizer {
	return &Normalizer{
		stripHTML:          cfg.StripHTML,
		collapseWhitespace: cfg.NormalizeWhitespace,
		lowercase:          !cfg.CaseSensitive,
	}
}

// NormalizeContent produces the canonical form of a content body.
// HTML tags are removed with a regex, not a parser: this is a best-effort
// similarity signal, not a security boundary. Empty input returns "".
func (n *Normalizer) NormalizeContent(text string) string {
	if text == "" {
		return ""
	}

	if n.stripHTML {
		text = htmlTagPattern.ReplaceAllString(text, " ")
		text = htmlEntityPattern.ReplaceAllString(text, " ")
	}

	if n.collapseWhitespace {
		text = strings.Join(strings.Fields(text), " ")
	} else {
		text = strings.TrimSpace(text)
	}

	if n.lowercase {
		text = strings.ToLower(text)
	}

	return text
}

// NormalizeURL canonicalizes a URL for comparison purposes only: tracking
// query parameters are removed, the trailing slash is dropped and http is
// rewritten to https. The result is never dereferenced.
func (n *Normalizer) NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		// Unparseable URLs are compared as plain lowercase strings.
		return strings.ToLower(raw)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if u.Scheme == "http" {
		u.Scheme = "https"
	}
	u.Fragment = ""

	q := u.Query()
	for k := range q {
		lk := strings.ToLower(k)
		if strings.HasPrefix(lk, "utm_") || lk == "fbclid" || lk == "gclid" {
			q.Del(k)
		}
	}
	u.RawQuery = q.Encode()

	out := u.String()
	if strings.HasSuffix(out, "/") {
		out = strings.TrimRight(out, "/")
	}
	return out
}

// ExtractTitleTokens normalizes a title and returns its significant tokens
// as a sorted, deduplicated slice. Tokens of length <= 2 and stop words are
// discarded, so "The War in Gaza" and "War Gaza" tokenize identically.
func (n *Normalizer) ExtractTitleTokens(title string) []string {
	normalized := n.NormalizeContent(title)
	if normalized == "" {
		return nil
	}

	seen := make(map[string]struct{})
	for _, field := range strings.Fields(normalized) {
		token := strings.Trim(field, ".,;:!?\"'()[]{}")
		if len(token) <= 2 {
			continue
		}
		if _, ok := stopWords[strings.ToLower(token)]; ok {
			continue
		}
		seen[token] = struct{}{}
	}

	if len(seen) == 0 {
		return nil
	}

	tokens := make([]string, 0, len(seen))
	for token := range seen {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens
}
