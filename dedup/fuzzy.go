package dedup

import (
	"sort"
	"strings"
)

const (
	// shingleSize is the character n-gram width used for fuzzy hashing.
	shingleSize = 5

	// shingleHashLen is the hex-digit prefix kept from each shingle hash.
	shingleHashLen = 8

	// maxShingleHashes bounds the fingerprint size regardless of document
	// length: only the lexicographically smallest hashes are kept.
	maxShingleHashes = 50
)

// FuzzyHashDetector catches near-duplicates (minor rewording, added or
// removed paragraphs) by comparing shingle-based fuzzy hashes.
//
// Note on accuracy: the final digest is a cryptographic hash of the sampled
// shingle hashes, so nearly identical shingle sets can still produce fuzzy
// hashes that differ in many character positions. Documents must share the
// same top-50 shingle sample to score highly. A direct Jaccard comparison
// of the shingle sets would be a stronger signal; the hash form is kept
// because it stores in constant space per fingerprint.
type FuzzyHashDetector struct {
	normalizer *Normalizer
	threshold  float64
}

// NewFuzzyHashDetector creates a fuzzy-hash detector with the given
// similarity threshold.
func NewFuzzyHashDetector(n *Normalizer, threshold float64) *FuzzyHashDetector {
	return &FuzzyHashDetector{normalizer: n, threshold: threshold}
}

// Method implements Detector.
func (d *FuzzyHashDetector) Method() Method { return MethodFuzzyHash }

// Detect computes the candidate's fuzzy hash and reports the best
// similarity found across all existing fingerprints, not just the first
// one over the threshold.
func (d *FuzzyHashDetector) Detect(content string, metadata Metadata, existing []*ContentFingerprint) (bool, float64, *ContentFingerprint) {
	candidate := fuzzyHash(d.normalizer.NormalizeContent(content))
	if candidate == "" {
		return false, 0.0, nil
	}

	var (
		bestScore float64
		bestMatch *ContentFingerprint
	)

	for _, fp := range existing {
		if fp.FuzzyHash == "" {
			continue
		}
		if score := fuzzySimilarity(candidate, fp.FuzzyHash); score > bestScore {
			bestScore = score
			bestMatch = fp
		}
	}

	if bestScore >= d.threshold && bestMatch != nil {
		return true, bestScore, bestMatch
	}
	return false, bestScore, nil
}

// fuzzyHash fingerprints normalized content by shingling: every contiguous
// 5-character substring is hashed, the hash prefixes are deduplicated and
// sorted, the smallest 50 are concatenated and the result is hashed again.
// Content shorter than one shingle is treated as a single shingle.
func fuzzyHash(normalized string) string {
	if normalized == "" {
		return ""
	}

	runes := []rune(normalized)
	seen := make(map[string]struct{})

	if len(runes) < shingleSize {
		h := hashString(string(runes))
		seen[h[:shingleHashLen]] = struct{}{}
	} else {
		for i := 0; i+shingleSize <= len(runes); i++ {
			h := hashString(string(runes[i : i+shingleSize]))
			seen[h[:shingleHashLen]] = struct{}{}
		}
	}

	hashes := make([]string, 0, len(seen))
	for h := range seen {
		hashes = append(hashes, h)
	}
	sort.Strings(hashes)

	if len(hashes) > maxShingleHashes {
		hashes = hashes[:maxShingleHashes]
	}

	return hashString(strings.Join(hashes, ""))
}

// fuzzySimilarity compares two fuzzy hashes by the fraction of matching
// characters at matching positions. Hashes of unequal length never match.
func fuzzySimilarity(a, b string) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0.0
	}

	matches := 0
	for i := 0; i < len(a); i++ {
		if a[i] == b[i] {
			matches++
		}
	}
	return float64(matches) / float64(len(a))
}
