package dedup

// Method identifies a duplicate-detection strategy.
type Method string

const (
	MethodExactHash       Method = "exact_hash"
	MethodFuzzyHash       Method = "fuzzy_hash"
	MethodTitleSimilarity Method = "title_similarity"
)

// Action is the policy decision attached to a deduplication result.
type Action string

const (
	ActionSkip            Action = "skip"
	ActionMerge           Action = "merge"
	ActionKeepLatest      Action = "keep_latest"
	ActionKeepBestQuality Action = "keep_best_quality"
	ActionFlag            Action = "flag"
)

// Detector is a single duplicate-detection strategy. Detectors are
// stateless: each call receives the current read-only snapshot of stored
// fingerprints and must not retain or mutate it.
type Detector interface {
	// Method identifies the strategy for result reporting.
	Method() Method

	// Detect reports whether the content duplicates an existing
	// fingerprint, the similarity score of the best candidate, and the
	// matched fingerprint (nil when no duplicate was found).
	Detect(content string, metadata Metadata, existing []*ContentFingerprint) (bool, float64, *ContentFingerprint)
}

// ExactHashDetector matches byte-for-byte duplicates of the normalized
// content by comparing SHA-256 digests.
type ExactHashDetector struct {
	normalizer *Normalizer
}

// NewExactHashDetector creates an exact-hash detector.
func NewExactHashDetector(n *Normalizer) *ExactHashDetector {
	return &ExactHashDetector{normalizer: n}
}

// Method implements Detector.
func (d *ExactHashDetector) Method() Method { return MethodExactHash }

// Detect hashes the normalized content and scans for an identical content
// hash. Hash equality is exact, so the first match is the only match.
func (d *ExactHashDetector) Detect(content string, metadata Metadata, existing []*ContentFingerprint) (bool, float64, *ContentFingerprint) {
	contentHash := hashString(d.normalizer.NormalizeContent(content))

	for _, fp := range existing {
		if fp.ContentHash == contentHash {
			return true, 1.0, fp
		}
	}

	return false, 0.0, nil
}
