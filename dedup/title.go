package dedup

// TitleSimilarityDetector catches republished content: the same headline
// over a different body, as seen with syndication and press-release
// reposts. Titles alone are weak evidence, so the default threshold is
// intentionally strict.
type TitleSimilarityDetector struct {
	normalizer *Normalizer
	threshold  float64
}

// NewTitleSimilarityDetector creates a title-similarity detector with the
// given Jaccard threshold.
func NewTitleSimilarityDetector(n *Normalizer, threshold float64) *TitleSimilarityDetector {
	return &TitleSimilarityDetector{normalizer: n, threshold: threshold}
}

// Method implements Detector.
func (d *TitleSimilarityDetector) Method() Method { return MethodTitleSimilarity }

// Detect tokenizes the candidate title and reports the best Jaccard
// similarity against every stored fingerprint's title tokens. Empty token
// sets on either side never match.
func (d *TitleSimilarityDetector) Detect(content string, metadata Metadata, existing []*ContentFingerprint) (bool, float64, *ContentFingerprint) {
	tokens := d.normalizer.ExtractTitleTokens(extractTitle(content, metadata))
	if len(tokens) == 0 {
		return false, 0.0, nil
	}

	candidate := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		candidate[token] = struct{}{}
	}

	var (
		bestScore float64
		bestMatch *ContentFingerprint
	)

	for _, fp := range existing {
		if score := jaccardSimilarity(candidate, fp.TitleTokens); score > bestScore {
			bestScore = score
			bestMatch = fp
		}
	}

	if bestScore >= d.threshold && bestMatch != nil {
		return true, bestScore, bestMatch
	}
	return false, bestScore, nil
}

// jaccardSimilarity computes |A∩B| / |A∪B| between a token set and a
// deduplicated token slice. Either side being empty yields 0.
func jaccardSimilarity(candidate map[string]struct{}, tokens []string) float64 {
	if len(candidate) == 0 || len(tokens) == 0 {
		return 0.0
	}

	intersection := 0
	for _, token := range tokens {
		if _, ok := candidate[token]; ok {
			intersection++
		}
	}

	union := len(candidate) + len(tokens) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}
