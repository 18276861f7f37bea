package dedup

import (
	"testing"
)

func mustFingerprint(t *testing.T, content string, metadata Metadata) *ContentFingerprint {
	t.Helper()

	fp, err := NewFingerprint(content, metadata, newTestNormalizer(), true, true)
	if err != nil {
		t.Fatalf("failed to build fingerprint: %v", err)
	}
	return fp
}

func TestExactHashDetectorMatchesIdenticalContent(t *testing.T) {
	n := newTestNormalizer()
	detector := NewExactHashDetector(n)

	existing := []*ContentFingerprint{
		mustFingerprint(t, "completely unrelated text about cooking pasta", nil),
		mustFingerprint(t, "This is a sample article about machine learning and AI.", nil),
	}

	isDup, score, match := detector.Detect("This is a sample article about machine learning and AI.", nil, existing)
	if !isDup {
		t.Fatal("expected exact duplicate")
	}
	if score != 1.0 {
		t.Fatalf("expected score 1.0, got %v", score)
	}
	if match != existing[1] {
		t.Fatal("matched the wrong fingerprint")
	}
}

func TestExactHashDetectorIgnoresCaseAndWhitespace(t *testing.T) {
	detector := NewExactHashDetector(newTestNormalizer())

	existing := []*ContentFingerprint{mustFingerprint(t, "Hello   World", nil)}

	isDup, score, _ := detector.Detect("hello world", nil, existing)
	if !isDup || score != 1.0 {
		t.Fatalf("expected normalized exact match, got isDup=%v score=%v", isDup, score)
	}
}

func TestExactHashDetectorNoMatch(t *testing.T) {
	detector := NewExactHashDetector(newTestNormalizer())

	existing := []*ContentFingerprint{mustFingerprint(t, "an article about gardening", nil)}

	isDup, score, match := detector.Detect("a report on deep sea mining", nil, existing)
	if isDup || score != 0.0 || match != nil {
		t.Fatalf("expected no match, got isDup=%v score=%v match=%v", isDup, score, match)
	}
}

func TestFuzzyHashDeterministic(t *testing.T) {
	a := fuzzyHash("this is a sample article about machine learning")
	b := fuzzyHash("this is a sample article about machine learning")
	if a == "" || a != b {
		t.Fatalf("fuzzy hash not deterministic: %q vs %q", a, b)
	}
}

func TestFuzzyHashShortContent(t *testing.T) {
	if got := fuzzyHash(""); got != "" {
		t.Fatalf("expected empty fuzzy hash for empty input, got %q", got)
	}
	if got := fuzzyHash("hi"); got == "" {
		t.Fatal("expected non-empty fuzzy hash for short input")
	}
}

func TestFuzzySimilarity(t *testing.T) {
	if got := fuzzySimilarity("abc", "abc"); got != 1.0 {
		t.Fatalf("identical hashes: expected 1.0, got %v", got)
	}
	if got := fuzzySimilarity("abc", "abd"); got < 0.66 || got > 0.67 {
		t.Fatalf("expected ~2/3, got %v", got)
	}
	if got := fuzzySimilarity("abc", "abcd"); got != 0.0 {
		t.Fatalf("unequal lengths: expected 0, got %v", got)
	}
	if got := fuzzySimilarity("", ""); got != 0.0 {
		t.Fatalf("empty hashes: expected 0, got %v", got)
	}
}

func TestFuzzyHashDetectorIdenticalContent(t *testing.T) {
	detector := NewFuzzyHashDetector(newTestNormalizer(), DefaultFuzzyThreshold)

	content := "This is a sample article about machine learning and AI."
	existing := []*ContentFingerprint{mustFingerprint(t, content, nil)}

	isDup, score, match := detector.Detect(content, nil, existing)
	if !isDup || score != 1.0 || match == nil {
		t.Fatalf("identical content should fuzzy-match: isDup=%v score=%v", isDup, score)
	}
}

// A paraphrase produces some similarity score in [0, 1]; whether it crosses
// the threshold depends on how the final digest scatters the shingle
// sample, so only the bucket is asserted.
func TestFuzzyHashDetectorParaphraseScoreBucket(t *testing.T) {
	detector := NewFuzzyHashDetector(newTestNormalizer(), DefaultFuzzyThreshold)

	existing := []*ContentFingerprint{
		mustFingerprint(t, "This is a sample article about machine learning and AI.", nil),
	}

	_, score, _ := detector.Detect(
		"This article discusses machine learning and artificial intelligence.", nil, existing)
	if score < 0.0 || score > 1.0 {
		t.Fatalf("similarity score out of range: %v", score)
	}
}

func TestFuzzyHashDetectorSkipsFingerprintsWithoutFuzzyHash(t *testing.T) {
	detector := NewFuzzyHashDetector(newTestNormalizer(), DefaultFuzzyThreshold)

	fp, err := NewFingerprint("some stored content body", nil, newTestNormalizer(), false, true)
	if err != nil {
		t.Fatalf("failed to build fingerprint: %v", err)
	}

	isDup, score, _ := detector.Detect("some stored content body", nil, []*ContentFingerprint{fp})
	if isDup || score != 0.0 {
		t.Fatalf("expected no fuzzy comparison without stored fuzzy hash, got isDup=%v score=%v", isDup, score)
	}
}

func TestJaccardSimilarityBoundaries(t *testing.T) {
	toSet := func(tokens ...string) map[string]struct{} {
		set := make(map[string]struct{}, len(tokens))
		for _, token := range tokens {
			set[token] = struct{}{}
		}
		return set
	}

	if got := jaccardSimilarity(toSet("aaa", "bbb"), []string{"aaa", "bbb"}); got != 1.0 {
		t.Fatalf("identical sets: expected 1.0, got %v", got)
	}
	if got := jaccardSimilarity(toSet("aaa", "bbb"), []string{"ccc", "ddd"}); got != 0.0 {
		t.Fatalf("disjoint sets: expected 0.0, got %v", got)
	}
	got := jaccardSimilarity(toSet("aaa", "bbb", "ccc"), []string{"aaa", "bbb"})
	if got < 0.666 || got > 0.667 {
		t.Fatalf("expected 2/3, got %v", got)
	}
	if got := jaccardSimilarity(toSet(), []string{"aaa"}); got != 0.0 {
		t.Fatalf("empty candidate: expected 0.0, got %v", got)
	}
	if got := jaccardSimilarity(toSet("aaa"), nil); got != 0.0 {
		t.Fatalf("empty stored tokens: expected 0.0, got %v", got)
	}
}

func TestTitleSimilarityDetectorMatchesSameHeadline(t *testing.T) {
	detector := NewTitleSimilarityDetector(newTestNormalizer(), DefaultTitleThreshold)

	metadata := Metadata{"title": "Quarterly Results Beat Analyst Expectations"}
	existing := []*ContentFingerprint{
		mustFingerprint(t, "full original article body text", metadata),
	}

	isDup, score, match := detector.Detect("a completely rewritten syndicated body", metadata, existing)
	if !isDup {
		t.Fatalf("expected title match, score=%v", score)
	}
	if score != 1.0 || match == nil {
		t.Fatalf("expected score 1.0 with match, got %v", score)
	}
}

func TestTitleSimilarityDetectorUsesSubjectFallback(t *testing.T) {
	detector := NewTitleSimilarityDetector(newTestNormalizer(), DefaultTitleThreshold)

	existing := []*ContentFingerprint{
		mustFingerprint(t, "body", Metadata{"subject": "Server Maintenance Window Tonight"}),
	}

	isDup, _, _ := detector.Detect("other body", Metadata{"subject": "Server Maintenance Window Tonight"}, existing)
	if !isDup {
		t.Fatal("expected subject-based title match")
	}
}

func TestTitleSimilarityDetectorEmptyTokensNeverMatch(t *testing.T) {
	detector := NewTitleSimilarityDetector(newTestNormalizer(), DefaultTitleThreshold)

	existing := []*ContentFingerprint{mustFingerprint(t, "", Metadata{"title": ""})}

	isDup, score, _ := detector.Detect("", Metadata{"title": ""}, existing)
	if isDup || score != 0.0 {
		t.Fatalf("empty titles must not match: isDup=%v score=%v", isDup, score)
	}
}

func TestTitleSimilarityDetectorBelowThreshold(t *testing.T) {
	detector := NewTitleSimilarityDetector(newTestNormalizer(), DefaultTitleThreshold)

	existing := []*ContentFingerprint{
		mustFingerprint(t, "body", Metadata{"title": "Markets Rally After Rate Decision Surprise"}),
	}

	isDup, score, _ := detector.Detect("body", Metadata{"title": "Markets Slide After Rate Decision Surprise"}, existing)
	if isDup {
		t.Fatalf("4/6 token overlap should stay below the 0.95 threshold, got score %v", score)
	}
	if score <= 0.0 || score >= 1.0 {
		t.Fatalf("expected partial similarity, got %v", score)
	}
}
