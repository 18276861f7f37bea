package dedup

import (
	"log"
	"sync"
	"time"
)

// Default configuration values.
const (
	DefaultExactThreshold    = 1.0
	DefaultFuzzyThreshold    = 0.85
	DefaultSemanticThreshold = 0.90
	DefaultTitleThreshold    = 0.95
	DefaultURLThreshold      = 0.95
	DefaultMaxContentLength  = 50000
	DefaultMaxFingerprints   = 10000
	DefaultBatchSize         = 100
)

// Config holds the deduplication service configuration. Use DefaultConfig
// as the base and override fields as needed; zero-valued thresholds and
// limits are replaced with defaults at construction time.
type Config struct {
	// Per-method similarity thresholds.
	ExactThreshold float64
	FuzzyThreshold float64
	TitleThreshold float64
	// SemanticThreshold and URLThreshold are reserved: no embedding
	// backend or URL detector is wired in this build.
	SemanticThreshold float64
	URLThreshold      float64

	// EnabledMethods lists detection strategies in priority order.
	// Earlier methods short-circuit later ones.
	EnabledMethods []Method

	// DefaultAction is the policy decision attached to duplicate results.
	DefaultAction Action

	// MaxContentLength truncates oversized content before processing.
	MaxContentLength int

	// MaxFingerprints bounds in-memory fingerprint count; the oldest 10%
	// are evicted when the bound is reached.
	MaxFingerprints int

	// BatchSize chunks batch checks for memory locality.
	BatchSize int

	// Normalization toggles.
	NormalizeWhitespace bool
	StripHTML           bool
	NormalizeURLs       bool
	CaseSensitive       bool
}

// DefaultConfig returns the standard configuration: all three detectors in
// exact -> fuzzy -> title order, case-insensitive whitespace-normalizing
// comparison, and skip as the duplicate action.
func DefaultConfig() Config {
	return Config{
		ExactThreshold:      DefaultExactThreshold,
		FuzzyThreshold:      DefaultFuzzyThreshold,
		SemanticThreshold:   DefaultSemanticThreshold,
		TitleThreshold:      DefaultTitleThreshold,
		URLThreshold:        DefaultURLThreshold,
		EnabledMethods:      []Method{MethodExactHash, MethodFuzzyHash, MethodTitleSimilarity},
		DefaultAction:       ActionSkip,
		MaxContentLength:    DefaultMaxContentLength,
		MaxFingerprints:     DefaultMaxFingerprints,
		BatchSize:           DefaultBatchSize,
		NormalizeWhitespace: true,
		StripHTML:           true,
		NormalizeURLs:       true,
	}
}

func applyConfigDefaults(config Config) Config {
	if config.ExactThreshold == 0 {
		config.ExactThreshold = DefaultExactThreshold
	}
	if config.FuzzyThreshold == 0 {
		config.FuzzyThreshold = DefaultFuzzyThreshold
	}
	if config.SemanticThreshold == 0 {
		config.SemanticThreshold = DefaultSemanticThreshold
	}
	if config.TitleThreshold == 0 {
		config.TitleThreshold = DefaultTitleThreshold
	}
	if config.URLThreshold == 0 {
		config.URLThreshold = DefaultURLThreshold
	}
	if len(config.EnabledMethods) == 0 {
		config.EnabledMethods = []Method{MethodExactHash, MethodFuzzyHash, MethodTitleSimilarity}
	}
	if config.DefaultAction == "" {
		config.DefaultAction = ActionSkip
	}
	if config.MaxContentLength == 0 {
		config.MaxContentLength = DefaultMaxContentLength
	}
	if config.MaxFingerprints == 0 {
		config.MaxFingerprints = DefaultMaxFingerprints
	}
	if config.BatchSize == 0 {
		config.BatchSize = DefaultBatchSize
	}
	return config
}

// Result is the outcome of a single duplicate check.
type Result struct {
	IsDuplicate      bool                `json:"is_duplicate"`
	MethodUsed       Method              `json:"method_used,omitempty"`
	SimilarityScore  float64             `json:"similarity_score"`
	DuplicateOf      string              `json:"duplicate_of,omitempty"`
	ActionTaken      Action              `json:"action_taken"`
	Fingerprint      *ContentFingerprint `json:"fingerprint,omitempty"`
	ProcessingTimeMs float64             `json:"processing_time_ms"`
	CheckedAt        time.Time           `json:"checked_at"`
}

// Stats tracks deduplication counters across the service lifetime.
type Stats struct {
	TotalChecks   int            `json:"total_checks"`
	Duplicates    int            `json:"duplicates"`
	Unique        int            `json:"unique"`
	DuplicateRate float64        `json:"duplicate_rate"`
	ByMethod      map[Method]int `json:"by_method"`
}

// Service orchestrates duplicate detection: it owns the fingerprint store
// and runs the configured detectors in priority order against a snapshot
// of it. Detection is advisory, so the service fails open: an internal
// failure yields a "not duplicate" result instead of blocking the caller.
type Service struct {
	cfg        Config
	normalizer *Normalizer
	detectors  []Detector
	store      *Store

	statsMu sync.Mutex
	stats   Stats
}

// NewService builds a Service from the configuration. Detectors are
// instantiated once, in the order given by EnabledMethods.
func NewService(config Config) *Service {
	cfg := applyConfigDefaults(config)
	normalizer := NewNormalizer(cfg)

	detectors := make([]Detector, 0, len(cfg.EnabledMethods))
	for _, method := range cfg.EnabledMethods {
		switch method {
		case MethodExactHash:
			detectors = append(detectors, NewExactHashDetector(normalizer))
		case MethodFuzzyHash:
			detectors = append(detectors, NewFuzzyHashDetector(normalizer, cfg.FuzzyThreshold))
		case MethodTitleSimilarity:
			detectors = append(detectors, NewTitleSimilarityDetector(normalizer, cfg.TitleThreshold))
		default:
			log.Printf("Warning: unknown detection method %q, skipping", method)
		}
	}

	return &Service{
		cfg:        cfg,
		normalizer: normalizer,
		detectors:  detectors,
		store:      NewStore(cfg.MaxFingerprints),
		stats:      Stats{ByMethod: make(map[Method]int)},
	}
}

// CheckDuplicate runs the enabled detectors against the stored fingerprints
// in priority order. The first positive match wins and later methods are
// never tried. When no method matches, a fresh fingerprint is computed and
// stored, and the result carries it with ActionKeepLatest.
//
// CheckDuplicate never fails: oversized content is truncated, and any
// internal panic is recovered and reported as a non-duplicate with zero
// confidence so a deduplication bug can never block ingestion.
func (s *Service) CheckDuplicate(contentID, content string, metadata Metadata) (result *Result) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("Warning: duplicate check failed for %s: %v", contentID, r)
			result = s.failOpenResult(start)
		}
	}()

	content = s.truncate(contentID, content)

	snapshot := s.store.Snapshot()
	for _, detector := range s.detectors {
		isDup, score, match := detector.Detect(content, metadata, snapshot)
		if !isDup {
			continue
		}

		// The ID mapping can be gone if eviction removed it after the
		// fingerprint matched; the result then has no resolvable origin.
		duplicateOf, ok := s.store.ResolveContentID(match.ContentHash)
		if !ok {
			log.Printf("Warning: matched fingerprint %.12s has no content-ID mapping", match.ContentHash)
		}

		s.recordCheck(detector.Method())
		return &Result{
			IsDuplicate:      true,
			MethodUsed:       detector.Method(),
			SimilarityScore:  score,
			DuplicateOf:      duplicateOf,
			ActionTaken:      s.cfg.DefaultAction,
			Fingerprint:      match,
			ProcessingTimeMs: elapsedMs(start),
			CheckedAt:        start,
		}
	}

	fp, err := NewFingerprint(content, metadata, s.normalizer, s.fuzzyEnabled(), s.cfg.NormalizeURLs)
	if err != nil {
		log.Printf("Warning: failed to fingerprint %s: %v", contentID, err)
		return s.failOpenResult(start)
	}

	s.store.Insert(fp, contentID)
	s.recordCheck("")

	return &Result{
		IsDuplicate:      false,
		SimilarityScore:  0.0,
		ActionTaken:      ActionKeepLatest,
		Fingerprint:      fp,
		ProcessingTimeMs: elapsedMs(start),
		CheckedAt:        start,
	}
}

// BatchCheckDuplicates processes items sequentially in BatchSize chunks.
// Chunking is purely for memory locality; the semantics are identical to
// repeated single calls.
func (s *Service) BatchCheckDuplicates(items []ContentItem) []*Result {
	results := make([]*Result, 0, len(items))

	for offset := 0; offset < len(items); offset += s.cfg.BatchSize {
		end := offset + s.cfg.BatchSize
		if end > len(items) {
			end = len(items)
		}
		for _, item := range items[offset:end] {
			results = append(results, s.CheckDuplicate(item.ID, item.Content, item.Metadata))
		}
	}

	return results
}

// Stats returns a copy of the running counters.
func (s *Service) Stats() Stats {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()

	out := s.stats
	out.ByMethod = make(map[Method]int, len(s.stats.ByMethod))
	for method, count := range s.stats.ByMethod {
		out.ByMethod[method] = count
	}
	return out
}

// Count returns the number of stored fingerprints.
func (s *Service) Count() int { return s.store.Len() }

// Clear removes all stored fingerprints and resets the statistics.
func (s *Service) Clear() {
	s.store.Clear()

	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	s.stats = Stats{ByMethod: make(map[Method]int)}
}

// truncate enforces MaxContentLength. Oversized content is cut, not
// rejected; the check proceeds on the prefix.
func (s *Service) truncate(contentID, content string) string {
	if len(content) <= s.cfg.MaxContentLength {
		return content
	}

	runes := []rune(content)
	if len(runes) <= s.cfg.MaxContentLength {
		return content
	}

	log.Printf("Warning: content %s exceeds %d characters (%d), truncating",
		contentID, s.cfg.MaxContentLength, len(runes))
	return string(runes[:s.cfg.MaxContentLength])
}

func (s *Service) fuzzyEnabled() bool {
	for _, method := range s.cfg.EnabledMethods {
		if method == MethodFuzzyHash {
			return true
		}
	}
	return false
}

func (s *Service) failOpenResult(start time.Time) *Result {
	s.recordCheck("")
	return &Result{
		IsDuplicate:      false,
		SimilarityScore:  0.0,
		ActionTaken:      ActionKeepLatest,
		ProcessingTimeMs: elapsedMs(start),
		CheckedAt:        start,
	}
}

// recordCheck updates counters; an empty method means the item was unique.
func (s *Service) recordCheck(method Method) {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()

	s.stats.TotalChecks++
	if method == "" {
		s.stats.Unique++
	} else {
		s.stats.Duplicates++
		s.stats.ByMethod[method]++
	}
	s.stats.DuplicateRate = float64(s.stats.Duplicates) / float64(s.stats.TotalChecks)
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
