package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"dedupbot/dedup"
)

// itemHandler feeds Kafka messages through the deduplication service.
// Malformed messages are marked (dropped) rather than retried: redelivery
// cannot fix a bad payload.
type itemHandler struct {
	svc *dedup.Service
}

func (h *itemHandler) HandleMessage(ctx context.Context, message []byte) (bool, error) {
	var item dedup.ContentItem
	if err := json.Unmarshal(message, &item); err != nil {
		return true, fmt.Errorf("malformed content item: %w", err)
	}
	if item.ID == "" {
		return true, fmt.Errorf("content item missing id")
	}

	result := h.svc.CheckDuplicate(item.ID, item.Content, item.Metadata)
	if result.IsDuplicate {
		log.Printf("Duplicate %s of %s via %s (%.2f%% similarity)",
			item.ID, result.DuplicateOf, result.MethodUsed, result.SimilarityScore*100)
	} else {
		log.Printf("New content %s fingerprinted", item.ID)
	}

	return true, nil
}

// configFromEnv builds the service configuration from environment
// variables, falling back to defaults for anything unset.
// Supported variables: DEDUP_METHODS (comma-separated priority order),
// DEDUP_ACTION, DEDUP_FUZZY_THRESHOLD, DEDUP_TITLE_THRESHOLD,
// DEDUP_MAX_FINGERPRINTS, DEDUP_MAX_CONTENT_LENGTH, DEDUP_CASE_SENSITIVE.
func configFromEnv() dedup.Config {
	cfg := dedup.DefaultConfig()

	if v := os.Getenv("DEDUP_METHODS"); v != "" {
		var methods []dedup.Method
		for _, name := range strings.Split(v, ",") {
			methods = append(methods, dedup.Method(strings.TrimSpace(name)))
		}
		cfg.EnabledMethods = methods
	}
	if v := os.Getenv("DEDUP_ACTION"); v != "" {
		cfg.DefaultAction = dedup.Action(v)
	}
	if v := os.Getenv("DEDUP_FUZZY_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.FuzzyThreshold = f
		}
	}
	if v := os.Getenv("DEDUP_TITLE_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.TitleThreshold = f
		}
	}
	if v := os.Getenv("DEDUP_MAX_FINGERPRINTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxFingerprints = n
		}
	}
	if v := os.Getenv("DEDUP_MAX_CONTENT_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxContentLength = n
		}
	}
	if v := os.Getenv("DEDUP_CASE_SENSITIVE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.CaseSensitive = b
		}
	}

	return cfg
}
