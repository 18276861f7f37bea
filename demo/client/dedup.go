package client

import (
	"context"
	"net/http"

	"dedupbot/dedup"
)

// BatchResult mirrors the batch endpoint response.
type BatchResult struct {
	Results    []*dedup.Result `json:"results"`
	NewCount   int             `json:"new_count"`
	DupCount   int             `json:"duplicate_count"`
	TotalCount int             `json:"total_count"`
}

// CheckDuplicate checks a single content item via the API
func (c *Client) CheckDuplicate(ctx context.Context, item dedup.ContentItem) (*dedup.Result, error) {
	payload := map[string]interface{}{
		"content_id": item.ID,
		"content":    item.Content,
		"metadata":   item.Metadata,
	}

	var result dedup.Result
	if err := c.doJSONRequest(ctx, http.MethodPost, "/api/dedup/check", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// BatchCheck checks multiple content items via the API
func (c *Client) BatchCheck(ctx context.Context, items []dedup.ContentItem) (*BatchResult, error) {
	payload := map[string]interface{}{
		"items": items,
	}

	var result BatchResult
	if err := c.doJSONRequest(ctx, http.MethodPost, "/api/dedup/batch", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetStats fetches the running deduplication counters via the API
func (c *Client) GetStats(ctx context.Context) (*dedup.Stats, error) {
	var stats dedup.Stats
	if err := c.doJSONRequest(ctx, http.MethodGet, "/api/dedup/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetCount gets the number of stored fingerprints via the API
func (c *Client) GetCount(ctx context.Context) (int, error) {
	var result struct {
		Count int `json:"count"`
	}
	if err := c.doJSONRequest(ctx, http.MethodGet, "/api/dedup/count", nil, &result); err != nil {
		return 0, err
	}
	return result.Count, nil
}

// ClearStore clears the fingerprint store via the API
func (c *Client) ClearStore(ctx context.Context) error {
	return c.doJSONRequest(ctx, http.MethodDelete, "/api/dedup/clear", nil, nil)
}
