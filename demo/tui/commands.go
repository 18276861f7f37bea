package tui

import (
	"context"
	"time"

	"dedupbot/dedup"
	"dedupbot/demo/client"

	tea "github.com/charmbracelet/bubbletea"
)

// sampleItems is a fixed batch with planted duplicates: an exact copy, a
// whitespace/case variant, a light paraphrase, and a shared headline.
var sampleItems = []dedup.ContentItem{
	{
		ID:      "wire-001",
		Content: "The central bank raised interest rates by a quarter point on Wednesday, citing persistent inflation in services and housing.",
		Metadata: dedup.Metadata{
			"title": "Central bank raises rates by quarter point",
		},
	},
	{
		ID:      "wire-002",
		Content: "The central bank raised interest rates by a quarter point on Wednesday, citing persistent inflation in services and housing.",
		Metadata: dedup.Metadata{
			"title": "Central bank raises rates by quarter point",
		},
	},
	{
		ID:      "wire-003",
		Content: "The Central Bank   raised interest rates by a quarter point on Wednesday,  citing persistent inflation in services and housing.",
		Metadata: dedup.Metadata{
			"title": "Rates up a quarter point",
		},
	},
	{
		ID:      "wire-004",
		Content: "On Wednesday the central bank lifted interest rates by 25 basis points, pointing to stubborn inflation in services and housing.",
		Metadata: dedup.Metadata{
			"title": "Central bank lifts rates 25 basis points",
		},
	},
	{
		ID:      "wire-005",
		Content: "A new deep-sea survey has catalogued over five thousand previously unknown species in the Pacific seabed zone targeted for mining.",
		Metadata: dedup.Metadata{
			"title": "Deep-sea survey finds five thousand new species",
		},
	},
	{
		ID:      "wire-006",
		Content: "Researchers announced a record-breaking survey of Pacific seabed life this week, ahead of planned mining operations.",
		Metadata: dedup.Metadata{
			"title": "Deep-sea survey finds five thousand new species",
		},
	},
}

// clearStore creates a command that clears the fingerprint store
func clearStore(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return StoreClearedMsg{Err: c.ClearStore(ctx)}
	}
}

// checkSampleBatch creates a command that runs the sample items through the
// batch endpoint and fetches the updated counters
func checkSampleBatch(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		result, err := c.BatchCheck(ctx, sampleItems)
		if err != nil {
			return BatchCompleteMsg{Err: err}
		}

		stats, err := c.GetStats(ctx)
		if err != nil {
			return BatchCompleteMsg{Result: result, Err: err}
		}

		return BatchCompleteMsg{Result: result, Stats: stats}
	}
}
