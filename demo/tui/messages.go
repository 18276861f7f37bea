package tui

import (
	"dedupbot/dedup"
	"dedupbot/demo/client"
)

// Messages for the tea program

// StoreClearedMsg is sent when the fingerprint store has been cleared
type StoreClearedMsg struct {
	Err error
}

// BatchCompleteMsg is sent when the sample batch has been checked
type BatchCompleteMsg struct {
	Result *client.BatchResult
	Stats  *dedup.Stats
	Err    error
}
