package tui

import (
	"fmt"

	"dedupbot/dedup"
	"dedupbot/demo/client"

	tea "github.com/charmbracelet/bubbletea"
)

// State represents the demo state machine
type State string

const (
	StateIdle     State = "idle"
	StateClearing State = "clearing"
	StateChecking State = "checking"
	StateComplete State = "complete"
	StateError    State = "error"
)

// Model represents the TUI client state (thin client over the API)
type Model struct {
	AppClient *client.Client

	State   State
	Results []*dedup.Result
	Stats   *dedup.Stats
	Logs    []string
	Err     error
}

// NewModel creates a new TUI model
func NewModel(serverURL string) Model {
	return Model{
		AppClient: client.NewClient(serverURL),
		State:     StateIdle,
		Logs:      make([]string, 0),
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return nil
}

// AddLog appends a log line, keeping the most recent entries
func (m Model) AddLog(msg string) Model {
	m.Logs = append(m.Logs, msg)
	if len(m.Logs) > 8 {
		m.Logs = m.Logs[len(m.Logs)-8:]
	}
	return m
}

// getStateText returns the appropriate state message
func (m Model) getStateText() string {
	switch m.State {
	case StateIdle:
		return HighlightStyle.Render("Ready to start!") + "\n\n" +
			InfoStyle.Render("Press 'd' to run the demo against " + m.AppClient.BaseURL())
	case StateClearing:
		return StatusStyle.Render("Clearing fingerprint store...")
	case StateChecking:
		return StatusStyle.Render("Checking sample items for duplicates...")
	case StateComplete:
		return HighlightStyle.Render("COMPLETE")
	case StateError:
		errMsg := "Unknown error"
		if m.Err != nil {
			errMsg = m.Err.Error()
		}
		return ErrorStyle.Render(fmt.Sprintf("Error: %v", errMsg))
	default:
		return ""
	}
}
