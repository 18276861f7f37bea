package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case StoreClearedMsg:
		return m.handleStoreCleared(msg)
	case BatchCompleteMsg:
		return m.handleBatchComplete(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "d", "D":
		if m.State == StateIdle || m.State == StateComplete || m.State == StateError {
			m.State = StateClearing
			m.Results = nil
			m.Stats = nil
			m.Err = nil
			m = m.AddLog("Clearing fingerprint store...")
			return m, clearStore(m.AppClient)
		}
	}
	return m, nil
}

// handleStoreCleared processes store clearing completion
func (m Model) handleStoreCleared(msg StoreClearedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = fmt.Errorf("failed to clear store: %w", msg.Err)
		return m, nil
	}
	m.State = StateChecking
	m = m.AddLog("Store cleared")
	m = m.AddLog(fmt.Sprintf("Sending %d sample items...", len(sampleItems)))
	return m, checkSampleBatch(m.AppClient)
}

// handleBatchComplete processes batch check completion
func (m Model) handleBatchComplete(msg BatchCompleteMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}
	m.Results = msg.Result.Results
	m.Stats = msg.Stats
	m.State = StateComplete
	m = m.AddLog(fmt.Sprintf("Checked %d items: %d new, %d duplicate(s)",
		msg.Result.TotalCount, msg.Result.NewCount, msg.Result.DupCount))
	return m, nil
}
