package tui

import (
	"fmt"
	"strings"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	// Title
	b.WriteString(TitleStyle.Render("DedupBot Demo"))
	b.WriteString("\n\n")

	// Current state
	b.WriteString(m.getStateText())
	b.WriteString("\n\n")

	// Logs
	if len(m.Logs) > 0 {
		b.WriteString(InfoStyle.Render("Recent activity:"))
		b.WriteString("\n")
		for _, logMsg := range m.Logs {
			b.WriteString(InfoStyle.Render("   " + logMsg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Results
	if m.State == StateComplete && len(m.Results) > 0 {
		b.WriteString(BoxStyle.Render(m.formatResults()))
		b.WriteString("\n\n")
	}

	// Help text
	if m.State == StateIdle {
		b.WriteString(InfoStyle.Render("Press 'd' to run demo | Press 'q' or Ctrl+C to quit"))
	} else if m.State == StateComplete || m.State == StateError {
		b.WriteString(InfoStyle.Render("Press 'd' to run again | Press 'q' or Ctrl+C to quit"))
	} else {
		b.WriteString(InfoStyle.Render("Press 'q' or Ctrl+C to quit"))
	}

	return b.String()
}

// formatResults renders the per-item verdicts and the running counters
func (m Model) formatResults() string {
	var b strings.Builder

	b.WriteString(HighlightStyle.Render("Duplicate Check Results"))
	b.WriteString("\n\n")

	for i, result := range m.Results {
		id := sampleItems[i].ID
		if result.IsDuplicate {
			line := fmt.Sprintf("%s  DUPLICATE of %s (%s, %.0f%%)",
				id, result.DuplicateOf, result.MethodUsed, result.SimilarityScore*100)
			b.WriteString(ErrorStyle.Render(line))
		} else {
			b.WriteString(StatusStyle.Render(fmt.Sprintf("%s  NEW", id)))
		}
		b.WriteString("\n")
	}

	if m.Stats != nil {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Total checks: %d | Duplicate rate: %.0f%%\n",
			m.Stats.TotalChecks, m.Stats.DuplicateRate*100))
		for method, count := range m.Stats.ByMethod {
			b.WriteString(InfoStyle.Render(fmt.Sprintf("  %s: %d", method, count)))
			b.WriteString("\n")
		}
	}

	return b.String()
}
