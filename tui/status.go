package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/decorum/engine"
)

// renderStatusBar produces a full-width inverted status line showing the
// current scenario and its violation counts. The bar turns orange when the
// search was incomplete or a player starts with too few violations.
func (m Model) renderStatusBar() string {
	s := m.shell.Scenario
	if s == nil {
		bar := " No scenario | " + pending(m.shell.Request)
		return styleStatusWarn.Width(m.width).Render(pad(bar, "", m.width))
	}

	left := fmt.Sprintf(" %s | %dp %s | seed %d", s.ID.String()[:8], s.Players, s.Difficulty, s.Seed)
	if next := pending(m.shell.Request); nextDiffers(s, m.shell.Request) {
		left += " | next: " + next
	}

	v := s.Verify()
	counts := make([]string, len(v.Violations))
	for p, n := range v.Violations {
		counts[p] = fmt.Sprintf("P%d=%d", p+1, n)
	}
	right := fmt.Sprintf("%s | %d moves ", strings.Join(counts, " "), len(s.Moves))
	if !s.Complete {
		right = "incomplete | " + right
	}
	if lipgloss.Width(left)+lipgloss.Width(right)+2 >= m.width {
		right = fmt.Sprintf("%d moves ", len(s.Moves))
	}

	style := styleStatusBar
	if !s.Complete || !v.AllViolated || len(v.TargetFailures) > 0 {
		style = styleStatusWarn
	}
	return style.Width(m.width).Render(pad(left, right, m.width))
}

// pending describes the settings the next deal will use.
func pending(req engine.Request) string {
	diff := req.Difficulty
	if diff == "" {
		diff = "default"
	}
	if req.Players == 0 {
		return "players unset, " + diff
	}
	return fmt.Sprintf("%dp %s", req.Players, diff)
}

func nextDiffers(s *engine.Scenario, req engine.Request) bool {
	if req.Players != 0 && req.Players != s.Players {
		return true
	}
	return req.Difficulty != "" && req.Difficulty != s.Difficulty
}

func pad(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return left + strings.Repeat(" ", gap) + right
}
