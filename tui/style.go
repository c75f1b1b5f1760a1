package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/decorum/engine/board"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleStatusWarn = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("208")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleText = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleBanner = lipgloss.NewStyle().
			Foreground(lipgloss.Color("75")).
			Bold(true)

	styleHeading = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228")).
			Bold(true)

	styleBoard = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	styleOK = lipgloss.NewStyle().
		Foreground(lipgloss.Color("34"))

	styleViolated = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	styleUserInput = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34"))
)

// wallColors maps wall colors to terminal colors for the board grid.
var wallColors = map[board.Color]lipgloss.Color{
	board.Red:    lipgloss.Color("160"),
	board.Yellow: lipgloss.Color("220"),
	board.Blue:   lipgloss.Color("33"),
	board.Green:  lipgloss.Color("35"),
}

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindText lineKind = iota
	kindBanner
	kindHeading
	kindBoard
	kindOK
	kindViolated
	kindSystem
	kindError
)

// classifyLine determines what kind of report line this is.
func classifyLine(line string) lineKind {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, "====="):
		return kindBanner
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(trimmed, "|"), strings.HasPrefix(trimmed, "+-"),
		trimmed == strings.ToUpper(board.Upstairs), trimmed == strings.ToUpper(board.Downstairs):
		return kindBoard
	case strings.Contains(line, "BUG"), strings.Contains(line, "FAIL"), strings.Contains(line, "WARNING"):
		return kindError
	case strings.HasSuffix(trimmed, "[VIOLATED]"):
		return kindViolated
	case strings.HasSuffix(trimmed, "[OK]"), strings.HasSuffix(trimmed, ". OK"):
		return kindOK
	case strings.HasPrefix(trimmed, "Player ") && strings.Contains(trimmed, "(voice:"):
		return kindHeading
	default:
		return kindText
	}
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindBanner:
		return styleBanner.Render(line)
	case kindHeading:
		return styleHeading.Render(line)
	case kindBoard:
		return styledBoardLine(line)
	case kindOK:
		return styleOK.Render(line)
	case kindViolated:
		return styleViolated.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	default:
		return styleText.Render(line)
	}
}

// styledBoardLine renders a board grid line, tinting each "[<Color> walls]"
// marker in its wall color.
func styledBoardLine(line string) string {
	var sb strings.Builder
	rest := line
	for {
		i := strings.Index(rest, "[")
		if i < 0 {
			break
		}
		j := strings.Index(rest[i:], " walls]")
		if j < 0 {
			break
		}
		name := rest[i+1 : i+j]
		c, err := board.ParseColor(name)
		if err != nil {
			break
		}
		sb.WriteString(styleBoard.Render(rest[:i]))
		sb.WriteString(lipgloss.NewStyle().Foreground(wallColors[c]).Bold(true).Render(rest[i : i+j+len(" walls]")]))
		rest = rest[i+j+len(" walls]"):]
	}
	sb.WriteString(styleBoard.Render(rest))
	return sb.String()
}
