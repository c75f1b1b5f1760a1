// Package tui provides a full-screen Bubble Tea browser for generated
// scenarios. Commands are the same as the line-oriented shell; output is
// captured from it and styled per line.
package tui

import (
	"bytes"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/decorum/cli"
	"github.com/nathoo/decorum/engine/parser"
)

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text    string
	kind    lineKind
	isInput bool // true for echoed designer input
}

// Model is the Bubble Tea model for the scenario browser.
type Model struct {
	shell *cli.CLI
	out   *bytes.Buffer

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine
	intro    []string

	width    int
	height   int
	ready    bool
	quitting bool
}

// outputMsg carries command output into the Update loop.
type outputMsg struct {
	input string   // echoed input (empty for the first report)
	lines []string // output lines
}

// New creates a TUI model driving shell. The shell's output is redirected
// into the model. If the shell has no scenario yet, one is dealt from its
// current request.
func New(shell *cli.CLI) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	out := &bytes.Buffer{}
	shell.Out = out

	m := Model{
		shell:   shell,
		out:     out,
		input:   ti,
		history: NewHistory(100),
	}

	if shell.Scenario == nil {
		if err := shell.Generate(); err != nil {
			out.WriteString("[Could not deal a scenario: " + err.Error() + "]\n")
			out.WriteString("[Use 'players', 'difficulty' and 'new' to try again.]\n")
		}
	} else {
		cli.Report(out, shell.Scenario, shell.Voices)
	}
	m.intro = m.drain()
	return m
}

// Run starts the Bubble Tea program.
func Run(shell *cli.CLI) error {
	p := tea.NewProgram(New(shell), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init shows the first report.
func (m Model) Init() tea.Cmd {
	intro := m.intro
	return tea.Batch(textinput.Blink, func() tea.Msg {
		return outputMsg{lines: intro}
	})
}

// Update handles messages (key presses, window resize, command output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Prev(m.input.Value()); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			}
			return m, nil

		case "pgup", "pgdown", "ctrl+u", "ctrl+d":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case outputMsg:
		m = m.appendOutput(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m, nil
	}

	if strings.EqualFold(input, "again") {
		last, ok := m.history.Last()
		if !ok {
			m = m.appendOutput(outputMsg{input: input, lines: []string{"[Nothing to repeat.]"}})
			return m, nil
		}
		input = last
	}
	m.history.Push(input)

	if lines, ok := m.handleMeta(input); ok {
		m = m.appendOutput(outputMsg{input: input, lines: lines})
		return m, nil
	}

	cmd := parser.Parse(strings.TrimPrefix(input, "/"))
	quit := m.shell.Dispatch(cmd)
	lines := m.drain()
	if cmd.Verb == "help" {
		lines = append(lines, "", "Type 'keys' for screen commands and scrolling.")
	}
	m = m.appendOutput(outputMsg{input: input, lines: lines})
	if quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleMeta runs commands that only make sense on screen. Returns false if
// input is not one of them.
func (m *Model) handleMeta(input string) ([]string, bool) {
	switch strings.ToLower(strings.TrimPrefix(input, "/")) {
	case "clear", "cls":
		m.rawLines = nil
		return nil, true

	case "voices":
		m.shell.Voices = !m.shell.Voices
		state := "off"
		if m.shell.Voices {
			state = "on"
		}
		return []string{"[Player voices " + state + ". Type 'rules' to see them.]"}, true

	case "keys":
		return []string{
			"Screen:",
			"  clear           Clear the screen",
			"  voices          Toggle player voices in rules",
			"  again           Repeat the last command",
			"",
			"PgUp/PgDn or Ctrl+U/Ctrl+D to scroll, Up/Down for command history",
		}, true
	}
	return nil, false
}

// drain returns and clears the shell output captured so far.
func (m *Model) drain() []string {
	text := strings.TrimRight(m.out.String(), "\n")
	m.out.Reset()
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// appendOutput adds lines to the transcript and refreshes the viewport.
func (m Model) appendOutput(msg outputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{text: "> " + msg.input, isInput: true})
	}

	for _, line := range msg.lines {
		m.rawLines = append(m.rawLines, rawLine{text: line, kind: classifyLine(line)})
	}

	// Blank line separator between commands.
	if len(msg.lines) > 0 {
		m.rawLines = append(m.rawLines, rawLine{})
	}

	m.refreshViewport()
	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	styled := make([]string, 0, len(m.rawLines))
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		switch {
		case rl.isInput:
			styled = append(styled, styleUserInput.Render(wordWrap(rl.text, width)))
		case rl.kind == kindBoard, rl.kind == kindBanner:
			// Grids and rules are clipped, not wrapped.
			styled = append(styled, renderLineKind(clip(rl.text, width), rl.kind))
		default:
			styled = append(styled, renderLineKind(wordWrap(rl.text, width), rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries. Continuation lines keep the leading indent of the first line,
// plus two spaces.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	indent := text[:len(text)-len(strings.TrimLeft(text, " "))]
	hang := indent + "  "
	if len(hang) >= width/2 {
		hang = ""
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wLen := len(word)

		if i == 0 {
			result.WriteString(indent)
			result.WriteString(word)
			lineLen = len(indent) + wLen
			continue
		}

		if lineLen+1+wLen > width {
			result.WriteString("\n")
			result.WriteString(hang)
			result.WriteString(word)
			lineLen = len(hang) + wLen
		} else {
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}

	return result.String()
}

// clip cuts text to width bytes.
func clip(text string, width int) string {
	if len(text) <= width {
		return text
	}
	return text[:width]
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Dealing..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
