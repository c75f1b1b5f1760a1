// Package cli provides terminal I/O, report formatting and command dispatch
// for the Decorum scenario generator.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nathoo/decorum/engine"
	"github.com/nathoo/decorum/engine/export"
	"github.com/nathoo/decorum/engine/parser"
	"github.com/nathoo/decorum/engine/render"
	"github.com/nathoo/decorum/engine/resolve"
	"github.com/nathoo/decorum/types"
)

// CLI handles terminal interaction with the scenario designer.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	ExportDir string
	Voices    bool
	EchoInput bool // echo each input line after the prompt (for script playback)

	// Request holds the settings used by the next "new".
	Request  engine.Request
	Scenario *engine.Scenario

	scanner *bufio.Scanner
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine) *CLI {
	return &CLI{
		Engine:    eng,
		In:        os.Stdin,
		Out:       os.Stdout,
		ExportDir: ".",
		Voices:    true,
	}
}

// Run generates a scenario if none is loaded, prompting for settings when no
// player count is set, then loops: prompt, input, dispatch, output.
func (c *CLI) Run() error {
	if c.Scenario == nil {
		if c.Request.Players == 0 {
			req, err := c.Prompt()
			if err != nil {
				return err
			}
			c.Request = req
		}
		if err := c.Generate(); err != nil {
			return err
		}
	}

	for {
		c.print("> ")
		line, ok := c.readLine()
		if !ok {
			return nil
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(line)
		}
		if c.Dispatch(parser.Parse(strings.TrimPrefix(line, "/"))) {
			return nil
		}
	}
}

// Generate deals a scenario from c.Request and prints its report.
func (c *CLI) Generate() error {
	s, err := c.Engine.Generate(c.Request)
	if err != nil {
		return err
	}
	c.Scenario = s
	Report(c.Out, s, c.Voices)
	return nil
}

// Dispatch runs one parsed command. Returns true if the session should end.
func (c *CLI) Dispatch(cmd types.Command) bool {
	switch cmd.Verb {
	case "":
		return false

	case "quit":
		c.printSystem("Goodbye.")
		return true

	case "help":
		c.cmdHelp()

	case "new":
		c.cmdNew(cmd)

	case "players":
		c.cmdPlayers(cmd)

	case "difficulty":
		c.cmdDifficulty(cmd)

	case "seed":
		c.cmdSeed(cmd)

	default:
		if c.Scenario == nil {
			c.printSystem("No scenario yet. Type 'new' to deal one.")
			return false
		}
		c.dispatchView(cmd)
	}
	return false
}

func (c *CLI) dispatchView(cmd types.Command) {
	s := c.Scenario
	switch cmd.Verb {
	case "show":
		c.cmdShow(cmd)
	case "rules":
		c.cmdRules(cmd)
	case "moves":
		c.print(MovesSection(s))
	case "verify":
		c.print(VerifySection(s))
		c.cmdReplay()
	case "stats":
		c.print(StatsSection(s))
	case "export":
		c.cmdExport(parser.Rest(cmd, 0))
	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type help for available commands.", cmd.Verb))
	}
}

func (c *CLI) cmdNew(cmd types.Command) {
	req := c.Request.Unseeded()
	for i, a := range cmd.Args {
		switch i {
		case 0:
			n, err := strconv.Atoi(a)
			if err != nil {
				c.printSystem(fmt.Sprintf("Player count must be a number, got %q.", a))
				return
			}
			req.Players = n
		case 1:
			req.Difficulty = a
		case 2:
			seed, err := strconv.ParseInt(a, 10, 64)
			if err != nil {
				c.printSystem(fmt.Sprintf("Seed must be a number, got %q.", a))
				return
			}
			req = req.WithSeed(seed)
		}
	}
	if req.Players == 0 {
		req.Players = engine.MinPlayers
	}
	c.deal(req)
}

func (c *CLI) cmdSeed(cmd types.Command) {
	if len(cmd.Args) == 0 {
		if c.Scenario != nil {
			c.printSystem(fmt.Sprintf("Seed: %d", c.Scenario.Seed))
		}
		return
	}
	seed, err := strconv.ParseInt(cmd.Args[0], 10, 64)
	if err != nil {
		c.printSystem(fmt.Sprintf("Seed must be a number, got %q.", cmd.Args[0]))
		return
	}
	req := c.Request.WithSeed(seed)
	if req.Players == 0 {
		req.Players = engine.MinPlayers
	}
	c.deal(req)
}

// deal generates from req, keeping the previous scenario on failure.
func (c *CLI) deal(req engine.Request) {
	s, err := c.Engine.Generate(req)
	if err != nil {
		c.printSystem(err.Error())
		return
	}
	c.Request = req.Unseeded()
	c.Scenario = s
	Report(c.Out, s, c.Voices)
}

func (c *CLI) cmdPlayers(cmd types.Command) {
	if len(cmd.Args) == 0 {
		c.printSystem(fmt.Sprintf("Players: %d", c.Request.Players))
		return
	}
	n, err := strconv.Atoi(cmd.Args[0])
	if err != nil || n < engine.MinPlayers || n > engine.MaxPlayers {
		c.printSystem(fmt.Sprintf("Players must be %d-%d.", engine.MinPlayers, engine.MaxPlayers))
		return
	}
	c.Request.Players = n
	c.printSystem(fmt.Sprintf("Players set to %d. Type 'new' to deal.", n))
}

func (c *CLI) cmdDifficulty(cmd types.Command) {
	if len(cmd.Args) == 0 {
		name := c.Request.Difficulty
		if name == "" {
			name = c.Engine.Presets.Default
		}
		c.printSystem(fmt.Sprintf("Difficulty: %s (available: %s)", name, strings.Join(c.Engine.Presets.Order, ", ")))
		return
	}
	d, err := c.Engine.Difficulty(parser.Rest(cmd, 0))
	if err != nil {
		c.printSystem(err.Error())
		return
	}
	c.Request.Difficulty = d.Name
	c.printSystem(fmt.Sprintf("Difficulty set to %s. Type 'new' to deal.", d.Name))
}

func (c *CLI) cmdShow(cmd types.Command) {
	s := c.Scenario
	which := "start"
	if len(cmd.Args) > 0 {
		which = cmd.Args[0]
	}
	switch which {
	case "start":
		c.print(BoardSection("INITIAL BOARD", s.Start))
	case "target":
		c.print(BoardSection("SOLUTION BOARD", s.Target))
	default:
		// "show kitchen" works as "show room kitchen".
		query := parser.Rest(cmd, 0)
		if which == "room" {
			query = parser.Rest(cmd, 1)
		}
		name, err := resolve.Name(query, s.Start.RoomNames())
		if err != nil {
			c.printSystem(fmt.Sprintf("Show what? (start, target, room <name>): %v", err))
			return
		}
		c.printLine(RoomLine("Initial ", s.Start, name))
		c.printLine(RoomLine("Solution", s.Target, name))
	}
}

func (c *CLI) cmdRules(cmd types.Command) {
	s := c.Scenario
	sp := NewSpeaker(s, c.Voices)
	if len(cmd.Args) == 0 {
		c.print(ConditionsSection(s, sp))
		return
	}
	p, err := c.player(cmd.Args[0])
	if err != nil {
		c.printSystem(err.Error())
		return
	}
	c.print(HandSection(s, p, sp))
}

// player resolves a 1-based seat number or a player name to a seat index.
func (c *CLI) player(arg string) (int, error) {
	n := c.Scenario.Players
	if i, err := strconv.Atoi(arg); err == nil {
		if i < 1 || i > n {
			return 0, fmt.Errorf("player must be 1-%d", n)
		}
		return i - 1, nil
	}
	var names []string
	for p := 0; p < n; p++ {
		names = append(names, render.PlayerName(p))
	}
	name, err := resolve.Name(arg, names)
	if err != nil {
		return 0, err
	}
	for p, nm := range names {
		if nm == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("no player %q", arg)
}

// cmdReplay round-trips the scenario through its export format and replays
// the move log.
func (c *CLI) cmdReplay() {
	data, err := export.Marshal(c.Scenario)
	if err == nil {
		var doc *export.Document
		if doc, err = export.Load(data); err == nil {
			err = export.Replay(doc)
		}
	}
	if err != nil {
		c.printLine(fmt.Sprintf("  Replay: FAIL (%v)", err))
		return
	}
	c.printLine(fmt.Sprintf("  Replay: search reproduced; %d moves lead from solution to initial. OK", len(c.Scenario.Moves)))
}

func (c *CLI) cmdExport(name string) {
	if name == "" {
		name = "scenario-" + c.Scenario.ID.String()[:8]
	}
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}

	data, err := export.Marshal(c.Scenario)
	if err != nil {
		c.printSystem(fmt.Sprintf("Export failed: %v", err))
		return
	}
	if err := os.MkdirAll(c.ExportDir, 0o755); err != nil {
		c.printSystem(fmt.Sprintf("Export failed: %v", err))
		return
	}
	path := filepath.Join(c.ExportDir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.printSystem(fmt.Sprintf("Export failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Scenario exported to %s.", path))
}

func (c *CLI) cmdHelp() {
	help := []string{
		"Setup:",
		"  new [players] [difficulty] [seed] — Deal a new scenario (gen, g)",
		"  players <2-4>                     — Set the player count",
		"  difficulty <name>                 — Set the tier (prefixes work)",
		"  seed <n>                          — Re-deal with a fixed seed",
		"",
		"Inspect:",
		"  show [start|target]    — Print a board (or just: start, target)",
		"  show room <name>       — One room on both boards",
		"  rules [player]         — Player conditions (by seat or name)",
		"  moves (log)            — Perturbation log",
		"  verify (check)         — Re-check constraints and replay the log",
		"  stats                  — Statistics",
		"  export [file]          — Write the scenario as JSON",
		"",
		"  help (?)               — Show this help",
		"  quit (q)               — Exit",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

// Prompt asks for player count, difficulty and seed. The player count is
// re-asked until it is in range; an unknown difficulty falls back to the
// default tier; a blank seed picks one.
func (c *CLI) Prompt() (engine.Request, error) {
	var req engine.Request

	for {
		c.print(fmt.Sprintf("  Number of players (%d-%d): ", engine.MinPlayers, engine.MaxPlayers))
		line, ok := c.readLine()
		if !ok {
			return req, errors.New("no player count given")
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			c.printLine("  Please enter a valid number.")
			continue
		}
		if n < engine.MinPlayers || n > engine.MaxPlayers {
			c.printLine("  Please enter 2, 3, or 4.")
			continue
		}
		req.Players = n
		break
	}

	p := c.Engine.Presets
	c.print(fmt.Sprintf("  Difficulty (%s) [%s]: ", strings.Join(p.Order, "/"), p.Default))
	line, _ := c.readLine()
	d, err := c.Engine.Difficulty(line)
	if err != nil {
		c.printLine(fmt.Sprintf("  %v; using %s.", err, p.Default))
		d, _ = c.Engine.Difficulty("")
	}
	req.Difficulty = d.Name

	for {
		c.print("  Random seed (blank for random): ")
		line, ok := c.readLine()
		if !ok || line == "" {
			break
		}
		seed, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			c.printLine("  Please enter a whole number or leave blank.")
			continue
		}
		req = req.WithSeed(seed)
		break
	}
	return req, nil
}

func (c *CLI) readLine() (string, bool) {
	if c.scanner == nil {
		c.scanner = bufio.NewScanner(c.In)
	}
	if !c.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.scanner.Text()), true
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
