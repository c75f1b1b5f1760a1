// Decorum deals scenarios for the Decorum house-decorating puzzle: a hidden
// solution board, a start board a few moves away from it, and a hand of
// conditions per player.
// Usage: decorum [players] [difficulty] [seed] [flags]
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nathoo/decorum/cli"
	"github.com/nathoo/decorum/engine"
	"github.com/nathoo/decorum/engine/export"
	"github.com/nathoo/decorum/loader"
	"github.com/nathoo/decorum/tui"
	"github.com/nathoo/decorum/types"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type options struct {
	players    int
	difficulty string
	seed       int64
	hasSeed    bool
	presets    string
	script     string
	exportDir  string
	plain      bool
	json       bool
	voices     bool
}

func main() {
	_ = godotenv.Load()
	log := newLogger(getEnv("LOG_LEVEL", "warn"))

	if err := newRootCmd(log).Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()
}

func newRootCmd(log zerolog.Logger) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "decorum [players] [difficulty] [seed]",
		Short: "Generate Decorum puzzle scenarios",
		Long: `Generate a Decorum scenario: a hidden solution board, a start board a few
moves away from it, and private conditions for each player.

Examples:
  decorum                      prompt for settings, then browse
  decorum 3 hard               deal for three players on hard
  decorum 2 easy 42 --plain    reproducible plain-text report
  decorum 4 --json > s.json    export a scenario document`,
		Args:          cobra.MaximumNArgs(3),
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyArgs(cmd, opts, args); err != nil {
				return err
			}
			err := run(opts, log)
			if err != nil {
				log.Error().Err(err).Msg("decorum failed")
			}
			return err
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.players, "players", "p", 0, "Number of players, 2-4 (prompted if unset)")
	f.StringVarP(&opts.difficulty, "difficulty", "d", "", "Difficulty tier, or an unambiguous prefix")
	f.Int64VarP(&opts.seed, "seed", "s", 0, "Random seed (picked from the clock if unset)")
	f.StringVar(&opts.presets, "presets", os.Getenv("DECORUM_PRESETS"), "Lua preset file or directory (env DECORUM_PRESETS)")
	f.StringVar(&opts.script, "script", "", "Run commands from a file after dealing, echoing each one")
	f.StringVarP(&opts.exportDir, "out", "o", ".", "Directory for 'export'")
	f.BoolVar(&opts.plain, "plain", false, "Plain text instead of the full-screen browser")
	f.BoolVar(&opts.json, "json", false, "Print the scenario as JSON and exit")
	f.BoolVar(&opts.voices, "voices", true, "Render conditions in each player's voice")
	return cmd
}

// applyArgs fills options from positional arguments. Flags given explicitly
// take precedence. A seed given either way is used as is, zero included.
func applyArgs(cmd *cobra.Command, opts *options, args []string) error {
	changed := cmd.Flags().Changed
	opts.hasSeed = changed("seed")
	for i, arg := range args {
		switch i {
		case 0:
			n, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("players must be a number, got %q", arg)
			}
			if !changed("players") {
				opts.players = n
			}
		case 1:
			if !changed("difficulty") {
				opts.difficulty = arg
			}
		case 2:
			n, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				return fmt.Errorf("seed must be a number, got %q", arg)
			}
			if !changed("seed") {
				opts.seed = n
			}
			opts.hasSeed = true
		}
	}
	return nil
}

func run(opts *options, log zerolog.Logger) error {
	presets, err := loadPresets(opts.presets, log)
	if err != nil {
		return err
	}

	eng := engine.New(presets)
	eng.Log = log

	shell := cli.New(eng)
	shell.ExportDir = opts.exportDir
	shell.Voices = opts.voices
	shell.Request = engine.Request{Players: opts.players, Difficulty: opts.difficulty}
	if opts.hasSeed {
		shell.Request = shell.Request.WithSeed(opts.seed)
	}

	if opts.json {
		if shell.Request.Players == 0 {
			return fmt.Errorf("--json needs a player count")
		}
		s, err := eng.Generate(shell.Request)
		if err != nil {
			return err
		}
		data, err := export.Marshal(s)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}

	// Script mode: deal, then play the file back through the shell.
	if opts.script != "" {
		f, err := os.Open(opts.script)
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		defer f.Close()
		if shell.Request.Players == 0 {
			return fmt.Errorf("--script needs a player count")
		}
		shell.In = f
		shell.EchoInput = true
		return shell.Run()
	}

	if shell.Request.Players == 0 {
		if !isTerminal(os.Stdin) {
			return fmt.Errorf("no player count given and stdin is not a terminal")
		}
		req, err := shell.Prompt()
		if err != nil {
			return err
		}
		shell.Request = req
	}

	// Use the plain shell if asked or stdout is not a terminal.
	if opts.plain || !isTerminal(os.Stdout) {
		if !isTerminal(os.Stdin) {
			return shell.Generate()
		}
		return shell.Run()
	}

	// Log lines on stderr would tear the full-screen view.
	eng.Log = log.Level(zerolog.ErrorLevel)
	return tui.Run(shell)
}

func loadPresets(path string, log zerolog.Logger) (*types.Presets, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	p, err := loader.Load(path, log)
	if err != nil {
		return nil, fmt.Errorf("loading presets: %w", err)
	}
	return p, nil
}

// isTerminal returns true if f is a terminal (not piped/redirected).
func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
