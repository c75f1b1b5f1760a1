package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nathoo/decorum/engine"
	"github.com/nathoo/decorum/engine/export"
)

func newTestCLI(t *testing.T, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	c := &CLI{
		Engine:    engine.New(nil),
		In:        strings.NewReader(input),
		Out:       &out,
		ExportDir: t.TempDir(),
		Request:   engine.Request{Players: 3, Difficulty: "medium", Seed: 9, HasSeed: true},
	}
	return c, &out
}

func TestCLI_ReportOnStart(t *testing.T) {
	c, out := newTestCLI(t, "quit\n")
	if err := c.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	output := out.String()
	for _, want := range []string{
		"INITIAL BOARD",
		"SOLUTION BOARD",
		"PLAYER CONDITIONS",
		"Player 3 - Carol (voice: passionate)",
		"PERTURBATION LOG",
		"VERIFICATION",
		"STATISTICS",
		"seed=9",
		"[Goodbye.]",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output", want)
		}
	}
	if strings.Contains(output, "BUG") {
		t.Error("report flags a constraint false on the solution")
	}
}

func TestCLI_ReportIsReproducible(t *testing.T) {
	a, outA := newTestCLI(t, "")
	b, outB := newTestCLI(t, "")
	if err := a.Run(); err != nil {
		t.Fatal(err)
	}
	if err := b.Run(); err != nil {
		t.Fatal(err)
	}
	if outA.String() != outB.String() {
		t.Error("same seed should print the same report, voices included")
	}
}

func TestCLI_Commands(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"help", "help\n", "Setup:"},
		{"show target", "target\n", "SOLUTION BOARD"},
		{"show room", "show room kitchen\n", "Solution  Kitchen ["},
		{"show room shorthand", "show the kitchen\n", "Initial   Kitchen ["},
		{"bad room", "show attic\n", "Show what?"},
		{"rules by seat", "rules 2\n", "Player 2 - Bob"},
		{"rules by name", "player carol\n", "Player 3 - Carol"},
		{"rules bad seat", "rules 7\n", "player must be 1-3"},
		{"moves", "log\n", "moves from solution -> initial"},
		{"verify", "check\n", "Replay:"},
		{"stats", "stats\n", "Candidate pool:"},
		{"unknown", "dance\n", "Unknown command: dance"},
		{"players", "players 4\n", "Players set to 4"},
		{"players range", "players 9\n", "Players must be 2-4"},
		{"difficulty prefix", "diff ha\n", "Difficulty set to hard"},
		{"difficulty unknown", "difficulty brutal\n", "unknown difficulty"},
		{"slash prefix", "/help\n", "Inspect:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, out := newTestCLI(t, tt.input)
			if err := c.Run(); err != nil {
				t.Fatalf("Run: %v", err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("expected %q in output:\n%s", tt.want, out.String())
			}
		})
	}
}

func TestCLI_VerifyReplays(t *testing.T) {
	c, out := newTestCLI(t, "verify\n")
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "lead from solution to initial. OK") {
		t.Errorf("replay did not succeed:\n%s", out.String())
	}
}

func TestCLI_SeedRedeals(t *testing.T) {
	c, _ := newTestCLI(t, "seed 77\n")
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	if c.Scenario.Seed != 77 {
		t.Errorf("seed = %d, want 77", c.Scenario.Seed)
	}
	if c.Request.HasSeed {
		t.Error("a fixed seed should not stick to the next deal")
	}
}

func TestCLI_NewWithArgs(t *testing.T) {
	c, _ := newTestCLI(t, "new 2 easy 5\n")
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	s := c.Scenario
	if s.Players != 2 || s.Difficulty != "easy" || s.Seed != 5 {
		t.Errorf("scenario = %d/%s/%d, want 2/easy/5", s.Players, s.Difficulty, s.Seed)
	}
}

func TestCLI_NewKeepsScenarioOnError(t *testing.T) {
	c, out := newTestCLI(t, "new 9\n")
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	if c.Scenario.Players != 3 {
		t.Errorf("failed deal replaced the scenario")
	}
	if !strings.Contains(out.String(), "players must be between 2 and 4") {
		t.Errorf("expected player count error in output")
	}
}

func TestCLI_Export(t *testing.T) {
	c, out := newTestCLI(t, "export mine\n")
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(c.ExportDir, "mine.json")
	if !strings.Contains(out.String(), "Scenario exported to "+path) {
		t.Errorf("expected export confirmation, got:\n%s", out.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	doc, err := export.Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.ID != c.Scenario.ID {
		t.Errorf("exported ID %s, want %s", doc.ID, c.Scenario.ID)
	}
}

func TestCLI_CommentsAndEcho(t *testing.T) {
	c, out := newTestCLI(t, "# a comment\nstats\n")
	c.EchoInput = true
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out.String(), "a comment") {
		t.Error("comment lines should be skipped")
	}
	if !strings.Contains(out.String(), "> stats\n") {
		t.Error("expected echoed input")
	}
}

func TestPrompt(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		players int
		diff    string
		seed    int64
		seeded  bool
	}{
		{"all given", "3\nhard\n42\n", 3, "hard", 42, true},
		{"defaults", "2\n\n\n", 2, "medium", 0, false},
		{"re-ask players", "x\n7\n4\neasy\n\n", 4, "easy", 0, false},
		{"prefix difficulty", "2\nmed\n1\n", 2, "medium", 1, true},
		{"unknown difficulty", "2\nbrutal\n\n", 2, "medium", 0, false},
		{"re-ask seed", "2\neasy\nabc\n8\n", 2, "easy", 8, true},
		{"zero seed", "2\neasy\n0\n", 2, "easy", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCLI(t, tt.input)
			req, err := c.Prompt()
			if err != nil {
				t.Fatalf("Prompt: %v", err)
			}
			if req.Players != tt.players || req.Difficulty != tt.diff || req.Seed != tt.seed || req.HasSeed != tt.seeded {
				t.Errorf("got %+v, want %d/%s/%d seeded=%v", req, tt.players, tt.diff, tt.seed, tt.seeded)
			}
		})
	}
}

func TestPrompt_EOF(t *testing.T) {
	c, _ := newTestCLI(t, "")
	if _, err := c.Prompt(); err == nil {
		t.Fatal("expected error when input ends before a player count")
	}
}

func TestRun_PromptsWithoutPlayers(t *testing.T) {
	c, out := newTestCLI(t, "2\neasy\n3\nquit\n")
	c.Request = engine.Request{}
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Number of players") {
		t.Error("expected player prompt")
	}
	if c.Scenario.Players != 2 || c.Scenario.Seed != 3 {
		t.Errorf("scenario = %d players seed %d", c.Scenario.Players, c.Scenario.Seed)
	}
}

func TestReport_PlainSentences(t *testing.T) {
	s, err := engine.New(nil).Generate(engine.Request{Players: 2, Difficulty: "easy", Seed: 4, HasSeed: true})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	Report(&buf, s, false)
	for _, prefix := range []string{"It is essential", "I'd really like"} {
		if strings.Contains(buf.String(), prefix) {
			t.Errorf("plain report should not carry voice prefix %q", prefix)
		}
	}
}

func TestCLI_SeedZeroIsKept(t *testing.T) {
	c, _ := newTestCLI(t, "seed 0\nverify\n")
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	if c.Scenario.Seed != 0 {
		t.Errorf("seed = %d, want 0", c.Scenario.Seed)
	}
	first := c.Scenario.ID

	c2, _ := newTestCLI(t, "new 3 medium 0\n")
	if err := c2.Run(); err != nil {
		t.Fatal(err)
	}
	if c2.Scenario.ID != first {
		t.Error("seed 0 should deal the same scenario every time")
	}
}
