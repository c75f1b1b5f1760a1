package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/nathoo/decorum/engine"
	"github.com/nathoo/decorum/engine/board"
	"github.com/nathoo/decorum/engine/constraint"
	"github.com/nathoo/decorum/engine/render"
	"github.com/nathoo/decorum/engine/rng"
)

const ruleWidth = 70

// Banner returns a section heading framed by rule lines.
func Banner(title string) string {
	line := strings.Repeat("=", ruleWidth)
	return line + "\n  " + title + "\n" + line + "\n"
}

// Speaker renders constraints for a report. With voices enabled each player
// speaks in their seat's voice and prefixes are drawn from a generator
// seeded by the scenario, so a report is reproducible.
type Speaker struct {
	voiced bool
	r      *rng.RNG
}

// NewSpeaker returns a Speaker for s.
func NewSpeaker(s *engine.Scenario, voiced bool) *Speaker {
	return &Speaker{voiced: voiced, r: rng.New(s.Seed)}
}

// Say renders c as spoken by player p.
func (sp *Speaker) Say(c constraint.Constraint, p int) string {
	if !sp.voiced {
		return render.Sentence(c)
	}
	return render.Voiced(c, render.PlayerVoice(p), sp.r)
}

// Header describes the generation request.
func Header(s *engine.Scenario) string {
	return fmt.Sprintf("  Scenario %s: %d players, %s difficulty, %d rules/player, %d perturbations, seed=%d\n",
		s.ID.String()[:8], s.Players, s.Difficulty, len(s.Assignment[0]), s.Config.Steps, s.Seed)
}

// BoardSection renders one board under a banner.
func BoardSection(label string, b *board.Board) string {
	return Banner(label) + b.Format()
}

// HandSection renders player p's constraints with their status on the start
// board. A constraint false on the target is flagged; that is always a defect.
func HandSection(s *engine.Scenario, p int, sp *Speaker) string {
	var sb strings.Builder
	rules := s.Assignment[p]
	violated := 0
	for _, c := range rules {
		if !c.Evaluate(s.Start) {
			violated++
		}
	}
	fmt.Fprintf(&sb, "\n  Player %d - %s (voice: %s)  [%d/%d violated on initial board]\n",
		p+1, render.PlayerName(p), render.PlayerVoice(p), violated, len(rules))
	sb.WriteString("  " + strings.Repeat("-", 60) + "\n")
	for i, c := range rules {
		status := "OK"
		if !c.Evaluate(s.Start) {
			status = "VIOLATED"
		}
		fmt.Fprintf(&sb, "    %d. %s  [%s]\n", i+1, sp.Say(c, p), status)
		if !c.Evaluate(s.Target) {
			sb.WriteString("       *** BUG: also violated on solution! ***\n")
		}
	}
	return sb.String()
}

// ConditionsSection renders every player's hand.
func ConditionsSection(s *engine.Scenario, sp *Speaker) string {
	var sb strings.Builder
	sb.WriteString(Banner("PLAYER CONDITIONS"))
	for p := range s.Assignment {
		sb.WriteString(HandSection(s, p, sp))
	}
	return sb.String()
}

// MovesSection renders the move log from solution to initial board.
func MovesSection(s *engine.Scenario) string {
	var sb strings.Builder
	sb.WriteString(Banner(fmt.Sprintf("PERTURBATION LOG  (%d moves from solution -> initial)", len(s.Moves))))
	for i, m := range s.Moves {
		tag := ""
		if i >= s.Walked {
			tag = "  (repair)"
		}
		fmt.Fprintf(&sb, "    %d. %s%s\n", i+1, m.Describe(), tag)
	}
	if len(s.Moves) == 0 {
		sb.WriteString("    (no perturbations applied)\n")
	}
	return sb.String()
}

// VerifySection re-checks the scenario.
func VerifySection(s *engine.Scenario) string {
	var sb strings.Builder
	sb.WriteString(Banner("VERIFICATION"))
	v := s.Verify()
	for _, f := range v.TargetFailures {
		fmt.Fprintf(&sb, "  FAIL on solution: Player %d: %s\n", f.Player+1, f.Constraint)
	}
	if len(v.TargetFailures) == 0 {
		fmt.Fprintf(&sb, "  All %d constraints satisfied by solution. OK\n", v.Total)
	}

	parts := make([]string, len(v.Violations))
	for p, n := range v.Violations {
		parts[p] = fmt.Sprintf("P%d=%d", p+1, n)
	}
	status := "  OK"
	if !v.AllViolated {
		status = fmt.Sprintf("  WARNING: some players start with fewer than %d violation(s)!", s.Config.MinViolations)
	}
	fmt.Fprintf(&sb, "  Violations on initial board: %s%s\n", strings.Join(parts, ", "), status)

	search := "complete"
	if !s.Complete {
		search = fmt.Sprintf("incomplete (%d/%d players satisfied)", s.Satisfied, s.Players)
	}
	fmt.Fprintf(&sb, "  Search: %s after %d attempt(s)\n", search, s.Attempts)
	return sb.String()
}

// StatsSection summarizes the scenario.
func StatsSection(s *engine.Scenario) string {
	var sb strings.Builder
	sb.WriteString(Banner("STATISTICS"))
	fmt.Fprintf(&sb, "  Solution objects: %d\n", s.Target.ObjectCount())
	fmt.Fprintf(&sb, "  Initial objects:  %d\n", s.Start.ObjectCount())
	fmt.Fprintf(&sb, "  Perturbation moves: %d (%d walked, %d repair)\n", len(s.Moves), s.Walked, len(s.Moves)-s.Walked)
	fmt.Fprintf(&sb, "  Solution wall colors: %s\n", walls(s.Target))
	fmt.Fprintf(&sb, "  Initial wall colors:  %s\n", walls(s.Start))

	per := make([]string, len(s.Assignment))
	for p, cs := range s.Assignment {
		per[p] = fmt.Sprint(len(cs))
	}
	fmt.Fprintf(&sb, "  Constraints per player: [%s]\n", strings.Join(per, ", "))
	fmt.Fprintf(&sb, "  Candidate pool: %d\n", s.Candidates)

	counts := s.KindCounts()
	kinds := make([]constraint.Kind, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	dist := make([]string, len(kinds))
	for i, k := range kinds {
		dist[i] = fmt.Sprintf("%s=%d", k, counts[k])
	}
	fmt.Fprintf(&sb, "  Constraint types: %s\n", strings.Join(dist, ", "))
	fmt.Fprintf(&sb, "  Scenario ID: %s\n", s.ID)
	return sb.String()
}

// RoomLine renders one room on one line.
func RoomLine(label string, b *board.Board, name string) string {
	r, ok := b.Room(name)
	if !ok {
		return fmt.Sprintf("  %s  %s: no such room", label, name)
	}
	objs := r.Objects()
	parts := make([]string, len(objs))
	for i, tok := range objs {
		parts[i] = tok.String()
	}
	contents := "empty"
	if len(parts) > 0 {
		contents = strings.Join(parts, ", ")
	}
	return fmt.Sprintf("  %s  %s [%s walls]: %s", label, r.Name, r.Wall, contents)
}

func walls(b *board.Board) string {
	rooms := b.Rooms()
	out := make([]string, len(rooms))
	for i, r := range rooms {
		out[i] = r.Wall.String()
	}
	return "[" + strings.Join(out, ", ") + "]"
}

// Report writes the full scenario report.
func Report(w io.Writer, s *engine.Scenario, voiced bool) {
	sp := NewSpeaker(s, voiced)
	fmt.Fprint(w, Header(s))
	fmt.Fprintln(w)
	fmt.Fprint(w, BoardSection("INITIAL BOARD  (Setup - visible to all players)", s.Start))
	fmt.Fprintln(w)
	fmt.Fprint(w, BoardSection("SOLUTION BOARD  (Hidden - scenario designer only)", s.Target))
	fmt.Fprintln(w)
	fmt.Fprint(w, ConditionsSection(s, sp))
	fmt.Fprintln(w)
	fmt.Fprint(w, MovesSection(s))
	fmt.Fprintln(w)
	fmt.Fprint(w, VerifySection(s))
	fmt.Fprintln(w)
	fmt.Fprint(w, StatsSection(s))
}
