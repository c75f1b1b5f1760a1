// Package engine provides the Generate() orchestrator that wires together
// board generation, candidate scoring, allocation and the perturbation
// search into one scenario.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nathoo/decorum/engine/assign"
	"github.com/nathoo/decorum/engine/board"
	"github.com/nathoo/decorum/engine/boardgen"
	"github.com/nathoo/decorum/engine/candidates"
	"github.com/nathoo/decorum/engine/constraint"
	"github.com/nathoo/decorum/engine/move"
	"github.com/nathoo/decorum/engine/perturb"
	"github.com/nathoo/decorum/engine/resolve"
	"github.com/nathoo/decorum/engine/rng"
	"github.com/nathoo/decorum/types"
)

// Player count bounds.
const (
	MinPlayers = 2
	MaxPlayers = 4
)

var (
	// ErrInvalidPlayers is returned for a player count outside 2-4.
	ErrInvalidPlayers = errors.New("players must be between 2 and 4")
	// ErrUnknownDifficulty is returned when a tier name resolves to nothing.
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)

// scenarioSpace namespaces scenario IDs.
var scenarioSpace = uuid.MustParse("6f1c2a8e-3b7d-5e40-9a21-d4c5b6e7f801")

// Engine holds the presets used for every generation.
type Engine struct {
	Presets *types.Presets
	Log     zerolog.Logger
}

// New creates an engine. A nil presets uses DefaultPresets.
func New(p *types.Presets) *Engine {
	if p == nil {
		p = DefaultPresets()
	}
	return &Engine{Presets: p, Log: zerolog.Nop()}
}

// Request is one generation request. Seed is used only when HasSeed is
// set, so zero is a seed like any other; without it a time-based seed is
// picked. An empty Difficulty uses the presets' default tier.
type Request struct {
	Players    int
	Difficulty string
	Seed       int64
	HasSeed    bool
}

// WithSeed returns a copy of req pinned to seed.
func (req Request) WithSeed(seed int64) Request {
	req.Seed = seed
	req.HasSeed = true
	return req
}

// Unseeded returns a copy of req that will pick a fresh seed.
func (req Request) Unseeded() Request {
	req.Seed = 0
	req.HasSeed = false
	return req
}

// Scenario is a generated puzzle: the hidden target, the dealt constraints,
// the visible start and the moves that lead from target to start.
type Scenario struct {
	ID         uuid.UUID
	Seed       int64
	Players    int
	Difficulty string
	Target     *board.Board
	Start      *board.Board
	Assignment assign.Assignment
	Moves      []move.Move
	Walked     int
	Violations []int
	Satisfied  int
	Attempts   int
	Complete   bool
	Candidates int
	Config     perturb.Config

	// SearchPosition is the generator position when the search started;
	// rng.Restore(Seed, SearchPosition) re-runs it.
	SearchPosition int64
}

// Difficulty resolves a tier name, accepting unambiguous prefixes.
func (e *Engine) Difficulty(name string) (types.Difficulty, error) {
	if name == "" {
		name = e.Presets.Default
	}
	canon, err := resolve.Name(name, e.Presets.Order)
	if err != nil {
		return types.Difficulty{}, fmt.Errorf("%w: %v", ErrUnknownDifficulty, err)
	}
	d, ok := e.Presets.Difficulties[canon]
	if !ok {
		return types.Difficulty{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, canon)
	}
	return d, nil
}

// Generate builds one scenario. Every random draw comes from a single
// generator seeded by the request, so equal requests give equal scenarios.
func (e *Engine) Generate(req Request) (*Scenario, error) {
	if req.Players < MinPlayers || req.Players > MaxPlayers {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPlayers, req.Players)
	}
	d, err := e.Difficulty(req.Difficulty)
	if err != nil {
		return nil, err
	}
	seed := req.Seed
	if !req.HasSeed {
		seed = time.Now().UnixNano()
	}

	log := e.Log.With().Int64("seed", seed).Int("players", req.Players).Str("difficulty", d.Name).Logger()
	r := rng.New(seed)

	target := boardgen.Generate(req.Players, d, r)
	log.Debug().Int("objects", target.ObjectCount()).Msg("target generated")

	pool := assign.Dedup(candidates.Generate(target, e.Presets.Scoring))
	log.Debug().Int("candidates", len(pool)).Msg("candidates scored")

	a := assign.Allocate(pool, target.Variant(), req.Players, d.RulesPerPlayer, e.Presets.Allocation, r)
	if n := len(a.All()); n < req.Players*d.RulesPerPlayer {
		log.Warn().Int("dealt", n).Int("wanted", req.Players*d.RulesPerPlayer).Msg("candidate pool ran dry")
	}

	cfg, err := SearchConfig(d, r.IntRange(d.PerturbMin, d.PerturbMax))
	if err != nil {
		return nil, err
	}
	pos := r.Position()
	res := perturb.Search(target, a, cfg, r)
	ev := log.Debug()
	if !res.Complete {
		ev = log.Warn()
	}
	ev.Int("moves", len(res.Moves)).
		Int("walked", res.Walked).
		Int("attempts", res.Attempts).
		Ints("violations", res.Violations).
		Msg("perturbation search finished")

	s := &Scenario{
		Seed:       seed,
		Players:    req.Players,
		Difficulty: d.Name,
		Target:     target,
		Start:      res.Board,
		Assignment: a,
		Moves:      res.Moves,
		Walked:     res.Walked,
		Violations: res.Violations,
		Satisfied:  res.Satisfied,
		Attempts:   res.Attempts,
		Complete:   res.Complete,
		Candidates: len(pool),
		Config:     cfg,

		SearchPosition: pos,
	}
	s.ID = ScenarioID(s)
	return s, nil
}

// SearchConfig builds the perturbation settings for tier d with the given
// step count.
func SearchConfig(d types.Difficulty, steps int) (perturb.Config, error) {
	cfg := perturb.DefaultConfig()
	cfg.Steps = steps
	if d.MinViolations > 0 {
		cfg.MinViolations = d.MinViolations
	}
	if d.MaxAttempts > 0 {
		cfg.MaxAttempts = d.MaxAttempts
	}
	if d.MaxExtraMoves > 0 {
		cfg.MaxExtraMoves = d.MaxExtraMoves
	}
	if len(d.MoveWeights) > 0 {
		cfg.Weights = make(map[move.Action]float64, len(d.MoveWeights))
		for name, w := range d.MoveWeights {
			a, err := move.ParseAction(name)
			if err != nil {
				return perturb.Config{}, fmt.Errorf("difficulty %s: %w", d.Name, err)
			}
			cfg.Weights[a] = w
		}
	}
	if len(d.AllowedMoves) > 0 {
		cfg.Allowed = make(map[move.Action]bool, len(d.AllowedMoves))
		for _, name := range d.AllowedMoves {
			a, err := move.ParseAction(name)
			if err != nil {
				return perturb.Config{}, fmt.Errorf("difficulty %s: %w", d.Name, err)
			}
			cfg.Allowed[a] = true
		}
	}
	return cfg, nil
}

// ScenarioID derives a stable ID from the request and both boards.
func ScenarioID(s *Scenario) uuid.UUID {
	name := fmt.Sprintf("%d/%d/%s/%s/%s", s.Seed, s.Players, s.Difficulty,
		s.Target.Fingerprint(), s.Start.Fingerprint())
	return uuid.NewSHA1(scenarioSpace, []byte(name))
}

// Failure is an assigned constraint that does not hold where it must.
type Failure struct {
	Player     int
	Constraint constraint.Constraint
}

// Verification summarizes the scenario's correctness checks.
type Verification struct {
	TargetFailures []Failure // constraints false on the target; always a defect
	Violations     []int     // false constraints per player on the start
	AllViolated    bool      // every player starts with at least the minimum
	Total          int       // constraints dealt
}

// Verify re-evaluates every assigned constraint on both boards.
func (s *Scenario) Verify() Verification {
	v := Verification{Violations: s.Assignment.Violations(s.Start), AllViolated: true}
	for p, cs := range s.Assignment {
		for _, c := range cs {
			v.Total++
			if !c.Evaluate(s.Target) {
				v.TargetFailures = append(v.TargetFailures, Failure{Player: p, Constraint: c})
			}
		}
	}
	for _, n := range v.Violations {
		if n < s.Config.MinViolations {
			v.AllViolated = false
		}
	}
	return v
}

// KindCounts returns how many times each constraint kind was dealt.
func (s *Scenario) KindCounts() map[constraint.Kind]int {
	out := map[constraint.Kind]int{}
	for _, c := range s.Assignment.All() {
		out[c.Kind]++
	}
	return out
}
