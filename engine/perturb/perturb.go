// Package perturb walks backward from a target board to a starting board on
// which every player has something left to fix.
//
// One attempt is a weighted random walk that never undoes its previous move
// and never revisits a board, followed by a bounded repair phase that breaks
// still-true constraints of players with too few violations. Attempts repeat
// from a fresh copy of the target and the first best-scoring one wins.
package perturb

import (
	"github.com/nathoo/decorum/engine/assign"
	"github.com/nathoo/decorum/engine/board"
	"github.com/nathoo/decorum/engine/move"
	"github.com/nathoo/decorum/engine/rng"
)

// Config controls one search.
type Config struct {
	Steps         int                     `json:"steps"`
	MinViolations int                     `json:"min_violations"`
	Allowed       map[move.Action]bool    `json:"allowed,omitempty"` // nil allows every action
	Weights       map[move.Action]float64 `json:"weights,omitempty"` // missing actions weigh 1.0
	MaxAttempts   int                     `json:"max_attempts"`
	MaxExtraMoves int                     `json:"max_extra_moves"`
}

// DefaultConfig returns the stock search settings.
func DefaultConfig() Config {
	return Config{
		Steps:         6,
		MinViolations: 1,
		Weights: map[move.Action]float64{
			move.Paint:  1.0,
			move.Swap:   1.5,
			move.Remove: 0.8,
			move.Add:    0.3,
		},
		MaxAttempts:   30,
		MaxExtraMoves: 10,
	}
}

func (c Config) weight(a move.Action) float64 {
	if w, ok := c.Weights[a]; ok {
		return w
	}
	return 1.0
}

// Result is the best attempt found. A shortfall in steps or violations is
// reported here, never as an error.
type Result struct {
	Board      *board.Board
	Moves      []move.Move
	Walked     int   // leading moves produced by the random walk
	Violations []int // false constraints per player on Board
	Satisfied  int   // players meeting MinViolations
	Attempts   int
	Complete   bool // every player meets MinViolations
}

// Search runs up to cfg.MaxAttempts attempts from target and returns the
// best. target is never modified.
func Search(target *board.Board, a assign.Assignment, cfg Config, r *rng.RNG) Result {
	attempts := max(cfg.MaxAttempts, 1)

	best := Result{Satisfied: -1}
	for i := 1; i <= attempts; i++ {
		at := newAttempt(target, a, cfg, r)
		at.walk()
		at.repair()

		v := a.Violations(at.board)
		sat := satisfied(v, cfg.MinViolations)
		if sat > best.Satisfied {
			best = Result{
				Board:      at.board,
				Moves:      at.moves,
				Walked:     at.walked,
				Violations: v,
				Satisfied:  sat,
			}
		}
		best.Attempts = i
		if sat == a.Players() {
			break
		}
	}
	best.Complete = best.Satisfied == a.Players()
	return best
}

func satisfied(violations []int, minimum int) int {
	n := 0
	for _, v := range violations {
		if v >= minimum {
			n++
		}
	}
	return n
}

// attempt is the state of one walk: its own board, visited set and log.
type attempt struct {
	cfg     Config
	a       assign.Assignment
	r       *rng.RNG
	board   *board.Board
	visited map[board.Fingerprint]bool
	moves   []move.Move
	walked  int
}

func newAttempt(target *board.Board, a assign.Assignment, cfg Config, r *rng.RNG) *attempt {
	b := target.Clone()
	return &attempt{
		cfg:     cfg,
		a:       a,
		r:       r,
		board:   b,
		visited: map[board.Fingerprint]bool{b.Fingerprint(): true},
	}
}

// undoes reports whether m exactly reverses the last accepted move.
func (at *attempt) undoes(m move.Move) bool {
	return len(at.moves) > 0 && m == at.moves[len(at.moves)-1].Inverse()
}

func (at *attempt) accept(m move.Move, next *board.Board) {
	at.board = next
	at.visited[next.Fingerprint()] = true
	at.moves = append(at.moves, m)
}

// walk takes up to cfg.Steps random moves, stopping early if no move is
// drawable.
func (at *attempt) walk() {
	for step := 0; step < at.cfg.Steps; step++ {
		m, next, ok := at.draw()
		if !ok {
			return
		}
		at.accept(m, next)
		at.walked++
	}
}

// draw samples legal moves by action weight without replacement until one
// is neither an immediate undo nor a revisit.
func (at *attempt) draw() (move.Move, *board.Board, bool) {
	legal := move.Legal(at.board, at.cfg.Allowed)
	at.r.Shuffle(len(legal), func(i, j int) { legal[i], legal[j] = legal[j], legal[i] })

	moves := legal[:0]
	var weights []float64
	for _, m := range legal {
		if w := at.cfg.weight(m.Action); w > 0 {
			moves = append(moves, m)
			weights = append(weights, w)
		}
	}

	for len(moves) > 0 {
		i := at.r.WeightedSelect(weights)
		m := moves[i]
		moves = append(moves[:i], moves[i+1:]...)
		weights = append(weights[:i], weights[i+1:]...)

		if at.undoes(m) {
			continue
		}
		next := move.Applied(at.board, m)
		if at.visited[next.Fingerprint()] {
			continue
		}
		return m, next, true
	}
	return move.Move{}, nil, false
}

// repair applies up to cfg.MaxExtraMoves moves. Each round picks one player
// short of violations at random and applies the first single move that
// breaks one of their still-true constraints without revisiting a board.
// A player with no such move is stalled until the board changes; repair
// ends once every player short of violations is stalled.
func (at *attempt) repair() {
	stalled := map[int]bool{}
	for extra := 0; extra < at.cfg.MaxExtraMoves; {
		var under []int
		for p, v := range at.a.Violations(at.board) {
			if v < at.cfg.MinViolations && !stalled[p] {
				under = append(under, p)
			}
		}
		if len(under) == 0 {
			return
		}
		p := under[at.r.Intn(len(under))]
		if !at.breakOne(p) {
			stalled[p] = true
			continue
		}
		clear(stalled)
		extra++
	}
}

// breakOne applies one move that falsifies a still-true constraint of
// player. Returns false if no legal move does.
func (at *attempt) breakOne(player int) bool {
	var holding []int
	for i, c := range at.a[player] {
		if c.Evaluate(at.board) {
			holding = append(holding, i)
		}
	}
	at.r.Shuffle(len(holding), func(i, j int) { holding[i], holding[j] = holding[j], holding[i] })

	for _, ci := range holding {
		target := at.a[player][ci]
		legal := move.Legal(at.board, at.cfg.Allowed)
		at.r.Shuffle(len(legal), func(i, j int) { legal[i], legal[j] = legal[j], legal[i] })

		for _, m := range legal {
			if at.undoes(m) {
				continue
			}
			next := move.Applied(at.board, m)
			if at.visited[next.Fingerprint()] || target.Evaluate(next) {
				continue
			}
			at.accept(m, next)
			return true
		}
	}
	return false
}
