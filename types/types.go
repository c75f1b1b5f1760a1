// Package types defines the shared configuration and command structures for
// the Decorum generator. This package contains only type definitions, no logic.
package types

// Command is the parsed representation of an interactive command.
type Command struct {
	Verb string
	Args []string // optional
}

// Difficulty is one named tier: board generator palette and bias, quota and
// perturbation budget.
type Difficulty struct {
	Name           string
	Colors         int     // palette size for walls and objects
	Styles         int     // style palette size
	ItemsMin       int     // inclusive object count range
	ItemsMax       int
	PatternProb    float64 // chance an object is matched to its wall color
	ThemeProb      float64 // chance one object type gets a theme style
	ThemeAdherence float64 // chance a themed slot actually uses the theme
	RulesPerPlayer int
	PerturbMin     int // inclusive Phase 1 step range
	PerturbMax     int
	MinViolations  int
	MaxAttempts    int
	MaxExtraMoves  int
	MoveWeights    map[string]float64 // action name -> sampling weight
	AllowedMoves   []string           // action names; empty means all
}

// ScoreTable holds the candidate interestingness constants.
type ScoreTable struct {
	WallIs         float64
	WallIsNot      float64
	WallTemp       float64
	RoomHasType    float64
	RoomNoType     float64
	RoomHasStyle   float64
	RoomNoStyle    float64
	RoomHasColor   float64
	RoomNoColor    float64
	AreaHasType    float64
	AreaNoType     float64
	AreaHasColor   float64
	AreaNoColor    float64
	AreaHasStyle   float64
	AreaNoStyle    float64
	EmptyNegative  float64 // negative room/area kinds when the container is empty
	ExactRoomsFew  float64 // exactly N rooms, N <= 2
	ExactRoomsMany float64
	NoColorHouse   float64
	ColorBase      float64 // at least N of a color: ColorBase + ColorSpan*N/M
	ColorSpan      float64
	CountBase      float64 // at least N of a type or style
	CountSpan      float64
	Uniform        float64
	EqualPresent   float64 // color count equality, both colors on the walls
	EqualAbsent    float64
	TypeImplies    float64
	OneStyle       float64
	TempTight      float64 // at least N warm/cool where N is the true count
	TempLoose      float64
}

// AllocationWeights holds the compatibility bonuses and penalties used when
// dealing candidates to players.
type AllocationWeights struct {
	NewRoom       float64
	NewKind       float64
	Polarity      float64
	Concentration float64 // subtracted
	RepeatKind    float64 // subtracted
	Floor         float64
}

// Presets is the full configuration surface loaded from Lua.
type Presets struct {
	Difficulties map[string]Difficulty
	Order        []string // tier names in declaration order
	Default      string
	Scoring      ScoreTable
	Allocation   AllocationWeights
}
