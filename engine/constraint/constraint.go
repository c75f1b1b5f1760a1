// Package constraint defines the closed set of win-condition kinds and
// evaluates them against a board. Every evaluation is a pure predicate.
package constraint

import (
	"fmt"
	"strings"

	"github.com/nathoo/decorum/engine/board"
)

// Kind identifies a constraint family member.
type Kind uint8

const (
	RoomWallColorIs Kind = iota + 1
	RoomWallColorIsNot
	RoomWallWarm
	RoomWallCool
	RoomHasType
	RoomNoType
	RoomHasStyle
	RoomNoStyle
	RoomHasColor
	RoomNoColor

	AreaHasType
	AreaNoType
	AreaHasColor
	AreaNoColor
	AreaHasStyle
	AreaNoStyle

	ExactlyNRoomsColor
	AtLeastNType
	AtLeastNColor
	AtLeastNStyle
	NoColorInHouse
	AtLeastNWarm
	AtLeastNCool

	AllTypeSameColor
	AllTypeSameStyle

	ColorRoomCountEqual
	TypeImpliesType
	OneStylePerRoom
)

// Kinds lists every kind in declaration order.
var Kinds = func() []Kind {
	ks := make([]Kind, 0, int(OneStylePerRoom))
	for k := RoomWallColorIs; k <= OneStylePerRoom; k++ {
		ks = append(ks, k)
	}
	return ks
}()

var kindNames = map[Kind]string{
	RoomWallColorIs:     "room_wall_color_is",
	RoomWallColorIsNot:  "room_wall_color_is_not",
	RoomWallWarm:        "room_wall_warm",
	RoomWallCool:        "room_wall_cool",
	RoomHasType:         "room_has_object_type",
	RoomNoType:          "room_no_object_type",
	RoomHasStyle:        "room_has_style",
	RoomNoStyle:         "room_no_style",
	RoomHasColor:        "room_has_color_object",
	RoomNoColor:         "room_no_color_object",
	AreaHasType:         "area_has_object_type",
	AreaNoType:          "area_no_object_type",
	AreaHasColor:        "area_has_color_object",
	AreaNoColor:         "area_no_color_object",
	AreaHasStyle:        "area_has_style",
	AreaNoStyle:         "area_no_style",
	ExactlyNRoomsColor:  "exactly_n_rooms_color",
	AtLeastNType:        "at_least_n_object_type",
	AtLeastNColor:       "at_least_n_color_objects",
	AtLeastNStyle:       "at_least_n_style_objects",
	NoColorInHouse:      "no_color_objects_in_house",
	AtLeastNWarm:        "at_least_n_warm_objects",
	AtLeastNCool:        "at_least_n_cool_objects",
	AllTypeSameColor:    "all_object_type_same_color",
	AllTypeSameStyle:    "all_object_type_same_style",
	ColorRoomCountEqual: "color_room_count_equal",
	TypeImpliesType:     "room_with_type_must_have_type",
	OneStylePerRoom:     "no_room_more_than_one_style",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	for kind, n := range kindNames {
		if n == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown constraint kind %q", string(b))
}

// Family groups kinds that share an evaluator.
type Family uint8

const (
	FamilyRoom Family = iota + 1
	FamilyArea
	FamilyCount
	FamilyQualitative
	FamilyRelational
)

// Family returns the kind's family, or 0 for an unrecognized kind.
func (k Kind) Family() Family {
	switch {
	case k >= RoomWallColorIs && k <= RoomNoColor:
		return FamilyRoom
	case k >= AreaHasType && k <= AreaNoStyle:
		return FamilyArea
	case k >= ExactlyNRoomsColor && k <= AtLeastNCool:
		return FamilyCount
	case k >= AllTypeSameColor && k <= AllTypeSameStyle:
		return FamilyQualitative
	case k >= ColorRoomCountEqual && k <= OneStylePerRoom:
		return FamilyRelational
	default:
		return 0
	}
}

// Negative reports whether the kind is phrased as a prohibition.
func (k Kind) Negative() bool {
	switch k {
	case RoomWallColorIsNot, RoomNoType, RoomNoStyle, RoomNoColor,
		AreaNoType, AreaNoColor, AreaNoStyle, NoColorInHouse:
		return true
	}
	return false
}

// Params is the parameter record of a constraint. Fields a kind does not
// use stay zero. Params is comparable.
type Params struct {
	Room   string           `json:"room,omitempty"`
	Area   string           `json:"area,omitempty"`
	Color  board.Color      `json:"color,omitempty"`
	ColorB board.Color      `json:"color_b,omitempty"`
	Style  board.Style      `json:"style,omitempty"`
	Type   board.ObjectType `json:"obj_type,omitempty"`
	TypeB  board.ObjectType `json:"obj_type_b,omitempty"`
	N      int              `json:"n,omitempty"`
}

func (p Params) String() string {
	var parts []string
	if p.Room != "" {
		parts = append(parts, "room="+p.Room)
	}
	if p.Area != "" {
		parts = append(parts, "area="+p.Area)
	}
	if p.Color != 0 {
		parts = append(parts, "color="+p.Color.String())
	}
	if p.ColorB != 0 {
		parts = append(parts, "colorB="+p.ColorB.String())
	}
	if p.Style != 0 {
		parts = append(parts, "style="+p.Style.String())
	}
	if p.Type != 0 {
		parts = append(parts, "type="+p.Type.String())
	}
	if p.TypeB != 0 {
		parts = append(parts, "typeB="+p.TypeB.String())
	}
	if p.N != 0 {
		parts = append(parts, fmt.Sprintf("n=%d", p.N))
	}
	return strings.Join(parts, " ")
}

// Key is a constraint's identity: kind plus parameters, without the score.
type Key struct {
	Kind   Kind
	Params Params
}

// Constraint is a ground win-condition with its interestingness score.
type Constraint struct {
	Kind   Kind    `json:"kind"`
	Params Params  `json:"params"`
	Score  float64 `json:"score"`
}

// New returns a constraint with a zero score.
func New(k Kind, p Params) Constraint {
	return Constraint{Kind: k, Params: p}
}

// Key returns the constraint's identity.
func (c Constraint) Key() Key {
	return Key{Kind: c.Kind, Params: c.Params}
}

// Negative reports whether the constraint is phrased as a prohibition.
func (c Constraint) Negative() bool {
	return c.Kind.Negative()
}

// Rooms returns the rooms the constraint refers to on a board of variant v:
// the room parameter, or both rooms of the area parameter.
func (c Constraint) Rooms(v board.Variant) []string {
	var rooms []string
	if c.Params.Room != "" {
		rooms = append(rooms, c.Params.Room)
	}
	if c.Params.Area != "" {
		rooms = append(rooms, board.AreaRooms(v, c.Params.Area)...)
	}
	return rooms
}

func (c Constraint) String() string {
	return fmt.Sprintf("%s(%s)", c.Kind, c.Params)
}

// EvaluateAll returns true if every constraint holds. An empty list is
// vacuously true.
func EvaluateAll(cs []Constraint, b *board.Board) bool {
	for _, c := range cs {
		if !c.Evaluate(b) {
			return false
		}
	}
	return true
}

// CountViolated returns how many constraints are false on b.
func CountViolated(cs []Constraint, b *board.Board) int {
	n := 0
	for _, c := range cs {
		if !c.Evaluate(b) {
			n++
		}
	}
	return n
}
