// Package board models the four-room house: wall colors, object slots,
// the primitive mutations and the fingerprint used for cycle checks.
package board

import (
	"fmt"
	"sort"
	"strings"
)

// NumRooms is the number of rooms on every board.
const NumRooms = 4

// Variant selects the room set and area layout.
type Variant uint8

const (
	// TwoPlayer is the base house.
	TwoPlayer Variant = iota
	// Roommates is the 3-4 player house with two bedrooms.
	Roommates
)

// VariantFor returns the variant used for a player count.
func VariantFor(players int) Variant {
	if players == 2 {
		return TwoPlayer
	}
	return Roommates
}

func (v Variant) String() string {
	if v == TwoPlayer {
		return "two-player"
	}
	return "roommates"
}

var roomNames = map[Variant][NumRooms]string{
	TwoPlayer: {"Bathroom", "Bedroom", "Living Room", "Kitchen"},
	Roommates: {"Bedroom A", "Bedroom B", "Living Room", "Kitchen"},
}

// Area names, in canonical order.
const (
	Upstairs   = "upstairs"
	Downstairs = "downstairs"
	LeftSide   = "left side"
	RightSide  = "right side"
)

// Areas lists every area. Each room is in exactly one of upstairs/downstairs
// and exactly one of left side/right side.
var Areas = []string{Upstairs, Downstairs, LeftSide, RightSide}

// areaSlots holds room indexes per area; identical for both variants.
var areaSlots = map[string][2]int{
	Upstairs:   {0, 1},
	Downstairs: {2, 3},
	LeftSide:   {0, 2},
	RightSide:  {1, 3},
}

// RoomNames returns the room names of a variant in layout order.
func RoomNames(v Variant) []string {
	names := roomNames[v]
	return names[:]
}

// AreaRooms returns the two rooms in an area, or nil for an unknown area.
func AreaRooms(v Variant, area string) []string {
	idx, ok := areaSlots[area]
	if !ok {
		return nil
	}
	names := roomNames[v]
	return []string{names[idx[0]], names[idx[1]]}
}

// Room is one room: a wall color and three slots. A zero Style is empty.
type Room struct {
	Name  string
	Wall  Color
	slots [NumObjectTypes]Style
}

// Object returns the token in the slot for t, if any.
func (r *Room) Object(t ObjectType) (Token, bool) {
	s := r.slots[t.slot()]
	if s == 0 {
		return Token{}, false
	}
	return Token{Type: t, Style: s}, true
}

// Has reports whether the slot for t is occupied.
func (r *Room) Has(t ObjectType) bool {
	return r.slots[t.slot()] != 0
}

// Objects returns the room's tokens in slot order.
func (r *Room) Objects() []Token {
	var out []Token
	for _, t := range ObjectTypes {
		if tok, ok := r.Object(t); ok {
			out = append(out, tok)
		}
	}
	return out
}

// ObjectCount returns the number of occupied slots.
func (r *Room) ObjectCount() int {
	n := 0
	for _, s := range r.slots {
		if s != 0 {
			n++
		}
	}
	return n
}

// CountStyle returns how many of the room's objects have style s.
func (r *Room) CountStyle(s Style) int {
	n := 0
	for _, st := range r.slots {
		if st == s {
			n++
		}
	}
	return n
}

// HasStyle reports whether any object in the room has style s.
func (r *Room) HasStyle(s Style) bool {
	return r.CountStyle(s) > 0
}

// HasObjectColor reports whether any object in the room has color c.
func (r *Room) HasObjectColor(c Color) bool {
	for _, tok := range r.Objects() {
		if tok.Color() == c {
			return true
		}
	}
	return false
}

// Board is the full house. It is a value type: assigning or Clone copies it.
type Board struct {
	variant Variant
	rooms   [NumRooms]Room
}

// New creates a board for the variant with every wall Red and every slot empty.
func New(v Variant) *Board {
	b := &Board{variant: v}
	for i, name := range roomNames[v] {
		b.rooms[i] = Room{Name: name, Wall: Red}
	}
	return b
}

// Clone creates an independent copy of the Board.
func (b *Board) Clone() *Board {
	if b == nil {
		return nil
	}
	clone := *b
	return &clone
}

// Variant returns the board's variant.
func (b *Board) Variant() Variant {
	return b.variant
}

// RoomNames returns the room names in layout order.
func (b *Board) RoomNames() []string {
	return RoomNames(b.variant)
}

// Room returns the named room. The pointer aliases the board; callers must
// not mutate through it.
func (b *Board) Room(name string) (*Room, bool) {
	for i := range b.rooms {
		if b.rooms[i].Name == name {
			return &b.rooms[i], true
		}
	}
	return nil, false
}

// Rooms returns pointers to every room in layout order.
func (b *Board) Rooms() []*Room {
	out := make([]*Room, NumRooms)
	for i := range b.rooms {
		out[i] = &b.rooms[i]
	}
	return out
}

// AreaRooms returns the rooms in an area.
func (b *Board) AreaRooms(area string) []*Room {
	idx, ok := areaSlots[area]
	if !ok {
		return nil
	}
	return []*Room{&b.rooms[idx[0]], &b.rooms[idx[1]]}
}

func (b *Board) mustRoom(name string) *Room {
	r, ok := b.Room(name)
	if !ok {
		panic(fmt.Sprintf("board: unknown room %q for %s board", name, b.variant))
	}
	return r
}

// Add places tok in its slot. Returns false, leaving the board unchanged,
// if the slot is already occupied.
func (b *Board) Add(room string, tok Token) bool {
	r := b.mustRoom(room)
	if r.slots[tok.Type.slot()] != 0 {
		return false
	}
	r.slots[tok.Type.slot()] = tok.Style
	return true
}

// Remove empties the slot for t and returns the removed token.
// Returns false if the slot was already empty.
func (b *Board) Remove(room string, t ObjectType) (Token, bool) {
	r := b.mustRoom(room)
	old, ok := r.Object(t)
	if !ok {
		return Token{}, false
	}
	r.slots[t.slot()] = 0
	return old, true
}

// Swap replaces the occupant of tok's slot and returns the prior token.
// Returns false if there is nothing to swap.
func (b *Board) Swap(room string, tok Token) (Token, bool) {
	r := b.mustRoom(room)
	old, ok := r.Object(tok.Type)
	if !ok {
		return Token{}, false
	}
	r.slots[tok.Type.slot()] = tok.Style
	return old, true
}

// Paint sets a room's wall color and returns the prior color.
func (b *Board) Paint(room string, c Color) Color {
	r := b.mustRoom(room)
	old := r.Wall
	r.Wall = c
	return old
}

// Objects returns every token on the board, room by room.
func (b *Board) Objects() []Token {
	var out []Token
	for i := range b.rooms {
		out = append(out, b.rooms[i].Objects()...)
	}
	return out
}

// ObjectCount returns the number of tokens on the board.
func (b *Board) ObjectCount() int {
	n := 0
	for i := range b.rooms {
		n += b.rooms[i].ObjectCount()
	}
	return n
}

// AreaObjectCount returns the number of tokens in an area.
func (b *Board) AreaObjectCount(area string) int {
	n := 0
	for _, r := range b.AreaRooms(area) {
		n += r.ObjectCount()
	}
	return n
}

// CountWallColor returns how many rooms are painted c.
func (b *Board) CountWallColor(c Color) int {
	n := 0
	for i := range b.rooms {
		if b.rooms[i].Wall == c {
			n++
		}
	}
	return n
}

// CountObjectColor returns how many tokens have color c.
func (b *Board) CountObjectColor(c Color) int {
	n := 0
	for _, tok := range b.Objects() {
		if tok.Color() == c {
			n++
		}
	}
	return n
}

// CountStyle returns how many tokens have style s.
func (b *Board) CountStyle(s Style) int {
	n := 0
	for i := range b.rooms {
		n += b.rooms[i].CountStyle(s)
	}
	return n
}

// CountType returns how many rooms hold an object of type t.
func (b *Board) CountType(t ObjectType) int {
	n := 0
	for i := range b.rooms {
		if b.rooms[i].Has(t) {
			n++
		}
	}
	return n
}

// TypeObjects returns every token of type t, room by room.
func (b *Board) TypeObjects(t ObjectType) []Token {
	var out []Token
	for i := range b.rooms {
		if tok, ok := b.rooms[i].Object(t); ok {
			out = append(out, tok)
		}
	}
	return out
}

// WarmCount returns how many tokens are Red or Yellow.
func (b *Board) WarmCount() int {
	n := 0
	for _, tok := range b.Objects() {
		if tok.Color().Warm() {
			n++
		}
	}
	return n
}

// CoolCount returns how many tokens are Blue or Green.
func (b *Board) CoolCount() int {
	n := 0
	for _, tok := range b.Objects() {
		if tok.Color().Cool() {
			n++
		}
	}
	return n
}

// Fingerprint is a canonical encoding of a board. Equal fingerprints mean
// equal boards.
type Fingerprint string

// Fingerprint encodes wall colors and slot styles in sorted room-name order.
func (b *Board) Fingerprint() Fingerprint {
	idx := make([]int, NumRooms)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool {
		return b.rooms[idx[i]].Name < b.rooms[idx[j]].Name
	})

	buf := make([]byte, 0, NumRooms*(1+NumObjectTypes))
	for _, i := range idx {
		r := &b.rooms[i]
		buf = append(buf, '0'+byte(r.Wall))
		for _, s := range r.slots {
			buf = append(buf, '0'+byte(s))
		}
	}
	return Fingerprint(buf)
}

// String returns a compact one-line description of the board.
func (b *Board) String() string {
	parts := make([]string, 0, NumRooms)
	for i := range b.rooms {
		r := &b.rooms[i]
		var objs []string
		for _, tok := range r.Objects() {
			objs = append(objs, tok.String())
		}
		parts = append(parts, fmt.Sprintf("%s[%s: %s]", r.Name, r.Wall, strings.Join(objs, ", ")))
	}
	return strings.Join(parts, " ")
}

// Format returns the house as an upstairs/downstairs grid.
func (b *Board) Format() string {
	const colW = 34
	sep := "+" + strings.Repeat("-", colW) + "+" + strings.Repeat("-", colW) + "+\n"

	var sb strings.Builder
	for _, floor := range []string{Upstairs, Downstairs} {
		sb.WriteString("  " + strings.ToUpper(floor) + "\n")
		sb.WriteString(sep)
		rooms := b.AreaRooms(floor)

		cells := make([]string, len(rooms))
		for i, r := range rooms {
			cells[i] = fmt.Sprintf(" %s [%s walls]", r.Name, r.Wall)
		}
		writeRow(&sb, cells, colW)

		for _, t := range ObjectTypes {
			for i, r := range rooms {
				if tok, ok := r.Object(t); ok {
					cells[i] = fmt.Sprintf("   %s: %s %s", t, tok.Style, tok.Color())
				} else {
					cells[i] = fmt.Sprintf("   %s: (empty)", t)
				}
			}
			writeRow(&sb, cells, colW)
		}
		sb.WriteString(sep)
	}
	return sb.String()
}

func writeRow(sb *strings.Builder, cells []string, width int) {
	sb.WriteString("|")
	for _, c := range cells {
		sb.WriteString(c)
		if pad := width - len(c); pad > 0 {
			sb.WriteString(strings.Repeat(" ", pad))
		}
		sb.WriteString("|")
	}
	sb.WriteString("\n")
}
