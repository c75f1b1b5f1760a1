package constraint

import (
	"fmt"

	"github.com/nathoo/decorum/engine/board"
)

// Evaluate reports whether c holds on b. An unrecognized kind means a
// generation defect and panics.
func (c Constraint) Evaluate(b *board.Board) bool {
	switch c.Kind.Family() {
	case FamilyRoom:
		return evalRoom(c, b)
	case FamilyArea:
		return evalArea(c, b)
	case FamilyCount:
		return evalCount(c, b)
	case FamilyQualitative:
		return evalQualitative(c, b)
	case FamilyRelational:
		return evalRelational(c, b)
	default:
		panic(fmt.Sprintf("constraint: unknown kind %d", uint8(c.Kind)))
	}
}

func evalRoom(c Constraint, b *board.Board) bool {
	p := c.Params
	r, ok := b.Room(p.Room)
	if !ok {
		panic(fmt.Sprintf("constraint: %s references unknown room %q", c.Kind, p.Room))
	}

	switch c.Kind {
	case RoomWallColorIs:
		return r.Wall == p.Color
	case RoomWallColorIsNot:
		return r.Wall != p.Color
	case RoomWallWarm:
		return r.Wall.Warm()
	case RoomWallCool:
		return r.Wall.Cool()
	case RoomHasType:
		return r.Has(p.Type)
	case RoomNoType:
		return !r.Has(p.Type)
	case RoomHasStyle:
		return r.HasStyle(p.Style)
	case RoomNoStyle:
		return !r.HasStyle(p.Style)
	case RoomHasColor:
		return r.HasObjectColor(p.Color)
	case RoomNoColor:
		return !r.HasObjectColor(p.Color)
	}
	panic(fmt.Sprintf("constraint: %s is not a room kind", c.Kind))
}

func evalArea(c Constraint, b *board.Board) bool {
	p := c.Params
	rooms := b.AreaRooms(p.Area)
	if rooms == nil {
		panic(fmt.Sprintf("constraint: %s references unknown area %q", c.Kind, p.Area))
	}

	anyRoom := func(pred func(*board.Room) bool) bool {
		for _, r := range rooms {
			if pred(r) {
				return true
			}
		}
		return false
	}

	switch c.Kind {
	case AreaHasType:
		return anyRoom(func(r *board.Room) bool { return r.Has(p.Type) })
	case AreaNoType:
		return !anyRoom(func(r *board.Room) bool { return r.Has(p.Type) })
	case AreaHasColor:
		return anyRoom(func(r *board.Room) bool { return r.HasObjectColor(p.Color) })
	case AreaNoColor:
		return !anyRoom(func(r *board.Room) bool { return r.HasObjectColor(p.Color) })
	case AreaHasStyle:
		return anyRoom(func(r *board.Room) bool { return r.HasStyle(p.Style) })
	case AreaNoStyle:
		return !anyRoom(func(r *board.Room) bool { return r.HasStyle(p.Style) })
	}
	panic(fmt.Sprintf("constraint: %s is not an area kind", c.Kind))
}

func evalCount(c Constraint, b *board.Board) bool {
	p := c.Params

	switch c.Kind {
	case ExactlyNRoomsColor:
		return b.CountWallColor(p.Color) == p.N
	case AtLeastNType:
		return b.CountType(p.Type) >= p.N
	case AtLeastNColor:
		return b.CountObjectColor(p.Color) >= p.N
	case AtLeastNStyle:
		return b.CountStyle(p.Style) >= p.N
	case NoColorInHouse:
		return b.CountObjectColor(p.Color) == 0
	case AtLeastNWarm:
		return b.WarmCount() >= p.N
	case AtLeastNCool:
		return b.CoolCount() >= p.N
	}
	panic(fmt.Sprintf("constraint: %s is not a count kind", c.Kind))
}

// evalQualitative treats fewer than two instances as vacuously uniform.
// Candidate generation never emits these kinds in that situation.
func evalQualitative(c Constraint, b *board.Board) bool {
	p := c.Params
	objs := b.TypeObjects(p.Type)
	if len(objs) < 2 {
		return true
	}

	switch c.Kind {
	case AllTypeSameColor:
		for _, o := range objs {
			if o.Color() != p.Color {
				return false
			}
		}
		return true
	case AllTypeSameStyle:
		for _, o := range objs {
			if o.Style != p.Style {
				return false
			}
		}
		return true
	}
	panic(fmt.Sprintf("constraint: %s is not a qualitative kind", c.Kind))
}

func evalRelational(c Constraint, b *board.Board) bool {
	p := c.Params

	switch c.Kind {
	case ColorRoomCountEqual:
		return b.CountWallColor(p.Color) == b.CountWallColor(p.ColorB)
	case TypeImpliesType:
		for _, r := range b.Rooms() {
			if r.Has(p.Type) && !r.Has(p.TypeB) {
				return false
			}
		}
		return true
	case OneStylePerRoom:
		for _, r := range b.Rooms() {
			if r.CountStyle(p.Style) > 1 {
				return false
			}
		}
		return true
	}
	panic(fmt.Sprintf("constraint: %s is not a relational kind", c.Kind))
}
