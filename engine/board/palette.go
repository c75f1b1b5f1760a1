package board

import "fmt"

// Color is a wall or object color.
type Color uint8

const (
	Red Color = iota + 1
	Yellow
	Blue
	Green
)

// Colors lists every color in canonical order.
var Colors = []Color{Red, Yellow, Blue, Green}

var colorNames = map[Color]string{
	Red:    "Red",
	Yellow: "Yellow",
	Blue:   "Blue",
	Green:  "Green",
}

// Valid reports whether c is one of the four colors.
func (c Color) Valid() bool {
	return c >= Red && c <= Green
}

func (c Color) String() string {
	if n, ok := colorNames[c]; ok {
		return n
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

// Warm reports whether c is Red or Yellow.
func (c Color) Warm() bool {
	return c == Red || c == Yellow
}

// Cool reports whether c is Blue or Green.
func (c Color) Cool() bool {
	return c == Blue || c == Green
}

// MarshalText encodes the color by name.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a color name.
func (c *Color) UnmarshalText(b []byte) error {
	v, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseColor returns the color with the given name.
func ParseColor(s string) (Color, error) {
	for c, n := range colorNames {
		if n == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown color %q", s)
}

// Style is an object style. The zero Style marks an empty slot.
type Style uint8

const (
	Modern Style = iota + 1
	Antique
	Retro
	Unusual
)

// Styles lists every style in canonical order.
var Styles = []Style{Modern, Antique, Retro, Unusual}

var styleNames = map[Style]string{
	Modern:  "Modern",
	Antique: "Antique",
	Retro:   "Retro",
	Unusual: "Unusual",
}

// Valid reports whether s is one of the four styles; the empty-slot zero
// value is not.
func (s Style) Valid() bool {
	return s >= Modern && s <= Unusual
}

func (s Style) String() string {
	if n, ok := styleNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Style(%d)", uint8(s))
}

// MarshalText encodes the style by name.
func (s Style) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a style name.
func (s *Style) UnmarshalText(b []byte) error {
	v, err := ParseStyle(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseStyle returns the style with the given name.
func ParseStyle(s string) (Style, error) {
	for st, n := range styleNames {
		if n == s {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown style %q", s)
}

// ObjectType names one of the three slots every room has.
type ObjectType uint8

const (
	Lamp ObjectType = iota + 1
	WallHanging
	Curio
)

// ObjectTypes lists every object type in slot order.
var ObjectTypes = []ObjectType{Lamp, WallHanging, Curio}

// NumObjectTypes is the number of slots per room.
const NumObjectTypes = 3

var typeNames = map[ObjectType]string{
	Lamp:        "Lamp",
	WallHanging: "Wall Hanging",
	Curio:       "Curio",
}

var typePlurals = map[ObjectType]string{
	Lamp:        "lamps",
	WallHanging: "wall hangings",
	Curio:       "curios",
}

// Valid reports whether t is one of the three object types.
func (t ObjectType) Valid() bool {
	return t >= Lamp && t <= Curio
}

func (t ObjectType) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("ObjectType(%d)", uint8(t))
}

// Plural returns the lower-case plural, e.g. "wall hangings".
func (t ObjectType) Plural() string {
	return typePlurals[t]
}

// MarshalText encodes the object type by name.
func (t ObjectType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes an object type name.
func (t *ObjectType) UnmarshalText(b []byte) error {
	v, err := ParseObjectType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ParseObjectType returns the object type with the given name.
func ParseObjectType(s string) (ObjectType, error) {
	for t, n := range typeNames {
		if n == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown object type %q", s)
}

func (t ObjectType) slot() int {
	return int(t) - 1
}

// styleToColor is the rulebook's fixed mapping. For each object type the
// four styles map onto the four colors with no repeats.
var styleToColor = map[ObjectType]map[Style]Color{
	Lamp: {
		Modern:  Blue,
		Antique: Yellow,
		Retro:   Red,
		Unusual: Green,
	},
	WallHanging: {
		Modern:  Red,
		Antique: Green,
		Retro:   Blue,
		Unusual: Yellow,
	},
	Curio: {
		Modern:  Green,
		Antique: Blue,
		Retro:   Yellow,
		Unusual: Red,
	},
}

var colorToStyle = func() map[ObjectType]map[Color]Style {
	m := make(map[ObjectType]map[Color]Style, len(styleToColor))
	for t, styles := range styleToColor {
		inv := make(map[Color]Style, len(styles))
		for s, c := range styles {
			inv[c] = s
		}
		m[t] = inv
	}
	return m
}()

// ColorOf returns the color a style takes for the given object type.
func ColorOf(t ObjectType, s Style) Color {
	return styleToColor[t][s]
}

// StyleFor returns the style that gives object type t the color c.
func StyleFor(t ObjectType, c Color) Style {
	return colorToStyle[t][c]
}

// Token is an object placed in a room slot. Its color is derived.
type Token struct {
	Type  ObjectType
	Style Style
}

// Color returns the token's color.
func (t Token) Color() Color {
	return ColorOf(t.Type, t.Style)
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %s", t.Style, t.Color(), t.Type)
}
