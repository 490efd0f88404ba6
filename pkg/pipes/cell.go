package pipes

import "fmt"

// Cell is the content of a single grid tile.
type Cell uint8

const (
	Ground      Cell = iota // .
	Vertical                // |
	Horizontal              // -
	BottomLeft              // L
	BottomRight             // J
	TopLeft                 // F
	TopRight                // 7
	Start                   // S
)

const numCells = int(Start) + 1

var glyphs = [numCells]rune{
	Ground:      '.',
	Vertical:    '|',
	Horizontal:  '-',
	BottomLeft:  'L',
	BottomRight: 'J',
	TopLeft:     'F',
	TopRight:    '7',
	Start:       'S',
}

var names = [numCells]string{
	Ground:      "Ground",
	Vertical:    "Vertical",
	Horizontal:  "Horizontal",
	BottomLeft:  "BottomLeft",
	BottomRight: "BottomRight",
	TopLeft:     "TopLeft",
	TopRight:    "TopRight",
	Start:       "Start",
}

// ports is the connectivity table. Start is open on every side: which two of its
// neighbours it really joins is only discovered while tracing.
var ports = [numCells]Ports{
	Ground:      0,
	Vertical:    Up.Port() | Down.Port(),
	Horizontal:  Left.Port() | Right.Port(),
	BottomLeft:  Up.Port() | Right.Port(),
	BottomRight: Up.Port() | Left.Port(),
	TopLeft:     Down.Port() | Right.Port(),
	TopRight:    Down.Port() | Left.Port(),
	Start:       Up.Port() | Right.Port() | Down.Port() | Left.Port(),
}

// ParseCell returns the cell drawn by glyph r.
func ParseCell(r rune) (Cell, bool) {
	for c, g := range glyphs {
		if g == r {
			return Cell(c), true
		}
	}
	return Ground, false
}

// CellWithPorts returns the connector that is open on exactly p.
//
// Only the six two-port connectors can be produced; Ground and Start are never returned
// with ok set.
func CellWithPorts(p Ports) (Cell, bool) {
	for c := Vertical; c <= TopRight; c++ {
		if ports[c] == p {
			return c, true
		}
	}
	return Ground, false
}

func (c Cell) valid() bool {
	return int(c) < numCells
}

// Glyph returns the character c is drawn with.
func (c Cell) Glyph() rune {
	if !c.valid() {
		return '?'
	}
	return glyphs[c]
}

func (c Cell) String() string {
	if !c.valid() {
		return fmt.Sprintf("Cell(%d)", uint8(c))
	}
	return names[c]
}

// Ports returns the directions c is open towards.
func (c Cell) Ports() Ports {
	if !c.valid() {
		return 0
	}
	return ports[c]
}

// HasPort reports whether c is open towards d.
func (c Cell) HasPort(d Direction) bool {
	return c.Ports().Has(d)
}

// IsAngled reports whether c is one of the four corner connectors.
func (c Cell) IsAngled() bool {
	switch c {
	case BottomLeft, BottomRight, TopLeft, TopRight:
		return true
	}
	return false
}

// AngleSign is +1 for the corners opening downwards (F, 7), -1 for the corners opening
// upwards (L, J) and 0 for everything else.
//
// Two corners bounding one horizontal run cross a scan-line when their signs cancel.
func (c Cell) AngleSign() int {
	switch c {
	case TopLeft, TopRight:
		return 1
	case BottomLeft, BottomRight:
		return -1
	}
	return 0
}

// CanConnect reports whether a walk may step from a from-cell to the adjacent to-cell
// moving in direction d.
func CanConnect(from, to Cell, d Direction) bool {
	if to == Ground {
		return false
	}
	return from.HasPort(d) && to.HasPort(d.Opposite())
}
