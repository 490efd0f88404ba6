package pipes

// Direction is a compass direction on the grid.
//
// The zero value, NoDirection, means "no direction" and is used where a caller has nothing
// to exclude.
type Direction uint8

const (
	NoDirection Direction = iota
	Up
	Right
	Down
	Left
)

// Directions lists every real direction in the order neighbours are enumerated.
var Directions = [...]Direction{Up, Right, Down, Left}

// Opposite returns the direction pointing back the way d came.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return NoDirection
}

// Delta returns the row and column offsets of a single step in d.
func (d Direction) Delta() (dRow, dCol int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	}
	return 0, 0
}

// Port returns the port bit for d.
func (d Direction) Port() Ports {
	if d == NoDirection {
		return 0
	}
	return 1 << (d - 1)
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Right:
		return "Right"
	case Down:
		return "Down"
	case Left:
		return "Left"
	}
	return "None"
}

// Ports is a set of directions a cell is open towards.
type Ports uint8

// Has reports whether d is one of the ports.
func (p Ports) Has(d Direction) bool {
	return d != NoDirection && p&d.Port() != 0
}

// Count returns the number of open ports.
func (p Ports) Count() int {
	n := 0
	for _, d := range Directions {
		if p.Has(d) {
			n++
		}
	}
	return n
}
