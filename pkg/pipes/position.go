package pipes

import "fmt"

// Position is a (row, column) grid coordinate.
type Position struct {
	Row int
	Col int
}

// Step returns the position one cell away in direction d.
func (p Position) Step(d Direction) Position {
	dr, dc := d.Delta()
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}
