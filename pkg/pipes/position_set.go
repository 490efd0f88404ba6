package pipes

import (
	"fmt"
	"iter"
)

// PositionSet efficiently represents a set of positions on a rows x cols grid.
type PositionSet struct {
	present []bool
	rows    int
	cols    int
	count   int
}

func NewPositionSet(rows, cols int) *PositionSet {
	if rows < 0 || cols < 0 {
		rows, cols = 0, 0
	}
	return &PositionSet{
		present: make([]bool, rows*cols),
		rows:    rows,
		cols:    cols,
	}
}

// Rows returns the number of rows the set was sized for.
func (s *PositionSet) Rows() int {
	return s.rows
}

// Columns returns the number of columns the set was sized for.
func (s *PositionSet) Columns() int {
	return s.cols
}

func (s *PositionSet) index(p Position) (int, bool) {
	if p.Row < 0 || p.Row >= s.rows || p.Col < 0 || p.Col >= s.cols {
		return 0, false
	}
	return p.Row*s.cols + p.Col, true
}

// Add adds a position to the set.
func (s *PositionSet) Add(p Position) error {
	i, ok := s.index(p)
	if !ok {
		return fmt.Errorf("position %v is out of range for %dx%d set", p, s.rows, s.cols)
	}

	if s.present[i] {
		return nil
	}

	s.count++
	s.present[i] = true
	return nil
}

// AddAll adds all positions from another set to this set.
func (s *PositionSet) AddAll(other *PositionSet) {
	if s.rows != other.rows || s.cols != other.cols {
		panic(fmt.Sprintf("cannot add all: position sets have different shapes, %dx%d != %dx%d", s.rows, s.cols, other.rows, other.cols))
	}

	if s.IsFull() {
		return
	}

	for i, present := range other.present {
		if !present || s.present[i] {
			continue
		}
		s.present[i] = true
		s.count++
	}
}

// Contains checks if a position is in the set. Out of range positions never are.
func (s *PositionSet) Contains(p Position) bool {
	i, ok := s.index(p)
	return ok && s.present[i]
}

// IsFull checks if every position of the grid is in the set.
func (s *PositionSet) IsFull() bool {
	return s.count == len(s.present)
}

// Capacity returns the number of positions that can be added to the set.
func (s *PositionSet) Capacity() int {
	return len(s.present)
}

// Count returns the number of positions in the set.
func (s *PositionSet) Count() int {
	return s.count
}

// All yields the positions in the set in row-major order.
func (s *PositionSet) All() iter.Seq[Position] {
	return func(yield func(Position) bool) {
		for i, present := range s.present {
			if !present {
				continue
			}
			if !yield(Position{Row: i / s.cols, Col: i % s.cols}) {
				return
			}
		}
	}
}

// Equal reports whether both sets have the same shape and members.
func (s *PositionSet) Equal(other *PositionSet) bool {
	if s.rows != other.rows || s.cols != other.cols || s.count != other.count {
		return false
	}
	for i := range s.present {
		if s.present[i] != other.present[i] {
			return false
		}
	}
	return true
}
