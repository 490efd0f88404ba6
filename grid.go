// Package aoc finds the loop of pipe running through S in a maze and measures it.
package aoc

import (
	"fmt"
	"strings"

	"github.com/gateway3b/aoc2023/pkg/pipes"
)

// Grid is a rectangular pipe maze.
//
// It is immutable once built; all methods are safe for concurrent use.
type Grid struct {
	cells []pipes.Cell // row-major
	rows  int
	cols  int
	start pipes.Position
}

// Neighbor is a position next to another one, along with the direction of the step.
type Neighbor struct {
	Position  pipes.Position
	Direction pipes.Direction
}

// ParseGrid reads a grid from puzzle text, one row per line.
func ParseGrid(text string) (*Grid, error) {
	text = strings.TrimRight(text, "\r\n")
	if text == "" {
		return nil, &MalformedInputError{Row: -1, Column: -1, Reason: "empty input"}
	}

	lines := strings.Split(text, "\n")
	rows := make([][]pipes.Cell, len(lines))
	for y, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		row := make([]pipes.Cell, 0, len(line))
		x := 0
		for _, r := range line {
			cell, ok := pipes.ParseCell(r)
			if !ok {
				return nil, &MalformedInputError{Row: y, Column: x, Glyph: r, Reason: "unknown glyph"}
			}
			row = append(row, cell)
			x++
		}
		rows[y] = row
	}
	return NewGrid(rows)
}

// NewGrid builds a grid from typed rows.
//
// All rows must be non-empty and of equal width, and exactly one cell must be Start.
func NewGrid(rows [][]pipes.Cell) (*Grid, error) {
	if len(rows) == 0 {
		return nil, &MalformedInputError{Row: -1, Column: -1, Reason: "empty input"}
	}
	width := len(rows[0])
	if width == 0 {
		return nil, &MalformedInputError{Row: 0, Column: -1, Reason: "empty row"}
	}

	g := &Grid{
		cells: make([]pipes.Cell, 0, len(rows)*width),
		rows:  len(rows),
		cols:  width,
	}
	starts := 0
	for y, row := range rows {
		if len(row) != width {
			return nil, &MalformedInputError{
				Row:    y,
				Column: -1,
				Reason: fmt.Sprintf("width %d, expected %d", len(row), width),
			}
		}
		for x, cell := range row {
			if cell == pipes.Start {
				starts++
				if starts > 1 {
					return nil, &MalformedInputError{Row: y, Column: x, Glyph: cell.Glyph(), Reason: "second start cell"}
				}
				g.start = pipes.Position{Row: y, Col: x}
			}
		}
		g.cells = append(g.cells, row...)
	}
	if starts == 0 {
		return nil, &MalformedInputError{Row: -1, Column: -1, Reason: "no start cell"}
	}
	return g, nil
}

func (g *Grid) Rows() int {
	return g.rows
}

func (g *Grid) Columns() int {
	return g.cols
}

// Start returns the position of the S cell.
func (g *Grid) Start() pipes.Position {
	return g.start
}

// InBounds reports whether p lies on the grid.
func (g *Grid) InBounds(p pipes.Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// Get returns the cell at p, or false if p is off the grid.
func (g *Grid) Get(p pipes.Position) (pipes.Cell, bool) {
	if !g.InBounds(p) {
		return pipes.Ground, false
	}
	return g.cells[p.Row*g.cols+p.Col], true
}

// Neighbors returns the on-grid positions adjacent to p in Up, Right, Down, Left order,
// leaving out the one in direction exclude.
func (g *Grid) Neighbors(p pipes.Position, exclude pipes.Direction) []Neighbor {
	neighbors := make([]Neighbor, 0, len(pipes.Directions))
	for _, d := range pipes.Directions {
		if d == exclude {
			continue
		}
		n := p.Step(d)
		if !g.InBounds(n) {
			continue
		}
		neighbors = append(neighbors, Neighbor{Position: n, Direction: d})
	}
	return neighbors
}

// ResolveStart returns the connector hidden under S, judged by which of its neighbours on
// loop connect to it. It returns pipes.Start if that is not exactly one connector.
// A nil loop considers every neighbour.
func (g *Grid) ResolveStart(loop *pipes.PositionSet) pipes.Cell {
	var open pipes.Ports
	for _, n := range g.Neighbors(g.start, pipes.NoDirection) {
		if loop != nil && !loop.Contains(n.Position) {
			continue
		}
		cell, _ := g.Get(n.Position)
		if pipes.CanConnect(pipes.Start, cell, n.Direction) {
			open |= n.Direction.Port()
		}
	}
	if cell, ok := pipes.CellWithPorts(open); ok {
		return cell
	}
	return pipes.Start
}

func (g *Grid) Repr() string {
	return g.Render(nil)
}

// Render draws the grid, replacing every cell in marked with 'I'.
func (g *Grid) Render(marked *pipes.PositionSet) string {
	lines := make([]string, g.rows)
	for y := range g.rows {
		var b strings.Builder
		for x := range g.cols {
			p := pipes.Position{Row: y, Col: x}
			if marked != nil && marked.Contains(p) {
				b.WriteRune('I')
				continue
			}
			b.WriteRune(g.cells[y*g.cols+x].Glyph())
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

func (g *Grid) DebugString() string {
	return fmt.Sprintf("Grid{rows: %d, columns: %d, start: %v, grid: %v}", g.rows, g.cols, g.start, g.cells)
}
