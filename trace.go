package aoc

import (
	"fmt"

	"github.com/gateway3b/aoc2023/pkg/pipes"
)

// Cycle is the closed loop of pipe running through the start cell.
type Cycle struct {
	// Path lists every position on the loop in walking order. It begins and ends with the
	// start position.
	Path []pipes.Position

	cells *pipes.PositionSet
}

// Len returns the number of steps needed to walk the loop once.
func (c *Cycle) Len() int {
	return len(c.Path) - 1
}

// Farthest returns the number of steps from the start to the point of the loop farthest
// away from it, walking in either direction.
func (c *Cycle) Farthest() int {
	return c.Len() / 2
}

// Cells returns the positions on the loop as a set sized for the traced grid. The set is
// shared; callers must not modify it.
func (c *Cycle) Cells() *pipes.PositionSet {
	return c.cells
}

// Trace walks the pipe from start until it comes back to start.
//
// At every cell the first neighbour, in Up, Right, Down, Left order, that the current
// cell can connect to is taken, never stepping straight back. A walk longer than the
// number of cells on the grid is abandoned with a *RunawayTraceError.
func Trace(g *Grid, start pipes.Position) (*Cycle, error) {
	return trace(g, start, g.Rows()*g.Columns())
}

func trace(g *Grid, start pipes.Position, limit int) (*Cycle, error) {
	cell, ok := g.Get(start)
	if !ok {
		return nil, &NoConnectionError{Position: start, Reason: "start is off the grid"}
	}
	if cell != pipes.Start {
		return nil, &NoConnectionError{Position: start, Cell: cell, Reason: "not a start cell"}
	}
	if n := countConnections(g, start); n < 2 {
		return nil, &NoConnectionError{
			Position: start,
			Cell:     cell,
			Reason:   "start connects to fewer than two neighbours",
		}
	}

	cells := pipes.NewPositionSet(g.Rows(), g.Columns())
	if err := cells.Add(start); err != nil {
		return nil, fmt.Errorf("record loop cell: %w", err)
	}
	path := []pipes.Position{start}
	current := start
	back := pipes.NoDirection
	for {
		next, ok := findConnection(g, cell, current, back)
		if !ok {
			return nil, &NoConnectionError{Position: current, Cell: cell, Step: len(path) - 1, Arrived: back}
		}

		current = next.Position
		cell, _ = g.Get(current)
		back = next.Direction.Opposite()
		path = append(path, current)
		if err := cells.Add(current); err != nil {
			return nil, fmt.Errorf("record loop cell: %w", err)
		}

		if cell == pipes.Start {
			break
		}
		if steps := len(path) - 1; steps > limit {
			return nil, &RunawayTraceError{Position: current, Steps: steps, Limit: limit}
		}
	}

	return &Cycle{Path: path, cells: cells}, nil
}

func findConnection(g *Grid, cell pipes.Cell, at pipes.Position, back pipes.Direction) (Neighbor, bool) {
	for _, n := range g.Neighbors(at, back) {
		other, _ := g.Get(n.Position)
		if pipes.CanConnect(cell, other, n.Direction) {
			return n, true
		}
	}
	return Neighbor{}, false
}

func countConnections(g *Grid, at pipes.Position) int {
	cell, _ := g.Get(at)
	count := 0
	for _, n := range g.Neighbors(at, pipes.NoDirection) {
		other, _ := g.Get(n.Position)
		if pipes.CanConnect(cell, other, n.Direction) {
			count++
		}
	}
	return count
}
