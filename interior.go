package aoc

import (
	"golang.org/x/sync/errgroup"

	"github.com/gateway3b/aoc2023/pkg/pipes"
)

// Transition records which way the scan-line went through the boundary it is sitting on:
// Entered means the cells after it are inside the loop.
type Transition uint8

const (
	Entered Transition = iota
	Exited
)

// Flip returns the other transition.
func (t Transition) Flip() Transition {
	if t == Entered {
		return Exited
	}
	return Entered
}

func (t Transition) String() string {
	if t == Entered {
		return "Entered"
	}
	return "Exited"
}

type boundary uint8

const (
	outsidePath boundary = iota
	onBoundaryPerpendicular
	onBoundaryAngled
	insidePath
)

// pathPosition is the state of a left to right scan across one row.
//
// On an angled boundary, pending holds the sign of the corner that opened the current
// horizontal run until the closing corner is seen.
type pathPosition struct {
	state      boundary
	transition Transition
	pending    int
	hasPending bool
}

func perpendicular(t Transition) pathPosition {
	return pathPosition{state: onBoundaryPerpendicular, transition: t}
}

func angled(t Transition, cell pipes.Cell) pathPosition {
	return pathPosition{state: onBoundaryAngled, transition: t, pending: cell.AngleSign(), hasPending: true}
}

func resolvedAngle(t Transition) pathPosition {
	return pathPosition{state: onBoundaryAngled, transition: t}
}

func enterBoundary(t Transition, cell pipes.Cell) pathPosition {
	if cell == pipes.Vertical {
		return perpendicular(t)
	}
	return angled(t, cell)
}

// next advances the scan over cell. It reports whether cell is enclosed by the loop, and
// handled is false when no rule applied and the state was carried over unchanged.
func (p pathPosition) next(cell pipes.Cell, onLoop bool) (next pathPosition, interior, handled bool) {
	if !onLoop {
		switch p.state {
		case insidePath:
			return p, true, true
		case onBoundaryPerpendicular, onBoundaryAngled:
			if p.transition == Entered {
				return pathPosition{state: insidePath}, true, true
			}
			return pathPosition{state: outsidePath}, false, true
		default:
			return pathPosition{state: outsidePath}, false, true
		}
	}

	switch p.state {
	case outsidePath:
		return enterBoundary(Entered, cell), false, true
	case insidePath:
		return enterBoundary(Exited, cell), false, true
	case onBoundaryPerpendicular:
		switch {
		case cell == pipes.Vertical:
			return perpendicular(p.transition.Flip()), false, true
		case cell.IsAngled():
			return angled(p.transition.Flip(), cell), false, true
		}
	case onBoundaryAngled:
		switch {
		case cell == pipes.Horizontal:
			return p, false, true
		case cell == pipes.Vertical:
			return perpendicular(p.transition.Flip()), false, true
		case cell.IsAngled():
			if !p.hasPending {
				return angled(p.transition.Flip(), cell), false, true
			}
			// Opposite signs close a run that really crossed the row (F-J, L-7); equal signs
			// are a U-turn (F-7, L-J) that undoes the flip made when the run opened.
			if p.pending+cell.AngleSign() == 0 {
				return resolvedAngle(p.transition), false, true
			}
			return resolvedAngle(p.transition.Flip()), false, true
		}
	}
	return p, false, false
}

// ClassifyParams tunes Classify.
type ClassifyParams struct {
	// Workers is the number of row bands scanned at once. Zero or one scans sequentially.
	Workers int
}

// Interior is the set of cells enclosed by a loop.
type Interior struct {
	Cells *pipes.PositionSet
	// Fallbacks counts cells where the scan met a combination of state and cell no rule
	// covers. It is zero for any grid holding a single simple loop.
	Fallbacks int
}

// Count returns the number of enclosed cells.
func (i *Interior) Count() int {
	return i.Cells.Count()
}

// band is a run of rows [from, to) scanned by one worker into its own set.
type band struct {
	from, to  int
	cells     *pipes.PositionSet
	fallbacks int
}

// splitRows cuts rows into at most n contiguous bands of near equal height.
func splitRows(rows, n int) []band {
	n = max(1, min(n, rows))
	height := (rows + n - 1) / n
	bands := make([]band, 0, n)
	for from := 0; from < rows; from += height {
		bands = append(bands, band{from: from, to: min(from+height, rows)})
	}
	return bands
}

// Classify finds the cells of g enclosed by loop, scanning each row from the left and
// counting boundary crossings.
//
// The S cell is scanned as the connector it stands in for, so the result does not depend on
// where the start sits on the loop.
func Classify(g *Grid, loop *pipes.PositionSet, params ClassifyParams) (*Interior, error) {
	if g == nil || g.Rows() == 0 || g.Columns() == 0 {
		rows, cols := 0, 0
		if g != nil {
			rows, cols = g.Rows(), g.Columns()
		}
		return nil, &InteriorCountError{Rows: rows, Columns: cols, Reason: "grid has no cells"}
	}
	if loop == nil {
		return nil, &InteriorCountError{Rows: g.Rows(), Columns: g.Columns(), Reason: "no loop cells"}
	}
	if loop.Rows() != g.Rows() || loop.Columns() != g.Columns() {
		return nil, &InteriorCountError{
			Rows:    g.Rows(),
			Columns: g.Columns(),
			Reason:  "loop cells recorded for a different grid",
		}
	}

	start := g.ResolveStart(loop)
	interior := &Interior{Cells: pipes.NewPositionSet(g.Rows(), g.Columns())}

	if params.Workers <= 1 {
		all := band{from: 0, to: g.Rows(), cells: interior.Cells}
		if err := scanRows(g, loop, start, &all); err != nil {
			return nil, err
		}
		interior.Fallbacks = all.fallbacks
		return interior, nil
	}

	bands := splitRows(g.Rows(), params.Workers)
	var eg errgroup.Group
	for i := range bands {
		bands[i].cells = pipes.NewPositionSet(g.Rows(), g.Columns())
		eg.Go(func() error {
			return scanRows(g, loop, start, &bands[i])
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for _, b := range bands {
		interior.Cells.AddAll(b.cells)
		interior.Fallbacks += b.fallbacks
	}
	return interior, nil
}

// scanRows scans the rows of b, adding the enclosed cells to b.cells.
func scanRows(g *Grid, loop *pipes.PositionSet, start pipes.Cell, b *band) error {
	for y := b.from; y < b.to; y++ {
		state := pathPosition{state: outsidePath}
		for x := range g.Columns() {
			p := pipes.Position{Row: y, Col: x}
			cell, _ := g.Get(p)
			if p == g.Start() {
				cell = start
			}

			next, interior, handled := state.next(cell, loop.Contains(p))
			if !handled {
				b.fallbacks++
			}
			if interior {
				if err := b.cells.Add(p); err != nil {
					return &InteriorCountError{Rows: g.Rows(), Columns: g.Columns(), Reason: err.Error()}
				}
			}
			state = next
		}
	}
	return nil
}
