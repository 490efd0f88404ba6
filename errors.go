package aoc

import (
	"errors"
	"fmt"

	"github.com/gateway3b/aoc2023/pkg/pipes"
)

var (
	// ErrMalformedInput matches every *MalformedInputError.
	ErrMalformedInput = errors.New("malformed input")
	// ErrNoConnection matches every *NoConnectionError.
	ErrNoConnection = errors.New("no connection")
	// ErrRunawayTrace matches every *RunawayTraceError.
	ErrRunawayTrace = errors.New("runaway trace")
	// ErrInteriorCount matches every *InteriorCountError.
	ErrInteriorCount = errors.New("interior count")
)

// MalformedInputError is returned when the puzzle text cannot be turned into a grid.
//
// Row and Column are zero based and are -1 when the problem is not tied to a cell.
type MalformedInputError struct {
	Row    int
	Column int
	Glyph  rune
	Reason string
}

func (e *MalformedInputError) Error() string {
	switch {
	case e.Row < 0:
		return "malformed input: " + e.Reason
	case e.Column < 0:
		return fmt.Sprintf("malformed input: row %d: %s", e.Row, e.Reason)
	}
	return fmt.Sprintf("malformed input: row %d column %d (%q): %s", e.Row, e.Column, e.Glyph, e.Reason)
}

func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

// NoConnectionError is returned when the tracer cannot leave a cell.
type NoConnectionError struct {
	Position pipes.Position
	Cell     pipes.Cell
	// Step is the number of steps already taken when the walk got stuck.
	Step int
	// Arrived is the direction back towards the previous cell, NoDirection at the start.
	Arrived pipes.Direction
	Reason  string
}

func (e *NoConnectionError) Error() string {
	msg := fmt.Sprintf("no connection from %v %v at step %d", e.Cell, e.Position, e.Step)
	if e.Arrived != pipes.NoDirection {
		msg += fmt.Sprintf(" (arrived from %v)", e.Arrived)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *NoConnectionError) Is(target error) bool {
	return target == ErrNoConnection
}

// RunawayTraceError is returned when a walk grows longer than any loop the grid could hold.
type RunawayTraceError struct {
	Position pipes.Position
	Steps    int
	Limit    int
}

func (e *RunawayTraceError) Error() string {
	return fmt.Sprintf("runaway trace: %d steps without returning to start exceeds limit %d (last at %v)", e.Steps, e.Limit, e.Position)
}

func (e *RunawayTraceError) Is(target error) bool {
	return target == ErrRunawayTrace
}

// InteriorCountError is returned when the classifier is handed a grid it cannot scan.
type InteriorCountError struct {
	Rows    int
	Columns int
	Reason  string
}

func (e *InteriorCountError) Error() string {
	return fmt.Sprintf("cannot count interior of %dx%d grid: %s", e.Rows, e.Columns, e.Reason)
}

func (e *InteriorCountError) Is(target error) bool {
	return target == ErrInteriorCount
}
