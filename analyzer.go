package aoc

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gateway3b/aoc2023/pkg/pipes"
)

// Analyzer runs the whole pipe maze pipeline: parse, trace the loop, classify the rest.
type Analyzer struct {
	Workers int

	logger *zap.Logger
}

type AnalyzerParams struct {
	// Workers is handed to Classify, see ClassifyParams.
	Workers int
	// Logger receives debug summaries of each stage. Nil disables logging.
	Logger *zap.Logger
}

func CreateAnalyzer(params AnalyzerParams) *Analyzer {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		Workers: params.Workers,
		logger:  logger,
	}
}

// Report is everything learned about one maze.
type Report struct {
	Grid          *Grid
	Cycle         *Cycle
	InteriorCells *pipes.PositionSet

	// LoopLength is the number of steps around the loop.
	LoopLength int
	// Farthest is the distance from the start to the farthest loop cell.
	Farthest int
	// Interior is the number of cells enclosed by the loop.
	Interior int
	// Outside is the number of cells neither on nor enclosed by the loop.
	Outside int
}

// Analyze parses text and measures its loop.
func (a *Analyzer) Analyze(text string) (*Report, error) {
	g, cycle, err := a.trace(text)
	if err != nil {
		return nil, err
	}

	interior, err := Classify(g, cycle.Cells(), ClassifyParams{Workers: a.Workers})
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	if interior.Fallbacks > 0 {
		a.logger.Warn("interior scan hit unhandled boundary states",
			zap.Int("fallbacks", interior.Fallbacks))
	}
	a.logger.Debug("classified interior",
		zap.Int("interior", interior.Count()),
		zap.Int("workers", a.Workers))

	return &Report{
		Grid:          g,
		Cycle:         cycle,
		InteriorCells: interior.Cells,
		LoopLength:    cycle.Len(),
		Farthest:      cycle.Farthest(),
		Interior:      interior.Count(),
		Outside:       interior.Cells.Capacity() - cycle.Len() - interior.Count(),
	}, nil
}

// Farthest answers part one: the number of steps to the point of the loop farthest from S.
func (a *Analyzer) Farthest(text string) (int, error) {
	_, cycle, err := a.trace(text)
	if err != nil {
		return 0, err
	}
	return cycle.Farthest(), nil
}

// InteriorCount answers part two: the number of cells enclosed by the loop.
func (a *Analyzer) InteriorCount(text string) (int, error) {
	r, err := a.Analyze(text)
	if err != nil {
		return 0, err
	}
	return r.Interior, nil
}

func (a *Analyzer) trace(text string) (*Grid, *Cycle, error) {
	g, err := ParseGrid(text)
	if err != nil {
		return nil, nil, fmt.Errorf("parse: %w", err)
	}
	a.logger.Debug("parsed grid",
		zap.Int("rows", g.Rows()),
		zap.Int("columns", g.Columns()),
		zap.Stringer("start", g.Start()))

	cycle, err := Trace(g, g.Start())
	if err != nil {
		return nil, nil, fmt.Errorf("trace: %w", err)
	}
	a.logger.Debug("traced loop",
		zap.Int("length", cycle.Len()),
		zap.Int("farthest", cycle.Farthest()))
	return g, cycle, nil
}
