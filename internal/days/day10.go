package days

import (
	"context"

	"go.uber.org/zap"

	aoc "github.com/gateway3b/aoc2023"
)

// Day10 is the pipe maze.
type Day10 struct {
	analyzer *aoc.Analyzer
	logger   *zap.Logger
}

// NewDay10 returns the day 10 solver. workers is the number of row bands classified at once.
func NewDay10(logger *zap.Logger, workers int) *Day10 {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Day10{
		analyzer: aoc.CreateAnalyzer(aoc.AnalyzerParams{Workers: workers, Logger: logger}),
		logger:   logger,
	}
}

func (d *Day10) Day() int { return 10 }

// PartOne is the number of steps from S to the farthest point of the loop.
func (d *Day10) PartOne(ctx context.Context, input string) (int64, error) {
	if !IsDebug(ctx) {
		n, err := d.analyzer.Farthest(input)
		return int64(n), err
	}

	r, err := d.analyzer.Analyze(input)
	if err != nil {
		return 0, err
	}
	d.logMaze(r, zap.Int("farthest", r.Farthest))
	d.logger.Info("\n" + r.Grid.Repr())
	return int64(r.Farthest), nil
}

// PartTwo is the number of cells enclosed by the loop.
func (d *Day10) PartTwo(ctx context.Context, input string) (int64, error) {
	r, err := d.analyzer.Analyze(input)
	if err != nil {
		return 0, err
	}
	if IsDebug(ctx) {
		d.logMaze(r, zap.Int("interior", r.Interior), zap.Int("outside", r.Outside))
		d.logger.Info("\n" + r.Grid.Render(r.InteriorCells))
	}
	return int64(r.Interior), nil
}

func (d *Day10) logMaze(r *aoc.Report, fields ...zap.Field) {
	d.logger.Info("maze", append([]zap.Field{zap.Int("loop_length", r.LoopLength)}, fields...)...)
	d.logger.Debug("grid", zap.String("grid", r.Grid.DebugString()))
}

// Default returns a registry with every solver in this repository.
func Default(logger *zap.Logger, workers int) *Registry {
	r := NewRegistry()
	if err := r.Register(NewDay10(logger, workers)); err != nil {
		panic(err)
	}
	return r
}
