// Package days registers the daily puzzle solvers and runs their parts.
package days

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Solver answers both parts of one day's puzzle from the raw puzzle input.
type Solver interface {
	Day() int
	PartOne(ctx context.Context, input string) (int64, error)
	PartTwo(ctx context.Context, input string) (int64, error)
}

// RunMode selects which parts run and whether they print their working.
type RunMode uint8

const (
	// Result runs both parts quietly.
	Result RunMode = iota
	DebugPartOne
	DebugPartTwo
)

func (m RunMode) String() string {
	switch m {
	case Result:
		return "result"
	case DebugPartOne:
		return "debug-part-one"
	case DebugPartTwo:
		return "debug-part-two"
	}
	return fmt.Sprintf("RunMode(%d)", uint8(m))
}

// ParseRunMode is the inverse of RunMode.String. The empty string is Result.
func ParseRunMode(s string) (RunMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "result":
		return Result, nil
	case "debug-part-one", "debug1":
		return DebugPartOne, nil
	case "debug-part-two", "debug2":
		return DebugPartTwo, nil
	}
	return Result, fmt.Errorf("unknown run mode %q", s)
}

// Parts returns the parts the mode runs, in order.
func (m RunMode) Parts() []int {
	switch m {
	case DebugPartOne:
		return []int{1}
	case DebugPartTwo:
		return []int{2}
	}
	return []int{1, 2}
}

// Debug reports whether the parts run in this mode print their working.
func (m RunMode) Debug() bool {
	return m == DebugPartOne || m == DebugPartTwo
}

type debugKey struct{}

// WithDebug marks ctx so that solvers print their working.
func WithDebug(ctx context.Context) context.Context {
	return context.WithValue(ctx, debugKey{}, true)
}

// IsDebug reports whether ctx was marked by WithDebug.
func IsDebug(ctx context.Context) bool {
	debug, _ := ctx.Value(debugKey{}).(bool)
	return debug
}

// Answer is the outcome of one part.
type Answer struct {
	Part    int
	Value   int64
	Err     error
	Elapsed time.Duration
}

// Run runs the parts of s selected by mode. A failing part does not stop the next one.
func Run(ctx context.Context, s Solver, input string, mode RunMode) []Answer {
	if mode.Debug() {
		ctx = WithDebug(ctx)
	}

	var answers []Answer
	for _, part := range mode.Parts() {
		solve := s.PartOne
		if part == 2 {
			solve = s.PartTwo
		}

		started := time.Now()
		var value int64
		err := ctx.Err()
		if err == nil {
			value, err = solve(ctx, input)
		}
		answers = append(answers, Answer{
			Part:    part,
			Value:   value,
			Err:     err,
			Elapsed: time.Since(started),
		})
	}
	return answers
}

// Registry holds one solver per day.
type Registry struct {
	solvers map[int]Solver
}

func NewRegistry() *Registry {
	return &Registry{solvers: map[int]Solver{}}
}

// Register adds s under its day. Days run from 1 to 25 and each may be registered once.
func (r *Registry) Register(s Solver) error {
	day := s.Day()
	if day < 1 || day > 25 {
		return fmt.Errorf("day %d out of range", day)
	}
	if _, ok := r.solvers[day]; ok {
		return fmt.Errorf("day %d already registered", day)
	}
	r.solvers[day] = s
	return nil
}

// Get returns the solver for day.
func (r *Registry) Get(day int) (Solver, bool) {
	s, ok := r.solvers[day]
	return s, ok
}

// Days returns the registered days in ascending order.
func (r *Registry) Days() []int {
	days := make([]int, 0, len(r.solvers))
	for day := range r.solvers {
		days = append(days, day)
	}
	slices.Sort(days)
	return days
}
