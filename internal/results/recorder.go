// Package results keeps a history of the answers produced by the solvers.
package results

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gateway3b/aoc2023/internal/config"
	"github.com/gateway3b/aoc2023/internal/days"
)

// Record is one answered part.
type Record struct {
	RunID     uuid.UUID
	Day       int
	Part      int
	Answer    int64
	Error     string
	Elapsed   time.Duration
	InputHash string
	SolvedAt  time.Time
}

// OK reports whether the part produced an answer.
func (r Record) OK() bool {
	return r.Error == ""
}

// Recorder stores records and reads them back newest first.
type Recorder interface {
	Record(ctx context.Context, records ...Record) error
	// History returns up to limit records for day, or for every day when day is zero.
	History(ctx context.Context, day, limit int) ([]Record, error)
	Close() error
}

// NewRunID identifies one invocation of the solvers.
func NewRunID() uuid.UUID {
	return uuid.New()
}

// HashInput fingerprints a puzzle input so that answers to the same input can be compared
// without storing it.
func HashInput(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

// FromAnswers turns the answers of one day into records sharing runID.
func FromAnswers(runID uuid.UUID, day int, input string, answers []days.Answer, now time.Time) []Record {
	hash := HashInput(input)
	records := make([]Record, 0, len(answers))
	for _, a := range answers {
		r := Record{
			RunID:     runID,
			Day:       day,
			Part:      a.Part,
			Answer:    a.Value,
			Elapsed:   a.Elapsed,
			InputHash: hash,
			SolvedAt:  now.UTC(),
		}
		if a.Err != nil {
			r.Answer = 0
			r.Error = a.Err.Error()
		}
		records = append(records, r)
	}
	return records
}

// Open returns the recorder selected by cfg.Backend.
func Open(ctx context.Context, cfg config.Results) (Recorder, error) {
	switch cfg.Backend {
	case "", "none":
		return Discard(), nil
	case "sqlite":
		return OpenSQLite(ctx, cfg.SQLite.Path)
	case "bigquery":
		return OpenBigQuery(ctx, cfg.BigQuery)
	}
	return nil, fmt.Errorf("unknown results backend %q", cfg.Backend)
}

type discard struct{}

// Discard returns a recorder that keeps nothing.
func Discard() Recorder { return discard{} }

func (discard) Record(context.Context, ...Record) error { return nil }

func (discard) History(context.Context, int, int) ([]Record, error) { return nil, nil }

func (discard) Close() error { return nil }
