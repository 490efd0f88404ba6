// Package httpfn serves the solvers over HTTP as a Cloud Function.
package httpfn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gateway3b/aoc2023/internal/days"
	"github.com/gateway3b/aoc2023/internal/results"
)

type SolveRequest struct {
	Day   int    `json:"day"`
	Input string `json:"input"`
	Mode  string `json:"mode"`
}

type PartAnswer struct {
	Part      int     `json:"part"`
	Value     int64   `json:"value"`
	Error     string  `json:"error,omitempty"`
	ElapsedMs float64 `json:"elapsedMs"`
}

type SolveResponse struct {
	Success bool         `json:"success"`
	Day     int          `json:"day,omitempty"`
	Answers []PartAnswer `json:"answers,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// Handler answers SolveRequests.
type Handler struct {
	registry     *days.Registry
	recorder     results.Recorder
	logger       *zap.Logger
	maxBodyBytes int64
	now          func() time.Time
}

type HandlerParams struct {
	Registry *days.Registry
	// Recorder stores every answered part. Nil records nothing.
	Recorder results.Recorder
	Logger   *zap.Logger
	// MaxBodyBytes caps the request body. Zero means 1 MiB.
	MaxBodyBytes int64
}

func NewHandler(params HandlerParams) *Handler {
	h := &Handler{
		registry:     params.Registry,
		recorder:     params.Recorder,
		logger:       params.Logger,
		maxBodyBytes: params.MaxBodyBytes,
		now:          time.Now,
	}
	if h.recorder == nil {
		h.recorder = results.Discard()
	}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}
	if h.maxBodyBytes <= 0 {
		h.maxBodyBytes = 1 << 20
	}
	return h
}

// errBadRequest marks failures caused by the request rather than the puzzle.
var errBadRequest = errors.New("bad request")

func (h *Handler) execute(ctx context.Context, req SolveRequest) ([]PartAnswer, error) {
	solver, ok := h.registry.Get(req.Day)
	if !ok {
		return nil, fmt.Errorf("%w: day %d is not solved here (available: %v)", errBadRequest, req.Day, h.registry.Days())
	}
	mode, err := days.ParseRunMode(req.Mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if strings.TrimSpace(req.Input) == "" {
		return nil, fmt.Errorf("%w: input must not be empty", errBadRequest)
	}

	answers := days.Run(ctx, solver, req.Input, mode)

	runID := results.NewRunID()
	if err := h.recorder.Record(ctx, results.FromAnswers(runID, req.Day, req.Input, answers, h.now())...); err != nil {
		h.logger.Error("failed to record answers", zap.Stringer("run_id", runID), zap.Error(err))
	}

	parts := make([]PartAnswer, 0, len(answers))
	var failed []string
	for _, a := range answers {
		p := PartAnswer{
			Part:      a.Part,
			Value:     a.Value,
			ElapsedMs: float64(a.Elapsed.Microseconds()) / 1000,
		}
		if a.Err != nil {
			p.Value = 0
			p.Error = a.Err.Error()
			failed = append(failed, fmt.Sprintf("part %d: %v", a.Part, a.Err))
		}
		parts = append(parts, p)
	}
	h.logger.Info("solved",
		zap.Stringer("run_id", runID),
		zap.Int("day", req.Day),
		zap.Stringer("mode", mode),
		zap.Int("failed", len(failed)))

	if len(failed) > 0 {
		return parts, errors.New(strings.Join(failed, "; "))
	}
	return parts, nil
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		h.respond(w, http.StatusMethodNotAllowed, SolveResponse{
			Error: fmt.Sprintf("Method %s not allowed", r.Method),
		})
		return
	}

	var req SolveRequest
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		h.logger.Debug("invalid request body", zap.Error(err))
		h.respond(w, status, SolveResponse{Error: fmt.Sprintf("Invalid JSON: %v", err)})
		return
	}

	answers, err := h.execute(r.Context(), req)
	response := SolveResponse{
		Success: err == nil,
		Day:     req.Day,
		Answers: answers,
	}
	status := http.StatusOK
	if err != nil {
		response.Error = err.Error()
		if errors.Is(err, errBadRequest) {
			status = http.StatusBadRequest
		}
	}
	h.respond(w, status, response)
}

func (h *Handler) respond(w http.ResponseWriter, status int, response SolveResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		h.logger.Error("failed to marshal response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"success": false, "error": "Internal server error"}`)
		return
	}
	w.WriteHeader(status)
	w.Write(data)
}
