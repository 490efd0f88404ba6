package httpfn

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/gateway3b/aoc2023/internal/days"
	"github.com/gateway3b/aoc2023/internal/results"
)

func newTestHandler(t *testing.T, recorder results.Recorder) *Handler {
	t.Helper()
	logger := zaptest.NewLogger(t)
	h := NewHandler(HandlerParams{
		Registry:     days.Default(logger, 2),
		Recorder:     recorder,
		Logger:       logger,
		MaxBodyBytes: 64 << 10,
	})
	h.now = func() time.Time { return time.Date(2023, time.December, 10, 0, 0, 0, 0, time.UTC) }
	return h
}

func post(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, SolveResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/solve", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp SolveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return rec, resp
}

func requestBody(t *testing.T, req SolveRequest) string {
	t.Helper()
	data, err := json.Marshal(req)
	require.NoError(t, err)
	return string(data)
}

func fixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("../../testdata/" + name)
	require.NoError(t, err)
	return string(data)
}

func TestSolve(t *testing.T) {
	recorder, err := results.OpenSQLite(t.Context(), ":memory:")
	require.NoError(t, err)
	defer recorder.Close()

	h := newTestHandler(t, recorder)
	rec, resp := post(t, h, requestBody(t, SolveRequest{Day: 10, Input: fixture(t, "larger.txt")}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	require.True(t, resp.Success, resp.Error)
	assert.Equal(t, 10, resp.Day)
	require.Len(t, resp.Answers, 2)
	assert.Equal(t, int64(70), resp.Answers[0].Value)
	assert.Equal(t, int64(8), resp.Answers[1].Value)

	history, err := recorder.History(t.Context(), 10, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, history[0].RunID, history[1].RunID)
	assert.Equal(t, results.HashInput(fixture(t, "larger.txt")), history[0].InputHash)
}

func TestSolve_SinglePart(t *testing.T) {
	h := newTestHandler(t, nil)
	_, resp := post(t, h, requestBody(t, SolveRequest{Day: 10, Input: fixture(t, "squeeze.txt"), Mode: "debug2"}))

	require.True(t, resp.Success, resp.Error)
	require.Len(t, resp.Answers, 1)
	assert.Equal(t, 2, resp.Answers[0].Part)
	assert.Equal(t, int64(4), resp.Answers[0].Value)
}

func TestSolve_PuzzleError(t *testing.T) {
	h := newTestHandler(t, nil)
	rec, resp := post(t, h, requestBody(t, SolveRequest{Day: 10, Input: ".....\n.S...\n....."}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, resp.Success)
	require.Len(t, resp.Answers, 2)
	for _, a := range resp.Answers {
		assert.Contains(t, a.Error, "no connection")
		assert.Zero(t, a.Value)
	}
	assert.Contains(t, resp.Error, "part 1")
	assert.Contains(t, resp.Error, "part 2")
}

func TestSolve_BadRequests(t *testing.T) {
	h := newTestHandler(t, nil)

	tests := []struct {
		name   string
		body   string
		status int
		errMsg string
	}{
		{"not json", "{", http.StatusBadRequest, "Invalid JSON"},
		{"unknown day", `{"day": 3, "input": "x"}`, http.StatusBadRequest, "day 3"},
		{"bad mode", `{"day": 10, "input": "S7\nLJ", "mode": "fast"}`, http.StatusBadRequest, "run mode"},
		{"empty input", `{"day": 10, "input": "  "}`, http.StatusBadRequest, "input must not be empty"},
		{"too large", `{"day": 10, "input": "` + strings.Repeat(".", 70<<10) + `"}`, http.StatusRequestEntityTooLarge, "Invalid JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := post(t, h, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.False(t, resp.Success)
			assert.Contains(t, resp.Error, tt.errMsg)
		})
	}
}

func TestMethods(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/solve", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/solve", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	var resp SolveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Method GET not allowed", resp.Error)
}
