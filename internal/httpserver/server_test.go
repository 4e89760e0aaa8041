package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/quordle/apps/go-solver/internal/board"
	"github.com/robalobadob/quordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/quordle/apps/go-solver/internal/metrics"
	"github.com/robalobadob/quordle/apps/go-solver/internal/words"
)

var fixture = []string{"crane", "crate", "slant", "trace", "carte", "grape"}

type recordingPublisher struct {
	mu    sync.Mutex
	calls [][]board.Result
}

func (p *recordingPublisher) Publish(_ context.Context, _ string, rs []board.Result) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, rs)
	return nil
}

func newTestServer(t *testing.T, auth AuthConfig) (*Server, *recordingPublisher) {
	t.Helper()
	if auth.Secret == "" {
		auth.Secret = "test-secret"
	}
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	pub := &recordingPublisher{}
	ev := board.NewEvaluator(words.New(fixture),
		board.WithOpeners([]string{"slant"}),
		board.WithRand(func(int) int { return 0 }),
		board.WithObserver(m),
	)
	s := New(Deps{
		Evaluator: ev,
		Publisher: pub,
		Observer:  m,
		Metrics:   promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Auth:      auth,
	})
	return s, pub
}

func do(t *testing.T, s *Server, method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func newSession(t *testing.T, s *Server) newSessionRes {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/sessions", "", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var res newSessionRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(t, res.Token)
	return res
}

func bearer(tok string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + tok}
}

func evaluateBody(t *testing.T, b int, rows [][]feedback.Cell) string {
	t.Helper()
	raw, err := json.Marshal(map[string]any{"board": b, "rows": rows})
	require.NoError(t, err)
	return string(raw)
}

func TestDiagnostics(t *testing.T) {
	s, _ := newTestServer(t, AuthConfig{})

	rec := do(t, s, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	rec = do(t, s, http.MethodGet, "/debug/words", "", nil)
	assert.JSONEq(t, `{"words":6,"length":5}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(t, AuthConfig{})
	rec := do(t, s, http.MethodOptions, "/sessions", "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestSessionFlow(t *testing.T) {
	s, pub := newTestServer(t, AuthConfig{})
	sess := newSession(t, s)

	// No board yet.
	rec := do(t, s, http.MethodGet, "/sessions/suggestions", "", bearer(sess.Token))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"suggestions sent","data":[]}`, rec.Body.String())

	// Board 0: blank, gets the opener.
	rec = do(t, s, http.MethodPost, "/sessions/evaluate", evaluateBody(t, 0, nil), bearer(sess.Token))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"board":0,"suggestions":["slant"]}`, rec.Body.String())

	// Boards 1..3 with feedback against "grape".
	rows := feedback.Simulate([]string{"crane"}, "grape")
	for b := 1; b < board.Boards; b++ {
		rec = do(t, s, http.MethodPost, "/sessions/evaluate", evaluateBody(t, b, rows), bearer(sess.Token))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	var res board.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, []string{"trace", "grape"}, res.Suggestions)

	require.Len(t, pub.calls, 1)
	assert.Len(t, pub.calls[0], board.Boards)

	rec = do(t, s, http.MethodGet, "/sessions/suggestions", "", bearer(sess.Token))
	var latest suggestionsRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &latest))
	assert.Equal(t, "suggestions sent", latest.Status)
	require.Len(t, latest.Data, board.Boards)
	assert.Equal(t, []string{"slant"}, latest.Data[0].Suggestions)
	assert.Equal(t, []string{"trace", "grape"}, latest.Data[3].Suggestions)

	rec = do(t, s, http.MethodGet, "/metrics", "", nil)
	assert.Contains(t, rec.Body.String(), `quordle_evaluations_total{board="0",kind="opener"} 1`)
	assert.Contains(t, rec.Body.String(), `quordle_deliveries_total{result="ok"} 1`)
}

func TestEvaluateLabels(t *testing.T) {
	s, _ := newTestServer(t, AuthConfig{})
	sess := newSession(t, s)

	body := `{"board":2,"labels":[[
		"'C' (letter 1) is incorrect",
		"'R' (letter 2) is correct",
		"'A' (letter 3) is correct",
		"'N' (letter 4) is incorrect",
		"'E' (letter 5) is correct"
	]]}`
	rec := do(t, s, http.MethodPost, "/sessions/evaluate", body, bearer(sess.Token))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"board":2,"suggestions":["trace","grape"]}`, rec.Body.String())
}

func TestEvaluateErrors(t *testing.T) {
	s, _ := newTestServer(t, AuthConfig{})
	sess := newSession(t, s)

	rec := do(t, s, http.MethodPost, "/sessions/evaluate", `{"board":0}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodPost, "/sessions/evaluate", `{"board":0}`, bearer("garbage"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodPost, "/sessions/evaluate", `{`, bearer(sess.Token))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/sessions/evaluate", `{"rows":[]}`, bearer(sess.Token))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/sessions/evaluate", `{"board":4}`, bearer(sess.Token))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTokenFromOtherSecretRejected(t *testing.T) {
	a, _ := newTestServer(t, AuthConfig{Secret: "one"})
	b, _ := newTestServer(t, AuthConfig{Secret: "two"})
	sess := newSession(t, a)

	rec := do(t, b, http.MethodGet, "/sessions/suggestions", "", bearer(sess.Token))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUnknownSession(t *testing.T) {
	s, _ := newTestServer(t, AuthConfig{})
	tok, _, err := s.auth.signToken("not-stored")
	require.NoError(t, err)

	rec := do(t, s, http.MethodGet, "/sessions/suggestions", "", bearer(tok))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTokenCookie(t *testing.T) {
	s, _ := newTestServer(t, AuthConfig{})
	rec := do(t, s, http.MethodPost, "/sessions", "", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "quordle_token", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/sessions/suggestions", nil)
	req.AddCookie(cookies[0])
	out := httptest.NewRecorder()
	s.Router().ServeHTTP(out, req)
	assert.Equal(t, http.StatusOK, out.Code)
}

func TestTokenExpiry(t *testing.T) {
	s, _ := newTestServer(t, AuthConfig{TTL: time.Hour})
	sess := newSession(t, s)
	assert.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, time.Minute)

	sid, err := s.auth.parseToken(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.SessionID, sid)
}

func TestAPIKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	require.NoError(t, err)
	s, _ := newTestServer(t, AuthConfig{APIKeyHash: string(hash)})

	rec := do(t, s, http.MethodPost, "/sessions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodPost, "/sessions", "", map[string]string{"X-API-Key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodPost, "/sessions", "", map[string]string{"X-API-Key": "letmein"})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestSolve(t *testing.T) {
	s, _ := newTestServer(t, AuthConfig{})

	rec := do(t, s, http.MethodPost, "/solve", `{"green":{"R":[1],"a":[2],"e":[4]},"grey":{"c":[0],"n":[3]}}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":2,"candidates":["trace","grape"]}`, rec.Body.String())

	rec = do(t, s, http.MethodPost, "/solve", `{"limit":2}`, nil)
	assert.JSONEq(t, `{"count":6,"candidates":["crane","crate"]}`, rec.Body.String())

	rec = do(t, s, http.MethodPost, "/solve", `not json`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServesEmptySuggestionsWithoutVocabulary(t *testing.T) {
	pub := &recordingPublisher{}
	s := New(Deps{Publisher: pub, Auth: AuthConfig{Secret: "test-secret"}})
	sess := newSession(t, s)

	rows := feedback.Simulate([]string{"crane"}, "grape")
	for b := 0; b < board.Boards; b++ {
		rec := do(t, s, http.MethodPost, "/sessions/evaluate", evaluateBody(t, b, rows), bearer(sess.Token))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.JSONEq(t, `{"board":`+strconv.Itoa(b)+`,"suggestions":[]}`, rec.Body.String())
	}
	assert.Empty(t, pub.calls)

	rec := do(t, s, http.MethodGet, "/sessions/suggestions", "", bearer(sess.Token))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"suggestions sent","data":[]}`, rec.Body.String())

	rec = do(t, s, http.MethodPost, "/solve", `{"green":{"r":[1]}}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":0,"candidates":[]}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/debug/words", "", nil)
	assert.JSONEq(t, `{"words":0,"length":0}`, rec.Body.String())

	rec = do(t, s, http.MethodPost, "/sessions/evaluate", `{"board":9}`, bearer(sess.Token))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
