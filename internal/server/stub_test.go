package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonathan/career-readiness/internal/config"
	"github.com/jonathan/career-readiness/internal/controller"
	"github.com/jonathan/career-readiness/internal/llm"
	"github.com/jonathan/career-readiness/internal/readiness"
	"github.com/jonathan/career-readiness/internal/server/ratelimit"
	"github.com/jonathan/career-readiness/internal/session"
	"github.com/jonathan/career-readiness/internal/store"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const (
	insightReply    = `{"score":62,"roleAnalysis":[{"role":"Backend Developer","fit":"Good"}],"gaps":["No DB experience"],"strengths":["Strong OOP"],"weaknesses":[],"explanation":"...","roadmapDescription":"...","roadmapType":"Execution","skillData":[{"subject":"DS&A","A":60}],"evidenceSignals":[{"category":"Technical","evidenceLevel":"Some Evidence","details":"..."}],"nextBestAction":"Build a DB-backed project"}`
	recsReply       = `[{"priority":"Critical","action":"Build a DB-backed project","description":"CRUD API","estimatedTime":"3 weeks"},{"priority":"High","action":"Learn SQL","description":"Joins","estimatedTime":"2 weeks"},{"priority":"Moderate","action":"Publish GitHub","description":"Readme","estimatedTime":"1 week"}]`
	questionsReply  = `[{"id":"q1","question":"Explain indexing","context":"Databases"},{"id":"q2","question":"Design a queue","context":"Systems"}]`
	evaluationReply = `{"overallScore":71,"clarity":"Clear","depth":"Moderate","suggestions":["Quantify impact"]}`
)

// stubLLM answers structured requests by schema name.
type stubLLM struct {
	mu      sync.Mutex
	replies map[string]string
	errs    map[string]error
}

func newStubLLM() *stubLLM {
	return &stubLLM{
		replies: map[string]string{
			"readiness_insight":    insightReply,
			"recommendations":      recsReply,
			"interview_questions":  questionsReply,
			"interview_evaluation": evaluationReply,
		},
		errs: map[string]error{},
	}
}

func (s *stubLLM) fail(schema string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs[schema] = err
}

func (s *stubLLM) reply(schema, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[schema] = text
}

func (s *stubLLM) GenerateStructured(_ context.Context, _ string, schema *llm.Schema, _ llm.ModelTier) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name := schema.Name()
	if err, ok := s.errs[name]; ok {
		return "", err
	}
	return s.replies[name], nil
}

func (s *stubLLM) GetModel(tier llm.ModelTier) string { return "stub-" + string(tier) }

func (s *stubLLM) Close() error { return nil }

type testServer struct {
	*Server
	t   *testing.T
	llm *stubLLM
	kv  *store.MemoryKV
}

func newTestServer(t *testing.T, limits *ratelimit.Config) *testServer {
	t.Helper()
	logger := zaptest.NewLogger(t)
	client := newStubLLM()
	kv := store.NewMemory()
	svc := readiness.NewService(client, readiness.WithLogger(logger))

	registry := controller.NewRegistry(func(sessionID string) *controller.Controller {
		identity := session.New(store.Scoped(kv, store.SessionPrefix(sessionID)), session.WithSignInLatency(0))
		return controller.New(identity, svc, controller.WithLogger(logger))
	}, time.Hour, logger)

	if limits == nil {
		limits = &ratelimit.Config{Enabled: false}
	}
	srv, err := New(Config{
		Port:      0,
		JWT:       &config.JWTConfig{Secret: testSecret, TTL: time.Hour},
		RateLimit: limits,
		Registry:  registry,
		Reports:   svc,
		Logger:    logger,
	})
	require.NoError(t, err)
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, t: t, llm: client, kv: kv}
}

// do sends a request through the full middleware chain.
func (ts *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	ts.t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = strings.NewReader(b)
		default:
			data, err := json.Marshal(b)
			require.NoError(ts.t, err)
			reader = bytes.NewReader(data)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)
	return w
}

// openSession creates a session and returns its token.
func (ts *testServer) openSession() string {
	ts.t.Helper()
	w := ts.do(http.MethodPost, "/sessions", "", nil)
	require.Equal(ts.t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		SessionID string `json:"session_id"`
		Token     string `json:"token"`
	}
	require.NoError(ts.t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(ts.t, resp.SessionID)
	require.NotEmpty(ts.t, resp.Token)
	return resp.Token
}

// signedIn opens a session and signs in.
func (ts *testServer) signedIn() string {
	ts.t.Helper()
	token := ts.openSession()
	w := ts.do(http.MethodPost, "/get-started", token, nil)
	require.Equal(ts.t, http.StatusOK, w.Code, w.Body.String())
	return token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type sseEvent struct {
	Event string
	Data  string
}

func parseSSE(t *testing.T, body string) []sseEvent {
	t.Helper()
	var (
		events  []sseEvent
		current sseEvent
	)
	scanner := bufio.NewScanner(strings.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			current.Event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			current.Data = strings.TrimPrefix(line, "data: ")
		case line == "" && current.Event != "":
			events = append(events, current)
			current = sseEvent{}
		}
	}
	require.NoError(t, scanner.Err())
	return events
}
