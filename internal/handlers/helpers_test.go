package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"geoportal-backend/internal/handlers"
	"geoportal-backend/internal/notify"
	"geoportal-backend/internal/repository"
	"geoportal-backend/internal/store"
	"geoportal-backend/internal/ws"

	chi "github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type recordingNotifier struct {
	mu      sync.Mutex
	notices []notify.ResponseNotice
}

func (n *recordingNotifier) Publish(_ context.Context, notice notify.ResponseNotice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.notices)
}

func (n *recordingNotifier) last() notify.ResponseNotice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.notices[len(n.notices)-1]
}

type testEnv struct {
	router   chi.Router
	notifier *recordingNotifier
}

// newTestEnv wires the production routing against a file store in a temp dir.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st := store.NewFileStore(t.TempDir())
	logger := zerolog.Nop()

	userRepo := repository.NewUserRepo(st)
	feedbackRepo := repository.NewFeedbackRepo(st)
	responseRepo := repository.NewResponseRepo(st)
	notifier := &recordingNotifier{}
	hub := ws.NewHub(logger)

	r := chi.NewRouter()
	handlers.Mount(r,
		handlers.NewAuthHandler(userRepo, "test-secret", logger),
		handlers.NewUserHandler(userRepo, logger),
		handlers.NewFeedbackHandler(feedbackRepo, logger),
		handlers.NewResponseHandler(feedbackRepo, responseRepo, userRepo, notifier, hub, logger),
		ws.NewHandler(hub),
	)
	return &testEnv{router: r, notifier: notifier}
}

// do performs one request and decodes the JSON envelope.
func (e *testEnv) do(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	envelope := map[string]any{}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("%s %s: decode response %q: %v", method, path, rec.Body.String(), err)
	}
	return rec.Code, envelope
}

// waitFor polls until cond holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal(msg)
}

func asMap(t *testing.T, v any) map[string]any {
	t.Helper()
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected object, got %T", v)
	}
	return m
}

func asList(t *testing.T, v any) []any {
	t.Helper()
	l, ok := v.([]any)
	if !ok {
		t.Fatalf("expected array, got %T", v)
	}
	return l
}
