package handlers_test

import (
	"net/http"
	"testing"
)

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	code, body := env.do(t, http.MethodGet, "/health", nil)
	if code != http.StatusOK || body["ok"] != true {
		t.Fatalf("code=%d body=%v", code, body)
	}
}
