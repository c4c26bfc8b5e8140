package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRegisterThenLogin(t *testing.T) {
	env := newTestEnv(t)

	code, body := env.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"fullName": "Ada Lovelace",
		"email":    "  Ada@Example.COM ",
		"password": "s3cret",
	})
	if code != http.StatusOK || body["ok"] != true {
		t.Fatalf("register: code=%d body=%v", code, body)
	}
	user := asMap(t, body["user"])
	if user["email"] != "ada@example.com" {
		t.Errorf("email not normalized: %v", user["email"])
	}
	if user["role"] != "member" {
		t.Errorf("role: got %v, want member", user["role"])
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Error("credential hash leaked in register response")
	}
	if _, leaked := user["password"]; leaked {
		t.Error("password leaked in register response")
	}
	if token, _ := body["token"].(string); token == "" {
		t.Error("no identity token issued")
	}

	// Any casing of the email must log in.
	code, body = env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "ADA@example.com",
		"password": "s3cret",
	})
	if code != http.StatusOK || body["ok"] != true {
		t.Fatalf("login: code=%d body=%v", code, body)
	}
	if asMap(t, body["user"])["id"] != user["id"] {
		t.Error("login returned a different user")
	}
}

func TestRegisterDuplicateEmailDiffersOnlyInCase(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"fullName": "First", "email": "dup@example.com", "password": "pw",
	})
	code, body := env.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"fullName": "Second", "email": "DUP@EXAMPLE.COM", "password": "pw2",
	})
	if code != http.StatusConflict {
		t.Fatalf("code: got %d, want 409", code)
	}
	if body["ok"] != false || body["error"] != "email_already_exists" {
		t.Fatalf("body: %v", body)
	}
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	for name, req := range map[string]map[string]string{
		"missing name":    {"email": "a@b.c", "password": "pw"},
		"blank name":      {"fullName": "   ", "email": "a@b.c", "password": "pw"},
		"missing email":   {"fullName": "A", "password": "pw"},
		"missing pass":    {"fullName": "A", "email": "a@b.c"},
		"empty body": nil,
	} {
		t.Run(name, func(t *testing.T) {
			code, body := env.do(t, http.MethodPost, "/api/auth/register", req)
			if code != http.StatusBadRequest || body["ok"] != false {
				t.Fatalf("code=%d body=%v", code, body)
			}
		})
	}
}

// A malformed body reads as an empty object, so the client sees the field
// validation message rather than a separate parse error.
func TestMalformedBodyFallsThroughToValidation(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("code: got %d, want 400", rec.Code)
	}
	body := map[string]any{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["error"] != "fullName/email/password is required" {
		t.Fatalf("error: got %v, want the validation message", body["error"])
	}
}

func TestLoginBadCredentials(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"fullName": "Ada", "email": "ada@example.com", "password": "right",
	})

	for name, req := range map[string]map[string]string{
		"wrong password": {"email": "ada@example.com", "password": "wrong"},
		"unknown email":  {"email": "ghost@example.com", "password": "right"},
	} {
		t.Run(name, func(t *testing.T) {
			code, body := env.do(t, http.MethodPost, "/api/auth/login", req)
			if code != http.StatusUnauthorized {
				t.Fatalf("code: got %d, want 401", code)
			}
			if body["error"] != "invalid_credentials" {
				t.Fatalf("error: %v", body["error"])
			}
		})
	}
}

func TestListUsersIsSanitized(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"fullName": "Ada", "email": "ada@example.com", "password": "pw",
	})

	code, body := env.do(t, http.MethodGet, "/api/users", nil)
	if code != http.StatusOK || body["ok"] != true {
		t.Fatalf("code=%d body=%v", code, body)
	}
	users := asList(t, body["users"])
	if len(users) != 1 {
		t.Fatalf("got %d users, want 1", len(users))
	}
	if _, leaked := asMap(t, users[0])["passwordHash"]; leaked {
		t.Error("credential hash leaked in user listing")
	}
}
