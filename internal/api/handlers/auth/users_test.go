package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"meubolso/internal/repositories/sqlconnect"
	"meubolso/internal/testdb"
	"meubolso/pkg/utils"
)

func setupAuthTest(t *testing.T) {
	t.Helper()
	sqlconnect.DB = testdb.New(t)
	t.Cleanup(func() { sqlconnect.DB = nil })
	utils.SetTokenSecret("test-secret")
}

func postJSON(t *testing.T, handler http.HandlerFunc, target string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func registerAna(t *testing.T) *httptest.ResponseRecorder {
	t.Helper()
	return postJSON(t, RegisterHandler, "/auth/register", map[string]string{
		"name":     "Ana",
		"email":    "ana@x.com",
		"password": "secret1",
	})
}

func TestRegisterCreatesUserAndDefaultWallet(t *testing.T) {
	setupAuthTest(t)

	w := registerAna(t)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Ok   bool `json:"ok"`
		User struct {
			ID    int    `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Ok || resp.User.Email != "ana@x.com" || resp.User.ID == 0 {
		t.Errorf("unexpected response %+v", resp)
	}

	var cookieSet bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" && c.Value != "" && c.HttpOnly {
			cookieSet = true
		}
	}
	if !cookieSet {
		t.Error("expected session cookie to be set on register")
	}

	var balance float64
	err := sqlconnect.DB.QueryRow(
		"SELECT balance FROM wallets WHERE user_id = ?", resp.User.ID,
	).Scan(&balance)
	if err != nil {
		t.Fatalf("expected a default wallet: %v", err)
	}
	if balance != 0 {
		t.Errorf("expected default wallet balance 0, got %f", balance)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setupAuthTest(t)

	if w := registerAna(t); w.Code != http.StatusCreated {
		t.Fatalf("first register failed: %d", w.Code)
	}

	w := registerAna(t)
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate email, got %d", w.Code)
	}
}

func TestRegisterRejectsInvalidPayload(t *testing.T) {
	setupAuthTest(t)

	cases := []map[string]string{
		{"name": "A", "email": "ana@x.com", "password": "secret1"},
		{"name": "Ana", "email": "not-an-email", "password": "secret1"},
		{"name": "Ana", "email": "ana@x.com", "password": "12345"},
	}

	for _, payload := range cases {
		w := postJSON(t, RegisterHandler, "/auth/register", payload)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for %v, got %d", payload, w.Code)
		}
	}
}

func TestLogin(t *testing.T) {
	setupAuthTest(t)
	registerAna(t)

	w := postJSON(t, LoginHandler, "/auth/login", map[string]string{
		"email":    "ana@x.com",
		"password": "secret1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Ok    bool   `json:"ok"`
		ID    int    `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Ok || resp.Name != "Ana" {
		t.Errorf("unexpected response %+v", resp)
	}

	w = postJSON(t, LoginHandler, "/auth/login", map[string]string{
		"email":    "ana@x.com",
		"password": "wrong-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad password, got %d", w.Code)
	}

	w = postJSON(t, LoginHandler, "/auth/login", map[string]string{
		"email":    "nobody@x.com",
		"password": "secret1",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for unknown user, got %d", w.Code)
	}
}

func TestMe(t *testing.T) {
	setupAuthTest(t)
	reg := registerAna(t)

	// Without a cookie: anonymous, still 200.
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()
	MeHandler(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var anon struct {
		Ok            bool `json:"ok"`
		Authenticated bool `json:"authenticated"`
	}
	if err := json.NewDecoder(w.Body).Decode(&anon); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !anon.Ok || anon.Authenticated {
		t.Errorf("expected anonymous response, got %+v", anon)
	}

	// With the register cookie: authenticated.
	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	for _, c := range reg.Result().Cookies() {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	MeHandler(w, req)

	var me struct {
		Ok            bool   `json:"ok"`
		Authenticated bool   `json:"authenticated"`
		UserID        int    `json:"userId"`
		Name          string `json:"name"`
	}
	if err := json.NewDecoder(w.Body).Decode(&me); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !me.Authenticated || me.Name != "Ana" || me.UserID == 0 {
		t.Errorf("expected authenticated Ana, got %+v", me)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	w := httptest.NewRecorder()
	LogoutHandler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" && c.Value == "" && c.Expires.Before(time.Now()) {
			cleared = true
		}
	}
	if !cleared {
		t.Error("expected the session cookie to be cleared")
	}
}
