package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"dlccontrol/internal/repository"
	"dlccontrol/internal/service"
)

func TestAuthHandlers_SignUpAndSignIn(t *testing.T) {
	auth := &mockAuth{signUpID: 42, genTokenToken: "tok123", parseID: 1}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := do(t, r, http.MethodPost, "/auth/sign-up", `{"username":"u","password":"p"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("sign-up status=%d, body=%s", w.Code, w.Body.String())
	}
	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if int(m["id"].(float64)) != 42 || auth.lastSignUpUsername != "u" {
		t.Fatalf("expected id=42 for u, got %v (%q)", m["id"], auth.lastSignUpUsername)
	}

	w = do(t, r, http.MethodPost, "/auth/sign-in", `{"username":"u","password":"p"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("sign-in status=%d, body=%s", w.Code, w.Body.String())
	}
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if m["token"] != "tok123" {
		t.Fatalf("expected token tok123, got %v", m["token"])
	}

	if w := do(t, r, http.MethodPost, "/auth/sign-in", `{"username":1}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad body, got %d", w.Code)
	}
}

func TestAuthHandlers_Errors(t *testing.T) {
	cases := []struct {
		name   string
		auth   *mockAuth
		target string
		want   int
	}{
		{"duplicate user", &mockAuth{signUpErr: fmt.Errorf("%w: %q", repository.ErrUserExists, "u")}, "/auth/sign-up", http.StatusConflict},
		{"empty password", &mockAuth{signUpErr: service.ErrEmptyPassword}, "/auth/sign-up", http.StatusBadRequest},
		{"bad credentials", &mockAuth{genTokenErr: service.ErrInvalidPassword}, "/auth/sign-in", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{Authorization: tc.auth})
			w := do(t, r, http.MethodPost, tc.target, `{"username":"u","password":"p"}`)
			if w.Code != tc.want {
				t.Fatalf("status=%d; want %d (body=%s)", w.Code, tc.want, w.Body.String())
			}
		})
	}
}
