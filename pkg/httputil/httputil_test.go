package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	dErrors "idcheck/pkg/domainerrors"
)

func TestDecode(t *testing.T) {
	type payload struct {
		Email string `json:"email"`
	}

	t.Run("valid body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.fr"}`))
		got, err := Decode[payload](r)
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if got.Email != "a@b.fr" {
			t.Fatalf("expected a@b.fr, got %q", got.Email)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"mail":"a@b.fr"}`))
		_, err := Decode[payload](r)
		if !dErrors.HasCode(err, dErrors.CodeInvalidInput) {
			t.Fatalf("expected invalid input code, got %v", err)
		}
	})

	t.Run("malformed body rejected", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`not json`))
		_, err := Decode[payload](r)
		if !dErrors.HasCode(err, dErrors.CodeInvalidInput) {
			t.Fatalf("expected invalid input code, got %v", err)
		}
	})
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusConflict, map[string]bool{"success": false})

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected json content type, got %q", ct)
	}
	var body map[string]bool
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["success"] {
		t.Fatalf("expected success=false in body")
	}
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{dErrors.New(dErrors.CodeInvalidInput, "bad"), http.StatusBadRequest},
		{dErrors.New(dErrors.CodeNotFound, "missing"), http.StatusNotFound},
		{dErrors.New(dErrors.CodeAlreadyConfirmed, "done"), http.StatusConflict},
		{dErrors.New(dErrors.CodeRateLimited, "slow down"), http.StatusTooManyRequests},
		{dErrors.New(dErrors.CodeInternal, "boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := StatusFor(tc.err); got != tc.status {
			t.Fatalf("expected %d for %v, got %d", tc.status, tc.err, got)
		}
	}
}
