package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	identitymodels "idcheck/internal/identity/models"
	"idcheck/internal/ratelimit/middleware"
	"idcheck/internal/ratelimit/models"
	"idcheck/internal/ratelimit/store/bucket"
)

type failingStore struct{}

func (failingStore) Allow(context.Context, string, int, time.Duration) (*models.Result, error) {
	return nil, errors.New("store down")
}

func (failingStore) Reset(context.Context, string) error { return nil }

func newThrottledHandler(t *testing.T, store middleware.BucketStore, limit int) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	throttle := middleware.NewThrottle(store, limit, 15*time.Minute, logger)
	return throttle.Limit(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func resendRequest(t *testing.T, email string) *http.Request {
	t.Helper()
	body, err := json.Marshal(identitymodels.ResendConfirmationRequest{Email: email})
	require.NoError(t, err)
	return httptest.NewRequest(http.MethodPost, "/v1/confirmation/resend", bytes.NewReader(body))
}

func TestThrottleAllowsUpToLimit(t *testing.T) {
	h := newThrottledHandler(t, bucket.NewMemoryStore(), 3)

	for i := range 3 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, resendRequest(t, "user@example.com"))
		assert.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, resendRequest(t, "user@example.com"))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	var resp identitymodels.ResendConfirmationResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.Equal(t, identitymodels.MsgResendThrottled, resp.Error)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestThrottleKeysOnNormalizedEmail(t *testing.T) {
	h := newThrottledHandler(t, bucket.NewMemoryStore(), 1)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, resendRequest(t, "user@example.com"))
	require.Equal(t, http.StatusOK, rec.Code)

	// Re-spelling the same address must not grant a fresh bucket.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, resendRequest(t, "  USER@Example.COM "))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, resendRequest(t, "other@example.com"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestThrottleRestoresBody(t *testing.T) {
	var seen identitymodels.ResendConfirmationRequest
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	throttle := middleware.NewThrottle(bucket.NewMemoryStore(), 3, time.Minute, logger)
	h := throttle.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&seen))
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, resendRequest(t, "user@example.com"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user@example.com", seen.Email)
}

func TestThrottleFailsOpenOnStoreError(t *testing.T) {
	h := newThrottledHandler(t, failingStore{}, 1)

	for range 5 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, resendRequest(t, "user@example.com"))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
