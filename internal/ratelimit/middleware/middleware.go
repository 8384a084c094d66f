// Package middleware throttles the confirmation resend endpoint. The key
// combines a digest of the normalized email with the client IP, so one
// address cannot be hammered from one place while legitimate retries from
// elsewhere stay unaffected.
package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	identitymodels "idcheck/internal/identity/models"
	"idcheck/internal/identity/normalize"
	"idcheck/internal/ratelimit/models"
	"idcheck/pkg/audit"
	"idcheck/pkg/httputil"
	"idcheck/pkg/requestcontext"
)

// BucketStore is the sliding-window counter backend.
type BucketStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.Result, error)
	Reset(ctx context.Context, key string) error
}

type Throttle struct {
	store  BucketStore
	limit  int
	window time.Duration
	logger *slog.Logger
}

func NewThrottle(store BucketStore, limit int, window time.Duration, logger *slog.Logger) *Throttle {
	return &Throttle{store: store, limit: limit, window: window, logger: logger}
}

// Limit wraps a handler with the resend throttle. Store failure fails open:
// a broken counter must not take the resend path down with it.
func (t *Throttle) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		key := models.ResendKey(t.emailDigest(r), requestcontext.ClientIP(ctx))
		result, err := t.store.Allow(ctx, key, t.limit, t.window)
		if err != nil {
			t.logger.ErrorContext(ctx, "failed to check resend throttle",
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
			next.ServeHTTP(w, r)
			return
		}

		addHeaders(w, result)
		if !result.Allowed {
			httputil.WriteJSON(w, http.StatusTooManyRequests, identitymodels.ResendConfirmationResponse{
				Success: false,
				Error:   identitymodels.MsgResendThrottled,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// emailDigest peeks at the request body for the email field, restoring the
// body for the handler. That keeps a user-switching client from sharing one
// IP-wide bucket, while the key itself never carries the raw address.
func (t *Throttle) emailDigest(r *http.Request) string {
	if r.Body == nil || r.ContentLength == 0 {
		return audit.HashValue("")
	}
	bodyBytes, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
	if err != nil {
		return audit.HashValue("")
	}

	var payload struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(bodyBytes, &payload); err != nil {
		return audit.HashValue("")
	}
	email, ok := normalize.Email(payload.Email)
	if !ok {
		email = payload.Email
	}
	return audit.HashValue(email)
}

func addHeaders(w http.ResponseWriter, result *models.Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}
