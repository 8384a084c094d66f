// Package audit defines the observability boundary of the verification core.
// Services emit events through a Sink; sinks fan out to logs, Kafka, or an
// in-memory store for tests. The core never logs infrastructure detail
// inline, which keeps it pure and independently testable.
package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Event is emitted from domain logic to capture key verification actions.
// Keep it transport-agnostic so sinks can fan out.
type Event struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Field     string    `json:"field,omitempty"`
	Outcome   string    `json:"outcome,omitempty"`
	Tier      string    `json:"tier,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	// ValueHash is a SHA-256 hash of the normalized identity value being
	// checked. Traceability without storing raw PII.
	ValueHash string `json:"value_hash,omitempty"`
}

const (
	EventCheckResolved      = "verification_resolved"
	EventLookupFellBack     = "lookup_fellback"
	EventLookupUnavailable  = "lookup_unavailable"
	EventDomainRejected     = "email_domain_rejected"
	EventConfirmationResent = "confirmation_resent"
)

// Sink receives audit events. Implementations must tolerate concurrent Emit
// calls. Emit failures are operational, never business failures: callers log
// and continue.
type Sink interface {
	Emit(ctx context.Context, event Event) error
}

// Discard is a Sink that drops every event. Useful default for tests and
// environments without an event stream.
type Discard struct{}

func (Discard) Emit(context.Context, Event) error { return nil }

// HashValue hashes a normalized identity value for audit traceability
// without storing raw PII.
func HashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
