// Package models defines the rate limiting result and key shapes.
package models

import (
	"fmt"
	"time"
)

// Result is the outcome of one rate limit check.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
	Limit     int
}

// ResendKey builds the throttle key for a confirmation resend. The caller
// passes a digest of the normalized email, never the raw address, so the
// store never holds PII in its keys.
func ResendKey(emailHash, ip string) string {
	return fmt.Sprintf("resend:%s:%s", emailHash, ip)
}
