// Package policy maps lookup outcomes to externally visible answers. The
// fail-open/fail-closed asymmetry lives in one static table so the
// security-relevant behavior is auditable in one place instead of scattered
// conditionals.
package policy

import (
	"idcheck/internal/identity/lookup"
	"idcheck/internal/identity/models"
)

// FailureMode decides what an Indeterminate lookup becomes.
type FailureMode int

const (
	// FailClosed treats Indeterminate as present/unavailable. Anything that
	// gates uniqueness at account creation uses this: a duplicate identity
	// is worse than a retried signup.
	FailClosed FailureMode = iota
	// FailOpen treats Indeterminate as unknown, never blocking the user.
	// Login existence checks and advisory signals use this: an infra hiccup
	// must not lock a legitimate user out.
	FailOpen
)

// Policy is the static rule pair for one check kind.
type Policy struct {
	Mode    FailureMode
	Purpose string
}

var table = map[models.CheckKind]Policy{
	models.CheckEmailAvailability: {Mode: FailClosed, Purpose: "registration uniqueness gate"},
	models.CheckPhoneAvailability: {Mode: FailClosed, Purpose: "registration uniqueness gate"},
	models.CheckNameAdvisory:      {Mode: FailOpen, Purpose: "informational only, never gates submission"},
	models.CheckEmailExistence:    {Mode: FailOpen, Purpose: "login path, must not block on infra failure"},
}

// For returns the policy for a check kind. Unknown kinds fail closed: an
// unmapped check must never silently become permissive.
func For(kind models.CheckKind) Policy {
	if p, ok := table[kind]; ok {
		return p
	}
	return Policy{Mode: FailClosed, Purpose: "unmapped check kind"}
}

// Resolve turns a lookup outcome into the presence decision for a check
// kind. Found and NotFound are policy-independent; only Indeterminate is
// subject to the failure mode.
func Resolve(kind models.CheckKind, outcome lookup.Outcome) models.Decision {
	switch outcome {
	case lookup.OutcomeFound:
		return models.Decision{Known: true, Present: true}
	case lookup.OutcomeNotFound:
		return models.Decision{Known: true, Present: false}
	default:
		if For(kind).Mode == FailClosed {
			return models.Decision{Known: true, Present: true}
		}
		return models.Decision{Known: false}
	}
}
