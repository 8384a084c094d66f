// Package lookup answers "does this normalized identity exist" through a
// two-tier strategy: an authoritative tier that sees pending registrations,
// then a reduced-visibility fallback consulted only when the authoritative
// path fails as infrastructure.
package lookup

import (
	"context"

	"idcheck/internal/identity/models"
)

// Outcome is the tri-state lookup answer. Indeterminate arises only from
// infrastructure failure, never from a business rule.
type Outcome int

const (
	OutcomeNotFound Outcome = iota
	OutcomeFound
	OutcomeIndeterminate
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeNotFound:
		return "not_found"
	default:
		return "indeterminate"
	}
}

// Tier is one existence backend. An error return means the tier itself
// failed (infrastructure), never "not found".
type Tier interface {
	Name() string
	Exists(ctx context.Context, kind models.IdentityKind, value string) (bool, error)
}

// Existence is the capability the verification service consumes.
type Existence interface {
	Exists(ctx context.Context, kind models.IdentityKind, value string) Outcome
}
