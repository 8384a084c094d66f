package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and lookup tiers return
// these (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: identity does not exist in the consulted store
// - ErrAlreadyConfirmed: confirmation target is already active
// - ErrUnavailable: backend temporarily unreachable or erroring
//
// For validation errors (bad input, missing fields), use pkg/domainerrors.
var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyConfirmed = errors.New("already confirmed")
	ErrUnavailable      = errors.New("unavailable")
)
