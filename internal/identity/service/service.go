// Package service orchestrates identity verification: presence check,
// normalization, domain gate (email only), tiered existence lookup, policy
// resolution. Every rejection prior to lookup yields the same result shape
// as a lookup-produced answer, so callers need no special-casing. The
// live-typing UX check and the final submission run this exact same path.
package service

import (
	"context"
	"errors"
	"log/slog"

	"idcheck/internal/identity/domainpolicy"
	"idcheck/internal/identity/lookup"
	identitymetrics "idcheck/internal/identity/metrics"
	"idcheck/internal/identity/models"
	"idcheck/internal/identity/normalize"
	"idcheck/internal/identity/policy"
	"idcheck/pkg/audit"
	dErrors "idcheck/pkg/domainerrors"
	"idcheck/pkg/requestcontext"
	"idcheck/pkg/sentinel"
)

// Confirmer re-issues confirmation notices through the authoritative
// directory.
type Confirmer interface {
	ResendConfirmation(ctx context.Context, email string) error
}

type Service struct {
	existence     lookup.Existence
	confirmer     Confirmer
	domains       *domainpolicy.Validator
	defaultRegion string
	logger        *slog.Logger
	metrics       *identitymetrics.Metrics
	sink          audit.Sink
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *identitymetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditSink(sink audit.Sink) Option {
	return func(s *Service) {
		s.sink = sink
	}
}

func New(existence lookup.Existence, confirmer Confirmer, domains *domainpolicy.Validator, defaultRegion string, opts ...Option) (*Service, error) {
	if existence == nil {
		return nil, errors.New("existence lookup is required")
	}
	if domains == nil {
		return nil, errors.New("domain validator is required")
	}
	svc := &Service{
		existence:     existence,
		confirmer:     confirmer,
		domains:       domains,
		defaultRegion: defaultRegion,
		sink:          audit.Discard{},
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// CheckEmailAvailability answers whether an email can be used for a new
// registration. Fail-closed: an indeterminate lookup reads as unavailable.
func (s *Service) CheckEmailAvailability(ctx context.Context, rawEmail string) models.Verification {
	if rawEmail == "" {
		return rejected(models.MsgEmailRequired)
	}
	email, ok := normalize.Email(rawEmail)
	if !ok {
		return rejected(models.MsgEmailInvalid)
	}
	if verdict := s.domains.Validate(email); !verdict.Valid {
		s.emitDomainRejected(ctx, email, verdict.Message)
		return rejected(verdict.Message)
	}
	return s.resolveAvailability(ctx, models.CheckEmailAvailability, email, models.MsgEmailTaken)
}

// CheckPhoneAvailability answers whether a phone number can be used for a
// new registration. Fail-closed, same discipline as email.
func (s *Service) CheckPhoneAvailability(ctx context.Context, rawPhone string) models.Verification {
	if rawPhone == "" {
		return rejected(models.MsgPhoneRequired)
	}
	phone, ok := normalize.Phone(rawPhone, s.defaultRegion)
	if !ok {
		return rejected(models.MsgPhoneInvalid)
	}
	return s.resolveAvailability(ctx, models.CheckPhoneAvailability, phone, models.MsgPhoneTaken)
}

// CheckNameAdvisory reports whether a full name is already registered.
// Advisory only: collisions are legitimate and the answer never gates a
// submission, so infrastructure failure yields unknown, not unavailable.
func (s *Service) CheckNameAdvisory(ctx context.Context, firstName, lastName string) models.Verification {
	if normalize.Name(firstName) == "" || normalize.Name(lastName) == "" {
		return models.Verification{Reason: models.MsgNameRequired, Invalid: true}
	}
	key := normalize.FullNameKey(firstName, lastName)

	outcome := s.existence.Exists(ctx, models.KindName, key)
	decision := policy.Resolve(models.CheckNameAdvisory, outcome)

	v := models.Verification{Degraded: outcome == lookup.OutcomeIndeterminate}
	if p := decision.Presence(); p != nil {
		available := !*p
		v.Answer = &available
		if *p {
			v.Reason = models.MsgNameTaken
		}
	}
	s.observeCheck(ctx, models.CheckNameAdvisory, key, outcome, v)
	return v
}

// VerifyEmailExists answers the login-path question "does an account with
// this email exist". Fail-open: infrastructure failure yields unknown so a
// legitimate login attempt is never blocked by an infra hiccup.
func (s *Service) VerifyEmailExists(ctx context.Context, rawEmail string) models.Verification {
	if rawEmail == "" {
		return models.Verification{Reason: models.MsgEmailRequired, Invalid: true}
	}
	email, ok := normalize.Email(rawEmail)
	if !ok {
		return models.Verification{Reason: models.MsgEmailInvalid, Invalid: true}
	}

	outcome := s.existence.Exists(ctx, models.KindEmail, email)
	decision := policy.Resolve(models.CheckEmailExistence, outcome)

	v := models.Verification{
		Answer:   decision.Presence(),
		Degraded: outcome == lookup.OutcomeIndeterminate,
	}
	s.observeCheck(ctx, models.CheckEmailExistence, email, outcome, v)
	return v
}

// ResendConfirmation normalizes the email and asks the directory to re-issue
// a confirmation notice. It performs no uniqueness policy logic; the three
// non-sent outcomes surface as coded domain errors.
func (s *Service) ResendConfirmation(ctx context.Context, rawEmail string) error {
	if rawEmail == "" {
		return dErrors.New(dErrors.CodeInvalidInput, models.MsgEmailRequired)
	}
	email, ok := normalize.Email(rawEmail)
	if !ok {
		return dErrors.New(dErrors.CodeInvalidInput, models.MsgEmailInvalid)
	}

	err := s.confirmer.ResendConfirmation(ctx, email)
	switch {
	case err == nil:
		s.recordResend("sent")
		s.emit(ctx, audit.Event{
			Timestamp: requestcontext.Now(ctx),
			Action:    audit.EventConfirmationResent,
			Field:     string(models.KindEmail),
			RequestID: requestcontext.RequestID(ctx),
			ValueHash: audit.HashValue(email),
		})
		return nil
	case errors.Is(err, sentinel.ErrNotFound):
		s.recordResend("not_found")
		return dErrors.New(dErrors.CodeNotFound, models.MsgResendNotFound)
	case errors.Is(err, sentinel.ErrAlreadyConfirmed):
		s.recordResend("already_confirmed")
		return dErrors.New(dErrors.CodeAlreadyConfirmed, models.MsgAlreadyConfirmed)
	default:
		s.recordResend("failed")
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "confirmation resend failed", "error", err)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, models.MsgResendFailed)
	}
}

// resolveAvailability runs the lookup and policy steps shared by the two
// fail-closed registration gates.
func (s *Service) resolveAvailability(ctx context.Context, kind models.CheckKind, value, takenMsg string) models.Verification {
	outcome := s.existence.Exists(ctx, kind.IdentityKind(), value)
	decision := policy.Resolve(kind, outcome)

	available := !decision.Present
	v := models.Verification{
		Answer:   &available,
		Degraded: outcome == lookup.OutcomeIndeterminate,
	}
	switch {
	case v.Degraded:
		v.Reason = models.MsgCheckUnavailable
	case decision.Present:
		v.Reason = takenMsg
	}
	s.observeCheck(ctx, kind, value, outcome, v)
	return v
}

// rejected shapes a deterministic pre-lookup rejection for the fail-closed
// availability checks: same schema as a lookup answer, available=false.
func rejected(reason string) models.Verification {
	unavailable := false
	return models.Verification{Answer: &unavailable, Reason: reason, Invalid: true}
}

func (s *Service) observeCheck(ctx context.Context, kind models.CheckKind, value string, outcome lookup.Outcome, v models.Verification) {
	answer := "unknown"
	if v.Answer != nil {
		if *v.Answer {
			answer = "true"
		} else {
			answer = "false"
		}
	}
	if s.metrics != nil {
		s.metrics.RecordCheck(string(kind), answer)
	}
	s.emit(ctx, audit.Event{
		Timestamp: requestcontext.Now(ctx),
		Action:    audit.EventCheckResolved,
		Field:     string(kind),
		Outcome:   outcome.String(),
		RequestID: requestcontext.RequestID(ctx),
		ValueHash: audit.HashValue(value),
	})
}

func (s *Service) emitDomainRejected(ctx context.Context, email, message string) {
	s.emit(ctx, audit.Event{
		Timestamp: requestcontext.Now(ctx),
		Action:    audit.EventDomainRejected,
		Field:     string(models.KindEmail),
		Reason:    message,
		RequestID: requestcontext.RequestID(ctx),
		ValueHash: audit.HashValue(email),
	})
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if err := s.sink.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "action", event.Action, "error", err)
	}
}

func (s *Service) recordResend(outcome string) {
	if s.metrics != nil {
		s.metrics.RecordResend(outcome)
	}
}
