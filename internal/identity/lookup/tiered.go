package lookup

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	identitymetrics "idcheck/internal/identity/metrics"
	"idcheck/internal/identity/models"
	"idcheck/pkg/audit"
	"idcheck/pkg/requestcontext"
)

// Tiered composes the authoritative and fallback tiers. The tiers run
// sequentially, never raced: the fallback is consulted only after the
// authoritative tier signals infrastructure failure, so a weaker check can
// never mask a real "found". Each tier gets its own bounded timeout so a
// slow authoritative backend cannot stall the fallback decision.
type Tiered struct {
	authoritative Tier
	fallback      Tier
	timeout       time.Duration
	logger        *slog.Logger
	metrics       *identitymetrics.Metrics
	sink          audit.Sink
	tracer        trace.Tracer
}

type TieredOption func(*Tiered)

func WithTimeout(d time.Duration) TieredOption {
	return func(t *Tiered) {
		t.timeout = d
	}
}

func WithLogger(logger *slog.Logger) TieredOption {
	return func(t *Tiered) {
		t.logger = logger
	}
}

func WithMetrics(m *identitymetrics.Metrics) TieredOption {
	return func(t *Tiered) {
		t.metrics = m
	}
}

func WithAuditSink(sink audit.Sink) TieredOption {
	return func(t *Tiered) {
		t.sink = sink
	}
}

func NewTiered(authoritative, fallback Tier, opts ...TieredOption) *Tiered {
	t := &Tiered{
		authoritative: authoritative,
		fallback:      fallback,
		timeout:       2 * time.Second,
		sink:          audit.Discard{},
		tracer:        otel.Tracer("idcheck/lookup"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

var _ Existence = (*Tiered)(nil)

// Exists consults the authoritative tier first; its infrastructure error is
// treated as data, not a fault. Only then is the fallback asked, and a clean
// fallback answer is trusted. Indeterminate means both tiers erred.
func (t *Tiered) Exists(ctx context.Context, kind models.IdentityKind, value string) Outcome {
	found, err := t.query(ctx, t.authoritative, kind, value)
	if err == nil {
		return asOutcome(found)
	}

	t.observeFallback(ctx, kind, value, err)

	found, fbErr := t.query(ctx, t.fallback, kind, value)
	if fbErr == nil {
		return asOutcome(found)
	}

	t.observeUnavailable(ctx, kind, value, fbErr)
	return OutcomeIndeterminate
}

func (t *Tiered) query(ctx context.Context, tier Tier, kind models.IdentityKind, value string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	ctx, span := t.tracer.Start(ctx, "lookup.exists", trace.WithAttributes(
		attribute.String("lookup.tier", tier.Name()),
		attribute.String("identity.kind", string(kind)),
	))
	defer span.End()

	found, err := tier.Exists(ctx, kind, value)
	if err != nil {
		span.RecordError(err)
	}
	return found, err
}

func (t *Tiered) observeFallback(ctx context.Context, kind models.IdentityKind, value string, err error) {
	if t.logger != nil {
		t.logger.WarnContext(ctx, "authoritative lookup failed, using fallback",
			"tier", t.authoritative.Name(), "kind", kind, "error", err)
	}
	if t.metrics != nil {
		t.metrics.RecordFallback(string(kind))
	}
	t.emit(ctx, audit.EventLookupFellBack, t.authoritative.Name(), kind, value, err)
}

func (t *Tiered) observeUnavailable(ctx context.Context, kind models.IdentityKind, value string, err error) {
	if t.logger != nil {
		t.logger.ErrorContext(ctx, "both lookup tiers failed",
			"kind", kind, "error", err)
	}
	if t.metrics != nil {
		t.metrics.RecordIndeterminate(string(kind))
	}
	t.emit(ctx, audit.EventLookupUnavailable, t.fallback.Name(), kind, value, err)
}

func (t *Tiered) emit(ctx context.Context, action, tier string, kind models.IdentityKind, value string, err error) {
	event := audit.Event{
		Timestamp: requestcontext.Now(ctx),
		Action:    action,
		Field:     string(kind),
		Tier:      tier,
		Reason:    err.Error(),
		RequestID: requestcontext.RequestID(ctx),
		ValueHash: audit.HashValue(value),
	}
	if emitErr := t.sink.Emit(ctx, event); emitErr != nil && t.logger != nil {
		t.logger.WarnContext(ctx, "failed to emit audit event", "action", action, "error", emitErr)
	}
}

func asOutcome(found bool) Outcome {
	if found {
		return OutcomeFound
	}
	return OutcomeNotFound
}
