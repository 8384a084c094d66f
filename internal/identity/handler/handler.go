// Package handler exposes the verification operations over HTTP. Every
// route keeps a uniform response schema across success, rejection, and
// degraded paths so clients parse one shape per endpoint.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"idcheck/internal/identity/models"
	dErrors "idcheck/pkg/domainerrors"
	"idcheck/pkg/httputil"
	"idcheck/pkg/requestcontext"
)

// Service is the verification surface the handlers depend on.
type Service interface {
	CheckEmailAvailability(ctx context.Context, rawEmail string) models.Verification
	CheckPhoneAvailability(ctx context.Context, rawPhone string) models.Verification
	CheckNameAdvisory(ctx context.Context, firstName, lastName string) models.Verification
	VerifyEmailExists(ctx context.Context, rawEmail string) models.Verification
	ResendConfirmation(ctx context.Context, rawEmail string) error
}

// Handler wires verification endpoints to the identity service.
type Handler struct {
	service  Service
	logger   *slog.Logger
	resendMW []func(http.Handler) http.Handler
}

type Option func(*Handler)

// WithResendMiddleware wraps the confirmation resend route, typically with
// the throttle. The verification routes stay unwrapped; they are cheap and
// idempotent.
func WithResendMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return func(h *Handler) {
		h.resendMW = mw
	}
}

// New constructs a verification handler with its dependencies.
func New(service Service, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{service: service, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the verification endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Post("/verify/email-availability", h.HandleEmailAvailability)
		r.Post("/verify/phone-availability", h.HandlePhoneAvailability)
		r.Post("/verify/name", h.HandleNameAdvisory)
		r.Post("/verify/email-existence", h.HandleEmailExistence)
		r.With(h.resendMW...).Post("/confirmation/resend", h.HandleResendConfirmation)
	})
}

// HandleEmailAvailability handles POST /v1/verify/email-availability.
func (h *Handler) HandleEmailAvailability(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[models.EmailCheckRequest](r)
	if err != nil {
		h.writeDecodeError(w, r, err)
		return
	}
	v := h.service.CheckEmailAvailability(r.Context(), req.Email)
	h.writeAvailability(w, r, v)
}

// HandlePhoneAvailability handles POST /v1/verify/phone-availability.
func (h *Handler) HandlePhoneAvailability(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[models.PhoneCheckRequest](r)
	if err != nil {
		h.writeDecodeError(w, r, err)
		return
	}
	v := h.service.CheckPhoneAvailability(r.Context(), req.Phone)
	h.writeAvailability(w, r, v)
}

// HandleNameAdvisory handles POST /v1/verify/name. The answer is advisory:
// null is a legitimate value and degraded infrastructure still returns 200.
func (h *Handler) HandleNameAdvisory(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[models.NameCheckRequest](r)
	if err != nil {
		h.writeDecodeError(w, r, err)
		return
	}
	v := h.service.CheckNameAdvisory(r.Context(), req.FirstName, req.LastName)

	status := http.StatusOK
	if v.Invalid {
		status = http.StatusBadRequest
	}
	httputil.WriteJSON(w, status, models.AdvisoryResponse{
		IsAvailable: v.Answer,
		Message:     v.Reason,
	})
}

// HandleEmailExistence handles POST /v1/verify/email-existence. Fail-open:
// degraded infrastructure answers 200 with a null exists.
func (h *Handler) HandleEmailExistence(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[models.EmailCheckRequest](r)
	if err != nil {
		h.writeDecodeError(w, r, err)
		return
	}
	v := h.service.VerifyEmailExists(r.Context(), req.Email)

	status := http.StatusOK
	if v.Invalid {
		status = http.StatusBadRequest
	}
	httputil.WriteJSON(w, status, models.ExistenceResponse{
		Exists: v.Answer,
		Error:  v.Reason,
	})
}

// HandleResendConfirmation handles POST /v1/confirmation/resend.
func (h *Handler) HandleResendConfirmation(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[models.ResendConfirmationRequest](r)
	if err != nil {
		h.writeDecodeError(w, r, err)
		return
	}

	if err := h.service.ResendConfirmation(r.Context(), req.Email); err != nil {
		status := httputil.StatusFor(err)
		if status >= http.StatusInternalServerError {
			h.logger.ErrorContext(r.Context(), "confirmation resend failed",
				"request_id", requestcontext.RequestID(r.Context()),
				"error", err,
			)
		}
		httputil.WriteJSON(w, status, models.ResendConfirmationResponse{
			Success: false,
			Error:   dErrors.MessageFor(err),
		})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.ResendConfirmationResponse{
		Success: true,
		Message: models.MsgResendSent,
	})
}

// writeAvailability renders a fail-closed availability result. Degraded
// results keep the unavailable answer but signal the infrastructure failure
// through the status code.
func (h *Handler) writeAvailability(w http.ResponseWriter, r *http.Request, v models.Verification) {
	status := http.StatusOK
	switch {
	case v.Invalid:
		status = http.StatusBadRequest
	case v.Degraded:
		status = http.StatusInternalServerError
		h.logger.WarnContext(r.Context(), "availability check degraded",
			"request_id", requestcontext.RequestID(r.Context()),
		)
	}

	available := v.Answer != nil && *v.Answer
	httputil.WriteJSON(w, status, models.AvailabilityResponse{
		IsAvailable: available,
		Error:       v.Reason,
	})
}

func (h *Handler) writeDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.DebugContext(r.Context(), "request decode failed",
		"request_id", requestcontext.RequestID(r.Context()),
		"error", err,
	)
	httputil.WriteJSON(w, http.StatusBadRequest, map[string]string{
		"error": dErrors.MessageFor(err),
	})
}
