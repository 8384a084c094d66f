// Package models defines the identity fields, check kinds, and wire shapes
// of the verification service. Everything here is transient, computed per
// request; nothing is persisted by this core.
package models

// IdentityKind names the identity field being looked up.
type IdentityKind string

const (
	KindEmail IdentityKind = "email"
	KindPhone IdentityKind = "phone"
	KindName  IdentityKind = "name"
)

// CheckKind names the externally visible verification operations. The
// fail-open/fail-closed asymmetry is keyed on this, not on IdentityKind:
// the same email field fails closed at registration and open at login.
type CheckKind string

const (
	CheckEmailAvailability CheckKind = "email_availability"
	CheckPhoneAvailability CheckKind = "phone_availability"
	CheckNameAdvisory      CheckKind = "name_advisory"
	CheckEmailExistence    CheckKind = "email_existence"
)

// IdentityKind returns the identity field a check kind operates on.
func (k CheckKind) IdentityKind() IdentityKind {
	switch k {
	case CheckPhoneAvailability:
		return KindPhone
	case CheckNameAdvisory:
		return KindName
	default:
		return KindEmail
	}
}

// Decision is the policy-resolved presence answer for one check.
// Known=false is the deliberate "unknown" state produced when a fail-open
// check hits infrastructure failure; it is distinct from absent.
type Decision struct {
	Known   bool
	Present bool
}

// Presence renders the decision as a tri-state pointer for wire shapes
// where null is a meaningful value.
func (d Decision) Presence() *bool {
	if !d.Known {
		return nil
	}
	p := d.Present
	return &p
}

// Verification is the uniform result every check path produces, whether the
// rejection happened before or after a lookup. Answer carries the tri-state
// result of the check (availability, or existence for the login path);
// Reason is the user-facing (French) message, if any.
type Verification struct {
	Answer *bool
	Reason string
	// Invalid marks deterministic pre-lookup rejections (missing input,
	// unparseable value, domain policy) so the HTTP layer answers 4xx.
	Invalid bool
	// Degraded marks results produced under infrastructure failure so the
	// HTTP layer can choose the 5xx-equivalent status for fail-closed kinds.
	Degraded bool
}

// Request shapes.

type EmailCheckRequest struct {
	Email string `json:"email"`
}

type PhoneCheckRequest struct {
	Phone string `json:"phone"`
}

type NameCheckRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type ResendConfirmationRequest struct {
	Email string `json:"email"`
}

// Response shapes. Availability checks always answer with the same schema
// regardless of where the path short-circuited.

type AvailabilityResponse struct {
	IsAvailable bool   `json:"isAvailable"`
	Error       string `json:"error,omitempty"`
}

type AdvisoryResponse struct {
	IsAvailable *bool  `json:"isAvailable"`
	Message     string `json:"message,omitempty"`
}

type ExistenceResponse struct {
	Exists *bool  `json:"exists"`
	Error  string `json:"error,omitempty"`
}

type ResendConfirmationResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// User-facing messages. The product surface is French; codes and logs stay
// English.
const (
	MsgEmailRequired    = "Adresse email requise"
	MsgEmailInvalid     = "Adresse email invalide"
	MsgDomainInvalid    = "Domaine email invalide"
	MsgDomainNotAllowed = "Domaine email non autorisé"
	MsgEmailTaken       = "Cet email est déjà utilisé"
	MsgPhoneRequired    = "Numéro de téléphone requis"
	MsgPhoneInvalid     = "Numéro de téléphone invalide"
	MsgPhoneTaken       = "Ce numéro est déjà utilisé"
	MsgNameRequired     = "Nom et prénom requis"
	MsgNameTaken        = "Un compte existe déjà à ce nom"
	MsgCheckUnavailable = "Vérification momentanément indisponible"
	MsgResendNotFound   = "Aucun compte associé à cette adresse email"
	MsgAlreadyConfirmed = "Ce compte est déjà confirmé"
	MsgResendThrottled  = "Trop de demandes, veuillez réessayer plus tard"
	MsgResendFailed     = "L'envoi de la confirmation a échoué"
	MsgResendSent       = "Un email de confirmation vient de vous être envoyé"
)
