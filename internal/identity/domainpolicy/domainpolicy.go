// Package domainpolicy decides whether an email's domain is acceptable at
// all, independent of whether the address exists. The gate runs before any
// lookup and its verdict is deterministic regardless of backend health.
package domainpolicy

import (
	"strings"

	"github.com/asaskevich/govalidator"

	"idcheck/internal/identity/models"
)

// Validator checks structural domain validity and the configured policy
// lists. With a non-empty allowlist only listed domains pass; otherwise the
// denylist (disposable providers) is consulted.
type Validator struct {
	allowed map[string]struct{}
	denied  map[string]struct{}
}

func New(allowedDomains, deniedDomains []string) *Validator {
	return &Validator{
		allowed: toSet(allowedDomains),
		denied:  toSet(deniedDomains),
	}
}

// Verdict is the outcome of domain validation. Message is user-facing and
// empty when Valid.
type Verdict struct {
	Valid   bool
	Message string
}

// Validate expects an already-normalized email (lowercase, trimmed, with an
// '@' separating non-empty parts). It never touches the network: MX or
// deliverability checks are out of scope here.
func (v *Validator) Validate(normalizedEmail string) Verdict {
	at := strings.IndexByte(normalizedEmail, '@')
	if at <= 0 || at == len(normalizedEmail)-1 {
		return Verdict{Message: models.MsgEmailInvalid}
	}
	domain := normalizedEmail[at+1:]

	if !structurallyValid(domain) || !govalidator.IsEmail(normalizedEmail) {
		return Verdict{Message: models.MsgDomainInvalid}
	}

	if len(v.allowed) > 0 {
		if _, ok := v.allowed[domain]; !ok {
			return Verdict{Message: models.MsgDomainNotAllowed}
		}
		return Verdict{Valid: true}
	}

	if _, ok := v.denied[domain]; ok {
		return Verdict{Message: models.MsgDomainNotAllowed}
	}
	return Verdict{Valid: true}
}

func structurallyValid(domain string) bool {
	if !strings.Contains(domain, ".") {
		return false
	}
	if strings.Contains(domain, "..") {
		return false
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") ||
		strings.HasPrefix(domain, "-") || strings.HasSuffix(domain, "-") {
		return false
	}
	for _, r := range domain {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '-':
		default:
			return false
		}
	}
	return true
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item != "" {
			set[item] = struct{}{}
		}
	}
	return set
}
