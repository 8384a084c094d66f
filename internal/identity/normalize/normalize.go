// Package normalize converts raw user input into canonical comparable form.
// All functions are pure and idempotent: normalizing an already-normalized
// value yields the same value.
package normalize

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Email lowercases and trims the input. Returns ok=false when the result
// does not look like an email at all (no '@', empty local or domain part);
// structural domain policy lives in package domainpolicy.
func Email(raw string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return "", false
	}
	return s, true
}

// Phone derives a strict E.164 representation ("+<countrycode><digits>", no
// separators) from common human-entered forms: spaces, dots, dashes,
// parentheses, a leading "00" international prefix, or a national leading
// "0" interpreted against defaultRegion (ISO 3166-1, e.g. "FR").
// Returns ok=false when no valid phone number can be derived.
//
// Already-normalized values parse as international regardless of region, so
// Phone(Phone(x)) == Phone(x) even across region configs.
func Phone(raw, defaultRegion string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	num, err := phonenumbers.Parse(s, defaultRegion)
	if err != nil {
		return "", false
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", false
	}
	return phonenumbers.Format(num, phonenumbers.E164), true
}

// Name trims and collapses internal whitespace. Never fails; empty input
// yields the empty string and presence is the caller's concern.
func Name(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// FullNameKey builds the case-insensitive comparison key used by the name
// advisory check.
func FullNameKey(firstName, lastName string) string {
	return strings.ToLower(strings.TrimSpace(Name(firstName) + " " + Name(lastName)))
}
