package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  string
		valid bool
	}{
		{"trims and lowercases", "  User@Example.COM ", "user@example.com", true},
		{"already normalized", "user@example.com", "user@example.com", true},
		{"missing at", "userexample.com", "", false},
		{"empty local part", "@example.com", "", false},
		{"empty domain part", "user@", "", false},
		// Shape problems beyond missing '@'/empty parts are the domain
		// gate's concern, so they pass normalization untouched.
		{"double at passes through", "bad@@domain", "bad@@domain", true},
		{"empty", "", "", false},
		{"whitespace only", "   ", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Email(tt.raw)
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEmail_Idempotent(t *testing.T) {
	once, ok := Email("  Jean.Dupont@Hopital.FR ")
	require.True(t, ok)
	twice, ok := Email(once)
	require.True(t, ok)
	assert.Equal(t, once, twice)
}

// The accepted phone grammar: anything the parser accepts for the configured
// default region, including spaces, dots, dashes, parentheses, a leading
// "00" international prefix, and nationally formatted numbers starting with
// "0". Output is always strict E.164.
func TestPhone(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		region string
		want   string
		valid  bool
	}{
		{"national with spaces", "06 12 34 56 78", "FR", "+33612345678", true},
		{"national with dots", "06.12.34.56.78", "FR", "+33612345678", true},
		{"national with dashes", "06-12-34-56-78", "FR", "+33612345678", true},
		{"double zero prefix", "0033 6 12 34 56 78", "FR", "+33612345678", true},
		{"already e164", "+33612345678", "FR", "+33612345678", true},
		{"e164 ignores region", "+33612345678", "BE", "+33612345678", true},
		{"landline", "01 42 68 53 00", "FR", "+33142685300", true},
		{"too short", "06 12", "FR", "", false},
		{"letters", "call me maybe", "FR", "", false},
		{"empty", "", "FR", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Phone(tt.raw, tt.region)
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPhone_Idempotent(t *testing.T) {
	once, ok := Phone("06 12 34 56 78", "FR")
	require.True(t, ok)

	// A normalized number must survive re-normalization under any region.
	for _, region := range []string{"FR", "BE", "US"} {
		twice, ok := Phone(once, region)
		require.True(t, ok, "region %s", region)
		assert.Equal(t, once, twice, "region %s", region)
	}
}

func TestName(t *testing.T) {
	assert.Equal(t, "Jean Dupont", Name("  Jean   Dupont "))
	assert.Equal(t, "", Name("   "))
	assert.Equal(t, "", Name(""))
	assert.Equal(t, "Anne-Marie de la Tour", Name("Anne-Marie  de  la  Tour"))
}

func TestName_Idempotent(t *testing.T) {
	once := Name("  Jean \t Dupont ")
	assert.Equal(t, once, Name(once))
}

func TestFullNameKey(t *testing.T) {
	assert.Equal(t, "jean dupont", FullNameKey(" Jean ", " DUPONT "))
	assert.Equal(t, FullNameKey("Jean", "Dupont"), FullNameKey("JEAN", "dupont"))
}
