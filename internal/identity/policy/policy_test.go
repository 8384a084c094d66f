package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idcheck/internal/identity/lookup"
	"idcheck/internal/identity/models"
)

func TestResolve_FoundAndNotFoundArePolicyIndependent(t *testing.T) {
	kinds := []models.CheckKind{
		models.CheckEmailAvailability,
		models.CheckPhoneAvailability,
		models.CheckNameAdvisory,
		models.CheckEmailExistence,
	}
	for _, kind := range kinds {
		d := Resolve(kind, lookup.OutcomeFound)
		assert.True(t, d.Known, "%s found", kind)
		assert.True(t, d.Present, "%s found", kind)

		d = Resolve(kind, lookup.OutcomeNotFound)
		assert.True(t, d.Known, "%s not found", kind)
		assert.False(t, d.Present, "%s not found", kind)
	}
}

func TestResolve_Indeterminate(t *testing.T) {
	tests := []struct {
		kind        models.CheckKind
		wantKnown   bool
		wantPresent bool
	}{
		// Registration gates fail closed: indeterminate reads as taken.
		{models.CheckEmailAvailability, true, true},
		{models.CheckPhoneAvailability, true, true},
		// Advisory and login paths fail open: indeterminate stays unknown.
		{models.CheckNameAdvisory, false, false},
		{models.CheckEmailExistence, false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			d := Resolve(tt.kind, lookup.OutcomeIndeterminate)
			assert.Equal(t, tt.wantKnown, d.Known)
			assert.Equal(t, tt.wantPresent, d.Present)
		})
	}
}

func TestResolve_UnknownKindFailsClosed(t *testing.T) {
	d := Resolve(models.CheckKind("future_check"), lookup.OutcomeIndeterminate)
	assert.True(t, d.Known)
	assert.True(t, d.Present)
}

func TestDecision_Presence(t *testing.T) {
	p := Resolve(models.CheckEmailExistence, lookup.OutcomeIndeterminate).Presence()
	assert.Nil(t, p, "unknown renders as null")

	p = Resolve(models.CheckEmailExistence, lookup.OutcomeFound).Presence()
	require.NotNil(t, p)
	assert.True(t, *p)
}
