package record

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idcheck/internal/identity/models"
)

func TestMemoryStore_Empty(t *testing.T) {
	store := NewMemoryStore()

	for _, kind := range []models.IdentityKind{models.KindEmail, models.KindPhone, models.KindName} {
		found, err := store.Exists(context.Background(), kind, "anything")
		require.NoError(t, err)
		assert.False(t, found, "kind %s", kind)
	}
}

func TestMemoryStore_PerKindIsolation(t *testing.T) {
	store := NewMemoryStore()
	store.Add(models.KindEmail, "user@example.com")

	found, err := store.Exists(context.Background(), models.KindEmail, "user@example.com")
	require.NoError(t, err)
	assert.True(t, found)

	// Same value under another kind is a different identity.
	found, err = store.Exists(context.Background(), models.KindPhone, "user@example.com")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStore_NameCaseInsensitive(t *testing.T) {
	store := NewMemoryStore()
	store.Add(models.KindName, "Jean Dupont")

	found, err := store.Exists(context.Background(), models.KindName, "jean dupont")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestMemoryStore_Phone(t *testing.T) {
	store := NewMemoryStore()
	store.Add(models.KindPhone, "+33612345678")

	found, err := store.Exists(context.Background(), models.KindPhone, "+33612345678")
	require.NoError(t, err)
	assert.True(t, found)
}
