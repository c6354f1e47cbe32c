package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := &BcryptHasher{Cost: bcrypt.MinCost}

	hash, err := h.Hash("Tlqkf5678#")
	require.NoError(t, err)
	assert.NotEqual(t, "Tlqkf5678#", hash)

	assert.NoError(t, h.Compare(hash, "Tlqkf5678#"))
	assert.ErrorIs(t, h.Compare(hash, "wrong"), bcrypt.ErrMismatchedHashAndPassword)
}

func TestBcryptHasher_DefaultCost(t *testing.T) {
	h := NewBcryptHasher()
	assert.Equal(t, 10, h.Cost)

	hash, err := h.Hash("Secret12#")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)
}

func TestUUIDGenerator(t *testing.T) {
	g := NewUUIDGenerator()

	a, err := g.NewID()
	require.NoError(t, err)
	b, err := g.NewID()
	require.NoError(t, err)

	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestUUIDGenerator_Valid(t *testing.T) {
	g := NewUUIDGenerator()
	id, err := g.NewID()
	require.NoError(t, err)

	assert.True(t, g.Valid(id))
	assert.False(t, g.Valid(""))
	assert.False(t, g.Valid("5a3d5da59070081a82a3445"))
}
