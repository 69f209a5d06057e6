package hasher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNew_Cost(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{"min cost", bcrypt.MinCost, bcrypt.MinCost},
		{"custom cost", 12, 12},
		{"too low", 1, bcrypt.DefaultCost},
		{"too high", bcrypt.MaxCost + 1, bcrypt.DefaultCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.cost).Cost())
		})
	}
}

func TestHashAndVerify(t *testing.T) {
	h := New(bcrypt.MinCost)

	passwords := []string{"password1", "correct horse battery staple", "пароль-123", strings.Repeat("x", MaxPasswordBytes)}
	for _, p := range passwords {
		t.Run(p, func(t *testing.T) {
			hashed, err := h.Hash(p)
			require.NoError(t, err)
			assert.NotEqual(t, p, hashed)
			assert.True(t, h.Verify(p, hashed))
			assert.False(t, h.Verify(p+"!", hashed))
		})
	}
}

func TestHash_Salted(t *testing.T) {
	h := New(bcrypt.MinCost)

	first, err := h.Hash("password1")
	require.NoError(t, err)
	second, err := h.Hash("password1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("password1", first))
	assert.True(t, h.Verify("password1", second))
}

func TestHash_TooLong(t *testing.T) {
	h := New(bcrypt.MinCost)

	hashed, err := h.Hash(strings.Repeat("a", MaxPasswordBytes+1))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
	assert.Empty(t, hashed)
}

func TestVerify_MalformedHash(t *testing.T) {
	h := New(bcrypt.MinCost)

	for _, stored := range []string{"", "not-a-hash", "$2a$04$short"} {
		assert.False(t, h.Verify("password1", stored), "hash %q", stored)
	}
}

func TestVerify_TooLongNeverMatches(t *testing.T) {
	h := New(bcrypt.MinCost)

	base := strings.Repeat("a", MaxPasswordBytes)
	hashed, err := h.Hash(base)
	require.NoError(t, err)

	assert.False(t, h.Verify(base+"tail", hashed))
}
