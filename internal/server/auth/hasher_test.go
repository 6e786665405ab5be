package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)

	assert.NotEqual(t, "correct horse", hash)
	assert.NotContains(t, hash, "correct horse")
	assert.True(t, strings.HasPrefix(hash, "$2a$"))

	ok, err := h.Verify("correct horse", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("battery staple", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptHasher_SaltIsPerRecord(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	a, err := h.Hash("same-password")
	require.NoError(t, err)
	b, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "two hashes of one password must differ")
}

func TestBcryptHasher_EmptyPassword(t *testing.T) {
	_, err := NewBcryptHasher(bcrypt.MinCost).Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestBcryptHasher_PasswordLengthLimit(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("a", MaxPasswordBytes+1))
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	longest := strings.Repeat("a", MaxPasswordBytes)
	hash, err := h.Hash(longest)
	require.NoError(t, err)

	ok, err := h.Verify(longest, hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(longest+"EXTRA", hash)
	require.NoError(t, err)
	assert.False(t, ok, "bytes past the limit must not be ignored")
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	ok, err := NewBcryptHasher(bcrypt.MinCost).Verify("pw", "not-a-hash")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestBcryptHasher_DummyHashMatchesNothing(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	d := h.DummyHash()
	require.NotEmpty(t, d)
	assert.Equal(t, d, h.DummyHash(), "dummy hash is computed once")

	ok, err := h.Verify("", d)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewBcryptHasher_CostFallback(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.MinCost, NewBcryptHasher(bcrypt.MinCost).cost)
}
