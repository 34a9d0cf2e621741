package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testHasherParams = HasherParams{Time: 1, MemoryKiB: 8 * 1024, Threads: 1}

func TestHashAndVerify(t *testing.T) {
	h := NewHasher(testHasherParams)
	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=8192,t=1,p=1$"), hash)
	assert.True(t, h.Verify("correct horse", hash))

	other, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "salts must differ between hashes")
}

func TestVerifyRejectsSingleCharMutations(t *testing.T) {
	h := NewHasher(testHasherParams)
	password := "s3cret!"
	hash, err := h.Hash(password)
	require.NoError(t, err)

	for i := range password {
		changed := []byte(password)
		changed[i]++
		assert.False(t, h.Verify(string(changed), hash), "mutation at %v", i)

		dropped := password[:i] + password[i+1:]
		assert.False(t, h.Verify(dropped, hash), "deletion at %v", i)
	}
	assert.False(t, h.Verify(password+"x", hash))
}

func TestVerifyBcrypt(t *testing.T) {
	stored, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
	require.NoError(t, err)

	h := NewHasher(testHasherParams)
	assert.True(t, h.Verify("correct", string(stored)))
	assert.False(t, h.Verify("Correct", string(stored)))
}

func TestVerifyGarbage(t *testing.T) {
	h := NewHasher(testHasherParams)
	for _, stored := range []string{
		"",
		"plain-text",
		"$argon2id$v=19$m=8192,t=1,p=1$bad",
		"$argon2id$v=19$m=99999999,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$a2V5",
		"$argon2i$v=19$m=8192,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$a2V5",
	} {
		assert.False(t, h.Verify("anything", stored), stored)
	}
}

func TestHashRefusesEmptyPassword(t *testing.T) {
	_, err := NewHasher(testHasherParams).Hash("")
	assert.Error(t, err)
}
