package fastauth_test

import (
	"testing"

	"github.com/goliatone/go-fastauth"
	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{
			name:     "Valid password",
			password: "securePassword123!",
		},
		{
			name:     "Empty password",
			password: "",
		},
		{
			name:     "Unicode password",
			password: "pässwörd-日本語-🔐",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := fastauth.HashPassword(tt.password)
			assert.NoError(t, err)
			assert.NotEmpty(t, hash)
			assert.NotEqual(t, tt.password, hash)
		})
	}
}

func TestComparePasswordAndHash(t *testing.T) {
	passwords := []string{
		"securePassword123!",
		"",
		"pässwörd-日本語-🔐",
	}

	for _, password := range passwords {
		hash, err := fastauth.HashPassword(password)
		assert.NoError(t, err)

		assert.NoError(t, fastauth.ComparePasswordAndHash(password, hash))

		err = fastauth.ComparePasswordAndHash(password+"x", hash)
		assert.ErrorIs(t, err, fastauth.ErrMismatchedHashAndPassword)
	}
}

func TestComparePasswordAndHashInvalidHash(t *testing.T) {
	err := fastauth.ComparePasswordAndHash("whatever", "not-a-bcrypt-hash")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, fastauth.ErrMismatchedHashAndPassword)
}
