package fastauth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// AccessTokenEntropy is how many random bytes back each access token
const AccessTokenEntropy = 24

// AccessTokenLength is the length of the hex rendering of a token
const AccessTokenLength = AccessTokenEntropy * 2

// GenerateAccessToken mints a brand new opaque access token from the
// system CSPRNG. Callers treat tokens as unique without collision
// checks, at 24 bytes of entropy the collision probability is negligible
func GenerateAccessToken() (string, error) {
	buf := make([]byte, AccessTokenEntropy)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
