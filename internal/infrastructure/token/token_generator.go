package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// Prefix marks session tokens so they are recognizable in logs and support
// requests without revealing anything about the holder.
const Prefix = "pst_"

const tokenRandomBytes = 32

// SessionTokenGenerator produces the opaque secrets clients use to reference
// their own sessions. Tokens are stored as issued; possession of the token
// is the whole credential.
type SessionTokenGenerator struct{}

func NewSessionTokenGenerator() *SessionTokenGenerator {
	return &SessionTokenGenerator{}
}

func (g *SessionTokenGenerator) Generate() (string, error) {
	randomBytes := make([]byte, tokenRandomBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return Prefix + hex.EncodeToString(randomBytes), nil
}

// HasPrefix reports whether a value is shaped like a session token. It is a
// cheap syntactic check, not validation; the store decides whether the token
// resolves.
func HasPrefix(value string) bool {
	return strings.HasPrefix(value, Prefix)
}
