package session

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const saltSize = 16

func deriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// hashPassword returns a salted argon2id verifier in "salt$key" hex form.
// The verifier gates only the local sign-in flow; it is not a remote auth
// credential.
func hashPassword(password []byte) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	key := deriveKey(password, salt)
	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(key), nil
}

// verifyPassword checks password against an encoded verifier in constant time.
func verifyPassword(encoded string, password []byte) bool {
	parts := strings.SplitN(encoded, "$", 2)
	if len(parts) != 2 {
		return false
	}
	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(parts[1])
	if err != nil {
		return false
	}
	got := deriveKey(password, salt)
	return subtle.ConstantTimeCompare(want, got) == 1
}
