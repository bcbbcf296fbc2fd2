package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2 parameters. The iteration count is tuned so a single derivation
// costs single-digit milliseconds on current server hardware.
const (
	saltLength = 16
	keyLength  = 32
	iterations = 10_000
)

// HashPassword derives a key from the password with PBKDF2-SHA256 using a
// fresh random salt and returns base64(salt || key). Two calls with the same
// password produce different outputs.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key := pbkdf2.Key([]byte(password), salt, iterations, keyLength, sha256.New)

	buf := make([]byte, 0, saltLength+keyLength)
	buf = append(buf, salt...)
	buf = append(buf, key...)
	return base64.StdEncoding.EncodeToString(buf), nil
}

// VerifyPassword reports whether password matches the stored salt||key blob
// produced by HashPassword. Malformed input yields false, never an error, and
// the key comparison is constant-time.
func VerifyPassword(password, encoded string) bool {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return false
	}
	if len(raw) != saltLength+keyLength {
		return false
	}

	salt := raw[:saltLength]
	expected := raw[saltLength:]

	computed := pbkdf2.Key([]byte(password), salt, iterations, keyLength, sha256.New)

	return subtle.ConstantTimeCompare(computed, expected) == 1
}
