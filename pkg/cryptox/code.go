package cryptox

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateCode returns a numeric one-time code with the requested number of
// digits, drawn from crypto/rand. The range excludes leading zeros by
// construction: for 4 digits the result is in [1000, 9999].
func GenerateCode(digits int) (string, error) {
	if digits < 1 || digits > 9 {
		return "", fmt.Errorf("code length must be between 1 and 9 digits, got %d", digits)
	}

	low := int64(1)
	for range digits - 1 {
		low *= 10
	}
	span := low*10 - low // e.g. 9000 for 4 digits

	n, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		return "", fmt.Errorf("failed to generate random code: %w", err)
	}

	return fmt.Sprintf("%d", low+n.Int64()), nil
}
