// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateCartToken returns an opaque identifier suitable for keying a
// client-held cart record.
func GenerateCartToken() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
