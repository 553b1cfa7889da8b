package common

import (
	"crypto/rand"
)

// GenerateRandByteArray returns size cryptographically random bytes. Key and
// initialization vector generation go through here so every random buffer in
// the client comes from the same entropy source.
func GenerateRandByteArray(size int) ([]byte, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// This is useful for removing sensitive data such as exported encryption keys
// from memory after use.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
