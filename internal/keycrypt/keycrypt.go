// Package keycrypt implements the per-user field-level encryption primitives
// used by BudgetKeeper: key derivation/generation, AES-GCM field encryption,
// and the portable text encoding of key material.
package keycrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/dmitrijs2005/budgetkeeper/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeySize is the symmetric key length in bytes (AES-256).
	KeySize = 32

	// NonceSize is the AES-GCM initialization vector length in bytes.
	NonceSize = 12

	// kdfIterations is the PBKDF2 iteration count for derived keys.
	// Changing it changes every derived key, so it is fixed for the
	// lifetime of the stored data.
	kdfIterations = 100_000
)

// kdfSalt is the fixed application salt for derived keys. Per-user context
// comes from the user id mixed into the KDF input, not from the salt.
var kdfSalt = []byte("budgetkeeper-field-encryption")

// Envelope pairs a ciphertext with the initialization vector required to
// decrypt it. Both halves are base64 (std) encoded for storage as text.
// An Envelope is never mutated; a changed source value produces a new one.
type Envelope struct {
	Ciphertext string
	IV         string
}

// IsZero reports whether the envelope carries no data (legacy records).
func (e Envelope) IsZero() bool {
	return e.Ciphertext == "" && e.IV == ""
}

// DeriveKey deterministically derives a 256-bit key from a pre-shared secret
// and a user id via PBKDF2-HMAC-SHA256. The same (sharedSecret, userID) pair
// always yields the same key, which is what makes cross-device and multi-tab
// initialization converge without coordination.
func DeriveKey(sharedSecret, userID string) []byte {
	password := []byte(sharedSecret + userID)
	return pbkdf2.Key(password, kdfSalt, kdfIterations, KeySize, sha256.New)
}

// GenerateKey returns a fresh random 256-bit key. Generation is never
// reproducible; a key lost without a backup cannot be recovered.
func GenerateKey() ([]byte, error) {
	key, err := common.GenerateRandByteArray(KeySize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCryptoUnavailable, err)
	}
	return key, nil
}

// DeriveOrGenerateKey produces the key for a user: deterministically when a
// shared secret is configured, randomly otherwise.
func DeriveOrGenerateKey(userID, sharedSecret string) ([]byte, error) {
	if sharedSecret != "" {
		return DeriveKey(sharedSecret, userID), nil
	}
	return GenerateKey()
}

// EncryptField encrypts a single string value with AES-256-GCM under key,
// using a fresh random 96-bit initialization vector. Reusing an iv with the
// same key is forbidden, which is why one is generated on every call.
//
// The returned Envelope holds ciphertext and iv base64-encoded for storage.
func EncryptField(key []byte, plaintext string) (Envelope, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return Envelope{}, err
	}

	nonce, err := common.GenerateRandByteArray(NonceSize)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", common.ErrCryptoUnavailable, err)
	}

	ciphertext := aesgcm.Seal(nil, nonce, []byte(plaintext), nil)

	return Envelope{
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
		IV:         base64.StdEncoding.EncodeToString(nonce),
	}, nil
}

// DecryptField reverses EncryptField. The operation is atomic: success yields
// the exact original plaintext, any failure (wrong key, corrupted ciphertext,
// mismatched or malformed iv) yields common.ErrDecryptionFailed and no
// partial output.
func DecryptField(key []byte, env Envelope) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(env.Ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: malformed ciphertext encoding", common.ErrDecryptionFailed)
	}
	nonce, err := base64.StdEncoding.DecodeString(env.IV)
	if err != nil {
		return "", fmt.Errorf("%w: malformed iv encoding", common.ErrDecryptionFailed)
	}
	if len(nonce) != NonceSize {
		return "", fmt.Errorf("%w: wrong iv length %d", common.ErrDecryptionFailed, len(nonce))
	}

	aesgcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrDecryptionFailed, err)
	}
	return string(plaintext), nil
}

// ExportKey encodes raw key bytes to a copy-pasteable text form. The result
// is sensitive: callers showing it to a user must warn them accordingly.
func ExportKey(key []byte) string {
	return base64.StdEncoding.EncodeToString(key)
}

// ImportKey decodes and validates the text form produced by ExportKey.
// Fails with common.ErrInvalidKeyFormat if decoding fails or the decoded
// key has the wrong length.
func ImportKey(exported string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(exported)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidKeyFormat, err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", common.ErrInvalidKeyFormat, KeySize, len(key))
	}
	return key, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCryptoUnavailable, err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCryptoUnavailable, err)
	}
	return aesgcm, nil
}
