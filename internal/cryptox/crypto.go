// Package cryptox implements the password-based primitives that protect
// user profiles: PBKDF2 key derivation, AES-256-GCM encryption of JSON
// payloads, and the hex encoding used by the storage layer.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"github.com/lexazver/teamboard/internal/common"
)

const (
	// KeyIterations is the PBKDF2 iteration count. Changing it would
	// invalidate every stored ciphertext, so it is fixed for the lifetime
	// of a vault.
	KeyIterations = 100000

	// KeySize is the derived key length in bytes (AES-256).
	KeySize = 32

	// IVSize is the AES-GCM nonce length in bytes.
	IVSize = 12

	// SaltSize is the per-account salt length in bytes.
	SaltSize = 16
)

// DeriveKey derives a 256-bit AES key from a password and salt using
// PBKDF2-SHA256. The same (password, salt) pair always yields the same key.
func DeriveKey(password, salt []byte) []byte {
	return pbkdf2.Key(password, salt, KeyIterations, KeySize, sha256.New)
}

// Encrypt serializes v to JSON and seals it with AES-256-GCM under key.
// A fresh random 12-byte IV is drawn on every call; an IV must never be
// reused with the same key.
func Encrypt(key []byte, v any) (iv, ciphertext []byte, err error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	iv, err = common.GenerateRandBytes(IVSize)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate iv: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, err
	}

	ciphertext = aesgcm.Seal(nil, iv, plaintext, nil)
	return iv, ciphertext, nil
}

// Decrypt opens ciphertext with AES-256-GCM and unmarshals the plaintext
// JSON into v. A wrong key, wrong IV, or tampered ciphertext fails the
// authentication tag check and is reported as common.ErrDecryptionFailed.
// Detecting a wrong password works exactly this way: there is no separate
// password hash, the tag check is the verifier.
func Decrypt(key, iv, ciphertext []byte, v any) error {
	block, err := aes.NewCipher(key)
	if err != nil {
		return err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return err
	}

	plaintext, err := aesgcm.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrDecryptionFailed, err)
	}

	return json.Unmarshal(plaintext, v)
}

// EncodeHex returns the lowercase hex encoding of b.
func EncodeHex(b []byte) string {
	return hex.EncodeToString(b)
}

// DecodeHex decodes a string produced by EncodeHex.
func DecodeHex(s string) ([]byte, error) {
	return hex.DecodeString(s)
}
