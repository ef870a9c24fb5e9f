package common

import "crypto/rand"

// GenerateRandBytes returns n cryptographically secure random bytes.
func GenerateRandBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// WipeBytes overwrites the contents of b with zeros. Use it to remove
// passwords and derived keys from memory once they are no longer needed.
// A nil slice is a no-op.
func WipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
