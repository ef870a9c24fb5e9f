// Package common defines shared sentinel errors and small byte utilities
// used across teamboard layers. Callers match errors with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-boundary errors. These are the only failures the UI layer
	// is expected to branch on.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateAccount   = errors.New("account already exists")
	ErrNoActiveSession    = errors.New("no active session")

	// Internal errors, translated before crossing the service boundary.
	ErrDecryptionFailed = errors.New("decryption failed")
	ErrCorruptSession   = errors.New("corrupt session record")
)
